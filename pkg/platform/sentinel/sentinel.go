package sentinel

import "errors"

// Infrastructure facts returned (optionally wrapped) by stores and adapters.
// Services translate them into pkg/domain-errors codes at their boundary.
//
//   - ErrNotFound: entity does not exist in the store
//   - ErrConflict: write collides with existing state (unique key, foreign key)
//   - ErrUnavailable: backing service cannot be reached
var (
	ErrNotFound    = errors.New("not found")
	ErrConflict    = errors.New("conflict")
	ErrUnavailable = errors.New("unavailable")
)
