package store

import "studylab/pkg/platform/sentinel"

var (
	ErrNotFound = sentinel.ErrNotFound
	ErrConflict = sentinel.ErrConflict
)
