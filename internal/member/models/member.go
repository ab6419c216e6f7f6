package models

import (
	"time"

	"studylab/pkg/domain"
	dErrors "studylab/pkg/domain-errors"
	"studylab/pkg/email"
)

// Member owns studies and receives notifications about them.
//
// Invariants:
//   - Email is a normalized, syntactically valid address
//   - CreatedAt is immutable after construction
type Member struct {
	ID        domain.MemberID `json:"id"`
	Email     string          `json:"email"`
	CreatedAt time.Time       `json:"created_at"`
}

// NewMember validates and normalizes the e-mail address.
func NewMember(id domain.MemberID, address string, now time.Time) (*Member, error) {
	if id.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "member id is required")
	}
	normalized := email.Normalize(address)
	if normalized == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "email is required")
	}
	if !email.IsValid(normalized) {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "email is not a valid address")
	}
	return &Member{ID: id, Email: normalized, CreatedAt: now}, nil
}

// HasValidEmail re-checks the address of a member loaded from storage.
func (m *Member) HasValidEmail() bool {
	return email.IsValid(m.Email)
}

func (m *Member) DisplayName() string {
	return email.DisplayName(m.Email)
}
