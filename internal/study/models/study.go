package models

import (
	"time"

	id "studylab/pkg/domain"
	dErrors "studylab/pkg/domain-errors"
)

// ErrMsgNegativeLimit is returned verbatim by every constructor when the
// requested limit is below zero.
const ErrMsgNegativeLimit = "limit must be greater than 0"

// Study is the aggregate root for a study group.
//
// Invariants:
//   - LimitCount is never negative
//   - Status starts at DRAFT and only moves forward (DRAFT -> OPENED)
//   - OpenedDateTime is nil while DRAFT and set by Open
//   - ID is nil until the store assigns one on first save
//   - OwnerID is nil until CreateNewStudy assigns it
//
// Open does not guard against re-opening. Calling it twice re-stamps
// OpenedDateTime; use IsOpened when idempotence matters.
type Study struct {
	ID             id.StudyID   `json:"id"`
	Status         StudyStatus  `json:"status"`
	LimitCount     int          `json:"limit_count"`
	Name           string       `json:"name"`
	OpenedDateTime *time.Time   `json:"opened_date_time,omitempty"`
	OwnerID        *id.MemberID `json:"owner_id,omitempty"`
}

// NewStudy creates a DRAFT study. Every other constructor delegates here so the
// limit check cannot be bypassed.
func NewStudy(limitCount int) (*Study, error) {
	if limitCount < 0 {
		return nil, dErrors.New(dErrors.CodeInvalidInput, ErrMsgNegativeLimit)
	}
	return &Study{
		Status:     StudyStatusDraft,
		LimitCount: limitCount,
	}, nil
}

func NewNamedStudy(limitCount int, name string) (*Study, error) {
	s, err := NewStudy(limitCount)
	if err != nil {
		return nil, err
	}
	s.Name = name
	return s, nil
}

// NewStudyWithStatus validates limitCount like NewStudy, then overrides the
// initial status. The status must be DRAFT or reachable from it.
func NewStudyWithStatus(status StudyStatus, limitCount int) (*Study, error) {
	if status != StudyStatusDraft && !StudyStatusDraft.CanTransitionTo(status) {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "unknown study status")
	}
	s, err := NewStudy(limitCount)
	if err != nil {
		return nil, err
	}
	s.Status = status
	return s, nil
}

// Open stamps the opening time and moves the study to OPENED.
func (s *Study) Open(now time.Time) {
	s.OpenedDateTime = &now
	s.Status = StudyStatusOpened
}

func (s *Study) IsOpened() bool {
	return s.Status == StudyStatusOpened
}

func (s *Study) AssignOwner(memberID id.MemberID) {
	owner := memberID
	s.OwnerID = &owner
}

func (s *Study) IsOwnedBy(memberID id.MemberID) bool {
	return s.OwnerID != nil && *s.OwnerID == memberID
}

// Clone returns a deep copy so stores never share mutable state with callers.
func (s *Study) Clone() *Study {
	if s == nil {
		return nil
	}
	c := *s
	if s.OpenedDateTime != nil {
		t := *s.OpenedDateTime
		c.OpenedDateTime = &t
	}
	if s.OwnerID != nil {
		o := *s.OwnerID
		c.OwnerID = &o
	}
	return &c
}
