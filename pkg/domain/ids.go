// Package domain holds the typed identifiers shared across studylab packages.
//
// IDs are distinct named types over uuid.UUID so a MemberID can never be passed
// where a StudyID is expected. Parse functions are the trust boundary: they reject
// empty, malformed and nil UUIDs with CodeInvalidInput.
package domain

import (
	"database/sql/driver"
	"fmt"

	"github.com/google/uuid"

	dErrors "studylab/pkg/domain-errors"
)

type (
	StudyID  uuid.UUID
	MemberID uuid.UUID
)

func (id StudyID) String() string  { return uuid.UUID(id).String() }
func (id MemberID) String() string { return uuid.UUID(id).String() }

func (id StudyID) IsNil() bool  { return uuid.UUID(id) == uuid.Nil }
func (id MemberID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }

// NewStudyID returns a fresh random StudyID.
func NewStudyID() StudyID { return StudyID(uuid.New()) }

// NewMemberID returns a fresh random MemberID.
func NewMemberID() MemberID { return MemberID(uuid.New()) }

func ParseStudyID(s string) (StudyID, error) {
	u, err := parseUUID(s, "study")
	return StudyID(u), err
}

func ParseMemberID(s string) (MemberID, error) {
	u, err := parseUUID(s, "member")
	return MemberID(u), err
}

func parseUUID(s, kind string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, kind+" ID required")
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, fmt.Sprintf("invalid %s ID", kind))
	}
	if u == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, kind+" ID cannot be nil")
	}
	return u, nil
}

func (id StudyID) MarshalText() ([]byte, error)  { return uuid.UUID(id).MarshalText() }
func (id MemberID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }

func (id *StudyID) UnmarshalText(b []byte) error  { return (*uuid.UUID)(id).UnmarshalText(b) }
func (id *MemberID) UnmarshalText(b []byte) error { return (*uuid.UUID)(id).UnmarshalText(b) }

// Value and Scan let typed IDs travel through database/sql without conversions
// at every call site.
func (id StudyID) Value() (driver.Value, error)  { return uuid.UUID(id).Value() }
func (id MemberID) Value() (driver.Value, error) { return uuid.UUID(id).Value() }

func (id *StudyID) Scan(src any) error  { return (*uuid.UUID)(id).Scan(src) }
func (id *MemberID) Scan(src any) error { return (*uuid.UUID)(id).Scan(src) }
