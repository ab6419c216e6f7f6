package models

import (
	"fmt"
	"strings"
)

type StudyStatus string

const (
	StudyStatusDraft  StudyStatus = "DRAFT"
	StudyStatusOpened StudyStatus = "OPENED"
)

// forwardTransitions lists the only allowed moves. There is no way back to DRAFT.
var forwardTransitions = map[StudyStatus][]StudyStatus{
	StudyStatusDraft: {StudyStatusOpened},
}

func (s StudyStatus) IsValid() bool {
	return s == StudyStatusDraft || s == StudyStatusOpened
}

func (s StudyStatus) CanTransitionTo(next StudyStatus) bool {
	for _, allowed := range forwardTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s StudyStatus) String() string { return string(s) }

// ParseStudyStatus accepts the canonical upper-case names, case-insensitively.
func ParseStudyStatus(raw string) (StudyStatus, error) {
	s := StudyStatus(strings.ToUpper(strings.TrimSpace(raw)))
	if !s.IsValid() {
		return "", fmt.Errorf("unknown study status %q", raw)
	}
	return s, nil
}
