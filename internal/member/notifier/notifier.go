// Package notifier delivers member-facing notifications about studies and
// member accounts.
package notifier

import (
	"context"
	"time"
)

type Kind string

const (
	KindStudy  Kind = "study"
	KindMember Kind = "member"
)

// Notification is the payload handed to a Notifier. SubjectID is the study or
// member the notification is about and doubles as the partition key.
type Notification struct {
	Kind       Kind      `json:"kind"`
	SubjectID  string    `json:"subject_id"`
	Recipient  string    `json:"recipient,omitempty"`
	OwnerID    string    `json:"owner_id,omitempty"`
	Status     string    `json:"status,omitempty"`
	Name       string    `json:"name,omitempty"`
	RequestID  string    `json:"request_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}
