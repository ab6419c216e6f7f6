package notifier

import (
	"context"
	"log/slog"
)

// LogNotifier writes notifications to the structured log. It never fails.
type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogNotifier{logger: logger}
}

func (l *LogNotifier) Notify(ctx context.Context, n Notification) error {
	l.logger.InfoContext(ctx, "notification",
		"kind", string(n.Kind),
		"subject_id", n.SubjectID,
		"recipient", n.Recipient,
		"owner_id", n.OwnerID,
		"status", n.Status,
		"request_id", n.RequestID,
		"occurred_at", n.OccurredAt,
	)
	return nil
}
