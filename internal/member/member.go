package member

import (
	"log/slog"

	"studylab/internal/member/handler"
	"studylab/internal/member/service"
)

// Service is the member collaborator: lookup, validation and notification.
type Service = service.Service

type Handler = handler.Handler

func NewService(store service.Store, notifier service.Notifier, opts ...service.Option) *Service {
	return service.New(store, notifier, opts...)
}

func NewHandler(s *Service, logger *slog.Logger) *Handler {
	return handler.New(s, logger)
}
