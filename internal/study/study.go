package study

import (
	"log/slog"

	"studylab/internal/study/handler"
	"studylab/internal/study/service"
)

// Service exposes the study lifecycle orchestration.
type Service = service.Service

// Handler wires HTTP endpoints to the study service.
type Handler = handler.Handler

// NewService constructs the study service with its required collaborators.
func NewService(members service.MemberService, studies service.Store, opts ...service.Option) *Service {
	return service.New(members, studies, opts...)
}

// NewHandler constructs the HTTP handler for the study routes.
func NewHandler(s *Service, logger *slog.Logger) *Handler {
	return handler.New(s, logger)
}
