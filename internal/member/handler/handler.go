package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"studylab/internal/member/models"
	"studylab/internal/platform/middleware"
	"studylab/pkg/domain"
	dErrors "studylab/pkg/domain-errors"
	"studylab/pkg/platform/httputil"
	"studylab/pkg/platform/sentinel"
)

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service

// Service defines the member operations exposed over HTTP.
type Service interface {
	Register(ctx context.Context, email string) (*models.Member, error)
	FindByID(ctx context.Context, memberID domain.MemberID) (*models.Member, error)
}

type Handler struct {
	logger  *slog.Logger
	members Service
}

func New(members Service, logger *slog.Logger) *Handler {
	return &Handler{logger: logger, members: members}
}

// Register mounts the member routes on r.
func (h *Handler) Register(r chi.Router) {
	r.Post("/members", h.handleRegister)
	r.Get("/members/{memberID}", h.handleGet)
}

type RegisterRequest struct {
	Email string `json:"email"`
}

type MemberResponse struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	CreatedAt   time.Time `json:"created_at"`
}

func toResponse(m *models.Member) MemberResponse {
	return MemberResponse{
		ID:          m.ID.String(),
		Email:       m.Email,
		DisplayName: m.DisplayName(),
		CreatedAt:   m.CreatedAt,
	}
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "invalid register member request",
			"request_id", requestID,
			"error", err.Error(),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	m, err := h.members.Register(ctx, req.Email)
	if err != nil {
		h.logger.WarnContext(ctx, "failed to register member",
			"request_id", requestID,
			"error", err.Error(),
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, toResponse(m))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	memberID, err := domain.ParseMemberID(chi.URLParam(r, "memberID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	m, err := h.members.FindByID(ctx, memberID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "member not found"))
			return
		}
		h.logger.ErrorContext(ctx, "failed to load member",
			"request_id", middleware.GetRequestID(ctx),
			"member_id", memberID.String(),
			"error", err.Error(),
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toResponse(m))
}
