package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"studylab/internal/platform/middleware"
	"studylab/internal/study/models"
	id "studylab/pkg/domain"
	dErrors "studylab/pkg/domain-errors"
	"studylab/pkg/platform/httputil"
)

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service

// Service defines the study operations exposed over HTTP.
type Service interface {
	CreateNewStudy(ctx context.Context, memberID id.MemberID, study *models.Study) (*models.Study, error)
	OpenStudy(ctx context.Context, study *models.Study) (*models.Study, error)
	GetStudy(ctx context.Context, studyID id.StudyID) (*models.Study, error)
	SaveStudy(ctx context.Context, study *models.Study) (*models.Study, error)
}

// Handler serves the study endpoints.
type Handler struct {
	logger  *slog.Logger
	studies Service
}

func New(studies Service, logger *slog.Logger) *Handler {
	return &Handler{logger: logger, studies: studies}
}

// Register mounts the study routes on r.
func (h *Handler) Register(r chi.Router) {
	r.Get("/study/{id}", h.handleGet)
	r.Post("/study", h.handleSave)
	r.Post("/study/{id}/open", h.handleOpen)
	r.Post("/members/{memberID}/studies", h.handleCreateForMember)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	studyID, err := id.ParseStudyID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	study, err := h.studies.GetStudy(ctx, studyID)
	if err != nil {
		h.logFailure(ctx, "failed to get study", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toStudyResponse(study))
}

func (h *Handler) handleSave(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	study, ok := h.decodeStudy(w, r)
	if !ok {
		return
	}

	saved, err := h.studies.SaveStudy(ctx, study)
	if err != nil {
		h.logFailure(ctx, "failed to save study", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, toStudyResponse(saved))
}

func (h *Handler) handleOpen(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	studyID, err := id.ParseStudyID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	study, err := h.studies.GetStudy(ctx, studyID)
	if err != nil {
		h.logFailure(ctx, "failed to load study to open", err)
		httputil.WriteError(w, err)
		return
	}

	opened, err := h.studies.OpenStudy(ctx, study)
	if err != nil {
		h.logFailure(ctx, "failed to open study", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toStudyResponse(opened))
}

func (h *Handler) handleCreateForMember(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	memberID, err := id.ParseMemberID(chi.URLParam(r, "memberID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	study, ok := h.decodeStudy(w, r)
	if !ok {
		return
	}

	created, err := h.studies.CreateNewStudy(ctx, memberID, study)
	if err != nil {
		h.logFailure(ctx, "failed to create study", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, toStudyResponse(created))
}

func (h *Handler) decodeStudy(w http.ResponseWriter, r *http.Request) (*models.Study, bool) {
	ctx := r.Context()
	var req CreateStudyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "invalid study request",
			"request_id", middleware.GetRequestID(ctx),
			"error", err.Error(),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return nil, false
	}
	req.Normalize()
	study, err := req.ToStudy()
	if err != nil {
		httputil.WriteError(w, err)
		return nil, false
	}
	return study, true
}

func (h *Handler) logFailure(ctx context.Context, msg string, err error) {
	level := slog.LevelWarn
	if dErrors.CodeOf(err) == dErrors.CodeInternal {
		level = slog.LevelError
	}
	h.logger.Log(ctx, level, msg,
		"request_id", middleware.GetRequestID(ctx),
		"error", err.Error(),
	)
}
