package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	memberModels "studylab/internal/member/models"
	"studylab/internal/study/metrics"
	"studylab/internal/study/models"
	id "studylab/pkg/domain"
	dErrors "studylab/pkg/domain-errors"
	"studylab/pkg/platform/sentinel"
	"studylab/pkg/requestcontext"
)

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks MemberService,Store

// MemberService is the member collaborator. FindByID returns
// sentinel.ErrNotFound when the member does not exist.
type MemberService interface {
	FindByID(ctx context.Context, memberID id.MemberID) (*memberModels.Member, error)
	Validate(ctx context.Context, memberID id.MemberID) error
	NotifyStudy(ctx context.Context, study *models.Study) error
	NotifyMember(ctx context.Context, member *memberModels.Member) error
}

// Store persists studies. Save returns the persisted study, with its ID
// assigned on first save. FindByID returns sentinel.ErrNotFound when absent.
type Store interface {
	Save(ctx context.Context, study *models.Study) (*models.Study, error)
	FindByID(ctx context.Context, studyID id.StudyID) (*models.Study, error)
}

// Service orchestrates the study lifecycle: ownership, persistence and
// notification, in that order.
type Service struct {
	members MemberService
	studies Store
	logger  *slog.Logger
	metrics *metrics.Metrics
	tracer  trace.Tracer
	clock   func() time.Time
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithClock overrides time.Now for the opened timestamp.
func WithClock(clock func() time.Time) Option {
	return func(s *Service) {
		s.clock = clock
	}
}

func WithTracer(tracer trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tracer
	}
}

// New constructs a Service. A nil collaborator is a wiring bug and panics.
func New(members MemberService, studies Store, opts ...Option) *Service {
	if members == nil {
		panic("study service: member service is required")
	}
	if studies == nil {
		panic("study service: study store is required")
	}
	s := &Service{
		members: members,
		studies: studies,
		logger:  slog.Default(),
		tracer:  otel.Tracer("studylab/internal/study/service"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateNewStudy assigns memberID as owner, saves the study and notifies the
// member collaborator with the persisted result. An unknown member fails with
// CodeNotFound before anything is saved.
func (s *Service) CreateNewStudy(ctx context.Context, memberID id.MemberID, study *models.Study) (_ *models.Study, err error) {
	start := time.Now()
	ctx, span := s.tracer.Start(ctx, "study.CreateNewStudy", trace.WithAttributes(attribute.String("member_id", memberID.String())))
	defer func() {
		endSpan(span, err)
		s.observe("create_new_study", start)
	}()

	if study == nil {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "study is required")
	}

	if _, err := s.members.FindByID(ctx, memberID); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			s.incrementMemberLookupMiss()
			s.logger.WarnContext(ctx, "study owner not found",
				"member_id", memberID.String(),
				"request_id", requestcontext.RequestID(ctx),
			)
			return nil, dErrors.New(dErrors.CodeNotFound, fmt.Sprintf("member doesn't exist for id: '%s'", memberID))
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to look up member")
	}
	study.AssignOwner(memberID)

	persisted, err := s.studies.Save(ctx, study)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to save study")
	}
	span.SetAttributes(attribute.String("study_id", persisted.ID.String()))

	if err := s.members.NotifyStudy(ctx, persisted); err != nil {
		s.incrementNotificationFailure()
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to notify study owner")
	}

	s.incrementCreated()
	s.logger.InfoContext(ctx, "study created",
		"study_id", persisted.ID.String(),
		"member_id", memberID.String(),
		"request_id", requestcontext.RequestID(ctx),
	)
	return persisted, nil
}

// OpenStudy moves the study to OPENED, saves it and notifies. It performs no
// member check.
func (s *Service) OpenStudy(ctx context.Context, study *models.Study) (_ *models.Study, err error) {
	start := time.Now()
	ctx, span := s.tracer.Start(ctx, "study.OpenStudy")
	defer func() {
		endSpan(span, err)
		s.observe("open_study", start)
	}()

	if study == nil {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "study is required")
	}
	if !study.ID.IsNil() {
		span.SetAttributes(attribute.String("study_id", study.ID.String()))
	}
	if study.IsOpened() {
		s.logger.InfoContext(ctx, "re-opening study", "study_id", study.ID.String())
	}

	study.Open(s.now())

	persisted, err := s.studies.Save(ctx, study)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to save study")
	}

	if err := s.members.NotifyStudy(ctx, persisted); err != nil {
		s.incrementNotificationFailure()
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to notify study owner")
	}

	s.incrementOpened()
	s.logger.InfoContext(ctx, "study opened",
		"study_id", persisted.ID.String(),
		"request_id", requestcontext.RequestID(ctx),
	)
	return persisted, nil
}

func (s *Service) GetStudy(ctx context.Context, studyID id.StudyID) (_ *models.Study, err error) {
	start := time.Now()
	ctx, span := s.tracer.Start(ctx, "study.GetStudy", trace.WithAttributes(attribute.String("study_id", studyID.String())))
	defer func() {
		endSpan(span, err)
		s.observe("get_study", start)
	}()

	study, err := s.studies.FindByID(ctx, studyID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, fmt.Sprintf("study not found for '%s'", studyID))
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load study")
	}
	return study, nil
}

// SaveStudy persists the study as given, without ownership or notification.
func (s *Service) SaveStudy(ctx context.Context, study *models.Study) (_ *models.Study, err error) {
	start := time.Now()
	ctx, span := s.tracer.Start(ctx, "study.SaveStudy")
	defer func() {
		endSpan(span, err)
		s.observe("save_study", start)
	}()

	if study == nil {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "study is required")
	}
	persisted, err := s.studies.Save(ctx, study)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to save study")
	}
	return persisted, nil
}

func (s *Service) now() time.Time {
	if s.clock != nil {
		return s.clock()
	}
	return time.Now()
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
