package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"studylab/internal/member/models"
	"studylab/internal/member/notifier"
	studyModels "studylab/internal/study/models"
	"studylab/pkg/domain"
	dErrors "studylab/pkg/domain-errors"
	"studylab/pkg/email"
	"studylab/pkg/platform/sentinel"
	"studylab/pkg/requestcontext"
)

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks Store,Notifier

type Store interface {
	Create(ctx context.Context, member *models.Member) error
	FindByID(ctx context.Context, memberID domain.MemberID) (*models.Member, error)
	FindByEmail(ctx context.Context, email string) (*models.Member, error)
}

type Notifier interface {
	Notify(ctx context.Context, n notifier.Notification) error
}

var tracer = otel.Tracer("studylab/internal/member/service")

// Service is the member collaborator consumed by the study service.
type Service struct {
	store    Store
	notifier Notifier
	logger   *slog.Logger
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// New constructs a Service. Both collaborators are required.
func New(store Store, n Notifier, opts ...Option) *Service {
	if store == nil || n == nil {
		panic("member service: store and notifier are required")
	}
	s := &Service{store: store, notifier: n, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FindByID returns sentinel.ErrNotFound unchanged when the member is unknown.
func (s *Service) FindByID(ctx context.Context, memberID domain.MemberID) (_ *models.Member, err error) {
	ctx, span := tracer.Start(ctx, "member.FindByID", trace.WithAttributes(attribute.String("member_id", memberID.String())))
	defer func() { endSpan(span, err) }()

	m, err := s.store.FindByID(ctx, memberID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, err
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load member")
	}
	return m, nil
}

// Validate checks that the member exists and can receive notifications.
func (s *Service) Validate(ctx context.Context, memberID domain.MemberID) (err error) {
	ctx, span := tracer.Start(ctx, "member.Validate", trace.WithAttributes(attribute.String("member_id", memberID.String())))
	defer func() { endSpan(span, err) }()

	m, err := s.store.FindByID(ctx, memberID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, fmt.Sprintf("member doesn't exist for id: '%s'", memberID))
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load member")
	}
	if !m.HasValidEmail() {
		return dErrors.New(dErrors.CodeInvalidInput, "member has an invalid email address")
	}
	return nil
}

func (s *Service) NotifyStudy(ctx context.Context, study *studyModels.Study) (err error) {
	ctx, span := tracer.Start(ctx, "member.NotifyStudy", trace.WithAttributes(attribute.String("study_id", study.ID.String())))
	defer func() { endSpan(span, err) }()

	n := notifier.Notification{
		Kind:       notifier.KindStudy,
		SubjectID:  study.ID.String(),
		Status:     study.Status.String(),
		Name:       study.Name,
		RequestID:  requestcontext.RequestID(ctx),
		OccurredAt: requestcontext.Now(ctx),
	}
	if study.OwnerID != nil {
		n.OwnerID = study.OwnerID.String()
	}
	if err := s.notifier.Notify(ctx, n); err != nil {
		s.logger.WarnContext(ctx, "study notification failed",
			"study_id", n.SubjectID,
			"request_id", n.RequestID,
			"error", err,
		)
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to deliver study notification")
	}
	return nil
}

func (s *Service) NotifyMember(ctx context.Context, member *models.Member) (err error) {
	ctx, span := tracer.Start(ctx, "member.NotifyMember", trace.WithAttributes(attribute.String("member_id", member.ID.String())))
	defer func() { endSpan(span, err) }()

	n := notifier.Notification{
		Kind:       notifier.KindMember,
		SubjectID:  member.ID.String(),
		Recipient:  member.Email,
		Name:       member.DisplayName(),
		RequestID:  requestcontext.RequestID(ctx),
		OccurredAt: requestcontext.Now(ctx),
	}
	if err := s.notifier.Notify(ctx, n); err != nil {
		s.logger.WarnContext(ctx, "member notification failed",
			"member_id", n.SubjectID,
			"request_id", n.RequestID,
			"error", err,
		)
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to deliver member notification")
	}
	return nil
}

// Register creates a member with a fresh ID and sends the welcome notification.
func (s *Service) Register(ctx context.Context, address string) (_ *models.Member, err error) {
	ctx, span := tracer.Start(ctx, "member.Register")
	defer func() { endSpan(span, err) }()

	normalized := email.Normalize(address)
	if _, err := s.store.FindByEmail(ctx, normalized); err == nil {
		return nil, dErrors.New(dErrors.CodeConflict, "member already exists for email")
	} else if !errors.Is(err, sentinel.ErrNotFound) {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to look up member")
	}

	m, err := models.NewMember(domain.NewMemberID(), normalized, requestcontext.Now(ctx))
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeInvariantViolation) {
			return nil, dErrors.New(dErrors.CodeValidation, dErrors.MessageOf(err))
		}
		return nil, err
	}

	if err := s.store.Create(ctx, m); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return nil, dErrors.New(dErrors.CodeConflict, "member already exists for email")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create member")
	}
	s.logger.InfoContext(ctx, "member registered",
		"member_id", m.ID.String(),
		"request_id", requestcontext.RequestID(ctx),
	)

	if err := s.NotifyMember(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
