package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"studylab/internal/member/models"
	"studylab/internal/member/notifier"
	"studylab/internal/member/service/mocks"
	"studylab/internal/member/store"
	studyModels "studylab/internal/study/models"
	"studylab/pkg/domain"
	dErrors "studylab/pkg/domain-errors"
	"studylab/pkg/platform/sentinel"
	"studylab/pkg/requestcontext"
)

type MemberServiceSuite struct {
	suite.Suite
	ctrl     *gomock.Controller
	store    *mocks.MockStore
	notifier *mocks.MockNotifier
	service  *Service
	ctx      context.Context
	now      time.Time
}

func TestMemberServiceSuite(t *testing.T) {
	suite.Run(t, new(MemberServiceSuite))
}

func (s *MemberServiceSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.store = mocks.NewMockStore(s.ctrl)
	s.notifier = mocks.NewMockNotifier(s.ctrl)
	s.service = New(s.store, s.notifier, WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	s.now = time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)
	s.ctx = requestcontext.WithRequestID(requestcontext.WithTime(context.Background(), s.now), "req-1")
}

func (s *MemberServiceSuite) member() *models.Member {
	m, err := models.NewMember(domain.NewMemberID(), "jane@example.com", s.now)
	s.Require().NoError(err)
	return m
}

func (s *MemberServiceSuite) TestFindByID() {
	s.Run("returns the stored member", func() {
		m := s.member()
		s.store.EXPECT().FindByID(gomock.Any(), m.ID).Return(m, nil)

		found, err := s.service.FindByID(s.ctx, m.ID)
		s.Require().NoError(err)
		s.Equal(m, found)
	})

	s.Run("passes ErrNotFound through", func() {
		s.store.EXPECT().FindByID(gomock.Any(), gomock.Any()).Return(nil, sentinel.ErrNotFound)

		_, err := s.service.FindByID(s.ctx, domain.NewMemberID())
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
		s.False(dErrors.HasCode(err, dErrors.CodeInternal))
	})

	s.Run("wraps infrastructure errors", func() {
		boom := errors.New("db down")
		s.store.EXPECT().FindByID(gomock.Any(), gomock.Any()).Return(nil, boom)

		_, err := s.service.FindByID(s.ctx, domain.NewMemberID())
		s.Require().ErrorIs(err, boom)
		s.True(dErrors.HasCode(err, dErrors.CodeInternal))
	})
}

func (s *MemberServiceSuite) TestValidate() {
	s.Run("accepts a known member", func() {
		m := s.member()
		s.store.EXPECT().FindByID(gomock.Any(), m.ID).Return(m, nil)
		s.NoError(s.service.Validate(s.ctx, m.ID))
	})

	s.Run("unknown member is not found", func() {
		memberID := domain.NewMemberID()
		s.store.EXPECT().FindByID(gomock.Any(), memberID).Return(nil, sentinel.ErrNotFound)

		err := s.service.Validate(s.ctx, memberID)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
		s.Contains(err.Error(), memberID.String())
	})

	s.Run("corrupt e-mail is invalid input", func() {
		m := &models.Member{ID: domain.NewMemberID(), Email: "broken"}
		s.store.EXPECT().FindByID(gomock.Any(), m.ID).Return(m, nil)

		err := s.service.Validate(s.ctx, m.ID)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})
}

func (s *MemberServiceSuite) TestNotifyStudy() {
	study, err := studyModels.NewNamedStudy(5, "go")
	s.Require().NoError(err)
	study.ID = domain.NewStudyID()
	owner := domain.NewMemberID()
	study.AssignOwner(owner)

	s.Run("builds the notification from the study and request context", func() {
		s.notifier.EXPECT().Notify(gomock.Any(), notifier.Notification{
			Kind:       notifier.KindStudy,
			SubjectID:  study.ID.String(),
			OwnerID:    owner.String(),
			Status:     "DRAFT",
			Name:       "go",
			RequestID:  "req-1",
			OccurredAt: s.now,
		}).Return(nil)

		s.NoError(s.service.NotifyStudy(s.ctx, study))
	})

	s.Run("delivery failure is unavailable", func() {
		boom := errors.New("broker down")
		s.notifier.EXPECT().Notify(gomock.Any(), gomock.Any()).Return(boom)

		err := s.service.NotifyStudy(s.ctx, study)
		s.Require().ErrorIs(err, boom)
		s.True(dErrors.HasCode(err, dErrors.CodeUnavailable))
	})
}

func (s *MemberServiceSuite) TestNotifyMember() {
	m := s.member()
	s.notifier.EXPECT().Notify(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, n notifier.Notification) error {
			s.Equal(notifier.KindMember, n.Kind)
			s.Equal(m.ID.String(), n.SubjectID)
			s.Equal("jane@example.com", n.Recipient)
			s.Equal("Jane", n.Name)
			return nil
		})

	s.NoError(s.service.NotifyMember(s.ctx, m))
}

func (s *MemberServiceSuite) TestRegister() {
	s.Run("creates then notifies", func() {
		var created *models.Member
		gomock.InOrder(
			s.store.EXPECT().FindByEmail(gomock.Any(), "new@example.com").Return(nil, sentinel.ErrNotFound),
			s.store.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, m *models.Member) error {
				created = m
				return nil
			}),
			s.notifier.EXPECT().Notify(gomock.Any(), gomock.Any()).Return(nil),
		)

		m, err := s.service.Register(s.ctx, " New@Example.com ")
		s.Require().NoError(err)
		s.Equal("new@example.com", m.Email)
		s.Equal(s.now, m.CreatedAt)
		s.False(m.ID.IsNil())
		s.Same(created, m)
	})

	s.Run("existing e-mail is a conflict", func() {
		s.store.EXPECT().FindByEmail(gomock.Any(), "jane@example.com").Return(s.member(), nil)

		_, err := s.service.Register(s.ctx, "jane@example.com")
		s.True(dErrors.HasCode(err, dErrors.CodeConflict))
	})

	s.Run("malformed e-mail is a validation error", func() {
		s.store.EXPECT().FindByEmail(gomock.Any(), "nope").Return(nil, sentinel.ErrNotFound)

		_, err := s.service.Register(s.ctx, "nope")
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("store conflict race is a conflict", func() {
		s.store.EXPECT().FindByEmail(gomock.Any(), gomock.Any()).Return(nil, sentinel.ErrNotFound)
		s.store.EXPECT().Create(gomock.Any(), gomock.Any()).Return(sentinel.ErrConflict)

		_, err := s.service.Register(s.ctx, "race@example.com")
		s.True(dErrors.HasCode(err, dErrors.CodeConflict))
	})
}

func TestNew_PanicsWithoutCollaborators(t *testing.T) {
	ctrl := gomock.NewController(t)
	assert.Panics(t, func() { New(nil, mocks.NewMockNotifier(ctrl)) })
	assert.Panics(t, func() { New(mocks.NewMockStore(ctrl), nil) })
}

func TestRegister_WithInMemoryCollaborators(t *testing.T) {
	ctx := context.Background()
	svc := New(store.NewInMemory(), notifier.NewLogNotifier(slog.New(slog.NewTextHandler(io.Discard, nil))))

	m, err := svc.Register(ctx, "alice@example.com")
	require.NoError(t, err)

	found, err := svc.FindByID(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, m.Email, found.Email)
	require.NoError(t, svc.Validate(ctx, m.ID))

	_, err = svc.Register(ctx, "ALICE@example.com")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeConflict))
}
