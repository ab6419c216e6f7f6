package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"studylab/internal/study/handler/mocks"
	"studylab/internal/study/models"
	id "studylab/pkg/domain"
	dErrors "studylab/pkg/domain-errors"
	"studylab/pkg/testutil"
)

type StudyHandlerSuite struct {
	suite.Suite
	service *mocks.MockService
	router  chi.Router
}

func TestStudyHandlerSuite(t *testing.T) {
	suite.Run(t, new(StudyHandlerSuite))
}

func (s *StudyHandlerSuite) SetupTest() {
	ctrl := gomock.NewController(s.T())
	s.service = mocks.NewMockService(ctrl)
	s.router = chi.NewRouter()
	New(s.service, slog.New(slog.NewTextHandler(io.Discard, nil))).Register(s.router)
}

func (s *StudyHandlerSuite) stored(name string) *models.Study {
	study, err := models.NewNamedStudy(10, name)
	s.Require().NoError(err)
	study.ID = id.NewStudyID()
	return study
}

func (s *StudyHandlerSuite) TestGetStudy() {
	s.Run("200 with the study", func() {
		study := s.stored("go")
		s.service.EXPECT().GetStudy(gomock.Any(), study.ID).Return(study, nil)

		rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodGet, "/study/"+study.ID.String(), nil))

		s.Equal(http.StatusOK, rr.Code)
		resp := testutil.UnmarshalResponse[StudyResponse](s.T(), rr)
		s.Equal(study.ID.String(), resp.ID)
		s.Equal("DRAFT", resp.Status)
		s.Equal(10, resp.LimitCount)
		s.Empty(resp.OwnerID)
		s.Nil(resp.OpenedDateTime)
	})

	s.Run("404 when the service reports not found", func() {
		studyID := id.NewStudyID()
		s.service.EXPECT().GetStudy(gomock.Any(), studyID).
			Return(nil, dErrors.New(dErrors.CodeNotFound, "study not found for '"+studyID.String()+"'"))

		rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodGet, "/study/"+studyID.String(), nil))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusNotFound, "not_found")
	})

	s.Run("400 on malformed id", func() {
		rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodGet, "/study/42", nil))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "invalid_input")
	})
}

func (s *StudyHandlerSuite) TestSaveStudy() {
	s.Run("201 with the persisted study", func() {
		s.service.EXPECT().SaveStudy(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, st *models.Study) (*models.Study, error) {
				s.Equal("java", st.Name)
				s.Equal(10, st.LimitCount)
				s.Equal(models.StudyStatusDraft, st.Status)
				saved := st.Clone()
				saved.ID = id.NewStudyID()
				return saved, nil
			})

		rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, "/study", CreateStudyRequest{LimitCount: 10, Name: " java "}))

		s.Equal(http.StatusCreated, rr.Code)
		resp := testutil.UnmarshalResponse[StudyResponse](s.T(), rr)
		s.NotEmpty(resp.ID)
	})

	s.Run("400 with the constructor message on a negative limit", func() {
		rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, "/study", CreateStudyRequest{LimitCount: -10}))

		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "invalid_input")
		s.Contains(rr.Body.String(), models.ErrMsgNegativeLimit)
	})

	s.Run("400 on malformed body", func() {
		rr := testutil.DoRequest(s.router, testutil.NewRequestWithBody(http.MethodPost, "/study", `{"limit_count":"ten"}`))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "bad_request")
	})
}

func (s *StudyHandlerSuite) TestOpenStudy() {
	s.Run("loads then opens", func() {
		study := s.stored("tdd")
		openedAt := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
		gomock.InOrder(
			s.service.EXPECT().GetStudy(gomock.Any(), study.ID).Return(study, nil),
			s.service.EXPECT().OpenStudy(gomock.Any(), study).
				DoAndReturn(func(_ context.Context, st *models.Study) (*models.Study, error) {
					st.Open(openedAt)
					return st, nil
				}),
		)

		rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, "/study/"+study.ID.String()+"/open", nil))

		s.Equal(http.StatusOK, rr.Code)
		resp := testutil.UnmarshalResponse[StudyResponse](s.T(), rr)
		s.Equal("OPENED", resp.Status)
		s.Require().NotNil(resp.OpenedDateTime)
		s.True(openedAt.Equal(*resp.OpenedDateTime))
	})

	s.Run("404 when the study is unknown", func() {
		s.service.EXPECT().GetStudy(gomock.Any(), gomock.Any()).
			Return(nil, dErrors.New(dErrors.CodeNotFound, "study not found"))

		rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, "/study/"+id.NewStudyID().String()+"/open", nil))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusNotFound, "not_found")
	})
}

func (s *StudyHandlerSuite) TestCreateForMember() {
	memberID := id.NewMemberID()

	s.Run("201 with the owned study", func() {
		s.service.EXPECT().CreateNewStudy(gomock.Any(), memberID, gomock.Any()).
			DoAndReturn(func(_ context.Context, m id.MemberID, st *models.Study) (*models.Study, error) {
				created := st.Clone()
				created.ID = id.NewStudyID()
				created.AssignOwner(m)
				return created, nil
			})

		rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, "/members/"+memberID.String()+"/studies", CreateStudyRequest{LimitCount: 10, Name: "java"}))

		s.Equal(http.StatusCreated, rr.Code)
		resp := testutil.UnmarshalResponse[StudyResponse](s.T(), rr)
		s.Equal(memberID.String(), resp.OwnerID)
	})

	s.Run("404 when the member does not exist", func() {
		s.service.EXPECT().CreateNewStudy(gomock.Any(), memberID, gomock.Any()).
			Return(nil, dErrors.New(dErrors.CodeNotFound, "member doesn't exist for id: '"+memberID.String()+"'"))

		rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, "/members/"+memberID.String()+"/studies", CreateStudyRequest{LimitCount: 1}))

		testutil.AssertStatusAndError(s.T(), rr, http.StatusNotFound, "not_found")
		s.Contains(rr.Body.String(), "member doesn't exist for id")
	})

	s.Run("400 on malformed member id", func() {
		rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, "/members/abc/studies", CreateStudyRequest{LimitCount: 1}))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "invalid_input")
	})
}
