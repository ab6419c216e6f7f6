//go:build integration

package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"studylab/internal/member/models"
	"studylab/internal/member/store"
	"studylab/pkg/domain"
	"studylab/pkg/testutil"
	"studylab/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *store.PostgresStore
	ctx      context.Context
}

func TestPostgresStoreSuite(t *testing.T) {
	testutil.SlowTest(t)
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.postgres = containers.GetManager().GetPostgres(s.T())
	s.store = store.NewPostgres(s.postgres.DB)
	s.ctx = context.Background()
}

func (s *PostgresStoreSuite) SetupTest() {
	testutil.FindSlow(s.T())
	s.Require().NoError(s.postgres.TruncateTables(s.ctx, "studies", "members"))
}

func (s *PostgresStoreSuite) newMember(address string) *models.Member {
	m, err := models.NewMember(domain.NewMemberID(), address, time.Now().UTC().Truncate(time.Microsecond))
	s.Require().NoError(err)
	return m
}

func (s *PostgresStoreSuite) TestCreateAndFind() {
	m := s.newMember("jane@example.com")
	s.Require().NoError(s.store.Create(s.ctx, m))

	byID, err := s.store.FindByID(s.ctx, m.ID)
	s.Require().NoError(err)
	s.Equal(m.Email, byID.Email)
	s.True(m.CreatedAt.Equal(byID.CreatedAt))

	byEmail, err := s.store.FindByEmail(s.ctx, "JANE@example.com")
	s.Require().NoError(err)
	s.Equal(m.ID, byEmail.ID)
}

func (s *PostgresStoreSuite) TestDuplicateEmailIsConflict() {
	s.Require().NoError(s.store.Create(s.ctx, s.newMember("dup@example.com")))
	err := s.store.Create(s.ctx, s.newMember("dup@example.com"))
	s.Require().ErrorIs(err, store.ErrConflict)
}

func (s *PostgresStoreSuite) TestFindUnknown() {
	_, err := s.store.FindByID(s.ctx, domain.NewMemberID())
	s.Require().ErrorIs(err, store.ErrNotFound)
}
