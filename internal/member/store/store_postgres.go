package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"studylab/internal/member/models"
	"studylab/internal/platform/postgres"
	"studylab/pkg/domain"
)

// PostgresStore persists members in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed member store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Create(ctx context.Context, member *models.Member) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO members (id, email, created_at) VALUES ($1, $2, $3)`,
		uuid.UUID(member.ID), member.Email, member.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create member: %w", postgres.TranslateError(err))
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, memberID domain.MemberID) (*models.Member, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, email, created_at FROM members WHERE id = $1`, uuid.UUID(memberID))
	return scanMember(row, "find member by id")
}

func (s *PostgresStore) FindByEmail(ctx context.Context, email string) (*models.Member, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, email, created_at FROM members WHERE LOWER(email) = LOWER($1)`, email)
	return scanMember(row, "find member by email")
}

func scanMember(row *sql.Row, op string) (*models.Member, error) {
	var (
		memberID uuid.UUID
		m        models.Member
	)
	if err := row.Scan(&memberID, &m.Email, &m.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	m.ID = domain.MemberID(memberID)
	return &m, nil
}
