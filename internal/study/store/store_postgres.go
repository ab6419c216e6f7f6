package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"studylab/internal/platform/postgres"
	"studylab/internal/study/models"
	id "studylab/pkg/domain"
)

const (
	upsertStudySQL = `INSERT INTO studies (id, status, limit_count, name, opened_date_time, owner_id)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (id) DO UPDATE SET
    status = EXCLUDED.status,
    limit_count = EXCLUDED.limit_count,
    name = EXCLUDED.name,
    opened_date_time = EXCLUDED.opened_date_time,
    owner_id = EXCLUDED.owner_id`

	selectStudyColumns = `SELECT id, status, limit_count, name, opened_date_time, owner_id FROM studies`
	findStudySQL       = selectStudyColumns + ` WHERE id = $1`
	listStudiesSQL     = selectStudyColumns + ` ORDER BY id`
	deleteStudiesSQL   = `DELETE FROM studies`
)

// PostgresStore persists studies in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed study store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Save upserts the study. A study without an ID receives a fresh one.
func (s *PostgresStore) Save(ctx context.Context, study *models.Study) (*models.Study, error) {
	stored := study.Clone()
	if stored.ID.IsNil() {
		stored.ID = id.NewStudyID()
	}

	var owner uuid.NullUUID
	if stored.OwnerID != nil {
		owner = uuid.NullUUID{UUID: uuid.UUID(*stored.OwnerID), Valid: true}
	}
	var opened sql.NullTime
	if stored.OpenedDateTime != nil {
		opened = sql.NullTime{Time: *stored.OpenedDateTime, Valid: true}
	}

	_, err := s.db.ExecContext(ctx, upsertStudySQL,
		uuid.UUID(stored.ID),
		string(stored.Status),
		stored.LimitCount,
		stored.Name,
		opened,
		owner,
	)
	if err != nil {
		return nil, fmt.Errorf("save study: %w", postgres.TranslateError(err))
	}
	return stored, nil
}

func (s *PostgresStore) FindByID(ctx context.Context, studyID id.StudyID) (*models.Study, error) {
	study, err := scanStudy(s.db.QueryRowContext(ctx, findStudySQL, uuid.UUID(studyID)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find study by id: %w", err)
	}
	return study, nil
}

func (s *PostgresStore) List(ctx context.Context) ([]*models.Study, error) {
	rows, err := s.db.QueryContext(ctx, listStudiesSQL)
	if err != nil {
		return nil, fmt.Errorf("list studies: %w", err)
	}
	defer rows.Close()

	var out []*models.Study
	for rows.Next() {
		study, err := scanStudy(rows)
		if err != nil {
			return nil, fmt.Errorf("scan study: %w", err)
		}
		out = append(out, study)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate studies: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) DeleteAll(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, deleteStudiesSQL); err != nil {
		return fmt.Errorf("delete studies: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanStudy(row rowScanner) (*models.Study, error) {
	var (
		studyID uuid.UUID
		status  string
		study   models.Study
		opened  sql.NullTime
		owner   uuid.NullUUID
	)
	if err := row.Scan(&studyID, &status, &study.LimitCount, &study.Name, &opened, &owner); err != nil {
		return nil, err
	}
	study.ID = id.StudyID(studyID)
	study.Status = models.StudyStatus(status)
	if opened.Valid {
		t := opened.Time
		study.OpenedDateTime = &t
	}
	if owner.Valid {
		o := id.MemberID(owner.UUID)
		study.OwnerID = &o
	}
	return &study, nil
}
