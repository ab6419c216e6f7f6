package store

import (
	"context"
	"sort"
	"sync"

	"studylab/internal/study/models"
	id "studylab/pkg/domain"
)

// InMemory keeps studies in a map. Callers always receive copies.
type InMemory struct {
	mu      sync.RWMutex
	studies map[id.StudyID]*models.Study
}

func NewInMemory() *InMemory {
	return &InMemory{studies: make(map[id.StudyID]*models.Study)}
}

// Save assigns an ID on first save and replaces any existing record.
func (s *InMemory) Save(_ context.Context, study *models.Study) (*models.Study, error) {
	stored := study.Clone()
	if stored.ID.IsNil() {
		stored.ID = id.NewStudyID()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.studies[stored.ID] = stored
	return stored.Clone(), nil
}

func (s *InMemory) FindByID(_ context.Context, studyID id.StudyID) (*models.Study, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	study, ok := s.studies[studyID]
	if !ok {
		return nil, ErrNotFound
	}
	return study.Clone(), nil
}

// List returns every study ordered by ID.
func (s *InMemory) List(_ context.Context) ([]*models.Study, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Study, 0, len(s.studies))
	for _, study := range s.studies {
		out = append(out, study.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID.String() < out[j].ID.String() })
	return out, nil
}

func (s *InMemory) DeleteAll(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.studies = make(map[id.StudyID]*models.Study)
	return nil
}
