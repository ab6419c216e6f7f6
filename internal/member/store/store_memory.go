package store

import (
	"context"
	"sync"

	"studylab/internal/member/models"
	"studylab/pkg/domain"
)

// InMemory indexes members by ID and by normalized e-mail.
type InMemory struct {
	mu      sync.RWMutex
	members map[domain.MemberID]models.Member
	byEmail map[string]domain.MemberID
}

func NewInMemory() *InMemory {
	return &InMemory{
		members: make(map[domain.MemberID]models.Member),
		byEmail: make(map[string]domain.MemberID),
	}
}

// Create stores a new member. E-mail addresses are unique.
func (s *InMemory) Create(_ context.Context, member *models.Member) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.members[member.ID]; exists {
		return ErrConflict
	}
	if _, taken := s.byEmail[member.Email]; taken {
		return ErrConflict
	}
	s.members[member.ID] = *member
	s.byEmail[member.Email] = member.ID
	return nil
}

func (s *InMemory) FindByID(_ context.Context, memberID domain.MemberID) (*models.Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.members[memberID]
	if !ok {
		return nil, ErrNotFound
	}
	return &m, nil
}

func (s *InMemory) FindByEmail(_ context.Context, email string) (*models.Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	memberID, ok := s.byEmail[email]
	if !ok {
		return nil, ErrNotFound
	}
	m := s.members[memberID]
	return &m, nil
}
