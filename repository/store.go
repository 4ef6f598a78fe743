package repository

import (
	"context"
	"errors"
	"sync"

	"go-tycoon/dto"
)

var ErrGameNotFound = errors.New("game not found")

// GameStore keeps narrated games for playback.
type GameStore interface {
	Save(ctx context.Context, record *dto.GameRecord) error
	Get(ctx context.Context, id string) (*dto.GameRecord, error)
	List(ctx context.Context) ([]dto.GameSummary, error)
}

// MemoryStore is a process-local GameStore.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]*dto.GameRecord
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]*dto.GameRecord)}
}

func (s *MemoryStore) Save(_ context.Context, record *dto.GameRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[record.ID] = record
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (*dto.GameRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.records[id]
	if !ok {
		return nil, ErrGameNotFound
	}
	return record, nil
}

func (s *MemoryStore) List(_ context.Context) ([]dto.GameSummary, error) {
	s.mu.RLock()
	summaries := make([]dto.GameSummary, 0, len(s.records))
	for _, r := range s.records {
		summaries = append(summaries, r.Summary())
	}
	s.mu.RUnlock()

	sortSummaries(summaries)
	return summaries, nil
}
