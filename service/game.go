package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"go-tycoon/dto"
	"go-tycoon/engine"
	"go-tycoon/entities"
	"go-tycoon/repository"
)

// GameService keeps narrated games for playback.
type GameService struct {
	store repository.GameStore
	log   *zap.Logger
	now   func() time.Time
}

func NewGameService(store repository.GameStore, log *zap.Logger) *GameService {
	return &GameService{store: store, log: log, now: time.Now}
}

// NewRecord wraps a finished or voided game in a playback record.
func NewRecord(seed uint64, r *engine.Result, created time.Time) *dto.GameRecord {
	status := entities.GameStatusFinished
	if r.Outcome == engine.OutcomeVoid {
		status = entities.GameStatusVoid
	}
	return &dto.GameRecord{
		ID:        uuid.New().String(),
		Seed:      seed,
		Players:   r.Names,
		Status:    status,
		Scores:    r.Scores,
		Turns:     r.Turns,
		Winner:    r.Winner,
		Tie:       r.Tie,
		CreatedAt: created,
		Events:    r.Events,
	}
}

func (s *GameService) Save(ctx context.Context, seed uint64, r *engine.Result) (*dto.GameRecord, error) {
	record := NewRecord(seed, r, s.now())
	if err := s.store.Save(ctx, record); err != nil {
		return nil, fmt.Errorf("save game record: %w", err)
	}
	s.log.Info("✅ game recorded",
		zap.String("id", record.ID),
		zap.Uint64("seed", seed),
		zap.Int("events", len(record.Events)))
	return record, nil
}

func (s *GameService) Get(ctx context.Context, id string) (*dto.GameRecord, error) {
	return s.store.Get(ctx, id)
}

func (s *GameService) List(ctx context.Context) ([]dto.GameSummary, error) {
	return s.store.List(ctx)
}
