package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"go-tycoon/engine"
	"go-tycoon/entities"
)

var ErrNoExample = errors.New("no game matched the example criteria")

// Criteria describes a game worth narrating: one that shows off every rule.
type Criteria struct {
	Players          int  `json:"players" mapstructure:"players"`
	MinWildcards     int  `json:"minWildcards" mapstructure:"min_wildcards"`
	MinForcedReturns int  `json:"minForcedReturns" mapstructure:"min_forced_returns"`
	MinExtraChips    int  `json:"minExtraChips" mapstructure:"min_extra_chips"`
	MinDoubleCoupons int  `json:"minDoubleCoupons" mapstructure:"min_double_coupons"`
	MinBonusAwards   int  `json:"minBonusAwards" mapstructure:"min_bonus_awards"`
	AllowTie         bool `json:"allowTie" mapstructure:"allow_tie"`
	// MaxRounds rejects games lasting this many completed rounds or more. Zero
	// disables it.
	MaxRounds int `json:"maxRounds" mapstructure:"max_rounds"`
}

func DefaultCriteria() Criteria {
	return Criteria{
		Players:          2,
		MinWildcards:     1,
		MinForcedReturns: 1,
		MinExtraChips:    1,
		MinDoubleCoupons: 1,
		MinBonusAwards:   1,
		MaxRounds:        40,
	}
}

func (c Criteria) Match(r *engine.Result) bool {
	h := r.Highlights
	switch {
	case r.Outcome != engine.OutcomeFinished:
		return false
	case c.Players != 0 && r.Players != c.Players:
		return false
	case h.Wildcard < c.MinWildcards, h.ForcedReturn < c.MinForcedReturns, h.ExtraChips < c.MinExtraChips:
		return false
	case h.DoubleCoupon < c.MinDoubleCoupons, h.BonusPoints < c.MinBonusAwards:
		return false
	case r.Tie && !c.AllowTie:
		return false
	case c.MaxRounds > 0 && r.Turns >= c.MaxRounds:
		return false
	}
	return true
}

type SearchConfig struct {
	Seed     uint64        `json:"seed" mapstructure:"seed"`
	MaxGames int           `json:"maxGames" mapstructure:"max_games"`
	Workers  int           `json:"workers" mapstructure:"workers"`
	Criteria Criteria      `json:"criteria" mapstructure:"criteria"`
	Engine   engine.Config `json:"-" mapstructure:"-"`
}

func DefaultSearchConfig() SearchConfig {
	return SearchConfig{
		Seed:     1,
		MaxGames: 200_000,
		Workers:  1,
		Criteria: DefaultCriteria(),
		Engine:   engine.DefaultConfig(),
	}
}

// SearchExample plays games on successive seeds until one matches the
// criteria, then replays that seed with narration. With several workers the
// seeds are striped across them and the lowest matching seed wins, so the
// answer does not depend on the worker count.
func SearchExample(ctx context.Context, cards []entities.Card, cfg SearchConfig, log *zap.Logger) (*engine.Result, uint64, error) {
	if cfg.MaxGames < 1 {
		return nil, 0, fmt.Errorf("search: max games must be positive, got %d", cfg.MaxGames)
	}
	ecfg := cfg.Engine
	if cfg.Criteria.Players != 0 {
		ecfg.Players = cfg.Criteria.Players
	}
	if err := ecfg.Validate(); err != nil {
		return nil, 0, err
	}
	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}
	if workers > cfg.MaxGames {
		workers = cfg.MaxGames
	}

	var (
		mu       sync.Mutex
		best     = -1 // offset from cfg.Seed
		firstErr error
		wg       sync.WaitGroup
	)
	found := func() int {
		mu.Lock()
		defer mu.Unlock()
		return best
	}

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := w; i < cfg.MaxGames; i += workers {
				if ctx.Err() != nil {
					return
				}
				if b := found(); b >= 0 && b < i {
					return
				}
				g, err := engine.NewGame(cards, ecfg, cfg.Seed+uint64(i), engine.WithoutEvents())
				if err != nil {
					mu.Lock()
					if firstErr == nil {
						firstErr = err
					}
					mu.Unlock()
					return
				}
				r := g.Run()
				if !cfg.Criteria.Match(&r) {
					continue
				}
				mu.Lock()
				if best < 0 || i < best {
					best = i
				}
				mu.Unlock()
				return
			}
		}(w)
	}
	wg.Wait()

	if firstErr != nil {
		return nil, 0, fmt.Errorf("search: %w", firstErr)
	}
	if best < 0 {
		if err := ctx.Err(); err != nil {
			return nil, 0, err
		}
		return nil, 0, fmt.Errorf("%w in %d games", ErrNoExample, cfg.MaxGames)
	}

	seed := cfg.Seed + uint64(best)
	g, err := engine.NewGame(cards, ecfg, seed, engine.WithLogger(log))
	if err != nil {
		return nil, 0, err
	}
	r := g.Run()
	log.Info("✅ example game found",
		zap.Uint64("seed", seed),
		zap.Int("tried", best+1),
		zap.Int("turns", r.Turns),
		zap.Ints("scores", r.Scores))
	return &r, seed, nil
}
