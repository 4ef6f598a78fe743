package service

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"
	"golang.org/x/exp/rand"

	"go-tycoon/engine"
	"go-tycoon/entities"
)

const progressEvery = 10_000

type SurveyConfig struct {
	Games      int           `json:"games" mapstructure:"games"`
	Workers    int           `json:"workers" mapstructure:"workers"`
	Seed       uint64        `json:"seed" mapstructure:"seed"`
	MinPlayers int           `json:"minPlayers" mapstructure:"min_players"`
	MaxPlayers int           `json:"maxPlayers" mapstructure:"max_players"`
	Engine     engine.Config `json:"-" mapstructure:"-"`
}

func DefaultSurveyConfig() SurveyConfig {
	return SurveyConfig{
		Games:      100_000,
		Workers:    1,
		Seed:       1,
		MinPlayers: 2,
		MaxPlayers: 5,
		Engine:     engine.DefaultConfig(),
	}
}

// Record notes the game holding the current high mark of some statistic.
type Record struct {
	Value   int    `json:"value"`
	Seed    uint64 `json:"seed"`
	Players int    `json:"players"`
}

// Stats aggregates survey results. Counters are atomic; the histogram and
// the records share one mutex.
type Stats struct {
	total atomic.Int64
	void  atomic.Int64

	mu      sync.Mutex
	lengths map[int]map[int]int // players -> completed rounds -> games
	twos    Record
	threes  Record
	bonus   Record
}

func NewStats() *Stats {
	return &Stats{lengths: make(map[int]map[int]int)}
}

// Add folds one game into the stats and returns the new game total. Void
// games are counted but never reach the histogram or the records.
func (s *Stats) Add(seed uint64, r *engine.Result) int64 {
	n := s.total.Add(1)
	if r.Outcome == engine.OutcomeVoid {
		s.void.Add(1)
		return n
	}

	// a +4 bonus counts as two +2 awards
	twos := r.BonusAwards[2] + 2*r.BonusAwards[4]
	threes := r.BonusAwards[3]
	earned := r.BonusEarned()

	s.mu.Lock()
	defer s.mu.Unlock()
	byTurns, ok := s.lengths[r.Players]
	if !ok {
		byTurns = make(map[int]int)
		s.lengths[r.Players] = byTurns
	}
	byTurns[r.Turns]++
	raise(&s.twos, twos, seed, r.Players)
	raise(&s.threes, threes, seed, r.Players)
	raise(&s.bonus, earned, seed, r.Players)
	return n
}

func raise(rec *Record, value int, seed uint64, players int) {
	if value > rec.Value {
		*rec = Record{Value: value, Seed: seed, Players: players}
	}
}

func (s *Stats) Total() int64 { return s.total.Load() }

func (s *Stats) Void() int64 { return s.void.Load() }

func (s *Stats) MostTwos() Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.twos
}

func (s *Stats) MostThrees() Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.threes
}

func (s *Stats) MostBonus() Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bonus
}

// Lengths returns how many finished games with the given player count lasted
// each number of rounds.
func (s *Stats) Lengths(players int) map[int]int {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[int]int, len(s.lengths[players]))
	for turns, n := range s.lengths[players] {
		out[turns] = n
	}
	return out
}

// WriteHistogram writes the game-length table: one row per round count, one
// column per player count.
func (s *Stats) WriteHistogram(w io.Writer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var players []int
	maxTurns := 0
	for p, byTurns := range s.lengths {
		players = append(players, p)
		for t := range byTurns {
			if t > maxTurns {
				maxTurns = t
			}
		}
	}
	sort.Ints(players)

	header := []string{"Turns"}
	for _, p := range players {
		header = append(header, fmt.Sprintf("%dP", p))
	}
	if _, err := fmt.Fprintln(w, strings.Join(header, "\t")); err != nil {
		return err
	}
	for t := 1; t <= maxTurns; t++ {
		row := []string{fmt.Sprint(t)}
		for _, p := range players {
			row = append(row, fmt.Sprint(s.lengths[p][t]))
		}
		if _, err := fmt.Fprintln(w, strings.Join(row, "\t")); err != nil {
			return err
		}
	}
	return nil
}

// Survey plays cfg.Games games with player counts drawn uniformly from
// [MinPlayers, MaxPlayers]. Worker w draws its player counts and game seeds
// from a generator seeded with Seed+w. A cancelled context stops the workers
// early; the stats gathered so far are returned with the context error.
func Survey(ctx context.Context, cards []entities.Card, cfg SurveyConfig, log *zap.Logger) (*Stats, error) {
	if cfg.Games < 1 {
		return nil, fmt.Errorf("survey: games must be positive, got %d", cfg.Games)
	}
	if cfg.MinPlayers < 2 || cfg.MaxPlayers < cfg.MinPlayers || cfg.MaxPlayers > cfg.Engine.MaxPlayers() {
		return nil, fmt.Errorf("%w: survey range %d-%d", engine.ErrPlayerCount, cfg.MinPlayers, cfg.MaxPlayers)
	}
	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}
	if workers > cfg.Games {
		workers = cfg.Games
	}

	stats := NewStats()
	log.Info("⏳ survey started",
		zap.String("games", humanize.Comma(int64(cfg.Games))),
		zap.Int("workers", workers))

	var (
		wg       sync.WaitGroup
		errOnce  sync.Once
		firstErr error
	)
	per, extra := cfg.Games/workers, cfg.Games%workers
	for w := 0; w < workers; w++ {
		n := per
		if w < extra {
			n++
		}
		wg.Add(1)
		go func(w, n int) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(cfg.Seed + uint64(w)))
			ecfg := cfg.Engine
			for i := 0; i < n; i++ {
				if ctx.Err() != nil {
					return
				}
				ecfg.Players = cfg.MinPlayers + rng.Intn(cfg.MaxPlayers-cfg.MinPlayers+1)
				seed := rng.Uint64()
				g, err := engine.NewGame(cards, ecfg, seed, engine.WithoutEvents(), engine.WithLogger(log))
				if err != nil {
					errOnce.Do(func() { firstErr = err })
					return
				}
				r := g.Run()
				if total := stats.Add(seed, &r); total%progressEvery == 0 {
					log.Info("⏳ survey progress",
						zap.String("games", humanize.Comma(total)),
						zap.String("void", humanize.Comma(stats.Void())))
				}
			}
		}(w, n)
	}
	wg.Wait()

	if firstErr != nil {
		return stats, fmt.Errorf("survey: %w", firstErr)
	}
	if err := ctx.Err(); err != nil {
		return stats, err
	}
	log.Info("✅ survey finished",
		zap.String("games", humanize.Comma(stats.Total())),
		zap.String("void", humanize.Comma(stats.Void())),
		zap.Int("mostTwos", stats.MostTwos().Value),
		zap.Int("mostThrees", stats.MostThrees().Value),
		zap.Int("mostBonus", stats.MostBonus().Value))
	return stats, nil
}
