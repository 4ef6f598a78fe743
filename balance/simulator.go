package balance

import (
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"
	"golang.org/x/exp/rand"

	"go-tycoon/entities"
	"go-tycoon/utils"
)

type Config struct {
	Trials       int    `json:"trials" mapstructure:"trials"`
	Workers      int    `json:"workers" mapstructure:"workers"` // 0 means one per CPU
	Seed         uint64 `json:"seed" mapstructure:"seed"`
	Players      int    `json:"players" mapstructure:"players"`
	Tableau      int    `json:"tableau" mapstructure:"tableau"`
	ChipsPerTake int    `json:"chipsPerTake" mapstructure:"chips_per_take"`
}

func DefaultConfig() Config {
	return Config{
		Trials:       10_000,
		Seed:         99169,
		Players:      2,
		Tableau:      15,
		ChipsPerTake: 3,
	}
}

func (c Config) Validate() error {
	switch {
	case c.Trials < 1:
		return fmt.Errorf("balance: trials must be positive, got %d", c.Trials)
	case c.Workers < 0:
		return fmt.Errorf("balance: workers must not be negative, got %d", c.Workers)
	case c.Players < 1:
		return fmt.Errorf("balance: players must be positive, got %d", c.Players)
	case c.Tableau < 1:
		return fmt.Errorf("balance: tableau must be positive, got %d", c.Tableau)
	case c.ChipsPerTake < 1 || c.ChipsPerTake > entities.ColorCount:
		return fmt.Errorf("balance: chips per take must be in [1,%d], got %d", entities.ColorCount, c.ChipsPerTake)
	}
	return nil
}

// workerCount resolves the configured worker count against the trial count.
func (c Config) workerCount() int {
	n := c.Workers
	if n == 0 {
		n = runtime.NumCPU()
	}
	if n > c.Trials {
		n = c.Trials
	}
	if n < 1 {
		n = 1
	}
	return n
}

// Simulate plays cfg.Trials abstract two-player games over the card variants
// and records, per variant, the round in which it was bought in each game.
// Every worker owns its generator and bags; nothing is shared until the join.
func Simulate(costs []entities.CardCost, cfg Config, log *zap.Logger) *Result {
	workers := cfg.workerCount()
	log.Info("⏳ balance simulation started",
		zap.String("trials", humanize.Comma(int64(cfg.Trials))),
		zap.Int("workers", workers),
		zap.Int("variants", len(costs)))
	start := time.Now()

	perWorker := make([][][]int, workers)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		trials := cfg.Trials / workers
		if w < cfg.Trials%workers {
			trials++
		}
		wg.Add(1)
		go func(w, trials int) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(cfg.Seed + uint64(w)))
			bags := make([][]int, len(costs))
			for i := 0; i < trials; i++ {
				playTrial(costs, cfg, rng, bags)
			}
			perWorker[w] = bags
			log.Debug("balance worker finished", zap.Int("worker", w), zap.Int("trials", trials))
		}(w, trials)
	}
	wg.Wait()

	result := &Result{Trials: cfg.Trials, bags: make([][]int, len(costs))}
	for _, bags := range perWorker {
		for i, bag := range bags {
			result.bags[i] = append(result.bags[i], bag...)
		}
	}

	log.Info("✅ balance simulation finished",
		zap.String("trials", humanize.Comma(int64(cfg.Trials))),
		zap.Duration("elapsed", time.Since(start)))
	return result
}

// playTrial runs one game to exhaustion of both the draw pile and the tableau.
func playTrial(costs []entities.CardCost, cfg Config, rng *rand.Rand, bags [][]int) {
	pile := make([]entities.CardCost, len(costs))
	copy(pile, costs)

	var tableau []entities.CardCost
	for i := 0; i < cfg.Tableau && len(pile) > 0; i++ {
		var card entities.CardCost
		card, pile = utils.TakeRandom(pile, rng)
		tableau = append(tableau, card)
	}

	chips := make([][entities.ColorCount]int, cfg.Players)
	coupons := make([][entities.ColorCount]int, cfg.Players)

	turn := 0
	for len(pile) > 0 || len(tableau) > 0 {
		turn++
		for p := 0; p < cfg.Players; p++ {
			var affordable []int
			for t, card := range tableau {
				if covers(card.Cost, chips[p], coupons[p]) {
					affordable = append(affordable, t)
				}
			}
			disallowed := coveredColors(tableau, chips[p], coupons[p])

			if (rng.Intn(2) == 0 && len(disallowed) <= 3) || len(affordable) == 0 {
				order := chipOrder(chips[p], disallowed, rng)
				for k := 0; k < cfg.ChipsPerTake && k < len(order); k++ {
					chips[p][order[k]]++
				}
				continue
			}

			pick := affordable[rng.Intn(len(affordable))]
			card := tableau[pick]
			tableau = utils.RemoveAt(tableau, pick)
			if len(pile) > 0 {
				var next entities.CardCost
				next, pile = utils.TakeRandom(pile, rng)
				tableau = append(tableau, next)
			}

			for c := range card.Cost {
				chips[p][c] -= max(0, card.Cost[c]-coupons[p][c])
				if chips[p][c] < 0 {
					panic(fmt.Sprintf("balance: player %d overdrew color %d buying variant %d", p, c, card.Index))
				}
			}
			coupons[p][card.Color]++
			bags[card.Index] = append(bags[card.Index], turn)

			if len(pile) == 0 && len(tableau) == 0 {
				break
			}
		}
	}
}

func covers(cost entities.CostVector, chips, coupons [entities.ColorCount]int) bool {
	for c := range cost {
		if cost[c] > chips[c]+coupons[c] {
			return false
		}
	}
	return true
}

// coveredColors lists the colors in which every tableau card is already paid for.
func coveredColors(tableau []entities.CardCost, chips, coupons [entities.ColorCount]int) []int {
	var covered []int
	for c := 0; c < entities.ColorCount; c++ {
		need := 0
		for _, card := range tableau {
			need = max(need, card.Cost[c])
		}
		if need <= chips[c]+coupons[c] {
			covered = append(covered, c)
		}
	}
	return covered
}

// chipOrder ranks colors for taking: a random subset of the colors already
// held first, then the rest, with covered colors pushed to the back.
func chipOrder(chips [entities.ColorCount]int, disallowed []int, rng *rand.Rand) []int {
	var held, other, blocked []int
	for c := 0; c < entities.ColorCount; c++ {
		switch {
		case utils.Contains(disallowed, c):
			blocked = append(blocked, c)
		case chips[c] > 0 && rng.Intn(2) == 0:
			held = append(held, c)
		default:
			other = append(other, c)
		}
	}
	order := utils.Scramble(held, rng)
	order = append(order, utils.Scramble(other, rng)...)
	return append(order, utils.Scramble(blocked, rng)...)
}
