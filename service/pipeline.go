package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"go-tycoon/balance"
	"go-tycoon/deck"
	"go-tycoon/entities"
	"go-tycoon/pattern"
)

// Pipeline turns the pattern options into a balanced, named deck.
type Pipeline struct {
	Patterns pattern.Options
	Balance  balance.Config
	// Names[c] is the name pool of color c.
	Names [][]string
	Rules deck.Rules
	Log   *zap.Logger
}

type Output struct {
	Patterns []entities.CostPattern
	Costs    []entities.CardCost
	Balance  *balance.Result
	Speeds   []balance.PatternSpeed
	Deck     *deck.Deck
}

// Run generates, simulates and assembles. Everything that can be checked
// without simulating is checked first, so a bad name file fails fast.
func (p *Pipeline) Run(ctx context.Context) (*Output, error) {
	log := p.Log
	if log == nil {
		log = zap.NewNop()
	}
	if err := p.Patterns.Validate(); err != nil {
		return nil, err
	}
	if err := p.Balance.Validate(); err != nil {
		return nil, err
	}

	patterns := pattern.Generate(p.Patterns)
	if len(patterns) == 0 {
		return nil, fmt.Errorf("pipeline: no pattern passes the filter")
	}
	if len(p.Names) != entities.ColorCount {
		return nil, fmt.Errorf("pipeline: %d name pools for %d colors", len(p.Names), entities.ColorCount)
	}
	for c, pool := range p.Names {
		if len(pool) < len(patterns) {
			return nil, fmt.Errorf("pipeline: color %d has %d names for %d patterns", c, len(pool), len(patterns))
		}
	}
	costs := pattern.BuildCardCosts(patterns, p.Patterns)
	if len(costs) < p.Balance.Tableau {
		return nil, fmt.Errorf("pipeline: %d card variants cannot fill a tableau of %d", len(costs), p.Balance.Tableau)
	}
	log.Info("✅ patterns generated", zap.Int("patterns", len(patterns)), zap.Int("variants", len(costs)))

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := time.Now()
	result := balance.Simulate(costs, p.Balance, log)
	speeds := result.Speeds(entities.ColorCount)

	d, err := deck.Assemble(patterns, costs, speeds, p.Names, p.Rules)
	if err != nil {
		return nil, fmt.Errorf("assemble deck: %w", err)
	}
	log.Info("✅ deck assembled",
		zap.Int("cards", len(d.Cards)),
		zap.Int("kept", len(d.Infos)),
		zap.Duration("elapsed", time.Since(start)))

	return &Output{
		Patterns: patterns,
		Costs:    costs,
		Balance:  result,
		Speeds:   speeds,
		Deck:     d,
	}, nil
}
