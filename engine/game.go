package engine

import (
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/exp/rand"

	"go-tycoon/dto"
	"go-tycoon/entities"
)

type Outcome string

const (
	OutcomeFinished Outcome = "finished"
	OutcomeVoid     Outcome = "void"
)

// Highlights counts the notable moves of a game; the example search filters on them.
type Highlights struct {
	Wildcard     int `json:"wildcard"`
	ForcedReturn int `json:"forcedReturn"`
	ExtraChips   int `json:"extraChips"`
	DoubleCoupon int `json:"doubleCoupon"`
	BonusPoints  int `json:"bonusPoints"`
}

type Result struct {
	Outcome Outcome  `json:"outcome"`
	Reason  string   `json:"reason,omitempty"`
	Players int      `json:"players"`
	Names   []string `json:"names"`
	// Turns is the number of completed rounds.
	Turns      int         `json:"turns"`
	Scores     []int       `json:"scores"`
	Winner     int         `json:"winner"`
	Tie        bool        `json:"tie"`
	Highlights Highlights  `json:"highlights"`
	Events     []dto.Event `json:"events"`
	// BonusAwards maps a bonus value to how often it was earned.
	BonusAwards map[int]int `json:"bonusAwards"`
}

// BonusEarned totals the bonus points awarded over the game.
func (r *Result) BonusEarned() int {
	total := 0
	for bonus, n := range r.BonusAwards {
		total += bonus * n
	}
	return total
}

type Option func(*Game)

// WithLogger makes the game log its tableau when it is voided.
func WithLogger(log *zap.Logger) Option {
	return func(g *Game) { g.log = log }
}

// WithoutEvents skips building the narration feed, for bulk surveys.
func WithoutEvents() Option {
	return func(g *Game) { g.quiet = true }
}

// Game is one table of the full game driven by the greedy agent. A Game is
// not safe for concurrent use.
type Game struct {
	cfg     Config
	rng     *rand.Rand
	log     *zap.Logger
	quiet   bool
	state   State
	initial Chips
	targets []int // card ID per player, -1 for none

	lastBuyTurn int
	acquired    int
	done        bool
	result      Result
	events      []dto.Event
}

func NewGame(cards []entities.Card, cfg Config, seed uint64, opts ...Option) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	g := &Game{
		cfg: cfg,
		rng: rand.New(rand.NewSource(seed)),
		log: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(g)
	}

	tableau, pile, err := deal(drawPile(cards, cfg), cfg.Rows, cfg.PerRow, g.rng)
	if err != nil {
		return nil, fmt.Errorf("deal %d-player game: %w", cfg.Players, err)
	}

	for c := range g.initial {
		g.initial[c] = cfg.BankByPlayers[cfg.Players]
	}
	g.state = State{
		Bank:    g.initial,
		Players: make([]PlayerState, cfg.Players),
		Tableau: tableau,
		Draw:    pile,
		Turn:    1,
	}
	g.targets = make([]int, cfg.Players)
	for p := range g.state.Players {
		g.state.Players[p].Name = cfg.playerName(p)
		g.targets[p] = -1
	}
	g.result = Result{
		Players:     cfg.Players,
		Winner:      -1,
		BonusAwards: map[int]int{},
	}
	return g, nil
}

// State exposes the live state for inspection. Callers must not modify it.
func (g *Game) State() *State {
	return &g.state
}

func (g *Game) InitialBank() Chips {
	return g.initial
}

func (g *Game) Done() bool {
	return g.done
}

// Step plays the active player's turn. It returns false once the game has
// finished or been voided.
func (g *Game) Step() bool {
	if g.done {
		return false
	}
	s := &g.state
	if s.Active == 0 && s.Turn > g.lastBuyTurn+g.cfg.LivenessTurns {
		g.void(fmt.Sprintf("no purchase in %d turns", g.cfg.LivenessTurns))
		return false
	}

	slot, chosen, ok := g.selectTarget()
	if !ok {
		g.void("tableau exhausted")
		return false
	}
	card := s.Tableau[slot].Card
	player := &s.Players[s.Active]
	g.emit(dto.Event{
		Kind:     dto.EventTarget,
		CardID:   card.ID,
		CardName: card.Name,
		Message:  targetMessage(player.Name, card.Name, chosen),
	})

	coupons := player.Coupons()
	need := NetCost(card.Cost, coupons, player.Chips)
	excess := Excess(card.Cost, coupons, player.Chips)
	if need.Sum() <= excess.Sum()/3 {
		g.buy(slot, need, excess)
	} else {
		g.takeChips(card, need)
	}

	if err := s.CheckConservation(g.initial); err != nil {
		panic(err)
	}
	g.advance()
	return !g.done
}

// Run plays the game to completion.
func (g *Game) Run() Result {
	for g.Step() {
	}
	return g.Result()
}

// Result reports the outcome so far; it is final once Done is true.
func (g *Game) Result() Result {
	r := g.result
	r.Turns = g.state.Turn - 1
	r.Scores = make([]int, len(g.state.Players))
	r.Names = make([]string, len(g.state.Players))
	for p, ps := range g.state.Players {
		r.Scores[p] = ps.Score
		r.Names[p] = ps.Name
	}
	r.Events = g.events
	return r
}

func (g *Game) emit(e dto.Event) {
	if g.quiet {
		return
	}
	s := &g.state
	e.Seq = len(g.events)
	e.Turn = s.Turn
	if e.Kind != dto.EventGameOver {
		e.Player = s.Active
		e.Score = s.Players[s.Active].Score
	}
	e.Actor = s.Players[e.Player].Name
	g.events = append(g.events, e)
}

func (g *Game) void(reason string) {
	g.done = true
	g.result.Outcome = OutcomeVoid
	g.result.Reason = reason
	g.emit(dto.Event{Kind: dto.EventVoid, Message: "The game is abandoned: " + reason + "."})

	var visible []string
	for _, i := range g.state.Visible() {
		visible = append(visible, g.state.Tableau[i].Card.Name)
	}
	g.log.Debug("game voided",
		zap.String("reason", reason),
		zap.Int("turn", g.state.Turn),
		zap.Int("players", g.cfg.Players),
		zap.Strings("tableau", visible),
		zap.Int("draw", len(g.state.Draw)))
}
