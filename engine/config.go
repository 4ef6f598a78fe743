package engine

import (
	"errors"
	"fmt"

	"go-tycoon/entities"
)

var (
	ErrPlayerCount      = errors.New("engine: unsupported player count")
	ErrNoZeroPointCards = errors.New("engine: draw pile has no zero-point cards for the bottom row")
	ErrDeckTooSmall     = errors.New("engine: deck too small for the tableau")
)

type Config struct {
	Players       int `json:"players" mapstructure:"players"`
	WinningScore  int `json:"winningScore" mapstructure:"winning_score"`
	ChipLimit     int `json:"chipLimit" mapstructure:"chip_limit"`
	ChipsPerTurn  int `json:"chipsPerTurn" mapstructure:"chips_per_turn"`
	Rows          int `json:"rows" mapstructure:"rows"`
	PerRow        int `json:"perRow" mapstructure:"per_row"`
	LivenessTurns int `json:"livenessTurns" mapstructure:"liveness_turns"`
	// BankByPlayers[n] is the starting stock of every color with n players.
	BankByPlayers []int    `json:"bankByPlayers" mapstructure:"bank_by_players"`
	PlayerNames   []string `json:"playerNames" mapstructure:"player_names"`
	ChipNames     []string `json:"chipNames" mapstructure:"chip_names"`
	// Games with at least this many players leave the top-scoring cards out.
	DropTopCardsAt int `json:"dropTopCardsAt" mapstructure:"drop_top_cards_at"`
}

func DefaultConfig() Config {
	return Config{
		Players:        2,
		WinningScore:   25,
		ChipLimit:      10,
		ChipsPerTurn:   3,
		Rows:           3,
		PerRow:         5,
		LivenessTurns:  100,
		BankByPlayers:  []int{0, 4, 5, 6, 7, 8},
		PlayerNames:    []string{"Arrow", "Branch", "Cedar", "Dart", "Echo"},
		ChipNames:      []string{"ivory", "red", "blue", "green", "black", "purple"},
		DropTopCardsAt: 5,
	}
}

// MaxPlayers is the largest player count the bank table covers.
func (c Config) MaxPlayers() int {
	return len(c.BankByPlayers) - 1
}

func (c Config) Validate() error {
	if c.Players < 2 || c.Players > c.MaxPlayers() {
		return fmt.Errorf("%w: %d (bank table covers up to %d)", ErrPlayerCount, c.Players, c.MaxPlayers())
	}
	switch {
	case c.WinningScore < 1:
		return fmt.Errorf("engine: winning score must be positive, got %d", c.WinningScore)
	case c.ChipsPerTurn < 1 || c.ChipsPerTurn > entities.ColorCount:
		return fmt.Errorf("engine: chips per turn must be in [1,%d], got %d", entities.ColorCount, c.ChipsPerTurn)
	case c.ChipLimit < c.ChipsPerTurn:
		return fmt.Errorf("engine: chip limit %d is below chips per turn %d", c.ChipLimit, c.ChipsPerTurn)
	case c.Rows < 1 || c.PerRow < 1:
		return fmt.Errorf("engine: tableau must have at least one slot, got %dx%d", c.Rows, c.PerRow)
	case c.LivenessTurns < 1:
		return fmt.Errorf("engine: liveness turns must be positive, got %d", c.LivenessTurns)
	case len(c.ChipNames) != 0 && len(c.ChipNames) != entities.ColorCount:
		return fmt.Errorf("engine: %d chip names for %d colors", len(c.ChipNames), entities.ColorCount)
	}
	return nil
}

func (c Config) playerName(i int) string {
	if i < len(c.PlayerNames) {
		return c.PlayerNames[i]
	}
	return fmt.Sprintf("Player %d", i+1)
}

func (c Config) chipName(color int) string {
	if color < len(c.ChipNames) {
		return c.ChipNames[color]
	}
	return fmt.Sprintf("color %d", color)
}
