package entities

// Sector is one card category; its chips are the currency paid for it.
type Sector struct {
	Name  string `json:"name" mapstructure:"name"`
	Color string `json:"color" mapstructure:"color"` // display color, "#rrggbb"
	Chip  string `json:"chip" mapstructure:"chip"`   // chip name used in narration, e.g. "ivory"
}

type GameStatus string

const (
	GameStatusPlaying  GameStatus = "playing"
	GameStatusFinished GameStatus = "finished"
	GameStatusVoid     GameStatus = "void" // aborted by the liveness guard
)
