package dto

import "go-tycoon/entities"

type EventKind string

const (
	EventTarget    EventKind = "target"
	EventWildcard  EventKind = "wildcard"
	EventBuy       EventKind = "buy"
	EventReplenish EventKind = "replenish"
	EventTakeChips EventKind = "take_chips"
	EventReturn    EventKind = "return"
	EventAdvance   EventKind = "advance"
	EventGameOver  EventKind = "game_over"
	EventVoid      EventKind = "void"
)

// Event is one entry of the narration feed. Chips holds the per-color chip
// movement of the action (taken, paid, turned in or returned); Extra holds
// speculative chips taken for later and is nil when there are none.
type Event struct {
	Seq         int                       `json:"seq"`
	Turn        int                       `json:"turn"`
	Player      int                       `json:"player"`
	Actor       string                    `json:"actor"`
	Kind        EventKind                 `json:"kind"`
	Chips       [entities.ColorCount]int  `json:"chips"`
	Extra       *[entities.ColorCount]int `json:"extra,omitempty"`
	Wildcards   int                       `json:"wildcards,omitempty"`
	CardID      int                       `json:"cardId,omitempty"`
	CardName    string                    `json:"cardName,omitempty"`
	Replacement string                    `json:"replacement,omitempty"`
	Score       int                       `json:"score"`
	Bonus       int                       `json:"bonus,omitempty"`
	Message     string                    `json:"message,omitempty"`
}

// EndsTurn reports whether the event closes a player's turn in playback.
func (e Event) EndsTurn() bool {
	switch e.Kind {
	case EventAdvance, EventGameOver, EventVoid:
		return true
	}
	return false
}
