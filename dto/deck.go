package dto

// DeckRow is one line of the deck table handed to the export collaborators.
type DeckRow struct {
	ID      int    `json:"id" db:"id"`
	Color   int    `json:"color" db:"color"`
	Points  int    `json:"points" db:"points"`
	Bonus   int    `json:"bonus" db:"bonus"`
	Coupons int    `json:"coupons" db:"coupons"`
	Cost0   int    `json:"cost0" db:"cost0"`
	Cost1   int    `json:"cost1" db:"cost1"`
	Cost2   int    `json:"cost2" db:"cost2"`
	Cost3   int    `json:"cost3" db:"cost3"`
	Cost4   int    `json:"cost4" db:"cost4"`
	Cost5   int    `json:"cost5" db:"cost5"`
	Name    string `json:"name" db:"name"`
}

// PatternRank reports the simulated speed and assigned values of one pattern.
type PatternRank struct {
	Rank     int     `json:"rank"`
	Pattern  int     `json:"pattern"`
	Word     string  `json:"word"`
	Cost     []int   `json:"cost"`
	Speed    float64 `json:"speed"`
	Points   int     `json:"points"`
	Bonus    int     `json:"bonus"`
	Coupons  int     `json:"coupons"`
	Excluded bool    `json:"excluded"`
}

type GetDeck struct {
	Cards    int       `json:"cards"`
	Patterns int       `json:"patterns"`
	Rows     []DeckRow `json:"rows"`
}
