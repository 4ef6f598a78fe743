package dto

import (
	"time"

	"go-tycoon/entities"
)

// GameRecord is a narrated game kept for playback.
type GameRecord struct {
	ID        string              `json:"id"`
	Seed      uint64              `json:"seed"`
	Players   []string            `json:"players"`
	Status    entities.GameStatus `json:"status"`
	Scores    []int               `json:"scores"`
	Turns     int                 `json:"turns"`
	Winner    int                 `json:"winner"`
	Tie       bool                `json:"tie"`
	CreatedAt time.Time           `json:"createdAt"`
	Events    []Event             `json:"events"`
}

func (r *GameRecord) Summary() GameSummary {
	return GameSummary{
		ID:        r.ID,
		Seed:      r.Seed,
		Players:   r.Players,
		Status:    r.Status,
		Scores:    r.Scores,
		Turns:     r.Turns,
		Events:    len(r.Events),
		CreatedAt: r.CreatedAt,
	}
}

type GameSummary struct {
	ID        string              `json:"id"`
	Seed      uint64              `json:"seed"`
	Players   []string            `json:"players"`
	Status    entities.GameStatus `json:"status"`
	Scores    []int               `json:"scores"`
	Turns     int                 `json:"turns"`
	Events    int                 `json:"events"`
	CreatedAt time.Time           `json:"createdAt"`
}

type GetGameList struct {
	Games []GameSummary `json:"games"`
}
