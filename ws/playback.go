package ws

import (
	"github.com/gorilla/websocket"

	"go-tycoon/dto"
)

// playback is one viewer's cursor into a recorded narration feed.
type playback struct {
	hub      *Hub
	conn     *websocket.Conn
	viewerID string
	record   *dto.GameRecord
	pos      int
}

type messageHandler func(p *playback) error

var messageHandlers = map[string]messageHandler{
	"next":    handleNextMessage,
	"restart": handleRestartMessage,
}

func (p *playback) send(msg []byte) error {
	return p.conn.WriteMessage(websocket.TextMessage, msg)
}

func (p *playback) sendInit() error {
	return p.send(buildMessage("init", map[string]interface{}{
		"viewerId": p.viewerID,
		"viewers":  p.hub.Viewers(p.record.ID),
		"game":     p.record.Summary(),
	}))
}

// nextTurn returns the events up to and including the next one that closes
// a turn, and advances the cursor past them.
func (p *playback) nextTurn() []dto.Event {
	events := p.record.Events
	start := p.pos
	for p.pos < len(events) {
		e := events[p.pos]
		p.pos++
		if e.EndsTurn() {
			break
		}
	}
	return events[start:p.pos]
}

func handleNextMessage(p *playback) error {
	events := p.nextTurn()
	if len(events) == 0 {
		return p.send(buildMessage("end", map[string]interface{}{
			"status": p.record.Status,
			"scores": p.record.Scores,
		}))
	}
	return p.send(buildMessage("turn", map[string]interface{}{
		"events": events,
		"done":   p.pos == len(p.record.Events),
	}))
}

func handleRestartMessage(p *playback) error {
	p.pos = 0
	return p.sendInit()
}
