package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"go-tycoon/dto"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// GameSource loads a recorded game by id.
type GameSource interface {
	Get(ctx context.Context, id string) (*dto.GameRecord, error)
}

// Hub serves recorded games over websockets. Every connection gets its own
// playback cursor; the hub only tracks who is watching what.
type Hub struct {
	games GameSource
	log   *zap.Logger

	mu      sync.Mutex
	viewers map[string]map[string]struct{} // gameID -> viewer ids
}

func NewHub(games GameSource, log *zap.Logger) *Hub {
	return &Hub{
		games:   games,
		log:     log,
		viewers: make(map[string]map[string]struct{}),
	}
}

// Viewers counts the open connections watching gameID.
func (h *Hub) Viewers(gameID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.viewers[gameID])
}

func (h *Hub) join(gameID, viewerID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.viewers[gameID] == nil {
		h.viewers[gameID] = make(map[string]struct{})
	}
	h.viewers[gameID][viewerID] = struct{}{}
	return len(h.viewers[gameID])
}

func (h *Hub) leave(gameID, viewerID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.viewers[gameID], viewerID)
	if len(h.viewers[gameID]) == 0 {
		delete(h.viewers, gameID)
	}
	h.log.Info("viewer left", zap.String("gameID", gameID), zap.String("viewerID", viewerID))
}

// buildMessage builds a message in the common {type, ...data} shape.
func buildMessage(msgType string, data map[string]interface{}) []byte {
	if data == nil {
		data = make(map[string]interface{})
	}
	data["type"] = msgType
	msg, _ := json.Marshal(data)
	return msg
}

func upgradeConnection(c *gin.Context, log *zap.Logger) (*websocket.Conn, error) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Warn("❌ websocket upgrade failed", zap.Error(err))
	}
	return conn, err
}

// HandleWebSocket streams the game named by the gameID query parameter.
func (h *Hub) HandleWebSocket(c *gin.Context) {
	gameID := c.Query("gameID")
	if gameID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing gameID"})
		return
	}
	record, err := h.games.Get(c.Request.Context(), gameID)
	if err != nil {
		h.log.Warn("❌ playback requested for unknown game", zap.String("gameID", gameID), zap.Error(err))
		c.JSON(http.StatusNotFound, gin.H{"error": "game not found"})
		return
	}

	conn, err := upgradeConnection(c, h.log)
	if err != nil {
		return
	}
	defer conn.Close()

	viewerID := c.Query("viewerID")
	if viewerID == "" {
		viewerID = uuid.New().String()
	}
	count := h.join(gameID, viewerID)
	defer h.leave(gameID, viewerID)
	h.log.Info("viewer joined",
		zap.String("gameID", gameID),
		zap.String("viewerID", viewerID),
		zap.Int("viewers", count))

	p := &playback{hub: h, conn: conn, viewerID: viewerID, record: record}
	if err := p.sendInit(); err != nil {
		return
	}
	h.listen(p)
}

func (h *Hub) listen(p *playback) {
	for {
		_, msg, err := p.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.log.Warn("❌ failed to read message", zap.Error(err))
			}
			return
		}
		var in struct {
			Type string `json:"type"`
		}
		if err := json.Unmarshal(msg, &in); err != nil {
			h.log.Warn("❌ failed to parse message", zap.Error(err))
			continue
		}
		handler, found := messageHandlers[in.Type]
		if !found {
			h.log.Warn("⚠️ unknown message type", zap.String("type", in.Type))
			p.send(buildMessage("error", map[string]interface{}{"message": "unknown message type " + in.Type}))
			continue
		}
		if err := handler(p); err != nil {
			h.log.Warn("❌ failed to send playback", zap.String("gameID", p.record.ID), zap.Error(err))
			return
		}
	}
}
