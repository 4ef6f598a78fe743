package controller

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-tycoon/deck"
	"go-tycoon/dto"
	"go-tycoon/service"
)

// Controller serves the pipeline output and the recorded games.
type Controller struct {
	out   *service.Output
	games *service.GameService
	log   *zap.Logger
}

func New(out *service.Output, games *service.GameService, log *zap.Logger) *Controller {
	return &Controller{out: out, games: games, log: log}
}

func (ctl *Controller) GetDeck(c *gin.Context) {
	d := ctl.out.Deck
	c.JSON(http.StatusOK, gin.H{
		"message":     "ok",
		"status_code": http.StatusOK,
		"data": dto.GetDeck{
			Cards:    len(d.Cards),
			Patterns: len(d.Infos),
			Rows:     deck.Rows(d.Cards),
		},
	})
}

// GetDeckSummary serves the deck table as tab-separated text.
func (ctl *Controller) GetDeckSummary(c *gin.Context) {
	var buf bytes.Buffer
	if err := deck.WriteSummary(&buf, ctl.out.Deck.Cards); err != nil {
		ctl.log.Error("❌ failed to write deck summary", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to write deck summary"})
		return
	}
	c.Data(http.StatusOK, "text/tab-separated-values; charset=utf-8", buf.Bytes())
}

func (ctl *Controller) GetPatterns(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message":     "ok",
		"status_code": http.StatusOK,
		"data":        deck.Ranks(ctl.out.Deck),
	})
}
