package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-tycoon/dto"
	"go-tycoon/repository"
)

func (ctl *Controller) GetGameList(c *gin.Context) {
	games, err := ctl.games.List(c.Request.Context())
	if err != nil {
		ctl.log.Error("❌ failed to list games", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to list games"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "ok",
		"status_code": http.StatusOK,
		"data":        dto.GetGameList{Games: games},
	})
}

func (ctl *Controller) GetGame(c *gin.Context) {
	gameID := c.Param("gameID")
	record, err := ctl.games.Get(c.Request.Context(), gameID)
	if errors.Is(err, repository.ErrGameNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "game not found"})
		return
	}
	if err != nil {
		ctl.log.Error("❌ failed to load game", zap.String("gameID", gameID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to load game"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "ok",
		"status_code": http.StatusOK,
		"data":        record,
	})
}
