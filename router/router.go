package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"go-tycoon/controller"
	"go-tycoon/middleware"
	"go-tycoon/ws"
)

// InitRouter mounts the API and the playback socket. With a non-empty
// secret every /api route requires a bearer token.
func InitRouter(r *gin.Engine, ctl *controller.Controller, hub *ws.Hub, secret string) {
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:   []string{"Content-Length"},
		MaxAge:          12 * time.Hour,
	}))

	api := r.Group("/api")
	if secret != "" {
		api.Use(middleware.AuthMiddleware([]byte(secret)))
	}
	{
		api.GET("/deck", ctl.GetDeck)
		api.GET("/deck/summary", ctl.GetDeckSummary)
		api.GET("/patterns", ctl.GetPatterns)
		api.GET("/games", ctl.GetGameList)
		api.GET("/games/:gameID", ctl.GetGame)
	}

	r.GET("/ws", hub.HandleWebSocket)
}
