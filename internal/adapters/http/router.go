package http

import (
	"context"
	"net/http"

	"github.com/dkeye/Tune/internal/adapters/signal"
	"github.com/dkeye/Tune/internal/config"
	"github.com/dkeye/Tune/internal/game"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

func genClientToken() string {
	return uuid.NewString()
}

// ClientTokenMiddleware gives every browser a stable token; it doubles
// as the player id on the websocket side.
func ClientTokenMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := c.Cookie("ct")
		if token == "" {
			token = genClientToken()
			c.SetCookie("ct", token, 3600*24*7, "/", "", false, true)
		}
		c.Set("client_token", token)
		c.Next()
	}
}

func SetupRouter(ctx context.Context, cfg *config.Config, ctl *signal.Controller, cat game.Catalog, reg *game.Registry) *gin.Engine {
	if cfg.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	if cfg.Mode == "debug" {
		r.Use(gin.Logger())
	}
	r.Use(gin.Recovery())

	store := cookie.NewStore([]byte(cfg.Secret))
	r.Use(sessions.Sessions("TuneSessions", store))
	r.Use(ClientTokenMiddleware())

	r.Static("/static", cfg.StaticPath)
	r.Static("/songs", cfg.SongsPath)
	r.GET("/", func(c *gin.Context) {
		c.File(cfg.StaticPath + "/index.html")
	})

	log.Info().Str("module", "adapters.http").Str("static", cfg.StaticPath).Str("songs", cfg.SongsPath).Msg("router setup")

	api := r.Group("/api")

	api.GET("/songs", func(c *gin.Context) {
		tracks, err := cat.Tracks()
		if err != nil {
			log.Error().Err(err).Str("module", "adapters.http").Msg("list songs")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch songs"})
			return
		}
		c.JSON(http.StatusOK, tracks)
	})

	api.GET("/rooms", func(c *gin.Context) {
		c.JSON(http.StatusOK, reg.List())
	})

	api.GET("/ws", func(c *gin.Context) {
		log.Info().Str("module", "adapters.http").Str("sid", c.GetString("client_token")).Msg("ws endpoint hit")
		ctl.HandleWS(ctx, c)
	})

	return r
}
