package api

import (
	authUsecase "mailboard/internal/auth/usecase"
	boardUsecase "mailboard/internal/board/usecase"
	"mailboard/pkg/config"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	authUsecase  authUsecase.AuthUsecase
	boardUsecase boardUsecase.BoardUsecase
	refresher    *boardUsecase.Refresher
	config       *config.Config
}

func NewHandler(authUc authUsecase.AuthUsecase, boardUc boardUsecase.BoardUsecase, refresher *boardUsecase.Refresher, cfg *config.Config) *Handler {
	return &Handler{
		authUsecase:  authUc,
		boardUsecase: boardUc,
		refresher:    refresher,
		config:       cfg,
	}
}

func (h *Handler) Start(addr string) error {
	r := gin.Default()
	gin.SetMode(gin.ReleaseMode)

	// CORS middleware
	r.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		} else {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	SetupRoutes(r, h.authUsecase, h.boardUsecase, h.refresher)

	return r.Run(addr)
}
