package api

import (
	"net/http"

	"mailboard/internal/auth/delivery"
	authUsecase "mailboard/internal/auth/usecase"
	boardDelivery "mailboard/internal/board/delivery"
	boardUsecase "mailboard/internal/board/usecase"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, authUc authUsecase.AuthUsecase, boardUc boardUsecase.BoardUsecase, refresher *boardUsecase.Refresher) {
	boardHandler := boardDelivery.NewBoardHandler(boardUc, refresher)

	api := r.Group("/api")
	{
		// Health check (no auth required)
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		// Kanban configuration routes (protected)
		kanban := api.Group("/kanban")
		kanban.Use(delivery.AuthMiddleware(authUc))
		{
			kanban.GET("/config", boardHandler.GetConfig)
			kanban.PUT("/config", boardHandler.ReplaceConfig)
			kanban.POST("/config/columns", boardHandler.AddColumn)
			kanban.DELETE("/config/columns/:id", boardHandler.DeleteColumn)
			kanban.PATCH("/config/columns/:id", boardHandler.PatchColumn)
			kanban.GET("/board", boardHandler.GetBoard)
			kanban.GET("/labels", boardHandler.GetLabels)
		}

		// Email transition routes (protected)
		emails := api.Group("/emails")
		emails.Use(delivery.AuthMiddleware(authUc))
		{
			emails.PATCH("/:id/move", boardHandler.MoveEmail)
			emails.POST("/:id/snooze", boardHandler.SnoozeEmail)
			emails.POST("/:id/unsnooze", boardHandler.UnsnoozeEmail)
		}
	}
}
