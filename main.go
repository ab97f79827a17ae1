package main

import (
	"context"

	api "mailboard/cmd/api"
	authUsecase "mailboard/internal/auth/usecase"
	boarddomain "mailboard/internal/board/domain"
	boardRepo "mailboard/internal/board/repository"
	boardUsecase "mailboard/internal/board/usecase"
	"mailboard/pkg/config"
	"mailboard/pkg/database"
	"mailboard/pkg/gmail"

	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
)

func main() {
	log := logrus.New()

	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.NewPostgresConnection(cfg)
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to database")
	}

	// Auto-migrate database schemas
	if err := db.AutoMigrate(&boarddomain.BoardConfig{}, &boarddomain.Email{}); err != nil {
		log.WithError(err).Fatal("Failed to migrate database")
	}

	// Initialize repositories (dependency injection)
	configRepo := boardRepo.NewBoardConfigRepository(db)
	mailStore := boardRepo.NewMailStoreRepository(db)

	// Provider label sync is optional; without OAuth credentials the board
	// runs purely on the local mail mirror.
	var labelSyncer boardUsecase.LabelSyncer
	if cfg.GoogleClientID != "" && cfg.GmailAccessToken != "" {
		tokens := func(ownerID string) (string, string, error) {
			return cfg.GmailAccessToken, cfg.GmailRefreshToken, nil
		}
		onRefresh := func(ownerID string, token *oauth2.Token) error {
			log.WithField("owner", ownerID).Info("Gmail access token refreshed")
			return nil
		}
		labelSyncer = gmail.NewService(cfg.GoogleClientID, cfg.GoogleClientSecret, tokens, onRefresh, log)
	} else {
		log.Warn("Gmail credentials not configured, provider label sync disabled")
	}

	// Initialize use cases (dependency injection)
	authUc := authUsecase.NewAuthUsecase(cfg.JWTSecret)
	boardUc := boardUsecase.NewBoardUsecase(configRepo, mailStore, labelSyncer, log)
	refresher := boardUsecase.NewRefresher(boardUc, cfg.RefreshInterval, log)

	// Wake expired snoozes on a fixed interval
	boardUsecase.StartSnoozeSweeper(context.Background(), boardUc, cfg.SnoozeSweepInterval, log)

	// Initialize HTTP handler
	handler := api.NewHandler(authUc, boardUc, refresher, cfg)

	// Start server
	log.WithField("port", cfg.Port).Info("Server starting")
	if err := handler.Start(":" + cfg.Port); err != nil {
		log.WithError(err).Fatal("Failed to start server")
	}
}
