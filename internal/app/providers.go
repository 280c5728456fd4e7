package app

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/nplqhub/revise/internal/adapter/httpapi"
	"github.com/nplqhub/revise/internal/infrastructure/config"
	"github.com/nplqhub/revise/internal/repository"
	"github.com/nplqhub/revise/internal/usecase"
)

// Providers that need values plucked out of config; wire cannot express
// field access directly.

func provideAuthUsecase(cfg *config.Config, users repository.UserRepository) usecase.AuthUsecase {
	return usecase.NewAuthUsecase(users, cfg.Auth.Secret, cfg.Auth.TokenTTL)
}

func provideTicker(cfg *config.Config, progress usecase.ProgressUsecase, logger *logrus.Logger) *usecase.AccrualTicker {
	return usecase.NewAccrualTicker(progress, logger, cfg.Session.AccrualInterval)
}

func provideSessionManager(cfg *config.Config, content repository.ContentRepository, progress usecase.ProgressUsecase, ticker *usecase.AccrualTicker, logger *logrus.Logger) *httpapi.SessionManager {
	return httpapi.NewSessionManager(content, progress, ticker, logger, cfg.Session.IdleTimeout)
}

func provideRouter(
	cfg *config.Config,
	logger *logrus.Logger,
	authMW *httpapi.AuthMiddleware,
	authHandler *httpapi.AuthHandler,
	progressHandler *httpapi.ProgressHandler,
	contentHandler *httpapi.ContentHandler,
	sessionHandler *httpapi.SessionHandler,
	adminHandler *httpapi.AdminHandler,
) *gin.Engine {
	return httpapi.NewRouter(httpapi.RouterConfig{
		Logger:          logger,
		Origins:         cfg.Server.Origins,
		AuthMiddleware:  authMW,
		AuthHandler:     authHandler,
		ProgressHandler: progressHandler,
		ContentHandler:  contentHandler,
		SessionHandler:  sessionHandler,
		AdminHandler:    adminHandler,
	})
}
