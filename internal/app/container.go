package app

import (
	"github.com/sirupsen/logrus"

	"github.com/nplqhub/revise/internal/adapter/httpapi"
	"github.com/nplqhub/revise/internal/infrastructure/config"
	"github.com/nplqhub/revise/internal/infrastructure/server"
	"github.com/nplqhub/revise/internal/usecase"
)

// Container aggregates the application dependencies produced by Wire.
type Container struct {
	Config   *config.Config
	Logger   *logrus.Logger
	Server   *server.Server
	Sessions *httpapi.SessionManager
	Ticker   *usecase.AccrualTicker
}

// Close stops the background machinery in dependency order.
func (c *Container) Close() {
	c.Sessions.Stop()
	c.Ticker.Stop()
}
