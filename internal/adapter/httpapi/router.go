package httpapi

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type RouterConfig struct {
	Logger         *logrus.Logger
	Origins        []string
	AuthMiddleware *AuthMiddleware

	AuthHandler     *AuthHandler
	ProgressHandler *ProgressHandler
	ContentHandler  *ContentHandler
	SessionHandler  *SessionHandler
	AdminHandler    *AdminHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogger(cfg.Logger))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	r.GET("/healthcheck", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		api.POST("/login", cfg.AuthHandler.Login)
		api.POST("/admin/login", cfg.AuthHandler.AdminLogin)
	}

	protected := api.Group("/")
	protected.Use(cfg.AuthMiddleware.RequireAuth())
	{
		protected.GET("/me", cfg.AuthHandler.Me)

		protected.GET("/content/flashcards", cfg.ContentHandler.ListFlashcards)
		protected.GET("/content/quizzes", cfg.ContentHandler.ListQuizQuestions)

		protected.GET("/progress/summary", cfg.ProgressHandler.Summary)
		protected.GET("/progress/:domain", cfg.ProgressHandler.Domain)
		protected.POST("/progress/reset", cfg.ProgressHandler.Reset)

		protected.POST("/sessions", cfg.SessionHandler.Open)
		protected.GET("/sessions/:id", cfg.SessionHandler.Current)
		protected.POST("/sessions/:id/next", cfg.SessionHandler.Next)
		protected.POST("/sessions/:id/previous", cfg.SessionHandler.Previous)
		protected.POST("/sessions/:id/reveal", cfg.SessionHandler.Reveal)
		protected.POST("/sessions/:id/complete", cfg.SessionHandler.Complete)
		protected.POST("/sessions/:id/submit", cfg.SessionHandler.Submit)
		protected.PUT("/sessions/:id/filter", cfg.SessionHandler.SetFilter)
		protected.GET("/sessions/:id/sections", cfg.SessionHandler.Sections)
		protected.DELETE("/sessions/:id", cfg.SessionHandler.Close)
	}

	admin := protected.Group("/admin")
	admin.Use(cfg.AuthMiddleware.RequireAdmin())
	{
		admin.GET("/users", cfg.AdminHandler.ListUsers)
		admin.POST("/users", cfg.AdminHandler.CreateUser)
		admin.DELETE("/users/:username", cfg.AdminHandler.DeleteUser)

		admin.GET("/teams", cfg.AdminHandler.ListTeams)
		admin.POST("/teams", cfg.AdminHandler.CreateTeam)
		admin.DELETE("/teams/:id", cfg.AdminHandler.DeleteTeam)

		admin.GET("/flashcards", cfg.ContentHandler.ListFlashcards)
		admin.PUT("/flashcards", cfg.AdminHandler.SaveFlashcard)
		admin.DELETE("/flashcards/:id", cfg.AdminHandler.DeleteFlashcard)

		admin.GET("/quizzes", cfg.ContentHandler.ListQuizQuestions)
		admin.PUT("/quizzes", cfg.AdminHandler.SaveQuizQuestion)
		admin.DELETE("/quizzes/:id", cfg.AdminHandler.DeleteQuizQuestion)

		admin.GET("/catalog/export", cfg.AdminHandler.ExportCatalog)
		admin.POST("/catalog/import", cfg.AdminHandler.ImportCatalog)
	}

	return r
}
