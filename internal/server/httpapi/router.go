package httpapi

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type RouterConfig struct {
	JournalHandler *JournalHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestID())

	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Content-Type", "X-Requested-With", "X-Request-ID"},
	}))

	router.GET("/healthcheck", HealthCheck)

	api := router.Group("/api")
	{
		api.POST("/entries", cfg.JournalHandler.Submit)
		api.GET("/students/:student_id/entries", cfg.JournalHandler.StudentHistory)
		api.GET("/classes/:class_id/entries", cfg.JournalHandler.ClassEntries)
		api.GET("/classes/:class_id/stats", cfg.JournalHandler.ClassStats)
		api.GET("/classes/:class_id/at-risk", cfg.JournalHandler.AtRisk)
		api.GET("/classes/:class_id/report", cfg.JournalHandler.ClassReport)
	}

	return router
}
