package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/jujulabs/juju-dashboard/internal/common"
	"github.com/jujulabs/juju-dashboard/internal/config"
	"github.com/jujulabs/juju-dashboard/internal/httpapi/handlers"
	"github.com/jujulabs/juju-dashboard/internal/httpapi/middleware"
)

func NewRouter(db *gorm.DB, cfg config.Config, cache handlers.ViewCache) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Metrics())

	r.NoRoute(func(c *gin.Context) {
		common.Fail(c, http.StatusNotFound, 40400, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		common.Fail(c, http.StatusMethodNotAllowed, 40500, "method not allowed")
	})

	h := handlers.NewHandler(db, cfg, cache)

	r.GET("/ping", h.Ping)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.POST("/login", h.Login)

	api := r.Group("/api")
	api.Use(middleware.AuthRequired(cfg.Auth.JWTSecret))
	api.GET("/summary", h.GetSummary)
	api.GET("/daily", h.GetDaily)
	api.GET("/messages", h.ListMessages)
	api.GET("/messages/:id", h.GetMessage)
	api.GET("/flagged", h.GetFlagged)
	api.GET("/flagged/export", h.ExportFlagged)
	api.GET("/distributions", h.GetDistributions)

	return r
}
