package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/jujulabs/juju-dashboard/internal/analytics"
	"github.com/jujulabs/juju-dashboard/internal/common"
	"github.com/jujulabs/juju-dashboard/internal/config"
)

// ViewCache is the slice of the redis store the handlers need. A nil cache
// disables caching without changing any code path.
type ViewCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any) error
}

type Handler struct {
	Svc   *analytics.Service
	Cfg   config.Config
	Cache ViewCache
}

func NewHandler(db *gorm.DB, cfg config.Config, cache ViewCache) *Handler {
	return &Handler{
		Svc:   analytics.NewService(analytics.NewRepo(db)),
		Cfg:   cfg,
		Cache: cache,
	}
}

func (h *Handler) Ping(c *gin.Context) {
	common.Ok(c, http.StatusOK, gin.H{"pong": true})
}

// respondErr maps core errors onto the response envelope. A store failure is
// surfaced as 503 so callers can render a degraded state; it is never
// disguised as an empty success.
func respondErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, analytics.ErrInvalidCriteria):
		common.Fail(c, http.StatusBadRequest, 10002, "invalid criteria")
	case errors.Is(err, gorm.ErrRecordNotFound):
		common.Fail(c, http.StatusNotFound, 40401, "message not found")
	case errors.Is(err, analytics.ErrDataUnavailable):
		common.Fail(c, http.StatusServiceUnavailable, 50300, "data store unavailable")
	default:
		common.Fail(c, http.StatusInternalServerError, 50001, "internal error")
	}
}
