package api

import (
	"errors"
	"net/http"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"gorm.io/gorm"

	"festa-mesas-backend/internal/engine"
	"festa-mesas-backend/internal/hitmap"
	"festa-mesas-backend/internal/ledger"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	engine    *engine.Engine
	db        *gorm.DB
	webpush   *webpush.Options
	positions hitmap.Registry
	hitRadius float64
	views     *cache.Cache
}

// NewHandler creates a new API handler. views is the response cache used by
// the GET middleware; mutating handlers flush it so a successful write is
// visible on the next read.
func NewHandler(e *engine.Engine, db *gorm.DB, webpushOptions *webpush.Options, positions hitmap.Registry, hitRadius float64, views *cache.Cache) *Handler {
	return &Handler{
		engine:    e,
		db:        db,
		webpush:   webpushOptions,
		positions: positions,
		hitRadius: hitRadius,
		views:     views,
	}
}

func (h *Handler) flushViews() {
	if h.views != nil {
		h.views.Flush()
	}
}

// writeError maps a lifecycle error to its HTTP status. Anything unrecognized
// is treated as an upstream spreadsheet failure.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, engine.ErrCustomerRequired):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, engine.ErrUnknownTable), errors.Is(err, ledger.ErrEventNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, engine.ErrTableUnavailable), errors.Is(err, engine.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	}
}
