package api

import (
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
	"gorm.io/gorm"

	"festa-mesas-backend/config"
	"festa-mesas-backend/internal/engine"
	"festa-mesas-backend/internal/mw"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(cfg *config.Config, e *engine.Engine, db *gorm.DB, webpushOptions *webpush.Options) *gin.Engine {
	r := gin.Default()

	// Read responses are cached briefly; every miss is a full spreadsheet
	// round trip. Mutating handlers flush this store.
	ttl := time.Duration(cfg.Server.CacheTTLSeconds) * time.Second
	views := cache.New(ttl, 2*ttl)
	caching := mw.Cache(views, ttl)

	rateLimiter := mw.RateLimiter(rate.Limit(cfg.Server.RateLimitPerSec), cfg.Server.RateLimitBurst, cfg.Server.RequestIPHeader)

	handler := NewHandler(e, db, webpushOptions, cfg.Map.Positions, cfg.Map.HitRadius, views)

	api := r.Group("/api")
	api.Use(rateLimiter)
	{
		api.GET("/tables", caching, handler.GetTables)
		api.GET("/summary", caching, handler.GetSummary)
		api.GET("/sales", caching, handler.GetSales)

		api.POST("/locate", handler.Locate)

		api.POST("/tables/:table_id/reservations", handler.Reserve)
		api.POST("/events/:event_id/confirm", handler.ConfirmSale)
		api.POST("/events/:event_id/undo", handler.UndoSale)
		api.DELETE("/events/:event_id", handler.CancelReservation)

		api.GET("/subscriptions", handler.GetSubscription)
		api.PUT("/subscriptions", handler.PutSubscription)
		api.DELETE("/subscriptions", handler.DeleteSubscription)
		api.GET("/vapid_public_key", handler.GetVAPIDPublicKey)
	}

	return r
}
