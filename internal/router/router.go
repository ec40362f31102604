package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/vr-rental-reservation/internal/config"
	"github.com/iliyamo/vr-rental-reservation/internal/handler"
	"github.com/iliyamo/vr-rental-reservation/internal/middleware"
)

// Register wires all application routes.  The /api group carries the rate
// limiter; the availability endpoint additionally sits behind the response
// cache, and the reservation-history endpoints require a valid access
// token.  rdb may be nil, in which case the Redis-backed middleware
// becomes a pass-through.
func Register(e *echo.Echo, a *handler.AuthHandler, r *handler.RentalHandler, jwtSecret string, rdb *redis.Client, rlCfg config.RateLimitConfig, cacheCfg config.CacheConfig) {
	e.GET("/healthz", handler.Health)

	api := e.Group("/api", middleware.NewTokenBucket(rlCfg, rdb))
	api.POST("/register", a.Register)
	api.POST("/login", a.Login)
	api.GET("/vr-status", r.Status, middleware.NewRedisCache(cacheCfg, rdb))
	api.POST("/reserve", r.Reserve)
	api.POST("/return", r.Return)

	auth := api.Group("", middleware.JWTAuth(jwtSecret))
	auth.GET("/me", r.Me)
	auth.GET("/my-reservations", r.MyReservations)
}
