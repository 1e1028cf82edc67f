package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/simp-lee/agencyhub/internal/config"
	"github.com/simp-lee/agencyhub/internal/pkg"
)

const apiBasePath = "/api/v1"

// RouteDeps holds all dependencies needed to register routes.
type RouteDeps struct {
	Modules []Module
	DB      *gorm.DB
	// Redis is optional; when set, the health check reports it.
	Redis *redis.Client
	// Auth guards the admin group.
	Auth gin.HandlerFunc
	// Cache, when set, fronts every API route.
	Cache gin.HandlerFunc
}

// RegisterRoutes registers all application routes on the given gin.Engine.
func RegisterRoutes(r *gin.Engine, deps *RouteDeps) error {
	if r == nil {
		return errors.New("router is nil")
	}
	if deps == nil {
		return errors.New("route dependencies are nil")
	}
	if len(deps.Modules) == 0 {
		return errors.New("at least one module is required")
	}
	if deps.Auth == nil {
		return errors.New("auth middleware is required")
	}

	r.GET("/health", healthHandler(deps.DB, deps.Redis))

	api := r.Group(apiBasePath)
	if deps.Cache != nil {
		api.Use(deps.Cache)
	}
	admin := api.Group("", deps.Auth)

	for i, m := range deps.Modules {
		if m == nil {
			return fmt.Errorf("module at index %d is nil", i)
		}
		m.RegisterRoutes(api, admin)
	}

	r.NoRoute(noRouteHandler())
	return nil
}

// healthHandler pings the database and, when configured, Redis.
func healthHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), time.Second)
		defer cancel()

		status := "ok"
		code := http.StatusOK
		components := gin.H{"database": "ok"}

		if config.PingDatabase(ctx, db) != nil {
			components["database"] = "error"
			status = "degraded"
			code = http.StatusServiceUnavailable
		}
		if rdb != nil {
			components["cache"] = "ok"
			if rdb.Ping(ctx).Err() != nil {
				// The cache fails open, so it never makes the service unavailable.
				components["cache"] = "error"
				status = "degraded"
			}
		}

		c.JSON(code, gin.H{
			"status":     status,
			"components": components,
		})
	}
}

func noRouteHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusNotFound, pkg.Response{Success: false, Message: "route not found"})
	}
}
