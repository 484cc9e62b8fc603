package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/newsbook/newsbook-api/internal/database"
	"github.com/redis/go-redis/v9"
)

var startTime = time.Now()

// HealthHandler serves liveness and readiness probes.
type HealthHandler struct {
	store database.Pinger // nil when running on in-memory repositories
	redis *redis.Client
}

func NewHealthHandler(store database.Pinger, rdb *redis.Client) *HealthHandler {
	return &HealthHandler{store: store, redis: rdb}
}

func (h *HealthHandler) Register(r gin.IRoutes) {
	r.GET("/healthz", h.Healthz)
	r.GET("/ready", h.Ready)
}

func (h *HealthHandler) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// Ready returns 200 only when the document store (and Redis, when configured) answer a ping.
func (h *HealthHandler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	ready := true
	deps := map[string]string{}
	if h.store == nil {
		deps["store"] = "memory"
	} else if err := h.store.Ping(ctx); err != nil {
		deps["store"] = "down"
		ready = false
	} else {
		deps["store"] = "up"
	}
	if h.redis != nil {
		if err := h.redis.Ping(ctx).Err(); err != nil {
			deps["redis"] = "down"
			ready = false
		} else {
			deps["redis"] = "up"
		}
	}

	uptime := time.Since(startTime).Round(time.Second).String()
	if !ready {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "deps": deps, "uptime": uptime})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready", "deps": deps, "uptime": uptime})
}
