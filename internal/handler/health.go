package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/fencyatf/Products-Backend/internal/util"

	"github.com/gin-gonic/gin"
)

// Pinger is satisfied by database.Store.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Banner GET /
func Banner(c *gin.Context) {
	c.String(http.StatusOK, "From the server")
}

// Health GET /healthz reports whether the store answers a ping.
func Health(store Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := store.Ping(ctx); err != nil {
			util.Error(c, http.StatusServiceUnavailable, util.KindUnavailable, "database unreachable")
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
