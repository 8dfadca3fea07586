package middleware

import (
	"time"

	"github.com/fencyatf/Products-Backend/internal/config"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORS allows the configured origin(s): "*" or a comma-separated list.
// Origins must already have passed config validation; cors.New panics on
// an origin without a scheme.
func CORS(allowedOrigin string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", RequestIDHeader},
		ExposeHeaders: []string{RequestIDHeader, "Content-Disposition"},
		MaxAge:        12 * time.Hour,
	}

	if origins := (config.CORSConfig{AllowedOrigin: allowedOrigin}).Origins(); len(origins) > 0 {
		cfg.AllowOrigins = origins
	} else {
		cfg.AllowAllOrigins = true
	}

	return cors.New(cfg)
}
