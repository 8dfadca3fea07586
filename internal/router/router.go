package router

import (
	"log/slog"

	"github.com/fencyatf/Products-Backend/internal/account"
	"github.com/fencyatf/Products-Backend/internal/config"
	"github.com/fencyatf/Products-Backend/internal/database"
	"github.com/fencyatf/Products-Backend/internal/handler"
	"github.com/fencyatf/Products-Backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

// Deps is everything the HTTP layer needs, built once at startup.
type Deps struct {
	Config *config.Config
	Store  database.Store
	Log    *slog.Logger
}

// SetupRouter configures the gin engine and all routes.
func SetupRouter(d Deps) *gin.Engine {
	cfg := d.Config
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(
		gin.Recovery(),
		middleware.RequestLogger(d.Log),
		middleware.CORS(cfg.CORS.AllowedOrigin),
	)

	creds := account.NewCredentialStore(d.Store, cfg.Security.BcryptCost)
	sessions := account.NewSessionIssuer(creds, account.SessionConfig{
		Secret: cfg.JWT.Secret,
		Issuer: cfg.JWT.Issuer,
		TTL:    cfg.TokenTTL(),
	})
	requireToken := middleware.AuthMiddleware(sessions)

	r.GET("/", handler.Banner)
	r.GET("/healthz", handler.Health(d.Store))

	// signup / login (no token)
	authHandler := handler.NewAuthHandler(creds, sessions, d.Log)
	r.POST("/user", authHandler.Register)
	r.POST("/login", authHandler.Login)
	r.GET("/me", requireToken, authHandler.Me)

	productHandler := handler.NewProductHandler(d.Store, d.Log)
	products := r.Group("/products")
	products.GET("", productHandler.ListProducts)
	products.GET("/export.csv", productHandler.ExportCSV)
	products.GET("/export.xlsx", productHandler.ExportXLSX)
	products.GET("/count/:price", productHandler.CountAbovePrice)
	products.GET("/:id", productHandler.GetProduct)

	// mutations need a token unless explicitly opened up
	writes := products.Group("")
	if cfg.Auth.ProtectWrites {
		writes.Use(requireToken)
	}
	writes.POST("", productHandler.CreateProduct)
	writes.PATCH("/:id", productHandler.UpdateProduct)
	writes.DELETE("/:id", productHandler.DeleteProduct)

	return r
}
