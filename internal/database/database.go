package database

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fencyatf/Products-Backend/internal/config"
	"github.com/fencyatf/Products-Backend/internal/models"

	"github.com/google/uuid"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate key")
	ErrInvalidID = errors.New("invalid id")
)

// UserStore persists user accounts keyed by email.
type UserStore interface {
	CreateUser(ctx context.Context, u *models.User) error
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// ProductStore persists the product catalog.
type ProductStore interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
	CreateProduct(ctx context.Context, p *models.Product) error
	GetProduct(ctx context.Context, id string) (*models.Product, error)
	UpdateProduct(ctx context.Context, id string, patch models.ProductPatch) (*models.Product, error)
	DeleteProduct(ctx context.Context, id string) error
	CountProductsAbovePrice(ctx context.Context, price float64) (int64, error)
}

// Store is the full persistence surface used by the HTTP layer.
type Store interface {
	UserStore
	ProductStore
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// Backend identifies the driver a connection URL selects.
type Backend string

const (
	BackendSQLite   Backend = "sqlite"
	BackendPostgres Backend = "postgres"
	BackendMongo    Backend = "mongodb"
)

// ParseURL maps a connection URL to a backend and the DSN its driver expects.
//
//	sqlite://data/catalog.db   -> sqlite, "data/catalog.db"
//	file:catalog.db?cache=...  -> sqlite, unchanged
//	postgres://...             -> postgres, unchanged
//	mongodb://, mongodb+srv:// -> mongodb, unchanged
func ParseURL(raw string) (Backend, string, error) {
	url := strings.TrimSpace(raw)
	switch {
	case url == "":
		return "", "", errors.New("empty database url")
	case strings.HasPrefix(url, "sqlite://"):
		dsn := strings.TrimPrefix(url, "sqlite://")
		if dsn == "" {
			return "", "", fmt.Errorf("sqlite url without path: %q", raw)
		}
		return BackendSQLite, dsn, nil
	case strings.HasPrefix(url, "file:"):
		return BackendSQLite, url, nil
	case strings.HasPrefix(url, "postgres://"), strings.HasPrefix(url, "postgresql://"):
		return BackendPostgres, url, nil
	case strings.HasPrefix(url, "mongodb://"), strings.HasPrefix(url, "mongodb+srv://"):
		return BackendMongo, url, nil
	}
	return "", "", fmt.Errorf("unsupported database url scheme: %q", raw)
}

// Open connects to the store named by cfg.URL and bootstraps its schema.
func Open(ctx context.Context, cfg config.DatabaseConfig) (Store, error) {
	backend, dsn, err := ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	switch backend {
	case BackendMongo:
		s, err := openMongo(ctx, dsn, cfg)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		s, err := openGorm(backend, dsn, cfg)
		if err != nil {
			return nil, err
		}
		if err := AutoMigrate(s.db); err != nil {
			_ = s.Close(ctx)
			return nil, err
		}
		return s, nil
	}
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, d)
}

func newID() string {
	return uuid.NewString()
}

func checkID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return nil
}
