package database

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fencyatf/Products-Backend/internal/config"
	"github.com/fencyatf/Products-Backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type gormStore struct {
	db      *gorm.DB
	timeout time.Duration
}

// openGorm creates a SQL-backed store with basic pool tuning.
func openGorm(backend Backend, dsn string, cfg config.DatabaseConfig) (*gormStore, error) {
	var dialector gorm.Dialector
	switch backend {
	case BackendSQLite:
		if err := ensureSQLiteDir(dsn); err != nil {
			return nil, err
		}
		dialector = sqlite.Open(sqliteDSN(dsn))
	case BackendPostgres:
		dialector = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("backend %q is not SQL", backend)
	}

	gormLogger := logger.Default
	if !cfg.LogMode {
		gormLogger = gormLogger.LogMode(logger.Silent)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         gormLogger,
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql db: %w", err)
	}

	// connection pool
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return &gormStore{db: db, timeout: cfg.Timeout}, nil
}

// sqlitePragmas are passed as DSN parameters so the driver applies them to
// every pooled connection, not just the first.
var sqlitePragmas = []struct{ key, value string }{
	{"_busy_timeout", "5000"},
	{"_journal_mode", "WAL"},
	{"_synchronous", "NORMAL"},
}

// sqliteDSN adds the default pragmas unless the DSN already sets them.
func sqliteDSN(dsn string) string {
	base, query, _ := strings.Cut(dsn, "?")
	params, err := url.ParseQuery(query)
	if err != nil {
		return dsn
	}
	for _, p := range sqlitePragmas {
		if !params.Has(p.key) {
			params.Set(p.key, p.value)
		}
	}
	return base + "?" + params.Encode()
}

func ensureSQLiteDir(dsn string) error {
	if strings.HasPrefix(dsn, "file:") || strings.Contains(dsn, ":memory:") {
		return nil
	}
	path, _, _ := strings.Cut(dsn, "?")
	dir := filepath.Dir(path)
	if dir == "" || dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create db dir: %w", err)
	}
	return nil
}

func (s *gormStore) CreateUser(ctx context.Context, u *models.User) error {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	if u.ID == "" {
		u.ID = newID()
	}
	if err := s.db.WithContext(ctx).Create(u).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("%w: email %s", ErrDuplicate, u.Email)
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (s *gormStore) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	var u models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &u, nil
}

func (s *gormStore) ListProducts(ctx context.Context) ([]models.Product, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	products := make([]models.Product, 0)
	if err := s.db.WithContext(ctx).Order("created_at ASC").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

func (s *gormStore) CreateProduct(ctx context.Context, p *models.Product) error {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	p.ID = newID()
	if err := s.db.WithContext(ctx).Create(p).Error; err != nil {
		return fmt.Errorf("create product: %w", err)
	}
	return nil
}

func (s *gormStore) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	var p models.Product
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

func (s *gormStore) UpdateProduct(ctx context.Context, id string, patch models.ProductPatch) (*models.Product, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	var p models.Product
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&p).Error; err != nil {
			return err
		}
		if patch.Empty() {
			return nil
		}
		patch.Apply(&p)
		return tx.Save(&p).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update product: %w", err)
	}
	return &p, nil
}

func (s *gormStore) DeleteProduct(ctx context.Context, id string) error {
	if err := checkID(id); err != nil {
		return err
	}
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Product{})
	if res.Error != nil {
		return fmt.Errorf("delete product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *gormStore) CountProductsAbovePrice(ctx context.Context, price float64) (int64, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	var n int64
	if err := s.db.WithContext(ctx).Model(&models.Product{}).Where("price > ?", price).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return n, nil
}

func (s *gormStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *gormStore) Close(context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
