package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
)

type ServerConfig struct {
	Address         string        `mapstructure:"address"`
	Port            int           `mapstructure:"port"`
	Mode            string        `mapstructure:"mode"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type DatabaseConfig struct {
	URL     string        `mapstructure:"url"`
	LogMode bool          `mapstructure:"log_mode"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type JWTConfig struct {
	Secret      string `mapstructure:"secret"`
	Issuer      string `mapstructure:"issuer"`
	ExpireHours int    `mapstructure:"expire_hours"`
}

type SecurityConfig struct {
	BcryptCost int `mapstructure:"bcrypt_cost"`
}

type CORSConfig struct {
	AllowedOrigin string `mapstructure:"allowed_origin"`
}

// Origins splits AllowedOrigin on commas. A nil result means every origin
// is allowed ("*" or an empty setting).
func (c CORSConfig) Origins() []string {
	var origins []string
	for _, o := range strings.Split(c.AllowedOrigin, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	if len(origins) == 1 && origins[0] == "*" {
		return nil
	}
	return origins
}

func (c CORSConfig) validate() error {
	for _, o := range c.Origins() {
		if !strings.HasPrefix(o, "http://") && !strings.HasPrefix(o, "https://") {
			return fmt.Errorf("cors.allowed_origin: %q must be \"*\" or start with http:// or https://", o)
		}
	}
	return nil
}

type AuthConfig struct {
	ProtectWrites bool `mapstructure:"protect_writes"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Security SecurityConfig `mapstructure:"security"`
	CORS     CORSConfig     `mapstructure:"cors"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Log      LogConfig      `mapstructure:"log"`
}

// TokenTTL is zero when tokens carry no expiry.
func (c *Config) TokenTTL() time.Duration {
	if c.JWT.ExpireHours <= 0 {
		return 0
	}
	return time.Duration(c.JWT.ExpireHours) * time.Hour
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.address", "")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("database.url", "")
	v.SetDefault("database.log_mode", false)
	v.SetDefault("database.timeout", 5*time.Second)
	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.issuer", "")
	v.SetDefault("jwt.expire_hours", 0)
	v.SetDefault("security.bcrypt_cost", 10)
	v.SetDefault("cors.allowed_origin", "*")
	v.SetDefault("auth.protect_writes", true)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

// Load reads configuration from the given file path (e.g. "config.yaml").
// A missing file is not an error: defaults and environment still apply.
// Environment overrides use the CATALOG_ prefix (CATALOG_SERVER_PORT=9000),
// and the bare PORT, MONGODB_URL, CORS_ORIGIN and JWT_SECRET names are
// honoured as well.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path == "" {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	} else {
		v.SetConfigFile(path)
	}

	v.SetEnvPrefix("CATALOG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	aliases := map[string][]string{
		"server.port":         {"CATALOG_SERVER_PORT", "PORT"},
		"database.url":        {"CATALOG_DATABASE_URL", "MONGODB_URL", "DATABASE_URL"},
		"cors.allowed_origin": {"CATALOG_CORS_ALLOWED_ORIGIN", "CORS_ORIGIN"},
		"jwt.secret":          {"CATALOG_JWT_SECRET", "JWT_SECRET"},
	}
	for key, envs := range aliases {
		if err := v.BindEnv(append([]string{key}, envs...)...); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !isMissingFile(err) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}

// Validate reports the first setting the server cannot start without.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Database.URL) == "" {
		return errors.New("database.url is required")
	}
	if c.JWT.Secret == "" {
		return errors.New("jwt.secret is required")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	}
	if c.Security.BcryptCost < bcrypt.MinCost || c.Security.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("security.bcrypt_cost must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}
	return c.CORS.validate()
}

func isMissingFile(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}
