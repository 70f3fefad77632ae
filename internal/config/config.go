package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server struct {
		Port               int      `mapstructure:"port"`
		CorsAllowedOrigins []string `mapstructure:"cors_allowed_origins"`
		CorsAllowedMethods []string `mapstructure:"cors_allowed_methods"`
		CorsAllowedHeaders []string `mapstructure:"cors_allowed_headers"`
	} `mapstructure:"server"`

	Upstream struct {
		BaseURL        string `mapstructure:"base_url"`
		TimeoutSeconds int    `mapstructure:"timeout_seconds"`
		Paths          struct {
			Login        string `mapstructure:"login"`
			Logout       string `mapstructure:"logout"`
			CustomerBill string `mapstructure:"customer_bill"`
			SupplierBill string `mapstructure:"supplier_bill"`
			SalesReport  string `mapstructure:"sales_report"`
		} `mapstructure:"paths"`
	} `mapstructure:"upstream"`

	JWT struct {
		Secret          string `mapstructure:"secret"`
		ExpirationHours int    `mapstructure:"expiration_hours"`
		Issuer          string `mapstructure:"issuer"`
	} `mapstructure:"jwt"`

	Redis struct {
		Addr            string `mapstructure:"addr"`
		Password        string `mapstructure:"password"`
		DB              int    `mapstructure:"db"`
		RowCacheSeconds int    `mapstructure:"row_cache_seconds"`
	} `mapstructure:"redis"`

	Database struct {
		Enabled  bool   `mapstructure:"enabled"`
		Host     string `mapstructure:"host"`
		Port     int    `mapstructure:"port"`
		User     string `mapstructure:"user"`
		Password string `mapstructure:"password"`
		Name     string `mapstructure:"name"`
	} `mapstructure:"database"`

	Printer struct {
		URL            string `mapstructure:"url"`
		Copies         int    `mapstructure:"copies"`
		TimeoutSeconds int    `mapstructure:"timeout_seconds"`
	} `mapstructure:"printer"`

	Archive struct {
		Enabled   bool   `mapstructure:"enabled"`
		Endpoint  string `mapstructure:"endpoint"`
		Region    string `mapstructure:"region"`
		Bucket    string `mapstructure:"bucket"`
		AccessKey string `mapstructure:"access_key"`
		SecretKey string `mapstructure:"secret_key"`
		Prefix    string `mapstructure:"prefix"`
	} `mapstructure:"archive"`

	Business struct {
		Name     string `mapstructure:"name"`
		Address  string `mapstructure:"address"`
		Phone    string `mapstructure:"phone"`
		Timezone string `mapstructure:"timezone"`
		Layout   string `mapstructure:"layout"`
	} `mapstructure:"business"`
}

// LoadFrom reads the given yaml file (optional), then the environment.
func LoadFrom(path string) (*Config, error) {
	// Load .env file if exists (ignore error in production)
	godotenv.Load()

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigFile(path)

	// UPSTREAM_BASE_URL -> upstream.base_url
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// Config file is optional
	if err := v.ReadInConfig(); err != nil {
		log.Printf("[Config] No config file found, using defaults")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config unmarshal error: %w", err)
	}

	applyEnvOverrides(&cfg)

	if cfg.JWT.Secret == "" || cfg.JWT.Secret == "${JWT_SECRET}" {
		return nil, fmt.Errorf("JWT_SECRET not set")
	}
	if cfg.Upstream.BaseURL == "" {
		return nil, fmt.Errorf("upstream.base_url not set")
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.cors_allowed_origins", []string{"*"})
	v.SetDefault("server.cors_allowed_methods", []string{"GET", "POST", "OPTIONS"})
	v.SetDefault("server.cors_allowed_headers", []string{"Authorization", "Content-Type"})

	v.SetDefault("upstream.timeout_seconds", 15)
	v.SetDefault("upstream.paths.login", "/api/login")
	v.SetDefault("upstream.paths.logout", "/api/logout")
	v.SetDefault("upstream.paths.customer_bill", "/api/customer_bill")
	v.SetDefault("upstream.paths.supplier_bill", "/api/supplier_bill")
	v.SetDefault("upstream.paths.sales_report", "/api/sales_report")

	v.SetDefault("jwt.expiration_hours", 12)
	v.SetDefault("jwt.issuer", "produce-backend")

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.row_cache_seconds", 120)

	v.SetDefault("database.enabled", false)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.name", "produce_db")

	v.SetDefault("printer.copies", 1)
	v.SetDefault("printer.timeout_seconds", 10)

	v.SetDefault("archive.region", "auto")
	v.SetDefault("archive.prefix", "reports")

	v.SetDefault("business.timezone", "Asia/Colombo")
	v.SetDefault("business.layout", "3inch")
}

// applyEnvOverrides maps the short deployment variable names onto the config.
func applyEnvOverrides(cfg *Config) {
	if host := os.Getenv("DB_HOST"); host != "" {
		cfg.Database.Host = host
		cfg.Database.Enabled = true
	}
	if port := os.Getenv("DB_PORT"); port != "" {
		if n, err := strconv.Atoi(port); err == nil && n > 0 {
			cfg.Database.Port = n
		}
	}
	if user := os.Getenv("DB_USER"); user != "" {
		cfg.Database.User = user
	}
	if pass := os.Getenv("DB_PASSWORD"); pass != "" {
		cfg.Database.Password = pass
	}
	if name := os.Getenv("DB_NAME"); name != "" {
		cfg.Database.Name = name
	}

	if cfg.JWT.Secret == "" || cfg.JWT.Secret == "${JWT_SECRET}" {
		cfg.JWT.Secret = os.Getenv("JWT_SECRET")
	}
	if url := os.Getenv("API_BASE_URL"); url != "" {
		cfg.Upstream.BaseURL = url
	}
	if url := os.Getenv("PRINTER_URL"); url != "" {
		cfg.Printer.URL = url
	}
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		cfg.Redis.Addr = addr
	}
	if key := os.Getenv("ARCHIVE_ACCESS_KEY"); key != "" {
		cfg.Archive.AccessKey = key
	}
	if secret := os.Getenv("ARCHIVE_SECRET_KEY"); secret != "" {
		cfg.Archive.SecretKey = secret
	}
}

// DSN is the pgx connection string for the audit database.
func (c *Config) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.Database.User, c.Database.Password, c.Database.Host, c.Database.Port, c.Database.Name)
}

func (c *Config) UpstreamTimeout() time.Duration {
	return time.Duration(c.Upstream.TimeoutSeconds) * time.Second
}

func (c *Config) PrinterTimeout() time.Duration {
	return time.Duration(c.Printer.TimeoutSeconds) * time.Second
}

func (c *Config) RowCacheTTL() time.Duration {
	return time.Duration(c.Redis.RowCacheSeconds) * time.Second
}

func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.JWT.ExpirationHours) * time.Hour
}
