package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v2"
)

const (
	defaultConfigPath       = "config/config.yaml"
	defaultAddress          = ":4001"
	defaultDriver           = "mysql"
	defaultMaxIdleConns     = 35
	defaultAccessTTL        = 120 * time.Minute
	defaultRefreshTTL       = 60 * 24 * time.Hour
	defaultAdminGrantTTL    = 15 * time.Minute
	defaultPoolLimit        = 100
	defaultCacheTTL         = 30 * time.Second
	defaultTrialExpirySpec  = "@every 1h"
	defaultAlertPushSpec    = "@every 5m"
	defaultStorageRegion    = "us-east-1"
	defaultBootstrapKeycode = "1234"
)

type Config struct {
	Server struct {
		Address        string   `yaml:"address"`
		AllowedOrigins []string `yaml:"allowed_origins"`
	} `yaml:"server"`
	Database struct {
		Driver       string `yaml:"driver"`
		URL          string `yaml:"url"`
		MaxIdleConns int    `yaml:"max_idle_conns"`
	} `yaml:"database"`
	Redis struct {
		URL string `yaml:"url"`
	} `yaml:"redis"`
	Auth struct {
		JWTSecret          string        `yaml:"jwt_secret"`
		AccessTTL          time.Duration `yaml:"access_ttl"`
		RefreshTTL         time.Duration `yaml:"refresh_ttl"`
		AdminGrantTTL      time.Duration `yaml:"admin_grant_ttl"`
		AdminBootstrapCode string        `yaml:"admin_bootstrap_code"`
	} `yaml:"auth"`
	Board struct {
		PoolLimit int           `yaml:"pool_limit"`
		CacheTTL  time.Duration `yaml:"cache_ttl"`
	} `yaml:"board"`
	Jobs struct {
		TrialExpirySpec string `yaml:"trial_expiry_spec"`
		AlertPushSpec   string `yaml:"alert_push_spec"`
	} `yaml:"jobs"`
	Storage struct {
		Endpoint  string `yaml:"endpoint"`
		Region    string `yaml:"region"`
		Bucket    string `yaml:"bucket"`
		AccessKey string `yaml:"access_key"`
		SecretKey string `yaml:"secret_key"`
		PublicURL string `yaml:"public_url"`
	} `yaml:"storage"`
	Firebase struct {
		CredentialsFile string `yaml:"credentials_file"`
	} `yaml:"firebase"`
}

// StorageEnabled reports whether load documents can be uploaded.
func (c Config) StorageEnabled() bool {
	return c.Storage.Bucket != "" && c.Storage.AccessKey != "" && c.Storage.SecretKey != ""
}

// LoadConfig reads the YAML file named by CONFIG_PATH (config/config.yaml by
// default), applies environment overrides and defaults, and validates the
// result. A missing default file is not an error; a missing explicit one is.
func LoadConfig() (Config, error) {
	var cfg Config

	path := os.Getenv("CONFIG_PATH")
	explicit := path != ""
	if !explicit {
		path = defaultConfigPath
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("unmarshal %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
	default:
		return Config{}, fmt.Errorf("read config file: %w", err)
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	applyDefaults(&cfg)

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("PORT"); v != "" {
		cfg.Server.Address = ":" + strings.TrimPrefix(v, ":")
	}
	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		cfg.Server.AllowedOrigins = strings.Split(v, ",")
	}
	setString(&cfg.Database.Driver, "DATABASE_DRIVER")
	setString(&cfg.Database.URL, "DATABASE_URL")
	setString(&cfg.Redis.URL, "REDIS_URL")
	setString(&cfg.Auth.JWTSecret, "JWT_SECRET")
	setString(&cfg.Auth.AdminBootstrapCode, "ADMIN_BOOTSTRAP_CODE")
	setString(&cfg.Storage.Endpoint, "S3_ENDPOINT")
	setString(&cfg.Storage.Region, "S3_REGION")
	setString(&cfg.Storage.Bucket, "S3_BUCKET")
	setString(&cfg.Storage.AccessKey, "S3_ACCESS_KEY")
	setString(&cfg.Storage.SecretKey, "S3_SECRET_KEY")
	setString(&cfg.Storage.PublicURL, "S3_PUBLIC_URL")
	setString(&cfg.Firebase.CredentialsFile, "FIREBASE_CREDENTIALS")

	if v := os.Getenv("BOARD_POOL_LIMIT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parse BOARD_POOL_LIMIT: %w", err)
		}
		cfg.Board.PoolLimit = n
	}
	if v := os.Getenv("BOARD_CACHE_TTL_SECONDS"); v != "" {
		secs, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parse BOARD_CACHE_TTL_SECONDS: %w", err)
		}
		cfg.Board.CacheTTL = time.Duration(secs) * time.Second
	}
	return nil
}

func setString(dst *string, name string) {
	if v := os.Getenv(name); v != "" {
		*dst = v
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Address == "" {
		cfg.Server.Address = defaultAddress
	}
	if len(cfg.Server.AllowedOrigins) == 0 {
		cfg.Server.AllowedOrigins = []string{"http://localhost:3000", "http://localhost:5173"}
	}
	if cfg.Database.Driver == "" {
		cfg.Database.Driver = defaultDriver
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = defaultMaxIdleConns
	}
	if cfg.Auth.AccessTTL == 0 {
		cfg.Auth.AccessTTL = defaultAccessTTL
	}
	if cfg.Auth.RefreshTTL == 0 {
		cfg.Auth.RefreshTTL = defaultRefreshTTL
	}
	if cfg.Auth.AdminGrantTTL == 0 {
		cfg.Auth.AdminGrantTTL = defaultAdminGrantTTL
	}
	if cfg.Auth.AdminBootstrapCode == "" {
		cfg.Auth.AdminBootstrapCode = defaultBootstrapKeycode
	}
	if cfg.Board.PoolLimit == 0 {
		cfg.Board.PoolLimit = defaultPoolLimit
	}
	if cfg.Board.CacheTTL == 0 {
		cfg.Board.CacheTTL = defaultCacheTTL
	}
	if cfg.Jobs.TrialExpirySpec == "" {
		cfg.Jobs.TrialExpirySpec = defaultTrialExpirySpec
	}
	if cfg.Jobs.AlertPushSpec == "" {
		cfg.Jobs.AlertPushSpec = defaultAlertPushSpec
	}
	if cfg.Storage.Region == "" {
		cfg.Storage.Region = defaultStorageRegion
	}
}

func (c Config) validate() error {
	switch c.Database.Driver {
	case "mysql", "pgx":
	default:
		return fmt.Errorf("database driver must be mysql or pgx, got %q", c.Database.Driver)
	}
	if c.Database.URL == "" {
		return errors.New("DATABASE_URL is required")
	}
	if c.Auth.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if c.Board.PoolLimit < 1 {
		return fmt.Errorf("board pool limit must be positive, got %d", c.Board.PoolLimit)
	}
	if len(c.Auth.AdminBootstrapCode) != 4 {
		return errors.New("ADMIN_BOOTSTRAP_CODE must be 4 digits")
	}
	for _, ch := range c.Auth.AdminBootstrapCode {
		if ch < '0' || ch > '9' {
			return errors.New("ADMIN_BOOTSTRAP_CODE must be 4 digits")
		}
	}
	return nil
}
