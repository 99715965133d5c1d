package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gopkg.in/yaml.v3"
)

const (
	CONFIG_PATH = "./res/config.yaml"
	ENV_PATH    = ".env"

	// environment variable prefix for secrets and overrides
	ENV_PREFIX = "FOLIO_"
)

// ServiceConfig holds the configuration for the service.
type ServiceConfig struct {
	ServiceName    string `yaml:"service_name" validate:"required"`
	LogLevel       string `yaml:"loglevel" validate:"required"`
	Host           string `yaml:"host" validate:"required"`
	Port           string `yaml:"port" validate:"required"`
	PrivateKeyPath string `yaml:"private_key_path" validate:"required"`
	// TrustedProxies may set X-Forwarded-For (addresses or CIDR ranges).
	TrustedProxies []string      `yaml:"trusted_proxies" validate:"omitempty,dive,cidr|ip"`
	Database       Database      `yaml:"database" validate:"required"`
	Cache          CacheConfig   `yaml:"cache"`
	Session        SessionConfig `yaml:"session"`
	RateLimiting   RateLimiting  `yaml:"rate_limiting"`
	Site           SiteConfig    `yaml:"site"`
	Secrets        SecretsConfig `yaml:"-"`
}

type Database struct {
	Type string `yaml:"type" validate:"required,oneof=mongo"`
	// For MongoDB
	MongoDB MongoDBConfig `yaml:"mongodb_config" validate:"required"`
}

// MongoDBConfig holds the MongoDB connection settings.
type MongoDBConfig struct {
	DSN              string             `yaml:"dsn" validate:"required"`
	DatabaseName     string             `yaml:"database_name" validate:"required"`
	Timeout          time.Duration      `yaml:"timeout"`
	Options          MongoServerOptions `yaml:"mongo_server_options"`
	ValidCollections []string           `yaml:"valid_collections" validate:"required"`
	ValidFields      []string           `yaml:"valid_fields" validate:"required"`
}

type MongoServerOptions struct {
	APIVersion           string `yaml:"api_version"`
	SetStrict            bool   `yaml:"set_strict"`
	SetDeprecationErrors bool   `yaml:"set_deprecation_errors"`
}

// CacheConfig configures the Redis page cache. An empty address disables it.
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled"`
	RedisAddr string        `yaml:"redis_addr" validate:"required_if=Enabled true"`
	RedisDB   int           `yaml:"redis_db"`
	TTL       time.Duration `yaml:"ttl"`
}

type SessionConfig struct {
	TokenTTL time.Duration `yaml:"token_ttl"`
}

// RateLimiting holds the global HTTP limiter and the per-function rules.
type RateLimiting struct {
	RequestsPerSecond float64             `yaml:"requests_per_second"`
	Burst             int                 `yaml:"burst"`
	Actions           map[string]RateRule `yaml:"actions" validate:"dive"`
}

// RateRule allows Calls calls per Per. A zero Per never decays.
type RateRule struct {
	Calls int           `yaml:"calls" validate:"min=1"`
	Per   time.Duration `yaml:"per"`
}

// SiteConfig is the profile shown on the home page.
type SiteConfig struct {
	Title    string     `yaml:"title"`
	Author   string     `yaml:"author"`
	Location string     `yaml:"location"`
	Bio      []string   `yaml:"bio"`
	Links    []SiteLink `yaml:"links"`
}

type SiteLink struct {
	Label string `yaml:"label"`
	URL   string `yaml:"url"`
}

// SecretsConfig is filled from the environment only, never from YAML.
type SecretsConfig struct {
	BootstrapSecret string `mapstructure:"BOOTSTRAP_SECRET" validate:"required,min=16"`
	AdminSecret     string `mapstructure:"ADMIN_SECRET"`
	MongoDSN        string `mapstructure:"MONGO_DSN"`
	RedisAddr       string `mapstructure:"REDIS_ADDR"`
	PrivateKeyPath  string `mapstructure:"PRIVATE_KEY_PATH"`
	LogLevel        string `mapstructure:"LOG_LEVEL"`
}

// ReadLocalConfig reads the service configuration from a YAML file at the specified path.
// It unmarshals the YAML content into a ServiceConfig struct and returns it.
// If there is an error reading the file or unmarshaling the content, it returns an error.
func ReadLocalConfig(configPath string) (*ServiceConfig, error) {
	config := &ServiceConfig{}

	yamlFile, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	err = yaml.Unmarshal(yamlFile, config)
	if err != nil {
		return nil, err
	}

	config.applyDefaults()

	return config, nil
}

// LoadEnv loads the optional .env file and applies FOLIO_* variables on top of cfg.
func LoadEnv(cfg *ServiceConfig, envPath string) error {
	env := map[string]string{}
	if envPath != "" {
		if fileEnv, err := godotenv.Read(envPath); err == nil {
			for k, v := range fileEnv {
				env[k] = v
			}
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to read env file %s: %w", envPath, err)
		}
	}
	// process environment wins over the file
	for _, kv := range os.Environ() {
		k, v, ok := strings.Cut(kv, "=")
		if ok {
			env[k] = v
		}
	}

	return ApplyEnv(cfg, env)
}

// ApplyEnv decodes the FOLIO_ prefixed entries of env into cfg.Secrets
// and lets them override the matching YAML settings.
func ApplyEnv(cfg *ServiceConfig, env map[string]string) error {
	trimmed := make(map[string]string)
	for k, v := range env {
		if name, ok := strings.CutPrefix(k, ENV_PREFIX); ok {
			trimmed[name] = v
		}
	}

	if err := mapstructure.Decode(trimmed, &cfg.Secrets); err != nil {
		return fmt.Errorf("failed to decode environment: %w", err)
	}

	if cfg.Secrets.MongoDSN != "" {
		cfg.Database.MongoDB.DSN = cfg.Secrets.MongoDSN
	}
	if cfg.Secrets.RedisAddr != "" {
		cfg.Cache.RedisAddr = cfg.Secrets.RedisAddr
		cfg.Cache.Enabled = true
	}
	if cfg.Secrets.PrivateKeyPath != "" {
		cfg.PrivateKeyPath = cfg.Secrets.PrivateKeyPath
	}
	if cfg.Secrets.LogLevel != "" {
		cfg.LogLevel = cfg.Secrets.LogLevel
	}

	return nil
}

func (c *ServiceConfig) applyDefaults() {
	if c.Session.TokenTTL == 0 {
		c.Session.TokenTTL = 24 * time.Hour
	}
	if c.Cache.TTL == 0 {
		c.Cache.TTL = 5 * time.Minute
	}
	if c.RateLimiting.RequestsPerSecond == 0 {
		c.RateLimiting.RequestsPerSecond = 20
	}
	if c.RateLimiting.Burst == 0 {
		c.RateLimiting.Burst = 40
	}
	if c.RateLimiting.Actions == nil {
		c.RateLimiting.Actions = DefaultRateRules()
	}
}

// DefaultRateRules returns the per-function limits used when none are configured.
func DefaultRateRules() map[string]RateRule {
	return map[string]RateRule{
		"create_post":      {Calls: 5, Per: 5 * time.Minute},
		"get_posts":        {Calls: 60, Per: time.Minute},
		"get_posts_by_tag": {Calls: 60, Per: time.Minute},
		"get_post_by_slug": {Calls: 120, Per: time.Minute},
		"login":            {Calls: 5},
		"register":         {Calls: 10, Per: time.Hour},
	}
}

func BuildServerAPIOptions(cfg MongoServerOptions) *options.ServerAPIOptions {
	opts := options.ServerAPI(options.ServerAPIVersion(cfg.APIVersion))
	opts.SetStrict(cfg.SetStrict)
	opts.SetDeprecationErrors(cfg.SetDeprecationErrors)

	return opts
}

func ListToMap(list []string) map[string]bool {
	result := make(map[string]bool)
	for _, item := range list {
		result[item] = true
	}
	return result
}
