package config

import (
	"fmt"
	"os"
	"strings"

	"homechef-api/logger"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DriverSQLite = "sqlite"
	DriverMongo  = "mongo"
)

type Config struct {
	Server ServerConfig  `mapstructure:"server"`
	Store  StoreConfig   `mapstructure:"store"`
	Auth   AuthConfig    `mapstructure:"auth"`
	Stripe StripeConfig  `mapstructure:"stripe"`
	NATS   NATSConfig    `mapstructure:"nats"`
	Log    logger.Config `mapstructure:"log"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

type StoreConfig struct {
	Driver            string `mapstructure:"driver"`
	SQLitePath        string `mapstructure:"sqlite_path"`
	MongoURI          string `mapstructure:"mongo_uri"`
	MongoDB           string `mapstructure:"mongo_db"`
	MongoTransactions bool   `mapstructure:"mongo_transactions"`
}

// AuthConfig describes how identity-provider tokens are verified
type AuthConfig struct {
	Secret   string `mapstructure:"secret"`
	Issuer   string `mapstructure:"issuer"`
	Audience string `mapstructure:"audience"`
}

type StripeConfig struct {
	SecretKey    string `mapstructure:"secret_key"`
	ClientDomain string `mapstructure:"client_domain"`
	Currency     string `mapstructure:"currency"`
}

type NATSConfig struct {
	URL string `mapstructure:"url"`
}

var envBindings = map[string]string{
	"server.port":              "PORT",
	"server.mode":              "GIN_MODE",
	"store.driver":             "STORE_DRIVER",
	"store.sqlite_path":        "SQLITE_PATH",
	"store.mongo_uri":          "MONGODB_URI",
	"store.mongo_db":           "MONGODB_DB",
	"store.mongo_transactions": "MONGO_TRANSACTIONS",
	"auth.secret":              "JWT_SECRET",
	"auth.issuer":              "JWT_ISSUER",
	"auth.audience":            "JWT_AUDIENCE",
	"stripe.secret_key":        "STRIPE_SECRET_KEY",
	"stripe.client_domain":     "CLIENT_DOMAIN",
	"stripe.currency":          "PAYMENT_CURRENCY",
	"nats.url":                 "NATS_URL",
	"log.level":                "LOG_LEVEL",
	"log.format":               "LOG_FORMAT",
	"log.environment":          "APP_ENV",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "3000")
	v.SetDefault("server.mode", "debug")
	v.SetDefault("store.driver", DriverSQLite)
	v.SetDefault("store.sqlite_path", "homechef.db")
	v.SetDefault("store.mongo_db", "homechef")
	v.SetDefault("store.mongo_transactions", false)
	v.SetDefault("auth.secret", "homechef_dev_secret")
	v.SetDefault("stripe.client_domain", "http://localhost:5173")
	v.SetDefault("stripe.currency", "usd")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("log.environment", "development")
}

// Load reads .env, the optional YAML file named by HOMECHEF_CONFIG and the
// environment, in increasing order of precedence.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	if path := os.Getenv("HOMECHEF_CONFIG"); path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}
	cfg.Log.Component = "homechef-api"

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}
	switch strings.ToLower(c.Store.Driver) {
	case DriverSQLite:
		if c.Store.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH is required for the sqlite driver")
		}
	case DriverMongo:
		if c.Store.MongoURI == "" {
			return fmt.Errorf("MONGODB_URI is required for the mongo driver")
		}
		if c.Store.MongoDB == "" {
			return fmt.Errorf("MONGODB_DB is required for the mongo driver")
		}
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q (want %s or %s)", c.Store.Driver, DriverSQLite, DriverMongo)
	}
	if c.Auth.Secret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	return nil
}
