package config

import (
	"fmt"
	"reflect"
	"strings"

	"card-sync/core/database"
	"card-sync/core/logger"
	"card-sync/core/reconcile"
	"card-sync/core/server"
	"card-sync/core/storage"
	"card-sync/feature/airtable"
	"card-sync/feature/board"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Sink drivers.
const (
	SinkAirtable = "airtable"
	SinkDatabase = "database"
)

// SinkConfig selects and sizes the destination table.
type SinkConfig struct {
	// Driver is the destination kind (airtable, database).
	Driver string `mapstructure:"driver" default:"airtable"`
	// Table is the destination table name.
	Table string `mapstructure:"table" default:"Cards"`
	// PageSize is the number of rows requested per list page.
	PageSize int `mapstructure:"page_size" default:"100"`
}

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Server holds configuration for the HTTP server.
	Server server.Config `mapstructure:"server"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Board holds configuration for the project board source.
	Board board.Config `mapstructure:"board"`
	// Sink selects the destination table.
	Sink SinkConfig `mapstructure:"sink"`
	// Airtable holds configuration for the hosted table destination.
	Airtable airtable.Config `mapstructure:"airtable"`
	// Database holds configuration for the SQL table destination.
	Database database.Config `mapstructure:"database"`
	// Storage holds configuration for the snapshot archive.
	Storage storage.Config `mapstructure:"storage"`
	// Sync holds configuration for scheduling, rate limiting and caching.
	Sync reconcile.Config `mapstructure:"sync"`
}

// LoadConfig loads configuration from environment variables and .env file.
func LoadConfig(path string) (*Config, error) {
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// Ignore error if file doesn't exist (e.g. production)
	_ = godotenv.Overload(envPath)

	v := viper.New()

	// Recursively parse struct tags to set default values
	bindValues(v, Config{}, "")

	// Map environment variables to nested keys (e.g. BOARD_TOKEN -> board.token)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate checks the values the application cannot run without.
func (c *Config) Validate() error {
	switch c.Sink.Driver {
	case SinkAirtable:
		if c.Airtable.BaseID == "" {
			return fmt.Errorf("airtable.base_id is required for the airtable sink")
		}
	case SinkDatabase:
		if c.Database.Name == "" {
			return fmt.Errorf("database.name is required for the database sink")
		}
	default:
		return fmt.Errorf("unknown sink driver %q", c.Sink.Driver)
	}

	if c.Sink.Table == "" {
		return fmt.Errorf("sink.table is required")
	}
	if c.Storage.Enabled && c.Storage.Bucket == "" {
		return fmt.Errorf("storage.bucket is required when storage is enabled")
	}
	if c.Board.ProjectID <= 0 {
		return fmt.Errorf("board.project_id must be positive")
	}
	if c.Sync.PollInterval <= 0 {
		return fmt.Errorf("sync.poll_interval must be positive")
	}
	if c.Sync.RateLimitInterval < 0 {
		return fmt.Errorf("sync.rate_limit_interval must not be negative")
	}
	if c.Sync.CacheTTL <= 0 {
		return fmt.Errorf("sync.cache_ttl must be positive")
	}
	if _, err := reconcile.IdentityByField(c.Sync.IdentityField); err != nil {
		return err
	}
	return nil
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")

		if tag == "" {
			continue
		}

		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		defaultValue := field.Tag.Get("default")
		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, defaultValue)
	}
}
