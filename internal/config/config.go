// Package config provides types for handling configuration parameters.
package config

import (
	"flag"
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	serviceErrors "github.com/danilovkiri/dk_go_snapshooter/internal/service/errors"
)

// Supported storage backends.
const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
)

// Config handles server-, storage- and provider-related constants and parameters.
// Precedence is JSON config file < environment < command line flags.
type Config struct {
	ConfigPath          string        `json:"-" env:"CONFIG"`
	ServerAddress       string        `json:"server_address" env:"SERVER_ADDRESS" env-default:":8080"`
	StorageBackend      string        `json:"storage_backend" env:"STORAGE_BACKEND" env-default:"memory"`
	DatabaseDSN         string        `json:"database_dsn" env:"DATABASE_DSN"`
	ProviderAPIKey      string        `json:"provider_api_key" env:"SCREENSHOTONE_API_KEY,SCREENSHOT_API_KEY"`
	ProviderBaseURL     string        `json:"provider_base_url" env:"PROVIDER_BASE_URL" env-default:"https://api.screenshotone.com/take"`
	ProviderTimeout     time.Duration `json:"-" env:"PROVIDER_TIMEOUT" env-default:"45s"`
	ProviderPassThrough bool          `json:"provider_pass_through" env:"PROVIDER_PASS_THROUGH" env-default:"false"`
	TrustedSubnet       string        `json:"trusted_subnet" env:"TRUSTED_SUBNET"`
}

// NewDefaultConfiguration sets up an empty configuration to be filled by Parse.
func NewDefaultConfiguration() *Config {
	return &Config{}
}

// Parse reads the optional JSON config file and the environment, then applies command line
// arguments on top and validates the result.
func (c *Config) Parse(args []string) error {
	var a, s, d, k, t, cfgPath string
	fs := flag.NewFlagSet("snapshooter", flag.ContinueOnError)
	fs.StringVar(&a, "a", "", "Server address")
	fs.StringVar(&s, "s", "", "Storage backend: memory, postgres or sqlite")
	fs.StringVar(&d, "d", "", "Database DSN")
	fs.StringVar(&k, "k", "", "Screenshot provider API key")
	fs.StringVar(&t, "t", "", "Trusted subnet (CIDR)")
	fs.StringVar(&cfgPath, "c", "", "Path to JSON config file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := c.assignValues(cfgPath); err != nil {
		return err
	}
	// flags take precedence over both the file and the environment
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "a":
			c.ServerAddress = a
		case "s":
			c.StorageBackend = s
		case "d":
			c.DatabaseDSN = d
		case "k":
			c.ProviderAPIKey = k
		case "t":
			c.TrustedSubnet = t
		}
	})
	return c.Validate()
}

// assignValues fills the configuration from the file (if any) and the environment.
func (c *Config) assignValues(cfgPath string) error {
	if err := cleanenv.ReadEnv(c); err != nil {
		return err
	}
	if cfgPath == "" {
		cfgPath = c.ConfigPath
	}
	if cfgPath == "" {
		return nil
	}
	c.ConfigPath = cfgPath
	// ReadConfig applies the environment on top of the file contents
	return cleanenv.ReadConfig(cfgPath, c)
}

// Validate reports configuration that makes the server unable to start.
func (c *Config) Validate() error {
	switch c.StorageBackend {
	case BackendMemory:
	case BackendPostgres, BackendSQLite:
		if c.DatabaseDSN == "" {
			return &serviceErrors.ConfigurationError{Msg: fmt.Sprintf("%s storage backend requires DATABASE_DSN", c.StorageBackend)}
		}
	default:
		return &serviceErrors.ConfigurationError{Msg: fmt.Sprintf("unknown storage backend %q", c.StorageBackend)}
	}
	return nil
}

// Usage returns a description of every environment variable the configuration reads.
func Usage() string {
	description, err := cleanenv.GetDescription(&Config{}, nil)
	if err != nil {
		return err.Error()
	}
	return description
}
