package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"db-seed/internal/dialect"
	"db-seed/internal/schema"
)

const (
	SourceFile   = "file"
	SourceRemote = "remote"
)

// Config is everything one run needs, resolved from flags, env, .env and db-seed.yaml.
type Config struct {
	Driver string
	Conn   dialect.Conn
	Schema string

	Source        string
	InputDir      string
	OutputDir     string
	Count         int
	APIKey        string
	GeneratorHost string
	Seed          int64
	Discover      bool

	Tables []schema.Table
	Auth   []schema.AuthSpec
}

// envKeys maps config keys to the environment variables that feed them.
var envKeys = []struct {
	key string
	env string
}{
	{"database.driver", "DB_DRIVER"},
	{"database.host", "DB_HOST"},
	{"database.port", "DB_PORT"},
	{"database.user", "DB_USER"},
	{"database.password", "DB_PASSWORD"},
	{"database.name", "DB_NAME"},
	{"database.schema", "DB_SCHEMA"},
	{"generator.api_key", "MOCKAROO_API_KEY"},
	{"generator.host", "MOCKAROO_HOST"},
}

// bindConfig registers defaults and environment bindings on v.
func bindConfig(v *viper.Viper) {
	v.SetDefault("database.driver", "mysql")
	v.SetDefault("source", SourceFile)
	v.SetDefault("input_dir", "./Database/AutoBase")
	v.SetDefault("output_dir", "./Database/MockData")
	v.SetDefault("generator.count", 1000)

	for _, e := range envKeys {
		v.BindEnv(e.key, e.env)
	}
}

// ConfigError lists every required setting that is missing.
type ConfigError struct {
	Missing []string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("missing required configuration: %s", strings.Join(e.Missing, ", "))
}

// LoadConfig reads v into a Config. Tables and auth fall back to the built-in plan.
func LoadConfig(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Driver: strings.ToLower(v.GetString("database.driver")),
		Conn: dialect.Conn{
			Host:     v.GetString("database.host"),
			Port:     v.GetInt("database.port"),
			User:     v.GetString("database.user"),
			Password: v.GetString("database.password"),
			Database: v.GetString("database.name"),
			Params:   v.GetStringMapString("database.params"),
		},
		Schema:        v.GetString("database.schema"),
		Source:        strings.ToLower(v.GetString("source")),
		InputDir:      v.GetString("input_dir"),
		OutputDir:     v.GetString("output_dir"),
		Count:         v.GetInt("generator.count"),
		APIKey:        v.GetString("generator.api_key"),
		GeneratorHost: v.GetString("generator.host"),
		Seed:          v.GetInt64("seed"),
		Discover:      v.GetBool("discover"),
	}

	if v.IsSet("tables") {
		if err := v.UnmarshalKey("tables", &cfg.Tables); err != nil {
			return nil, fmt.Errorf("failed to parse tables config: %w", err)
		}
	} else {
		cfg.Tables = schema.DefaultTables()
	}
	if v.IsSet("auth") {
		if err := v.UnmarshalKey("auth", &cfg.Auth); err != nil {
			return nil, fmt.Errorf("failed to parse auth config: %w", err)
		}
	} else {
		cfg.Auth = schema.DefaultAuth()
	}

	return cfg, nil
}

// need selects which settings a command requires.
type need struct {
	store  bool // connect to the database
	target bool // render the database selection statement
}

// Validate fails fast on missing settings, naming them by environment variable.
func (c *Config) Validate(n need) error {
	var missing []string
	check := func(ok bool, name string) {
		if !ok {
			missing = append(missing, name)
		}
	}

	if n.store {
		check(c.Conn.Host != "", "DB_HOST")
		check(c.Conn.User != "", "DB_USER")
		check(c.Conn.Password != "", "DB_PASSWORD")
	}
	if n.store || n.target {
		check(c.Conn.Database != "", "DB_NAME")
	}
	if n.target && c.Source == SourceRemote {
		check(c.APIKey != "", "MOCKAROO_API_KEY")
	}
	if len(missing) > 0 {
		return &ConfigError{Missing: missing}
	}

	if n.target {
		if c.Source != SourceFile && c.Source != SourceRemote {
			return fmt.Errorf("invalid source %q (want %s or %s)", c.Source, SourceFile, SourceRemote)
		}
		if c.Count <= 0 {
			return fmt.Errorf("generator.count must be positive, got %d", c.Count)
		}
	}
	return nil
}

// Plan validates the declared table order.
func (c *Config) Plan() (*schema.Plan, error) {
	return schema.NewPlan(c.Tables, c.Auth)
}

// Dialect resolves the configured driver.
func (c *Config) Dialect() (dialect.Dialect, error) {
	return dialect.GetDialect(c.Driver)
}
