// Package config loads service configuration from defaults, an optional
// YAML file, the environment and command-line flags, in that order.
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

const ServiceName = "scoop"

// Persistence drivers.
const (
	DriverNone   = "none"
	DriverYAML   = "yaml"
	DriverSQLite = "sqlite"
)

var ErrInvalid = errors.New("config: invalid")

type Config struct {
	Addr        string      `yaml:"addr"`
	DiagAddr    string      `yaml:"diag_addr"`
	LogLevel    string      `yaml:"log_level"`
	TestMode    bool        `yaml:"test_mode"`
	Persistence Persistence `yaml:"persistence"`

	// Routes asks for the route docs to be printed instead of serving.
	Routes bool `yaml:"-"`
}

type Persistence struct {
	Driver string `yaml:"driver"`
	Path   string `yaml:"path"`
}

func Defaults() Config {
	return Config{
		Addr:     ":4000",
		DiagAddr: ":9999",
		LogLevel: "info",
		Persistence: Persistence{
			Driver: DriverNone,
		},
	}
}

// Load builds the configuration for args (without the program name).
func Load(args []string) (Config, error) {
	cfg := Defaults()

	fs := flag.NewFlagSet(ServiceName, flag.ContinueOnError)
	var (
		configPath = fs.String("config", getEnv("SCOOP_CONFIG", ""), "path to a YAML config file")
		routes     = fs.Bool("routes", getEnvBool("SCOOP_ROUTES", false), "generate router documentation")
		addr       = fs.String("addr", cfg.Addr, "application address")
		diagAddr   = fs.String("diag_addr", cfg.DiagAddr, "diagnostics address")
		logLevel   = fs.String("log_level", cfg.LogLevel, "log level")
		testMode   = fs.Bool("test_mode", cfg.TestMode, "disable persistence hooks")
		driver     = fs.String("store_driver", cfg.Persistence.Driver, "persistence driver: none, yaml or sqlite")
		storePath  = fs.String("store_path", cfg.Persistence.Path, "persistence file")
	)
	if err := fs.Parse(args); err != nil {
		return Config{}, fmt.Errorf("config: parse flags: %w", err)
	}

	if *configPath != "" {
		if err := cfg.readFile(*configPath); err != nil {
			return Config{}, err
		}
	}

	cfg.applyEnv()

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "addr":
			cfg.Addr = *addr
		case "diag_addr":
			cfg.DiagAddr = *diagAddr
		case "log_level":
			cfg.LogLevel = *logLevel
		case "test_mode":
			cfg.TestMode = *testMode
		case "store_driver":
			cfg.Persistence.Driver = *driver
		case "store_path":
			cfg.Persistence.Path = *storePath
		}
	})
	cfg.Routes = *routes

	if cfg.Persistence.Path == "" {
		cfg.Persistence.Path = defaultPath(cfg.Persistence.Driver)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c *Config) readFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}

	return nil
}

func (c *Config) applyEnv() {
	if port := os.Getenv("PORT"); port != "" {
		c.Addr = ":" + port
	}
	c.Addr = getEnv("SCOOP_ADDR", c.Addr)
	c.DiagAddr = getEnv("SCOOP_DIAG_ADDR", c.DiagAddr)
	c.LogLevel = getEnv("SCOOP_LOG_LEVEL", c.LogLevel)
	c.TestMode = getEnvBool("IS_TEST_MODE", c.TestMode)
	c.Persistence.Driver = getEnv("SCOOP_STORE_DRIVER", c.Persistence.Driver)
	c.Persistence.Path = getEnv("SCOOP_STORE_PATH", c.Persistence.Path)
}

// Validate checks addresses, the log level and the persistence driver.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("%w: addr is required", ErrInvalid)
	}
	if c.DiagAddr == "" {
		return fmt.Errorf("%w: diag_addr is required", ErrInvalid)
	}
	if _, err := c.Level(); err != nil {
		return fmt.Errorf("%w: log_level %q", ErrInvalid, c.LogLevel)
	}
	switch c.Persistence.Driver {
	case DriverNone, DriverYAML, DriverSQLite:
	default:
		return fmt.Errorf("%w: persistence driver %q", ErrInvalid, c.Persistence.Driver)
	}

	return nil
}

// Level parses LogLevel.
func (c *Config) Level() (zapcore.Level, error) {
	var lvl zapcore.Level
	err := lvl.UnmarshalText([]byte(c.LogLevel))

	return lvl, err
}

func defaultPath(driver string) string {
	switch driver {
	case DriverYAML:
		return "database.yml"
	case DriverSQLite:
		return ServiceName + ".db"
	}

	return ""
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}

	return fallback
}

// getEnvBool counts any non-empty value strconv cannot parse as true.
func getEnvBool(key string, fallback bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return true
	}

	return b
}
