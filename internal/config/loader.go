package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// ConfigFileEnv names the environment variable pointing at the YAML config file.
const ConfigFileEnv = "TASKU_CONFIG"

// Loader handles loading configuration from multiple sources
type Loader struct {
	config     *Config
	envFile    string
	configFile string
}

// NewLoader creates a new configuration loader
func NewLoader() *Loader {
	return &Loader{
		config:  NewConfig(),
		envFile: ".env",
	}
}

// WithEnvFile sets the dotenv file read before anything else. An empty path
// disables dotenv loading.
func (l *Loader) WithEnvFile(path string) *Loader {
	l.envFile = path
	return l
}

// WithConfigFile sets the YAML config file, taking precedence over TASKU_CONFIG.
func (l *Loader) WithConfigFile(path string) *Loader {
	l.configFile = path
	return l
}

// Load loads configuration using the cascading strategy:
// 1. Start with defaults
// 2. Export variables from the dotenv file that are not already set
// 3. Override with the YAML config file
// 4. Override with environment variables
// 5. Override with command line flags (LoadWithOverrides)
func (l *Loader) Load() (*Config, error) {
	if err := l.loadEnvFile(); err != nil {
		return nil, err
	}

	if err := l.loadConfigFile(); err != nil {
		return nil, err
	}

	if err := l.config.LoadFromEnvironment(); err != nil {
		return nil, err
	}

	if err := l.config.Validate(); err != nil {
		return nil, err
	}

	return l.config, nil
}

// LoadWithOverrides loads configuration and applies command line overrides
func (l *Loader) LoadWithOverrides(overrides *ConfigOverrides) (*Config, error) {
	config, err := l.Load()
	if err != nil {
		return nil, err
	}

	if overrides != nil {
		l.applyOverrides(config, overrides)
	}

	// Re-validate after applying overrides
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (l *Loader) loadEnvFile() error {
	if l.envFile == "" {
		return nil
	}
	if err := godotenv.Load(l.envFile); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", l.envFile, err)
	}
	return nil
}

// loadConfigFile reads the YAML config file. A missing file is only an
// error when it was named explicitly.
func (l *Loader) loadConfigFile() error {
	path := l.configFile
	explicit := path != ""
	if !explicit {
		path = os.Getenv(ConfigFileEnv)
		explicit = path != ""
	}
	if !explicit {
		path = DefaultConfigPath()
	}
	if path == "" {
		return nil
	}

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) && !explicit {
			return nil
		}
		return fmt.Errorf("config file %s: %w", path, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := v.Unmarshal(l.config); err != nil {
		return fmt.Errorf("failed to decode config file %s: %w", path, err)
	}
	// Unmarshal merges into the default slice element by element instead of
	// replacing it.
	if v.IsSet("validation.institutional_domains") {
		l.config.Validation.InstitutionalDomains = v.GetStringSlice("validation.institutional_domains")
	}
	return nil
}

// DefaultConfigPath returns ~/.tasku/config.yaml, or "" without a home directory.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".tasku", "config.yaml")
}

// ConfigOverrides holds command line flag overrides
type ConfigOverrides struct {
	// Database overrides
	DBDir            *string
	DBFilename       *string
	DBQueryTimeout   *time.Duration
	DBWriteTimeout   *time.Duration
	DBDirPermissions *uint32

	// Locale overrides
	Language *string
	Timezone *string

	// Validation overrides
	TitleMaxLength *int
	AllowPastDate  *bool

	// Session overrides
	AllowNonInstitutional *bool
	SimulatedLatency      *time.Duration

	// Catalog overrides
	CatalogFile *string

	// Application overrides
	Timeout *time.Duration
	Verbose *bool
}

// applyOverrides applies command line overrides to the configuration
func (l *Loader) applyOverrides(config *Config, overrides *ConfigOverrides) {
	// Database overrides
	if overrides.DBDir != nil {
		config.Database.Dir = *overrides.DBDir
	}
	if overrides.DBFilename != nil {
		config.Database.Filename = *overrides.DBFilename
	}
	if overrides.DBQueryTimeout != nil {
		config.Database.QueryTimeout = *overrides.DBQueryTimeout
	}
	if overrides.DBWriteTimeout != nil {
		config.Database.WriteTimeout = *overrides.DBWriteTimeout
	}
	if overrides.DBDirPermissions != nil {
		config.Database.DirPermissions = *overrides.DBDirPermissions
	}

	// Locale overrides
	if overrides.Language != nil {
		config.Locale.Language = *overrides.Language
	}
	if overrides.Timezone != nil {
		config.Locale.Timezone = *overrides.Timezone
	}

	// Validation overrides
	if overrides.TitleMaxLength != nil {
		config.Validation.TitleMaxLength = *overrides.TitleMaxLength
	}
	if overrides.AllowPastDate != nil {
		config.Validation.AllowPastDate = *overrides.AllowPastDate
	}

	// Session overrides
	if overrides.AllowNonInstitutional != nil {
		config.Session.AllowNonInstitutional = *overrides.AllowNonInstitutional
	}
	if overrides.SimulatedLatency != nil {
		config.Session.SimulatedLatency = *overrides.SimulatedLatency
	}

	// Catalog overrides
	if overrides.CatalogFile != nil {
		config.Catalog.File = *overrides.CatalogFile
	}

	// Application overrides
	if overrides.Timeout != nil {
		config.Application.Timeout = *overrides.Timeout
	}
	if overrides.Verbose != nil {
		config.Application.Verbose = *overrides.Verbose
	}
}

// ParseDurationWithFallback parses a duration string with a fallback value
func ParseDurationWithFallback(s string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(s); err == nil {
		return d
	}
	return fallback
}

// ParseIntWithFallback parses an integer string with a fallback value
func ParseIntWithFallback(s string, fallback int) int {
	if i, err := strconv.Atoi(s); err == nil {
		return i
	}
	return fallback
}

// ParseBoolWithFallback parses a boolean string with a fallback value
func ParseBoolWithFallback(s string, fallback bool) bool {
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	return fallback
}

// ParseUint32WithFallback parses a uint32 string with a fallback value
func ParseUint32WithFallback(s string, base int, fallback uint32) uint32 {
	if u, err := strconv.ParseUint(s, base, 32); err == nil {
		return uint32(u)
	}
	return fallback
}
