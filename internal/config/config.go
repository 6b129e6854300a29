package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	// Embedded zone database so Locale.Timezone resolves on hosts without one.
	_ "time/tzdata"
)

// Config holds all configuration options for the task organizer
type Config struct {
	Database    DatabaseConfig    `mapstructure:"database"`
	Locale      LocaleConfig      `mapstructure:"locale"`
	Validation  ValidationConfig  `mapstructure:"validation"`
	Session     SessionConfig     `mapstructure:"session"`
	Catalog     CatalogConfig     `mapstructure:"catalog"`
	Application ApplicationConfig `mapstructure:"application"`
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	Dir            string        `mapstructure:"dir" env:"TASKU_DB_DIR"`
	Filename       string        `mapstructure:"filename" env:"TASKU_DB_FILENAME"`
	QueryTimeout   time.Duration `mapstructure:"query_timeout" env:"TASKU_DB_QUERY_TIMEOUT"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout" env:"TASKU_DB_WRITE_TIMEOUT"`
	DirPermissions uint32        `mapstructure:"dir_permissions" env:"TASKU_DB_DIR_PERMISSIONS"`
}

// LocaleConfig controls how dates and messages are presented
type LocaleConfig struct {
	Language string `mapstructure:"language" env:"TASKU_LANGUAGE"`
	Timezone string `mapstructure:"timezone" env:"TASKU_TIMEZONE"`
}

// ValidationConfig holds validation rules configuration
type ValidationConfig struct {
	TitleMinLength       int      `mapstructure:"title_min_length" env:"TASKU_VALIDATION_TITLE_MIN"`
	TitleMaxLength       int      `mapstructure:"title_max_length" env:"TASKU_VALIDATION_TITLE_MAX"`
	AllowPastDate        bool     `mapstructure:"allow_past_date" env:"TASKU_ALLOW_PAST_DATE"`
	MinPasswordLength    int      `mapstructure:"min_password_length" env:"TASKU_MIN_PASSWORD_LENGTH"`
	InstitutionalDomains []string `mapstructure:"institutional_domains" env:"TASKU_INSTITUTIONAL_DOMAINS"`
}

// SessionConfig holds login policy configuration
type SessionConfig struct {
	AllowNonInstitutional bool          `mapstructure:"allow_non_institutional" env:"TASKU_ALLOW_NON_INSTITUTIONAL"`
	DefaultRole           string        `mapstructure:"default_role" env:"TASKU_DEFAULT_ROLE"`
	SimulatedLatency      time.Duration `mapstructure:"simulated_latency" env:"TASKU_SIMULATED_LATENCY"`
}

// CatalogConfig points at an optional YAML file replacing the built-in catalog
type CatalogConfig struct {
	File string `mapstructure:"file" env:"TASKU_CATALOG_FILE"`
}

// ApplicationConfig holds application-level configuration
type ApplicationConfig struct {
	Timeout time.Duration `mapstructure:"timeout" env:"TASKU_APP_TIMEOUT"`
	Verbose bool          `mapstructure:"verbose" env:"TASKU_APP_VERBOSE"`
}

// DefaultInstitutionalDomains are the address suffixes treated as institutional.
var DefaultInstitutionalDomains = []string{"@inacap.cl", "@alumnos.inacap.cl", "@profesor.inacap.cl"}

// NewConfig creates a new configuration with sensible defaults
func NewConfig() *Config {
	homeDir, _ := os.UserHomeDir()

	return &Config{
		Database: DatabaseConfig{
			Dir:            filepath.Join(homeDir, ".tasku"),
			Filename:       "tasku.db",
			QueryTimeout:   10 * time.Second,
			WriteTimeout:   5 * time.Second,
			DirPermissions: 0755,
		},
		Locale: LocaleConfig{
			Language: "es",
			Timezone: "America/Santiago",
		},
		Validation: ValidationConfig{
			TitleMinLength:       3,
			TitleMaxLength:       255,
			AllowPastDate:        false,
			MinPasswordLength:    6,
			InstitutionalDomains: append([]string(nil), DefaultInstitutionalDomains...),
		},
		Session: SessionConfig{
			AllowNonInstitutional: true,
			DefaultRole:           "student",
		},
		Application: ApplicationConfig{
			Timeout: 60 * time.Second,
			Verbose: false,
		},
	}
}

// GetDatabasePath returns the full path to the database file
func (c *Config) GetDatabasePath() string {
	return filepath.Join(c.Database.Dir, c.Database.Filename)
}

// GetQueryTimeout returns the database query timeout
func (c *Config) GetQueryTimeout() time.Duration {
	return c.Database.QueryTimeout
}

// GetWriteTimeout returns the database write timeout
func (c *Config) GetWriteTimeout() time.Duration {
	return c.Database.WriteTimeout
}

// Location resolves the configured timezone.
func (c *Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.Locale.Timezone)
}

// LoadFromEnvironment loads configuration from environment variables
func (c *Config) LoadFromEnvironment() error {
	// Database configuration
	if dir := os.Getenv("TASKU_DB_DIR"); dir != "" {
		c.Database.Dir = dir
	}
	if filename := os.Getenv("TASKU_DB_FILENAME"); filename != "" {
		c.Database.Filename = filename
	}
	if timeout := os.Getenv("TASKU_DB_QUERY_TIMEOUT"); timeout != "" {
		c.Database.QueryTimeout = ParseDurationWithFallback(timeout, c.Database.QueryTimeout)
	}
	if timeout := os.Getenv("TASKU_DB_WRITE_TIMEOUT"); timeout != "" {
		c.Database.WriteTimeout = ParseDurationWithFallback(timeout, c.Database.WriteTimeout)
	}
	if perms := os.Getenv("TASKU_DB_DIR_PERMISSIONS"); perms != "" {
		c.Database.DirPermissions = ParseUint32WithFallback(perms, 8, c.Database.DirPermissions)
	}

	// Locale configuration
	if lang := os.Getenv("TASKU_LANGUAGE"); lang != "" {
		c.Locale.Language = lang
	}
	if tz := os.Getenv("TASKU_TIMEZONE"); tz != "" {
		c.Locale.Timezone = tz
	}

	// Validation configuration
	if minLen := os.Getenv("TASKU_VALIDATION_TITLE_MIN"); minLen != "" {
		c.Validation.TitleMinLength = ParseIntWithFallback(minLen, c.Validation.TitleMinLength)
	}
	if maxLen := os.Getenv("TASKU_VALIDATION_TITLE_MAX"); maxLen != "" {
		c.Validation.TitleMaxLength = ParseIntWithFallback(maxLen, c.Validation.TitleMaxLength)
	}
	if allow := os.Getenv("TASKU_ALLOW_PAST_DATE"); allow != "" {
		c.Validation.AllowPastDate = ParseBoolWithFallback(allow, c.Validation.AllowPastDate)
	}
	if minPw := os.Getenv("TASKU_MIN_PASSWORD_LENGTH"); minPw != "" {
		c.Validation.MinPasswordLength = ParseIntWithFallback(minPw, c.Validation.MinPasswordLength)
	}
	if domains := os.Getenv("TASKU_INSTITUTIONAL_DOMAINS"); domains != "" {
		c.Validation.InstitutionalDomains = splitList(domains)
	}

	// Session configuration
	if allow := os.Getenv("TASKU_ALLOW_NON_INSTITUTIONAL"); allow != "" {
		c.Session.AllowNonInstitutional = ParseBoolWithFallback(allow, c.Session.AllowNonInstitutional)
	}
	if role := os.Getenv("TASKU_DEFAULT_ROLE"); role != "" {
		c.Session.DefaultRole = role
	}
	if latency := os.Getenv("TASKU_SIMULATED_LATENCY"); latency != "" {
		c.Session.SimulatedLatency = ParseDurationWithFallback(latency, c.Session.SimulatedLatency)
	}

	// Catalog configuration
	if file := os.Getenv("TASKU_CATALOG_FILE"); file != "" {
		c.Catalog.File = file
	}

	// Application configuration
	if timeout := os.Getenv("TASKU_APP_TIMEOUT"); timeout != "" {
		c.Application.Timeout = ParseDurationWithFallback(timeout, c.Application.Timeout)
	}
	if verbose := os.Getenv("TASKU_APP_VERBOSE"); verbose != "" {
		c.Application.Verbose = ParseBoolWithFallback(verbose, c.Application.Verbose)
	}

	return nil
}

// Validate validates the configuration and returns any errors
func (c *Config) Validate() error {
	// Validate database configuration
	if c.Database.Dir == "" {
		return &ConfigError{Field: "database.dir", Message: "database directory cannot be empty"}
	}
	if c.Database.Filename == "" {
		return &ConfigError{Field: "database.filename", Message: "database filename cannot be empty"}
	}
	if c.Database.QueryTimeout <= 0 {
		return &ConfigError{Field: "database.query_timeout", Message: "query timeout must be positive"}
	}
	if c.Database.WriteTimeout <= 0 {
		return &ConfigError{Field: "database.write_timeout", Message: "write timeout must be positive"}
	}

	// Validate locale configuration
	switch c.Locale.Language {
	case "en", "es":
	default:
		if !strings.HasPrefix(c.Locale.Language, "en-") && !strings.HasPrefix(c.Locale.Language, "es-") {
			return &ConfigError{Field: "locale.language", Message: "language must be an English or Spanish tag"}
		}
	}
	if _, err := c.Location(); err != nil {
		return &ConfigError{Field: "locale.timezone", Message: "unknown timezone " + c.Locale.Timezone}
	}

	// Validate validation configuration
	if c.Validation.TitleMinLength < 1 {
		return &ConfigError{Field: "validation.title_min_length", Message: "title minimum length must be at least 1"}
	}
	if c.Validation.TitleMaxLength < c.Validation.TitleMinLength {
		return &ConfigError{Field: "validation.title_max_length", Message: "title maximum length must be greater than minimum length"}
	}
	if c.Validation.MinPasswordLength < 1 {
		return &ConfigError{Field: "validation.min_password_length", Message: "minimum password length must be at least 1"}
	}
	if len(c.Validation.InstitutionalDomains) == 0 {
		return &ConfigError{Field: "validation.institutional_domains", Message: "at least one institutional domain is required"}
	}

	// Validate session configuration
	if c.Session.DefaultRole != "student" && c.Session.DefaultRole != "professor" {
		return &ConfigError{Field: "session.default_role", Message: "default role must be student or professor"}
	}
	if c.Session.SimulatedLatency < 0 {
		return &ConfigError{Field: "session.simulated_latency", Message: "simulated latency cannot be negative"}
	}

	// Validate application configuration
	if c.Application.Timeout <= 0 {
		return &ConfigError{Field: "application.timeout", Message: "application timeout must be positive"}
	}

	return nil
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
