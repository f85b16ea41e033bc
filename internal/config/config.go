package config

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/viper"
)

// Config holds the configuration for the Taskdeck server.
type Config struct {
	// Listen is the address the Taskdeck server will listen on.
	Listen string `yaml:"listen" mapstructure:"listen"`
	// LogLevel is the log level for the server (debug, info, warn, error).
	LogLevel string `yaml:"log_level" mapstructure:"log_level"`
	// Database holds the database configuration.
	Database *DatabaseConfig `yaml:"database" mapstructure:"database"`
	// Admin holds the optional bootstrap admin account.
	Admin *AdminConfig `yaml:"admin" mapstructure:"admin"`
}

// DatabaseConfig holds the database configuration.
type DatabaseConfig struct {
	// Path is the path to the sqlite database file.
	Path string `yaml:"path" mapstructure:"path"`
}

// AdminConfig holds the credentials for the bootstrap admin account.
// The account is created on startup if the username is not taken yet.
type AdminConfig struct {
	// Username is the admin username.
	Username string `yaml:"username" mapstructure:"username"`
	// Email is the admin email address.
	Email string `yaml:"email" mapstructure:"email"`
	// Password is the admin password. Only used when the account is created.
	Password string `yaml:"password" mapstructure:"password"`
}

// Load reads the configuration from the specified path and returns a Config struct.
// If path is empty, it will use default search paths for config files.
func Load(path string) (*Config, error) {
	v := viper.New()

	// Set default values
	setDefaults(v)

	// Configure Viper
	v.SetConfigType("yaml")
	v.SetEnvPrefix("TASKDECK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var configFileFound bool
	if path != "" {
		// Use specific config file
		v.SetConfigFile(path)
	} else {
		// Search for config in common locations
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.taskdeck")
		v.AddConfigPath("/etc/taskdeck")
	}

	// Read the config file
	if err := v.ReadInConfig(); err != nil {
		// If no config file is found, use defaults
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		configFileFound = true
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if configFileFound {
		log.Debug("Using config file", "file", v.ConfigFileUsed())
		log.Debug("Environment variables with TASKDECK_ prefix will override config file values")
	}

	// Validate required configs
	if err := validateConfig(&c); err != nil {
		return nil, err
	}

	return &c, nil
}

// setDefaults sets default values for the configuration.
func setDefaults(v *viper.Viper) {
	v.SetDefault("listen", "0.0.0.0:8080")
	v.SetDefault("log_level", "info")
	v.SetDefault("database.path", "taskdeck.db")
}

// validateConfig validates the configuration.
func validateConfig(c *Config) error {
	if c == nil {
		return fmt.Errorf("missing taskdeck config")
	}

	if c.Listen == "" {
		return fmt.Errorf("listen address is required")
	}

	if c.Database == nil || c.Database.Path == "" {
		return fmt.Errorf("database path is required")
	}

	if c.Admin != nil && c.Admin.Username != "" {
		if c.Admin.Email == "" {
			return fmt.Errorf("admin email is required when an admin account is configured")
		}
		if c.Admin.Password == "" {
			return fmt.Errorf("admin password is required when an admin account is configured")
		}
	}

	return nil
}
