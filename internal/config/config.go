// Package config provides type-safe access to visub's service settings. The
// CLI passes everything as flags and never touches this package; the serve
// command reads settings from a config file or the environment.
package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Configuration provides type-safe access to application settings
type Configuration struct {
	viper *viper.Viper
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("upload_dir", "/tmp/visub_uploads")
	v.SetDefault("max_file_size", 500)
	v.SetDefault("cleanup_interval", 3600)
	v.SetDefault("file_retention", 86400)
	v.SetDefault("hf_token", "")
	v.SetDefault("database_path", "")
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8000)
	v.SetDefault("log_level", "info")
}

// NewConfiguration creates a new Configuration instance with default settings
func NewConfiguration() *Configuration {
	v := viper.New()
	setDefaults(v)
	return &Configuration{viper: v}
}

// NewConfigurationFromFile creates a Configuration instance from a config file
func NewConfigurationFromFile(configFile string) (*Configuration, error) {
	v := viper.New()
	v.SetConfigFile(configFile)
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
	}

	return &Configuration{viper: v}, nil
}

// NewConfigurationFromEnv creates a Configuration instance that reads from
// environment variables. A .env file in the working directory is loaded
// first when present.
func NewConfigurationFromEnv() (*Configuration, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("VISUB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// The unprefixed names the original deployment scripts export.
	v.BindEnv("upload_dir", "VISUB_UPLOAD_DIR", "UPLOAD_DIR")
	v.BindEnv("max_file_size", "VISUB_MAX_FILE_SIZE", "MAX_FILE_SIZE")
	v.BindEnv("cleanup_interval", "VISUB_CLEANUP_INTERVAL", "CLEANUP_INTERVAL")
	v.BindEnv("file_retention", "VISUB_FILE_RETENTION", "FILE_RETENTION")
	v.BindEnv("hf_token", "VISUB_HF_TOKEN", "HF_TOKEN")
	v.BindEnv("server.port", "VISUB_SERVER_PORT", "PORT")

	return &Configuration{viper: v}, nil
}

// GetUploadDir returns the directory job working directories are created in.
func (c *Configuration) GetUploadDir() string {
	return c.viper.GetString("upload_dir")
}

// GetMaxUploadBytes returns the upload size cap in bytes. The setting is
// expressed in megabytes.
func (c *Configuration) GetMaxUploadBytes() int64 {
	return c.viper.GetInt64("max_file_size") << 20
}

// GetCleanupInterval returns how often expired jobs are swept. The setting
// is expressed in seconds.
func (c *Configuration) GetCleanupInterval() time.Duration {
	return time.Duration(c.viper.GetInt64("cleanup_interval")) * time.Second
}

// GetFileRetention returns how long finished jobs are kept. The setting is
// expressed in seconds.
func (c *Configuration) GetFileRetention() time.Duration {
	return time.Duration(c.viper.GetInt64("file_retention")) * time.Second
}

// GetHFToken returns the Hugging Face token used for speaker diarization.
func (c *Configuration) GetHFToken() string {
	return c.viper.GetString("hf_token")
}

// GetDatabasePath returns the job database location. When unset it defaults
// to jobs.db inside the upload directory, so overriding upload_dir moves the
// database along with it.
func (c *Configuration) GetDatabasePath() string {
	if path := c.viper.GetString("database_path"); path != "" {
		return path
	}
	return filepath.Join(c.GetUploadDir(), "jobs.db")
}

// GetServerAddr returns the host:port the HTTP server listens on.
func (c *Configuration) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.viper.GetString("server.host"), c.viper.GetInt("server.port"))
}

// GetLogLevel returns the configured log level name.
func (c *Configuration) GetLogLevel() string {
	return c.viper.GetString("log_level")
}
