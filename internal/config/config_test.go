package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestConfiguration_GetUploadDir(t *testing.T) {
	t.Run("should return default upload directory", func(t *testing.T) {
		// Arrange
		cfg := NewConfiguration()

		// Act
		dir := cfg.GetUploadDir()

		// Assert
		assert.Equal(t, "/tmp/visub_uploads", dir)
	})

	t.Run("should load upload directory from config file", func(t *testing.T) {
		// Arrange - create temporary config file
		tmpDir := t.TempDir()
		configFile := filepath.Join(tmpDir, "config.yaml")
		configContent := `upload_dir: "/srv/visub/jobs"`

		err := os.WriteFile(configFile, []byte(configContent), 0644)
		assert.NoError(t, err)

		cfg, err := NewConfigurationFromFile(configFile)
		assert.NoError(t, err)

		// Act
		dir := cfg.GetUploadDir()

		// Assert
		assert.Equal(t, "/srv/visub/jobs", dir)
	})

	t.Run("should load upload directory from environment variable", func(t *testing.T) {
		// Arrange
		os.Setenv("UPLOAD_DIR", "/data/uploads")
		defer os.Unsetenv("UPLOAD_DIR")

		cfg, err := NewConfigurationFromEnv()
		assert.NoError(t, err)

		// Act
		dir := cfg.GetUploadDir()

		// Assert
		assert.Equal(t, "/data/uploads", dir)
	})

	t.Run("should prefer the prefixed environment variable", func(t *testing.T) {
		// Arrange
		os.Setenv("UPLOAD_DIR", "/data/uploads")
		os.Setenv("VISUB_UPLOAD_DIR", "/data/visub")
		defer func() {
			os.Unsetenv("UPLOAD_DIR")
			os.Unsetenv("VISUB_UPLOAD_DIR")
		}()

		cfg, err := NewConfigurationFromEnv()
		assert.NoError(t, err)

		// Act
		dir := cfg.GetUploadDir()

		// Assert
		assert.Equal(t, "/data/visub", dir)
	})

	t.Run("should return error for non-existent config file", func(t *testing.T) {
		// Arrange
		nonExistentFile := "/tmp/non-existent-config.yaml"

		// Act
		cfg, err := NewConfigurationFromFile(nonExistentFile)

		// Assert
		assert.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "failed to read config file")
	})
}

func TestConfiguration_GetMaxUploadBytes(t *testing.T) {
	t.Run("should default to 500MB", func(t *testing.T) {
		// Arrange
		cfg := NewConfiguration()

		// Act
		max := cfg.GetMaxUploadBytes()

		// Assert
		assert.Equal(t, int64(500)<<20, max)
	})

	t.Run("should convert the configured megabytes to bytes", func(t *testing.T) {
		// Arrange
		cfg := NewConfiguration()
		cfg.viper.Set("max_file_size", 100)

		// Act
		max := cfg.GetMaxUploadBytes()

		// Assert
		assert.Equal(t, int64(100)<<20, max)
	})

	t.Run("should load the cap from the environment", func(t *testing.T) {
		// Arrange
		os.Setenv("MAX_FILE_SIZE", "50")
		defer os.Unsetenv("MAX_FILE_SIZE")

		cfg, err := NewConfigurationFromEnv()
		assert.NoError(t, err)

		// Act
		max := cfg.GetMaxUploadBytes()

		// Assert
		assert.Equal(t, int64(50)<<20, max)
	})
}

func TestConfiguration_RetentionSettings(t *testing.T) {
	t.Run("should default to hourly cleanup and one day retention", func(t *testing.T) {
		// Arrange
		cfg := NewConfiguration()

		// Act & Assert
		assert.Equal(t, time.Hour, cfg.GetCleanupInterval())
		assert.Equal(t, 24*time.Hour, cfg.GetFileRetention())
	})

	t.Run("should read intervals as seconds from the environment", func(t *testing.T) {
		// Arrange
		os.Setenv("CLEANUP_INTERVAL", "600")
		os.Setenv("FILE_RETENTION", "7200")
		defer func() {
			os.Unsetenv("CLEANUP_INTERVAL")
			os.Unsetenv("FILE_RETENTION")
		}()

		cfg, err := NewConfigurationFromEnv()
		assert.NoError(t, err)

		// Act & Assert
		assert.Equal(t, 10*time.Minute, cfg.GetCleanupInterval())
		assert.Equal(t, 2*time.Hour, cfg.GetFileRetention())
	})
}

func TestConfiguration_GetHFToken(t *testing.T) {
	t.Run("should default to empty", func(t *testing.T) {
		// Arrange
		cfg := NewConfiguration()

		// Act
		token := cfg.GetHFToken()

		// Assert
		assert.Empty(t, token)
	})

	t.Run("should load the token from the environment", func(t *testing.T) {
		// Arrange
		os.Setenv("HF_TOKEN", "hf_example_token")
		defer os.Unsetenv("HF_TOKEN")

		cfg, err := NewConfigurationFromEnv()
		assert.NoError(t, err)

		// Act
		token := cfg.GetHFToken()

		// Assert
		assert.Equal(t, "hf_example_token", token)
	})
}

func TestConfiguration_GetDatabasePath(t *testing.T) {
	t.Run("should derive the path from the upload directory", func(t *testing.T) {
		// Arrange
		cfg := NewConfiguration()

		// Act
		path := cfg.GetDatabasePath()

		// Assert
		assert.Equal(t, "/tmp/visub_uploads/jobs.db", path)
	})

	t.Run("should follow an overridden upload directory", func(t *testing.T) {
		// Arrange
		cfg := NewConfiguration()
		cfg.viper.Set("upload_dir", "/srv/visub")

		// Act
		path := cfg.GetDatabasePath()

		// Assert
		assert.Equal(t, "/srv/visub/jobs.db", path)
	})

	t.Run("should prefer an explicit database path", func(t *testing.T) {
		// Arrange
		cfg := NewConfiguration()
		cfg.viper.Set("database_path", "/var/lib/visub/jobs.db")

		// Act
		path := cfg.GetDatabasePath()

		// Assert
		assert.Equal(t, "/var/lib/visub/jobs.db", path)
	})
}

func TestConfiguration_GetServerAddr(t *testing.T) {
	t.Run("should default to port 8000 on all interfaces", func(t *testing.T) {
		// Arrange
		cfg := NewConfiguration()

		// Act
		addr := cfg.GetServerAddr()

		// Assert
		assert.Equal(t, "0.0.0.0:8000", addr)
	})

	t.Run("should load host and port from config file", func(t *testing.T) {
		// Arrange - create temporary config file
		tmpDir := t.TempDir()
		configFile := filepath.Join(tmpDir, "config.yaml")
		configContent := `server:
  host: "127.0.0.1"
  port: 9000`

		err := os.WriteFile(configFile, []byte(configContent), 0644)
		assert.NoError(t, err)

		cfg, err := NewConfigurationFromFile(configFile)
		assert.NoError(t, err)

		// Act
		addr := cfg.GetServerAddr()

		// Assert
		assert.Equal(t, "127.0.0.1:9000", addr)
	})

	t.Run("should read the port from PORT", func(t *testing.T) {
		// Arrange
		os.Setenv("PORT", "8080")
		defer os.Unsetenv("PORT")

		cfg, err := NewConfigurationFromEnv()
		assert.NoError(t, err)

		// Act
		addr := cfg.GetServerAddr()

		// Assert
		assert.Equal(t, "0.0.0.0:8080", addr)
	})
}

func TestConfiguration_GetLogLevel(t *testing.T) {
	t.Run("should default to info", func(t *testing.T) {
		// Arrange
		cfg := NewConfiguration()

		// Act
		level := cfg.GetLogLevel()

		// Assert
		assert.Equal(t, "info", level)
	})

	t.Run("should load the level from the environment", func(t *testing.T) {
		// Arrange
		os.Setenv("VISUB_LOG_LEVEL", "debug")
		defer os.Unsetenv("VISUB_LOG_LEVEL")

		cfg, err := NewConfigurationFromEnv()
		assert.NoError(t, err)

		// Act
		level := cfg.GetLogLevel()

		// Assert
		assert.Equal(t, "debug", level)
	})
}
