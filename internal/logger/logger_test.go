package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNewLogger(t *testing.T) {
	t.Run("should create a new zap logger instance", func(t *testing.T) {
		// Act
		logger := NewLogger()

		// Assert
		assert.NotNil(t, logger)
		assert.IsType(t, &zap.Logger{}, logger)
	})
}

func TestNewProductionLogger(t *testing.T) {
	t.Run("should create a logger at the requested level", func(t *testing.T) {
		// Act
		logger, err := NewProductionLogger("debug")

		// Assert
		assert.NoError(t, err)
		assert.NotNil(t, logger)
		assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))
	})

	t.Run("should suppress levels below the configured one", func(t *testing.T) {
		// Act
		logger, err := NewProductionLogger("error")

		// Assert
		assert.NoError(t, err)
		assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))
		assert.True(t, logger.Core().Enabled(zapcore.ErrorLevel))
	})

	t.Run("should reject an unknown level name", func(t *testing.T) {
		// Act
		logger, err := NewProductionLogger("shouting")

		// Assert
		assert.Error(t, err)
		assert.Nil(t, logger)
		assert.Contains(t, err.Error(), "invalid log level")
	})
}

func TestNewCLILogger(t *testing.T) {
	t.Run("should log at info level by default", func(t *testing.T) {
		// Act
		logger := NewCLILogger(false)

		// Assert
		assert.NotNil(t, logger)
		assert.True(t, logger.Core().Enabled(zapcore.InfoLevel))
		assert.False(t, logger.Core().Enabled(zapcore.DebugLevel))
	})

	t.Run("should enable debug output when verbose", func(t *testing.T) {
		// Act
		logger := NewCLILogger(true)

		// Assert
		assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))
	})
}
