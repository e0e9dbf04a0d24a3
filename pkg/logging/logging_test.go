package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupLogger(t *testing.T) {
	tests := []struct {
		name      string
		verbosity int
		wantLevel zerolog.Level
	}{
		{"default warn level", 0, zerolog.WarnLevel},
		{"info level", 1, zerolog.InfoLevel},
		{"debug level", 2, zerolog.DebugLevel},
		{"trace level", 3, zerolog.TraceLevel},
		{"high verbosity defaults to trace", 5, zerolog.TraceLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tempDir := t.TempDir()
			t.Setenv("SCAFFOLD_STATE_DIR", tempDir)

			SetupLogger(tt.verbosity)

			if zerolog.GlobalLevel() != tt.wantLevel {
				t.Errorf("SetupLogger(%d) set level to %v, want %v",
					tt.verbosity, zerolog.GlobalLevel(), tt.wantLevel)
			}

			// The rotating writer opens its file on first write
			log.Warn().Msg("level check")

			logPath := filepath.Join(tempDir, "scaffold.log")
			if _, err := os.Stat(logPath); os.IsNotExist(err) {
				t.Errorf("Log file was not created at %s", logPath)
			}
		})
	}
}

func TestSetupLoggerWithOptions_DisableFile(t *testing.T) {
	tempDir := t.TempDir()
	logPath := filepath.Join(tempDir, "nested", "custom.log")

	opts := DefaultOptions(0)
	opts.FilePath = logPath
	opts.DisableFile = true
	SetupLoggerWithOptions(opts)

	log.Warn().Msg("console only")

	_, err := os.Stat(filepath.Dir(logPath))
	assert.True(t, os.IsNotExist(err), "log directory should not be created when file logging is disabled")
}

func TestSetupLoggerWithOptions_CustomPath(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "nested", "custom.log")

	opts := DefaultOptions(1)
	opts.FilePath = logPath
	SetupLoggerWithOptions(opts)

	log.Info().Msg("written to custom file")

	content, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(content), "written to custom file")
}

func TestGetLogFilePath(t *testing.T) {
	t.Run("with SCAFFOLD_STATE_DIR", func(t *testing.T) {
		t.Setenv("SCAFFOLD_STATE_DIR", "/custom/state")
		got := getLogFilePath()
		assert.True(t, contains(got, "/custom/state/scaffold.log"), "got %s", got)
	})

	t.Run("without override", func(t *testing.T) {
		t.Setenv("SCAFFOLD_STATE_DIR", "")
		got := getLogFilePath()
		assert.True(t, filepath.IsAbs(got), "getLogFilePath() returned relative path: %s", got)
		assert.True(t, contains(got, "scaffold/scaffold.log"), "got %s", got)
	})
}

func TestGetLogger(t *testing.T) {
	var buf bytes.Buffer
	log.Logger = zerolog.New(&buf).Level(zerolog.InfoLevel)
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	logger := GetLogger("test-component")
	logger.Info().Msg("test message")

	assert.Contains(t, buf.String(), `"component":"test-component"`)
}

func TestWithFields(t *testing.T) {
	var buf bytes.Buffer
	log.Logger = zerolog.New(&buf).Level(zerolog.InfoLevel)
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	fields := map[string]interface{}{
		"key1": "value1",
		"key2": 42,
		"key3": true,
	}

	logger := WithFields(fields)
	logger.Info().Msg("test message with fields")

	output := buf.String()
	assert.Contains(t, output, `"key1":"value1"`)
	assert.Contains(t, output, `"key2":42`)
	assert.Contains(t, output, `"key3":true`)
}

func TestLogOperationStart(t *testing.T) {
	var buf bytes.Buffer
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)

	done := LogOperationStart(logger, "write-files")
	done()

	output := buf.String()
	assert.Contains(t, output, "Operation started")
	assert.Contains(t, output, "Operation completed")
	assert.Equal(t, 2, strings.Count(output, "write-files"))
}

// Helper function
func contains(s, substr string) bool {
	// Clean paths to handle different OS separators
	cleanedS := filepath.ToSlash(s)
	cleanedSubstr := filepath.ToSlash(substr)
	return strings.Contains(cleanedS, cleanedSubstr)
}
