package log

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"rayline/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// swapLogger installs a buffer-backed package logger for the duration of a test.
func swapLogger(t *testing.T, opts ...Option) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	original := current()
	mu.Lock()
	logger = NewLogger(append([]Option{WithOutput(&buf)}, opts...)...)
	mu.Unlock()
	t.Cleanup(func() {
		mu.Lock()
		logger = original
		mu.Unlock()
	})
	return &buf
}

func TestBasicLogging(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(WithOutput(&buf))

	l.Info("info message")
	assert.Contains(t, buf.String(), "level=info")
	assert.Contains(t, buf.String(), "info message")
	buf.Reset()

	l.Warn("warn message")
	assert.Contains(t, buf.String(), "level=warning")
	buf.Reset()

	l.Error("error message")
	assert.Contains(t, buf.String(), "level=error")
	buf.Reset()

	l.Infof("formatted %s", "message")
	assert.Contains(t, buf.String(), "formatted message")
}

func TestDebugLogging(t *testing.T) {
	buf := swapLogger(t)

	SetDebug(false)
	Debug("hidden message")
	assert.Empty(t, buf.String())

	SetDebug(true)
	defer SetDebug(false)
	Debugf("formatted %s", "debug")
	assert.Contains(t, buf.String(), "level=debug")
	assert.Contains(t, buf.String(), "formatted debug")
}

func TestWithLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(WithOutput(&buf), WithLevel("warn"))

	l.Info("dropped")
	assert.Empty(t, buf.String())
	l.Warn("kept")
	assert.Contains(t, buf.String(), "kept")
}

func TestStructuredLogging(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(WithOutput(&buf))

	l.With(F("key1", "value1"), F("key2", 123)).Info("structured message")
	output := buf.String()
	assert.Contains(t, output, "structured message")
	assert.Contains(t, output, "key1=value1")
	assert.Contains(t, output, "key2=123")
	buf.Reset()

	l.With(F("key1", "value1")).With(F("key2", 123)).Info("chained fields")
	output = buf.String()
	assert.Contains(t, output, "key1=value1")
	assert.Contains(t, output, "key2=123")
}

func TestJSONLogging(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(WithOutput(&buf), WithJSON())

	l.With(F("key1", "value1"), F("key2", 123)).Info("structured json")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "structured json", entry["message"])
	assert.Equal(t, "value1", entry["key1"])
	assert.Equal(t, float64(123), entry["key2"])
	assert.Contains(t, entry, "timestamp")
}

func TestErrorLogging(t *testing.T) {
	buf := swapLogger(t)

	LogWithFields(F("error", fmt.Errorf("standard error").Error())).Error("error occurred")
	assert.Contains(t, buf.String(), "standard error")
	buf.Reset()

	fileErr := errors.NewFileError("file error", "/path/to/file", errors.FileNotFound, nil)
	LogWithError(fileErr).Error("file error occurred")
	output := buf.String()
	assert.Contains(t, output, "file error occurred")
	assert.Contains(t, output, "path=/path/to/file")
	assert.Contains(t, output, "error_kind=1")
	buf.Reset()

	configErr := errors.NewConfigError("config error", "batch_size", errors.InvalidConfig, nil)
	LogWithError(configErr).Error("config error occurred")
	output = buf.String()
	assert.Contains(t, output, "param=batch_size")
	assert.Contains(t, output, "error_kind=4")
	buf.Reset()

	dataErr := errors.NewDataError("malformed result", "name", "r1")
	LogError(dataErr, "dropped result")
	output = buf.String()
	assert.Contains(t, output, "dropped result")
	assert.Contains(t, output, "field=name")
	assert.Contains(t, output, "result_id=r1")
	assert.Contains(t, output, "error_kind=6")
}

func TestNestedErrors(t *testing.T) {
	buf := swapLogger(t)

	baseErr := fmt.Errorf("base error")
	fileErr := errors.NewFileError("file error", "/path/file", errors.FileNotFound, baseErr)
	configErr := errors.NewConfigError("config error", "roots", errors.InvalidConfig, fileErr)

	LogWithError(configErr).Error("nested error occurred")
	output := buf.String()
	assert.Contains(t, output, "config error: roots: file error: /path/file: base error")
	assert.Contains(t, output, "param=roots")
	assert.Contains(t, output, "path=/path/file")
}

func TestNilErrorHandling(t *testing.T) {
	buf := swapLogger(t)

	LogWithError(nil).Error("nil error test")
	assert.Contains(t, buf.String(), "nil error test")
	assert.Contains(t, buf.String(), "<nil>")
}

func TestFileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rayline.log")
	l := NewLogger(WithFile(path))
	l.Info("file test message")
	require.NoError(t, l.Close())

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "file test message")
}

func TestConfigure(t *testing.T) {
	original := current()
	defer func() {
		mu.Lock()
		logger = original
		mu.Unlock()
	}()

	var buf bytes.Buffer
	Configure(WithOutput(&buf), WithJSON())
	Info("global config test")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &entry))
	assert.Equal(t, "global config test", entry["message"])
}
