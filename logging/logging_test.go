// ABOUTME: Tests for logger construction
// ABOUTME: Checks file output and level handling
package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/harperreed/freightdesk/config"
)

func TestNew_WritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "freightdesk.log")
	logger, err := New(&config.Config{LogFile: path, LogLevel: "info"})
	require.NoError(t, err)

	logger.Debug("hidden at info")
	logger.Info("fetched records", zap.String("resource", "lead"))
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, `"msg":"fetched records"`)
	assert.Contains(t, out, `"resource":"lead"`)
	assert.Contains(t, out, `"app":"freightdesk"`)
	assert.NotContains(t, out, "hidden at info")
}

func TestNew_VerboseEnablesDebug(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.log")
	logger, err := New(&config.Config{LogFile: path, LogLevel: "error", Verbose: true})
	require.NoError(t, err)

	logger.Debug("request", zap.String("request_id", "01H"))
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"request_id":"01H"`)
}

func TestNew_BadLevel(t *testing.T) {
	_, err := New(&config.Config{LogFile: filepath.Join(t.TempDir(), "x.log"), LogLevel: "loud"})
	assert.Error(t, err)
}

func TestNop(t *testing.T) {
	assert.NotNil(t, Nop())
}
