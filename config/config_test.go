package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCommand(t *testing.T, args ...string) *cobra.Command {
	t.Helper()

	cmd := &cobra.Command{Use: "test"}
	BindFlags(cmd)
	require.NoError(t, cmd.Flags().Parse(args))

	return cmd
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

func TestInitConfigDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	config, err := InitConfig(newTestCommand(t))
	require.NoError(t, err)

	assert.Equal(t, &Config{
		Addr:         ":8080",
		SettingsRoot: "settings",
		IndexPath:    "store.db",
		LogLevel:     "info",
		LogFormat:    "text",
	}, config)
}

func TestInitConfigFile(t *testing.T) {
	path := writeConfig(t, `
addr: ":5800"
settings_root: /var/lib/gloworm
log_level: debug
cameras:
  - name: Camera 0
    path: /dev/video0
  - name: Lifecam
    path: /dev/video1
`)

	config, err := InitConfig(newTestCommand(t, "--config", path))
	require.NoError(t, err)

	assert.Equal(t, ":5800", config.Addr)
	assert.Equal(t, "/var/lib/gloworm", config.SettingsRoot)
	assert.Equal(t, "store.db", config.IndexPath)
	assert.Equal(t, "debug", config.LogLevel)
	assert.Equal(t, []Camera{
		{Name: "Camera 0", Path: "/dev/video0"},
		{Name: "Lifecam", Path: "/dev/video1"},
	}, config.Cameras)
}

func TestInitConfigPrecedence(t *testing.T) {
	path := writeConfig(t, `
addr: ":5800"
settings_root: /from/file
index_path: /from/file/store.db
`)
	t.Setenv("GLOWORM_SETTINGS_ROOT", "/from/env")
	t.Setenv("GLOWORM_INDEX_PATH", "/from/env/store.db")

	config, err := InitConfig(newTestCommand(t, "--config", path, "--index-path", "/from/flag/store.db"))
	require.NoError(t, err)

	assert.Equal(t, ":5800", config.Addr)
	assert.Equal(t, "/from/env", config.SettingsRoot)
	assert.Equal(t, "/from/flag/store.db", config.IndexPath)
}

func TestInitConfigInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "bad level", content: "log_level: loud\n"},
		{name: "bad format", content: "log_format: xml\n"},
		{name: "unnamed camera", content: "cameras:\n  - path: /dev/video0\n"},
		{name: "duplicate camera", content: "cameras:\n  - name: a\n  - name: a\n"},
		{name: "malformed", content: "addr: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := InitConfig(newTestCommand(t, "--config", writeConfig(t, tt.content)))
			assert.Error(t, err)
		})
	}
}

func TestNewLogger(t *testing.T) {
	logger, err := Config{LogLevel: "warn", LogFormat: "json"}.NewLogger()
	require.NoError(t, err)

	assert.Equal(t, logrus.WarnLevel, logger.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, logger.Formatter)
}
