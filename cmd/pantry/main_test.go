// ABOUTME: Tests for the pantry command helpers
// ABOUTME: Covers adduser flag parsing, the init writer and the color log handler

package main

import (
	"bufio"
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2389/pantry/internal/config"
)

func TestParseAddUserArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    addUserArgs
		wantErr string
	}{
		{
			name: "separate values",
			args: []string{"--username", "alice", "--password", "pw"},
			want: addUserArgs{username: "alice", password: "pw"},
		},
		{
			name: "equals form with email",
			args: []string{"--username=alice", "--password=a=b", "--email=a@example.com"},
			want: addUserArgs{username: "alice", password: "a=b", email: "a@example.com"},
		},
		{name: "missing username", args: []string{"--password", "pw"}, wantErr: "--username is required"},
		{name: "missing password", args: []string{"--username", "alice"}, wantErr: "--password is required"},
		{name: "dangling flag", args: []string{"--username"}, wantErr: "requires a value"},
		{name: "unknown flag", args: []string{"--admin"}, wantErr: "unknown flag"},
		{name: "positional", args: []string{"alice"}, wantErr: "unexpected argument"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseAddUserArgs(tt.args)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHealthURL(t *testing.T) {
	assert.Equal(t, "http://localhost:8080/health", healthURL(":8080"))
	assert.Equal(t, "http://127.0.0.1:9000/health", healthURL("127.0.0.1:9000"))
}

func TestRunInitWith_WritesLoadableConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pantry", "config.yaml")
	dbPath := filepath.Join(dir, "data", "pantry.db")

	// path, addr, base path, db, tailscale, level, format, metrics
	answers := strings.Join([]string{path, ":9090", "/api/", dbPath, "no", "debug", "json", "yes"}, "\n") + "\n"
	var out bytes.Buffer
	require.NoError(t, runInitWith(bufio.NewReader(strings.NewReader(answers)), &out, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Server.HTTPAddr)
	assert.Equal(t, "/api", cfg.Server.BasePath)
	assert.Equal(t, dbPath, cfg.Database.Path)
	assert.GreaterOrEqual(t, len(cfg.Auth.JWTSecret), config.MinJWTSecretLength)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Metrics.Enabled)
	assert.False(t, cfg.Tailscale.Enabled)

	assert.DirExists(t, filepath.Join(dir, "data"))
}

func TestRunInitWith_KeepsExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("original"), 0600))

	answers := path + "\nno\n"
	var out bytes.Buffer
	require.NoError(t, runInitWith(bufio.NewReader(strings.NewReader(answers)), &out, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "original", string(data))
	assert.Contains(t, out.String(), "Aborted.")
}

func TestGenerateSecret(t *testing.T) {
	a, err := generateSecret()
	require.NoError(t, err)
	b, err := generateSecret()
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
	assert.GreaterOrEqual(t, len(a), config.MinJWTSecretLength)
}

func TestColorHandler(t *testing.T) {
	color.NoColor = true

	var buf bytes.Buffer
	logger := slog.New(newColorHandler(&buf, slog.LevelInfo))

	logger.Debug("hidden")
	logger.With("component", "kitchen").WithGroup("req").Info("saved", "id", 7)
	logger.Error("failed", slog.Group("db", slog.String("op", "insert")))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "INF saved component=kitchen req.id=7")
	assert.Contains(t, lines[1], "ERR failed db.op=insert")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, parseLevel("warning"))
	assert.Equal(t, slog.LevelError, parseLevel("error"))
	assert.Equal(t, slog.LevelInfo, parseLevel("bogus"))
}
