package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"
	"typeracer/internal/config"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load(writeConfig(t, "environment: test\n"))
	require.NoError(t, err)

	require.Equal(t, "test", cfg.Environment)
	require.Equal(t, ":4000", cfg.Server.Addr)
	require.Equal(t, 200*time.Millisecond, cfg.Game.StateInterval)
	require.Equal(t, "corpus", cfg.Game.TextMode)
	require.Equal(t, 5, cfg.Session.MaxPlayers)
	require.False(t, cfg.Database.Enabled)
	require.Equal(t, 5*time.Minute, cfg.Game.RaceTimeout)
	require.Equal(t, "typeracer", cfg.Database.DatabaseName)
}

func TestLoad_Overrides(t *testing.T) {
	cfg, err := config.Load(writeConfig(t, `
environment: production
server:
  addr: ":5000"
  bannedNames: [root, admin]
game:
  textMode: file
  textFile: /tmp/race.txt
  raceTimeout: -1s
database:
  enabled: true
`))
	require.NoError(t, err)

	require.Equal(t, ":5000", cfg.Server.Addr)
	require.Equal(t, []string{"root", "admin"}, cfg.Server.BannedNames)
	require.Equal(t, "/tmp/race.txt", cfg.Game.TextFile)
	require.Negative(t, cfg.Game.RaceTimeout)
	require.True(t, cfg.Database.Enabled)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "unknown text mode",
			content: "game:\n  textMode: dictation\n",
			wantErr: "Game.TextMode",
		},
		{
			name:    "file mode without file",
			content: "game:\n  textMode: file\n",
			wantErr: "Game.TextFile",
		},
		{
			name:    "too many players",
			content: "session:\n  maxPlayers: 500\n",
			wantErr: "Session.MaxPlayers",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.Load(writeConfig(t, tt.content))
			require.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yml"))
	require.Error(t, err)
}
