package cli

import (
	"listo/internal/view"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoadConfig(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    Config
		wantErr bool
	}{
		{
			name: "overrides defaults",
			content: `
server = "http://todo.lan:9000"
show_completed = true
order = "newest"
log_file = "/tmp/listo.log"
`,
			want: Config{
				Server:        "http://todo.lan:9000",
				ShowCompleted: true,
				Order:         "newest",
				LogFile:       "/tmp/listo.log",
				LogLevel:      DefaultLogLevel,
			},
		},
		{
			name:    "partial file keeps defaults",
			content: `show_completed = true`,
			want: Config{
				Server:        DefaultServer,
				ShowCompleted: true,
				Order:         "oldest",
				LogLevel:      DefaultLogLevel,
			},
		},
		{
			name:    "bad order",
			content: `order = "random"`,
			wantErr: true,
		},
		{
			name:    "not toml",
			content: `server = `,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadConfig(writeConfig(t, tt.content))

			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg)
		})
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))

	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestViewOrder(t *testing.T) {
	assert.Equal(t, view.NewestFirst, Config{Order: "newest"}.ViewOrder())
	assert.Equal(t, view.OldestFirst, DefaultConfig().ViewOrder())
}
