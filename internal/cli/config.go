package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"listo/internal/view"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	DefaultServer   = "http://localhost:8080"
	DefaultLogLevel = "info"

	orderOldest = "oldest"
	orderNewest = "newest"
)

// Config is the client configuration file, by default ~/.config/listo/config.toml.
type Config struct {
	Server        string `toml:"server"`
	ShowCompleted bool   `toml:"show_completed"`
	Order         string `toml:"order"`
	LogFile       string `toml:"log_file"`
	LogLevel      string `toml:"log_level"`
}

func DefaultConfig() Config {
	return Config{
		Server:   DefaultServer,
		Order:    orderOldest,
		LogLevel: DefaultLogLevel,
	}
}

// DefaultConfigPath returns the config file under the user config directory.
func DefaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}

	return filepath.Join(dir, "listo", "config.toml")
}

// LoadConfig reads path on top of the defaults. A missing file is not an error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}

		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

func (c Config) validate() error {
	if strings.TrimSpace(c.Server) == "" {
		return errors.New("server must not be empty")
	}

	switch c.Order {
	case orderOldest, orderNewest:
		return nil
	default:
		return fmt.Errorf("order must be %q or %q, got %q", orderOldest, orderNewest, c.Order)
	}
}

func (c Config) ViewOrder() view.Order {
	if c.Order == orderNewest {
		return view.NewestFirst
	}

	return view.OldestFirst
}
