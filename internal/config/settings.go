package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	StorageBbolt = "bbolt"
	StorageFile  = "file"
)

const (
	defaultOrigin        = "http://localhost:5000"
	defaultServerAddress = "127.0.0.1:5000"
	defaultTimeout       = 10 * time.Second
	defaultToastDuration = 3 * time.Second
)

type Config struct {
	Service ServiceConfig `toml:"service"`
	Server  ServerConfig  `toml:"server"`
	Logging LoggingConfig `toml:"logging"`
	UI      UIConfig      `toml:"ui"`
}

type ServiceConfig struct {
	Origin       string `toml:"origin"`
	RemoteDomain string `toml:"remote_domain"`
	RemoteURL    string `toml:"remote_url"`
	Timeout      string `toml:"timeout"`
}

type ServerConfig struct {
	Address string `toml:"address"`
	// Storage selects the note store: "bbolt" or "file" (a JSON array).
	Storage string `toml:"storage"`
	DBPath  string `toml:"db_path"`
}

type LoggingConfig struct {
	Level string `toml:"level"`
}

type UIConfig struct {
	ToastDuration string `toml:"toast_duration"`
}

func DefaultConfig() Config {
	return Config{
		Service: ServiceConfig{
			Origin:  defaultOrigin,
			Timeout: defaultTimeout.String(),
		},
		Server: ServerConfig{
			Address: defaultServerAddress,
			Storage: StorageBbolt,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		UI: UIConfig{
			ToastDuration: defaultToastDuration.String(),
		},
	}
}

func Load() (Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return Config{}, err
	}
	return loadFromPath(path)
}

func (c Config) APIBaseURL() string {
	return ResolveAPIBase(c.Origin(), c.Service)
}

func (c Config) Origin() string {
	origin := strings.TrimRight(strings.TrimSpace(c.Service.Origin), "/")
	if origin == "" {
		return defaultOrigin
	}
	return origin
}

func (c Config) RequestTimeout() time.Duration {
	return parseDuration(c.Service.Timeout, defaultTimeout)
}

func (c Config) ServerAddress() string {
	addr := strings.TrimSpace(c.Server.Address)
	addr = strings.TrimPrefix(addr, "http://")
	addr = strings.TrimRight(addr, "/")
	if addr == "" {
		return defaultServerAddress
	}
	return addr
}

func (c Config) StorageBackend() string {
	switch strings.ToLower(strings.TrimSpace(c.Server.Storage)) {
	case StorageFile, "json":
		return StorageFile
	default:
		return StorageBbolt
	}
}

func (c Config) ResolveDBPath() (string, error) {
	path := strings.TrimSpace(c.Server.DBPath)
	if path != "" {
		return resolveConfigPath(path)
	}
	if c.StorageBackend() == StorageFile {
		return NotesJSONPath()
	}
	return NotesDBPath()
}

func (c Config) LogLevel() string {
	level := strings.TrimSpace(c.Logging.Level)
	if level == "" {
		return "info"
	}
	return level
}

func (c Config) ToastDuration() time.Duration {
	return parseDuration(c.UI.ToastDuration, defaultToastDuration)
}

func (c Config) Encode() ([]byte, error) {
	return toml.Marshal(c)
}

func loadFromPath(path string) (Config, error) {
	cfg := DefaultConfig()
	if err := readTOML(path, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func readTOML(path string, out any) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return errors.New("path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil
	}
	return toml.Unmarshal(data, out)
}

func resolveConfigPath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", errors.New("path is required")
	}
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, path[2:]), nil
	}
	if filepath.IsAbs(path) {
		return path, nil
	}
	dataDir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dataDir, path), nil
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
