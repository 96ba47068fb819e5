package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"notepad/internal/config"
)

const (
	configFormatJSON = "json"
	configFormatTOML = "toml"
)

type ConfigCommand struct {
	stdout     io.Writer
	stderr     io.Writer
	loadConfig configLoader
}

type configOutput struct {
	ConfigPath string                 `json:"config_path" toml:"config_path"`
	Service    effectiveServiceConfig `json:"service" toml:"service"`
	Server     effectiveServerConfig  `json:"server" toml:"server"`
	Logging    effectiveLoggingConfig `json:"logging" toml:"logging"`
	UI         effectiveUIConfig      `json:"ui" toml:"ui"`
}

type effectiveServiceConfig struct {
	Origin       string `json:"origin" toml:"origin"`
	RemoteDomain string `json:"remote_domain,omitempty" toml:"remote_domain,omitempty"`
	RemoteURL    string `json:"remote_url,omitempty" toml:"remote_url,omitempty"`
	Timeout      string `json:"timeout" toml:"timeout"`
	APIBase      string `json:"api_base" toml:"api_base"`
}

type effectiveServerConfig struct {
	Address string `json:"address" toml:"address"`
	Storage string `json:"storage" toml:"storage"`
	DBPath  string `json:"db_path" toml:"db_path"`
}

type effectiveLoggingConfig struct {
	Level     string `json:"level" toml:"level"`
	UILogPath string `json:"ui_log_path" toml:"ui_log_path"`
}

type effectiveUIConfig struct {
	ToastDuration string `json:"toast_duration" toml:"toast_duration"`
}

func NewConfigCommand(stdout, stderr io.Writer, loadConfig configLoader) *ConfigCommand {
	return &ConfigCommand{
		stdout:     stdout,
		stderr:     stderr,
		loadConfig: loadConfig,
	}
}

func (c *ConfigCommand) Run(args []string) error {
	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	defaults := fs.Bool("default", false, "print default config values")
	format := fs.String("format", configFormatTOML, "output format: toml|json")
	initFile := fs.Bool("init", false, "write a default config.toml if none exists")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *initFile {
		return c.writeDefaultConfig()
	}

	resolvedFormat, err := resolveConfigFormat(*format)
	if err != nil {
		return err
	}
	cfg := config.DefaultConfig()
	if !*defaults {
		cfg, err = c.loadConfig()
		if err != nil {
			return err
		}
	}
	payload, err := buildConfigOutput(cfg)
	if err != nil {
		return err
	}
	return writeConfigOutput(c.stdout, resolvedFormat, payload)
}

func (c *ConfigCommand) writeDefaultConfig() error {
	path, err := config.ConfigPath()
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config already exists: %s", path)
	}
	data, err := config.DefaultConfig().Encode()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return err
	}
	fmt.Fprintln(c.stdout, path)
	return nil
}

func buildConfigOutput(cfg config.Config) (configOutput, error) {
	configPath, err := config.ConfigPath()
	if err != nil {
		return configOutput{}, err
	}
	dbPath, err := cfg.ResolveDBPath()
	if err != nil {
		return configOutput{}, err
	}
	uiLogPath, err := config.UILogPath()
	if err != nil {
		return configOutput{}, err
	}
	return configOutput{
		ConfigPath: configPath,
		Service: effectiveServiceConfig{
			Origin:       cfg.Origin(),
			RemoteDomain: strings.TrimSpace(cfg.Service.RemoteDomain),
			RemoteURL:    strings.TrimSpace(cfg.Service.RemoteURL),
			Timeout:      cfg.RequestTimeout().String(),
			APIBase:      cfg.APIBaseURL(),
		},
		Server: effectiveServerConfig{
			Address: cfg.ServerAddress(),
			Storage: cfg.StorageBackend(),
			DBPath:  dbPath,
		},
		Logging: effectiveLoggingConfig{
			Level:     cfg.LogLevel(),
			UILogPath: uiLogPath,
		},
		UI: effectiveUIConfig{
			ToastDuration: cfg.ToastDuration().String(),
		},
	}, nil
}

func resolveConfigFormat(raw string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", configFormatTOML:
		return configFormatTOML, nil
	case configFormatJSON:
		return configFormatJSON, nil
	default:
		return "", fmt.Errorf("unsupported format %q (expected toml or json)", raw)
	}
}

func writeConfigOutput(out io.Writer, format string, payload configOutput) error {
	switch format {
	case configFormatJSON:
		data, err := json.MarshalIndent(payload, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, string(data))
		return err
	default:
		data, err := toml.Marshal(payload)
		if err != nil {
			return err
		}
		_, err = out.Write(data)
		return err
	}
}
