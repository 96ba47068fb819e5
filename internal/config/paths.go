package config

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	appDirName = ".notepad"
	homeEnvVar = "NOTEPAD_HOME"
)

// DataDir returns the base data directory for notepad.
func DataDir() (string, error) {
	if dir := strings.TrimSpace(os.Getenv(homeEnvVar)); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, appDirName), nil
}

// ConfigPath returns the path to the TOML settings file.
func ConfigPath() (string, error) {
	return dataFile("config.toml")
}

// UILogPath returns the file the terminal UI logs to.
func UILogPath() (string, error) {
	return dataFile("ui.log")
}

// NotesDBPath returns the default bbolt file of the reference service.
func NotesDBPath() (string, error) {
	return dataFile("notes.db")
}

func NotesJSONPath() (string, error) {
	return dataFile("notes.json")
}

func dataFile(name string) (string, error) {
	dataDir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dataDir, name), nil
}
