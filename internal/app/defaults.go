package app

import (
	"fmt"
	"os"
	"path/filepath"
)

// GetDefaults returns application default paths, checking environment
// variables first. Environment variables:
//   - PROFILER_SETTINGS_PATH: settings file location (default: ~/.config/profiler/settings.json)
//   - PROFILER_HOME: base directory for profiler data (default: ~/.local/share/profiler)
func GetDefaults() (map[string]string, error) {
	settingsPath, err := getSettingsPath()
	if err != nil {
		return nil, err
	}

	baseDir, err := getBaseDir()
	if err != nil {
		return nil, err
	}

	return map[string]string{
		"settings_path": settingsPath,
		"base_dir":      baseDir,
		"log_dir":       filepath.Join(baseDir, "log"),
	}, nil
}

func getSettingsPath() (string, error) {
	if path := os.Getenv("PROFILER_SETTINGS_PATH"); path != "" {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "profiler", "settings.json"), nil
}

func getBaseDir() (string, error) {
	if path := os.Getenv("PROFILER_HOME"); path != "" {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(homeDir, ".local", "share", "profiler"), nil
}
