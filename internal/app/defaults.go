package app

import (
	"fmt"
	"os"
	"path/filepath"
)

// GetDefaults returns application default paths, checking environment variables first.
// Environment variables:
//   - TUNETIDY_CONFIG_PATH: config file location (default: ~/.config/tunetidy.toml)
//   - TUNETIDY_HOME: base directory for tunetidy data (default: ~/.local/share/tunetidy)
func GetDefaults() (map[string]string, error) {
	configPath, err := getConfigPath()
	if err != nil {
		return nil, err
	}

	baseDir, err := getBaseDir()
	if err != nil {
		return nil, err
	}

	return map[string]string{
		"config_path": configPath,
		"base_dir":    baseDir,
		"log_dir":     filepath.Join(baseDir, "log"),
	}, nil
}

// getConfigPath returns the config file path, checking TUNETIDY_CONFIG_PATH
// first, then falling back to the default ~/.config/tunetidy.toml.
func getConfigPath() (string, error) {
	if path := os.Getenv("TUNETIDY_CONFIG_PATH"); path != "" {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "tunetidy.toml"), nil
}

// getBaseDir returns the base directory for tunetidy data, checking
// TUNETIDY_HOME first, then falling back to the XDG default
// ~/.local/share/tunetidy.
func getBaseDir() (string, error) {
	if path := os.Getenv("TUNETIDY_HOME"); path != "" {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(homeDir, ".local", "share", "tunetidy"), nil
}
