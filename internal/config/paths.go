package config

import (
	"os"
	"path/filepath"
)

const (
	// EnvConfigPath names an explicit config file
	EnvConfigPath = "PERISHABLES_CONFIG"
	// ConfigFileName is looked up in the working directory
	ConfigFileName = "perishables.yaml"
	// ConfigDirName is the per-user and system directory name
	ConfigDirName = "perishables"

	userConfigFile  = "config.yaml"
	systemConfigDir = "/etc"
)

// SearchPaths lists the config file candidates in priority order. Entries
// whose environment variable is unset are left out.
func SearchPaths() []string {
	var paths []string
	if p := os.Getenv(EnvConfigPath); p != "" {
		paths = append(paths, p)
	}
	paths = append(paths, ConfigFileName)
	if dir := userConfigDir(); dir != "" {
		paths = append(paths, filepath.Join(dir, ConfigDirName, userConfigFile))
	}
	if xdg, home := os.Getenv("XDG_CONFIG_HOME"), os.Getenv("HOME"); xdg != "" && home != "" {
		// ~/.config is still honoured when XDG_CONFIG_HOME points elsewhere
		fallback := filepath.Join(home, ".config", ConfigDirName, userConfigFile)
		if fallback != paths[len(paths)-1] {
			paths = append(paths, fallback)
		}
	}
	return append(paths, filepath.Join(systemConfigDir, ConfigDirName, userConfigFile))
}

// FindConfigPath returns the first existing candidate from SearchPaths, or
// "" when there is none. A file in the working directory is returned as an
// absolute path so reload watchers keep working after a chdir.
func FindConfigPath() string {
	for _, p := range SearchPaths() {
		if !fileExists(p) {
			continue
		}
		if p == ConfigFileName {
			if abs, err := filepath.Abs(p); err == nil {
				return abs
			}
		}
		return p
	}
	return ""
}

// DefaultConfigPath is where `config init` writes when no path is given:
// the per-user config directory, else the working directory
func DefaultConfigPath() string {
	if dir := userConfigDir(); dir != "" {
		return filepath.Join(dir, ConfigDirName, userConfigFile)
	}
	return ConfigFileName
}

// userConfigDir is $XDG_CONFIG_HOME, else ~/.config, else ""
func userConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return xdg
	}
	if home := os.Getenv("HOME"); home != "" {
		return filepath.Join(home, ".config")
	}
	return ""
}

// EnsureConfigDir creates the directory that will hold configPath
func EnsureConfigDir(configPath string) error {
	return os.MkdirAll(filepath.Dir(configPath), 0o755)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
