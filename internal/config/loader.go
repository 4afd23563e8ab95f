package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Loader finds and reads the configuration file.
type Loader struct {
	Version      string // Build version; "dev" also looks in the working directory
	OverridePath string // Set at link time to pin a config file
}

// NewLoader creates a new Loader.
func NewLoader(version string, overridePath string) *Loader {
	return &Loader{
		Version:      version,
		OverridePath: overridePath,
	}
}

// Load reads the first existing candidate file, or returns the defaults when
// there is none.
func (l *Loader) Load() (*Config, error) {
	path := l.GetConfigPath()
	if path == "" {
		return New(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	cfg, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// candidates lists the config locations in priority order: the link time
// override, PEAKFINDER_CONFIG, ./.peakfinderrc for dev builds, then the
// user config directory.
func (l *Loader) candidates() []string {
	var paths []string
	if l.OverridePath != "" {
		paths = append(paths, l.OverridePath)
	}
	if p := os.Getenv("PEAKFINDER_CONFIG"); p != "" {
		paths = append(paths, p)
	}
	if l.Version == "dev" {
		if wd, err := os.Getwd(); err == nil {
			paths = append(paths, filepath.Join(wd, ".peakfinderrc"))
		}
	}
	if p := DefaultPath(); p != "" {
		paths = append(paths, p)
	}
	return paths
}

// GetConfigPath returns the first candidate that exists, or "".
func (l *Loader) GetConfigPath() string {
	for _, p := range l.candidates() {
		if st, err := os.Stat(p); err == nil && !st.IsDir() {
			return p
		}
	}
	return ""
}

// DefaultPath is where `peakfinder config -write` stores the configuration.
func DefaultPath() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "peakfinder", "config.rc")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "peakfinder", "config.rc")
}

// Save writes cfg to path, creating parent directories.
func Save(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(cfg.String()), 0o644)
}
