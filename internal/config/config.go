// Package config handles library configuration.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Config represents library configuration stored in .thunderdell/config.json.
type Config struct {
	DefaultMap  string `json:"default_map"`           // Map built when no file argument is given
	TmpMap      string `json:"tmp_map,omitempty"`     // Map that scraped entries are appended to
	EmitFormat  string `json:"emit_format,omitempty"` // Default export format: biblatex, yaml, json, wikipedia
	LongURLs    bool   `json:"long_urls,omitempty"`   // Keep full URLs when pulling citations
	ListenAddr  string `json:"listen_addr,omitempty"` // Address for the query server
}

const (
	ThunderdellDir = ".thunderdell"
	ConfigFile     = "config.json"
	CacheDir       = "cache"
	DBFile         = "entries.db"
)

// ValidFormats lists the supported emit_format values.
var ValidFormats = []string{"biblatex", "yaml", "json", "wikipedia", "console"}

// ThunderdellPath returns the path to the .thunderdell directory from a root path.
func ThunderdellPath(root string) string {
	return filepath.Join(root, ThunderdellDir)
}

// ConfigPath returns the path to config.json from a root path.
func ConfigPath(root string) string {
	return filepath.Join(root, ThunderdellDir, ConfigFile)
}

// CachePath returns the path to the cache directory from a root path.
func CachePath(root string) string {
	return filepath.Join(root, ThunderdellDir, CacheDir)
}

// DBPath returns the path to entries.db from a root path.
func DBPath(root string) string {
	return filepath.Join(root, ThunderdellDir, CacheDir, DBFile)
}

// IsLibrary checks if the given path contains a thunderdell library.
func IsLibrary(root string) bool {
	info, err := os.Stat(ThunderdellPath(root))
	return err == nil && info.IsDir()
}

// FindLibrary walks up from the given path to find a thunderdell library.
// Returns the library root path or an error if not found.
func FindLibrary(start string) (string, error) {
	abs, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	for {
		if IsLibrary(abs) {
			return abs, nil
		}

		parent := filepath.Dir(abs)
		if parent == abs {
			return "", fmt.Errorf("not in a thunderdell library (no .thunderdell directory found)")
		}
		abs = parent
	}
}

// Load reads configuration from the library at the given root.
func Load(root string) (*Config, error) {
	data, err := os.ReadFile(ConfigPath(root))
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return &cfg, nil
}

// Save writes configuration to the library at the given root.
func (c *Config) Save(root string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(ConfigPath(root), data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// ValidateMap checks that a configured mindmap path exists and names a
// Freeplane file.
func ValidateMap(path string) error {
	if path == "" {
		return nil // Empty is allowed (not yet configured)
	}

	expandedPath := ExpandPath(path)

	if !strings.HasSuffix(expandedPath, ".mm") {
		return fmt.Errorf("not a mindmap file: %s", expandedPath)
	}
	info, err := os.Stat(expandedPath)
	if err != nil {
		return fmt.Errorf("path does not exist: %s", expandedPath)
	}
	if info.IsDir() {
		return fmt.Errorf("path is a directory: %s", expandedPath)
	}

	return nil
}

// ValidateFormat checks that the emit format value is valid.
func ValidateFormat(format string) error {
	if format == "" {
		return nil // Empty defaults to "biblatex"
	}

	for _, valid := range ValidFormats {
		if format == valid {
			return nil
		}
	}

	return fmt.Errorf("invalid emit_format: %s (valid: %v)", format, ValidFormats)
}

// ExpandPath expands ~ to the user's home directory.
// Returns the original path unchanged if it doesn't start with ~.
func ExpandPath(path string) string {
	if len(path) == 0 || path[0] != '~' {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path // Return original if we can't get home directory
	}

	return filepath.Join(home, path[1:])
}
