package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestPathFunctions(t *testing.T) {
	root := "/test/library"

	tests := []struct {
		name string
		fn   func(string) string
		want string
	}{
		{"ThunderdellPath", ThunderdellPath, "/test/library/.thunderdell"},
		{"ConfigPath", ConfigPath, "/test/library/.thunderdell/config.json"},
		{"CachePath", CachePath, "/test/library/.thunderdell/cache"},
		{"DBPath", DBPath, "/test/library/.thunderdell/cache/entries.db"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.fn(root)
			if got != tt.want {
				t.Errorf("%s(%q) = %q, want %q", tt.name, root, got, tt.want)
			}
		})
	}
}

func TestIsLibrary(t *testing.T) {
	tmpDir := t.TempDir()

	// Not a library initially
	if IsLibrary(tmpDir) {
		t.Error("IsLibrary() = true for non-library directory")
	}

	// Create .thunderdell directory
	tdDir := filepath.Join(tmpDir, ThunderdellDir)
	if err := os.Mkdir(tdDir, 0755); err != nil {
		t.Fatalf("Failed to create .thunderdell: %v", err)
	}

	// Now it should be a library
	if !IsLibrary(tmpDir) {
		t.Error("IsLibrary() = false for library directory")
	}
}

func TestIsLibrary_FileNotDir(t *testing.T) {
	tmpDir := t.TempDir()

	// Create .thunderdell as a file, not directory
	tdPath := filepath.Join(tmpDir, ThunderdellDir)
	if err := os.WriteFile(tdPath, []byte("not a dir"), 0644); err != nil {
		t.Fatalf("Failed to create .thunderdell file: %v", err)
	}

	// Should not be considered a library
	if IsLibrary(tmpDir) {
		t.Error("IsLibrary() = true when .thunderdell is a file")
	}
}

func TestFindLibrary(t *testing.T) {
	// Create nested structure: /tmp/xxx/library/.thunderdell
	tmpDir := t.TempDir()
	libDir := filepath.Join(tmpDir, "library")
	nestedDir := filepath.Join(libDir, "maps", "cs")

	if err := os.MkdirAll(nestedDir, 0755); err != nil {
		t.Fatalf("Failed to create nested dirs: %v", err)
	}
	if err := os.Mkdir(filepath.Join(libDir, ThunderdellDir), 0755); err != nil {
		t.Fatalf("Failed to create .thunderdell: %v", err)
	}

	// Find from nested dir should return library root
	found, err := FindLibrary(nestedDir)
	if err != nil {
		t.Fatalf("FindLibrary() error = %v", err)
	}
	if found != libDir {
		t.Errorf("FindLibrary() = %q, want %q", found, libDir)
	}

	// Find from library root
	found, err = FindLibrary(libDir)
	if err != nil {
		t.Fatalf("FindLibrary() error = %v", err)
	}
	if found != libDir {
		t.Errorf("FindLibrary() = %q, want %q", found, libDir)
	}
}

func TestFindLibrary_NotFound(t *testing.T) {
	tmpDir := t.TempDir()

	_, err := FindLibrary(tmpDir)
	if err == nil {
		t.Error("FindLibrary() should return error when no library found")
	}
}

func TestConfig_SaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()

	// Create .thunderdell directory
	tdDir := filepath.Join(tmpDir, ThunderdellDir)
	if err := os.Mkdir(tdDir, 0755); err != nil {
		t.Fatalf("Failed to create .thunderdell: %v", err)
	}

	// Save config
	cfg := &Config{
		DefaultMap: "readings.mm",
		EmitFormat: "yaml",
		LongURLs:   true,
	}
	if err := cfg.Save(tmpDir); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	// Load config
	loaded, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if loaded.DefaultMap != cfg.DefaultMap {
		t.Errorf("DefaultMap = %q, want %q", loaded.DefaultMap, cfg.DefaultMap)
	}
	if loaded.EmitFormat != cfg.EmitFormat {
		t.Errorf("EmitFormat = %q, want %q", loaded.EmitFormat, cfg.EmitFormat)
	}
	if !loaded.LongURLs {
		t.Error("LongURLs = false, want true")
	}
}

func TestLoad_NotFound(t *testing.T) {
	tmpDir := t.TempDir()

	// Create .thunderdell directory but no config
	tdDir := filepath.Join(tmpDir, ThunderdellDir)
	if err := os.Mkdir(tdDir, 0755); err != nil {
		t.Fatalf("Failed to create .thunderdell: %v", err)
	}

	_, err := Load(tmpDir)
	if err == nil {
		t.Error("Load() should return error when config not found")
	}
}

func TestLoad_InvalidJSON(t *testing.T) {
	tmpDir := t.TempDir()

	// Create .thunderdell directory
	tdDir := filepath.Join(tmpDir, ThunderdellDir)
	if err := os.Mkdir(tdDir, 0755); err != nil {
		t.Fatalf("Failed to create .thunderdell: %v", err)
	}

	// Write invalid JSON
	if err := os.WriteFile(ConfigPath(tmpDir), []byte("not json"), 0644); err != nil {
		t.Fatalf("Failed to write invalid config: %v", err)
	}

	_, err := Load(tmpDir)
	if err == nil {
		t.Error("Load() should return error for invalid JSON")
	}
}

func TestValidateMap(t *testing.T) {
	tmpDir := t.TempDir()
	mapFile := filepath.Join(tmpDir, "readings.mm")
	if err := os.WriteFile(mapFile, []byte("<map/>"), 0644); err != nil {
		t.Fatalf("Failed to create map file: %v", err)
	}
	textFile := filepath.Join(tmpDir, "notes.txt")
	if err := os.WriteFile(textFile, []byte("notes"), 0644); err != nil {
		t.Fatalf("Failed to create text file: %v", err)
	}

	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"empty path", "", false}, // Empty is allowed
		{"valid map", mapFile, false},
		{"non-existent map", filepath.Join(tmpDir, "missing.mm"), true},
		{"not a mindmap", textFile, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateMap(tt.path)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateMap(%q) error = %v, wantErr = %v", tt.path, err, tt.wantErr)
			}
		})
	}
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"", false}, // Empty defaults to biblatex
		{"biblatex", false},
		{"yaml", false},
		{"json", false},
		{"wikipedia", false},
		{"console", false},
		{"bibtex", true},
		{"xml", true},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			err := ValidateFormat(tt.format)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFormat(%q) error = %v, wantErr = %v", tt.format, err, tt.wantErr)
			}
		})
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("Cannot get home directory")
	}

	if got := ExpandPath("~/maps"); got != filepath.Join(home, "maps") {
		t.Errorf("ExpandPath(~/maps) = %q", got)
	}
	if got := ExpandPath("/abs/path"); got != "/abs/path" {
		t.Errorf("ExpandPath(/abs/path) = %q", got)
	}
	if got := ExpandPath(""); got != "" {
		t.Errorf("ExpandPath(\"\") = %q", got)
	}
}

func TestConstants(t *testing.T) {
	// Verify constants have expected values
	if ThunderdellDir != ".thunderdell" {
		t.Errorf("ThunderdellDir = %q, want .thunderdell", ThunderdellDir)
	}
	if ConfigFile != "config.json" {
		t.Errorf("ConfigFile = %q, want config.json", ConfigFile)
	}
	if CacheDir != "cache" {
		t.Errorf("CacheDir = %q, want cache", CacheDir)
	}
	if DBFile != "entries.db" {
		t.Errorf("DBFile = %q, want entries.db", DBFile)
	}
}
