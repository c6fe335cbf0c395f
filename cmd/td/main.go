// Package main provides the td CLI entry point.
package main

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/reagle/thunderdell/internal/config"
)

// Version is set at build time via ldflags
var Version = "dev"

// humanOutput controls whether to use human-readable output
var humanOutput bool

func main() {
	// A .env in the working directory supplies defaults (TD_MAP, TD_ROOT,
	// TD_ADDR); absence is not an error.
	godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "td",
	Short: "Mindmap bibliography manager",
	Long: `td builds bibliographies from Freeplane mindmaps.

Author, title, cite, and annotation styled nodes become bibliographic
entries with generated citation keys. Entries export to BibLaTeX,
CSL YAML/JSON, or Wikipedia citation templates, and can be searched
from the command line or a local query server.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.Version = Version
}

// getLibraryRoot returns the directory to start searching for a library.
// Checks TD_ROOT, then global config library_path, then the working
// directory.
func getLibraryRoot() (string, int) {
	if root := os.Getenv("TD_ROOT"); root != "" {
		return root, 0
	}
	if root := config.GetLibraryPath(); root != "" {
		return root, 0
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", outputError(ExitError, "getting current directory: %v", err)
	}
	return cwd, 0
}

// mustFindLibrary finds and validates the library, exits on error.
// Returns the library root path.
func mustFindLibrary() string {
	start, exitCode := getLibraryRoot()
	if exitCode != 0 {
		os.Exit(exitCode)
	}

	libRoot, err := config.FindLibrary(start)
	if err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}
	return libRoot
}

// resolveMap picks the mindmap to build: an explicit argument wins, then
// TD_MAP, then the library's default_map, then the global default_map.
func resolveMap(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	if m := os.Getenv("TD_MAP"); m != "" {
		return m
	}

	if start, exitCode := getLibraryRoot(); exitCode == 0 {
		if libRoot, err := config.FindLibrary(start); err == nil {
			if cfg, err := config.Load(libRoot); err == nil && cfg.DefaultMap != "" {
				m := config.ExpandPath(cfg.DefaultMap)
				if !filepath.IsAbs(m) {
					m = filepath.Join(libRoot, m)
				}
				return m
			}
		}
	}

	if m := config.GetDefaultMap(); m != "" {
		return m
	}

	exitWithError(ExitConfigError, "no mindmap given and no default_map configured")
	return "" // unreachable
}
