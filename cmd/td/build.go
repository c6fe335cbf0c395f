package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/reagle/thunderdell/internal/biblio"
	"github.com/reagle/thunderdell/internal/config"
	"github.com/reagle/thunderdell/internal/emit"
	"github.com/reagle/thunderdell/internal/mindmap"
)

var (
	buildFormat   string
	buildOutput   string
	buildChase    bool
	buildLongURLs bool
)

func init() {
	buildCmd.Flags().StringVar(&buildFormat, "format", "", "Output format: biblatex, yaml, json, wikipedia, console")
	buildCmd.Flags().StringVarP(&buildOutput, "output", "o", "", "Write to file instead of stdout")
	buildCmd.Flags().BoolVar(&buildChase, "chase", false, "Follow links to other mindmap files")
	buildCmd.Flags().BoolVar(&buildLongURLs, "long-urls", false, "Keep full URLs in pulled citations")
	rootCmd.AddCommand(buildCmd)
}

var buildCmd = &cobra.Command{
	Use:   "build [map.mm]",
	Short: "Build a bibliography from a mindmap",
	Long: `Build a bibliography from a Freeplane mindmap.

Without an argument the default map is used (TD_MAP, then the library's
default_map). With --chase, relative links to other .mm files are
followed, each file visited once.

Examples:
  td build readings.mm
  td build --chase --format biblatex -o readings.bib
  td build --format yaml readings.mm`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBuild,
}

func runBuild(cmd *cobra.Command, args []string) error {
	mapPath := resolveMap(args)
	opts := biblio.CiteOptions{LongURL: buildLongURLs}

	entries, err := walkAll(mapPath, buildChase, opts)
	if err != nil {
		exitWithError(ExitDataError, "%v", err)
	}

	format := buildFormat
	if format == "" {
		format = configuredFormat()
	}

	out, err := renderEntries(entries, format)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}

	if buildOutput != "" {
		if err := os.WriteFile(buildOutput, out, 0644); err != nil {
			exitWithError(ExitError, "writing %s: %v", buildOutput, err)
		}
		if humanOutput {
			fmt.Printf("Wrote %d entries to %s\n", entries.Len(), buildOutput)
		} else {
			outputJSON(StatusResponse{Status: "written", Path: buildOutput, Count: entries.Len()})
		}
		return nil
	}

	os.Stdout.Write(out)
	return nil
}

// walkAll builds one collection from a mindmap, optionally chasing links
// to other maps. Each file is visited once; cycles are harmless.
func walkAll(mapPath string, chase bool, opts biblio.CiteOptions) (*biblio.Entries, error) {
	v := biblio.Default()
	entries := biblio.NewEntries()

	visited := map[string]bool{}
	queue := []string{mapPath}
	for len(queue) > 0 {
		path := queue[0]
		queue = queue[1:]

		abs, err := filepath.Abs(path)
		if err != nil {
			return nil, fmt.Errorf("resolving %s: %w", path, err)
		}
		if visited[abs] {
			continue
		}
		visited[abs] = true

		links, err := mindmap.Walk(abs, entries, v, opts)
		if err != nil {
			return nil, err
		}
		if chase {
			queue = append(queue, links...)
		}
	}
	return entries, nil
}

// configuredFormat returns the library or global emit format, defaulting
// to biblatex.
func configuredFormat() string {
	if start, exitCode := getLibraryRoot(); exitCode == 0 {
		if libRoot, err := config.FindLibrary(start); err == nil {
			if cfg, err := config.Load(libRoot); err == nil && cfg.EmitFormat != "" {
				return cfg.EmitFormat
			}
		}
	}
	if cfg, err := config.LoadGlobalConfig(); err == nil && cfg.EmitFormat != "" {
		return cfg.EmitFormat
	}
	return "biblatex"
}

// renderEntries emits a collection in the named format.
func renderEntries(entries *biblio.Entries, format string) ([]byte, error) {
	v := biblio.Default()

	switch format {
	case "biblatex":
		s, err := emit.ToBibLaTeXList(entries, v)
		if err != nil {
			return nil, err
		}
		return []byte(s), nil
	case "yaml":
		return emit.ToCSLYAML(entries, v)
	case "json":
		return emit.ToCSLJSON(entries, v)
	case "wikipedia":
		s, err := emit.ToWikipediaList(entries, v)
		if err != nil {
			return nil, err
		}
		return []byte(s), nil
	case "console":
		return []byte(emit.ToConsole(entries)), nil
	default:
		return nil, fmt.Errorf("unknown format: %s (valid: %v)", format, config.ValidFormats)
	}
}
