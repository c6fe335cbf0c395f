package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/reagle/thunderdell/internal/config"
)

func init() {
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config [key] [value]",
	Short: "Get or set library configuration values",
	Long: `Get or set library configuration values.

Usage:
  td config                            # Show all config
  td config default-map                # Get specific value
  td config default-map readings.mm    # Set value
  td config emit-format yaml           # Set export format

Keys:
  default-map  Mindmap built when no file argument is given
  tmp-map      Mindmap that scraped entries are appended to
  emit-format  Export format (biblatex, yaml, json, wikipedia, console)
  long-urls    Keep full URLs when pulling citations (true/false)
  listen-addr  Address for the query server`,
	Args: cobra.MaximumNArgs(2),
	RunE: runConfig,
}

// ConfigResponse is the response for config get commands.
type ConfigResponse struct {
	DefaultMap string `json:"default_map,omitempty"`
	TmpMap     string `json:"tmp_map,omitempty"`
	EmitFormat string `json:"emit_format,omitempty"`
	LongURLs   bool   `json:"long_urls,omitempty"`
	ListenAddr string `json:"listen_addr,omitempty"`
}

// UpdateResponse is the response for config set commands.
type UpdateResponse struct {
	Status string `json:"status"`
	Key    string `json:"key"`
	Value  string `json:"value"`
}

func runConfig(cmd *cobra.Command, args []string) error {
	libRoot := mustFindLibrary()

	cfg, err := config.Load(libRoot)
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}

	// No args: show all config
	if len(args) == 0 {
		if humanOutput {
			fmt.Printf("default-map: %s\n", cfg.DefaultMap)
			fmt.Printf("tmp-map:     %s\n", cfg.TmpMap)
			fmt.Printf("emit-format: %s\n", cfg.EmitFormat)
			fmt.Printf("long-urls:   %v\n", cfg.LongURLs)
			fmt.Printf("listen-addr: %s\n", cfg.ListenAddr)
		} else {
			outputJSON(ConfigResponse{
				DefaultMap: cfg.DefaultMap,
				TmpMap:     cfg.TmpMap,
				EmitFormat: cfg.EmitFormat,
				LongURLs:   cfg.LongURLs,
				ListenAddr: cfg.ListenAddr,
			})
		}
		return nil
	}

	key := normalizeKey(args[0])

	// One arg: get specific value
	if len(args) == 1 {
		value, ok := getConfigValue(cfg, key)
		if !ok {
			exitWithError(ExitError, "unknown configuration key: %s", args[0])
		}
		if humanOutput {
			fmt.Println(value)
		} else {
			outputJSON(map[string]string{strings.ReplaceAll(key, "-", "_"): value})
		}
		return nil
	}

	// Two args: set value
	value := args[1]
	if err := setConfigValue(cfg, key, value); err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}

	if err := cfg.Save(libRoot); err != nil {
		exitWithError(ExitError, "saving config: %v", err)
	}

	if humanOutput {
		fmt.Printf("Updated %s to %s\n", key, value)
	} else {
		outputJSON(UpdateResponse{
			Status: "updated",
			Key:    key,
			Value:  value,
		})
	}

	return nil
}

func getConfigValue(cfg *config.Config, key string) (string, bool) {
	switch key {
	case "default-map":
		return cfg.DefaultMap, true
	case "tmp-map":
		return cfg.TmpMap, true
	case "emit-format":
		return cfg.EmitFormat, true
	case "long-urls":
		return fmt.Sprintf("%v", cfg.LongURLs), true
	case "listen-addr":
		return cfg.ListenAddr, true
	default:
		return "", false
	}
}

func setConfigValue(cfg *config.Config, key, value string) error {
	switch key {
	case "default-map":
		if err := config.ValidateMap(value); err != nil {
			return err
		}
		cfg.DefaultMap = value
	case "tmp-map":
		if err := config.ValidateMap(value); err != nil {
			return err
		}
		cfg.TmpMap = value
	case "emit-format":
		if err := config.ValidateFormat(value); err != nil {
			return err
		}
		cfg.EmitFormat = value
	case "long-urls":
		switch value {
		case "true":
			cfg.LongURLs = true
		case "false":
			cfg.LongURLs = false
		default:
			return fmt.Errorf("long-urls must be true or false, got %q", value)
		}
	case "listen-addr":
		cfg.ListenAddr = value
	default:
		return fmt.Errorf("unknown configuration key: %s", key)
	}
	return nil
}

// normalizeKey converts key formats (default-map, default_map) to a
// consistent format.
func normalizeKey(key string) string {
	key = strings.ToLower(key)
	key = strings.ReplaceAll(key, "_", "-")
	return key
}
