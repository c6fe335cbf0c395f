package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/reagle/thunderdell/internal/biblio"
	"github.com/reagle/thunderdell/internal/config"
	"github.com/reagle/thunderdell/internal/server"
)

var (
	serveAddr  string
	serveChase bool
)

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default localhost:8530)")
	serveCmd.Flags().BoolVar(&serveChase, "chase", false, "Follow links to other mindmap files")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve [map.mm]",
	Short: "Serve the bibliography over local HTTP",
	Long: `Serve the built bibliography over local HTTP.

Endpoints:
  /query?q=<regexp>   highlighted search results as JSON
  /entries            the whole collection as CSL JSON
  /entry/<identifier> one entry as CSL JSON

Examples:
  td serve readings.mm
  td serve --chase --addr localhost:9000`,
	Args: cobra.MaximumNArgs(1),
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	mapPath := resolveMap(args)

	entries, err := walkAll(mapPath, serveChase, biblio.CiteOptions{})
	if err != nil {
		exitWithError(ExitDataError, "%v", err)
	}

	addr := serveAddr
	if addr == "" {
		addr = os.Getenv("TD_ADDR")
	}
	if addr == "" {
		addr = config.GetListenAddr()
	}
	if addr == "" {
		addr = "localhost:8530"
	}

	srv := server.New(entries, biblio.Default())
	fmt.Fprintf(os.Stderr, "Serving %d entries on http://%s\n", entries.Len(), addr)
	if err := http.ListenAndServe(addr, srv.Handler()); err != nil {
		exitWithError(ExitError, "serving: %v", err)
	}
	return nil
}
