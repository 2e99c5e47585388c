package cmd

import (
	"fmt"
	"net/http"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"imoveis-scraper/api"
	"imoveis-scraper/storage"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve stored enrichment results over HTTP",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntVar(&servePort, "port", 0, "listen port (default: SERVER_PORT)")
}

func runServe(cmd *cobra.Command, args []string) error {
	log := zap.L()

	if !cfg.StoreEnabled {
		return eris.New("serve: the results API needs STORE_ENABLED=true and a reachable PostgreSQL")
	}

	store, err := storage.NewPostgresStore(cfg.DSN())
	if err != nil {
		return err
	}
	defer store.Close()

	port := cfg.ServerPort
	if servePort != 0 {
		port = servePort
	}
	addr := fmt.Sprintf(":%d", port)

	server := api.NewServer(store, log)
	log.Info("serve: listening", zap.String("addr", addr))
	return eris.Wrap(http.ListenAndServe(addr, server.Router()), "serve: http server")
}
