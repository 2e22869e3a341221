package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"bookstore-ranking/internal/config"
	"bookstore-ranking/pkg/logger"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "bookrank",
		Short:         "Book sales ranking service",
		SilenceUsage:  true,
		SilenceErrors: true,
		// Running the binary without a subcommand starts the HTTP server.
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context())
		},
	}

	root.AddCommand(newServeCmd(), newIngestCmd())
	return root
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context())
		},
	}
}

// loadConfig reads .env (development only, optional), the environment, and
// sets up logging and gin mode accordingly.
func loadConfig() (*config.Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Error().Err(err).Msg("Invalid configuration")
		return nil, err
	}

	logger.Init(cfg.App.Environment, cfg.Log.Level)
	if cfg.App.Environment != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	return cfg, nil
}
