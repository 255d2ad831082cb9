// Package cmd wires the rentora command line: the HTTP server and its maintenance commands
package cmd

import (
	"io"

	"github.com/amirphl/Rentora/config"
	"github.com/amirphl/Rentora/logger"
	"github.com/amirphl/Rentora/utils"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "rentora",
	Short:         utils.AppName,
	Long:          "Admin backend for the Rentora car-rental marketplace: companies, bidding configuration, rate cards, bookings and commission statements.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newMigrateCmd())
	rootCmd.AddCommand(newCreateAdminCmd())
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal().Err(err).Msg("rentora failed")
	}
}

// bootstrap loads configuration and initializes the global logger. The returned writer is the
// log sink, shared with the HTTP access log.
func bootstrap() (*config.Config, io.Writer, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, err
	}
	w := logger.Init(cfg.Logging, cfg.Deployment.IsDevelopment())
	return cfg, w, nil
}
