package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/folio/portfolio/cmd/api/commands"
)

// @title Portfolio API
// @version 1.0
// @description Content API for the portfolio site: blogs, LinkedIn posts, skills, certifications,
// @description education, selected GitHub projects and contact details.

// @host localhost:5000
// @BasePath /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the admin token.

func main() {
	var configFile string

	rootCmd := &cobra.Command{
		Use:           "portfolio",
		Short:         "Portfolio API server",
		Long:          `Portfolio serves the content of a personal portfolio site and the admin API that manages it.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (yaml, toml or json)")

	rootCmd.AddCommand(commands.NewServeCommand(&configFile))
	rootCmd.AddCommand(commands.NewMigrateCommand(&configFile))
	rootCmd.AddCommand(commands.NewSeedCommand(&configFile))
	rootCmd.AddCommand(commands.NewHashPasswordCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	if err := rootCmd.Execute(); err != nil {
		log.Printf("Command execution failed: %v", err)
		os.Exit(1)
	}
}
