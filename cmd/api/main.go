package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/tasksystem/core/cmd/api/commands"
)

// @title TaskSystem API
// @version 1.0
// @description Multi-project task management system with labels, comments, attachments and bot notifications

// @contact.name TaskSystem Support
// @contact.url https://github.com/tasksystem/core

// @license.name MIT
// @license.url https://github.com/tasksystem/core/blob/main/LICENSE

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	rootCmd := &cobra.Command{
		Use:   "tasksystem",
		Short: "TaskSystem API Server",
		Long:  `TaskSystem is a multi-project task management system with per-project membership, labels, comments, file attachments and bot notifications.`,
	}

	// Add commands
	rootCmd.AddCommand(commands.NewServeCommand())
	rootCmd.AddCommand(commands.NewMigrateCommand())
	rootCmd.AddCommand(commands.NewUserCommand())

	// Execute root command
	if err := rootCmd.Execute(); err != nil {
		log.Printf("Command execution failed: %v", err)
		os.Exit(1)
	}
}
