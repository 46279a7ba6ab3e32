package main

import (
	"fmt"
	"os"

	"github.com/salespoint/internal/cli/commands"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "salespoint",
	Short: "SalesPoint CLI - point-of-sale backend operations",
	Long: `SalesPoint CLI is a command-line tool for the SalesPoint backend.
It lists products and stock levels, inspects generated sales reports,
and shows the automated report schedules.`,
}

func init() {
	// Add commands
	rootCmd.AddCommand(commands.NewProductsCommand())
	rootCmd.AddCommand(commands.NewReportsCommand())
	rootCmd.AddCommand(commands.NewSchedulesCommand())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
