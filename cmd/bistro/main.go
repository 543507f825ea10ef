package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "bistro",
	Short: "Bistro restaurant ordering API",
	Long:  "Bistro is the REST backend for the restaurant ordering application: menu, carts, payments, and dashboards.",
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(routeListCmd)
	rootCmd.AddCommand(seedCmd)
}
