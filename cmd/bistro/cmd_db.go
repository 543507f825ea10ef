package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/bistro/config"
	"github.com/shashiranjanraj/bistro/database/seeders"
	"github.com/shashiranjanraj/bistro/pkg/database"
)

// bistro seed loads sample data.
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Run all database seeders",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Load(); err != nil {
			return err
		}
		if err := database.Connect(); err != nil {
			return err
		}
		fmt.Println("Running seeders…")
		return seeders.RunAll(database.DB())
	},
}
