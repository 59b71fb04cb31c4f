package main

import (
	"fmt"
	"log"

	"github.com/pferate/puppy-website/internal/database"
	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create or refresh the bootstrap users and groups",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if err := database.Connect(cfg); err != nil {
			return fmt.Errorf("connect to database: %w", err)
		}
		if err := database.Migrate(); err != nil {
			return fmt.Errorf("run migrations: %w", err)
		}
		if err := database.Seed(database.GetDB()); err != nil {
			return fmt.Errorf("seed database: %w", err)
		}
		log.Printf("database seeded")
		return nil
	},
}
