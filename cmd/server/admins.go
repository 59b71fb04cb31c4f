package main

import (
	"fmt"

	"github.com/pferate/puppy-website/internal/database"
	"github.com/spf13/cobra"
)

var adminsCmd = &cobra.Command{
	Use:   "admins",
	Short: "List the members of the administrative groups",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if err := database.Connect(cfg); err != nil {
			return fmt.Errorf("connect to database: %w", err)
		}

		admins, err := newApp(cfg, database.GetDB()).groups.GetAdminUsers()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, admin := range admins {
			fmt.Fprintf(out, "%d\t%s\t%s\n", admin.ID, admin.Email, admin.DisplayName())
		}
		return nil
	},
}
