package main

import (
	"fmt"

	"github.com/aretw0/sweetwater/internal/validator"
	"github.com/aretw0/sweetwater/pkg/adapters/config"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the configuration documents",
	RunE: func(cmd *cobra.Command, args []string) error {
		configDir, _ := cmd.Flags().GetString("config")

		cat, err := config.FromDir(configDir).Load(cmd.Context())
		if err != nil {
			return err
		}
		if err := validator.ValidateCatalog(cat); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ %s: %d personas, %d upgrades, baseline ×%.2f\n",
			configDir, len(cat.Personas), len(cat.Upgrades), cat.Baseline())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
