package main

import (
	"github.com/aretw0/sweetwater/internal/cli"
	"github.com/spf13/cobra"
)

var personasCmd = &cobra.Command{
	Use:   "personas",
	Short: "List the configured personas and upgrades",
	RunE: func(cmd *cobra.Command, args []string) error {
		configDir, _ := cmd.Flags().GetString("config")
		plain, _ := cmd.Flags().GetBool("plain")
		return cli.ListPersonas(cmd.Context(), cmd.OutOrStdout(), configDir, plain)
	},
}

func init() {
	rootCmd.AddCommand(personasCmd)
	personasCmd.Flags().Bool("plain", false, "Print raw markdown instead of rendering it")
}
