package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/sweetwater"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of sweetwater",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "sweetwater version %s\n", strings.TrimSpace(sweetwater.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
