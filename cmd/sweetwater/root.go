package main

import (
	"fmt"
	"os"

	"github.com/aretw0/sweetwater/internal/cli"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "sweetwater",
	Short: "Sweetwater Arcade in your terminal",
	Long: `Sweetwater Arcade strings timed stages into one play session: help a customer,
collect the gear they need on the sales floor and carry your awareness through to
the celebration.`,
	SilenceUsage: true,
}

// env holds the SWEETWATER_* defaults for every command's flags.
var env = loadEnv()

func loadEnv() cli.Env {
	e, err := cli.LoadEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
		return cli.Env{ConfigDir: "examples/config"}
	}
	return e
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", env.ConfigDir, "Directory with the marketing, personas and upgrades documents")
}
