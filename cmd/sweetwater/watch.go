package main

import (
	"fmt"

	"github.com/aretw0/sweetwater/internal/cli"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Mirror a session that publishes to Redis",
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("redis")
		if addr == "" {
			return fmt.Errorf("--redis (or SWEETWATER_REDIS_ADDR) is required")
		}
		return cli.Watch(cmd.Context(), cmd.OutOrStdout(), addr)
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().String("redis", env.RedisAddr, "Redis address to subscribe to")
}
