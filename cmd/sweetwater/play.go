package main

import (
	"github.com/aretw0/sweetwater/internal/cli"
	"github.com/spf13/cobra"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a session in the terminal",
	Long: `Starts the arcade on the title screen. Use the arrow keys or WASD to steer,
SPACE or ENTER to continue and q to quit.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		configDir, _ := cmd.Flags().GetString("config")
		redisAddr, _ := cmd.Flags().GetString("redis")
		httpAddr, _ := cmd.Flags().GetString("http")
		debug, _ := cmd.Flags().GetBool("debug")

		opts := cli.PlayOptions{
			ConfigDir: configDir,
			RedisAddr: redisAddr,
			HTTPAddr:  httpAddr,
			Debug:     debug,
			Seed:      env.Seed,
		}
		if cmd.Flags().Changed("seed") {
			seed, _ := cmd.Flags().GetUint64("seed")
			opts.Seed = &seed
		}
		return cli.Play(cmd.Context(), opts)
	},
}

func init() {
	rootCmd.AddCommand(playCmd)

	var seed uint64
	if env.Seed != nil {
		seed = *env.Seed
	}

	playCmd.Flags().String("redis", env.RedisAddr, "Redis address to publish snapshots to (disabled when empty)")
	playCmd.Flags().String("http", env.HTTPAddr, "Address of the HTTP inspector, e.g. :8080 (disabled when empty)")
	playCmd.Flags().Bool("debug", env.Debug, "Write debug logs to stderr")
	playCmd.Flags().Uint64("seed", seed, "Seed for reproducible personas and pickups")

	rootCmd.RunE = playCmd.RunE
	rootCmd.Flags().AddFlagSet(playCmd.Flags())
}
