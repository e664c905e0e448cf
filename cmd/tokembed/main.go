package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/memohai/tokembed/internal/config"
	"github.com/memohai/tokembed/internal/version"
)

func newRootCommand() *cobra.Command {
	var (
		configPath string
		envFile    string
	)
	cmd := &cobra.Command{
		Use:          "tokembed",
		Short:        "Discord bot that replies to TikTok links with the video and its stats",
		Version:      version.GetInfo(),
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.LoadEnvFile(envFile); err != nil {
				return err
			}
			return runServe(configPath)
		},
	}
	cmd.Flags().StringVar(&configPath, "config", config.DefaultConfigPath, "path to the TOML config file (optional)")
	cmd.Flags().StringVar(&envFile, "env-file", config.DefaultEnvFile, "dotenv file loaded before reading the environment (optional)")
	return cmd
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
