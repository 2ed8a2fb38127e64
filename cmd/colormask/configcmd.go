package main

import (
	"log"

	cli "github.com/spf13/cobra"

	"github.com/ritukun0720/mirror-anotation/internal/config"
)

func newConfigCmd() *cli.Command {
	configCmd := &cli.Command{
		Use:   "config",
		Short: "Manage the configuration file",
	}

	configCmd.AddCommand(&cli.Command{
		Use:   "init [path]",
		Short: "Write the default configuration",
		Args:  cli.MaximumNArgs(1),
		RunE: func(cmd *cli.Command, args []string) error {
			path := config.GetConfigPath()
			if len(args) == 1 {
				path = args[0]
			}
			if err := config.Default().SaveToFile(path); err != nil {
				return err
			}
			log.Printf("wrote %s", path)
			return nil
		},
	})
	return configCmd
}
