package main

import (
	cli "github.com/spf13/cobra"

	colormask "github.com/ritukun0720/mirror-anotation"
)

func newCollectCmd() *cli.Command {
	cmd := &cli.Command{
		Use:   "collect",
		Short: "Copy JSON/PNG pairs from a directory tree into one directory",
		RunE:  runCollect,
	}

	cmd.Flags().StringP("source", "s", "", "Directory to search recursively")
	cmd.Flags().StringP("dest", "d", "", "Directory to copy pairs into")
	return cmd
}

func runCollect(cmd *cli.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	source, dest := cfg.Collect.SourceDir, cfg.Collect.DestDir
	if cmd.Flags().Changed("source") {
		source, _ = cmd.Flags().GetString("source")
	}
	if cmd.Flags().Changed("dest") {
		dest, _ = cmd.Flags().GetString("dest")
	}

	_, err = colormask.New().Collect(source, dest)
	return err
}
