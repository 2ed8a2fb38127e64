package main

import (
	"fmt"
	"log"
	"os"

	cli "github.com/spf13/cobra"

	colormask "github.com/ritukun0720/mirror-anotation"
	"github.com/ritukun0720/mirror-anotation/internal/config"
	"github.com/ritukun0720/mirror-anotation/internal/utils"
)

// newRootCmd builds the full command tree with fresh flag state
func newRootCmd() *cli.Command {
	rootCmd := &cli.Command{
		Use:           "colormask",
		Short:         "Colored polygon overlays for labelme annotations",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to a YAML or JSON config file (default: "+config.GetConfigPath()+" when present)")

	rootCmd.AddCommand(
		newRenderCmd(),
		newCollectCmd(),
		newConfigCmd(),
		newVersionCmd(),
	)
	return rootCmd
}

func newVersionCmd() *cli.Command {
	return &cli.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cli.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), colormask.GetVersion())
		},
	}
}

// loadConfig reads the --config file, the user config file when it exists,
// or the built-in defaults
func loadConfig(cmd *cli.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		if !utils.FileExists(config.GetConfigPath()) {
			return config.Default(), nil
		}
		path = config.GetConfigPath()
	}
	return config.LoadFromFile(path)
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Println("ERROR:", err)
		os.Exit(1)
	}
}
