package main

import (
	"log"

	cli "github.com/spf13/cobra"

	colormask "github.com/ritukun0720/mirror-anotation"
)

func newRenderCmd() *cli.Command {
	cmd := &cli.Command{
		Use:   "render",
		Short: "Render colored polygon overlays for every annotation file",
		RunE:  runRender,
	}

	cmd.Flags().StringP("images", "i", "", "Directory with the source images")
	cmd.Flags().StringP("json", "j", "", "Directory with the annotation JSON files")
	cmd.Flags().StringP("out", "o", "", "Output directory for rendered images")
	cmd.Flags().String("prefix", "", "Prefix for output file names")
	cmd.Flags().String("suffix", "", "Suffix for output file names")
	cmd.Flags().String("format", "", "Output format: png|webp")
	return cmd
}

func runRender(cmd *cli.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	overrides := map[string]*string{
		"images": &cfg.Render.ImageDir,
		"json":   &cfg.Render.AnnotationDir,
		"out":    &cfg.Render.OutputDir,
		"prefix": &cfg.Render.Prefix,
		"suffix": &cfg.Render.Suffix,
		"format": &cfg.Render.Format,
	}
	for name, dst := range overrides {
		if flags.Changed(name) {
			*dst, _ = flags.GetString(name)
		}
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	cm := colormask.NewWithConfig(cfg.RenderOptions(), cfg.Colors)
	summary, err := cm.RenderAll()
	if err != nil {
		return err
	}
	if n := len(summary.Failures); n > 0 {
		log.Printf("%d annotation files were skipped", n)
	}
	return nil
}
