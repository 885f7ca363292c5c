package main

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vnest-dev/vnest/pkg/publish"
)

func renderCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the demo page to an HTML file",
		Long: `Render the demo page once and write the snapshot to a file.

Examples:
  vnest render
  vnest render --out=public/index.html`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if out == "" {
				out = cfg.OutputPath()
			}

			doc, err := buildDemo(cfg)
			if err != nil {
				return err
			}

			dir, name := filepath.Split(out)
			if dir == "" {
				dir = "."
			}
			p := publish.New(publish.NewDirTarget(dir))
			if err := p.Publish(cmd.Context(), doc, name); err != nil {
				return err
			}
			success("Wrote %s", out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (default from config)")

	return cmd
}
