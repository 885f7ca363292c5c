package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/vnest-dev/vnest/internal/config"
	"github.com/vnest-dev/vnest/internal/demo"
	"github.com/vnest-dev/vnest/internal/errors"
	"github.com/vnest-dev/vnest/pkg/dom"
	"github.com/vnest-dev/vnest/pkg/markup"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		errors.PrintError(err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vnest",
		Short: "A minimal reactive UI toolkit",
		Long: `vnest keeps a document in line with a declarative page description.

Commands serve the built-in demo page live, render it to a file, or
publish the snapshot to an S3 bucket. Defaults come from vnest.json or
vnest.yaml in the project root.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(
		serveCmd(),
		renderCmd(),
		publishCmd(),
		versionCmd(),
	)
	return cmd
}

// loadConfig loads the project config and installs its logger as the
// default.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadFromWorkingDir()
	if err != nil {
		return nil, err
	}
	slog.SetDefault(cfg.Logger())
	return cfg, nil
}

// buildDemo creates the demo page in a fresh document.
func buildDemo(cfg *config.Config) (*dom.Document, error) {
	render := markup.Markdown
	if cfg.Render.Markup == "plain" {
		render = markup.Plain
	}
	doc := dom.NewDocument()
	if _, err := demo.Build(doc, render, slog.Default()); err != nil {
		return nil, err
	}
	return doc, nil
}

// success prints a success message.
func success(format string, args ...any) {
	fmt.Printf("\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(format string, args ...any) {
	fmt.Printf("  %s\n", fmt.Sprintf(format, args...))
}
