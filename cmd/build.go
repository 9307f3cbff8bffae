package cmd

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/eykd/epubgen/internal/config"
	"github.com/eykd/epubgen/internal/epub"
	"github.com/eykd/epubgen/internal/story"
)

// NewBuildCmd creates the build subcommand.
func NewBuildCmd(fs afero.Fs) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "build [dir]",
		Short:        "Build an e-book package from a project directory",
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(cmd)
			if err != nil {
				return err
			}
			dir := projectDir(args)
			configName, _ := cmd.Flags().GetString("config")
			output, _ := cmd.Flags().GetString("output")

			cfg, err := config.Load(fs, resolveIn(dir, configName))
			if err != nil {
				return err
			}
			if output == "" {
				output = cfg.Resolve(cfg.Output)
			}

			b, err := newBuilder(fs, logger, cfg)
			if err != nil {
				return err
			}

			src := story.NewProjectSource(fs, cfg.Resolve(cfg.Binder))
			n, err := story.Populate(cmd.Context(), src, b, story.NewBodyRenderer())
			if err != nil {
				return fmt.Errorf("loading stories: %w", err)
			}
			logger.Info("loaded stories", "count", n)

			if err := b.Generate(cmd.Context(), output); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d articles)\n", output, n)
			return nil
		},
	}

	cmd.Flags().String("config", config.FileName, "config file, relative to the project directory")
	cmd.Flags().StringP("output", "o", "", "output path (default: the config's output key)")

	return cmd
}

// newBuilder returns a builder holding the metadata and assets of cfg.
func newBuilder(fs afero.Fs, logger *log.Logger, cfg *config.Config) (*epub.Builder, error) {
	b, err := epub.New(epub.WithFs(fs), epub.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	if err := cfg.Apply(b.Metadata()); err != nil {
		return nil, fmt.Errorf("applying metadata: %w", err)
	}
	for _, img := range cfg.Images {
		b.AddImage(cfg.Resolve(img.Path), img.Name, img.MediaType)
	}
	for _, f := range cfg.Files {
		b.AddFile(cfg.Resolve(f.Path), f.Name, f.MediaType)
	}
	return b, nil
}
