package cmd

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/eykd/epubgen/internal/config"
	"github.com/eykd/epubgen/internal/metadata"
)

// NewMetadataCmd creates the metadata subcommand, which prints the package
// metadata a build would emit.
func NewMetadataCmd(fs afero.Fs) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "metadata [dir]",
		Short:        "Print the package metadata block for a project",
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			configName, _ := cmd.Flags().GetString("config")
			cfg, err := config.Load(fs, resolveIn(projectDir(args), configName))
			if err != nil {
				return err
			}
			s := metadata.New()
			if err := cfg.Apply(s); err != nil {
				return fmt.Errorf("applying metadata: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), s.Render())
			return nil
		},
	}

	cmd.Flags().String("config", config.FileName, "config file, relative to the project directory")

	return cmd
}
