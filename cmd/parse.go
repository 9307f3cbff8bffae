package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/eykd/epubgen/internal/binder"
)

// parseOutput is the JSON output schema for the parse command.
type parseOutput struct {
	Version     string              `json:"version"`
	Entries     []binder.Entry      `json:"entries"`
	Diagnostics []binder.Diagnostic `json:"diagnostics"`
}

// NewParseCmd creates the parse subcommand, which prints the reading order
// of a binder as JSON.
func NewParseCmd(fs afero.Fs) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "parse [binder-path]",
		Short:        "Parse a binder file and output its entries as JSON",
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			binderPath := binder.FileName
			if len(args) == 1 {
				binderPath = args[0]
			}

			src, err := afero.ReadFile(fs, binderPath)
			if err != nil {
				return fmt.Errorf("reading binder: %w", err)
			}

			result, diags, err := binder.Parse(cmd.Context(), src)
			if err != nil {
				return fmt.Errorf("parsing binder: %w", err)
			}
			if diags == nil {
				diags = []binder.Diagnostic{}
			}

			out := parseOutput{
				Version:     result.Version,
				Entries:     result.Entries,
				Diagnostics: diags,
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(out); err != nil {
				return fmt.Errorf("encoding output: %w", err)
			}

			if binder.HasErrors(diags) {
				return fmt.Errorf("binder has parse errors")
			}
			return nil
		},
	}
	return cmd
}
