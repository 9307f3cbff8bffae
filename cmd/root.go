// Package cmd implements the epubgen CLI commands.
package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/eykd/epubgen/internal/binder"
	"github.com/eykd/epubgen/internal/logging"
)

// NewRootCmd creates the root epubgen command with all subcommands
// registered against the OS filesystem.
func NewRootCmd() *cobra.Command {
	return newRootCmdWithFs(afero.NewOsFs())
}

func newRootCmdWithFs(fs afero.Fs) *cobra.Command {
	root := &cobra.Command{
		Use:           "epubgen",
		Short:         "epubgen - build e-books from prosemark projects",
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		RunE:          rootRunE,
	}
	root.PersistentFlags().String("log-level", logging.DefaultLevel, "log level: debug, info, warn or error")

	root.AddCommand(NewBuildCmd(fs))
	root.AddCommand(NewInitCmd(fs))
	root.AddCommand(NewMetadataCmd(fs))
	root.AddCommand(NewNameCmd())
	root.AddCommand(NewParseCmd(fs))
	return root
}

func rootRunE(cmd *cobra.Command, _ []string) error {
	return cmd.Help()
}

// newLogger builds a stderr logger from the inherited --log-level flag.
func newLogger(cmd *cobra.Command) (*log.Logger, error) {
	level := logging.DefaultLevel
	if f := cmd.Flag("log-level"); f != nil {
		level = f.Value.String()
	}
	return logging.New(cmd.ErrOrStderr(), level)
}

// projectDir returns the optional positional directory argument, or ".".
func projectDir(args []string) string {
	if len(args) > 0 && args[0] != "" {
		return args[0]
	}
	return "."
}

// resolveIn joins p to dir unless p is absolute.
func resolveIn(dir, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dir, p)
}

// printDiagnostics writes each diagnostic to stderr in human-readable form.
func printDiagnostics(cmd *cobra.Command, diags []binder.Diagnostic) {
	for _, d := range diags {
		if d.Line > 0 {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: line %d: %s (%s)\n", d.Severity, d.Line, d.Message, d.Code)
			continue
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s (%s)\n", d.Severity, d.Message, d.Code)
	}
}
