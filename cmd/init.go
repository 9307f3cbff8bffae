package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/eykd/epubgen/internal/binder"
	"github.com/eykd/epubgen/internal/config"
	"github.com/eykd/epubgen/internal/fsutil"
	"github.com/eykd/epubgen/internal/node"
)

// firstChapterTitle names the node created by init.
const firstChapterTitle = "Chapter 1"

// NewInitCmd creates the init subcommand.
func NewInitCmd(fs afero.Fs) *cobra.Command {
	return newInitCmdWithGetCWD(fs, os.Getwd)
}

func newInitCmdWithGetCWD(fs afero.Fs, getwd func() (string, error)) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:          "init",
		Short:        "Initialize an e-book project in the current directory",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			project, _ := cmd.Flags().GetString("project")
			if project == "" {
				cwd, err := getwd()
				if err != nil {
					return fmt.Errorf("getting working directory: %w", err)
				}
				project = cwd
			}
			title, _ := cmd.Flags().GetString("title")
			author, _ := cmd.Flags().GetString("author")

			binderPath := filepath.Join(project, binder.FileName)
			configPath := filepath.Join(project, config.FileName)

			existing := false
			for _, p := range []string{binderPath, configPath} {
				ok, err := fsutil.Exists(fs, p)
				if err != nil {
					return fmt.Errorf("checking %s: %w", p, err)
				}
				if ok && !force {
					return fmt.Errorf("%s already exists in %s; use --force to overwrite", filepath.Base(p), project)
				}
				existing = existing || ok
			}

			if err := fs.MkdirAll(project, 0o755); err != nil {
				return fmt.Errorf("creating %s: %w", project, err)
			}

			nodeName, nodeContent, err := node.New(firstChapterTitle, "\n")
			if err != nil {
				return err
			}
			if err := fsutil.WriteFileAtomic(fs, filepath.Join(project, nodeName), nodeContent, 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", nodeName, err)
			}

			binderContent := binder.Pragma + "\n\n- [" + firstChapterTitle + "](" + nodeName + ")\n"
			if err := fsutil.WriteFileAtomic(fs, binderPath, []byte(binderContent), 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", binder.FileName, err)
			}

			if err := fsutil.WriteFileAtomic(fs, configPath, []byte(config.Scaffold(title, author)), 0o644); err != nil {
				return fmt.Errorf(
					"writing %s (partial init; re-run with --force to recover): %w", config.FileName, err)
			}

			if existing {
				fmt.Fprintln(cmd.ErrOrStderr(), "warning: overwriting existing files")
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Initialized "+project)
			return nil
		},
	}

	cmd.Flags().String("project", "", "project directory (default: current directory)")
	cmd.Flags().String("title", "Untitled", "book title")
	cmd.Flags().String("author", "", "author name")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing files")

	return cmd
}
