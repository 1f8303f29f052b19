package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/toolsmith-labs/toolsmith/internal/project"
)

func init() {
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init [directory]",
	Short: "Initialize a workspace",
	Long: `Write a workspace.yaml with the default layout so tools scaffold into
web/, server/, shared/, and docs/. Edit the file to point the areas at
different directories.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root := "."
		if len(args) == 1 {
			root = args[0]
		}

		path := filepath.Join(root, project.WorkspaceFile)
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("workspace already initialized: %s exists", path)
		}

		layout, err := project.Init(root)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Initialized workspace at %s\n", layout.Root)
		fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", path)
		return nil
	},
}
