package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/toolsmith-labs/toolsmith/internal/config"
	"github.com/toolsmith-labs/toolsmith/internal/fsys"
	"github.com/toolsmith-labs/toolsmith/internal/project"
	"github.com/toolsmith-labs/toolsmith/internal/registry"
	"github.com/toolsmith-labs/toolsmith/internal/report"
	"github.com/toolsmith-labs/toolsmith/internal/scaffold"
	"github.com/toolsmith-labs/toolsmith/internal/templates"
	"github.com/toolsmith-labs/toolsmith/internal/tool"
	"github.com/toolsmith-labs/toolsmith/internal/userdata"
)

var (
	createDisplayName  string
	createDescription  string
	createIcon         string
	createToolVersion  string
	createPermissions  []string
	createFeatures     []string
	createFromFile     string
	createRoot         string
	createForce        bool
	createSkipExisting bool
	createSkipRegister bool
	createEmail        string
	createPassword     string
)

func init() {
	createCmd.Flags().StringVar(&createDisplayName, "display-name", "", "Human-readable tool name")
	createCmd.Flags().StringVar(&createDescription, "description", "", "Short description of what the tool does")
	createCmd.Flags().StringVar(&createIcon, "icon", "", "Icon name shown in the tool launcher")
	createCmd.Flags().StringVar(&createToolVersion, "tool-version", "", "Initial semantic version (default "+tool.DefaultVersion+")")
	createCmd.Flags().StringSliceVar(&createPermissions, "permissions", nil, "Roles allowed to use the tool (comma-separated)")
	createCmd.Flags().StringSliceVar(&createFeatures, "features", nil, "Features to scaffold: component, api, storage, docs")
	createCmd.Flags().StringVar(&createFromFile, "from-file", "", "Read tool metadata from a YAML file")
	createCmd.Flags().StringVar(&createRoot, "root", "", "Workspace root (default: workspace.root config or current directory)")
	createCmd.Flags().BoolVar(&createForce, "force", false, "Overwrite files that already exist")
	createCmd.Flags().BoolVar(&createSkipExisting, "skip-existing", false, "Keep files that already exist and write the rest")
	createCmd.Flags().BoolVar(&createSkipRegister, "skip-register", false, "Scaffold only, do not contact the registry")
	createCmd.Flags().StringVar(&createEmail, "email", "", "Registry account email")
	createCmd.Flags().StringVar(&createPassword, "password", "", "Registry account password")
	rootCmd.AddCommand(createCmd)
}

var createCmd = &cobra.Command{
	Use:   "create [tool-name]",
	Short: "Scaffold a new tool module and register it",
	Long: `Scaffold a full-stack tool module into the workspace and register it
with the tool registry.

The tool name is a kebab-case identifier. Every other property can be set
with flags or read from a metadata file. Generated files are wired into
the workspace's barrel files and server bootstrap automatically.

Examples:
  toolsmith create inventory-tracker --display-name "Inventory Tracker" \
    --icon clipboard --permissions admin,editor --features component,api
  toolsmith create --from-file tool.yaml --skip-register
  toolsmith create audit-log --from-file tool.yaml --force`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCreate,
}

func runCreate(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && createFromFile == "" {
		fmt.Fprintln(cmd.OutOrStdout(), "Nothing to create: pass a tool name or --from-file.")
		fmt.Fprintln(cmd.OutOrStdout())
		return cmd.Help()
	}

	meta, err := metadataFromFlags(args)
	if err != nil {
		return err
	}

	layout, err := loadLayout(createRoot)
	if err != nil {
		return err
	}

	policy := scaffold.PolicyAbort
	switch {
	case createForce:
		policy = scaffold.PolicyForce
	case createSkipExisting:
		policy = scaffold.PolicySkipExisting
	}

	reporter := report.NewConsole(cmd.OutOrStdout(), cmd.ErrOrStderr())
	gen := scaffold.NewGenerator(fsys.NewDisk(), newEngine(), reporter)

	fmt.Fprintf(cmd.OutOrStdout(), "Scaffolding %s into %s\n", meta.Identifier, layout.Root)
	result, err := gen.Generate(meta, layout, policy)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "\nCreated %d file(s) in %s\n",
		len(result.FilesCreated), result.Root)

	if createSkipRegister {
		rec := registry.Record{
			Identifier: meta.Identifier,
			Status:     registry.StatusSkipped,
			Details:    "registration skipped by --skip-register",
		}
		if err := registry.SaveRecord(rec); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Registration skipped.")
		printNextSteps(cmd, meta)
		return nil
	}

	if err := registerTool(cmd, meta, createEmail, createPassword); err != nil {
		return err
	}

	printNextSteps(cmd, meta)
	return nil
}

// metadataFromFlags assembles tool metadata from the positional name and
// flags, or from --from-file. A positional name overrides the file's
// identifier so one metadata file can stamp out variants.
func metadataFromFlags(args []string) (*tool.Metadata, error) {
	if createFromFile != "" {
		meta, err := tool.LoadFile(createFromFile)
		if err != nil {
			return nil, err
		}
		if len(args) == 1 {
			meta.Identifier = args[0]
		}
		return meta, nil
	}

	return &tool.Metadata{
		Identifier:  args[0],
		DisplayName: createDisplayName,
		Description: createDescription,
		Icon:        createIcon,
		Version:     createToolVersion,
		Permissions: createPermissions,
		Features:    createFeatures,
	}, nil
}

// loadLayout resolves the workspace root (flag, then config, then the
// current directory) and reads its layout file.
func loadLayout(flagRoot string) (project.Layout, error) {
	root := flagRoot
	if root == "" {
		root = config.Get(config.KeyWorkspaceRoot)
	}
	if root == "" {
		root = "."
	}
	return project.Load(root)
}

// newEngine builds the template engine, shadowed by the user's template
// override directory when the home directory resolves.
func newEngine() *templates.Engine {
	if dir, err := userdata.GetTemplatesDir(); err == nil {
		return templates.New(templates.WithOverrideDir(dir))
	}
	return templates.New()
}

func printNextSteps(cmd *cobra.Command, meta *tool.Metadata) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "\nNext steps:")
	step := 1
	if meta.HasFeature(tool.FeatureAPI) {
		fmt.Fprintf(out, "  %d. Implement your logic in server/src/services/%s.service.ts\n", step, meta.Identifier)
		step++
		fmt.Fprintf(out, "  %d. Restart the dev server to pick up %s\n", step, meta.APIBasePath())
		step++
	}
	if meta.HasFeature(tool.FeatureComponent) {
		fmt.Fprintf(out, "  %d. Build the UI in web/src/tools/%s/%s.component.tsx\n", step, meta.Identifier, meta.Identifier)
		step++
	}
	if meta.HasFeature(tool.FeatureDocs) {
		fmt.Fprintf(out, "  %d. Fill in docs/tools/%s.md\n", step, meta.Identifier)
	}
}
