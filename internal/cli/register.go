package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/toolsmith-labs/toolsmith/internal/config"
	"github.com/toolsmith-labs/toolsmith/internal/registry"
	"github.com/toolsmith-labs/toolsmith/internal/tool"
)

var (
	registerDisplayName string
	registerDescription string
	registerIcon        string
	registerToolVersion string
	registerPermissions []string
	registerFeatures    []string
	registerFromFile    string
	registerEmail       string
	registerPassword    string
)

func init() {
	registerCmd.Flags().StringVar(&registerDisplayName, "display-name", "", "Human-readable tool name")
	registerCmd.Flags().StringVar(&registerDescription, "description", "", "Short description of what the tool does")
	registerCmd.Flags().StringVar(&registerIcon, "icon", "", "Icon name shown in the tool launcher")
	registerCmd.Flags().StringVar(&registerToolVersion, "tool-version", "", "Semantic version (default "+tool.DefaultVersion+")")
	registerCmd.Flags().StringSliceVar(&registerPermissions, "permissions", nil, "Roles allowed to use the tool (comma-separated)")
	registerCmd.Flags().StringSliceVar(&registerFeatures, "features", nil, "Features the tool ships: component, api, storage, docs")
	registerCmd.Flags().StringVar(&registerFromFile, "from-file", "", "Read tool metadata from a YAML file")
	registerCmd.Flags().StringVar(&registerEmail, "email", "", "Registry account email")
	registerCmd.Flags().StringVar(&registerPassword, "password", "", "Registry account password")
	rootCmd.AddCommand(registerCmd)
}

var registerCmd = &cobra.Command{
	Use:   "register [tool-name]",
	Short: "Register an existing tool with the registry",
	Long: `Register a tool with the remote registry without touching the
workspace. Useful after a --skip-register run or when a registration
attempt failed.

Examples:
  toolsmith register inventory-tracker --display-name "Inventory Tracker" \
    --icon clipboard --permissions admin --features component,api
  toolsmith register --from-file tool.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRegister,
}

func runRegister(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && registerFromFile == "" {
		fmt.Fprintln(cmd.OutOrStdout(), "Nothing to register: pass a tool name or --from-file.")
		fmt.Fprintln(cmd.OutOrStdout())
		return cmd.Help()
	}

	var meta *tool.Metadata
	var err error
	if registerFromFile != "" {
		meta, err = tool.LoadFile(registerFromFile)
		if err != nil {
			return err
		}
		if len(args) == 1 {
			meta.Identifier = args[0]
		}
	} else {
		meta = &tool.Metadata{
			Identifier:  args[0],
			DisplayName: registerDisplayName,
			Description: registerDescription,
			Icon:        registerIcon,
			Version:     registerToolVersion,
			Permissions: registerPermissions,
			Features:    registerFeatures,
		}
	}

	tool.Normalize(meta)
	if err := tool.Validate(meta); err != nil {
		return err
	}

	return registerTool(cmd, meta, registerEmail, registerPassword)
}

// registerTool authenticates against the registry and submits the tool,
// recording the outcome in the local registration history. Failures are
// recorded as failed before they propagate; the cache write itself is
// fatal because the history is the only durable record of the outcome.
func registerTool(cmd *cobra.Command, meta *tool.Metadata, email, password string) error {
	email, password, err := registry.ResolveCredentials(email, password)
	if err != nil {
		return recordFailure(meta.Identifier, err)
	}

	client := registry.NewClient(config.RegistryURL(),
		registry.WithAnnouncer(func(attempt int, delay time.Duration) {
			fmt.Fprintf(cmd.ErrOrStderr(), "registry not responding, retrying (attempt %d) in %s\n", attempt, delay)
		}))

	ctx := cmd.Context()
	session, err := client.Authenticate(ctx, email, password)
	if err != nil {
		return recordFailure(meta.Identifier, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Authenticated as %s\n", email)

	reg, err := client.Register(ctx, session, meta, nil)
	if err != nil {
		return recordFailure(meta.Identifier, err)
	}

	details := reg.Message
	if details == "" {
		details = fmt.Sprintf("registered as %s", reg.ToolID)
	}
	rec := registry.Record{
		Identifier: meta.Identifier,
		Status:     registry.StatusSuccess,
		Details:    details,
	}
	if err := registry.SaveRecord(rec); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Registered %s with %s\n", meta.Identifier, client.BaseURL())
	return nil
}

// recordFailure writes a failed record for the identifier and passes the
// original cause through. Generated files stay on disk; the operator can
// rerun 'register' once the cause is fixed.
func recordFailure(identifier string, cause error) error {
	rec := registry.Record{
		Identifier: identifier,
		Status:     registry.StatusFailed,
		Error:      cause.Error(),
	}
	if err := registry.SaveRecord(rec); err != nil {
		return fmt.Errorf("%w (recording the outcome also failed: %v)", cause, err)
	}
	return cause
}
