package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/toolsmith-labs/toolsmith/internal/registry"
)

var registrationsJSON bool

var registrationsCmd = &cobra.Command{
	Use:   "registrations",
	Short: "Show registration history",
	Long:  `Show the recorded outcome of the last registration attempt per tool.`,
	RunE:  runRegistrations,
}

var registrationsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear the registration history",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := registry.ClearRecords(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Registration history cleared.")
		return nil
	},
}

func init() {
	registrationsCmd.Flags().BoolVar(&registrationsJSON, "json", false, "Output in JSON format")
	registrationsCmd.AddCommand(registrationsClearCmd)
	rootCmd.AddCommand(registrationsCmd)
}

func runRegistrations(cmd *cobra.Command, args []string) error {
	records, err := registry.AllRecords()
	if err != nil {
		return err
	}

	if len(records) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No registrations recorded yet.")
		return nil
	}

	if registrationsJSON {
		data, err := json.MarshalIndent(records, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "TOOL\tSTATUS\tWHEN\tDETAILS")
	for _, rec := range records {
		details := rec.Details
		if rec.Status == registry.StatusFailed {
			details = rec.Error
		}
		if details == "" {
			details = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			rec.Identifier, rec.Status, rec.Timestamp.Format(time.RFC3339), details)
	}
	return w.Flush()
}
