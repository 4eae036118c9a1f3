package cli

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/nmoreno/obligo/internal/api"
)

var (
	updateText     string
	updateParty    string
	updateDeadline string
	updateSection  string
	updatePriority string
)

var updateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Edit fields of an obligation",
	Long:  `Update an obligation. Only the flags you pass are sent; everything else stays unchanged. Text cannot be edited once an issue exists for the obligation.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runUpdate,
}

func init() {
	updateCmd.Flags().StringVar(&updateText, "text", "", "obligation text")
	updateCmd.Flags().StringVar(&updateParty, "party", "", "party name")
	updateCmd.Flags().StringVar(&updateDeadline, "deadline", "", "deadline")
	updateCmd.Flags().StringVar(&updateSection, "section", "", "contract section")
	updateCmd.Flags().StringVar(&updatePriority, "priority", "", "priority (Low, Medium, High, Critical)")
}

func runUpdate(cmd *cobra.Command, args []string) error {
	upd, err := buildUpdateFromFlags(cmd)
	if err != nil {
		return err
	}
	if upd == (api.ObligationUpdate{}) {
		return fmt.Errorf("nothing to update; pass at least one of --text, --party, --deadline, --section, --priority")
	}

	client, _, err := newClient()
	if err != nil {
		return err
	}

	o, err := client.UpdateObligation(cmd.Context(), args[0], upd)
	if err != nil {
		return err
	}

	fmt.Println("Updated obligation", o.ID)
	return nil
}

// buildUpdateFromFlags turns the flags that were actually set into a partial
// update. An empty string is a valid value for clearable fields, so presence
// is detected via Changed rather than by comparing against "".
func buildUpdateFromFlags(cmd *cobra.Command) (api.ObligationUpdate, error) {
	var upd api.ObligationUpdate
	if cmd.Flags().Changed("text") {
		upd.ObligationText = &updateText
	}
	if cmd.Flags().Changed("party") {
		upd.PartyName = &updateParty
	}
	if cmd.Flags().Changed("deadline") {
		upd.Deadline = &updateDeadline
	}
	if cmd.Flags().Changed("section") {
		upd.Section = &updateSection
	}
	if cmd.Flags().Changed("priority") {
		if !slices.Contains(api.Priorities(), updatePriority) {
			return upd, fmt.Errorf("invalid priority %q, expected one of %v", updatePriority, api.Priorities())
		}
		upd.Priority = &updatePriority
	}
	return upd, nil
}
