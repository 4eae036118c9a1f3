package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var getCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one obligation in full",
	Args:  cobra.ExactArgs(1),
	RunE:  runGet,
}

func runGet(cmd *cobra.Command, args []string) error {
	client, _, err := newClient()
	if err != nil {
		return err
	}

	o, err := client.GetObligation(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	fmt.Println("ID:        ", o.ID)
	fmt.Println("Party:     ", o.PartyName)
	fmt.Println("Priority:  ", o.Priority)
	if o.Deadline != "" {
		fmt.Println("Deadline:  ", o.Deadline)
	}
	if o.Section != "" {
		fmt.Println("Section:   ", o.Section)
	}
	if o.JiraIssueID != "" {
		fmt.Println("Issue:     ", o.JiraIssueID, "(text locked)")
	}
	fmt.Println("Created:   ", o.CreatedAt)
	fmt.Println("Updated:   ", o.UpdatedAt)
	fmt.Println()
	fmt.Println(o.ObligationText)
	return nil
}
