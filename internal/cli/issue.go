package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var createIssueCmd = &cobra.Command{
	Use:   "create-issue <id> [id...]",
	Short: "Create tracker issues for obligations",
	Long:  `Create a tracker issue for each given obligation. With more than one id the bulk endpoint is used and per-obligation outcomes are reported.`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCreateIssue,
}

func runCreateIssue(cmd *cobra.Command, args []string) error {
	client, _, err := newClient()
	if err != nil {
		return err
	}

	if len(args) == 1 {
		resp, err := client.CreateIssue(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if resp.IssueID == "" {
			return fmt.Errorf("backend reported no issue id: %s", resp.Message)
		}
		fmt.Printf("Created issue %s for obligation %s\n", resp.IssueID, args[0])
		return nil
	}

	resp, err := client.CreateIssues(cmd.Context(), args)
	if err != nil {
		return err
	}

	for _, r := range resp.Results {
		if r.Success {
			fmt.Printf("ok    %s → %s\n", r.ObligationID, r.IssueID)
		} else {
			reason := r.Error
			if reason == "" {
				reason = r.Message
			}
			fmt.Printf("fail  %s: %s\n", r.ObligationID, reason)
		}
	}
	fmt.Printf("\n%d created, %d failed\n", resp.SuccessCount, resp.FailedCount)

	if resp.FailedCount > 0 {
		return fmt.Errorf("%d of %d issues could not be created", resp.FailedCount, len(args))
	}
	return nil
}
