package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var issuesCmd = &cobra.Command{
	Use:   "issues [id]",
	Short: "List tracker issues, or show one",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runIssues,
}

func runIssues(cmd *cobra.Command, args []string) error {
	client, _, err := newClient()
	if err != nil {
		return err
	}

	if len(args) == 1 {
		issue, err := client.GetIssue(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Println("Key:     ", issue.Key)
		fmt.Println("Title:   ", issue.Title)
		fmt.Println("Status:  ", issue.Status)
		fmt.Println("Priority:", issue.Priority)
		if issue.URL != "" {
			fmt.Println("URL:     ", issue.URL)
		}
		fmt.Println()
		fmt.Println(issue.Description)
		return nil
	}

	issues, err := client.ListIssues(cmd.Context())
	if err != nil {
		return err
	}
	if len(issues) == 0 {
		fmt.Println("No issues created yet.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "KEY\tSTATUS\tPRIORITY\tTITLE")
	for _, issue := range issues {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			issue.Key, issue.Status, issue.Priority, truncateText(issue.Title, 60))
	}
	return w.Flush()
}
