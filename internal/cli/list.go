package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/nmoreno/obligo/internal/api"
)

var (
	listPage     int
	listPageSize int
	listParty    string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List extracted obligations",
	Long:  `List obligations one page at a time, optionally filtered by party name.`,
	RunE:  runList,
}

func init() {
	listCmd.Flags().IntVar(&listPage, "page", 1, "page number")
	listCmd.Flags().IntVar(&listPageSize, "page-size", 0, "obligations per page (defaults to config)")
	listCmd.Flags().StringVar(&listParty, "party", "", "filter by party name (case-insensitive substring)")
}

func runList(cmd *cobra.Command, args []string) error {
	client, cfg, err := newClient()
	if err != nil {
		return err
	}

	size := listPageSize
	if size <= 0 {
		size = cfg.PageSize
	}

	resp, err := client.ListObligations(cmd.Context(), listPage, size, listParty)
	if err != nil {
		return err
	}

	if len(resp.Obligations) == 0 {
		fmt.Println("No obligations found.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPARTY\tPRIORITY\tDEADLINE\tISSUE\tOBLIGATION")
	for _, o := range resp.Obligations {
		fmt.Fprintln(w, obligationRow(o))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\nPage %d of %d (%d obligations)\n", resp.Page, resp.TotalPages, resp.Total)
	return nil
}

// obligationRow formats one obligation as a tab-separated table row.
func obligationRow(o api.Obligation) string {
	issue := "-"
	if o.JiraIssueID != "" {
		issue = o.JiraIssueID
	}
	deadline := o.Deadline
	if deadline == "" {
		deadline = "-"
	}
	return fmt.Sprintf("%s\t%s\t%s\t%s\t%s\t%s",
		shortID(o.ID), o.PartyName, o.Priority, deadline, issue, truncateText(o.ObligationText, 60))
}

// shortID abbreviates a UUID for table output. Full ids are shown by get.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// truncateText cuts s at max runes, appending an ellipsis when cut.
func truncateText(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max <= 1 {
		return string(r[:max])
	}
	return string(r[:max-1]) + "…"
}
