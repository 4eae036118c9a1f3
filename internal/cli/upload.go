package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var uploadPageSize int

var uploadCmd = &cobra.Command{
	Use:   "upload <file>",
	Short: "Upload a document and extract its obligations",
	Long:  `Upload a PDF or DOCX contract. The backend extracts obligations and the first page of results is printed.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runUpload,
}

func init() {
	uploadCmd.Flags().IntVar(&uploadPageSize, "page-size", 0, "obligations per page (defaults to config)")
}

func runUpload(cmd *cobra.Command, args []string) error {
	path := args[0]
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf", ".docx":
	default:
		return fmt.Errorf("only PDF and DOCX documents are supported, got %q", filepath.Ext(path))
	}

	client, cfg, err := newClient()
	if err != nil {
		return err
	}

	size := uploadPageSize
	if size <= 0 {
		size = cfg.PageSize
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open document: %w", err)
	}
	defer func() { _ = f.Close() }()

	fmt.Printf("Uploading %s, extracting obligations…\n", filepath.Base(path))

	resp, err := client.UploadDocument(cmd.Context(), filepath.Base(path), f, 1, size)
	if err != nil {
		return err
	}

	fmt.Printf("Extracted %d obligations.\n\n", resp.TotalObligations)

	if len(resp.Obligations) == 0 {
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
	fmt.Printf("\nPage %d of %d\n", resp.CurrentPage, resp.TotalPages)
	return nil
}
