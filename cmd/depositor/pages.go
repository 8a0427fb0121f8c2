// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/depositor/internal/pagescan"
)

var pagesCmd = &cobra.Command{
	Use:   "pages [issue.pdf]",
	Short: "Print article page ranges found by scanning an issue PDF",
	Long: `Pages scans a merged issue PDF for the running-header marker and
prints the page range of each article. Printed page numbers are offset so
the first marked page is page 1.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPages,
}

func init() {
	pagesCmd.Flags().String("marker", "", "running-header marker (overrides config)")

	rootCmd.AddCommand(pagesCmd)
}

func runPages(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	path := cfg.Pages.PDFPath
	if len(args) == 1 {
		path = args[0]
	}
	if path == "" {
		return fmt.Errorf("provide an issue PDF or set pages.pdf_path")
	}
	marker := cfg.Pages.Marker
	if m, _ := cmd.Flags().GetString("marker"); m != "" {
		marker = m
	}

	spans, err := pagescan.Scanner{Path: path, Marker: marker, Logger: logger}.Scan()
	if err != nil {
		return err
	}
	for i, s := range spans {
		fmt.Fprintf(os.Stdout, "%3d  %s\n", i+1, s)
	}
	return nil
}
