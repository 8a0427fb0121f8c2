// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pdiddy/depositor/internal/merge"
)

var mergeCmd = &cobra.Command{
	Use:   "merge",
	Short: "Merge rendered PDFs into one issue PDF",
	Long: `Merge concatenates every PDF in the render directory, in file name
order, into a single issue PDF. The result is the input of the marker-scan
page strategy.`,
	RunE: runMerge,
}

func init() {
	mergeCmd.Flags().String("dir", "", "directory of PDFs to merge (default: render.pdf_dir)")
	mergeCmd.Flags().String("out", "", "merged PDF path (default: pages.pdf_path or <output_dir>/issue.pdf)")

	rootCmd.AddCommand(mergeCmd)
}

func runMerge(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	dir, _ := cmd.Flags().GetString("dir")
	if dir == "" {
		dir = cfg.Render.PDFDir
	}
	out, _ := cmd.Flags().GetString("out")
	if out == "" {
		out = cfg.Pages.PDFPath
	}
	if out == "" {
		out = filepath.Join(cfg.Paths.OutputDir, "issue.pdf")
	}

	_, err = merge.Merge(dir, out, os.Stdout)
	return err
}
