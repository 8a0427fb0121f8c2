// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/depositor/internal/crossref"
	"github.com/pdiddy/depositor/internal/document"
	"github.com/pdiddy/depositor/internal/pipeline"
)

var docsCmd = &cobra.Command{
	Use:   "docs [deposit.xml]",
	Short: "Write the issue contents and DOI letter from a deposit file",
	Long: `Docs reads an existing deposit XML file and writes the Ukrainian
issue contents (contents_eng.docx) and the DOI letter (doi_letter.docx)
to the output directory. Use --xlsx to also write contents.xlsx.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDocs,
}

func init() {
	docsCmd.Flags().Bool("xlsx", false, "also write the contents workbook")
	docsCmd.Flags().String("out", "", "output directory (overrides config)")

	rootCmd.AddCommand(docsCmd)
}

func runDocs(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	path := pipeline.DepositPath(cfg.Paths)
	if len(args) == 1 {
		path = args[0]
	}
	outDir := cfg.Paths.OutputDir
	if o, _ := cmd.Flags().GetString("out"); o != "" {
		outDir = o
	}
	sheet, _ := cmd.Flags().GetBool("xlsx")

	b, err := crossref.ReadFile(path)
	if err != nil {
		return err
	}
	written, err := document.WriteAll(outDir, b, sheet)
	for _, p := range written {
		fmt.Fprintf(os.Stdout, "document: %s\n", p)
	}
	return err
}
