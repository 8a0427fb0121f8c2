// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/depositor/internal/pipeline"
	"github.com/pdiddy/depositor/pkg/types"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Extract, assemble and write the Crossref deposit for one issue",
	Long: `Build reads every .docx manuscript in the articles directory in
Ukrainian alphabetical order, extracts article fields, assigns page ranges
and DOIs, and writes the deposit XML, the records checkpoint, the issue
contents and the DOI letter to the output directory.

Page ranges come from the manuscripts' declared page counts unless
--strategy marker-scan is given, in which case they are read from the
merged issue PDF. The deposit is recorded in the history ledger.`,
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().String("strategy", "", "page strategy: cumulative or marker-scan (overrides config)")
	buildCmd.Flags().String("pdf", "", "merged issue PDF for marker-scan (overrides config)")
	buildCmd.Flags().Bool("no-docs", false, "skip the contents and DOI letter documents")
	buildCmd.Flags().Bool("xlsx", false, "also write the contents workbook")
	buildCmd.Flags().Bool("no-ledger", false, "do not record the deposit in the history ledger")

	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if s, _ := cmd.Flags().GetString("strategy"); s != "" {
		if cfg.Pages.Strategy, err = types.ParsePageStrategy(s); err != nil {
			return err
		}
	}
	if p, _ := cmd.Flags().GetString("pdf"); p != "" {
		cfg.Pages.PDFPath = p
	}
	noDocs, _ := cmd.Flags().GetBool("no-docs")
	sheet, _ := cmd.Flags().GetBool("xlsx")
	noLedger, _ := cmd.Flags().GetBool("no-ledger")

	res, err := pipeline.Build(cmd.Context(), pipeline.Options{
		Config:    cfg,
		Logger:    logger,
		Out:       os.Stdout,
		Documents: !noDocs,
		Sheet:     sheet,
		Ledger:    !noLedger,
	})
	if err != nil {
		return err
	}
	if len(res.Conflicts) > 0 {
		fmt.Fprintf(os.Stderr, "warning: %d DOI(s) were registered earlier under another title\n", len(res.Conflicts))
	}
	return nil
}
