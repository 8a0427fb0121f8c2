// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/depositor/internal/extract"
	"github.com/pdiddy/depositor/internal/pipeline"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract article records from the manuscripts",
	Long: `Extract reads the manuscripts in issue order and writes one article
record per document (titles, authors, abstract, references and cumulative
page range) to records.yaml in the output directory. Use --json to print
the records instead.`,
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().Bool("json", false, "print records as JSON instead of writing records.yaml")

	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	jsonOutput, _ := cmd.Flags().GetBool("json")

	opts := pipeline.Options{Config: cfg, Logger: logger, Out: os.Stderr}
	if !jsonOutput {
		opts.Out = os.Stdout
	}
	records, err := pipeline.Extract(cmd.Context(), opts)
	if err != nil {
		return err
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	}
	return extract.WriteRecords(filepath.Join(cfg.Paths.OutputDir, pipeline.RecordsFile), records, time.Now())
}
