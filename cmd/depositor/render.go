// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/depositor/internal/convert"
	"github.com/pdiddy/depositor/internal/office"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the manuscripts to PDF with LibreOffice",
	Long: `Render converts every .docx manuscript in the articles directory to
PDF using a headless LibreOffice. Documents that already have a PDF in the
output directory are skipped.`,
	RunE: runRender,
}

func init() {
	renderCmd.Flags().String("out", "", "PDF output directory (overrides config)")

	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	outDir := cfg.Render.PDFDir
	if o, _ := cmd.Flags().GetString("out"); o != "" {
		outDir = o
	}

	rt, err := office.Detect(cfg.Render.OfficeBinary)
	if err != nil {
		return err
	}
	logger.Debug("office runtime detected")

	result, err := convert.ConvertDir(convert.NewOfficeConverter(rt), cfg.Paths.ArticlesDir, outDir, os.Stdout)
	if err != nil {
		return err
	}
	if result.HasFailures() {
		return fmt.Errorf("%d document(s) failed rendering", result.Failed)
	}
	return nil
}
