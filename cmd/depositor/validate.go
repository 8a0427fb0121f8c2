// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/depositor/internal/source"
	"github.com/pdiddy/depositor/internal/validate"
)

var validateCmd = &cobra.Command{
	Use:   "validate [dir]",
	Short: "Check that every manuscript has the required sections",
	Long: `Validate reads each manuscript in the articles directory and reports
the required section headings it lacks. Headings are compared after
whitespace normalization and with leading section numbers removed.
A YAML file with a "sections" list replaces the built-in headings.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().String("sections", "", "YAML file listing required section headings")

	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	dir := cfg.Paths.ArticlesDir
	if len(args) == 1 {
		dir = args[0]
	}

	sections := validate.RequiredSections
	if p, _ := cmd.Flags().GetString("sections"); p != "" {
		if sections, err = validate.LoadSections(p); err != nil {
			return err
		}
	}

	reports, err := validate.CheckDir(dir, source.NewDocxReader(logger), sections, os.Stdout)
	if err != nil {
		return err
	}
	failed := 0
	for _, r := range reports {
		if !r.OK() {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d manuscript(s) missing required sections", failed)
	}
	return nil
}
