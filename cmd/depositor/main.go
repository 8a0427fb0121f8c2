// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the depositor CLI. Each pipeline
// stage is a subcommand; build runs them all for one journal issue.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/pdiddy/depositor/internal/assemble"
	"github.com/pdiddy/depositor/internal/pagescan"
	"github.com/pdiddy/depositor/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// logger is built once flags are parsed.
var logger = zap.NewNop()

// rootCmd is the base command for the depositor CLI.
var rootCmd = &cobra.Command{
	Use:   "depositor",
	Short: "Turn journal issue manuscripts into a Crossref deposit",
	Long: `depositor reads the .docx manuscripts of one journal issue, extracts
titles, authors, abstracts and references, assigns page ranges and DOIs,
and writes a Crossref deposit XML file together with the issue contents
and DOI letter documents.

Stages are available as subcommands: extract, render, merge, pages, docs,
validate and history. build runs the full pipeline.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbose, _ := cmd.Flags().GetBool("verbose")
		l, err := newLogger(verbose)
		if err != nil {
			return err
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./depositor.yaml or ~/.config/depositor/depositor.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")
}

func initConfig() {
	// A missing .env is not an error; the environment may already be set.
	_ = godotenv.Load()

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("depositor")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "depositor"))
		}
	}

	setDefaults()

	viper.SetEnvPrefix("DEPOSITOR")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// setDefaults registers every key so AutomaticEnv can resolve it during
// Unmarshal.
func setDefaults() {
	for _, key := range []string{
		"publication.journal_title", "publication.abbrev_title",
		"publication.issn_print", "publication.issn_electronic",
		"publication.doi_prefix", "publication.base_url",
		"publication.depositor_name", "publication.depositor_email",
		"publication.registrant",
		"pages.pdf_path", "render.office_binary",
	} {
		viper.SetDefault(key, "")
	}
	for _, key := range []string{"publication.volume", "publication.issue", "publication.month", "publication.year"} {
		viper.SetDefault(key, 0)
	}
	viper.SetDefault("publication.issues_path", assemble.DefaultIssuesPath)
	viper.SetDefault("pages.strategy", string(types.PagesCumulative))
	viper.SetDefault("pages.marker", pagescan.DefaultMarker)
	viper.SetDefault("paths.articles_dir", "articles")
	viper.SetDefault("paths.output_dir", "output")
	viper.SetDefault("paths.deposit_file", "crossref.xml")
	viper.SetDefault("paths.ledger_dir", "ledger")
	viper.SetDefault("render.pdf_dir", filepath.Join("output", "pdfs"))
}

// loadConfig unmarshals the merged configuration and normalizes the page
// strategy. Publication settings are validated by the stages that need them.
func loadConfig() (types.PipelineConfig, error) {
	var cfg types.PipelineConfig
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("reading configuration: %w", err)
	}
	strategy, err := types.ParsePageStrategy(string(cfg.Pages.Strategy))
	if err != nil {
		return cfg, err
	}
	cfg.Pages.Strategy = strategy
	return cfg, nil
}

func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.DisableStacktrace = true
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	return cfg.Build()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
