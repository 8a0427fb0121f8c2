// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/depositor/internal/ledger"
)

var historyCmd = &cobra.Command{
	Use:   "history [batch-id]",
	Short: "List recorded deposits or the articles of one deposit",
	Long: `History reads the deposit ledger. Without arguments it lists every
recorded deposit, newest first. With a batch id it lists the articles of
that deposit. Use --export to write the whole ledger to YAML or JSON.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().String("export", "", "export the ledger: yaml or json")
	historyCmd.Flags().Bool("json", false, "print results as JSON")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, err := ledger.Open(cfg.Paths.LedgerDir)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := cmd.Context()

	format, _ := cmd.Flags().GetString("export")
	switch format {
	case "":
	case "yaml":
		path, err := store.ExportYAML(ctx)
		if err != nil {
			return err
		}
		fmt.Println("Exported to", path)
		return nil
	case "json":
		path, err := store.ExportJSON(ctx)
		if err != nil {
			return err
		}
		fmt.Println("Exported to", path)
		return nil
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if len(args) == 1 {
		articles, err := store.Articles(ctx, args[0])
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(articles)
		}
		return formatArticles(articles)
	}

	deposits, err := store.History(ctx)
	if err != nil {
		return err
	}
	if jsonOutput {
		return printJSON(deposits)
	}
	return formatDeposits(deposits)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func formatDeposits(deposits []ledger.Deposit) error {
	if len(deposits) == 0 {
		fmt.Println("No deposits recorded.")
		return nil
	}
	fmt.Fprintf(os.Stdout, "%-32s  %-6s  %-5s  %-4s  %-8s  %s\n",
		"Batch", "Volume", "Issue", "Year", "Articles", "Recorded")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 90))
	for _, d := range deposits {
		fmt.Fprintf(os.Stdout, "%-32s  %-6s  %-5s  %-4s  %-8d  %s\n",
			d.BatchID, d.Volume, d.Issue, d.Year, d.Articles, d.RecordedAt.Format("2006-01-02 15:04"))
	}
	fmt.Fprintf(os.Stdout, "\n%d deposits\n", len(deposits))
	return nil
}

func formatArticles(articles []ledger.Article) error {
	if len(articles) == 0 {
		fmt.Println("No articles found.")
		return nil
	}
	for i, a := range articles {
		title := a.Title
		if len([]rune(title)) > 60 {
			title = string([]rune(title)[:57]) + "..."
		}
		fmt.Fprintf(os.Stdout, "%-3d  %-28s  %-9s  %s\n", i+1, a.DOI, a.FirstPage+"-"+a.LastPage, title)
	}
	return nil
}
