// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/depositor/internal/crossref"
)

// --- test helpers ---

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func batch(id string, titles ...string) *crossref.DoiBatch {
	b := &crossref.DoiBatch{Head: crossref.Head{DoiBatchID: id, Timestamp: id[len(id)-14:]}}
	b.Body.Journal.Metadata.FullTitle = "Computer systems and network"
	b.Body.Journal.Issue.Volume.Volume = "6"
	b.Body.Journal.Issue.Issue = "1"
	b.Body.Journal.Issue.PublicationDate.Year = "2024"
	for i, title := range titles {
		b.Body.Journal.Articles = append(b.Body.Journal.Articles, crossref.JournalArticle{
			Titles:       crossref.Titles{Title: title},
			Contributors: &crossref.Contributors{People: []crossref.PersonName{{GivenName: "J.", Surname: "Smith"}}},
			Pages:        crossref.Pages{FirstPage: "1", LastPage: "9"},
			DOIData:      crossref.DOIData{DOI: "10.23939/csn2024.01.00" + string(rune('1'+i)), Resource: "https://example.org"},
			Citations:    &crossref.CitationList{Citations: []crossref.Citation{{Key: "ref1"}, {Key: "ref2"}}},
		})
	}
	return b
}

var t0 = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func TestRecordAndHistory(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	if _, err := s.Record(ctx, batch("register_issue_20240601120000", "A", "B"), "out/crossref.xml", t0); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if _, err := s.Record(ctx, batch("register_issue_20240602120000", "C"), "out/crossref.xml", t0.Add(24*time.Hour)); err != nil {
		t.Fatalf("Record: %v", err)
	}

	history, err := s.History(ctx)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("got %d deposits, want 2", len(history))
	}
	if history[0].BatchID != "register_issue_20240602120000" {
		t.Errorf("newest deposit first, got %s", history[0].BatchID)
	}
	if history[1].Articles != 2 || history[1].Journal != "Computer systems and network" {
		t.Errorf("older deposit = %+v", history[1])
	}
	if !history[1].RecordedAt.Equal(t0) {
		t.Errorf("RecordedAt = %v, want %v", history[1].RecordedAt, t0)
	}

	articles, err := s.Articles(ctx, "register_issue_20240601120000")
	if err != nil {
		t.Fatalf("Articles: %v", err)
	}
	if len(articles) != 2 || articles[0].Title != "A" || articles[1].Title != "B" {
		t.Fatalf("articles = %+v", articles)
	}
	if articles[0].References != 2 || len(articles[0].Authors) != 1 || articles[0].Authors[0] != "J. Smith" {
		t.Errorf("article = %+v", articles[0])
	}
}

func TestRecordDuplicateBatch(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	b := batch("register_issue_20240601120000", "A")

	if _, err := s.Record(ctx, b, "x.xml", t0); err != nil {
		t.Fatal(err)
	}
	_, err := s.Record(ctx, b, "x.xml", t0)
	if !errors.Is(err, ErrDuplicateBatch) {
		t.Errorf("err = %v, want ErrDuplicateBatch", err)
	}
}

func TestConflicts(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	if _, err := s.Record(ctx, batch("register_issue_20240601120000", "OLD TITLE", "SAME"), "x.xml", t0); err != nil {
		t.Fatal(err)
	}

	next := batch("register_issue_20240701120000", "NEW TITLE", "SAME", "FRESH")
	conflicts, err := s.Conflicts(ctx, next)
	if err != nil {
		t.Fatalf("Conflicts: %v", err)
	}
	if len(conflicts) != 1 {
		t.Fatalf("got %d conflicts, want 1: %+v", len(conflicts), conflicts)
	}
	c := conflicts[0]
	if c.DOI != "10.23939/csn2024.01.001" || c.PreviousTitle != "OLD TITLE" || c.Title != "NEW TITLE" {
		t.Errorf("conflict = %+v", c)
	}
	if c.PreviousBatch != "register_issue_20240601120000" {
		t.Errorf("PreviousBatch = %s", c.PreviousBatch)
	}
}

func TestExport(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	if _, err := s.Record(ctx, batch("register_issue_20240601120000", "A", "B"), "x.xml", t0); err != nil {
		t.Fatal(err)
	}

	yamlPath, err := s.ExportYAML(ctx)
	if err != nil {
		t.Fatalf("ExportYAML: %v", err)
	}
	data, err := os.ReadFile(yamlPath)
	if err != nil {
		t.Fatal(err)
	}
	var fromYAML []ExportEntry
	if err := yaml.Unmarshal(data, &fromYAML); err != nil {
		t.Fatalf("parsing export.yaml: %v", err)
	}
	if len(fromYAML) != 1 || fromYAML[0].BatchID != "register_issue_20240601120000" || len(fromYAML[0].Articles) != 2 {
		t.Errorf("export.yaml = %+v", fromYAML)
	}
	if len(fromYAML) == 1 && fromYAML[0].Deposit.Articles != 2 {
		t.Errorf("article_count = %d, want 2", fromYAML[0].Deposit.Articles)
	}

	jsonPath, err := s.ExportJSON(ctx)
	if err != nil {
		t.Fatalf("ExportJSON: %v", err)
	}
	data, err = os.ReadFile(jsonPath)
	if err != nil {
		t.Fatal(err)
	}
	var fromJSON []map[string]any
	if err := json.Unmarshal(data, &fromJSON); err != nil {
		t.Fatalf("parsing export.json: %v", err)
	}
	if len(fromJSON) != 1 || fromJSON[0]["batch_id"] != "register_issue_20240601120000" {
		t.Errorf("export.json = %v", fromJSON)
	}
	if len(fromJSON) == 1 {
		if fromJSON[0]["article_count"] != float64(2) {
			t.Errorf("article_count = %v, want 2", fromJSON[0]["article_count"])
		}
		if list, ok := fromJSON[0]["articles"].([]any); !ok || len(list) != 2 {
			t.Errorf("articles = %v", fromJSON[0]["articles"])
		}
	}
}

func TestArticlesCorruptAuthors(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	if _, err := s.Record(ctx, batch("register_issue_20240601120000", "A"), "x.xml", t0); err != nil {
		t.Fatal(err)
	}
	if _, err := s.db.ExecContext(ctx, `UPDATE articles SET authors = '["J. Smith"'`); err != nil {
		t.Fatal(err)
	}

	_, err := s.Articles(ctx, "register_issue_20240601120000")
	if err == nil {
		t.Fatal("expected error for a corrupt authors column")
	}
	if !strings.Contains(err.Error(), "10.23939/csn2024.01.001") {
		t.Errorf("error should name the DOI, got: %v", err)
	}
}

func TestHasBatch(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	id := "register_issue_20240601120000"

	has, err := s.HasBatch(ctx, id)
	if err != nil || has {
		t.Fatalf("HasBatch before Record = %v, %v", has, err)
	}
	if _, err := s.Record(ctx, batch(id, "A"), "x.xml", t0); err != nil {
		t.Fatal(err)
	}
	has, err = s.HasBatch(ctx, id)
	if err != nil || !has {
		t.Fatalf("HasBatch after Record = %v, %v", has, err)
	}
}
