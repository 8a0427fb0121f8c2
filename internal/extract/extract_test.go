// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"github.com/pdiddy/depositor/internal/corpus"
	"github.com/pdiddy/depositor/pkg/types"
)

func scenarioDocument(name string) types.Document {
	return types.Document{Name: name, Paragraphs: types.NewParagraphs(scenario), PageCount: 2}
}

func TestExtractFields(t *testing.T) {
	f := ExtractFields(scenarioDocument("a.docx"))

	if f.UkrainianTitle != "ЗАГОЛОВОК" {
		t.Errorf("UkrainianTitle = %q", f.UkrainianTitle)
	}
	if f.EnglishTitle != "Next Title" {
		t.Errorf("EnglishTitle = %q", f.EnglishTitle)
	}
	if f.Authors != "Ivanov I." {
		t.Errorf("Authors = %q", f.Authors)
	}
	if f.UkrainianAuthors != "Ivanov I." {
		t.Errorf("UkrainianAuthors = %q", f.UkrainianAuthors)
	}
	if len(f.References) != 1 || f.References[0] != "Smith J. (2020). pp. 1-5." {
		t.Errorf("References = %q", f.References)
	}
	if len(f.Missing()) != 0 {
		t.Errorf("Missing() = %v, want none", f.Missing())
	}
}

func TestFieldsMissing(t *testing.T) {
	f := ExtractFields(types.Document{Name: "empty.docx", Paragraphs: types.NewParagraphs([]string{"Body"})})
	want := []string{"ukrainian_title", "english_title", "authors", "abstract", "references"}
	if got := f.Missing(); strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("Missing() = %v, want %v", got, want)
	}
}

func TestToRecord(t *testing.T) {
	f := Fields{
		UkrainianTitle: "Моделювання мереж",
		EnglishTitle:   "Network modelling",
		Authors:        "Smith J.",
		Abstract:       "Text.",
		References:     []string{"A 2020"},
	}
	rec := ToRecord("a.docx", f, types.PageRange{Start: 3, End: 9})

	if rec.TitleOriginal != "МОДЕЛЮВАННЯ МЕРЕЖ" {
		t.Errorf("TitleOriginal = %q", rec.TitleOriginal)
	}
	if rec.TitleTranslated != "NETWORK MODELLING" {
		t.Errorf("TitleTranslated = %q", rec.TitleTranslated)
	}
	if rec.Pages != (types.PageRange{Start: 3, End: 9}) {
		t.Errorf("Pages = %v", rec.Pages)
	}

	f.References[0] = "mutated"
	if rec.References[0] != "A 2020" {
		t.Error("record must not share the references slice with fields")
	}
}

func TestExtractAll(t *testing.T) {
	entries := corpus.Paginate([]types.Document{
		scenarioDocument("first.docx"),
		{Name: "second.docx", Paragraphs: types.NewParagraphs([]string{"Body"}), PageCount: 1},
	})

	var log bytes.Buffer
	records, err := ExtractAll(context.Background(), entries, zaptest.NewLogger(t), &log)
	if err != nil {
		t.Fatalf("ExtractAll: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	if records[0].Source != "first.docx" || records[1].Source != "second.docx" {
		t.Errorf("records out of order: %q, %q", records[0].Source, records[1].Source)
	}
	if records[1].Pages != (types.PageRange{Start: 3, End: 3}) {
		t.Errorf("second pages = %v, want 3-3", records[1].Pages)
	}
	if records[1].TitleOriginal != strings.ToUpper(UkrainianTitleNotFound) {
		t.Errorf("missing title should carry the upper-cased placeholder, got %q", records[1].TitleOriginal)
	}
	if !strings.Contains(log.String(), "extracted first.docx (pages 1-2, 1 references)") {
		t.Errorf("status output = %q", log.String())
	}
}

func TestExtractAllCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	entries := corpus.Paginate([]types.Document{scenarioDocument("a.docx")})
	var log bytes.Buffer
	if _, err := ExtractAll(ctx, entries, nil, &log); err != context.Canceled {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestWriteLoadRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "records.yaml")
	records := []types.ArticleRecord{
		{Source: "a.docx", TitleOriginal: "НАЗВА", TitleTranslated: "TITLE", Authors: "Smith J.", Pages: types.PageRange{Start: 1, End: 4}, References: []string{"A 2020", "B 2021"}},
	}
	if err := WriteRecords(path, records, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("WriteRecords: %v", err)
	}

	got, err := LoadRecords(path)
	if err != nil {
		t.Fatalf("LoadRecords: %v", err)
	}
	if len(got) != 1 || got[0].TitleOriginal != "НАЗВА" || got[0].Pages.End != 4 || len(got[0].References) != 2 {
		t.Errorf("LoadRecords() = %+v", got)
	}
}
