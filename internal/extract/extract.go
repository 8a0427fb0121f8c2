// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/depositor/internal/corpus"
	"github.com/pdiddy/depositor/internal/output"
	"github.com/pdiddy/depositor/pkg/types"
)

// Fields holds every value recovered from one manuscript.
type Fields struct {
	UkrainianTitle   string   `json:"ukrainian_title" yaml:"ukrainian_title"`
	EnglishTitle     string   `json:"english_title" yaml:"english_title"`
	Authors          string   `json:"authors" yaml:"authors"`
	UkrainianAuthors string   `json:"ukrainian_authors" yaml:"ukrainian_authors"`
	Abstract         string   `json:"abstract" yaml:"abstract"`
	References       []string `json:"references" yaml:"references"`
}

// ExtractFields runs all heuristics over one document. The English title
// depends on the bibliography; the other heuristics are independent.
func ExtractFields(doc types.Document) Fields {
	ps := doc.Paragraphs.Texts()
	refs := Bibliography(ps)
	return Fields{
		UkrainianTitle:   UkrainianTitle(ps),
		EnglishTitle:     EnglishTitle(ps, refs),
		Authors:          Authors(ps, false),
		UkrainianAuthors: Authors(ps, true),
		Abstract:         Abstract(ps),
		References:       refs,
	}
}

// Missing lists the fields that fell back to their "not found" value.
func (f Fields) Missing() []string {
	var missing []string
	if f.UkrainianTitle == UkrainianTitleNotFound {
		missing = append(missing, "ukrainian_title")
	}
	if f.EnglishTitle == EnglishTitleNotFound {
		missing = append(missing, "english_title")
	}
	if f.Authors == AuthorsNotFound {
		missing = append(missing, "authors")
	}
	if f.Abstract == AbstractNotFound {
		missing = append(missing, "abstract")
	}
	if len(f.References) == 0 {
		missing = append(missing, "references")
	}
	return missing
}

// ToRecord builds the article record for a document. Titles are registered
// in upper case.
func ToRecord(source string, f Fields, pages types.PageRange) types.ArticleRecord {
	refs := make([]string, len(f.References))
	copy(refs, f.References)
	return types.ArticleRecord{
		Source:          source,
		TitleOriginal:   strings.ToUpper(f.UkrainianTitle),
		TitleTranslated: strings.ToUpper(f.EnglishTitle),
		Authors:         f.Authors,
		Pages:           pages,
		References:      refs,
		Abstract:        f.Abstract,
	}
}

// ExtractAll extracts a record from every ordered corpus entry, writing one
// status line per document to w. Records keep corpus order.
func ExtractAll(ctx context.Context, entries []corpus.Entry, logger *zap.Logger, w io.Writer) ([]types.ArticleRecord, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	records := make([]types.ArticleRecord, 0, len(entries))
	for _, e := range entries {
		select {
		case <-ctx.Done():
			return records, ctx.Err()
		default:
		}

		f := ExtractFields(e.Document)
		if missing := f.Missing(); len(missing) > 0 {
			logger.Debug("fields not found",
				zap.String("file", e.Document.Name), zap.Strings("fields", missing))
		}
		records = append(records, ToRecord(e.Document.Name, f, e.Pages))
		fmt.Fprintf(w, "extracted %s (pages %s, %d references)\n", e.Document.Name, e.Pages, len(f.References))
	}
	return records, nil
}

// RecordsFile is the YAML checkpoint of an extraction run.
type RecordsFile struct {
	GeneratedAt time.Time             `json:"generated_at" yaml:"generated_at"`
	Articles    []types.ArticleRecord `json:"articles" yaml:"articles"`
}

// WriteRecords writes records to path as YAML, creating parent directories.
func WriteRecords(path string, records []types.ArticleRecord, now time.Time) error {
	data, err := yaml.Marshal(RecordsFile{GeneratedAt: now.UTC(), Articles: records})
	if err != nil {
		return fmt.Errorf("marshaling records: %w", err)
	}
	if err := output.WriteBytes(path, data); err != nil {
		return fmt.Errorf("writing records: %w", err)
	}
	return nil
}

// LoadRecords reads a records checkpoint written by WriteRecords.
func LoadRecords(path string) ([]types.ArticleRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading records %s: %w", path, err)
	}
	var rf RecordsFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("parsing records %s: %w", path, err)
	}
	return rf.Articles, nil
}
