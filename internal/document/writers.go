// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package document

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/pdiddy/depositor/internal/crossref"
	"github.com/pdiddy/depositor/internal/output"
)

// Default output file names.
const (
	ContentsFile      = "contents_eng.docx"
	LetterFile        = "doi_letter.docx"
	ContentsSheetFile = "contents.xlsx"
)

// WriteContents writes the issue table of contents: a title, the journal
// and issue line and a three-column article table.
func WriteContents(path string, h Header, rows []crossref.ArticleRow) error {
	var d docx
	d.paragraph(styleTitle, "ЗМІСТ")
	d.paragraph(styleNormal, fmt.Sprintf("наукового журналу\n“%s”\nВип. %s, №%s, %s рік", h.JournalTitle, h.Volume, h.Issue, h.Year))
	d.paragraph(styleNormal, "")

	cells := make([][]string, len(rows))
	for i, r := range rows {
		cells[i] = []string{strconv.Itoa(r.Index), r.Authors, r.Title}
	}
	d.table([]string{"№", "Автори", "Назви статей"}, cells)

	if err := d.save(path); err != nil {
		return fmt.Errorf("writing contents: %w", err)
	}
	return nil
}

// WriteLetter writes the DOI cover letter: journal heading, ISSN, issue
// line, URLs and a four-column article table.
func WriteLetter(path string, h Header, rows []crossref.ArticleRow) error {
	var d docx
	d.paragraph(styleHeading1, h.JournalTitle)
	d.paragraph(styleNormal, "ISSN: "+h.ISSN)
	d.paragraph(styleNormal, fmt.Sprintf("Volume: %s, Issue: %s, Year: %s", h.Volume, h.Issue, h.Year))
	d.paragraph(styleNormal, "URL: "+h.JournalURL)
	d.paragraph(styleNormal, "Contents URL: "+h.IssueURL)
	d.paragraph(styleNormal, "Articles:")

	cells := make([][]string, len(rows))
	for i, r := range rows {
		cells[i] = []string{
			strconv.Itoa(r.Index),
			fmt.Sprintf("%s. %s\n%s", r.Authors, r.Title, r.URL),
			r.Pages,
			r.DOI,
		}
	}
	d.table([]string{"№", "Authors, Title, and URL", "Pages", "DOI"}, cells)

	if err := d.save(path); err != nil {
		return fmt.Errorf("writing DOI letter: %w", err)
	}
	return nil
}

// Sheet names of the contents workbook.
const (
	SheetContents = "Contents"
	SheetIssue    = "Issue"
)

var sheetColumns = []string{"№", "Authors", "Title", "Pages", "URL", "DOI"}

// WriteContentsSheet writes the full article rows and the issue header to
// an xlsx workbook.
func WriteContentsSheet(path string, h Header, rows []crossref.ArticleRow) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetContents); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}

	for col, name := range sheetColumns {
		if err := setCell(f, SheetContents, col+1, 1, name); err != nil {
			return err
		}
	}
	if err := f.SetRowStyle(SheetContents, 1, 1, bold); err != nil {
		return fmt.Errorf("styling header: %w", err)
	}
	for i, r := range rows {
		values := []any{r.Index, r.Authors, r.Title, r.Pages, r.URL, r.DOI}
		for col, v := range values {
			if err := setCell(f, SheetContents, col+1, i+2, v); err != nil {
				return err
			}
		}
	}
	if err := f.SetColWidth(SheetContents, "B", "C", 60); err != nil {
		return fmt.Errorf("sizing columns: %w", err)
	}

	if _, err := f.NewSheet(SheetIssue); err != nil {
		return fmt.Errorf("adding issue sheet: %w", err)
	}
	facts := [][2]string{
		{"Journal", h.JournalTitle},
		{"ISSN", h.ISSN},
		{"Volume", h.Volume},
		{"Issue", h.Issue},
		{"Year", h.Year},
		{"URL", h.JournalURL},
		{"Contents URL", h.IssueURL},
	}
	for i, kv := range facts {
		if err := setCell(f, SheetIssue, 1, i+1, kv[0]); err != nil {
			return err
		}
		if err := setCell(f, SheetIssue, 2, i+1, kv[1]); err != nil {
			return err
		}
	}

	return output.WriteFile(path, func(w io.Writer) error {
		_, err := f.WriteTo(w)
		return err
	})
}

func setCell(f *excelize.File, sheet string, col, row int, v any) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	if err := f.SetCellValue(sheet, cell, v); err != nil {
		return fmt.Errorf("setting %s!%s: %w", sheet, cell, err)
	}
	return nil
}

type writer func(path string, h Header, rows []crossref.ArticleRow) error

// WriteAll renders the contents and the letter, plus the workbook when
// sheet is set, into dir. It returns the written paths.
func WriteAll(dir string, b *crossref.DoiBatch, sheet bool) ([]string, error) {
	h := HeaderFrom(b)
	rows := crossref.Rows(b)

	names := []string{ContentsFile, LetterFile}
	writers := []writer{WriteContents, WriteLetter}
	if sheet {
		names = append(names, ContentsSheetFile)
		writers = append(writers, WriteContentsSheet)
	}

	var written []string
	for i, write := range writers {
		path := filepath.Join(dir, names[i])
		if err := write(path, h, rows); err != nil {
			return written, err
		}
		written = append(written, path)
	}
	return written, nil
}
