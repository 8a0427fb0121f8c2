// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package document

import (
	"archive/zip"
	"io"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/pdiddy/depositor/internal/crossref"
	"github.com/pdiddy/depositor/internal/source"
)

func deposit() *crossref.DoiBatch {
	return &crossref.DoiBatch{Body: crossref.Body{Journal: crossref.Journal{
		Metadata: crossref.JournalMetadata{
			FullTitle: "Computer systems and network",
			ISSN: []crossref.ISSN{
				{MediaType: crossref.MediaElectronic, Value: "E-ISSN"},
				{MediaType: crossref.MediaPrint, Value: "27072371"},
			},
			DOIData: crossref.DOIData{DOI: "10.23939/csn", Resource: "https://science.lpnu.ua/csn"},
		},
		Issue: crossref.JournalIssue{
			PublicationDate: crossref.PublicationDate{Year: "2024"},
			Volume:          crossref.JournalVolume{Volume: "6"},
			Issue:           "1",
			DOIData:         crossref.DOIData{Resource: "https://science.lpnu.ua/csn/issue-1"},
		},
		Articles: []crossref.JournalArticle{{
			Titles:       crossref.Titles{Title: "NETWORK <MODELLING>"},
			Contributors: &crossref.Contributors{People: []crossref.PersonName{{GivenName: "J.", Surname: "Smith"}}},
			Pages:        crossref.Pages{FirstPage: "1", LastPage: "9"},
			DOIData:      crossref.DOIData{DOI: "10.23939/csn2024.01.001", Resource: "https://science.lpnu.ua/csn/a"},
		}},
	}}}
}

func TestHeaderFrom(t *testing.T) {
	h := HeaderFrom(deposit())
	assert.Equal(t, Header{
		JournalTitle: "Computer systems and network",
		ISSN:         "27072371",
		Volume:       "6",
		Issue:        "1",
		Year:         "2024",
		JournalURL:   "https://science.lpnu.ua/csn",
		IssueURL:     "https://science.lpnu.ua/csn/issue-1",
	}, h)

	empty := HeaderFrom(&crossref.DoiBatch{})
	assert.Equal(t, crossref.NotAvailable, empty.ISSN)
	assert.Equal(t, crossref.NotAvailable, empty.JournalTitle)
}

func documentPart(t *testing.T, path string) string {
	t.Helper()
	zr, err := zip.OpenReader(path)
	require.NoError(t, err)
	defer zr.Close()
	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		require.NoError(t, err)
		defer rc.Close()
		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		return string(data)
	}
	t.Fatalf("%s has no word/document.xml", path)
	return ""
}

func TestWriteContents(t *testing.T) {
	b := deposit()
	path := filepath.Join(t.TempDir(), ContentsFile)
	require.NoError(t, WriteContents(path, HeaderFrom(b), crossref.Rows(b)))

	doc, err := source.NewDocxReader(nil).Read(path)
	require.NoError(t, err)
	texts := doc.Paragraphs.Texts()
	require.Len(t, texts, 2, "table cells are not body paragraphs")
	assert.Equal(t, "ЗМІСТ", texts[0])
	assert.Equal(t, "наукового журналу\n“Computer systems and network”\nВип. 6, №1, 2024 рік", texts[1])

	body := documentPart(t, path)
	assert.Contains(t, body, `<w:tblStyle w:val="TableGrid"/>`)
	assert.Contains(t, body, "Назви статей")
	assert.Contains(t, body, "J. Smith")
	assert.Contains(t, body, "NETWORK &lt;MODELLING&gt;")
}

func TestWriteLetter(t *testing.T) {
	b := deposit()
	path := filepath.Join(t.TempDir(), LetterFile)
	require.NoError(t, WriteLetter(path, HeaderFrom(b), crossref.Rows(b)))

	doc, err := source.NewDocxReader(nil).Read(path)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Computer systems and network",
		"ISSN: 27072371",
		"Volume: 6, Issue: 1, Year: 2024",
		"URL: https://science.lpnu.ua/csn",
		"Contents URL: https://science.lpnu.ua/csn/issue-1",
		"Articles:",
	}, doc.Paragraphs.Texts())

	body := documentPart(t, path)
	assert.Contains(t, body, "Authors, Title, and URL")
	assert.Contains(t, body, "J. Smith. NETWORK &lt;MODELLING&gt;</w:t></w:r><w:r><w:br/><w:t xml:space=\"preserve\">https://science.lpnu.ua/csn/a")
	assert.Contains(t, body, "10.23939/csn2024.01.001")
}

func TestWriteContentsSheet(t *testing.T) {
	b := deposit()
	path := filepath.Join(t.TempDir(), ContentsSheetFile)
	require.NoError(t, WriteContentsSheet(path, HeaderFrom(b), crossref.Rows(b)))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetContents)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, sheetColumns, rows[0])
	assert.Equal(t, []string{"1", "J. Smith", "NETWORK <MODELLING>", "1-9", "https://science.lpnu.ua/csn/a", "10.23939/csn2024.01.001"}, rows[1])

	issn, err := f.GetCellValue(SheetIssue, "B2")
	require.NoError(t, err)
	assert.Equal(t, "27072371", issn)
}

func TestWriteAll(t *testing.T) {
	dir := t.TempDir()
	written, err := WriteAll(dir, deposit(), true)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, ContentsFile),
		filepath.Join(dir, LetterFile),
		filepath.Join(dir, ContentsSheetFile),
	}, written)

	written, err = WriteAll(t.TempDir(), deposit(), false)
	require.NoError(t, err)
	assert.Len(t, written, 2)
}
