// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package assemble builds a Crossref deposit from article records and the
// publication settings of one issue.
package assemble

import (
	"fmt"
	"strconv"
	"time"

	"github.com/pdiddy/depositor/internal/crossref"
	"github.com/pdiddy/depositor/pkg/types"
)

// AbstractPlaceholder stands in for an empty abstract.
const AbstractPlaceholder = "Abstract not available."

const (
	batchIDPrefix   = "register_issue_"
	timestampLayout = "20060102150405"
	fullText        = "full_text"
	abstractLang    = "en"
)

// Assemble returns the deposit for batch. Articles keep their input order.
// now fixes the batch id and timestamp.
func Assemble(batch types.RegistrationBatch, now time.Time) *crossref.DoiBatch {
	c := batch.Context
	stamp := now.Format(timestampLayout)

	articles := make([]crossref.JournalArticle, 0, len(batch.Articles))
	for _, rec := range batch.Articles {
		articles = append(articles, Article(c, rec))
	}

	return &crossref.DoiBatch{
		Version: crossref.SchemaVersion,
		Xmlns:   crossref.Namespace,
		JATS:    crossref.JATSNamespace,
		Head: crossref.Head{
			DoiBatchID: batchIDPrefix + stamp,
			Timestamp:  stamp,
			Depositor:  crossref.Depositor{Name: c.DepositorName, Email: c.DepositorEmail},
			Registrant: c.Registrant,
		},
		Body: crossref.Body{Journal: crossref.Journal{
			Metadata: journalMetadata(c),
			Issue:    journalIssue(c),
			Articles: articles,
		}},
	}
}

// Article builds the deposit block for one record.
func Article(c types.PublicationContext, rec types.ArticleRecord) crossref.JournalArticle {
	title := rec.RegistrationTitle()
	a := crossref.JournalArticle{
		PublicationType: fullText,
		Titles:          crossref.Titles{Title: title},
		Abstract:        &crossref.Abstract{Lang: abstractLang, Paragraphs: []string{abstractText(rec.Abstract)}},
		PublicationDate: publicationDate(c),
		Pages: crossref.Pages{
			FirstPage: strconv.Itoa(rec.Pages.Start),
			LastPage:  strconv.Itoa(rec.Pages.End),
		},
		DOIData: crossref.DOIData{
			DOI:      ArticleDOI(c, rec.Pages.Start),
			Resource: ArticleURL(c, title),
		},
	}
	if rec.TitleTranslated != "" {
		a.Titles.OriginalLanguageTitle = rec.TitleOriginal
	}
	if people := ParseContributors(rec.Authors); len(people) > 0 {
		a.Contributors = &crossref.Contributors{People: people}
	}
	if len(rec.References) > 0 {
		list := &crossref.CitationList{Citations: make([]crossref.Citation, len(rec.References))}
		for i, ref := range rec.References {
			list.Citations[i] = crossref.Citation{Key: fmt.Sprintf("ref%d", i+1), Unstructured: ref}
		}
		a.Citations = list
	}
	return a
}

func abstractText(s string) string {
	if s == "" {
		return AbstractPlaceholder
	}
	return s
}

func journalMetadata(c types.PublicationContext) crossref.JournalMetadata {
	m := crossref.JournalMetadata{
		FullTitle:   c.JournalTitle,
		AbbrevTitle: c.AbbrevTitle,
		DOIData:     crossref.DOIData{DOI: c.DOIPrefix, Resource: c.BaseURL},
	}
	if c.ISSNPrint != "" {
		m.ISSN = append(m.ISSN, crossref.ISSN{MediaType: crossref.MediaPrint, Value: c.ISSNPrint})
	}
	if c.ISSNElectronic != "" {
		m.ISSN = append(m.ISSN, crossref.ISSN{MediaType: crossref.MediaElectronic, Value: c.ISSNElectronic})
	}
	return m
}

func journalIssue(c types.PublicationContext) crossref.JournalIssue {
	return crossref.JournalIssue{
		PublicationDate: publicationDate(c),
		Volume:          crossref.JournalVolume{Volume: strconv.Itoa(c.Volume)},
		Issue:           strconv.Itoa(c.Issue),
		DOIData:         crossref.DOIData{DOI: IssueDOI(c), Resource: IssueURL(c)},
	}
}

func publicationDate(c types.PublicationContext) crossref.PublicationDate {
	return crossref.PublicationDate{
		MediaType: crossref.MediaPrint,
		Month:     fmt.Sprintf("%02d", c.Month),
		Year:      strconv.Itoa(c.Year),
	}
}
