// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package document renders the issue contents and the DOI cover letter from
// a deposit.
package document

import (
	"strings"

	"github.com/pdiddy/depositor/internal/crossref"
)

// Header carries the journal and issue facts printed above the article table.
type Header struct {
	JournalTitle string
	ISSN         string
	Volume       string
	Issue        string
	Year         string
	JournalURL   string
	IssueURL     string
}

// HeaderFrom reads the header out of a deposit. The print ISSN is used;
// absent values become crossref.NotAvailable.
func HeaderFrom(b *crossref.DoiBatch) Header {
	j := b.Body.Journal
	issn := ""
	for _, n := range j.Metadata.ISSN {
		if n.MediaType == crossref.MediaPrint {
			issn = n.Value
			break
		}
	}
	return Header{
		JournalTitle: orNA(j.Metadata.FullTitle),
		ISSN:         orNA(issn),
		Volume:       orNA(j.Issue.Volume.Volume),
		Issue:        orNA(j.Issue.Issue),
		Year:         orNA(j.Issue.PublicationDate.Year),
		JournalURL:   orNA(j.Metadata.DOIData.Resource),
		IssueURL:     orNA(j.Issue.DOIData.Resource),
	}
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return crossref.NotAvailable
	}
	return s
}
