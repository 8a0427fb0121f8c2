// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package crossref models the subset of the Crossref 4.4.2 deposit schema
// used for journal issue registration and reads and writes deposit files.
package crossref

import (
	"encoding/xml"
)

// Schema identifiers.
const (
	SchemaVersion = "4.4.2"
	Namespace     = "http://www.crossref.org/schema/4.4.2"
	JATSNamespace = "http://www.ncbi.nlm.nih.gov/JATS1"
	xmlNamespace  = "http://www.w3.org/XML/1998/namespace"
)

// Media types used on issn and publication_date elements.
const (
	MediaPrint      = "print"
	MediaElectronic = "electronic"
)

// DoiBatch is the root of a deposit file.
type DoiBatch struct {
	XMLName xml.Name `xml:"doi_batch"`
	Version string   `xml:"version,attr"`
	Xmlns   string   `xml:"xmlns,attr"`
	JATS    string   `xml:"xmlns:jats,attr,omitempty"`
	Head    Head     `xml:"head"`
	Body    Body     `xml:"body"`
}

// Head carries batch identification and the depositing party.
type Head struct {
	DoiBatchID string    `xml:"doi_batch_id"`
	Timestamp  string    `xml:"timestamp"`
	Depositor  Depositor `xml:"depositor"`
	Registrant string    `xml:"registrant"`
}

type Depositor struct {
	Name  string `xml:"depositor_name"`
	Email string `xml:"email_address"`
}

type Body struct {
	Journal Journal `xml:"journal"`
}

// Journal holds one issue and its articles.
type Journal struct {
	Metadata JournalMetadata  `xml:"journal_metadata"`
	Issue    JournalIssue     `xml:"journal_issue"`
	Articles []JournalArticle `xml:"journal_article"`
}

type JournalMetadata struct {
	FullTitle   string  `xml:"full_title"`
	AbbrevTitle string  `xml:"abbrev_title,omitempty"`
	ISSN        []ISSN  `xml:"issn"`
	DOIData     DOIData `xml:"doi_data"`
}

type ISSN struct {
	MediaType string `xml:"media_type,attr"`
	Value     string `xml:",chardata"`
}

type DOIData struct {
	DOI      string `xml:"doi"`
	Resource string `xml:"resource"`
}

type JournalIssue struct {
	PublicationDate PublicationDate `xml:"publication_date"`
	Volume          JournalVolume   `xml:"journal_volume"`
	Issue           string          `xml:"issue"`
	DOIData         DOIData         `xml:"doi_data"`
}

type PublicationDate struct {
	MediaType string `xml:"media_type,attr"`
	Month     string `xml:"month,omitempty"`
	Year      string `xml:"year"`
}

type JournalVolume struct {
	Volume string `xml:"volume"`
}

// JournalArticle is one registered article.
type JournalArticle struct {
	PublicationType string          `xml:"publication_type,attr"`
	Titles          Titles          `xml:"titles"`
	Contributors    *Contributors   `xml:"contributors,omitempty"`
	Abstract        *Abstract       `xml:"http://www.ncbi.nlm.nih.gov/JATS1 abstract,omitempty"`
	PublicationDate PublicationDate `xml:"publication_date"`
	Pages           Pages           `xml:"pages"`
	DOIData         DOIData         `xml:"doi_data"`
	Citations       *CitationList   `xml:"citation_list,omitempty"`
}

type Titles struct {
	Title                 string `xml:"title"`
	OriginalLanguageTitle string `xml:"original_language_title,omitempty"`
}

type Contributors struct {
	People []PersonName `xml:"person_name"`
}

// Contributor sequence values.
const (
	SequenceFirst      = "first"
	SequenceAdditional = "additional"
)

type PersonName struct {
	Sequence  string `xml:"sequence,attr"`
	Role      string `xml:"contributor_role,attr"`
	GivenName string `xml:"given_name"`
	Surname   string `xml:"surname"`
}

// Abstract is a JATS abstract. It is written with the "jats" prefix bound
// on the root element.
type Abstract struct {
	Lang       string   `xml:"http://www.w3.org/XML/1998/namespace lang,attr,omitempty"`
	Paragraphs []string `xml:"http://www.ncbi.nlm.nih.gov/JATS1 p"`
}

// MarshalXML writes <jats:abstract xml:lang=".."><jats:p>..</jats:p></jats:abstract>.
func (a Abstract) MarshalXML(e *xml.Encoder, _ xml.StartElement) error {
	start := xml.StartElement{Name: xml.Name{Local: "jats:abstract"}}
	if a.Lang != "" {
		start.Attr = append(start.Attr, xml.Attr{Name: xml.Name{Local: "xml:lang"}, Value: a.Lang})
	}
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	p := xml.StartElement{Name: xml.Name{Local: "jats:p"}}
	for _, text := range a.Paragraphs {
		if err := e.EncodeElement(text, p); err != nil {
			return err
		}
	}
	return e.EncodeToken(start.End())
}

type Pages struct {
	FirstPage string `xml:"first_page"`
	LastPage  string `xml:"last_page"`
}

type CitationList struct {
	Citations []Citation `xml:"citation"`
}

type Citation struct {
	Key          string `xml:"key,attr"`
	Unstructured string `xml:"unstructured_citation"`
}
