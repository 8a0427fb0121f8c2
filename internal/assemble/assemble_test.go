// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package assemble

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/depositor/internal/crossref"
	"github.com/pdiddy/depositor/pkg/types"
)

func publication() types.PublicationContext {
	return types.PublicationContext{
		JournalTitle:   "Computer systems and network",
		AbbrevTitle:    "CSN",
		ISSNPrint:      "27072371",
		ISSNElectronic: "27072371",
		DOIPrefix:      "10.23939/csn",
		BaseURL:        "https://science.lpnu.ua/csn",
		Volume:         6,
		Issue:          1,
		Month:          6,
		Year:           2024,
		DepositorName:  "depositor",
		DepositorEmail: "depositor@example.org",
		Registrant:     "Lviv Polytechnic",
	}
}

func TestParseContributors(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []crossref.PersonName
	}{
		{
			name: "two authors",
			raw:  "Smith J., Doe A.B.",
			want: []crossref.PersonName{
				{Sequence: "first", Role: "author", GivenName: "J.", Surname: "Smith"},
				{Sequence: "additional", Role: "author", GivenName: "A.B.", Surname: "Doe"},
			},
		},
		{
			name: "multi token given name",
			raw:  "Ivanov I. I.",
			want: []crossref.PersonName{{Sequence: "first", Role: "author", GivenName: "I. I.", Surname: "Ivanov"}},
		},
		{
			name: "digits removed from given name",
			raw:  "Smith J.1",
			want: []crossref.PersonName{{Sequence: "first", Role: "author", GivenName: "J.", Surname: "Smith"}},
		},
		{
			name: "dropped first entry leaves no first author",
			raw:  "Smith, Doe A.",
			want: []crossref.PersonName{{Sequence: "additional", Role: "author", GivenName: "A.", Surname: "Doe"}},
		},
		{
			name: "given name of only digits dropped",
			raw:  "Smith 12, Doe A.",
			want: []crossref.PersonName{{Sequence: "additional", Role: "author", GivenName: "A.", Surname: "Doe"}},
		},
		{name: "empty", raw: "", want: nil},
		{name: "not found placeholder", raw: "Authors not found.", want: []crossref.PersonName{
			{Sequence: "first", Role: "author", GivenName: "not found.", Surname: "Authors"},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseContributors(tt.raw))
		})
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Overview of Security-Orchestration, Automation, and Response (SOAR)", "overview-of-security-orchestration-automation-and-response-soar"},
		{"Privacy-preserving: k-anonymity, l-diversity, & t-closeness!", "privacy-preserving-k-anonymity-l-diversity-t-closeness"},
		{"BUILDING UAV SYSTEMS: A.I. & BLOCKCHAIN APPROACHES", "building-uav-systems-ai-blockchain-approaches"},
		{"МОДЕЛЮВАННЯ МЕРЕЖ", ""},
		{"  --Edge -- case--  ", "edge-case"},
		{"", ""},
	}
	valid := regexp.MustCompile(`^([a-z0-9]+(-[a-z0-9]+)*)?$`)
	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			got := Slugify(tt.title)
			assert.Equal(t, tt.want, got)
			assert.Regexp(t, valid, got)
			assert.Equal(t, got, Slugify(got), "slugify must be idempotent")
		})
	}
}

func TestIdentifiers(t *testing.T) {
	c := publication()
	assert.Equal(t, "10.23939/csn2024.01", IssueDOI(c))
	assert.Equal(t, "10.23939/csn2024.01.007", ArticleDOI(c, 7))
	assert.Equal(t, "https://science.lpnu.ua/csn/all-volumes-and-issues/volume-6-number-1-2024", IssueURL(c))
	assert.Equal(t,
		"https://science.lpnu.ua/csn/all-volumes-and-issues/volume-6-number-1-2024/network-modelling",
		ArticleURL(c, "NETWORK MODELLING"))

	c.BaseURL = "https://example.org/j/"
	c.IssuesPath = "/issues/"
	assert.Equal(t, "https://example.org/j/issues/volume-6-number-1-2024", IssueURL(c))
}

func TestAssemble(t *testing.T) {
	now := time.Date(2024, 6, 15, 9, 30, 5, 0, time.UTC)
	batch := types.RegistrationBatch{
		Context: publication(),
		Articles: []types.ArticleRecord{
			{
				TitleOriginal:   "МОДЕЛЮВАННЯ МЕРЕЖ",
				TitleTranslated: "NETWORK MODELLING",
				Authors:         "Smith J., Doe A.B.",
				Pages:           types.PageRange{Start: 1, End: 9},
				References:      []string{"A 2020", "B 2021"},
				Abstract:        "An abstract.",
			},
			{
				TitleOriginal: "ЛИШЕ УКРАЇНСЬКА",
				Authors:       "Authorless",
				Pages:         types.PageRange{Start: 10, End: 12},
			},
		},
	}

	b := Assemble(batch, now)

	assert.Equal(t, "register_issue_20240615093005", b.Head.DoiBatchID)
	assert.Equal(t, "20240615093005", b.Head.Timestamp)
	assert.Equal(t, "Lviv Polytechnic", b.Head.Registrant)
	assert.Equal(t, "4.4.2", b.Version)

	j := b.Body.Journal
	assert.Equal(t, "Computer systems and network", j.Metadata.FullTitle)
	assert.Len(t, j.Metadata.ISSN, 2)
	assert.Equal(t, "10.23939/csn2024.01", j.Issue.DOIData.DOI)
	assert.Equal(t, "06", j.Issue.PublicationDate.Month)
	require.Len(t, j.Articles, 2)

	first := j.Articles[0]
	assert.Equal(t, "NETWORK MODELLING", first.Titles.Title)
	assert.Equal(t, "МОДЕЛЮВАННЯ МЕРЕЖ", first.Titles.OriginalLanguageTitle)
	require.NotNil(t, first.Contributors)
	assert.Len(t, first.Contributors.People, 2)
	assert.Equal(t, []string{"An abstract."}, first.Abstract.Paragraphs)
	assert.Equal(t, "10.23939/csn2024.01.001", first.DOIData.DOI)
	assert.Equal(t, crossref.Pages{FirstPage: "1", LastPage: "9"}, first.Pages)
	require.NotNil(t, first.Citations)
	assert.Equal(t, []crossref.Citation{{Key: "ref1", Unstructured: "A 2020"}, {Key: "ref2", Unstructured: "B 2021"}}, first.Citations.Citations)

	second := j.Articles[1]
	assert.Equal(t, "ЛИШЕ УКРАЇНСЬКА", second.Titles.Title)
	assert.Empty(t, second.Titles.OriginalLanguageTitle)
	assert.Nil(t, second.Contributors, "single-token author line yields no contributors")
	assert.Equal(t, []string{AbstractPlaceholder}, second.Abstract.Paragraphs)
	assert.Nil(t, second.Citations)
	assert.Equal(t, "10.23939/csn2024.01.010", second.DOIData.DOI)
	assert.Equal(t, IssueURL(batch.Context)+"/", second.DOIData.Resource)
}
