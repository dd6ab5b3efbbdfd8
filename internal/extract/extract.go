// Package extract reads the About fields out of a rendered company page.
//
// LinkedIn has served several layouts over time, so each field is looked up
// with a list of strategies tried in order; the first non-empty match wins
// and a field nothing matches resolves to company.Unknown. Lookups never
// fail.
package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"CrawlerLinkedinAbout/internal/company"
)

type Label string

const (
	Website      Label = "Website"
	Phone        Label = "Phone"
	CompanySize  Label = "Company size"
	Headquarters Label = "Headquarters"
)

// Labels are the fields scraped from every About page, in scrape order.
var Labels = []Label{Website, Phone, CompanySize, Headquarters}

// Strategy looks label up in doc. ok is false when the strategy found
// nothing usable.
type Strategy func(doc *goquery.Document, label Label) (value string, ok bool)

// FirstOf returns the first strategy result that succeeds.
func FirstOf(strategies ...Strategy) Strategy {
	return func(doc *goquery.Document, label Label) (string, bool) {
		for _, s := range strategies {
			if v, ok := s(doc, label); ok {
				return v, true
			}
		}
		return "", false
	}
}

var fieldStrategy = FirstOf(DefinitionList, Container, AboutCard)

func Parse(html string) (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(strings.NewReader(html))
}

// Field returns the cleaned value for label or company.Unknown.
func Field(doc *goquery.Document, label Label) string {
	if doc == nil {
		return company.Unknown
	}
	if v, ok := fieldStrategy(doc, label); ok {
		return v
	}
	return company.Unknown
}

// Details resolves every label in Labels.
func Details(doc *goquery.Document) map[Label]string {
	out := make(map[Label]string, len(Labels))
	for _, l := range Labels {
		out[l] = Field(doc, l)
	}
	return out
}

func CompanyName(doc *goquery.Document) string {
	if doc == nil {
		return company.Unknown
	}
	if v := clean(doc.Find(".org-top-card-summary__title").First().Text()); v != "" {
		return v
	}
	return company.Unknown
}

func clean(s string) string {
	s = strings.ReplaceAll(s, "\u00a0", " ")
	return strings.Join(strings.Fields(s), " ")
}
