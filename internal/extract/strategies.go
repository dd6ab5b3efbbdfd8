package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// DefinitionList matches a <dt> whose text equals the label exactly and
// reads the first <dd> after it.
func DefinitionList(doc *goquery.Document, label Label) (string, bool) {
	var (
		value string
		found bool
	)
	doc.Find("dt").EachWithBreak(func(_ int, dt *goquery.Selection) bool {
		if clean(dt.Text()) != string(label) {
			return true
		}
		value = clean(dt.NextAllFiltered("dd").First().Text())
		found = value != ""
		return false
	})
	return value, found
}

// Container matches the first <div> whose own text contains the label and
// reads the next <div> sibling. Other elements are never candidates, so nav
// links and hidden payloads in <code> or <script> don't compete.
func Container(doc *goquery.Document, label Label) (string, bool) {
	var (
		value string
		found bool
	)
	doc.Find("body div").EachWithBreak(func(_ int, el *goquery.Selection) bool {
		if !strings.Contains(ownText(el), string(label)) {
			return true
		}
		if v := clean(el.NextAllFiltered("div").First().Text()); v != "" {
			value, found = v, true
			return false
		}
		return true
	})
	return value, found
}

// AboutCard looks only inside the About card, matching definition terms by
// case-insensitive substring.
func AboutCard(doc *goquery.Document, label Label) (string, bool) {
	want := strings.ToLower(string(label))

	cards := doc.Find("section.artdeco-card").FilterFunction(func(_ int, s *goquery.Selection) bool {
		return s.Find("h2").FilterFunction(func(_ int, h *goquery.Selection) bool {
			return strings.Contains(h.Text(), "About")
		}).Length() > 0
	})

	var (
		value string
		found bool
	)
	cards.Find("div.org-page-details__definition-term").EachWithBreak(func(_ int, term *goquery.Selection) bool {
		if !strings.Contains(strings.ToLower(clean(term.Text())), want) {
			return true
		}
		if v := clean(term.NextAllFiltered("div").First().Text()); v != "" {
			value, found = v, true
		}
		return false
	})
	return value, found
}

// ownText joins the element's direct text nodes, ignoring descendants.
func ownText(s *goquery.Selection) string {
	return clean(s.Contents().FilterFunction(func(_ int, c *goquery.Selection) bool {
		return goquery.NodeName(c) == "#text"
	}).Text())
}
