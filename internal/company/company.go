// Package company holds the data model shared by the scraper and the
// dataset: the company reference derived from a slug and the scraped record.
package company

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/purell"
)

const (
	BaseURL = "https://www.linkedin.com"

	// Unknown marks any field that could not be resolved.
	Unknown = "unknown"
)

var ErrEmptySlug = errors.New("company: slug vazio")

// Ref identifies a company. URL is both the navigation target and the
// dataset's deduplication key.
type Ref struct {
	Slug string
	URL  string
}

func NewRef(slug string) (Ref, error) {
	s := strings.ToLower(strings.TrimSpace(slug))
	if s == "" {
		return Ref{}, ErrEmptySlug
	}

	raw := BaseURL + "/company/" + url.PathEscape(s) + "/"
	u, err := purell.NormalizeURLString(raw, purell.FlagLowercaseScheme|
		purell.FlagLowercaseHost|
		purell.FlagRemoveDefaultPort|
		purell.FlagRemoveDuplicateSlashes|
		purell.FlagRemoveDotSegments)
	if err != nil {
		return Ref{}, fmt.Errorf("company: normalizando url de %q: %w", s, err)
	}
	return Ref{Slug: s, URL: u}, nil
}
