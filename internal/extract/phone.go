package extract

import (
	"regexp"

	"github.com/nyaruka/phonenumbers"

	"CrawlerLinkedinAbout/internal/company"
)

var phoneRun = regexp.MustCompile(`\d{10,}`)

// NormalizePhone keeps the first run of ten or more digits. Shorter or
// split-up numbers become company.Unknown.
func NormalizePhone(raw string) string {
	if m := phoneRun.FindString(raw); m != "" {
		return m
	}
	return company.Unknown
}

// FormatE164 formats a normalized phone for display. region is the ISO
// country assumed when the digits carry no country code.
func FormatE164(digits, region string) (string, bool) {
	if digits == "" || digits == company.Unknown {
		return "", false
	}
	num, err := phonenumbers.Parse(digits, region)
	if err != nil || !phonenumbers.IsValidNumber(num) {
		return "", false
	}
	return phonenumbers.Format(num, phonenumbers.E164), true
}
