package auth

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var challengeText = regexp.MustCompile(`(?i)Proteger a sua conta|Iniciar desafio|Let's do a quick security check|Start Puzzle`)

// diagnose guesses why the post-login page never showed up. It only feeds
// the log and LoginFailedError.Hint; nothing is retried.
func diagnose(url, html string) string {
	if strings.Contains(url, "/checkpoint/challenge/") {
		return "checkpoint"
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	switch {
	case doc.Find(`iframe[src*="captcha"], iframe[src*="challenge"]`).Length() > 0:
		return "captcha"
	case doc.Find(`input[autocomplete="one-time-code"], input[name*="pin"]`).Length() > 0:
		return "2fa"
	}
	txt := doc.Find(`[data-theme="home.title"], [data-theme="home.verifyButton"], h1, h2`).Text()
	if challengeText.MatchString(txt) {
		return "checkpoint"
	}
	return ""
}
