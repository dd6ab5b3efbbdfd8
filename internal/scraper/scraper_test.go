package scraper

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"CrawlerLinkedinAbout/internal/browser"
	"CrawlerLinkedinAbout/internal/browser/browsertest"
	"CrawlerLinkedinAbout/internal/company"
)

const hcltechURL = "https://www.linkedin.com/company/hcltech/"

func aboutHTML(t *testing.T) string {
	t.Helper()
	b, err := os.ReadFile(filepath.Join("..", "extract", "testdata", "about_dl.html"))
	if err != nil {
		t.Fatal(err)
	}
	return string(b)
}

func newScraper(p Page) *Scraper {
	return New(p, Options{Settle: browser.Delay(0)})
}

func TestScrapeAbout_HCLTech(t *testing.T) {
	p := &browsertest.Page{
		Present:    map[string]bool{aboutLinkSel: true},
		Pages:      map[string]string{hcltechURL: "<html><body><a href='/company/hcltech/about/'>About</a></body></html>"},
		AfterClick: map[string]string{aboutLinkSel: aboutHTML(t)},
	}

	rec, err := newScraper(p).ScrapeAbout(context.Background(), hcltechURL)
	if err != nil {
		t.Fatalf("ScrapeAbout: %v", err)
	}

	want := company.Record{
		Name:         "HCLTech",
		Website:      "hcltech.com",
		Phone:        "1234567890",
		CompanySize:  "10,001+ employees",
		Headquarters: "Noida, Uttar Pradesh",
		URL:          hcltechURL,
	}
	if *rec != want {
		t.Errorf("record = %+v\nwant     %+v", *rec, want)
	}

	calls := p.Calls()
	wantCalls := []string{"navigate " + hcltechURL, "click " + aboutLinkSel, "scroll"}
	if !slices.Equal(calls, wantCalls) {
		t.Errorf("calls = %v", calls)
	}
}

func TestScrapeAbout_DumpsAboutPage(t *testing.T) {
	about := aboutHTML(t)
	p := &browsertest.Page{
		Present:    map[string]bool{aboutLinkSel: true},
		Pages:      map[string]string{hcltechURL: "<html><body><a href='/company/hcltech/about/'>About</a></body></html>"},
		AfterClick: map[string]string{aboutLinkSel: about},
	}
	path := filepath.Join(t.TempDir(), "debug", "about_page.html")

	rec, err := New(p, Options{Settle: browser.Delay(0), DumpPath: path}).ScrapeAbout(context.Background(), hcltechURL)
	if err != nil {
		t.Fatalf("ScrapeAbout: %v", err)
	}
	if rec.Website != "hcltech.com" {
		t.Errorf("Website = %q", rec.Website)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("dump not written: %v", err)
	}
	if string(b) != about {
		t.Error("dump does not hold the About page markup")
	}
}

func TestScrapeAbout_NoAboutLink(t *testing.T) {
	p := &browsertest.Page{
		Pages: map[string]string{hcltechURL: "<html><body>Page not found</body></html>"},
	}

	rec, err := newScraper(p).ScrapeAbout(context.Background(), hcltechURL)
	if rec != nil {
		t.Errorf("expected nil record, got %+v", rec)
	}
	if !errors.Is(err, ErrAboutSectionNotFound) {
		t.Fatalf("err = %v, want ErrAboutSectionNotFound", err)
	}
	for _, c := range p.Calls() {
		if c == "scroll" {
			t.Error("must stop before scrolling")
		}
	}
}

func TestScrapeAbout_HTMLFailureDegrades(t *testing.T) {
	p := &browsertest.Page{
		Present: map[string]bool{aboutLinkSel: true},
		HTMLErr: errors.New("target closed"),
	}

	rec, err := newScraper(p).ScrapeAbout(context.Background(), hcltechURL)
	if err != nil {
		t.Fatalf("ScrapeAbout: %v", err)
	}
	if *rec != company.NewRecord(hcltechURL) {
		t.Errorf("record = %+v, want all unknown", *rec)
	}
}

func TestScrapeAbout_NavigateError(t *testing.T) {
	boom := errors.New("net::ERR_CONNECTION_RESET")
	p := &browsertest.Page{NavigateErr: boom}

	rec, err := newScraper(p).ScrapeAbout(context.Background(), hcltechURL)
	if rec != nil || !errors.Is(err, boom) {
		t.Fatalf("rec=%v err=%v", rec, err)
	}
	if errors.Is(err, ErrAboutSectionNotFound) {
		t.Error("navigation failure is not AboutSectionNotFound")
	}
}

func TestScrapeAbout_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p := &browsertest.Page{Present: map[string]bool{aboutLinkSel: true}}

	_, err := New(p, Options{Settle: browser.Delay(0)}).ScrapeAbout(ctx, hcltechURL)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestScrapeAbout_PhoneWithoutLongRun(t *testing.T) {
	html := `<html><body><dl>
<dt>Website</dt><dd>acme.io</dd>
<dt>Phone</dt><dd>+1 (415) 555-0100</dd>
</dl></body></html>`
	p := &browsertest.Page{
		Present:    map[string]bool{aboutLinkSel: true},
		AfterClick: map[string]string{aboutLinkSel: html},
	}
	rec, err := newScraper(p).ScrapeAbout(context.Background(), "https://www.linkedin.com/company/acme/")
	if err != nil {
		t.Fatal(err)
	}
	if rec.Phone != company.Unknown {
		t.Errorf("phone = %q, want unknown", rec.Phone)
	}
	if rec.Website != "acme.io" || rec.Name != company.Unknown || rec.CompanySize != company.Unknown {
		t.Errorf("record = %+v", *rec)
	}
}
