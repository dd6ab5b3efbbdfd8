// Package scraper opens a company page, moves to its About tab and builds
// the scraped record.
package scraper

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"CrawlerLinkedinAbout/internal/browser"
	"CrawlerLinkedinAbout/internal/company"
	"CrawlerLinkedinAbout/internal/extract"
)

const aboutLinkSel = `//a[contains(@href,'/about/')]`

// ErrAboutSectionNotFound means the About link never became clickable. No
// partial record is produced.
var ErrAboutSectionNotFound = errors.New("aba About não encontrada")

type Page interface {
	Navigate(ctx context.Context, url string) error
	ClickWhenReady(ctx context.Context, sel string, timeout time.Duration) error
	ScrollToBottom(ctx context.Context) error
	HTML(ctx context.Context) (string, error)
}

type Options struct {
	// Settle runs after opening the page, after the About click and after
	// scrolling. Default: browser.Delay(5s).
	Settle       browser.Settler
	AboutTimeout time.Duration
	// DumpPath, when set, receives the About page HTML used for extraction.
	DumpPath string
	Logger   *slog.Logger
}

type Scraper struct {
	page Page
	opts Options
}

func New(p Page, opts Options) *Scraper {
	if opts.Settle == nil {
		opts.Settle = browser.Delay(5 * time.Second)
	}
	if opts.AboutTimeout <= 0 {
		opts.AboutTimeout = 10 * time.Second
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Scraper{page: p, opts: opts}
}

// ScrapeAbout returns the About record of the company at url, or
// ErrAboutSectionNotFound when the About tab can't be reached.
func (s *Scraper) ScrapeAbout(ctx context.Context, url string) (*company.Record, error) {
	log := s.opts.Logger.With("url", url)

	log.Info("🔎 Abrindo página da empresa")
	if err := s.page.Navigate(ctx, url); err != nil {
		return nil, fmt.Errorf("abrindo %s: %w", url, err)
	}
	if err := s.opts.Settle.Settle(ctx); err != nil {
		return nil, err
	}

	if err := s.page.ClickWhenReady(ctx, aboutLinkSel, s.opts.AboutTimeout); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		log.Warn("⚠️ Aba About não encontrada", "err", err)
		return nil, fmt.Errorf("%w: %v", ErrAboutSectionNotFound, err)
	}

	if err := s.opts.Settle.Settle(ctx); err != nil {
		return nil, err
	}
	// forces lazy sections to load
	if err := s.page.ScrollToBottom(ctx); err != nil {
		log.Warn("rolagem falhou", "err", err)
	}
	if err := s.opts.Settle.Settle(ctx); err != nil {
		return nil, err
	}

	rec := company.NewRecord(url)

	html, err := s.snapshot(ctx, log)
	if err != nil {
		log.Warn("lendo html da página; campos ficam unknown", "err", err)
		return &rec, nil
	}
	doc, err := extract.Parse(html)
	if err != nil {
		log.Warn("parse do html; campos ficam unknown", "err", err)
		return &rec, nil
	}

	fields := extract.Details(doc)
	rec.Name = extract.CompanyName(doc)
	rec.Website = fields[extract.Website]
	rec.Phone = extract.NormalizePhone(fields[extract.Phone])
	rec.CompanySize = fields[extract.CompanySize]
	rec.Headquarters = fields[extract.Headquarters]

	log.Info("📦 Dados extraídos", "company", rec.Name, "website", rec.Website, "phone", rec.Phone)
	return &rec, nil
}

func (s *Scraper) snapshot(ctx context.Context, log *slog.Logger) (string, error) {
	if s.opts.DumpPath == "" {
		return s.page.HTML(ctx)
	}
	html, err := browser.DumpHTML(ctx, s.page, s.opts.DumpPath)
	if err != nil {
		log.Warn("dump html falhou", "path", s.opts.DumpPath, "err", err)
		return s.page.HTML(ctx)
	}
	log.Info("📝 HTML salvo", "path", s.opts.DumpPath)
	return html, nil
}
