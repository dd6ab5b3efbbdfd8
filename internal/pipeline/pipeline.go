// Package pipeline runs one scrape end to end: session, login, About page,
// dataset upsert.
package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"

	"CrawlerLinkedinAbout/internal/auth"
	"CrawlerLinkedinAbout/internal/browser"
	"CrawlerLinkedinAbout/internal/company"
	"CrawlerLinkedinAbout/internal/config"
	"CrawlerLinkedinAbout/internal/dataset"
	"CrawlerLinkedinAbout/internal/scraper"
)

// Page is everything the pipeline needs from a browser tab.
type Page interface {
	auth.Page
	scraper.Page
	DocumentReady(ctx context.Context) bool
	Close()
}

type SessionFactory func(ctx context.Context) (Page, error)

// ChromeSessions opens a real Chrome tab configured from cfg.
func ChromeSessions(cfg *config.Config, log *slog.Logger) SessionFactory {
	return func(ctx context.Context) (Page, error) {
		s, err := browser.NewSession(ctx, browser.Options{
			Headless:  cfg.Browser.Headless,
			ExecPath:  cfg.Browser.ExecPath,
			UserAgent: cfg.Browser.UserAgent,
			Stealth:   cfg.Browser.Stealth,
			Logger:    log,
		})
		if err != nil {
			return nil, err
		}
		return s, nil
	}
}

const (
	StageSession = "session"
	StageLogin   = "login"
	StageScrape  = "scrape"
	StageSave    = "save"
	StageDone    = "done"
)

type Event struct {
	RunID string
	Stage string
	Msg   string
}

type Options struct {
	// Sessions defaults to ChromeSessions.
	Sessions SessionFactory
	// Settle overrides the settle behaviour from the config.
	Settle browser.Settler
	// DumpPath, when set, receives the HTML of the About page.
	DumpPath string
	OnEvent  func(Event)
	Logger   *slog.Logger
}

type Result struct {
	RunID   string
	Ref     company.Ref
	Record  *company.Record
	Dataset dataset.Table
}

// Run scrapes slug and upserts the record into cfg.Output.CSVPath. When the
// About tab is missing it returns scraper.ErrAboutSectionNotFound and writes
// nothing. On a *dataset.PersistenceError the result still carries the
// record.
func Run(ctx context.Context, cfg *config.Config, slug string, opts Options) (Result, error) {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}

	res := Result{RunID: uuid.NewString()}
	log = log.With("run", res.RunID)
	emit := func(stage, msg string) {
		if opts.OnEvent != nil {
			opts.OnEvent(Event{RunID: res.RunID, Stage: stage, Msg: msg})
		}
	}

	ref, err := company.NewRef(slug)
	if err != nil {
		return res, err
	}
	res.Ref = ref
	log = log.With("company", ref.Slug)

	sessions := opts.Sessions
	if sessions == nil {
		sessions = ChromeSessions(cfg, log)
	}

	emit(StageSession, "iniciando chrome")
	page, err := sessions(ctx)
	if err != nil {
		log.Error("chrome não iniciou", "err", err)
		return res, err
	}
	var closeOnce sync.Once
	closePage := func() { closeOnce.Do(page.Close) }
	defer closePage()

	emit(StageLogin, "login no LinkedIn")
	if err := auth.Login(ctx, page, cfg.Credentials, auth.Options{
		FormTimeout:   cfg.Timeouts.LoginFormWait(),
		ResultTimeout: cfg.Timeouts.LoginResultWait(),
		DumpPath:      cfg.Output.ErrorPage,
		Logger:        log,
	}); err != nil {
		return res, err
	}

	emit(StageScrape, "abrindo "+ref.URL)
	settle := opts.Settle
	if settle == nil {
		settle = settlerFor(cfg, page)
	}
	rec, err := scraper.New(page, scraper.Options{
		Settle:       settle,
		AboutTimeout: cfg.Timeouts.AboutLinkWait(),
		DumpPath:     opts.DumpPath,
		Logger:       log,
	}).ScrapeAbout(ctx, ref.URL)
	if err != nil {
		if errors.Is(err, scraper.ErrAboutSectionNotFound) {
			log.Warn("nada gravado: aba About não encontrada")
		}
		return res, err
	}
	res.Record = rec
	closePage()

	emit(StageSave, "gravando "+cfg.Output.CSVPath)
	tb, err := dataset.Upsert(cfg.Output.CSVPath, *rec)
	res.Dataset = tb
	if err != nil {
		log.Error("⚠️ Não foi possível gravar o CSV", "path", cfg.Output.CSVPath, "err", err)
		return res, err
	}

	log.Info("✅ Dados da empresa atualizados", "path", cfg.Output.CSVPath, "rows", len(tb.Rows))
	emit(StageDone, "ok")
	return res, nil
}

func settlerFor(cfg *config.Config, page Page) browser.Settler {
	d := cfg.Timeouts.SettleDelay()
	if strings.EqualFold(cfg.Timeouts.SettleMode, "ready") {
		return browser.Until{Cond: page.DocumentReady, Max: d}
	}
	return browser.Delay(d)
}
