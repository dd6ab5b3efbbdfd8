// Package auth drives the LinkedIn login form.
package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"CrawlerLinkedinAbout/internal/browser"
	"CrawlerLinkedinAbout/internal/config"
)

const (
	LoginURL = "https://www.linkedin.com/login"

	usernameSel = `#username`
	passwordSel = `#password`
	// only checked for presence: the post-login navigation bar
	landmarkSel = `//div[contains(@class, 'global-nav')]`
)

type Page interface {
	Navigate(ctx context.Context, url string) error
	WaitPresent(ctx context.Context, sel string, timeout time.Duration) error
	SendKeys(ctx context.Context, sel, text string) error
	Submit(ctx context.Context, sel string) error
	Location(ctx context.Context) (string, error)
	HTML(ctx context.Context) (string, error)
}

type Options struct {
	FormTimeout   time.Duration
	ResultTimeout time.Duration
	// DumpPath receives the page HTML when the login fails.
	DumpPath string
	Logger   *slog.Logger
}

func (o *Options) defaults() {
	if o.FormTimeout <= 0 {
		o.FormTimeout = 10 * time.Second
	}
	if o.ResultTimeout <= 0 {
		o.ResultTimeout = 15 * time.Second
	}
	if o.DumpPath == "" {
		o.DumpPath = "error_page.html"
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
}

// LoginFailedError reports a login that could not be confirmed. Stage is
// "form" when the login form never showed up and "landmark" when the
// post-login navigation never appeared.
type LoginFailedError struct {
	Stage    string
	URL      string
	DumpPath string
	// Hint is a best guess of what blocked the login, read from the dumped
	// page: "checkpoint", "captcha", "2fa" or "".
	Hint string
	Err  error
}

func (e *LoginFailedError) Error() string {
	if e.URL != "" {
		return fmt.Sprintf("falha no login (%s) em %s: %v", e.Stage, e.URL, e.Err)
	}
	return fmt.Sprintf("falha no login (%s): %v", e.Stage, e.Err)
}

func (e *LoginFailedError) Unwrap() error { return e.Err }

// Login submits creds on the login page and waits for the post-login
// landmark. Credentials are not validated locally.
func Login(ctx context.Context, p Page, creds config.Credentials, opts Options) error {
	opts.defaults()
	log := opts.Logger

	log.Info("🔐 Login no LinkedIn…")
	if err := p.Navigate(ctx, LoginURL); err != nil {
		return fmt.Errorf("abrindo página de login: %w", err)
	}
	if err := p.WaitPresent(ctx, usernameSel, opts.FormTimeout); err != nil {
		return &LoginFailedError{Stage: "form", Err: err}
	}

	if err := p.SendKeys(ctx, usernameSel, creds.Email); err != nil {
		return fmt.Errorf("preenchendo usuário: %w", err)
	}
	if err := p.SendKeys(ctx, passwordSel, creds.Password); err != nil {
		return fmt.Errorf("preenchendo senha: %w", err)
	}
	if err := p.Submit(ctx, passwordSel); err != nil {
		return fmt.Errorf("enviando formulário: %w", err)
	}

	waitErr := p.WaitPresent(ctx, landmarkSel, opts.ResultTimeout)
	if waitErr == nil {
		log.Info("✅ Login ok")
		return nil
	}

	lerr := &LoginFailedError{Stage: "landmark", Err: waitErr}
	if u, err := p.Location(ctx); err == nil {
		lerr.URL = u
	}
	log.Error("❌ Login pode ter falhado", "url", lerr.URL, "err", waitErr)

	html, err := browser.DumpHTML(ctx, p, opts.DumpPath)
	if err != nil {
		log.Warn("dump html falhou", "path", opts.DumpPath, "err", err)
		return lerr
	}
	lerr.DumpPath = opts.DumpPath
	lerr.Hint = diagnose(lerr.URL, html)
	log.Info("📝 HTML salvo", "path", opts.DumpPath, "hint", lerr.Hint)
	return lerr
}
