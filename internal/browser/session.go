// Package browser launches and drives the Chromium session used by the
// login and scraping stages.
package browser

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/chromedp/chromedp/kb"
	"github.com/go-rod/stealth"
)

// Hides navigator.webdriver before any page script runs.
const hideWebdriverJS = `Object.defineProperty(navigator, 'webdriver', {get: () => undefined})`

const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64)"

type Options struct {
	Headless  bool
	ExecPath  string
	UserAgent string
	// Stealth also injects the go-rod/stealth evasion script.
	Stealth bool
	Logger  *slog.Logger
}

// SessionLaunchError is returned when Chrome cannot be started or attached
// to. It is fatal for the pipeline.
type SessionLaunchError struct {
	Err error
}

func (e *SessionLaunchError) Error() string {
	return fmt.Sprintf("inicializando chrome: %v", e.Err)
}

func (e *SessionLaunchError) Unwrap() error { return e.Err }

// Session is a single Chrome tab. Every call blocks until it finishes or its
// timeout expires.
type Session struct {
	ctx    context.Context
	cancel context.CancelFunc
	log    *slog.Logger
}

func NewSession(ctx context.Context, opts Options) (*Session, error) {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	ua := opts.UserAgent
	if ua == "" {
		ua = DefaultUserAgent
	}

	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", opts.Headless),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.Flag("ignore-certificate-errors", true),
		chromedp.UserAgent(ua),
	)
	if opts.ExecPath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(opts.ExecPath))
	}
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, allocOpts...)

	bctx, bcancel := chromedp.NewContext(allocCtx,
		chromedp.WithLogf(func(format string, args ...any) {
			log.Debug(fmt.Sprintf(format, args...), "source", "chromedp")
		}),
	)

	s := &Session{
		ctx: bctx,
		cancel: func() {
			bcancel()
			allocCancel()
		},
		log: log,
	}

	scripts := []string{hideWebdriverJS}
	if opts.Stealth {
		scripts = append(scripts, stealth.JS)
	}

	// the first Run starts the chrome process
	if err := chromedp.Run(bctx, chromedp.ActionFunc(func(c context.Context) error {
		for _, src := range scripts {
			if _, err := page.AddScriptToEvaluateOnNewDocument(src).Do(c); err != nil {
				return err
			}
		}
		return nil
	})); err != nil {
		s.cancel()
		return nil, &SessionLaunchError{Err: err}
	}

	log.Info("chrome iniciado", "headless", opts.Headless, "stealth", opts.Stealth)
	return s, nil
}

func (s *Session) Close() {
	s.cancel()
}

// run executes actions on the tab. ctx only adds cancellation; timeout > 0
// bounds the whole batch.
func (s *Session) run(ctx context.Context, timeout time.Duration, actions ...chromedp.Action) error {
	rctx, cancel := context.WithCancel(s.ctx)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	if timeout > 0 {
		var tcancel context.CancelFunc
		rctx, tcancel = context.WithTimeout(rctx, timeout)
		defer tcancel()
	}
	return chromedp.Run(rctx, actions...)
}

func (s *Session) Navigate(ctx context.Context, url string) error {
	return s.run(ctx, 0, chromedp.Navigate(url))
}

// WaitPresent waits until sel (CSS or XPath) exists in the DOM.
func (s *Session) WaitPresent(ctx context.Context, sel string, timeout time.Duration) error {
	return s.run(ctx, timeout, chromedp.WaitReady(sel, chromedp.BySearch))
}

// ClickWhenReady waits until sel is visible and clicks it.
func (s *Session) ClickWhenReady(ctx context.Context, sel string, timeout time.Duration) error {
	if err := s.run(ctx, timeout, chromedp.WaitVisible(sel, chromedp.BySearch)); err != nil {
		return err
	}
	return s.run(ctx, 0, chromedp.Click(sel, chromedp.BySearch, chromedp.NodeVisible))
}

func (s *Session) SendKeys(ctx context.Context, sel, text string) error {
	return s.run(ctx, 0, chromedp.SendKeys(sel, text, chromedp.BySearch))
}

// Submit presses Enter inside sel.
func (s *Session) Submit(ctx context.Context, sel string) error {
	return s.run(ctx, 0, chromedp.SendKeys(sel, kb.Enter, chromedp.BySearch))
}

func (s *Session) ScrollToBottom(ctx context.Context) error {
	return s.run(ctx, 0, chromedp.EvaluateAsDevTools(`window.scrollTo(0, document.body.scrollHeight);`, nil))
}

func (s *Session) HTML(ctx context.Context) (string, error) {
	var html string
	err := s.run(ctx, 0, chromedp.EvaluateAsDevTools(`document.documentElement.outerHTML`, &html))
	return html, err
}

func (s *Session) Location(ctx context.Context) (string, error) {
	var u string
	err := s.run(ctx, 0, chromedp.Location(&u))
	return u, err
}

// DocumentReady reports whether document.readyState is "complete".
func (s *Session) DocumentReady(ctx context.Context) bool {
	var ready bool
	err := s.run(ctx, 0, chromedp.EvaluateAsDevTools(`document.readyState === 'complete'`, &ready))
	return err == nil && ready
}
