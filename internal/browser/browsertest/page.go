// Package browsertest provides an in-memory page for testing code that
// drives a browser session.
package browsertest

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Page is a scripted stand-in for *browser.Session. Waits never sleep: a
// selector is either present or the wait fails with
// context.DeadlineExceeded.
type Page struct {
	mu sync.Mutex

	// Present lists the selectors the waits can find.
	Present map[string]bool
	// Pages maps a URL to the markup served after navigating to it.
	Pages map[string]string
	// AfterClick maps a selector to the markup shown after clicking it.
	AfterClick map[string]string
	// AfterSubmit is the state reached after Submit, when set.
	AfterSubmit *State

	NavigateErr error
	HTMLErr     error

	url   string
	body  string
	calls []string
	keys  map[string]string
}

// State is a URL plus the selectors present on it.
type State struct {
	URL     string
	Present map[string]bool
	Body    string
}

func (p *Page) record(format string, args ...any) {
	p.calls = append(p.calls, fmt.Sprintf(format, args...))
}

func (p *Page) Navigate(_ context.Context, url string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.record("navigate %s", url)
	if p.NavigateErr != nil {
		return p.NavigateErr
	}
	p.url = url
	p.body = p.Pages[url]
	return nil
}

func (p *Page) WaitPresent(ctx context.Context, sel string, _ time.Duration) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.record("wait %s", sel)
	if err := ctx.Err(); err != nil {
		return err
	}
	if p.Present[sel] {
		return nil
	}
	return context.DeadlineExceeded
}

func (p *Page) ClickWhenReady(ctx context.Context, sel string, _ time.Duration) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.record("click %s", sel)
	if err := ctx.Err(); err != nil {
		return err
	}
	if !p.Present[sel] {
		return context.DeadlineExceeded
	}
	if html, ok := p.AfterClick[sel]; ok {
		p.body = html
	}
	return nil
}

func (p *Page) SendKeys(_ context.Context, sel, text string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.record("keys %s", sel)
	if p.keys == nil {
		p.keys = map[string]string{}
	}
	p.keys[sel] += text
	return nil
}

func (p *Page) Submit(_ context.Context, sel string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.record("submit %s", sel)
	if s := p.AfterSubmit; s != nil {
		p.url = s.URL
		p.body = s.Body
		if p.Present == nil {
			p.Present = map[string]bool{}
		}
		for k, v := range s.Present {
			p.Present[k] = v
		}
	}
	return nil
}

func (p *Page) ScrollToBottom(context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.record("scroll")
	return nil
}

func (p *Page) HTML(context.Context) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.HTMLErr != nil {
		return "", p.HTMLErr
	}
	return p.body, nil
}

func (p *Page) Location(context.Context) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.url, nil
}

func (p *Page) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.record("close")
}

// Calls returns the actions performed so far, in order.
func (p *Page) Calls() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.calls...)
}

// Typed returns everything typed into sel.
func (p *Page) Typed(sel string) string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.keys[sel]
}

func (p *Page) DocumentReady(context.Context) bool { return true }
