package browser

import (
	"context"
	"os"
	"path/filepath"
)

type HTMLSource interface {
	HTML(ctx context.Context) (string, error)
}

// DumpHTML writes the rendered markup of src to path, overwriting it, and
// returns the markup.
func DumpHTML(ctx context.Context, src HTMLSource, path string) (string, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", err
		}
	}
	html, err := src.HTML(ctx)
	if err != nil {
		return "", err
	}
	return html, os.WriteFile(path, []byte(html), 0o644)
}
