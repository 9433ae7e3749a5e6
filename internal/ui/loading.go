package ui

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// LoadingPage is shown while the stored session is being restored. It
// reloads itself until the real page can be served.
func LoadingPage(appName string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		name := templ.EscapeString(appName)
		_, err := io.WriteString(w, `<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`+
			`<meta http-equiv="refresh" content="1">`+
			`<title>`+name+`</title></head>`+
			`<body><main role="status" aria-live="polite"><p>Loading `+name+`…</p></main></body></html>`)
		return err
	})
}
