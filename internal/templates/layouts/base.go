package layouts

import (
	"context"
	"fmt"
	"html"
	"io"

	"github.com/a-h/templ"

	"github.com/codr1/accresults/internal/api/flash"
)

const pageCSS = ":root{--accent:#1d4ed8;--danger:#b91c1c;--ok:#15803d;}" +
	"body{font-family:system-ui,sans-serif;margin:0;color:#111827;background:#f9fafb;}" +
	"main{max-width:960px;margin:0 auto;padding:1.5rem;}" +
	"table{width:100%;border-collapse:collapse;}th,td{padding:.5rem;border-bottom:1px solid #e5e7eb;text-align:left;}" +
	".notice{padding:.75rem 1rem;border-radius:.25rem;margin-bottom:1rem;}" +
	".notice-success{background:#dcfce7;color:var(--ok);}.notice-error{background:#fee2e2;color:var(--danger);}"

// Base wraps content in the application page shell. notice may be nil.
func Base(title string, content templ.Component, notice *flash.Message) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, fmt.Sprintf(
			`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1"><title>%s</title><style>%s</style><script src="https://unpkg.com/htmx.org@2.0.4" defer></script></head><body>`,
			html.EscapeString(title),
			pageCSS,
		)); err != nil {
			return err
		}
		if _, err := io.WriteString(w, `<nav style="background:#111827;padding:.75rem 1.5rem"><a href="/teams" style="color:#fff;text-decoration:none;font-weight:600">Teams</a>`+
			`<form method="post" action="/logout" style="display:inline;float:right;margin:0"><button type="submit">Sign out</button></form></nav><main>`); err != nil {
			return err
		}
		if notice != nil {
			if _, err := io.WriteString(w, noticeHTML(notice)); err != nil {
				return err
			}
		}
		if content != nil {
			if err := content.Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</main></body></html>`)
		return err
	})
}

func noticeHTML(notice *flash.Message) string {
	class := "notice-success"
	if notice.Level == flash.LevelError {
		class = "notice-error"
	}
	return fmt.Sprintf(`<div class="notice %s" role="status">%s</div>`, class, html.EscapeString(notice.Text))
}
