package views

import (
	"context"
	"io"
	"net/url"
	"strconv"
	"strings"

	"github.com/a-h/templ"
)

// writer accumulates the first write error so page bodies read top-down.
type writer struct {
	ctx context.Context
	w   io.Writer
	err error
}

func (w *writer) raw(parts ...string) {
	for _, s := range parts {
		if w.err != nil {
			return
		}
		_, w.err = io.WriteString(w.w, s)
	}
}

func (w *writer) render(c templ.Component) {
	if w.err == nil {
		w.err = c.Render(w.ctx, w.w)
	}
}

func (w *writer) text(s string) { w.raw(templ.EscapeString(s)) }

func (w *writer) attr(name, value string) {
	w.raw(" ", name, `="`, templ.EscapeString(value), `"`)
}

func (w *writer) csrf(token string) {
	w.raw(`<input type="hidden" name="_csrf"`)
	w.attr("value", token)
	w.raw(">")
}

func (w *writer) input(label, typ, name, value string, extra ...string) {
	w.raw(`<label>`)
	w.text(label)
	w.raw(`<input`)
	w.attr("type", typ)
	w.attr("name", name)
	w.attr("value", value)
	for _, e := range extra {
		w.raw(" ", e)
	}
	w.raw(`></label>`)
}

func (w *writer) flash(f Flash) {
	if f.Message == "" {
		return
	}
	w.raw(`<div role="status"`)
	w.attr("class", "flash flash-"+f.Kind)
	w.raw(`>`)
	w.text(f.Message)
	w.raw(`</div>`)
}

// component adapts a body func into a templ.Component.
func component(body func(w *writer)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := &writer{ctx: ctx, w: out}
		body(w)
		return w.err
	})
}

type navItem struct {
	key, href, label string
}

var nav = []navItem{
	{"dashboard", "/", "Dashboard"},
	{"content", "/content-types/", "Content types"},
	{"media", "/media/", "Media"},
	{"account", "/settings/account/", "Account"},
	{"security", "/settings/security/", "Security"},
	{"appearance", "/settings/appearance/", "Appearance"},
}

// page wraps body in the document shell. Signed-out pages get no sidebar.
func page(s Shell, body func(w *writer)) templ.Component {
	return component(func(w *writer) {
		theme := s.Theme
		if theme == "" {
			theme = "system"
		}
		w.raw(`<!doctype html><html lang="en"`)
		w.attr("data-theme", theme)
		w.raw(`><head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1"><title>`)
		if s.Title != "" {
			w.text(s.Title + " · ")
		}
		w.text(s.SiteName)
		w.raw(`</title><link rel="stylesheet" href="/public/admin.css"><script src="/public/editor.js" defer></script></head>`)
		class := "shell"
		if s.Compact {
			class += " compact"
		}
		w.raw(`<body`)
		w.attr("class", class)
		w.raw(`>`)
		if s.UserName != "" {
			w.raw(`<nav class="sidebar"><strong>`)
			w.text(s.SiteName)
			w.raw(`</strong><ul>`)
			for _, item := range nav {
				w.raw(`<li><a`)
				w.attr("href", item.href)
				if item.key == s.Active {
					w.raw(` aria-current="page"`)
				}
				w.raw(`>`)
				w.text(item.label)
				w.raw(`</a></li>`)
			}
			w.raw(`</ul><form method="post" action="/logout/">`)
			w.csrf(s.CSRF)
			w.raw(`<button type="submit">Sign out `)
			w.text(s.UserName)
			w.raw(`</button></form></nav>`)
		}
		w.raw(`<main>`)
		if s.Title != "" {
			w.raw(`<h1>`)
			w.text(s.Title)
			w.raw(`</h1>`)
		}
		w.flash(s.Flash)
		body(w)
		w.raw(`</main></body></html>`)
	})
}

func pathEscape(s string) string { return url.PathEscape(s) }

func itoa(n int) string { return strconv.Itoa(n) }

func joinList(values []string) string { return strings.Join(values, ", ") }
