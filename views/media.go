package views

import (
	"github.com/a-h/templ"
	"github.com/dustin/go-humanize"
)

// Media is the media library grid with an upload form.
func Media(p MediaPage) templ.Component {
	return page(p.Shell, func(w *writer) {
		w.raw(`<form method="post" action="/media/" enctype="multipart/form-data" class="inline">`)
		w.csrf(p.CSRF)
		w.raw(`<label>Image<input type="file" name="image" accept="image/png,image/jpeg,image/gif" required></label>`)
		w.input("Alt text", "text", "alt", "")
		w.raw(`<button type="submit">Upload</button></form>`)
		if len(p.Items) == 0 {
			w.raw(`<p>The media library is empty.</p>`)
			return
		}
		w.raw(`<ul class="media-grid">`)
		for _, m := range p.Items {
			w.raw(`<li><img loading="lazy"`)
			w.attr("src", m.URL)
			w.attr("alt", m.Alt)
			w.raw(`><span>`)
			w.text(m.Name)
			w.raw(`</span><small>`)
			if m.Width > 0 {
				w.text(itoa(m.Width) + "×" + itoa(m.Height) + " · ")
			}
			w.text(humanize.Bytes(uint64(m.Size)))
			w.raw(`</small><form method="post" class="inline" data-confirm="Delete this image?"`)
			w.attr("action", "/media/"+pathEscape(m.ID.String())+"/delete/")
			w.raw(`>`)
			w.csrf(p.CSRF)
			w.raw(`<button type="submit" class="danger">Delete</button></form></li>`)
		}
		w.raw(`</ul>`)
	})
}
