package views

import (
	"github.com/a-h/templ"

	"github.com/eringen/pubdesk/editor"
	"github.com/eringen/pubdesk/markdown"
)

// Dashboard summarises the account's content.
func Dashboard(p DashboardPage) templ.Component {
	return page(p.Shell, func(w *writer) {
		w.raw(`<section class="stats"><div><span>`)
		w.text(itoa(len(p.ContentTypes)))
		w.raw(`</span> content types</div><div><span>`)
		w.text(itoa(p.MediaCount))
		w.raw(`</span> media items</div></section>`)
		if p.RecentType.Slug == "" {
			w.raw(`<p>No content types yet. <a href="/content-types/">Create one</a> to start writing.</p>`)
			return
		}
		w.raw(`<section><h2>Recent `)
		w.text(p.RecentType.Name)
		w.raw(`</h2>`)
		postTable(w, p.RecentType.Slug, p.Recent, p.CSRF)
		w.raw(`</section>`)
	})
}

// ContentTypes lists content types with inline create, rename and delete.
func ContentTypes(p ContentTypesPage) templ.Component {
	return page(p.Shell, func(w *writer) {
		w.raw(`<form method="post" action="/content-types/" class="inline">`)
		w.csrf(p.CSRF)
		w.input("Name", "text", "name", p.Input.Name, "required")
		w.input("Description", "text", "description", p.Input.Description)
		w.raw(`<button type="submit">Add content type</button></form>`)
		if len(p.Types) == 0 {
			w.raw(`<p>No content types yet.</p>`)
			return
		}
		w.raw(`<table><thead><tr><th>Name</th><th>Slug</th><th>Posts</th><th></th></tr></thead><tbody>`)
		for _, ct := range p.Types {
			w.raw(`<tr><td><form method="post" class="inline"`)
			w.attr("action", "/content-types/"+pathEscape(ct.ID.String())+"/")
			w.raw(`>`)
			w.csrf(p.CSRF)
			w.raw(`<input type="text" name="name" required`)
			w.attr("value", ct.Name)
			w.raw(`><input type="hidden" name="description"`)
			w.attr("value", ct.Description)
			w.raw(`><button type="submit">Rename</button></form></td><td><a`)
			w.attr("href", "/content-types/"+pathEscape(ct.Slug)+"/posts/")
			w.raw(`>`)
			w.text(ct.Slug)
			w.raw(`</a></td><td>`)
			w.text(itoa(ct.PostCount))
			w.raw(`</td><td><form method="post" class="inline" data-confirm="Delete this content type and its posts?"`)
			w.attr("action", "/content-types/"+pathEscape(ct.ID.String())+"/delete/")
			w.raw(`>`)
			w.csrf(p.CSRF)
			w.raw(`<button type="submit" class="danger">Delete</button></form></td></tr>`)
		}
		w.raw(`</tbody></table>`)
	})
}

// Posts lists the posts of one content type.
func Posts(p PostsPage) templ.Component {
	return page(p.Shell, func(w *writer) {
		w.raw(`<p><a class="button"`)
		w.attr("href", "/content-types/"+pathEscape(p.Type)+"/posts/new/")
		w.raw(`>New post</a></p>`)
		postTable(w, p.Type, p.Posts, p.CSRF)
		if p.Pages > 1 {
			w.raw(`<nav class="pager">`)
			for i := 1; i <= p.Pages; i++ {
				if i == p.Page {
					w.raw(`<span aria-current="page">`)
					w.text(itoa(i))
					w.raw(`</span>`)
					continue
				}
				w.raw(`<a`)
				w.attr("href", "?page="+itoa(i))
				w.raw(`>`)
				w.text(itoa(i))
				w.raw(`</a>`)
			}
			w.raw(`</nav>`)
		}
	})
}

func postTable(w *writer, contentType string, posts []editor.Post, csrf string) {
	if len(posts) == 0 {
		w.raw(`<p>No posts yet.</p>`)
		return
	}
	base := "/content-types/" + pathEscape(contentType) + "/posts/"
	w.raw(`<table><thead><tr><th>Title</th><th>Status</th><th>Tags</th><th>Updated</th><th></th></tr></thead><tbody>`)
	for _, post := range posts {
		href := base + pathEscape(post.ID.String()) + "/"
		w.raw(`<tr><td><a`)
		w.attr("href", href)
		w.raw(`>`)
		w.text(post.Title)
		w.raw(`</a></td><td><span`)
		w.attr("class", "status status-"+string(post.Status))
		w.raw(`>`)
		w.text(string(post.Status))
		w.raw(`</span></td><td>`)
		w.text(joinList(post.Tags))
		w.raw(`</td><td>`)
		if post.UpdatedAt != nil {
			w.text(post.UpdatedAt.Format("2006-01-02 15:04"))
		}
		w.raw(`</td><td><form method="post" class="inline" data-confirm="Delete this post?"`)
		w.attr("action", href+"delete/")
		w.raw(`>`)
		w.csrf(csrf)
		w.raw(`<button type="submit" class="danger">Delete</button></form></td></tr>`)
	}
	w.raw(`</tbody></table>`)
}

// PostForm is the post editor. Form.Content must already be HTML: it seeds
// the editable surface as is.
func PostForm(p PostFormPage) templ.Component {
	return page(p.Shell, func(w *writer) {
		f := p.Form
		action := "/content-types/" + pathEscape(p.Type) + "/posts/"
		if p.IsNew {
			action += "new/"
		} else {
			action += pathEscape(p.PostID.String()) + "/"
		}
		w.raw(`<form method="post" class="post-editor" data-editor`)
		w.attr("action", action)
		w.raw(`>`)
		w.csrf(p.CSRF)
		w.input("Title", "text", "title", f.Title, "required", "data-slug-source")
		w.input("Slug", "text", "slug", f.Slug, "readonly", "data-slug-target")

		w.raw(`<label>Content<div class="surface" contenteditable="true" data-surface>`)
		w.render(markdown.Component(f.Content))
		w.raw(`</div><input type="hidden" name="content"`)
		w.attr("value", f.Content)
		w.raw(` data-surface-value></label>`)

		w.raw(`<fieldset><legend>Cover image</legend>`)
		w.input("URL", "text", "cover_image_url", f.CoverImage.URL, "list=\"media-urls\"")
		w.input("Alt text", "text", "cover_image_alt", f.CoverImage.Alt)
		w.raw(`<datalist id="media-urls">`)
		for _, m := range p.Media {
			w.raw(`<option`)
			w.attr("value", m.URL)
			w.raw(`>`)
			w.text(m.Name)
			w.raw(`</option>`)
		}
		w.raw(`</datalist></fieldset>`)

		w.input("Tags (comma separated)", "text", "tags", joinList(f.Tags))

		w.raw(`<fieldset><legend>SEO</legend>`)
		w.input("Meta title", "text", "meta_title", f.MetaTitle)
		w.input("Meta keywords (comma separated)", "text", "meta_keywords", joinList(f.MetaKeywords))
		w.raw(`</fieldset>`)

		w.input("Reading time (minutes, 0 to estimate)", "number", "reading_time", itoa(f.ReadingTime), "min=\"0\"")

		w.raw(`<label>Status<select name="status">`)
		for _, s := range p.Statuses {
			w.raw(`<option`)
			w.attr("value", string(s))
			if s == f.Status {
				w.raw(` selected`)
			}
			w.raw(`>`)
			w.text(string(s))
			w.raw(`</option>`)
		}
		w.raw(`</select></label>`)
		w.input("Scheduled for", "datetime-local", "scheduled_at", f.ScheduledAt)

		label := "Save changes"
		if p.IsNew {
			label = "Create post"
		}
		w.raw(`<button type="submit" data-submit>`)
		w.text(label)
		w.raw(`</button></form>`)
	})
}
