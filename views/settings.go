package views

import "github.com/a-h/templ"

// Account edits the profile and avatar.
func Account(p AccountPage) templ.Component {
	return page(p.Shell, func(w *writer) {
		if p.User.Avatar != "" {
			w.raw(`<img class="avatar" width="96" height="96"`)
			w.attr("src", p.User.Avatar)
			w.attr("alt", p.User.Name)
			w.raw(`>`)
		}
		w.raw(`<form method="post" action="/settings/account/" enctype="multipart/form-data">`)
		w.csrf(p.CSRF)
		w.input("Name", "text", "name", p.User.Name, "required")
		w.input("Email", "email", "email", p.User.Email, "required")
		w.raw(`<label>Bio<textarea name="bio" rows="4">`)
		w.text(p.User.Bio)
		w.raw(`</textarea></label>`)
		w.raw(`<label>Avatar<input type="file" name="avatar" accept="image/png,image/jpeg,image/gif"></label>`)
		w.raw(`<button type="submit">Save profile</button></form>`)
	})
}

// Security changes the password.
func Security(p SecurityPage) templ.Component {
	return page(p.Shell, func(w *writer) {
		w.raw(`<form method="post" action="/settings/security/">`)
		w.csrf(p.CSRF)
		w.input("Current password", "password", "current_password", "", "required", "autocomplete=\"current-password\"")
		w.input("New password", "password", "new_password", "", "required", "minlength=\"8\"", "autocomplete=\"new-password\"")
		w.input("Confirm new password", "password", "confirm_password", "", "required", "minlength=\"8\"", "autocomplete=\"new-password\"")
		w.raw(`<button type="submit">Change password</button></form>`)
	})
}

// Appearance edits the display preferences.
func Appearance(p AppearancePage) templ.Component {
	return page(p.Shell, func(w *writer) {
		w.raw(`<form method="post" action="/settings/appearance/"><fieldset><legend>Theme</legend>`)
		w.csrf(p.CSRF)
		for _, t := range p.Themes {
			w.raw(`<label><input type="radio" name="theme"`)
			w.attr("value", t)
			if t == p.SelectedTheme {
				w.raw(` checked`)
			}
			w.raw(`>`)
			w.text(t)
			w.raw(`</label>`)
		}
		w.raw(`</fieldset>`)
		w.input("Posts per page", "number", "posts_per_page", itoa(p.PostsPerPage), "min=\"5\"", "max=\"100\"")
		w.raw(`<label><input type="checkbox" name="compact_sidebar" value="1"`)
		if p.CompactSidebar {
			w.raw(` checked`)
		}
		w.raw(`>Compact sidebar</label><button type="submit">Save preferences</button></form>`)
		w.raw(`<form method="post" action="/settings/appearance/reset/" class="inline" data-confirm="Reset appearance to the defaults?">`)
		w.csrf(p.CSRF)
		w.raw(`<button type="submit" class="secondary">Reset to defaults</button></form>`)
	})
}

// NotFound is the 404 page.
func NotFound(s Shell) templ.Component {
	s.Title = "Not found"
	return page(s, func(w *writer) {
		w.raw(`<p>That page does not exist. <a href="/">Back to the dashboard</a></p>`)
	})
}

// ServerError is the 500 page.
func ServerError(s Shell) templ.Component {
	s.Title = "Something went wrong"
	return page(s, func(w *writer) {
		w.raw(`<p>The server hit an error. Try again in a moment.</p>`)
	})
}
