package views

import "github.com/a-h/templ"

// Login is the sign-in form.
func Login(p AuthPage) templ.Component {
	return page(p.Shell, func(w *writer) {
		w.raw(`<form method="post" action="/login/" class="auth">`)
		w.csrf(p.CSRF)
		w.input("Email", "email", "email", p.Email, "required", "autocomplete=\"username\"")
		w.input("Password", "password", "password", "", "required", "autocomplete=\"current-password\"")
		w.raw(`<button type="submit">Sign in</button></form>`)
		w.raw(`<p><a href="/forgot-password/">Forgot your password?</a> · <a href="/signup/">Create an account</a></p>`)
	})
}

// Signup is the registration form.
func Signup(p AuthPage) templ.Component {
	return page(p.Shell, func(w *writer) {
		w.raw(`<form method="post" action="/signup/" class="auth">`)
		w.csrf(p.CSRF)
		w.input("Name", "text", "name", p.Name, "required")
		w.input("Email", "email", "email", p.Email, "required")
		w.input("Password", "password", "password", "", "required", "minlength=\"8\"")
		w.input("Confirm password", "password", "confirm", "", "required", "minlength=\"8\"")
		w.raw(`<button type="submit">Create account</button></form>`)
		w.raw(`<p><a href="/login/">Already have an account?</a></p>`)
	})
}

// ForgotPassword asks for the address to send a reset link to.
func ForgotPassword(p AuthPage) templ.Component {
	return page(p.Shell, func(w *writer) {
		if p.Sent {
			w.raw(`<p>If that address has an account, a reset link is on its way.</p><p><a href="/login/">Back to sign in</a></p>`)
			return
		}
		w.raw(`<form method="post" action="/forgot-password/" class="auth">`)
		w.csrf(p.CSRF)
		w.input("Email", "email", "email", p.Email, "required")
		w.raw(`<button type="submit">Send reset link</button></form>`)
	})
}

// ResetPassword sets a new password from a reset link.
func ResetPassword(p AuthPage) templ.Component {
	return page(p.Shell, func(w *writer) {
		w.raw(`<form method="post" action="/reset-password/" class="auth">`)
		w.csrf(p.CSRF)
		w.raw(`<input type="hidden" name="token"`)
		w.attr("value", p.ResetToken)
		w.raw(`>`)
		w.input("New password", "password", "password", "", "required", "minlength=\"8\"")
		w.input("Confirm password", "password", "confirm", "", "required", "minlength=\"8\"")
		w.raw(`<button type="submit">Set password</button></form>`)
	})
}
