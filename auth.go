package pubdesk

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/eringen/pubdesk/api"
	"github.com/eringen/pubdesk/editor"
	"github.com/eringen/pubdesk/views"
)

const minPasswordLength = 8

func (a *App) handleLoginPage(c echo.Context) error {
	if BearerToken(c) != "" {
		return c.Redirect(http.StatusSeeOther, "/")
	}
	return Render(c, a.Views.Login(views.AuthPage{Shell: a.shell(c, "Sign in", "")}))
}

func (a *App) handleLogin(c echo.Context) error {
	ip := c.RealIP()
	if !a.loginLimiter.Check(ip) {
		return c.String(http.StatusTooManyRequests, "Too many login attempts. Try again later.")
	}
	cred := api.Credentials{
		Email:    strings.TrimSpace(c.FormValue("email")),
		Password: c.FormValue("password"),
	}
	page := views.AuthPage{Shell: a.shell(c, "Sign in", ""), Email: cred.Email}

	sess, err := a.API.Login(c.Request().Context(), cred)
	if err != nil {
		status := http.StatusBadGateway
		var apiErr *api.Error
		if errors.As(err, &apiErr) {
			a.loginLimiter.Record(ip)
			status = http.StatusUnauthorized
		} else {
			a.Log.Error("login", zap.Error(err))
		}
		page.Flash = views.Failure(api.Message(err))
		return RenderStatus(c, status, a.Views.Login(page))
	}

	a.loginLimiter.Reset(ip)
	user := a.sessionIdentity(c, sess)
	name := user.Name
	if name == "" {
		name = user.Email
	}
	if err := a.setAuthSession(c, sess.Token, user.ID.String(), name); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/")
}

// sessionIdentity returns the user a login response belongs to. Servers
// that leave the user out of the response are asked for it; failing that
// the account is keyed by its token so preferences are never shared.
func (a *App) sessionIdentity(c echo.Context, sess api.Session) api.User {
	user := sess.User
	if user.ID != "" {
		return user
	}
	me, err := a.API.Me(c.Request().Context(), sess.Token)
	if err != nil {
		a.logUpstream("login identity", err)
	} else {
		user = me
	}
	if user.ID == "" {
		user.ID = editor.ID("token:" + accountKey(sess.Token))
	}
	if user.Email == "" {
		user.Email = sess.User.Email
	}
	return user
}

func (a *App) handleLogout(c echo.Context) error {
	if token := BearerToken(c); token != "" {
		if err := a.API.Logout(c.Request().Context(), token); err != nil {
			// The local session ends either way.
			a.Log.Warn("upstream logout", zap.Error(err))
		}
		a.Cache.Forget(token)
	}
	if err := clearAuthSession(c); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/login/")
}

func (a *App) handleSignupPage(c echo.Context) error {
	return Render(c, a.Views.Signup(views.AuthPage{Shell: a.shell(c, "Create an account", "")}))
}

func (a *App) handleSignup(c echo.Context) error {
	in := api.Signup{
		Name:     strings.TrimSpace(c.FormValue("name")),
		Email:    strings.TrimSpace(c.FormValue("email")),
		Password: c.FormValue("password"),
	}
	page := views.AuthPage{Shell: a.shell(c, "Create an account", ""), Name: in.Name, Email: in.Email}
	if msg := checkNewPassword(in.Password, c.FormValue("confirm")); msg != "" {
		page.Flash = views.Failure(msg)
		return RenderStatus(c, http.StatusUnprocessableEntity, a.Views.Signup(page))
	}
	if err := a.API.Signup(c.Request().Context(), in); err != nil {
		a.logUpstream("signup", err)
		page.Flash = views.Failure(api.Message(err))
		return RenderStatus(c, statusFor(err), a.Views.Signup(page))
	}
	return redirectWithFlash(c, "/login/", views.Success("Account created. You can sign in now."))
}

func (a *App) handleForgotPage(c echo.Context) error {
	return Render(c, a.Views.ForgotPassword(views.AuthPage{Shell: a.shell(c, "Reset your password", "")}))
}

func (a *App) handleForgot(c echo.Context) error {
	email := strings.TrimSpace(c.FormValue("email"))
	page := views.AuthPage{Shell: a.shell(c, "Reset your password", ""), Email: email}
	if err := a.API.ForgotPassword(c.Request().Context(), email); err != nil {
		var apiErr *api.Error
		// Unknown addresses are reported as sent so the form cannot be
		// used to find out which addresses have accounts.
		if !errors.As(err, &apiErr) || apiErr.Status != http.StatusNotFound {
			a.logUpstream("forgot password", err)
			page.Flash = views.Failure(api.Message(err))
			return RenderStatus(c, statusFor(err), a.Views.ForgotPassword(page))
		}
	}
	page.Sent = true
	return Render(c, a.Views.ForgotPassword(page))
}

func (a *App) handleResetPage(c echo.Context) error {
	token := c.QueryParam("token")
	if token == "" {
		return redirectWithFlash(c, "/forgot-password/", views.Failure("That reset link is incomplete. Request a new one."))
	}
	return Render(c, a.Views.ResetPassword(views.AuthPage{Shell: a.shell(c, "Choose a new password", ""), ResetToken: token}))
}

func (a *App) handleReset(c echo.Context) error {
	token := c.FormValue("token")
	password := c.FormValue("password")
	page := views.AuthPage{Shell: a.shell(c, "Choose a new password", ""), ResetToken: token}
	if msg := checkNewPassword(password, c.FormValue("confirm")); msg != "" {
		page.Flash = views.Failure(msg)
		return RenderStatus(c, http.StatusUnprocessableEntity, a.Views.ResetPassword(page))
	}
	if err := a.API.ResetPassword(c.Request().Context(), token, password); err != nil {
		a.logUpstream("reset password", err)
		page.Flash = views.Failure(api.Message(err))
		return RenderStatus(c, statusFor(err), a.Views.ResetPassword(page))
	}
	return redirectWithFlash(c, "/login/", views.Success("Password updated. Sign in with your new password."))
}

const (
	msgPasswordMismatch = "Passwords do not match."
	msgPasswordShort    = "Password must be at least 8 characters."
)

// checkNewPassword runs the checks that need no round trip. It returns
// the message to show, or "" when the password is acceptable.
func checkNewPassword(password, confirm string) string {
	if password != confirm {
		return msgPasswordMismatch
	}
	if len([]rune(password)) < minPasswordLength {
		return msgPasswordShort
	}
	return ""
}
