package pubdesk

import (
	"net/http"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/eringen/pubdesk/views"
)

// Render writes a templ component as an HTTP 200 HTML response.
func Render(c echo.Context, cmp templ.Component) error {
	return RenderStatus(c, http.StatusOK, cmp)
}

// RenderStatus writes a templ component with a specific HTTP status code.
func RenderStatus(c echo.Context, code int, cmp templ.Component) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(code)
	return cmp.Render(c.Request().Context(), c.Response().Writer)
}

// shell builds the page chrome for the current request. It consumes any
// queued flash message.
func (a *App) shell(c echo.Context, title, active string) views.Shell {
	s := views.Shell{
		SiteName: a.Config.Name,
		Title:    title,
		CSRF:     CsrfToken(c),
		Theme:    ThemeSystem,
		Active:   active,
		Flash:    popFlash(c),
	}
	if BearerToken(c) == "" {
		return s
	}
	userID, userName := sessionUser(c)
	s.UserName = userName
	if s.UserName == "" {
		s.UserName = "account"
	}
	if prefs, err := a.Prefs.Get(userID); err != nil {
		a.Log.Warn("load preferences", zap.String("user_id", userID), zap.Error(err))
	} else {
		s.Theme = prefs.Theme
		s.Compact = prefs.CompactSidebar
	}
	return s
}

// redirectWithFlash queues f and redirects to url with 303 See Other.
func redirectWithFlash(c echo.Context, url string, f views.Flash) error {
	if err := setFlash(c, f); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, url)
}
