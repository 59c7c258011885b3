package pubdesk

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/eringen/pubdesk/api"
	"github.com/eringen/pubdesk/editor"
	"github.com/eringen/pubdesk/views"
)

const dashboardRecentPosts = 5

func handleHealth(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

func handleSettingsRedirect(c echo.Context) error {
	return c.Redirect(http.StatusMovedPermanently, "/settings/account/")
}

func (a *App) handleDashboard(c echo.Context) error {
	ctx := c.Request().Context()
	token := BearerToken(c)
	types, err := a.Cache.ContentTypes(ctx, token)
	if err != nil {
		return a.upstreamError(c, "dashboard", err)
	}
	media, err := a.Cache.Media(ctx, token)
	if err != nil {
		return a.upstreamError(c, "dashboard", err)
	}
	page := views.DashboardPage{
		Shell:        a.shell(c, "Dashboard", "dashboard"),
		ContentTypes: types,
		MediaCount:   len(media),
	}
	if len(types) > 0 {
		page.RecentType = types[0]
		posts, err := a.API.Posts(ctx, token, types[0].Slug)
		if err != nil {
			return a.upstreamError(c, "dashboard", err)
		}
		if len(posts) > dashboardRecentPosts {
			posts = posts[:dashboardRecentPosts]
		}
		page.Recent = posts
	}
	return Render(c, a.Views.Dashboard(page))
}

func (a *App) handleContentTypes(c echo.Context) error {
	types, err := a.Cache.ContentTypes(c.Request().Context(), BearerToken(c))
	if err != nil {
		return a.upstreamError(c, "content types", err)
	}
	return Render(c, a.Views.ContentTypes(views.ContentTypesPage{
		Shell: a.shell(c, "Content types", "content"),
		Types: types,
	}))
}

func contentTypeInput(c echo.Context) api.ContentTypeInput {
	name := strings.TrimSpace(c.FormValue("name"))
	return api.ContentTypeInput{
		Name:        name,
		Slug:        editor.Slugify(name),
		Description: strings.TrimSpace(c.FormValue("description")),
	}
}

func (a *App) handleCreateContentType(c echo.Context) error {
	in := contentTypeInput(c)
	if in.Slug == "" {
		return redirectWithFlash(c, "/content-types/", views.Failure("Name is required."))
	}
	token := BearerToken(c)
	if _, err := a.API.CreateContentType(c.Request().Context(), token, in); err != nil {
		return a.mutationError(c, "create content type", err, "/content-types/")
	}
	a.Cache.InvalidateContentTypes(token)
	return redirectWithFlash(c, "/content-types/", views.Success("Content type created."))
}

func (a *App) handleRenameContentType(c echo.Context) error {
	in := contentTypeInput(c)
	if in.Slug == "" {
		return redirectWithFlash(c, "/content-types/", views.Failure("Name is required."))
	}
	token := BearerToken(c)
	if err := a.API.UpdateContentType(c.Request().Context(), token, editor.ID(c.Param("id")), in); err != nil {
		return a.mutationError(c, "rename content type", err, "/content-types/")
	}
	a.Cache.InvalidateContentTypes(token)
	return redirectWithFlash(c, "/content-types/", views.Success("Content type renamed."))
}

func (a *App) handleDeleteContentType(c echo.Context) error {
	token := BearerToken(c)
	if err := a.API.DeleteContentType(c.Request().Context(), token, editor.ID(c.Param("id"))); err != nil {
		return a.mutationError(c, "delete content type", err, "/content-types/")
	}
	a.Cache.InvalidateContentTypes(token)
	return redirectWithFlash(c, "/content-types/", views.Success("Content type deleted."))
}

// upstreamError maps a failed upstream call made while loading a page.
// A 401 ends the session; a 404 renders the not found page; anything
// else renders the error page with the server's message.
func (a *App) upstreamError(c echo.Context, op string, err error) error {
	if errors.Is(err, api.ErrUnauthorized) {
		return a.expireSession(c)
	}
	if errors.Is(err, api.ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound).SetInternal(err)
	}
	a.logUpstream(op, err)
	return echo.NewHTTPError(statusFor(err), api.Message(err)).SetInternal(err)
}

// mutationError maps a failed upstream write: a 401 ends the session,
// anything else is flashed on the page at back.
func (a *App) mutationError(c echo.Context, op string, err error, back string) error {
	if errors.Is(err, api.ErrUnauthorized) {
		return a.expireSession(c)
	}
	a.logUpstream(op, err)
	return redirectWithFlash(c, back, views.Failure(api.Message(err)))
}

// expireSession drops the stored token after the API refused it and sends
// the user to sign in again.
func (a *App) expireSession(c echo.Context) error {
	if token := BearerToken(c); token != "" {
		a.Cache.Forget(token)
	}
	sess, err := session.Get(sessionName, c)
	if err != nil {
		return err
	}
	sess.Values = map[interface{}]interface{}{}
	sess.AddFlash("Your session has expired. Sign in again.", "error")
	if err := sess.Save(c.Request(), c.Response()); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/login/")
}

func (a *App) logUpstream(op string, err error) {
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		a.Log.Warn("upstream rejected request",
			zap.String("op", op),
			zap.Int("status", apiErr.Status),
			zap.String("message", apiErr.Message),
		)
		return
	}
	a.Log.Error("upstream request failed", zap.String("op", op), zap.Error(err))
}

// statusFor picks the response status for an upstream failure: the
// server's own 4xx passes through, everything else is a bad gateway.
func statusFor(err error) int {
	var apiErr *api.Error
	if errors.As(err, &apiErr) && apiErr.Status >= 400 && apiErr.Status < 500 {
		return apiErr.Status
	}
	return http.StatusBadGateway
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	code := http.StatusInternalServerError
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
	}
	if code == http.StatusNotFound {
		_ = RenderStatus(c, code, a.Views.NotFound(a.shell(c, "", "")))
		return
	}
	if code >= 500 {
		a.Log.Error("server error",
			zap.Int("status", code),
			zap.String("uri", c.Request().RequestURI),
			zap.Error(err),
		)
	}
	s := a.shell(c, "", "")
	if he != nil && code != http.StatusInternalServerError {
		if msg, ok := he.Message.(string); ok && msg != "" {
			s.Flash = views.Failure(msg)
		}
	}
	_ = RenderStatus(c, code, a.Views.ServerError(s))
}
