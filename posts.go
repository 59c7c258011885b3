package pubdesk

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/eringen/pubdesk/api"
	"github.com/eringen/pubdesk/editor"
	"github.com/eringen/pubdesk/markdown"
	"github.com/eringen/pubdesk/views"
)

// successRefreshSeconds is how long a saved post's success message stays
// up before the page reloads (edit) or moves to the listing (create).
const successRefreshSeconds = 2

// scheduleInputLayout is the value format of a datetime-local input.
const scheduleInputLayout = "2006-01-02T15:04"

func (a *App) handlePosts(c echo.Context) error {
	ct := c.Param("type")
	posts, err := a.API.Posts(c.Request().Context(), BearerToken(c), ct)
	if err != nil {
		return a.upstreamError(c, "list posts", err)
	}
	userID, _ := sessionUser(c)
	prefs, err := a.Prefs.Get(userID)
	if err != nil {
		a.Log.Warn("load preferences", zap.String("user_id", userID), zap.Error(err))
		prefs = DefaultPreferences()
	}
	current, pages, from, to := paginate(len(posts), prefs.PostsPerPage, c.QueryParam("page"))
	return Render(c, a.Views.Posts(views.PostsPage{
		Shell: a.shell(c, "Posts · "+ct, "content"),
		Type:  ct,
		Posts: posts[from:to],
		Page:  current,
		Pages: pages,
	}))
}

// paginate clamps the requested page and returns it with the page count
// and the slice bounds of that page.
func paginate(total, perPage int, requested string) (page, pages, from, to int) {
	if perPage <= 0 {
		perPage = DefaultPostsPerPage
	}
	pages = (total + perPage - 1) / perPage
	if pages == 0 {
		pages = 1
	}
	page, err := strconv.Atoi(requested)
	if err != nil || page < 1 {
		page = 1
	}
	if page > pages {
		page = pages
	}
	from = (page - 1) * perPage
	to = min(from+perPage, total)
	return page, pages, from, to
}

func (a *App) handleNewPost(c echo.Context) error {
	ed := editor.New(editor.NoPost())
	form := ed.Form()
	form.Content = ed.InitialContent()
	return a.renderPostForm(c, http.StatusOK, "", form, views.Flash{})
}

func (a *App) handleEditPost(c echo.Context) error {
	id := editor.ID(c.Param("id"))
	src, err := a.API.Post(c.Request().Context(), BearerToken(c), id)
	if err != nil {
		return a.upstreamError(c, "get post", err)
	}
	if src.Shape == editor.ShapeNone {
		return echo.NewHTTPError(http.StatusNotFound)
	}
	ed := editor.New(src)
	form := ed.Form()
	form.Content = ed.InitialContent()
	form.ScheduledAt = scheduleForInput(form.ScheduledAt, a.location)
	return a.renderPostForm(c, http.StatusOK, id, form, views.Flash{})
}

func (a *App) handleCreatePost(c echo.Context) error {
	return a.savePost(c, "")
}

func (a *App) handleUpdatePost(c echo.Context) error {
	return a.savePost(c, editor.ID(c.Param("id")))
}

// savePost runs a submitted form through the submission gate and sends
// it upstream. An empty id creates a post.
func (a *App) savePost(c echo.Context, id editor.ID) error {
	ct := c.Param("type")
	token := BearerToken(c)
	form := postFormFromRequest(c)

	key := accountKey(token) + "|" + ct + "|" + id.String()
	if !a.submissions.TryAcquire(key) {
		return c.String(http.StatusConflict, "This post is already being saved.")
	}
	defer a.submissions.Release(key)

	payload, err := editor.Prepare(form, a.now().In(a.location))
	if err != nil {
		return a.renderPostForm(c, http.StatusUnprocessableEntity, id, form, views.Failure(gateMessage(err)))
	}

	ctx := c.Request().Context()
	target := postPath(ct, id)
	if id == "" {
		_, err = a.API.CreatePost(ctx, token, ct, payload)
		target = postsPath(ct)
	} else {
		err = a.API.UpdatePost(ctx, token, id, payload)
	}
	if err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			return a.expireSession(c)
		}
		a.logUpstream("save post", err)
		return a.renderPostForm(c, statusFor(err), id, form, views.Failure(api.Message(err)))
	}

	a.Cache.InvalidateContentTypes(token)
	msg := "Post updated."
	if id == "" {
		msg = "Post created."
	}
	c.Response().Header().Set("Refresh", fmt.Sprintf("%d; url=%s", successRefreshSeconds, target))
	return a.renderPostForm(c, http.StatusOK, id, form, views.Success(msg))
}

func (a *App) handleDeletePost(c echo.Context) error {
	ct := c.Param("type")
	token := BearerToken(c)
	if err := a.API.DeletePost(c.Request().Context(), token, editor.ID(c.Param("id"))); err != nil {
		return a.mutationError(c, "delete post", err, postsPath(ct))
	}
	a.Cache.InvalidateContentTypes(token)
	return redirectWithFlash(c, postsPath(ct), views.Success("Post deleted."))
}

func (a *App) renderPostForm(c echo.Context, status int, id editor.ID, form editor.PostForm, flash views.Flash) error {
	title := "Edit post"
	if id == "" {
		title = "New post"
	}
	media, err := a.Cache.Media(c.Request().Context(), BearerToken(c))
	if err != nil {
		// The media list only feeds the cover image suggestions.
		a.logUpstream("media suggestions", err)
	}
	s := a.shell(c, title, "content")
	if flash.Message != "" {
		s.Flash = flash
	}
	return RenderStatus(c, status, a.Views.PostForm(views.PostFormPage{
		Shell:    s,
		Type:     c.Param("type"),
		PostID:   id,
		IsNew:    id == "",
		Form:     form,
		Statuses: editor.Statuses,
		Media:    media,
	}))
}

// postFormFromRequest reads the submitted editor fields. Content is the
// edited HTML; it is sanitized but never normalized again.
func postFormFromRequest(c echo.Context) editor.PostForm {
	title := strings.TrimSpace(c.FormValue("title"))
	readingTime, err := strconv.Atoi(strings.TrimSpace(c.FormValue("reading_time")))
	if err != nil || readingTime < 0 {
		readingTime = 0
	}
	return editor.PostForm{
		Title:   title,
		Slug:    editor.Slugify(title),
		Content: markdown.Sanitize(c.FormValue("content")),
		CoverImage: editor.CoverImage{
			URL: strings.TrimSpace(c.FormValue("cover_image_url")),
			Alt: strings.TrimSpace(c.FormValue("cover_image_alt")),
		},
		Tags:         splitList(c.FormValue("tags")),
		MetaTitle:    strings.TrimSpace(c.FormValue("meta_title")),
		MetaKeywords: splitList(c.FormValue("meta_keywords")),
		ReadingTime:  readingTime,
		Status:       editor.Status(c.FormValue("status")),
		ScheduledAt:  strings.TrimSpace(c.FormValue("scheduled_at")),
	}
}

// scheduleForInput renders a stored schedule in the editor's zone for a
// datetime-local input. Values it cannot parse are returned unchanged.
func scheduleForInput(value string, loc *time.Location) string {
	if value == "" {
		return ""
	}
	t, err := editor.ParseSchedule(value, loc)
	if err != nil {
		return value
	}
	return t.In(loc).Format(scheduleInputLayout)
}

func gateMessage(err error) string {
	switch {
	case errors.Is(err, editor.ErrScheduleRequired):
		return "Schedule date and time is required."
	case errors.Is(err, editor.ErrScheduleInPast):
		return "Scheduled date and time must be in the future."
	case errors.Is(err, editor.ErrInvalidStatus):
		return "Choose draft, published or scheduled."
	}
	return api.GenericMessage
}
