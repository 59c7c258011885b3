package pubdesk

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/eringen/pubdesk/api"
	"github.com/eringen/pubdesk/views"
)

func (a *App) handleAccount(c echo.Context) error {
	user, err := a.API.Me(c.Request().Context(), BearerToken(c))
	if err != nil {
		return a.upstreamError(c, "get account", err)
	}
	return Render(c, a.Views.Account(views.AccountPage{
		Shell: a.shell(c, "Account", "account"),
		User:  user,
	}))
}

func (a *App) handleAccountSave(c echo.Context) error {
	update := api.ProfileUpdate{
		Name:  strings.TrimSpace(c.FormValue("name")),
		Email: strings.TrimSpace(c.FormValue("email")),
		Bio:   strings.TrimSpace(c.FormValue("bio")),
	}
	img, _, err := readImageUpload(c, "avatar", maxAvatarWidth)
	switch {
	case err == nil:
		update.Avatar = img.DataURI
	case !errors.Is(err, errNoImage):
		return redirectWithFlash(c, "/settings/account/", views.Failure(uploadMessage(err)))
	}

	user, err := a.API.UpdateMe(c.Request().Context(), BearerToken(c), update)
	if err != nil {
		return a.mutationError(c, "update account", err, "/settings/account/")
	}
	name := user.Name
	if name == "" {
		name = update.Name
	}
	if err := setSessionUserName(c, name); err != nil {
		return err
	}
	return redirectWithFlash(c, "/settings/account/", views.Success("Profile saved."))
}

func (a *App) handleSecurity(c echo.Context) error {
	return Render(c, a.Views.Security(views.SecurityPage{Shell: a.shell(c, "Security", "security")}))
}

func (a *App) handleSecuritySave(c echo.Context) error {
	change := api.PasswordChange{
		CurrentPassword: c.FormValue("current_password"),
		NewPassword:     c.FormValue("new_password"),
	}
	page := views.SecurityPage{Shell: a.shell(c, "Security", "security")}
	if msg := checkNewPassword(change.NewPassword, c.FormValue("confirm_password")); msg != "" {
		page.Flash = views.Failure(msg)
		return RenderStatus(c, http.StatusUnprocessableEntity, a.Views.Security(page))
	}
	if err := a.API.ChangePassword(c.Request().Context(), BearerToken(c), change); err != nil {
		var apiErr *api.Error
		// A wrong current password comes back as 401 on some servers;
		// that must not end the session.
		if errors.As(err, &apiErr) {
			a.logUpstream("change password", err)
			page.Flash = views.Failure(apiErr.Message)
			return RenderStatus(c, http.StatusUnprocessableEntity, a.Views.Security(page))
		}
		return a.mutationError(c, "change password", err, "/settings/security/")
	}
	return redirectWithFlash(c, "/settings/security/", views.Success("Password changed."))
}

func (a *App) handleAppearance(c echo.Context) error {
	userID, _ := sessionUser(c)
	prefs, err := a.Prefs.Get(userID)
	if err != nil {
		return err
	}
	return Render(c, a.Views.Appearance(a.appearancePage(c, prefs)))
}

func (a *App) handleAppearanceSave(c echo.Context) error {
	userID, _ := sessionUser(c)
	perPage, err := strconv.Atoi(strings.TrimSpace(c.FormValue("posts_per_page")))
	if err != nil {
		perPage = 0
	}
	prefs := Preferences{
		Theme:          c.FormValue("theme"),
		PostsPerPage:   perPage,
		CompactSidebar: c.FormValue("compact_sidebar") != "",
	}
	if err := a.Prefs.Save(userID, prefs); err != nil {
		if errors.Is(err, ErrInvalidPreference) {
			page := a.appearancePage(c, prefs)
			page.Flash = views.Failure("Choose a theme and between 5 and 100 posts per page.")
			return RenderStatus(c, http.StatusUnprocessableEntity, a.Views.Appearance(page))
		}
		return err
	}
	return redirectWithFlash(c, "/settings/appearance/", views.Success("Preferences saved."))
}

func (a *App) handleAppearanceReset(c echo.Context) error {
	userID, _ := sessionUser(c)
	if err := a.Prefs.Delete(userID); err != nil {
		return err
	}
	return redirectWithFlash(c, "/settings/appearance/", views.Success("Preferences reset to the defaults."))
}

func (a *App) appearancePage(c echo.Context, prefs Preferences) views.AppearancePage {
	return views.AppearancePage{
		Shell:          a.shell(c, "Appearance", "appearance"),
		Themes:         Themes,
		SelectedTheme:  prefs.Theme,
		PostsPerPage:   prefs.PostsPerPage,
		CompactSidebar: prefs.CompactSidebar,
	}
}
