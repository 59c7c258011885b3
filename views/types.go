// Package views holds the default templ components pubdesk renders. Each
// page takes a plain data struct so the handlers never build HTML.
package views

import (
	"github.com/eringen/pubdesk/api"
	"github.com/eringen/pubdesk/editor"
)

// Flash is a one-off status message shown above a page's content.
type Flash struct {
	Kind    string // "success" or "error"
	Message string
}

// Success and Failure build flashes.
func Success(msg string) Flash { return Flash{Kind: "success", Message: msg} }
func Failure(msg string) Flash { return Flash{Kind: "error", Message: msg} }

// Shell is the chrome shared by every page.
type Shell struct {
	SiteName string
	Title    string
	UserName string // empty on signed-out pages
	CSRF     string
	Theme    string // light, dark or system
	Compact  bool
	Active   string // nav section to highlight
	Flash    Flash
}

// AuthPage backs the login, signup and password reset screens.
type AuthPage struct {
	Shell
	Name       string
	Email      string
	ResetToken string
	Sent       bool
}

// DashboardPage is the landing screen after login.
type DashboardPage struct {
	Shell
	ContentTypes []api.ContentType
	MediaCount   int
	RecentType   api.ContentType
	Recent       []editor.Post
}

// ContentTypesPage lists and edits content types.
type ContentTypesPage struct {
	Shell
	Types []api.ContentType
	Input api.ContentTypeInput
}

// PostsPage lists the posts of one content type.
type PostsPage struct {
	Shell
	Type  string
	Posts []editor.Post
	Page  int
	Pages int
}

// PostFormPage is the create/edit post screen.
type PostFormPage struct {
	Shell
	Type     string
	PostID   editor.ID
	IsNew    bool
	Form     editor.PostForm
	Statuses []editor.Status
	Media    []api.MediaItem
}

// MediaPage is the media library.
type MediaPage struct {
	Shell
	Items []api.MediaItem
}

// AccountPage edits the profile.
type AccountPage struct {
	Shell
	User api.User
}

// SecurityPage changes the password.
type SecurityPage struct {
	Shell
}

// AppearancePage edits the locally stored display preferences.
type AppearancePage struct {
	Shell
	Themes         []string
	SelectedTheme  string
	PostsPerPage   int
	CompactSidebar bool
}
