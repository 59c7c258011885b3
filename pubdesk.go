// Package pubdesk is the server-rendered front-end of a content management
// system, built with Go, Echo, and templ. It sits in front of a remote
// content API and auth API and provides sign-in, content types, a post
// editor, a media library, and account settings.
//
// Users may provide their own templ templates via the ViewFuncs struct;
// DefaultViews wires in the components from the views package.
package pubdesk

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/a-h/templ"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/eringen/pubdesk/api"
	"github.com/eringen/pubdesk/editor"
	"github.com/eringen/pubdesk/views"
)

// ViewFuncs holds the templ components the handlers render. Each takes a
// plain page struct from the views package.
type ViewFuncs struct {
	Login          func(views.AuthPage) templ.Component
	Signup         func(views.AuthPage) templ.Component
	ForgotPassword func(views.AuthPage) templ.Component
	ResetPassword  func(views.AuthPage) templ.Component
	Dashboard      func(views.DashboardPage) templ.Component
	ContentTypes   func(views.ContentTypesPage) templ.Component
	Posts          func(views.PostsPage) templ.Component
	PostForm       func(views.PostFormPage) templ.Component
	Media          func(views.MediaPage) templ.Component
	Account        func(views.AccountPage) templ.Component
	Security       func(views.SecurityPage) templ.Component
	Appearance     func(views.AppearancePage) templ.Component
	NotFound       func(views.Shell) templ.Component
	ServerError    func(views.Shell) templ.Component
}

// DefaultViews returns the components shipped in the views package.
func DefaultViews() ViewFuncs {
	return ViewFuncs{
		Login:          views.Login,
		Signup:         views.Signup,
		ForgotPassword: views.ForgotPassword,
		ResetPassword:  views.ResetPassword,
		Dashboard:      views.Dashboard,
		ContentTypes:   views.ContentTypes,
		Posts:          views.Posts,
		PostForm:       views.PostForm,
		Media:          views.Media,
		Account:        views.Account,
		Security:       views.Security,
		Appearance:     views.Appearance,
		NotFound:       views.NotFound,
		ServerError:    views.ServerError,
	}
}

// App is the central pubdesk application. It wires together the API
// client, preference store, cache, handlers, middleware, and templates.
type App struct {
	Config  SiteConfig
	Echo    *echo.Echo
	API     *api.Client
	Prefs   *PrefStore
	Cache   *ContentCache
	Views   ViewFuncs
	Log     *zap.Logger
	Metrics *prometheus.Registry

	loginLimiter *AttemptLimiter
	submissions  *editor.Guard
	location     *time.Location
	now          func() time.Time
	customRoutes []func(*App)
	ready        bool
}

// New creates a pubdesk App with the given configuration and views.
func New(cfg SiteConfig, views ViewFuncs, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config: cfg,
		Echo:   echo.New(),
		Views:  views,
		now:    time.Now,
	}
	a.Echo.HideBanner = true

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Init validates the configuration and sets up the API client, preference
// store, cache, middleware, and routes without listening. Start calls it;
// tests call it directly and drive a.Echo.
func (a *App) Init() error {
	if a.ready {
		return nil
	}
	if err := a.Config.validate(); err != nil {
		return fmt.Errorf("pubdesk: invalid config: %w", err)
	}

	if a.Log == nil {
		logger, err := NewLogger(a.Config.LogLevel)
		if err != nil {
			return err
		}
		a.Log = logger
	}

	a.Metrics = prometheus.NewRegistry()
	a.Metrics.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	client, err := api.New(api.Config{
		BaseURL:    a.Config.APIURL,
		AuthURL:    a.Config.AuthURL,
		Timeout:    a.Config.RequestTimeout,
		Registerer: a.Metrics,
	})
	if err != nil {
		return fmt.Errorf("pubdesk: init api client: %w", err)
	}
	a.API = client

	prefs, err := NewPrefStore(a.Config.PrefsDatabasePath)
	if err != nil {
		return fmt.Errorf("pubdesk: init preference store: %w", err)
	}
	a.Prefs = prefs

	a.Cache = NewContentCache(a.API, a.Config.CacheTTL)
	a.loginLimiter = NewAttemptLimiter(5, time.Minute)
	a.submissions = editor.NewGuard()
	a.location = a.Config.location()

	a.setupMiddleware()
	a.setupRoutes()
	for _, fn := range a.customRoutes {
		fn(a)
	}

	a.ready = true
	return nil
}

// Start initializes the app and serves until the server is shut down.
func (a *App) Start() error {
	if err := a.Init(); err != nil {
		return err
	}
	a.Log.Info("pubdesk listening",
		zap.String("addr", a.Config.Addr),
		zap.String("api", a.Config.APIURL),
	)
	if err := a.Echo.Start(a.Config.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops the server gracefully and releases resources.
func (a *App) Shutdown(ctx context.Context) error {
	err := a.Echo.Shutdown(ctx)
	return errors.Join(err, a.Close())
}

func (a *App) setupRoutes() {
	e := a.Echo

	assets, _ := fs.Sub(EmbeddedAssets, "embedded")
	e.GET("/public/*", echo.WrapHandler(http.StripPrefix("/public/", http.FileServer(http.FS(assets)))))
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: a.Metrics}))
	e.GET("/healthz", handleHealth)

	// Signed-out routes
	e.GET("/login/", a.handleLoginPage)
	e.POST("/login/", a.handleLogin)
	e.POST("/logout/", a.handleLogout)
	e.GET("/signup/", a.handleSignupPage)
	e.POST("/signup/", a.handleSignup)
	e.GET("/forgot-password/", a.handleForgotPage)
	e.POST("/forgot-password/", a.handleForgot)
	e.GET("/reset-password/", a.handleResetPage)
	e.POST("/reset-password/", a.handleReset)

	g := e.Group("", a.requireAuth)
	g.GET("/", a.handleDashboard)

	g.GET("/content-types/", a.handleContentTypes)
	g.POST("/content-types/", a.handleCreateContentType)
	g.POST("/content-types/:id/", a.handleRenameContentType)
	g.POST("/content-types/:id/delete/", a.handleDeleteContentType)

	g.GET("/content-types/:type/posts/", a.handlePosts)
	g.GET("/content-types/:type/posts/new/", a.handleNewPost)
	g.POST("/content-types/:type/posts/new/", a.handleCreatePost)
	g.GET("/content-types/:type/posts/:id/", a.handleEditPost)
	g.POST("/content-types/:type/posts/:id/", a.handleUpdatePost)
	g.POST("/content-types/:type/posts/:id/delete/", a.handleDeletePost)

	g.GET("/media/", a.handleMedia)
	g.POST("/media/", a.handleMediaUpload)
	g.POST("/media/:id/delete/", a.handleMediaDelete)

	g.GET("/settings/", handleSettingsRedirect)
	g.GET("/settings/account/", a.handleAccount)
	g.POST("/settings/account/", a.handleAccountSave)
	g.GET("/settings/security/", a.handleSecurity)
	g.POST("/settings/security/", a.handleSecuritySave)
	g.GET("/settings/appearance/", a.handleAppearance)
	g.POST("/settings/appearance/", a.handleAppearanceSave)
	g.POST("/settings/appearance/reset/", a.handleAppearanceReset)
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	var err error
	if a.Prefs != nil {
		err = a.Prefs.Close()
	}
	if a.loginLimiter != nil {
		a.loginLimiter.Stop()
	}
	if a.Log != nil {
		_ = a.Log.Sync()
	}
	return err
}

// EnvOr returns the value of the environment variable key, or fallback if empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// MustEnv returns the value of the environment variable key, or fatally exits if empty.
func MustEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		log.Fatalf("pubdesk: required environment variable %s is not set", key)
	}
	return v
}
