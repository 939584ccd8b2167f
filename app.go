package main

import (
	"context"
	"fmt"
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// App wires the session, the API client and the controllers behind the
// HTTP pages.
type App struct {
	session *SessionContext
	store   *SessionStore
	api     *APIClient
	blogs   *BlogList
	notices *Notifier
	view    *ViewState

	templates     map[string]*template.Template
	secureCookies bool
	router        chi.Router
}

func NewApp(cfg Config, store *SessionStore) (*App, error) {
	templates, err := loadTemplates()
	if err != nil {
		return nil, err
	}

	session := NewSessionContext()
	api := NewAPIClient(cfg.APIURL, cfg.APITimeout, session)
	notices := NewNotifier(cfg.NoticeDuration)
	view := NewViewState()

	a := &App{
		session:       session,
		store:         store,
		api:           api,
		blogs:         NewBlogList(api, session, notices, view),
		notices:       notices,
		view:          view,
		templates:     templates,
		secureCookies: cfg.SecureCookies,
	}
	a.setupRoutes()
	return a, nil
}

func (a *App) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(verifyCSRF)

	r.Get("/", a.Home)
	r.Get("/feed", a.Feed)
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	r.Post("/login", a.Login)
	r.Post("/toggle/{name}", a.Toggle)

	r.Group(func(r chi.Router) {
		r.Use(a.requireSession)
		r.Post("/logout", a.Logout)
		r.Post("/blogs", a.Create)
		r.Post("/blogs/{id}/like", a.Like)
		r.Post("/blogs/{id}/delete", a.Delete)
		r.Post("/blogs/{id}/details", a.Details)
	})

	a.router = r
}

func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.router.ServeHTTP(w, r)
}

// Start restores a saved session and loads the blog list.
func (a *App) Start(ctx context.Context) error {
	saved, err := a.store.Load()
	if err != nil {
		return fmt.Errorf("restoring session: %w", err)
	}
	if saved != nil {
		a.session.SetSession(*saved)
		a.api.SetToken(saved.Token)
	}

	return a.blogs.LoadAll(ctx)
}

// Close stops the notice timer.
func (a *App) Close() {
	a.notices.Close()
}
