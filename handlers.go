package main

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// blogItem is one rendered entry of the blog list.
type blogItem struct {
	BlogEntry
	ShowDetails bool
	Removable   bool
}

func (a *App) Home(w http.ResponseWriter, r *http.Request) {
	data := map[string]any{
		"CSRFToken": a.csrfToken(w, r),
	}
	if notice, ok := a.notices.Current(); ok {
		data["Notice"] = notice
	}

	session, loggedIn := a.session.Session()
	if !loggedIn {
		data["Title"] = "log in to the application"
		data["ShowLogin"] = a.view.Visible(toggleLogin)
		a.render(w, "login.html", data)
		return
	}

	var items []blogItem
	for _, b := range a.blogs.Sorted() {
		items = append(items, blogItem{
			BlogEntry:   b,
			ShowDetails: a.view.ShowsDetails(b.ID),
			Removable:   b.User != nil && b.User.Username == session.Username,
		})
	}

	data["Title"] = "blogs"
	data["User"] = session
	data["ShowCreate"] = a.view.Visible(toggleCreate)
	data["Blogs"] = items
	a.render(w, "blogs.html", data)
}

func (a *App) render(w http.ResponseWriter, page string, data map[string]any) {
	err := a.templates[page].ExecuteTemplate(w, "base", data)
	if err != nil {
		log.Printf("rendering %s: %v", page, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func (a *App) Login(w http.ResponseWriter, r *http.Request) {
	creds := Credentials{
		Username: r.FormValue("username"),
		Password: r.FormValue("password"),
	}

	session, err := a.api.Login(r.Context(), creds)
	if err != nil {
		log.Printf("login %q: %v", creds.Username, err)
		a.notices.Error("Wrong credentials")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	if err := a.store.Save(session); err != nil {
		log.Printf("saving session: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	a.api.SetToken(session.Token)
	a.session.SetSession(session)
	a.view.Hide(toggleLogin)

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Logout forgets the session and reloads all application state.
func (a *App) Logout(w http.ResponseWriter, r *http.Request) {
	if err := a.store.Clear(); err != nil {
		log.Printf("clearing session: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	a.session.Reset()
	a.view.Reset()
	a.notices.Close()

	if err := a.blogs.LoadAll(r.Context()); err != nil {
		log.Printf("reloading after logout: %v", err)
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (a *App) Toggle(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if !isToggle(name) {
		http.NotFound(w, r)
		return
	}
	a.view.Toggle(name)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (a *App) Create(w http.ResponseWriter, r *http.Request) {
	fields := NewBlog{
		Title:  r.FormValue("title"),
		Author: r.FormValue("author"),
		URL:    r.FormValue("url"),
	}

	// failures are reported through the notice
	a.blogs.CreateEntry(r.Context(), fields)

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (a *App) Like(w http.ResponseWriter, r *http.Request) {
	entry, ok := a.blogs.Find(chi.URLParam(r, "id"))
	if !ok {
		http.NotFound(w, r)
		return
	}

	entry.Likes++
	a.blogs.AddLike(r.Context(), entry)

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (a *App) Delete(w http.ResponseWriter, r *http.Request) {
	a.blogs.DeleteEntry(r.Context(), chi.URLParam(r, "id"))

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (a *App) Details(w http.ResponseWriter, r *http.Request) {
	a.view.ToggleDetails(chi.URLParam(r, "id"))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
