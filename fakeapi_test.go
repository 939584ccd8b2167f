package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	testUsername = "mluukkai"
	testName     = "Matti Luukkainen"
	testPassword = "salainen"
)

type fakeUser struct {
	id   string
	name string
	hash []byte
}

type fakeCall struct {
	Method string
	Path   string
	Auth   string
}

// fakeAPI is an in-memory blog API with the same routes and error
// bodies as the real backend.
type fakeAPI struct {
	mu      sync.Mutex
	users   map[string]fakeUser
	tokens  map[string]string
	blogs   []BlogEntry
	calls   []fakeCall
	updates []BlogEntry
	server  *httptest.Server
}

func newFakeAPI(t *testing.T) *fakeAPI {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hashing password: %v", err)
	}

	f := &fakeAPI{
		users:  map[string]fakeUser{testUsername: {id: uuid.NewString(), name: testName, hash: hash}},
		tokens: make(map[string]string),
	}

	mux := chi.NewRouter()
	mux.Post("/api/login", f.login)
	mux.Get("/api/blogs", f.list)
	mux.Post("/api/blogs", f.create)
	mux.Put("/api/blogs/{id}", f.update)
	mux.Delete("/api/blogs/{id}", f.remove)

	f.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.calls = append(f.calls, fakeCall{Method: r.Method, Path: r.URL.Path, Auth: r.Header.Get("Authorization")})
		f.mu.Unlock()
		mux.ServeHTTP(w, r)
	}))
	t.Cleanup(f.server.Close)

	return f
}

func (f *fakeAPI) URL() string { return f.server.URL }

// seed adds a blog owned by username and returns its id.
func (f *fakeAPI) seed(title, author string, likes int, username string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := uuid.NewString()
	f.blogs = append(f.blogs, BlogEntry{
		ID:     id,
		Title:  title,
		Author: author,
		URL:    "https://example.com/" + strings.ReplaceAll(title, " ", "-"),
		Likes:  likes,
		User:   &Owner{Username: username, Name: username},
	})
	return id
}

func (f *fakeAPI) callsTo(method, path string) []fakeCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []fakeCall
	for _, c := range f.calls {
		if c.Method == method && c.Path == path {
			out = append(out, c)
		}
	}
	return out
}

func (f *fakeAPI) lastUpdate() (BlogEntry, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.updates) == 0 {
		return BlogEntry{}, false
	}
	return f.updates[len(f.updates)-1], true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// authorized returns the username behind the bearer token. The caller
// must hold f.mu.
func (f *fakeAPI) authorized(r *http.Request) (string, bool) {
	token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok {
		return "", false
	}
	username, ok := f.tokens[token]
	return username, ok
}

func (f *fakeAPI) index(id string) int {
	return slices.IndexFunc(f.blogs, func(b BlogEntry) bool { return b.ID == id })
}

// fakeSavedBlog is the create/update response body, which references
// the owner by id instead of embedding it.
type fakeSavedBlog struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author"`
	URL    string `json:"url"`
	Likes  int    `json:"likes"`
	User   string `json:"user"`
}

// withoutUser must be called with f.mu held.
func (f *fakeAPI) withoutUser(b BlogEntry) fakeSavedBlog {
	saved := fakeSavedBlog{ID: b.ID, Title: b.Title, Author: b.Author, URL: b.URL, Likes: b.Likes}
	if b.User != nil {
		saved.User = f.users[b.User.Username].id
		if saved.User == "" {
			saved.User = uuid.NewString()
		}
	}
	return saved
}

func (f *fakeAPI) login(w http.ResponseWriter, r *http.Request) {
	var creds Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request")
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	user, ok := f.users[creds.Username]
	if !ok || bcrypt.CompareHashAndPassword(user.hash, []byte(creds.Password)) != nil {
		writeError(w, http.StatusUnauthorized, "invalid username or password")
		return
	}

	token := uuid.NewString()
	f.tokens[token] = creds.Username
	writeJSON(w, http.StatusOK, Session{Username: creds.Username, Name: user.name, Token: token})
}

func (f *fakeAPI) list(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	blogs := slices.Clone(f.blogs)
	if blogs == nil {
		blogs = []BlogEntry{}
	}
	writeJSON(w, http.StatusOK, blogs)
}

func (f *fakeAPI) create(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	username, ok := f.authorized(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "token missing or invalid")
		return
	}

	var blog NewBlog
	if err := json.NewDecoder(r.Body).Decode(&blog); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request")
		return
	}
	if blog.Title == "" || blog.URL == "" {
		writeError(w, http.StatusBadRequest, "title or url missing")
		return
	}

	entry := BlogEntry{
		ID:     uuid.NewString(),
		Title:  blog.Title,
		Author: blog.Author,
		URL:    blog.URL,
		User:   &Owner{Username: username, Name: f.users[username].name},
	}
	f.blogs = append(f.blogs, entry)
	writeJSON(w, http.StatusCreated, f.withoutUser(entry))
}

func (f *fakeAPI) update(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.authorized(r); !ok {
		writeError(w, http.StatusUnauthorized, "token missing or invalid")
		return
	}

	var entry BlogEntry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request")
		return
	}
	f.updates = append(f.updates, entry)

	i := f.index(chi.URLParam(r, "id"))
	if i < 0 {
		writeError(w, http.StatusNotFound, "blog not found")
		return
	}
	stored := f.blogs[i]
	stored.Title = entry.Title
	stored.Author = entry.Author
	stored.URL = entry.URL
	stored.Likes = entry.Likes
	f.blogs[i] = stored

	writeJSON(w, http.StatusOK, f.withoutUser(stored))
}

func (f *fakeAPI) remove(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.authorized(r); !ok {
		writeError(w, http.StatusUnauthorized, "token missing or invalid")
		return
	}

	i := f.index(chi.URLParam(r, "id"))
	if i < 0 {
		writeError(w, http.StatusNotFound, "blog not found")
		return
	}
	f.blogs = slices.Delete(f.blogs, i, i+1)
	w.WriteHeader(http.StatusNoContent)
}
