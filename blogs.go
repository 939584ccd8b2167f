package main

import (
	"context"
	"fmt"
	"log"
	"slices"
	"sync"
)

// blogAPI is the part of APIClient the blog list depends on.
type blogAPI interface {
	GetAll(ctx context.Context) ([]BlogEntry, error)
	Create(ctx context.Context, blog NewBlog) (BlogEntry, error)
	Update(ctx context.Context, entry BlogEntry) (BlogEntry, error)
	DeleteBlog(ctx context.Context, id string) error
}

// BlogList is the in-memory collection of blog entries. Mutations are
// applied only after the API call succeeded.
type BlogList struct {
	mu      sync.Mutex
	blogs   []BlogEntry
	api     blogAPI
	session *SessionContext
	notices *Notifier
	view    *ViewState
}

func NewBlogList(api blogAPI, session *SessionContext, notices *Notifier, view *ViewState) *BlogList {
	return &BlogList{
		api:     api,
		session: session,
		notices: notices,
		view:    view,
	}
}

// withOwner attaches the current user's display fields to an entry the
// API returned without them.
func withOwner(entry BlogEntry, session Session) BlogEntry {
	entry.User = &Owner{Username: session.Username, Name: session.Name}
	return entry
}

func (l *BlogList) LoadAll(ctx context.Context) error {
	blogs, err := l.api.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("loading blogs: %w", err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.blogs = blogs
	return nil
}

func (l *BlogList) CreateEntry(ctx context.Context, fields NewBlog) error {
	l.view.Hide(toggleCreate)

	created, err := l.api.Create(ctx, fields)
	if err != nil {
		log.Printf("creating blog: %v", err)
		l.notices.Error("Error: " + errorMessage(err))
		return err
	}

	session, _ := l.session.Session()
	entry := withOwner(created, session)

	l.mu.Lock()
	l.blogs = append(slices.Clip(l.blogs), entry)
	l.mu.Unlock()

	l.notices.Success(fmt.Sprintf("a new blog %s by %s added", entry.Title, entry.Author))
	return nil
}

// AddLike stores entry, whose likes the caller has already incremented.
func (l *BlogList) AddLike(ctx context.Context, entry BlogEntry) error {
	updated, err := l.api.Update(ctx, entry)
	if err != nil {
		log.Printf("updating blog %s: %v", entry.ID, err)
		l.notices.Error("Error: " + errorMessage(err))
		return err
	}

	session, _ := l.session.Session()

	l.mu.Lock()
	defer l.mu.Unlock()
	i := slices.IndexFunc(l.blogs, func(b BlogEntry) bool { return b.ID == entry.ID })
	if i < 0 {
		return nil
	}
	blogs := slices.Clone(l.blogs)
	blogs[i] = withOwner(updated, session)
	l.blogs = blogs
	return nil
}

func (l *BlogList) DeleteEntry(ctx context.Context, id string) error {
	if err := l.api.DeleteBlog(ctx, id); err != nil {
		log.Printf("deleting blog %s: %v", id, err)
		l.notices.Error("Error: " + errorMessage(err))
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.blogs = slices.DeleteFunc(slices.Clone(l.blogs), func(b BlogEntry) bool { return b.ID == id })
	return nil
}

func (l *BlogList) Find(id string) (BlogEntry, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, b := range l.blogs {
		if b.ID == id {
			return b, true
		}
	}
	return BlogEntry{}, false
}

// Sorted returns a copy of the collection ordered by likes, most first.
// Entries with equal likes keep their collection order.
func (l *BlogList) Sorted() []BlogEntry {
	l.mu.Lock()
	blogs := slices.Clone(l.blogs)
	l.mu.Unlock()

	slices.SortStableFunc(blogs, func(a, b BlogEntry) int { return b.Likes - a.Likes })
	return blogs
}

func (l *BlogList) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.blogs)
}
