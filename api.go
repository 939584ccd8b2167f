package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const noMessage = "no message available"

// ErrWrongCredentials is returned by Login for any failed login.
var ErrWrongCredentials = errors.New("wrong credentials")

// APIError is a failed call to the blog API. Status is 0 when the
// request never got a response.
type APIError struct {
	Status  int
	Message string
	Err     error
}

func (e *APIError) Error() string {
	if e.Status == 0 {
		if e.Err != nil {
			return fmt.Sprintf("api: %s: %v", e.Message, e.Err)
		}
		return "api: " + e.Message
	}
	return fmt.Sprintf("api: status %d: %s", e.Status, e.Message)
}

func (e *APIError) Unwrap() error { return e.Err }

// errorMessage extracts the text shown to the user for a failed call.
func errorMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return noMessage
}

type APIClient struct {
	baseURL string
	http    *http.Client
	session *SessionContext
}

func NewAPIClient(baseURL string, timeout time.Duration, session *SessionContext) *APIClient {
	return &APIClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		session: session,
	}
}

// SetToken configures the bearer token sent with every later request.
func (c *APIClient) SetToken(token string) {
	c.session.SetToken(token)
}

func (c *APIClient) Login(ctx context.Context, creds Credentials) (Session, error) {
	var session Session
	if err := c.do(ctx, http.MethodPost, "/api/login", creds, &session); err != nil {
		return Session{}, fmt.Errorf("%w: %w", ErrWrongCredentials, err)
	}
	return session, nil
}

func (c *APIClient) GetAll(ctx context.Context) ([]BlogEntry, error) {
	var blogs []BlogEntry
	if err := c.do(ctx, http.MethodGet, "/api/blogs", nil, &blogs); err != nil {
		return nil, err
	}
	return blogs, nil
}

// savedBlog is the response to a create or update. The server sends
// user as an id reference there, so it is kept undecoded.
type savedBlog struct {
	ID     string          `json:"id"`
	Title  string          `json:"title"`
	Author string          `json:"author"`
	URL    string          `json:"url"`
	Likes  int             `json:"likes"`
	User   json.RawMessage `json:"user,omitempty"`
}

// entry drops the user reference; callers reattach it with withOwner.
func (b savedBlog) entry() BlogEntry {
	return BlogEntry{
		ID:     b.ID,
		Title:  b.Title,
		Author: b.Author,
		URL:    b.URL,
		Likes:  b.Likes,
	}
}

func (c *APIClient) Create(ctx context.Context, blog NewBlog) (BlogEntry, error) {
	var created savedBlog
	if err := c.do(ctx, http.MethodPost, "/api/blogs", blog, &created); err != nil {
		return BlogEntry{}, err
	}
	return created.entry(), nil
}

// Update replaces the whole record stored under entry.ID.
func (c *APIClient) Update(ctx context.Context, entry BlogEntry) (BlogEntry, error) {
	var updated savedBlog
	if err := c.do(ctx, http.MethodPut, "/api/blogs/"+url.PathEscape(entry.ID), entry, &updated); err != nil {
		return BlogEntry{}, err
	}
	return updated.entry(), nil
}

func (c *APIClient) DeleteBlog(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/blogs/"+url.PathEscape(id), nil, nil)
}

func (c *APIClient) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.session.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &APIError{Message: noMessage, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{Status: resp.StatusCode, Message: readErrorBody(resp.Body)}
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s %s response: %w", method, path, err)
	}
	return nil
}

// readErrorBody returns the "error" field of a JSON error body, or
// noMessage when there is none.
func readErrorBody(r io.Reader) string {
	var body struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(io.LimitReader(r, 1<<16)).Decode(&body); err != nil || body.Error == "" {
		return noMessage
	}
	return body.Error
}
