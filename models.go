package main

// Session is the logged-in user as returned by POST /api/login.
type Session struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Token    string `json:"token"`
}

// Owner is the display part of the user that created a blog entry.
type Owner struct {
	Username string `json:"username"`
	Name     string `json:"name"`
}

type BlogEntry struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author"`
	URL    string `json:"url"`
	Likes  int    `json:"likes"`
	User   *Owner `json:"user,omitempty"`
}

// NewBlog holds the fields submitted through the create form.
type NewBlog struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	URL    string `json:"url"`
}

type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

const (
	NoticeSuccess = "success"
	NoticeError   = "error"
)

type Notice struct {
	Type    string
	Message string
}
