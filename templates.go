package main

import (
	"embed"
	"fmt"
	"html/template"
	"net/url"
)

//go:embed templates/*.html
var templatesFS embed.FS

// hostname shortens a blog url for the collapsed list item.
func hostname(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return raw
	}
	return u.Host
}

func loadTemplates() (map[string]*template.Template, error) {
	templates := make(map[string]*template.Template)
	pages := []string{"login.html", "blogs.html"}

	funcs := template.FuncMap{
		"hostname": hostname,
	}

	for _, page := range pages {
		tmpl, err := template.New("").Funcs(funcs).ParseFS(templatesFS,
			"templates/base.html",
			"templates/"+page,
		)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", page, err)
		}
		templates[page] = tmpl
	}

	return templates, nil
}
