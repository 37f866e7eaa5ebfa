// Package web holds the page templates and static assets.
package web

import (
	"embed"
	"html/template"
	"io/fs"
)

//go:embed templates static
var assets embed.FS

// FS returns the embedded assets rooted at the web directory.
func FS() fs.FS {
	return assets
}

// ParseTemplates parses templates/*.html from fsys.
func ParseTemplates(fsys fs.FS) (*template.Template, error) {
	return template.New("").ParseFS(fsys, "templates/*.html")
}
