// Package web holds the page template and the browser script that drives
// the map.
package web

import (
	"embed"
	"html/template"
	"io/fs"
)

//go:embed templates/*.html static/*
var files embed.FS

func Templates() (*template.Template, error) {
	return template.New("").ParseFS(files, "templates/*.html")
}

func Static() (fs.FS, error) {
	return fs.Sub(files, "static")
}
