// Package web holds the static pages and assets served by the site.
package web

import (
	"embed"
	"io/fs"
	"os"
)

//go:embed index.html contact.html assets
var files embed.FS

// FS returns the web root: dir on disk when set, otherwise the embedded files.
func FS(dir string) fs.FS {
	if dir != "" {
		return os.DirFS(dir)
	}
	return files
}
