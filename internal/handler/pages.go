package handler

import (
	"net/http"
	"strings"
)

// Index serves the landing page
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	http.ServeFileFS(w, r, h.web, "index.html")
}

// ContactPage serves the contact page
func (h *Handler) ContactPage(w http.ResponseWriter, r *http.Request) {
	http.ServeFileFS(w, r, h.web, "contact.html")
}

// Static serves the remaining files of the web root. Directory listings are not exposed.
func (h *Handler) Static() http.Handler {
	files := http.FileServerFS(h.web)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/") {
			http.NotFound(w, r)
			return
		}
		files.ServeHTTP(w, r)
	})
}
