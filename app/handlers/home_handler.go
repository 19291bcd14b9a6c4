package handlers

import (
	"net/http"
	"strings"

	"github.com/unrolled/render"

	"github.com/Rakhulsr/go-storefront/app/utils/blobstore"
)

type HomeHandler struct {
	render *render.Render
}

func NewHomeHandler(r *render.Render) *HomeHandler {
	return &HomeHandler{render: r}
}

func (h *HomeHandler) Home(w http.ResponseWriter, r *http.Request) {
	h.render.JSON(w, http.StatusOK, map[string]string{"status": "ok", "message": "API is running"})
}

func (h *HomeHandler) Health(w http.ResponseWriter, r *http.Request) {
	h.render.JSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// NewUploadsHandler serves stored files from root, or redirects to publicURL when
// the files live in a bucket. Directory listings are never served.
func NewUploadsHandler(root, publicURL string) http.Handler {
	if publicURL != "" {
		base := strings.TrimRight(publicURL, "/")
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			name, err := blobstore.NameFromPath(r.URL.Path)
			if err != nil {
				http.NotFound(w, r)
				return
			}
			http.Redirect(w, r, base+"/"+blobstore.ObjectKey(name), http.StatusFound)
		})
	}

	files := http.StripPrefix(strings.TrimSuffix(blobstore.PublicPrefix, "/"), http.FileServer(http.Dir(root)))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := blobstore.NameFromPath(r.URL.Path); err != nil {
			http.NotFound(w, r)
			return
		}
		files.ServeHTTP(w, r)
	})
}
