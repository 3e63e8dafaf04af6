package handler

import (
	"net/http"

	"github.com/msomdec/hrms/internal/view"
)

// HandleHome renders the landing page. "GET /" also catches unknown paths,
// which get a 404.
func HandleHome(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	view.HomePage().Render(r.Context(), w)
}
