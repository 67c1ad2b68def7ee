// Package handlers contains the HTTP handlers: login/logout, the task
// CRUD pages and the admin user pages. Handlers translate service errors
// into the redirect + flash-notice contract of the HTML surface.
package handlers

import (
	"net/http"
	"strconv"

	"github.com/diewo77/go-todolist/internal/middleware"
	"github.com/diewo77/go-todolist/internal/policy"
	"github.com/diewo77/go-todolist/view"
)

// renderPage wraps view.Render, injecting the current principal and any
// pending flash notice so the layout and header can use them.
func renderPage(w http.ResponseWriter, r *http.Request, az *policy.Authorizer, name string, data map[string]any) {
	if data == nil {
		data = map[string]any{}
	}
	if u, ok := az.CurrentUser(r.Context()); ok {
		data["CurrentUser"] = u
		data["IsAdmin"] = u.IsAdmin()
	}
	if level, msg := middleware.PopFlash(w, r); msg != "" {
		data["FlashLevel"] = level
		data["FlashMessage"] = msg
	}
	if err := view.Render(w, r, name, data); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("template error"))
	}
}

// pathID parses the {id} path segment; 0 means absent or malformed.
func pathID(r *http.Request) uint {
	id64, err := strconv.ParseUint(r.PathValue("id"), 10, 64)
	if err != nil {
		return 0
	}
	return uint(id64)
}
