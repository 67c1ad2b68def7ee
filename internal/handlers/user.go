package handlers

import (
	"errors"
	"net/http"

	"github.com/diewo77/go-todolist/gate"
	"github.com/diewo77/go-todolist/internal/middleware"
	"github.com/diewo77/go-todolist/internal/models"
	"github.com/diewo77/go-todolist/internal/policy"
	"github.com/diewo77/go-todolist/internal/services"
	"github.com/diewo77/go-todolist/validation"
)

// UserHandler serves the admin-only user management pages.
type UserHandler struct {
	Svc *services.UserService
	Az  *policy.Authorizer
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	actor, _ := h.Az.CurrentUser(r.Context())
	users, err := h.Svc.List(r.Context(), actor)
	if err != nil {
		h.deny(w, r, err)
		return
	}
	renderPage(w, r, h.Az, "users/list.html", map[string]any{"Users": users})
}

func (h *UserHandler) CreateForm(w http.ResponseWriter, r *http.Request) {
	if err := h.Az.Authorize(r.Context(), gate.ActionCreate, policy.ResourceUser, nil); err != nil {
		h.deny(w, r, err)
		return
	}
	renderPage(w, r, h.Az, "users/create.html", map[string]any{
		"Username": "",
		"Email":    "",
		"Role":     models.RoleUser,
		"Errors":   validation.Violations{},
	})
}

func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	actor, _ := h.Az.CurrentUser(r.Context())
	in := formInput(r)

	_, err := h.Svc.Create(r.Context(), actor, in)
	if ve, ok := services.AsValidation(err); ok {
		renderPage(w, r, h.Az, "users/create.html", map[string]any{
			"Username": in.Username,
			"Email":    in.Email,
			"Role":     in.Role,
			"Errors":   ve.Violations,
		})
		return
	}
	if err != nil {
		h.deny(w, r, err)
		return
	}
	middleware.Flash(w, r, middleware.FlashSuccess, "flash.user_created")
	http.Redirect(w, r, "/users", http.StatusSeeOther)
}

func (h *UserHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	actor, _ := h.Az.CurrentUser(r.Context())
	user, err := h.Svc.Get(r.Context(), actor, pathID(r))
	if err != nil {
		h.deny(w, r, err)
		return
	}
	role := models.RoleUser
	if user.IsAdmin() {
		role = models.RoleAdmin
	}
	renderPage(w, r, h.Az, "users/edit.html", map[string]any{
		"EditedUser": user,
		"Username":   user.Username,
		"Email":      user.Email,
		"Role":       role,
		"Errors":     validation.Violations{},
	})
}

func (h *UserHandler) Edit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	actor, _ := h.Az.CurrentUser(r.Context())
	id := pathID(r)
	in := formInput(r)

	_, err := h.Svc.Update(r.Context(), actor, id, in)
	if ve, ok := services.AsValidation(err); ok {
		user, gerr := h.Svc.Get(r.Context(), actor, id)
		if gerr != nil {
			h.deny(w, r, gerr)
			return
		}
		renderPage(w, r, h.Az, "users/edit.html", map[string]any{
			"EditedUser": user,
			"Username":   in.Username,
			"Email":      in.Email,
			"Role":       in.Role,
			"Errors":     ve.Violations,
		})
		return
	}
	if err != nil {
		h.deny(w, r, err)
		return
	}
	middleware.Flash(w, r, middleware.FlashSuccess, "flash.user_updated")
	http.Redirect(w, r, "/users", http.StatusSeeOther)
}

func formInput(r *http.Request) services.UserInput {
	return services.UserInput{
		Username: r.PostFormValue("username"),
		Email:    r.PostFormValue("email"),
		Password: r.PostFormValue("password"),
		Confirm:  r.PostFormValue("confirm"),
		Role:     r.PostFormValue("role"),
	}
}

// deny: user management is reserved to admins, so a refusal means the
// visitor does not belong here and is sent back to the task list.
func (h *UserHandler) deny(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		http.NotFound(w, r)
	case errors.Is(err, gate.ErrUnauthorized):
		middleware.Flash(w, r, middleware.FlashError, "flash.task_forbidden")
		http.Redirect(w, r, "/tasks", http.StatusSeeOther)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
