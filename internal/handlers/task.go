package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/diewo77/go-todolist/gate"
	"github.com/diewo77/go-todolist/i18n"
	"github.com/diewo77/go-todolist/internal/middleware"
	"github.com/diewo77/go-todolist/internal/policy"
	"github.com/diewo77/go-todolist/internal/services"
	"github.com/diewo77/go-todolist/validation"
)

// TaskHandler serves the task pages. Authorization sits in the service
// layer; the handler only translates outcomes into redirects and notices.
type TaskHandler struct {
	Svc *services.TaskService
	Az  *policy.Authorizer
}

func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	actor, _ := h.Az.CurrentUser(r.Context())
	tasks, err := h.Svc.List(r.Context(), actor)
	if err != nil {
		h.deny(w, r, err)
		return
	}
	renderPage(w, r, h.Az, "tasks/list.html", map[string]any{"Tasks": tasks})
}

func (h *TaskHandler) CreateForm(w http.ResponseWriter, r *http.Request) {
	renderPage(w, r, h.Az, "tasks/create.html", map[string]any{
		"Title":   "",
		"Content": "",
		"Errors":  validation.Violations{},
	})
}

func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	actor, _ := h.Az.CurrentUser(r.Context())
	title := r.PostFormValue("title")
	content := r.PostFormValue("content")

	_, err := h.Svc.Create(r.Context(), actor, title, content)
	if ve, ok := services.AsValidation(err); ok {
		renderPage(w, r, h.Az, "tasks/create.html", map[string]any{
			"Title":   title,
			"Content": content,
			"Errors":  ve.Violations,
		})
		return
	}
	if err != nil {
		h.deny(w, r, err)
		return
	}
	middleware.Flash(w, r, middleware.FlashSuccess, "flash.task_created")
	http.Redirect(w, r, "/tasks", http.StatusSeeOther)
}

func (h *TaskHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	actor, _ := h.Az.CurrentUser(r.Context())
	task, err := h.Svc.Get(r.Context(), actor, pathID(r))
	if err != nil {
		h.deny(w, r, err)
		return
	}
	renderPage(w, r, h.Az, "tasks/edit.html", map[string]any{
		"Task":    task,
		"Title":   task.Title,
		"Content": task.Content,
		"Errors":  validation.Violations{},
	})
}

func (h *TaskHandler) Edit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	actor, _ := h.Az.CurrentUser(r.Context())
	id := pathID(r)
	title := r.PostFormValue("title")
	content := r.PostFormValue("content")

	_, err := h.Svc.Edit(r.Context(), actor, id, title, content)
	if ve, ok := services.AsValidation(err); ok {
		task, gerr := h.Svc.Get(r.Context(), actor, id)
		if gerr != nil {
			h.deny(w, r, gerr)
			return
		}
		renderPage(w, r, h.Az, "tasks/edit.html", map[string]any{
			"Task":    task,
			"Title":   title,
			"Content": content,
			"Errors":  ve.Violations,
		})
		return
	}
	if err != nil {
		h.deny(w, r, err)
		return
	}
	middleware.Flash(w, r, middleware.FlashSuccess, "flash.task_updated")
	http.Redirect(w, r, "/tasks", http.StatusSeeOther)
}

func (h *TaskHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	actor, _ := h.Az.CurrentUser(r.Context())
	task, err := h.Svc.Toggle(r.Context(), actor, pathID(r))
	if err != nil {
		h.deny(w, r, err)
		return
	}
	lang := middleware.LangFrom(r)
	code := "flash.task_undone"
	if task.Done {
		code = "flash.task_done"
	}
	middleware.FlashMessage(w, r, middleware.FlashSuccess, fmt.Sprintf(i18n.T(lang, code), task.Title))
	http.Redirect(w, r, "/tasks", http.StatusSeeOther)
}

func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, _ := h.Az.CurrentUser(r.Context())
	if err := h.Svc.Delete(r.Context(), actor, pathID(r)); err != nil {
		h.deny(w, r, err)
		return
	}
	middleware.Flash(w, r, middleware.FlashSuccess, "flash.task_deleted")
	http.Redirect(w, r, "/tasks", http.StatusSeeOther)
}

// deny maps the remaining service errors: unknown task id becomes 404,
// an authorization refusal sends the user back to the list with a notice.
func (h *TaskHandler) deny(w http.ResponseWriter, r *http.Request, err error) {
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
