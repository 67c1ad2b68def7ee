package handlers

import (
	"errors"
	"log"
	"net/http"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/diewo77/go-todolist/auth"
	"github.com/diewo77/go-todolist/i18n"
	"github.com/diewo77/go-todolist/internal/middleware"
	"github.com/diewo77/go-todolist/internal/models"
	"github.com/diewo77/go-todolist/internal/policy"
)

// AuthHandler serves the login form and manages the session cookie.
type AuthHandler struct {
	DB *gorm.DB
	Az *policy.Authorizer
}

func (h *AuthHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.Az.CurrentUser(r.Context()); ok {
		http.Redirect(w, r, "/tasks", http.StatusSeeOther)
		return
	}
	renderPage(w, r, h.Az, "login.html", map[string]any{"Username": ""})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	username := r.PostFormValue("username")
	password := r.PostFormValue("password")

	var user models.User
	err := h.DB.Where("username = ?", username).First(&user).Error
	if err == nil {
		err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password))
	}
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) && !errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			log.Printf("login: %v", err)
		}
		lang := middleware.LangFrom(r)
		renderPage(w, r, h.Az, "login.html", map[string]any{
			"Username": username,
			"Error":    i18n.T(lang, "login.failed"),
		})
		return
	}

	auth.CreateSession(w, user.ID)
	http.Redirect(w, r, "/tasks", http.StatusSeeOther)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	auth.ClearSession(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
