package main

import (
	"log"
	"net/http"
	"time"

	"gorm.io/gorm"

	"github.com/diewo77/go-todolist/auth"
	"github.com/diewo77/go-todolist/httpx"
	"github.com/diewo77/go-todolist/internal/handlers"
	"github.com/diewo77/go-todolist/internal/middleware"
	"github.com/diewo77/go-todolist/internal/policy"
	"github.com/diewo77/go-todolist/internal/services"
	"github.com/diewo77/go-todolist/view"
)

// App is the main application handler that wires services, policies and
// routes together.
type App struct {
	mux *http.ServeMux
	db  *gorm.DB
	az  *policy.Authorizer
}

// NewApp creates the application with all routes configured.
func NewApp(db *gorm.DB) *App {
	az := policy.NewAuthorizer(db, 30*time.Second)
	app := &App{
		mux: http.NewServeMux(),
		db:  db,
		az:  az,
	}

	ah := &handlers.AuthHandler{DB: db, Az: az}
	th := &handlers.TaskHandler{Svc: services.NewTaskService(db, az.Gate), Az: az}
	uh := &handlers.UserHandler{Svc: services.NewUserService(db, az), Az: az}

	// Public routes
	app.mux.HandleFunc("GET /{$}", app.landingPage)
	app.mux.HandleFunc("GET /login", ah.LoginForm)
	app.mux.HandleFunc("POST /login", ah.Login)
	app.mux.HandleFunc("GET /logout", ah.Logout)
	app.mux.HandleFunc("POST /logout", ah.Logout)
	app.mux.HandleFunc("GET /health", app.health)
	app.mux.HandleFunc("GET /healthz", app.health)

	// Task routes. Per-task authorization happens in the service layer;
	// the middleware only guarantees a logged-in visitor.
	app.mux.Handle("GET /tasks", app.requireAuth(http.HandlerFunc(th.List)))
	app.mux.Handle("GET /tasks/create", app.requireAuth(http.HandlerFunc(th.CreateForm)))
	app.mux.Handle("POST /tasks/create", app.requireAuth(http.HandlerFunc(th.Create)))
	app.mux.Handle("GET /tasks/{id}/edit", app.requireAuth(http.HandlerFunc(th.EditForm)))
	app.mux.Handle("POST /tasks/{id}/edit", app.requireAuth(http.HandlerFunc(th.Edit)))
	app.mux.Handle("GET /tasks/{id}/validate", app.requireAuth(http.HandlerFunc(th.Toggle)))
	app.mux.Handle("POST /tasks/{id}/validate", app.requireAuth(http.HandlerFunc(th.Toggle)))
	app.mux.Handle("GET /tasks/{id}/delete", app.requireAuth(http.HandlerFunc(th.Delete)))

	// User management, admins only (enforced by the user policy)
	app.mux.Handle("GET /users", app.requireAuth(http.HandlerFunc(uh.List)))
	app.mux.Handle("GET /users/create", app.requireAuth(http.HandlerFunc(uh.CreateForm)))
	app.mux.Handle("POST /users/create", app.requireAuth(http.HandlerFunc(uh.Create)))
	app.mux.Handle("GET /users/{id}/edit", app.requireAuth(http.HandlerFunc(uh.EditForm)))
	app.mux.Handle("POST /users/{id}/edit", app.requireAuth(http.HandlerFunc(uh.Edit)))

	// Static files
	app.mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir("static"))))

	return app
}

// ServeHTTP implements http.Handler. Global middleware: session parsing,
// visitor preferences, panic recovery.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	handler := a.recoverPanics(auth.Middleware(middleware.Prefs(a.mux)))
	handler.ServeHTTP(w, r)
}

// requireAuth redirects anonymous visitors to the login page.
func (a *App) requireAuth(next http.Handler) http.Handler {
	return auth.RequireAuth(next)
}

func (a *App) recoverPanics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Printf("panic serving %s %s: %v", r.Method, r.URL.Path, rec)
				httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func (a *App) landingPage(w http.ResponseWriter, r *http.Request) {
	if _, ok := a.az.CurrentUser(r.Context()); ok {
		http.Redirect(w, r, "/tasks", http.StatusSeeOther)
		return
	}
	data := map[string]any{}
	if err := view.Render(w, r, "index.html", data); err != nil {
		http.Error(w, "failed to render template: "+err.Error(), http.StatusInternalServerError)
	}
}

func (a *App) health(w http.ResponseWriter, r *http.Request) {
	sqlDB, err := a.db.DB()
	if err == nil {
		err = sqlDB.Ping()
	}
	if err != nil {
		httpx.JSONError(w, http.StatusServiceUnavailable, "db_unreachable", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
