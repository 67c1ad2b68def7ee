package policy

import (
	"context"
	"time"

	"github.com/diewo77/go-todolist/auth"
	"github.com/diewo77/go-todolist/gate"
	"github.com/diewo77/go-todolist/internal/models"
	"gorm.io/gorm"
)

// Authorizer is the application's central authorization point: a gate with
// the task and user policies registered, plus a cached resolver turning
// the session user id into the full principal record.
type Authorizer struct {
	Gate  *gate.Gate[*models.User]
	Users *gate.CachedResolver[uint, *models.User]
}

// NewAuthorizer creates a fully configured authorizer.
// cacheTTL bounds how long a principal record (and thus a role change) may
// be served from cache.
func NewAuthorizer(db *gorm.DB, cacheTTL time.Duration) *Authorizer {
	g := gate.NewGate[*models.User]()
	g.Register(ResourceTask, NewTaskPolicy())
	g.Register(ResourceUser, NewUserPolicy())
	return &Authorizer{
		Gate:  g,
		Users: gate.NewCachedResolver[uint, *models.User](NewDBUserResolver(db), cacheTTL),
	}
}

// CurrentUser resolves the authenticated principal from the request
// context, or returns (nil, false) for anonymous requests so every call
// site handles the unauthenticated case explicitly.
func (a *Authorizer) CurrentUser(ctx context.Context) (*models.User, bool) {
	uid, ok := auth.UserIDFromContext(ctx)
	if !ok || uid == 0 {
		return nil, false
	}
	u, err := a.Users.Resolve(ctx, uid)
	if err != nil || u == nil {
		return nil, false
	}
	return u, true
}

// Authorize checks whether the current principal may perform action on
// resource. Returns gate.ErrUnauthorized for anonymous requests.
func (a *Authorizer) Authorize(ctx context.Context, action gate.Action, resourceType string, resource any) error {
	u, ok := a.CurrentUser(ctx)
	if !ok {
		return gate.ErrUnauthorized
	}
	return a.Gate.Authorize(ctx, u, action, resourceType, resource)
}

// Can is a convenience wrapper returning bool instead of error.
func (a *Authorizer) Can(ctx context.Context, action gate.Action, resourceType string, resource any) bool {
	return a.Authorize(ctx, action, resourceType, resource) == nil
}

// Invalidate clears the cached principal for a user.
// Call it after edits that change roles or credentials.
func (a *Authorizer) Invalidate(uid uint) {
	a.Users.Invalidate(uid)
}
