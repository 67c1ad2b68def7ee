package policy_test

import (
	"context"
	"testing"
	"time"

	"github.com/diewo77/go-todolist/auth"
	"github.com/diewo77/go-todolist/gate"
	"github.com/diewo77/go-todolist/internal/models"
	"github.com/diewo77/go-todolist/internal/policy"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupAuthorizer(t *testing.T) (*policy.Authorizer, *gorm.DB) {
	t.Helper()
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Task{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return policy.NewAuthorizer(db, time.Minute), db
}

func TestAuthorizer_AnonymousDenied(t *testing.T) {
	a, _ := setupAuthorizer(t)
	err := a.Authorize(context.Background(), gate.ActionList, policy.ResourceTask, nil)
	if err != gate.ErrUnauthorized {
		t.Fatalf("expected ErrUnauthorized for anonymous request, got %v", err)
	}
	if _, ok := a.CurrentUser(context.Background()); ok {
		t.Fatal("anonymous context should not resolve a principal")
	}
}

func TestAuthorizer_ResolvesPrincipalFromSession(t *testing.T) {
	a, db := setupAuthorizer(t)
	u := models.User{Username: "alice", Email: "alice@example.com", Password: "x"}
	if err := db.Create(&u).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}

	ctx := auth.WithUserID(context.Background(), u.ID)
	got, ok := a.CurrentUser(ctx)
	if !ok || got.Username != "alice" {
		t.Fatalf("expected alice, got %+v ok=%v", got, ok)
	}
	if err := a.Authorize(ctx, gate.ActionCreate, policy.ResourceTask, nil); err != nil {
		t.Fatalf("authenticated user should create tasks: %v", err)
	}
	if err := a.Authorize(ctx, gate.ActionList, policy.ResourceUser, nil); err != gate.ErrUnauthorized {
		t.Fatalf("base user should not list users, got %v", err)
	}
}

func TestAuthorizer_StaleSessionDenied(t *testing.T) {
	a, _ := setupAuthorizer(t)
	ctx := auth.WithUserID(context.Background(), 12345)
	if _, ok := a.CurrentUser(ctx); ok {
		t.Fatal("session for a deleted user should not resolve")
	}
}

func TestAuthorizer_InvalidateSeesRoleChange(t *testing.T) {
	a, db := setupAuthorizer(t)
	u := models.User{Username: "carol", Email: "carol@example.com", Password: "x"}
	if err := db.Create(&u).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	ctx := auth.WithUserID(context.Background(), u.ID)

	if a.Can(ctx, gate.ActionList, policy.ResourceUser, nil) {
		t.Fatal("carol is not yet admin")
	}
	if err := db.Model(&models.User{}).Where("id = ?", u.ID).Update("roles", models.RoleAdmin).Error; err != nil {
		t.Fatalf("update roles: %v", err)
	}
	a.Invalidate(u.ID)
	if !a.Can(ctx, gate.ActionList, policy.ResourceUser, nil) {
		t.Fatal("carol should be admin after invalidation")
	}
}
