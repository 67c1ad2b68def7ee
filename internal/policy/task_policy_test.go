package policy_test

import (
	"context"
	"testing"

	"github.com/diewo77/go-todolist/gate"
	"github.com/diewo77/go-todolist/internal/models"
	"github.com/diewo77/go-todolist/internal/policy"
)

func taskOwnedBy(owner *models.User) *models.Task {
	t := &models.Task{ID: 1, Title: "t", Content: "c"}
	if owner != nil {
		t.UserID = &owner.ID
		t.User = owner
	}
	return t
}

var modifyActions = []gate.Action{gate.ActionView, gate.ActionUpdate, gate.ActionToggle, gate.ActionDelete}

func TestTaskPolicy_OwnerCanDoEverything(t *testing.T) {
	p := policy.NewTaskPolicy()
	ctx := context.Background()
	alice := &models.User{ID: 2, Username: "alice"}
	task := taskOwnedBy(alice)

	for _, action := range modifyActions {
		if !p.Can(ctx, alice, action, task) {
			t.Errorf("owner should be granted %s", action)
		}
	}
}

func TestTaskPolicy_NonOwnerDenied(t *testing.T) {
	p := policy.NewTaskPolicy()
	ctx := context.Background()
	alice := &models.User{ID: 2, Username: "alice"}
	bob := &models.User{ID: 3, Username: "bob"}
	task := taskOwnedBy(alice)

	for _, action := range modifyActions {
		if p.Can(ctx, bob, action, task) {
			t.Errorf("non-owner should be denied %s", action)
		}
	}
}

// The admin bypass is scoped to sentinel-owned tasks only.
func TestTaskPolicy_AdminAndSentinelOwner(t *testing.T) {
	p := policy.NewTaskPolicy()
	ctx := context.Background()
	admin := &models.User{ID: 1, Username: "admin", Roles: models.RoleAdmin}
	sentinel := &models.User{ID: 9, Username: models.SentinelUsername, Roles: models.RoleAdmin}
	bob := &models.User{ID: 3, Username: "bob"}

	sentinelTask := taskOwnedBy(sentinel)
	bobTask := taskOwnedBy(bob)

	for _, action := range modifyActions {
		if !p.Can(ctx, admin, action, sentinelTask) {
			t.Errorf("admin should be granted %s on sentinel-owned task", action)
		}
		if p.Can(ctx, admin, action, bobTask) {
			t.Errorf("admin should be denied %s on bob's task", action)
		}
	}
}

// Edit, toggle and delete share one rule: for every principal/task pair
// the three decisions are identical.
func TestTaskPolicy_ModifyActionsShareOneRule(t *testing.T) {
	p := policy.NewTaskPolicy()
	ctx := context.Background()
	admin := &models.User{ID: 1, Username: "admin", Roles: models.RoleAdmin}
	alice := &models.User{ID: 2, Username: "alice"}
	bob := &models.User{ID: 3, Username: "bob"}
	sentinel := &models.User{ID: 9, Username: models.SentinelUsername, Roles: models.RoleAdmin}

	actors := []*models.User{admin, alice, bob, sentinel}
	tasks := []*models.Task{taskOwnedBy(alice), taskOwnedBy(bob), taskOwnedBy(sentinel), taskOwnedBy(nil)}

	for _, actor := range actors {
		for _, task := range tasks {
			edit := p.Can(ctx, actor, gate.ActionUpdate, task)
			toggle := p.Can(ctx, actor, gate.ActionToggle, task)
			del := p.Can(ctx, actor, gate.ActionDelete, task)
			if edit != toggle || toggle != del {
				t.Errorf("actor %s task owner %v: edit=%v toggle=%v delete=%v",
					actor.Username, task.UserID, edit, toggle, del)
			}
		}
	}
}

func TestTaskPolicy_OwnerlessTaskMatchesNobody(t *testing.T) {
	p := policy.NewTaskPolicy()
	ctx := context.Background()
	admin := &models.User{ID: 1, Username: "admin", Roles: models.RoleAdmin}
	alice := &models.User{ID: 2, Username: "alice"}
	orphan := taskOwnedBy(nil)

	for _, action := range modifyActions {
		if p.Can(ctx, alice, action, orphan) {
			t.Errorf("base user should be denied %s on ownerless task", action)
		}
		// No owner means no sentinel owner either: admins wait for reconciliation.
		if p.Can(ctx, admin, action, orphan) {
			t.Errorf("admin should be denied %s on ownerless task", action)
		}
	}
}

func TestTaskPolicy_CreateForAnyAuthenticated(t *testing.T) {
	p := policy.NewTaskPolicy()
	ctx := context.Background()
	alice := &models.User{ID: 2, Username: "alice"}

	if !p.Can(ctx, alice, gate.ActionCreate, nil) {
		t.Error("authenticated user should be able to create")
	}
	if !p.Can(ctx, alice, gate.ActionList, nil) {
		t.Error("authenticated user should be able to list")
	}
	if p.Can(ctx, nil, gate.ActionCreate, nil) {
		t.Error("nil principal should be denied even on create")
	}
}

func TestTaskPolicy_NonTaskResourceDenied(t *testing.T) {
	p := policy.NewTaskPolicy()
	alice := &models.User{ID: 2, Username: "alice"}
	if p.Can(context.Background(), alice, gate.ActionView, &models.User{ID: 2}) {
		t.Error("non-task resource should be denied")
	}
	if p.Can(context.Background(), alice, gate.ActionView, nil) {
		t.Error("missing task resource should be denied for view")
	}
}
