// Package policy wires the gate library to the application's models:
// ownership rules for tasks, admin-only rules for user administration,
// and a cached DB resolver turning session ids into principals.
package policy

import (
	"context"

	"github.com/diewo77/go-todolist/gate"
	"github.com/diewo77/go-todolist/internal/models"
)

// ResourceTask and ResourceUser are the resource type names registered on
// the gate.
const (
	ResourceTask = "task"
	ResourceUser = "user"
)

// TaskPolicy decides access to tasks. Ownership is the primary boundary;
// the elevated role only widens access to tasks owned by the sentinel
// account. The gate already denies a nil principal before we get here.
type TaskPolicy struct{}

func NewTaskPolicy() *TaskPolicy { return &TaskPolicy{} }

// Can implements gate.Policy.
// View, Update, Delete share one rule and Toggle delegates to it: grant to
// the owner, or to an admin when the task is sentinel-owned. Create and
// List are granted to any authenticated principal; the resource is nil for
// those checks.
func (p *TaskPolicy) Can(_ context.Context, u *models.User, action gate.Action, resource any) bool {
	if u == nil {
		return false
	}
	switch action {
	case gate.ActionCreate, gate.ActionList:
		return true
	case gate.ActionView, gate.ActionUpdate, gate.ActionDelete, gate.ActionToggle:
		task, ok := resource.(*models.Task)
		if !ok || task == nil {
			return false
		}
		return p.canModify(task, u)
	}
	return false
}

// canModify is the single rule shared by view/edit/toggle/delete.
// An ownerless task matches nobody: it stays inaccessible to non-admins
// until reconciliation assigns it to the sentinel account.
func (p *TaskPolicy) canModify(task *models.Task, u *models.User) bool {
	if task.OwnedBy(u.ID) {
		return true
	}
	return u.IsAdmin() && task.SentinelOwned()
}
