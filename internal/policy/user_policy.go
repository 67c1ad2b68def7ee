package policy

import (
	"context"

	"github.com/diewo77/go-todolist/gate"
	"github.com/diewo77/go-todolist/internal/models"
)

// UserPolicy decides access to user administration. Every action is
// reserved to the elevated role, unconditional on the target: an admin may
// list, create, view and edit any account.
type UserPolicy struct{}

func NewUserPolicy() *UserPolicy { return &UserPolicy{} }

// Can implements gate.Policy.
func (p *UserPolicy) Can(_ context.Context, u *models.User, _ gate.Action, _ any) bool {
	return u != nil && u.IsAdmin()
}
