package gate_test

import (
	"context"
	"testing"

	"github.com/diewo77/go-todolist/gate"
)

// mockPolicy is a simple policy for testing with uint principal type.
type mockPolicy struct {
	allowAll bool
}

func (p *mockPolicy) Can(_ context.Context, _ uint, _ gate.Action, _ any) bool {
	return p.allowAll
}

func TestGate_Authorize_NoPrincipal(t *testing.T) {
	g := gate.NewGate[uint]()
	g.Register("test", &mockPolicy{allowAll: true})

	err := g.Authorize(context.Background(), 0, gate.ActionView, "test", nil)
	if err != gate.ErrUnauthorized {
		t.Errorf("expected ErrUnauthorized, got %v", err)
	}
}

func TestGate_Authorize_NoPolicy(t *testing.T) {
	g := gate.NewGate[uint]()

	err := g.Authorize(context.Background(), 1, gate.ActionView, "unknown", nil)
	if err != gate.ErrNoPolicyDefined {
		t.Errorf("expected ErrNoPolicyDefined, got %v", err)
	}
}

func TestGate_Authorize_AllowedAndDenied(t *testing.T) {
	g := gate.NewGate[uint]()
	g.Register("test", &mockPolicy{allowAll: true})
	g.Register("denied", &mockPolicy{allowAll: false})

	if err := g.Authorize(context.Background(), 1, gate.ActionView, "test", nil); err != nil {
		t.Errorf("expected nil error, got %v", err)
	}
	if err := g.Authorize(context.Background(), 1, gate.ActionView, "denied", nil); err != gate.ErrUnauthorized {
		t.Errorf("expected ErrUnauthorized, got %v", err)
	}
}

func TestGate_Can(t *testing.T) {
	g := gate.NewGate[uint]()
	g.Register("test", &mockPolicy{allowAll: true})

	if !g.Can(context.Background(), 1, gate.ActionCreate, "test", nil) {
		t.Error("expected Can to return true")
	}

	g.Register("denied", &mockPolicy{allowAll: false})
	if g.Can(context.Background(), 1, gate.ActionCreate, "denied", nil) {
		t.Error("expected Can to return false")
	}
}

// Test with a pointer principal type to verify the nil check through generics.
type testPrincipal struct {
	ID    uint
	Admin bool
}

type principalPolicy struct{}

func (p *principalPolicy) Can(_ context.Context, u *testPrincipal, action gate.Action, _ any) bool {
	if u == nil {
		return false
	}
	if u.Admin {
		return true
	}
	return action == gate.ActionView
}

func TestGate_WithPointerPrincipal(t *testing.T) {
	g := gate.NewGate[*testPrincipal]()
	g.Register("resource", &principalPolicy{})

	admin := &testPrincipal{ID: 1, Admin: true}
	regular := &testPrincipal{ID: 2}

	if !g.Can(context.Background(), admin, gate.ActionDelete, "resource", nil) {
		t.Error("admin should be able to delete")
	}
	if g.Can(context.Background(), regular, gate.ActionDelete, "resource", nil) {
		t.Error("regular principal should not be able to delete")
	}
	if !g.Can(context.Background(), regular, gate.ActionView, "resource", nil) {
		t.Error("regular principal should be able to view")
	}

	// Nil principal is unauthorized without ever reaching the policy.
	err := g.Authorize(context.Background(), nil, gate.ActionView, "resource", nil)
	if err != gate.ErrUnauthorized {
		t.Errorf("nil principal should be unauthorized, got %v", err)
	}
}
