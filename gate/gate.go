// Package gate provides a small Gate/Policy authorization system.
// The Gate is a central registry of policies; each Policy defines the
// authorization rules for one resource type. The package knows nothing
// about domain models and is generic over the principal type:
//   - Gate[uint] for user-id based checks
//   - Gate[*User] for full user struct based checks
package gate

import "context"

// Gate is the central authorization checkpoint.
// U is the principal type (must be comparable so the zero value can stand
// for "no authenticated principal"). Register policies by resource type
// name, then call Authorize or Can.
type Gate[U comparable] struct {
	policies map[string]Policy[U]
}

// NewGate creates an empty Gate ready to register policies.
func NewGate[U comparable]() *Gate[U] {
	return &Gate[U]{policies: make(map[string]Policy[U])}
}

// Register adds a policy for a given resource type (e.g., "task").
// Overwrites any existing policy for that type.
func (g *Gate[U]) Register(resourceType string, p Policy[U]) {
	g.policies[resourceType] = p
}

// Authorize checks authorization and returns an error if denied.
// A zero-value principal is always denied: unauthenticated requests never
// reach a policy. Returns ErrNoPolicyDefined if resourceType has no
// registered policy.
func (g *Gate[U]) Authorize(ctx context.Context, principal U, action Action, resourceType string, resource any) error {
	var zero U
	if principal == zero {
		return ErrUnauthorized
	}
	p, ok := g.policies[resourceType]
	if !ok {
		return ErrNoPolicyDefined
	}
	if !p.Can(ctx, principal, action, resource) {
		return ErrUnauthorized
	}
	return nil
}

// Can is a convenience wrapper returning bool instead of error.
func (g *Gate[U]) Can(ctx context.Context, principal U, action Action, resourceType string, resource any) bool {
	return g.Authorize(ctx, principal, action, resourceType, resource) == nil
}
