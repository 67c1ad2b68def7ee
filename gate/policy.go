package gate

import "context"

// Policy defines authorization rules for a resource type.
// U is the principal type. Implementations decide whether principal may
// perform action on resource; for list/create checks resource may be nil.
type Policy[U any] interface {
	Can(ctx context.Context, principal U, action Action, resource any) bool
}
