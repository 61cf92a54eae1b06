package model

import "context"

// ContextManager stores and reads the authenticated subject on a request context.
type ContextManager interface {
	SetUIDToContext(ctx context.Context, uid string) context.Context
	GetUIDFromContext(ctx context.Context) (string, bool)
}
