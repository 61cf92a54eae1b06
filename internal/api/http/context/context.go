package context

import (
	"context"
)

type uidKey struct{}

// Manager stores the verified identity subject on request contexts.
type Manager struct{}

// NewManager creates a new context manager instance.
func NewManager() *Manager {
	return &Manager{}
}

// SetUIDToContext returns a copy of ctx carrying uid.
func (m *Manager) SetUIDToContext(ctx context.Context, uid string) context.Context {
	return context.WithValue(ctx, uidKey{}, uid)
}

// GetUIDFromContext returns the uid stored by SetUIDToContext.
// An empty uid is reported as missing.
func (m *Manager) GetUIDFromContext(ctx context.Context) (string, bool) {
	uid, ok := ctx.Value(uidKey{}).(string)
	if !ok || uid == "" {
		return "", false
	}
	return uid, true
}
