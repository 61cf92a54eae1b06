package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"github.com/gc02/usuario-server/internal/model"
)

// IdentityProvider mocks model.IdentityProvider.
type IdentityProvider struct {
	mock.Mock
}

func (m *IdentityProvider) VerifyIDToken(ctx context.Context, token string) (model.Identity, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(model.Identity), args.Error(1)
}

func (m *IdentityProvider) CreateAccount(ctx context.Context, account model.NewAccount) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *IdentityProvider) DeleteAccount(ctx context.Context, uid string) error {
	args := m.Called(ctx, uid)
	return args.Error(0)
}

func (m *IdentityProvider) RevokeSessions(ctx context.Context, uid string) error {
	args := m.Called(ctx, uid)
	return args.Error(0)
}

// ContentGateway mocks model.ContentGateway.
type ContentGateway struct {
	mock.Mock
}

func (m *ContentGateway) GetElement(ctx context.Context, id int64) (model.Element, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Element), args.Error(1)
}

func (m *ContentGateway) GetGenre(ctx context.Context, id int64) (model.Genre, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Genre), args.Error(1)
}

// Storage mocks model.Storage.
type Storage struct {
	mock.Mock
}

func (m *Storage) Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error {
	args := m.Called(ctx, key, reader, size, contentType)
	return args.Error(0)
}

func (m *Storage) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *Storage) URL(key string) string {
	args := m.Called(key)
	return args.String(0)
}

func (m *Storage) KeyFromURL(url string) (string, bool) {
	args := m.Called(url)
	return args.String(0), args.Bool(1)
}
