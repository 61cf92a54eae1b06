package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/gc02/usuario-server/internal/dto"
	"github.com/gc02/usuario-server/internal/model"
)

// RelationService mocks the cart and wishlist services.
type RelationService struct {
	mock.Mock
}

func (m *RelationService) List(ctx context.Context, userID int64) ([]model.Element, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]model.Element), args.Error(1)
}

func (m *RelationService) Exists(ctx context.Context, userID, elementID int64) (bool, error) {
	args := m.Called(ctx, userID, elementID)
	return args.Bool(0), args.Error(1)
}

func (m *RelationService) Create(ctx context.Context, userID, elementID int64) (model.Relation, error) {
	args := m.Called(ctx, userID, elementID)
	return args.Get(0).(model.Relation), args.Error(1)
}

func (m *RelationService) Delete(ctx context.Context, userID, elementID int64) (model.Relation, error) {
	args := m.Called(ctx, userID, elementID)
	return args.Get(0).(model.Relation), args.Error(1)
}

// PurchaseService mocks the purchase service.
type PurchaseService struct {
	mock.Mock
}

func (m *PurchaseService) List(ctx context.Context, userID int64) ([]model.Element, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]model.Element), args.Error(1)
}

func (m *PurchaseService) Exists(ctx context.Context, userID, elementID int64) (bool, error) {
	args := m.Called(ctx, userID, elementID)
	return args.Bool(0), args.Error(1)
}

func (m *PurchaseService) Checkout(ctx context.Context, userID int64) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

// FavoriteService mocks the favorites service.
type FavoriteService struct {
	mock.Mock
}

func (m *FavoriteService) List(ctx context.Context, userID int64) ([]model.FavoriteEntry, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]model.FavoriteEntry), args.Error(1)
}

func (m *FavoriteService) Exists(ctx context.Context, userID, elementID int64, class model.FavoriteClass) (bool, error) {
	args := m.Called(ctx, userID, elementID, class)
	return args.Bool(0), args.Error(1)
}

func (m *FavoriteService) Create(ctx context.Context, userID, elementID int64, kind model.FavoriteKind) (model.Favorite, error) {
	args := m.Called(ctx, userID, elementID, kind)
	return args.Get(0).(model.Favorite), args.Error(1)
}

func (m *FavoriteService) Delete(ctx context.Context, userID, elementID int64, class model.FavoriteClass) (model.Favorite, error) {
	args := m.Called(ctx, userID, elementID, class)
	return args.Get(0).(model.Favorite), args.Error(1)
}

// ArtistService mocks the artist service.
type ArtistService struct {
	mock.Mock
}

func (m *ArtistService) List(ctx context.Context) ([]model.Profile, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.Profile), args.Error(1)
}

func (m *ArtistService) Get(ctx context.Context, id int64) (model.Profile, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Profile), args.Error(1)
}

// UserService mocks the account service.
type UserService struct {
	mock.Mock
}

func (m *UserService) ListPublic(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *UserService) GetPublic(ctx context.Context, id int64) (model.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *UserService) Login(ctx context.Context, uid string) (model.Profile, error) {
	args := m.Called(ctx, uid)
	return args.Get(0).(model.Profile), args.Error(1)
}

func (m *UserService) Logout(ctx context.Context, uid string) error {
	args := m.Called(ctx, uid)
	return args.Error(0)
}

func (m *UserService) Create(ctx context.Context, req dto.UserRequest) (model.Profile, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(model.Profile), args.Error(1)
}

func (m *UserService) Update(ctx context.Context, req dto.UserRequest) (model.Profile, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(model.Profile), args.Error(1)
}

func (m *UserService) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *UserService) UploadAvatar(ctx context.Context, id int64, avatar model.Avatar) (model.Profile, error) {
	args := m.Called(ctx, id, avatar)
	return args.Get(0).(model.Profile), args.Error(1)
}
