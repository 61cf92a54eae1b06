package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/gc02/usuario-server/internal/model"
)

// UserStore mocks model.UserStore.
type UserStore struct {
	mock.Mock
}

func (m *UserStore) List(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *UserStore) ListArtists(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *UserStore) GetByID(ctx context.Context, id int64) (model.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *UserStore) GetArtistByID(ctx context.Context, id int64) (model.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *UserStore) Create(ctx context.Context, fields model.UserFields) (model.User, error) {
	args := m.Called(ctx, fields)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *UserStore) Update(ctx context.Context, id int64, fields model.UserFields) (model.User, error) {
	args := m.Called(ctx, id, fields)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *UserStore) Delete(ctx context.Context, id int64) (model.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.User), args.Error(1)
}

// ArtistStore mocks model.ArtistStore.
type ArtistStore struct {
	mock.Mock
}

func (m *ArtistStore) Exists(ctx context.Context, userID int64) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

func (m *ArtistStore) Create(ctx context.Context, userID int64, fields model.ArtistFields) (model.Artist, error) {
	args := m.Called(ctx, userID, fields)
	return args.Get(0).(model.Artist), args.Error(1)
}

func (m *ArtistStore) Update(ctx context.Context, userID int64, fields model.ArtistFields) (model.Artist, error) {
	args := m.Called(ctx, userID, fields)
	return args.Get(0).(model.Artist), args.Error(1)
}

func (m *ArtistStore) Delete(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// RelationStore mocks model.CartStore and model.WishlistStore.
type RelationStore struct {
	mock.Mock
}

func (m *RelationStore) ListByUser(ctx context.Context, userID int64) ([]model.Relation, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]model.Relation), args.Error(1)
}

func (m *RelationStore) Exists(ctx context.Context, userID, elementID int64) (bool, error) {
	args := m.Called(ctx, userID, elementID)
	return args.Bool(0), args.Error(1)
}

func (m *RelationStore) Create(ctx context.Context, userID, elementID int64) (model.Relation, error) {
	args := m.Called(ctx, userID, elementID)
	return args.Get(0).(model.Relation), args.Error(1)
}

func (m *RelationStore) Delete(ctx context.Context, userID, elementID int64) (model.Relation, error) {
	args := m.Called(ctx, userID, elementID)
	return args.Get(0).(model.Relation), args.Error(1)
}

func (m *RelationStore) DeleteByUser(ctx context.Context, userID int64) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

// PurchaseStore mocks model.PurchaseStore.
type PurchaseStore struct {
	mock.Mock
}

func (m *PurchaseStore) ListByUser(ctx context.Context, userID int64) ([]model.Relation, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]model.Relation), args.Error(1)
}

func (m *PurchaseStore) Exists(ctx context.Context, userID, elementID int64) (bool, error) {
	args := m.Called(ctx, userID, elementID)
	return args.Bool(0), args.Error(1)
}

func (m *PurchaseStore) CreateMany(ctx context.Context, items []model.Relation) (int64, error) {
	args := m.Called(ctx, items)
	return args.Get(0).(int64), args.Error(1)
}

// FavoriteStore mocks model.FavoriteStore.
type FavoriteStore struct {
	mock.Mock
}

func (m *FavoriteStore) ListByUser(ctx context.Context, userID int64) ([]model.Favorite, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]model.Favorite), args.Error(1)
}

func (m *FavoriteStore) Exists(ctx context.Context, userID, elementID int64, class model.FavoriteClass) (bool, error) {
	args := m.Called(ctx, userID, elementID, class)
	return args.Bool(0), args.Error(1)
}

func (m *FavoriteStore) Create(ctx context.Context, userID, elementID int64, kind model.FavoriteKind) (model.Favorite, error) {
	args := m.Called(ctx, userID, elementID, kind)
	return args.Get(0).(model.Favorite), args.Error(1)
}

func (m *FavoriteStore) Delete(ctx context.Context, userID, elementID int64, class model.FavoriteClass) (model.Favorite, error) {
	args := m.Called(ctx, userID, elementID, class)
	return args.Get(0).(model.Favorite), args.Error(1)
}

// Store is an in-memory model.Store whose repositories are mocks.
// WithinTx runs fn against the same mocks and counts commits and rollbacks.
type Store struct {
	UserRepo     *UserStore
	ArtistRepo   *ArtistStore
	CartRepo     *RelationStore
	WishlistRepo *RelationStore
	FavoriteRepo *FavoriteStore
	PurchaseRepo *PurchaseStore

	CommitErr error
	PingErr   error
	Commits   int
	Rollbacks int
}

var _ model.Store = (*Store)(nil)

func NewStore() *Store {
	return &Store{
		UserRepo:     &UserStore{},
		ArtistRepo:   &ArtistStore{},
		CartRepo:     &RelationStore{},
		WishlistRepo: &RelationStore{},
		FavoriteRepo: &FavoriteStore{},
		PurchaseRepo: &PurchaseStore{},
	}
}

func (s *Store) Users() model.UserStore         { return s.UserRepo }
func (s *Store) Artists() model.ArtistStore     { return s.ArtistRepo }
func (s *Store) Cart() model.CartStore          { return s.CartRepo }
func (s *Store) Wishlist() model.WishlistStore  { return s.WishlistRepo }
func (s *Store) Favorites() model.FavoriteStore { return s.FavoriteRepo }
func (s *Store) Purchases() model.PurchaseStore { return s.PurchaseRepo }

func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, repos model.Repositories) error) error {
	if err := fn(ctx, s); err != nil {
		s.Rollbacks++
		return err
	}
	if s.CommitErr != nil {
		s.Rollbacks++
		return s.CommitErr
	}
	s.Commits++
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.PingErr
}

// AssertExpectations checks every repository mock.
func (s *Store) AssertExpectations(t mock.TestingT) {
	s.UserRepo.AssertExpectations(t)
	s.ArtistRepo.AssertExpectations(t)
	s.CartRepo.AssertExpectations(t)
	s.WishlistRepo.AssertExpectations(t)
	s.FavoriteRepo.AssertExpectations(t)
	s.PurchaseRepo.AssertExpectations(t)
}
