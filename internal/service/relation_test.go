package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/gc02/usuario-server/internal/mocks"
	"github.com/gc02/usuario-server/internal/model"
	"github.com/gc02/usuario-server/internal/testutil"
)

func TestCartService_Create(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		repoErr   error
		wantErr   error
		wantPlain bool
	}{
		{name: "created"},
		{name: "duplicate", repoErr: model.ErrConflict, wantErr: model.ErrConflict},
		{name: "unknown user", repoErr: model.ErrNotFound, wantErr: model.ErrNotFound},
		{name: "database error", repoErr: errors.New("timeout"), wantPlain: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			store := mocks.NewStore()
			rel := model.Relation{UserID: 7, ElementID: 40}
			if tt.repoErr != nil {
				rel = model.Relation{}
			}
			store.CartRepo.On("Create", mock.Anything, int64(7), int64(40)).Return(rel, tt.repoErr)

			svc := NewCart(store, &mocks.ContentGateway{}, 4, testutil.MakeNoopLogger())

			got, err := svc.Create(context.Background(), 7, 40)
			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.wantPlain:
				require.Error(t, err)
				assert.NotErrorIs(t, err, model.ErrConflict)
				assert.NotErrorIs(t, err, model.ErrNotFound)
			default:
				require.NoError(t, err)
				assert.Equal(t, int64(40), got.ElementID)
			}

			store.AssertExpectations(t)
		})
	}
}

func TestWishlistService_Delete(t *testing.T) {
	t.Parallel()

	store := mocks.NewStore()
	store.WishlistRepo.On("Delete", mock.Anything, int64(7), int64(40)).Return(model.Relation{}, model.ErrNotFound).Once()
	store.WishlistRepo.On("Delete", mock.Anything, int64(7), int64(41)).Return(model.Relation{UserID: 7, ElementID: 41}, nil).Once()

	svc := NewWishlist(store, &mocks.ContentGateway{}, 4, testutil.MakeNoopLogger())

	_, err := svc.Delete(context.Background(), 7, 40)
	assert.ErrorIs(t, err, model.ErrNotFound)

	rel, err := svc.Delete(context.Background(), 7, 41)
	require.NoError(t, err)
	assert.Equal(t, int64(41), rel.ElementID)

	store.AssertExpectations(t)
	assert.Empty(t, store.CartRepo.Calls)
}

func TestCartService_List(t *testing.T) {
	t.Parallel()

	store := mocks.NewStore()
	content := &mocks.ContentGateway{}

	store.CartRepo.On("ListByUser", mock.Anything, int64(7)).Return([]model.Relation{
		{UserID: 7, ElementID: 40},
		{UserID: 7, ElementID: 41},
		{UserID: 7, ElementID: 42},
	}, nil)
	for _, id := range []int64{40, 41, 42} {
		content.On("GetElement", mock.Anything, id).Return(model.Element{ID: id}, nil)
	}

	svc := NewCart(store, content, 2, testutil.MakeNoopLogger())

	got, err := svc.List(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, got, 3)
	for i, id := range []int64{40, 41, 42} {
		assert.Equal(t, id, got[i].ID)
	}

	content.AssertExpectations(t)
}

func TestCartService_Exists(t *testing.T) {
	t.Parallel()

	store := mocks.NewStore()
	store.CartRepo.On("Exists", mock.Anything, int64(7), int64(40)).Return(true, nil)
	store.CartRepo.On("Exists", mock.Anything, int64(7), int64(41)).Return(false, errors.New("timeout"))

	svc := NewCart(store, &mocks.ContentGateway{}, 2, testutil.MakeNoopLogger())

	ok, err := svc.Exists(context.Background(), 7, 40)
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = svc.Exists(context.Background(), 7, 41)
	assert.Error(t, err)
}
