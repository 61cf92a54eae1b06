package postgres

import (
	"context"

	"github.com/gc02/usuario-server/internal/dbx"
	"github.com/gc02/usuario-server/internal/model"
)

var _ model.Store = (*Store)(nil)

type repositories struct {
	db dbx.DBTX
}

func (r repositories) Users() model.UserStore         { return NewUserRepository(r.db) }
func (r repositories) Artists() model.ArtistStore     { return NewArtistRepository(r.db) }
func (r repositories) Cart() model.CartStore          { return NewCartRepository(r.db) }
func (r repositories) Wishlist() model.WishlistStore  { return NewWishlistRepository(r.db) }
func (r repositories) Favorites() model.FavoriteStore { return NewFavoriteRepository(r.db) }
func (r repositories) Purchases() model.PurchaseStore { return NewPurchaseRepository(r.db) }

// Store hands out repositories bound to the pool, or to a transaction inside WithinTx.
type Store struct {
	repositories
	conn *Connection
}

func NewStore(conn *Connection) *Store {
	return &Store{
		repositories: repositories{db: conn.DB},
		conn:         conn,
	}
}

func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, repos model.Repositories) error) error {
	return dbx.WithTx(ctx, s.conn.DB, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return fn(ctx, repositories{db: tx})
	})
}

func (s *Store) Ping(ctx context.Context) error {
	return s.conn.Ping(ctx)
}
