package model

import "context"

// Repositories groups the stores bound to one database handle.
type Repositories interface {
	Users() UserStore
	Artists() ArtistStore
	Cart() CartStore
	Wishlist() WishlistStore
	Favorites() FavoriteStore
	Purchases() PurchaseStore
}

// Store exposes repositories and runs multi-statement work in a transaction.
// Repositories passed to fn are bound to the transaction; a non-nil error from fn rolls it back.
type Store interface {
	Repositories
	WithinTx(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error
	Ping(ctx context.Context) error
}
