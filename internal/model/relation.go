package model

import (
	"context"
	"time"
)

// Relation links a user to a catalog element.
type Relation struct {
	UserID    int64
	ElementID int64
	CreatedAt time.Time
}

// RelationStore defines persistence operations shared by cart and wishlist.
type RelationStore interface {
	ListByUser(ctx context.Context, userID int64) ([]Relation, error)
	Exists(ctx context.Context, userID, elementID int64) (bool, error)
	Create(ctx context.Context, userID, elementID int64) (Relation, error)
	Delete(ctx context.Context, userID, elementID int64) (Relation, error)
}

// CartStore persists cart items.
type CartStore interface {
	RelationStore
	DeleteByUser(ctx context.Context, userID int64) (int64, error)
}

// WishlistStore persists wishlist items.
type WishlistStore interface {
	RelationStore
}

// PurchaseStore persists purchased items. Rows are only written by checkout.
type PurchaseStore interface {
	ListByUser(ctx context.Context, userID int64) ([]Relation, error)
	Exists(ctx context.Context, userID, elementID int64) (bool, error)
	CreateMany(ctx context.Context, items []Relation) (int64, error)
}

// FavoriteKind discriminates what a favorite points at.
type FavoriteKind int16

const (
	KindArtist FavoriteKind = 0
	KindTrack  FavoriteKind = 1
	KindAlbum  FavoriteKind = 2
)

// FavoriteClass groups kinds for lookups: artists on one side, tracks and albums on the other.
type FavoriteClass int16

const (
	ClassArtist  FavoriteClass = 0
	ClassContent FavoriteClass = 1
)

// Valid reports whether k is a known kind.
func (k FavoriteKind) Valid() bool {
	return k == KindArtist || k == KindTrack || k == KindAlbum
}

// Class returns the lookup class of k.
func (k FavoriteKind) Class() FavoriteClass {
	if k == KindArtist {
		return ClassArtist
	}
	return ClassContent
}

// Favorite is a relation with a kind.
type Favorite struct {
	Relation
	Kind FavoriteKind
}

// FavoriteStore persists favorites. Uniqueness is per (user, element, class).
type FavoriteStore interface {
	ListByUser(ctx context.Context, userID int64) ([]Favorite, error)
	Exists(ctx context.Context, userID, elementID int64, class FavoriteClass) (bool, error)
	Create(ctx context.Context, userID, elementID int64, kind FavoriteKind) (Favorite, error)
	Delete(ctx context.Context, userID, elementID int64, class FavoriteClass) (Favorite, error)
}

// FavoriteEntry is a resolved favorite: exactly one of Artist or Element is set.
type FavoriteEntry struct {
	Artist  *Profile
	Element *Element
}
