package model

import (
	"context"
	"time"
)

// UserStore defines persistence operations for users.
type UserStore interface {
	List(ctx context.Context) ([]User, error)
	ListArtists(ctx context.Context) ([]User, error)
	GetByID(ctx context.Context, id int64) (User, error)
	GetArtistByID(ctx context.Context, id int64) (User, error)
	Create(ctx context.Context, fields UserFields) (User, error)
	Update(ctx context.Context, id int64, fields UserFields) (User, error)
	Delete(ctx context.Context, id int64) (User, error)
}

// ArtistStore defines persistence operations for artist profiles.
type ArtistStore interface {
	Exists(ctx context.Context, userID int64) (bool, error)
	Create(ctx context.Context, userID int64, fields ArtistFields) (Artist, error)
	Update(ctx context.Context, userID int64, fields ArtistFields) (Artist, error)
	Delete(ctx context.Context, userID int64) error
}

// User is a platform account. Artist is set when the account has an artist profile.
type User struct {
	ID           int64
	Username     string
	RealName     *string
	PasswordHash *string
	Email        string
	Description  *string
	RegisteredAt time.Time
	PhotoPath    *string
	IsArtist     bool
	Artist       *Artist
}

// Artist extends a User that publishes content.
type Artist struct {
	UserID    int64
	IsNew     bool
	Listeners int64
	Rating    float64
	GenreID   *int64
}

// UserFields holds the user columns supplied by a request. Nil means not supplied.
type UserFields struct {
	Username     *string
	RealName     *string
	Password     *string
	Email        *string
	Description  *string
	RegisteredAt *time.Time
	PhotoPath    *string
	IsArtist     *bool
}

// ArtistFields holds the artist columns supplied by a request. Nil means not supplied.
type ArtistFields struct {
	IsNew     *bool
	Listeners *int64
	Rating    *float64
	GenreID   *int64
}

// Profile is a user together with the artist genre resolved from the content service.
type Profile struct {
	User  User
	Genre *Genre
}
