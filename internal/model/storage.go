package model

import (
	"context"
	"io"
)

// Storage stores binary objects such as avatars.
type Storage interface {
	Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error
	Delete(ctx context.Context, key string) error
	URL(key string) string
	KeyFromURL(url string) (string, bool)
}

// Avatar is an uploaded profile picture.
type Avatar struct {
	Reader      io.Reader
	Size        int64
	ContentType string
	Ext         string
}
