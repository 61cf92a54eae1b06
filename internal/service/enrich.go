package service

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/gc02/usuario-server/internal/model"
)

// fanOut calls fetch once per index with at most limit calls in flight.
// Results keep index order. The first error cancels the rest and is returned alone.
func fanOut[T any](ctx context.Context, limit, n int, fetch func(ctx context.Context, i int) (T, error)) ([]T, error) {
	out := make([]T, n)
	if n == 0 {
		return out, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}

	for i := 0; i < n; i++ {
		g.Go(func() error {
			v, err := fetch(ctx, i)
			if err != nil {
				return err
			}
			out[i] = v
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// enricher resolves catalog data for local rows through the content service.
type enricher struct {
	content model.ContentGateway
	limit   int
}

func (e enricher) elements(ctx context.Context, rels []model.Relation) ([]model.Element, error) {
	return fanOut(ctx, e.limit, len(rels), func(ctx context.Context, i int) (model.Element, error) {
		return e.content.GetElement(ctx, rels[i].ElementID)
	})
}

// profile attaches the artist genre when the user is an artist with one.
func (e enricher) profile(ctx context.Context, u model.User) (model.Profile, error) {
	p := model.Profile{User: u}
	if !u.IsArtist || u.Artist == nil || u.Artist.GenreID == nil {
		return p, nil
	}

	genre, err := e.content.GetGenre(ctx, *u.Artist.GenreID)
	if err != nil {
		return model.Profile{}, fmt.Errorf("failed to resolve genre of user %d: %w", u.ID, err)
	}
	p.Genre = &genre
	return p, nil
}

func (e enricher) profiles(ctx context.Context, users []model.User) ([]model.Profile, error) {
	return fanOut(ctx, e.limit, len(users), func(ctx context.Context, i int) (model.Profile, error) {
		return e.profile(ctx, users[i])
	})
}
