package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/gc02/usuario-server/internal/logger"
	"github.com/gc02/usuario-server/internal/model"
)

type Favorites struct {
	store  model.Store
	enrich enricher
	logger *logger.Logger
}

func NewFavorites(store model.Store, content model.ContentGateway, maxConcurrency int, logger *logger.Logger) *Favorites {
	return &Favorites{
		store:  store,
		enrich: enricher{content: content, limit: maxConcurrency},
		logger: logger,
	}
}

// List resolves every favorite: artists from the local store, tracks and albums from the content service.
func (s *Favorites) List(ctx context.Context, userID int64) ([]model.FavoriteEntry, error) {
	favs, err := s.store.Favorites().ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("Favorites service: failed to list favorites", "user_id", userID, "error", err.Error())
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}

	entries, err := fanOut(ctx, s.enrich.limit, len(favs), func(ctx context.Context, i int) (model.FavoriteEntry, error) {
		fav := favs[i]
		if fav.Kind.Class() == model.ClassArtist {
			return s.resolveArtist(ctx, fav.ElementID)
		}

		element, err := s.enrich.content.GetElement(ctx, fav.ElementID)
		if err != nil {
			return model.FavoriteEntry{}, err
		}
		return model.FavoriteEntry{Element: &element}, nil
	})
	if err != nil {
		s.logger.Error("Favorites service: failed to resolve favorites", "user_id", userID, "error", err.Error())
		return nil, err
	}

	return entries, nil
}

func (s *Favorites) resolveArtist(ctx context.Context, artistID int64) (model.FavoriteEntry, error) {
	user, err := s.store.Users().GetArtistByID(ctx, artistID)
	if err != nil {
		// %s drops the sentinel so a dangling favorite surfaces as an internal error
		return model.FavoriteEntry{}, fmt.Errorf("failed to get favorite artist %d: %s", artistID, err)
	}

	profile, err := s.enrich.profile(ctx, user)
	if err != nil {
		return model.FavoriteEntry{}, err
	}
	return model.FavoriteEntry{Artist: &profile}, nil
}

func (s *Favorites) Exists(ctx context.Context, userID, elementID int64, class model.FavoriteClass) (bool, error) {
	exists, err := s.store.Favorites().Exists(ctx, userID, elementID, class)
	if err != nil {
		s.logger.Error("Favorites service: failed to check favorite", "user_id", userID, "element_id", elementID, "class", class, "error", err.Error())
		return false, fmt.Errorf("failed to check favorite: %w", err)
	}
	return exists, nil
}

// Create marks the element. A track and an album with the same id share one slot.
func (s *Favorites) Create(ctx context.Context, userID, elementID int64, kind model.FavoriteKind) (model.Favorite, error) {
	if !kind.Valid() {
		return model.Favorite{}, fmt.Errorf("%w: unknown favorite kind %d", model.ErrValidation, kind)
	}

	fav, err := s.store.Favorites().Create(ctx, userID, elementID, kind)
	if err != nil {
		if errors.Is(err, model.ErrConflict) || errors.Is(err, model.ErrNotFound) {
			return model.Favorite{}, err
		}
		s.logger.Error("Favorites service: failed to create favorite", "user_id", userID, "element_id", elementID, "kind", kind, "error", err.Error())
		return model.Favorite{}, fmt.Errorf("failed to create favorite: %w", err)
	}

	return fav, nil
}

func (s *Favorites) Delete(ctx context.Context, userID, elementID int64, class model.FavoriteClass) (model.Favorite, error) {
	fav, err := s.store.Favorites().Delete(ctx, userID, elementID, class)
	if errors.Is(err, model.ErrNotFound) {
		return model.Favorite{}, err
	}
	if err != nil {
		s.logger.Error("Favorites service: failed to delete favorite", "user_id", userID, "element_id", elementID, "class", class, "error", err.Error())
		return model.Favorite{}, fmt.Errorf("failed to delete favorite: %w", err)
	}

	return fav, nil
}
