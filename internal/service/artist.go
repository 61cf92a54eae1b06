package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/gc02/usuario-server/internal/logger"
	"github.com/gc02/usuario-server/internal/model"
)

type Artist struct {
	store  model.Store
	enrich enricher
	logger *logger.Logger
}

func NewArtist(store model.Store, content model.ContentGateway, maxConcurrency int, logger *logger.Logger) *Artist {
	return &Artist{
		store:  store,
		enrich: enricher{content: content, limit: maxConcurrency},
		logger: logger,
	}
}

// List returns every artist with its genre resolved.
func (s *Artist) List(ctx context.Context) ([]model.Profile, error) {
	users, err := s.store.Users().ListArtists(ctx)
	if err != nil {
		s.logger.Error("Artist service: failed to list artists", "error", err.Error())
		return nil, fmt.Errorf("failed to list artists: %w", err)
	}

	profiles, err := s.enrich.profiles(ctx, users)
	if err != nil {
		s.logger.Error("Artist service: failed to resolve genres", "error", err.Error())
		return nil, err
	}

	return profiles, nil
}

func (s *Artist) Get(ctx context.Context, id int64) (model.Profile, error) {
	user, err := s.store.Users().GetArtistByID(ctx, id)
	if errors.Is(err, model.ErrNotFound) {
		return model.Profile{}, err
	}
	if err != nil {
		s.logger.Error("Artist service: failed to get artist", "artist_id", id, "error", err.Error())
		return model.Profile{}, fmt.Errorf("failed to get artist: %w", err)
	}

	profile, err := s.enrich.profile(ctx, user)
	if err != nil {
		s.logger.Error("Artist service: failed to resolve genre", "artist_id", id, "error", err.Error())
		return model.Profile{}, err
	}

	return profile, nil
}
