package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/gc02/usuario-server/internal/logger"
	"github.com/gc02/usuario-server/internal/model"
)

// relationService holds the list/exists/create/delete logic shared by the cart and the wishlist.
// Uniqueness is enforced by the table's primary key, so create and delete are single statements.
type relationService struct {
	name   string
	repo   model.RelationStore
	enrich enricher
	logger *logger.Logger
}

// List returns the catalog elements of the user's rows, in row order.
func (s *relationService) List(ctx context.Context, userID int64) ([]model.Element, error) {
	rels, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error(s.name+" service: failed to list items", "user_id", userID, "error", err.Error())
		return nil, fmt.Errorf("failed to list items: %w", err)
	}

	elements, err := s.enrich.elements(ctx, rels)
	if err != nil {
		s.logger.Error(s.name+" service: failed to resolve elements", "user_id", userID, "error", err.Error())
		return nil, err
	}

	return elements, nil
}

func (s *relationService) Exists(ctx context.Context, userID, elementID int64) (bool, error) {
	exists, err := s.repo.Exists(ctx, userID, elementID)
	if err != nil {
		s.logger.Error(s.name+" service: failed to check item", "user_id", userID, "element_id", elementID, "error", err.Error())
		return false, fmt.Errorf("failed to check item: %w", err)
	}
	return exists, nil
}

// Create adds the element. A second add of the same pair fails with model.ErrConflict.
func (s *relationService) Create(ctx context.Context, userID, elementID int64) (model.Relation, error) {
	rel, err := s.repo.Create(ctx, userID, elementID)
	if err != nil {
		if errors.Is(err, model.ErrConflict) || errors.Is(err, model.ErrNotFound) {
			s.logger.Info(s.name+" service: item not created", "user_id", userID, "element_id", elementID, "reason", err.Error())
			return model.Relation{}, err
		}
		s.logger.Error(s.name+" service: failed to create item", "user_id", userID, "element_id", elementID, "error", err.Error())
		return model.Relation{}, fmt.Errorf("failed to create item: %w", err)
	}

	s.logger.Debug(s.name+" service: item created", "user_id", userID, "element_id", elementID)
	return rel, nil
}

// Delete removes the element. An absent pair fails with model.ErrNotFound.
func (s *relationService) Delete(ctx context.Context, userID, elementID int64) (model.Relation, error) {
	rel, err := s.repo.Delete(ctx, userID, elementID)
	if errors.Is(err, model.ErrNotFound) {
		return model.Relation{}, err
	}
	if err != nil {
		s.logger.Error(s.name+" service: failed to delete item", "user_id", userID, "element_id", elementID, "error", err.Error())
		return model.Relation{}, fmt.Errorf("failed to delete item: %w", err)
	}

	s.logger.Debug(s.name+" service: item deleted", "user_id", userID, "element_id", elementID)
	return rel, nil
}

// Cart manages the shopping cart.
type Cart struct {
	relationService
}

func NewCart(store model.Store, content model.ContentGateway, maxConcurrency int, logger *logger.Logger) *Cart {
	return &Cart{relationService{
		name:   "Cart",
		repo:   store.Cart(),
		enrich: enricher{content: content, limit: maxConcurrency},
		logger: logger,
	}}
}

// Wishlist manages the wishlist.
type Wishlist struct {
	relationService
}

func NewWishlist(store model.Store, content model.ContentGateway, maxConcurrency int, logger *logger.Logger) *Wishlist {
	return &Wishlist{relationService{
		name:   "Wishlist",
		repo:   store.Wishlist(),
		enrich: enricher{content: content, limit: maxConcurrency},
		logger: logger,
	}}
}
