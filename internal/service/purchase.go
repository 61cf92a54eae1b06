package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gc02/usuario-server/internal/logger"
	"github.com/gc02/usuario-server/internal/model"
)

type Purchase struct {
	store  model.Store
	enrich enricher
	logger *logger.Logger
	now    func() time.Time
}

func NewPurchase(store model.Store, content model.ContentGateway, maxConcurrency int, logger *logger.Logger) *Purchase {
	return &Purchase{
		store:  store,
		enrich: enricher{content: content, limit: maxConcurrency},
		logger: logger,
		now:    time.Now,
	}
}

// List returns purchased elements, newest purchase first.
func (s *Purchase) List(ctx context.Context, userID int64) ([]model.Element, error) {
	rels, err := s.store.Purchases().ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("Purchase service: failed to list purchases", "user_id", userID, "error", err.Error())
		return nil, fmt.Errorf("failed to list purchases: %w", err)
	}

	elements, err := s.enrich.elements(ctx, rels)
	if err != nil {
		s.logger.Error("Purchase service: failed to resolve elements", "user_id", userID, "error", err.Error())
		return nil, err
	}

	return elements, nil
}

func (s *Purchase) Exists(ctx context.Context, userID, elementID int64) (bool, error) {
	exists, err := s.store.Purchases().Exists(ctx, userID, elementID)
	if err != nil {
		s.logger.Error("Purchase service: failed to check purchase", "user_id", userID, "element_id", elementID, "error", err.Error())
		return false, fmt.Errorf("failed to check purchase: %w", err)
	}
	return exists, nil
}

// Checkout moves the whole cart into the purchase history in one transaction.
// Elements bought before are skipped; the cart is emptied either way.
// It returns the number of new purchases, or model.ErrNothingToPurchase for an empty cart.
func (s *Purchase) Checkout(ctx context.Context, userID int64) (int64, error) {
	var inserted int64

	err := s.store.WithinTx(ctx, func(ctx context.Context, repos model.Repositories) error {
		items, err := repos.Cart().ListByUser(ctx, userID)
		if err != nil {
			return fmt.Errorf("failed to read cart: %w", err)
		}
		if len(items) == 0 {
			return model.ErrNothingToPurchase
		}

		now := s.now()
		purchases := make([]model.Relation, 0, len(items))
		for _, item := range items {
			purchases = append(purchases, model.Relation{UserID: userID, ElementID: item.ElementID, CreatedAt: now})
		}

		inserted, err = repos.Purchases().CreateMany(ctx, purchases)
		if err != nil {
			return fmt.Errorf("failed to record purchases: %w", err)
		}

		if _, err := repos.Cart().DeleteByUser(ctx, userID); err != nil {
			return fmt.Errorf("failed to empty cart: %w", err)
		}

		return nil
	})
	if errors.Is(err, model.ErrNothingToPurchase) {
		s.logger.Info("Purchase service: empty cart", "user_id", userID)
		return 0, err
	}
	if err != nil {
		s.logger.Error("Purchase service: checkout failed", "user_id", userID, "error", err.Error())
		return 0, err
	}

	s.logger.Info("Purchase service: checkout completed", "user_id", userID, "purchased", inserted)
	return inserted, nil
}
