package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/ricky24m/Etiketing-I-AMpelgading-Homeland/internal/logging"
)

// OrderStatus answers shopper status polls on the payment view. Reads hit
// the Redis mirror first; a miss falls through to MySQL and backfills the
// mirror so the next poll is cheap.
type OrderStatus struct {
	repo  OrderRepo
	cache StatusCache
}

func NewOrderStatus(repo OrderRepo, cache StatusCache) *OrderStatus {
	return &OrderStatus{repo: repo, cache: cache}
}

func (uc *OrderStatus) Get(ctx context.Context, orderID string) (string, error) {
	if uc.cache != nil {
		st, err := uc.cache.GetStatus(ctx, orderID)
		if err == nil {
			return st, nil
		}
		if !errors.Is(err, ErrNotFound) {
			logging.FromCtx(ctx).Warn("status cache read failed", "order_id", orderID, "err", err)
		}
	}

	rec, err := uc.repo.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	if uc.cache != nil {
		if err := uc.cache.SetStatus(ctx, orderID, rec.Status); err != nil {
			logging.FromCtx(ctx).Warn("status cache backfill failed", "order_id", orderID, "err", err)
		}
	}
	return rec.Status, nil
}
