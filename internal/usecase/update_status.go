package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	domain "github.com/ricky24m/Etiketing-I-AMpelgading-Homeland/internal/entity"
	"github.com/ricky24m/Etiketing-I-AMpelgading-Homeland/internal/logging"
)

// UpdateOrderStatus is the administrative side of the status machine:
// an unconditional overwrite plus an audit timestamp. No transition table
// is enforced (any state may go to any state) so admin mistakes stay
// correctable. Concurrent updates race at last-write-wins granularity.
type UpdateOrderStatus struct {
	repo   OrderRepo
	cache  StatusCache
	events EventPublisher
	now    func() time.Time
}

func NewUpdateOrderStatus(repo OrderRepo, cache StatusCache, events EventPublisher) *UpdateOrderStatus {
	return &UpdateOrderStatus{repo: repo, cache: cache, events: events, now: time.Now}
}

func (uc *UpdateOrderStatus) Execute(ctx context.Context, orderID, status string) error {
	st, err := domain.ParseStatus(status)
	if err != nil {
		return err
	}

	at := uc.now()
	if err := uc.repo.UpdateStatus(ctx, orderID, string(st), at); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	// Best effort beyond this point; the row is already updated and the
	// next admin read hits MySQL directly.
	if uc.cache != nil {
		if err := uc.cache.SetStatus(ctx, orderID, string(st)); err != nil {
			logging.FromCtx(ctx).Warn("status cache refresh failed", "order_id", orderID, "err", err)
		}
	}
	if uc.events != nil {
		if err := uc.events.PublishStatusChanged(ctx, OrderStatusChangedMsg{
			OrderID:   orderID,
			Status:    string(st),
			ChangedAt: at,
		}); err != nil {
			logging.FromCtx(ctx).Warn("publish order.status_changed failed", "order_id", orderID, "err", err)
		}
	}
	return nil
}
