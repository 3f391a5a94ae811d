package usecase

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	domain "github.com/ricky24m/Etiketing-I-AMpelgading-Homeland/internal/entity"
	"github.com/ricky24m/Etiketing-I-AMpelgading-Homeland/internal/logging"
)

var ErrDuplicateSubmission = errors.New("duplicate submission in flight")

type SubmitOrderInput struct {
	Draft domain.OrderDraft
	// Optional. Two structurally identical drafts without a key yield two
	// distinct orders; with the same key the first order id is returned.
	IdempotencyKey string
}

type SubmitOrderOutput struct {
	OrderID string
	Total   int64
	// Replayed is set when an idempotency-key recall short-circuited the
	// submission. The original request already ran the side effects
	// (cart clear, stashed payment payload); callers must not repeat them.
	Replayed bool
}

type SubmitOrder struct {
	repo   OrderRepo
	idem   IdempotencyStore
	events EventPublisher
	now    func() time.Time
	rng    *rand.Rand
}

func NewSubmitOrder(repo OrderRepo, idem IdempotencyStore, events EventPublisher) *SubmitOrder {
	return &SubmitOrder{
		repo:   repo,
		idem:   idem,
		events: events,
		now:    time.Now,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (uc *SubmitOrder) Execute(ctx context.Context, in SubmitOrderInput) (SubmitOrderOutput, error) {
	// Recall before validating: the retried request arrives after the
	// first success already drained the cart, so its draft is empty and
	// its total is meaningless. Report the stored order's total instead.
	if in.IdempotencyKey != "" {
		if id, ok, _ := uc.idem.Recall(ctx, in.IdempotencyKey); ok {
			out := SubmitOrderOutput{OrderID: id, Replayed: true}
			if rec, err := uc.repo.GetByID(ctx, id); err == nil {
				out.Total = rec.Total
			} else {
				logging.FromCtx(ctx).Warn("recalled order lookup failed", "order_id", id, "err", err)
			}
			return out, nil
		}
	}

	// Re-validate server-side; never trust a bypassed UI.
	if errs := domain.ValidateDraft(in.Draft, uc.now()); len(errs) > 0 {
		return SubmitOrderOutput{}, errs
	}

	if in.IdempotencyKey != "" {
		ok, err := uc.idem.TryLock(ctx, in.IdempotencyKey)
		if err != nil {
			return SubmitOrderOutput{}, fmt.Errorf("%w: %v", ErrPersistence, err)
		}
		if !ok {
			return SubmitOrderOutput{}, ErrDuplicateSubmission
		}
	}

	now := uc.now()
	rec := uc.flatten(in.Draft, now)

	// One retry with a fresh random suffix on a unique-key conflict; the
	// timestamp+random composition makes a second collision negligible.
	for attempt := 0; ; attempt++ {
		rec.OrderID = uc.newOrderID(now)
		err := uc.repo.Insert(ctx, rec)
		if err == nil {
			break
		}
		if errors.Is(err, ErrDuplicateOrderID) && attempt == 0 {
			continue
		}
		return SubmitOrderOutput{}, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	if err := uc.events.PublishSubmitted(ctx, OrderSubmittedMsg{
		OrderID:     rec.OrderID,
		FullName:    rec.FullName,
		Email:       rec.Email,
		BookingDate: rec.BookingDate,
		Total:       rec.Total,
	}); err != nil {
		logging.FromCtx(ctx).Warn("publish order.submitted failed", "order_id", rec.OrderID, "err", err)
	}

	if in.IdempotencyKey != "" {
		_ = uc.idem.Remember(ctx, in.IdempotencyKey, rec.OrderID)
	}

	return SubmitOrderOutput{OrderID: rec.OrderID, Total: rec.Total}, nil
}

// newOrderID builds ORDER_<epoch-millis>_<4-digit-random>.
func (uc *SubmitOrder) newOrderID(now time.Time) string {
	return fmt.Sprintf("ORDER_%d_%d", now.UnixMilli(), 1000+uc.rng.Intn(9000))
}

func (uc *SubmitOrder) flatten(d domain.OrderDraft, now time.Time) *OrderRecord {
	return &OrderRecord{
		FullName:           d.Contact.FullName,
		OriginCity:         d.Contact.OriginCity,
		Phone:              d.Contact.Phone,
		EmergencyPhone:     d.Contact.EmergencyPhone,
		Email:              d.Contact.Email,
		VehicleDescription: d.VehicleDescription,
		BookingDate:        d.BookingDate.Format("2006-01-02"),
		ArrivalTime:        d.ArrivalTime,
		Items:              domain.SummarizeLines(d.Lines),
		Total:              d.Total(),
		Status:             string(domain.StatusUnverified),
		SubmittedAt:        now,
	}
}
