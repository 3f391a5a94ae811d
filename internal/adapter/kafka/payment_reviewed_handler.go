package kafka

import (
	"context"
	"errors"

	domain "github.com/ricky24m/Etiketing-I-AMpelgading-Homeland/internal/entity"
	"github.com/ricky24m/Etiketing-I-AMpelgading-Homeland/internal/logging"
	"github.com/ricky24m/Etiketing-I-AMpelgading-Homeland/internal/usecase"
)

// PaymentReviewedHandler funnels back-office payment reviews into the same
// status machine the admin HTTP surface uses.
type PaymentReviewedHandler struct {
	Status *usecase.UpdateOrderStatus
}

func NewPaymentReviewedHandler(status *usecase.UpdateOrderStatus) *PaymentReviewedHandler {
	return &PaymentReviewedHandler{Status: status}
}

func (h *PaymentReviewedHandler) Handle(ctx context.Context, ev usecase.PaymentReviewedMsg) error {
	var newStatus domain.Status
	switch ev.Result {
	case "CONFIRMED":
		newStatus = domain.StatusVerified
	case "REJECTED":
		newStatus = domain.StatusCancelled
	default:
		// Unknown review result: skip rather than poison the partition.
		logging.FromCtx(ctx).Warn("unknown payment review result",
			"order_id", ev.OrderID, "result", ev.Result)
		return nil
	}

	err := h.Status.Execute(ctx, ev.OrderID, string(newStatus))
	if errors.Is(err, usecase.ErrNotFound) {
		// The review references an order this store never recorded.
		logging.FromCtx(ctx).Warn("payment review for unknown order",
			"order_id", ev.OrderID, "reference", ev.Reference)
		return nil
	}
	return err
}
