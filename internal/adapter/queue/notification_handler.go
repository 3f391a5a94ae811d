package queue

import (
	"context"
	"encoding/json"

	"github.com/ricky24m/Etiketing-I-AMpelgading-Homeland/internal/logging"
	"github.com/ricky24m/Etiketing-I-AMpelgading-Homeland/internal/usecase"
)

// EventRecorder is the port to the admin activity feed.
type EventRecorder interface {
	InsertEvent(ctx context.Context, channel string, payload []byte) error
}

// AdminNotifier records order lifecycle events for the admin dashboard.
// Handlers are idempotent at the feed level: a redelivered event produces
// a duplicate feed row, which the dashboard tolerates.
type AdminNotifier struct {
	rec EventRecorder
}

func NewAdminNotifier(rec EventRecorder) *AdminNotifier {
	return &AdminNotifier{rec: rec}
}

// HandleSubmitted is used with queue.JSONHandler[usecase.OrderSubmittedMsg].
func (n *AdminNotifier) HandleSubmitted(ctx context.Context, msg usecase.OrderSubmittedMsg) error {
	logging.FromCtx(ctx).Info("order submitted",
		"order_id", msg.OrderID, "booking_date", msg.BookingDate, "total", msg.Total)
	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return n.rec.InsertEvent(ctx, "order.submitted", payload)
}

// HandleStatusChanged is used with queue.JSONHandler[usecase.OrderStatusChangedMsg].
func (n *AdminNotifier) HandleStatusChanged(ctx context.Context, msg usecase.OrderStatusChangedMsg) error {
	logging.FromCtx(ctx).Info("order status changed",
		"order_id", msg.OrderID, "status", msg.Status)
	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return n.rec.InsertEvent(ctx, "order.status_changed", payload)
}
