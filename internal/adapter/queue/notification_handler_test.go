package queue

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ricky24m/Etiketing-I-AMpelgading-Homeland/internal/usecase"
)

type recordedEvent struct {
	channel string
	payload []byte
}

type fakeRecorder struct {
	events []recordedEvent
	err    error
}

func (f *fakeRecorder) InsertEvent(_ context.Context, channel string, payload []byte) error {
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, recordedEvent{channel, payload})
	return nil
}

func TestAdminNotifier_RecordsSubmission(t *testing.T) {
	rec := &fakeRecorder{}
	n := NewAdminNotifier(rec)

	err := n.HandleSubmitted(context.Background(), usecase.OrderSubmittedMsg{
		OrderID:     "ORDER_1_1234",
		FullName:    "Rina Kusuma",
		BookingDate: "2026-03-13",
		Total:       300000,
	})
	require.NoError(t, err)

	require.Len(t, rec.events, 1)
	assert.Equal(t, "order.submitted", rec.events[0].channel)

	var msg usecase.OrderSubmittedMsg
	require.NoError(t, json.Unmarshal(rec.events[0].payload, &msg))
	assert.Equal(t, "ORDER_1_1234", msg.OrderID)
}

func TestAdminNotifier_RecordsStatusChange(t *testing.T) {
	rec := &fakeRecorder{}
	n := NewAdminNotifier(rec)

	err := n.HandleStatusChanged(context.Background(), usecase.OrderStatusChangedMsg{
		OrderID:   "ORDER_1_1234",
		Status:    "VERIFIED",
		ChangedAt: time.Now(),
	})
	require.NoError(t, err)

	require.Len(t, rec.events, 1)
	assert.Equal(t, "order.status_changed", rec.events[0].channel)
}

func TestAdminNotifier_RecorderFailurePropagates(t *testing.T) {
	rec := &fakeRecorder{err: errors.New("mysql down")}
	n := NewAdminNotifier(rec)

	// The Router nacks on error so the event is redelivered.
	err := n.HandleSubmitted(context.Background(), usecase.OrderSubmittedMsg{OrderID: "ORDER_1_1234"})
	assert.Error(t, err)
}

func TestJSONHandler_DecodesTypedMessage(t *testing.T) {
	var got usecase.OrderStatusChangedMsg
	h := JSONHandler[usecase.OrderStatusChangedMsg]{
		HandleFunc: func(_ context.Context, msg usecase.OrderStatusChangedMsg) error {
			got = msg
			return nil
		},
	}

	body := []byte(`{"orderId":"ORDER_1_1234","status":"CANCELLED"}`)
	require.NoError(t, h.Handle(context.Background(), amqp.Delivery{Body: body}))
	assert.Equal(t, "ORDER_1_1234", got.OrderID)
	assert.Equal(t, "CANCELLED", got.Status)
}

func TestJSONHandler_MalformedBodyErrors(t *testing.T) {
	h := JSONHandler[usecase.OrderStatusChangedMsg]{
		HandleFunc: func(context.Context, usecase.OrderStatusChangedMsg) error {
			t.Fatal("handler must not run on a decode failure")
			return nil
		},
	}
	assert.Error(t, h.Handle(context.Background(), amqp.Delivery{Body: []byte("{broken")}))
}
