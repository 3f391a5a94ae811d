package usecase

import "time"

// Published on booking.events when an order is recorded.
type OrderSubmittedMsg struct {
	OrderID     string `json:"orderId"`
	FullName    string `json:"fullName"`
	Email       string `json:"email"`
	BookingDate string `json:"bookingDate"`
	Total       int64  `json:"total"`
}

// Published on booking.events whenever an order's status moves.
type OrderStatusChangedMsg struct {
	OrderID   string    `json:"orderId"`
	Status    string    `json:"status"`
	ChangedAt time.Time `json:"changedAt"`
}

// Consumed from the back-office Kafka topic after a human reviews the
// QR payment proof.
type PaymentReviewedMsg struct {
	OrderID   string `json:"orderId"`
	Result    string `json:"result"` // "CONFIRMED" | "REJECTED"
	Reference string `json:"reference,omitempty"`
}
