package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/ricky24m/Etiketing-I-AMpelgading-Homeland/internal/adapter/http/middleware"
	domain "github.com/ricky24m/Etiketing-I-AMpelgading-Homeland/internal/entity"
	"github.com/ricky24m/Etiketing-I-AMpelgading-Homeland/internal/gate"
	"github.com/ricky24m/Etiketing-I-AMpelgading-Homeland/internal/logging"
	"github.com/ricky24m/Etiketing-I-AMpelgading-Homeland/internal/usecase"
)

var ordersSubmitted = promauto.NewCounter(prometheus.CounterOpts{
	Name: "booking_orders_submitted_total",
	Help: "Total orders recorded via the checkout flow",
})

type OrderHandler struct {
	submit *usecase.SubmitOrder
	status *usecase.OrderStatus
	carts  CartProvider
	stash  SessionStash
	gate   gate.Gate
}

func NewOrderHandler(submit *usecase.SubmitOrder, status *usecase.OrderStatus, carts CartProvider, stash SessionStash, g gate.Gate) *OrderHandler {
	return &OrderHandler{submit: submit, status: status, carts: carts, stash: stash, gate: g}
}

type placeOrderReq struct {
	FullName           string `json:"fullName"`
	OriginCity         string `json:"originCity"`
	Phone              string `json:"phone"`
	EmergencyPhone     string `json:"emergencyPhone"`
	Email              string `json:"email"`
	VehicleDescription string `json:"vehicleDescription"`
	BookingDate        string `json:"bookingDate"`           // "2006-01-02"
	ArrivalTime        string `json:"arrivalTime,omitempty"` // "HH:MM"
}

// paymentPayload is what the payment and ticket views render; it lives in
// the session stash between funnel steps.
type paymentPayload struct {
	OrderID     string `json:"order_id"`
	FullName    string `json:"fullName"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	BookingDate string `json:"bookingDate"`
	ArrivalTime string `json:"arrivalTime,omitempty"`
	Items       string `json:"items"`
	Total       int64  `json:"total"`
}

// PlaceOrder builds the draft from the session cart (never from
// client-supplied lines), submits it, and on success clears the cart and
// unlocks the payment view.
func (h *OrderHandler) PlaceOrder(c *gin.Context) {
	var req placeOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "bad_request"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	sid := middleware.SessionID(c)
	lines := h.carts(sid).List(ctx)

	var bookingDate time.Time
	if req.BookingDate != "" {
		var err error
		bookingDate, err = time.Parse("2006-01-02", req.BookingDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"message": "validation failed",
				"errors":  []domain.FieldError{{Field: "bookingDate", Message: "booking date must be YYYY-MM-DD"}},
			})
			return
		}
	}

	out, err := h.submit.Execute(ctx, usecase.SubmitOrderInput{
		Draft: domain.OrderDraft{
			Contact: domain.Contact{
				FullName:       req.FullName,
				OriginCity:     req.OriginCity,
				Phone:          req.Phone,
				EmergencyPhone: req.EmergencyPhone,
				Email:          req.Email,
			},
			VehicleDescription: req.VehicleDescription,
			BookingDate:        bookingDate,
			ArrivalTime:        req.ArrivalTime,
			Lines:              lines,
		},
		IdempotencyKey: c.GetHeader("X-Idempotency-Key"),
	})
	if err != nil {
		h.renderSubmitError(c, err)
		return
	}
	if out.Replayed {
		// The first request with this key already cleared the cart and
		// stashed the payment payload; touching either again would
		// destroy what the payment and ticket views render.
		c.JSON(http.StatusOK, gin.H{"success": true, "orderId": out.OrderID})
		return
	}
	ordersSubmitted.Inc()

	// Caller-side effects of a successful submission: drop the cart and
	// hand the payment view its payload.
	if err := h.carts(sid).Clear(ctx); err != nil {
		logging.From(c).Warn("cart clear after submit failed", "order_id", out.OrderID, "err", err)
	}
	payload, _ := json.Marshal(paymentPayload{
		OrderID:     out.OrderID,
		FullName:    req.FullName,
		Email:       req.Email,
		Phone:       req.Phone,
		BookingDate: req.BookingDate,
		ArrivalTime: req.ArrivalTime,
		Items:       domain.SummarizeLines(lines),
		Total:       out.Total,
	})
	if err := h.stash.Put(ctx, sid, stashOrderData, payload); err != nil {
		logging.From(c).Warn("stash order payload failed", "order_id", out.OrderID, "err", err)
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "orderId": out.OrderID})
}

// OrderStatus lets the payment view poll whether an admin has reviewed the
// transfer yet.
func (h *OrderHandler) OrderStatus(c *gin.Context) {
	id := c.Param("id")
	st, err := h.status.Get(c.Request.Context(), id)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"success": true, "orderId": id, "status": st})
	case errors.Is(err, usecase.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "order not found"})
	default:
		logging.From(c).Error("order status lookup failed", "order_id", id, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "something went wrong, please try again"})
	}
}

// CompleteOrder is the shopper's "I have paid" signal. It does not touch
// order status (that stays UNVERIFIED until an admin confirms payment); it
// only unlocks the ticket view and moves the payload along.
func (h *OrderHandler) CompleteOrder(c *gin.Context) {
	ctx := c.Request.Context()
	sid := middleware.SessionID(c)

	raw, ok, err := h.stash.Get(ctx, sid, stashOrderData)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "something went wrong, please try again"})
		return
	}
	if !ok {
		c.JSON(http.StatusOK, gin.H{"success": false, "redirect": catalogPath})
		return
	}

	var payload paymentPayload
	if err := json.Unmarshal(raw, &payload); err != nil || payload.OrderID != c.Param("id") {
		c.JSON(http.StatusOK, gin.H{"success": false, "redirect": catalogPath})
		return
	}

	if err := h.gate.MarkPassed(ctx, sid, gate.StepTicket); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "something went wrong, please try again"})
		return
	}
	_ = h.stash.Put(ctx, sid, stashTicketData, raw)
	_ = h.stash.Delete(ctx, sid, stashOrderData)

	c.JSON(http.StatusOK, gin.H{"success": true, "redirect": "/tiket"})
}

func (h *OrderHandler) renderSubmitError(c *gin.Context, err error) {
	var verrs domain.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "validation failed",
			"errors":  verrs,
		})
	case errors.Is(err, usecase.ErrDuplicateSubmission):
		c.JSON(http.StatusConflict, gin.H{"success": false, "message": "submission already in progress"})
	default:
		// Persistence detail stays in the server log.
		logging.From(c).Error("order submission failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "something went wrong, please try again"})
	}
}
