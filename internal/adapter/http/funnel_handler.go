package http

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ricky24m/Etiketing-I-AMpelgading-Homeland/internal/adapter/http/middleware"
	domain "github.com/ricky24m/Etiketing-I-AMpelgading-Homeland/internal/entity"
	"github.com/ricky24m/Etiketing-I-AMpelgading-Homeland/internal/gate"
)

// FunnelHandler serves the three gated shopper views. A failed gate check
// is never an error payload; it is a silent redirect hint back to the
// canonical prior step.
type FunnelHandler struct {
	carts CartProvider
	stash SessionStash
	gate  gate.Gate
}

func NewFunnelHandler(carts CartProvider, stash SessionStash, g gate.Gate) *FunnelHandler {
	return &FunnelHandler{carts: carts, stash: stash, gate: g}
}

// CheckoutView consumes the fromCart flag. A reload after entry fails the
// check and sends the shopper back to the catalog.
func (h *FunnelHandler) CheckoutView(c *gin.Context) {
	ctx := c.Request.Context()
	sid := middleware.SessionID(c)

	passed, err := h.gate.CheckAndConsume(ctx, sid, gate.StepCheckout)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "something went wrong, please try again"})
		return
	}
	items := h.carts(sid).List(ctx)
	if !passed || len(items) == 0 {
		c.JSON(http.StatusOK, gin.H{"success": false, "redirect": catalogPath})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":             true,
		"items":               items,
		"total":               domain.LinesTotal(items),
		"requiresArrivalTime": domain.OrderDraft{Lines: items}.RequiresArrivalTime(),
	})
}

// PaymentView is unlocked by the presence of the freshly created order's
// payload in the session, not by a flag.
func (h *FunnelHandler) PaymentView(c *gin.Context) {
	raw, ok, err := h.stash.Get(c.Request.Context(), middleware.SessionID(c), stashOrderData)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "something went wrong, please try again"})
		return
	}
	if !ok {
		c.JSON(http.StatusOK, gin.H{"success": false, "redirect": catalogPath})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "order": json.RawMessage(raw)})
}

// CancelPayment abandons the pending order's session payload. The order row
// itself stays UNVERIFIED for the admin to cancel.
func (h *FunnelHandler) CancelPayment(c *gin.Context) {
	sid := middleware.SessionID(c)
	if err := h.stash.Delete(c.Request.Context(), sid, stashOrderData); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "something went wrong, please try again"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "redirect": catalogPath})
}

// TicketView consumes the fromPayment flag; without it the shopper is sent
// home and must restart the funnel.
func (h *FunnelHandler) TicketView(c *gin.Context) {
	ctx := c.Request.Context()
	sid := middleware.SessionID(c)

	passed, err := h.gate.CheckAndConsume(ctx, sid, gate.StepTicket)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "something went wrong, please try again"})
		return
	}
	raw, ok, err := h.stash.Get(ctx, sid, stashTicketData)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "something went wrong, please try again"})
		return
	}
	if !passed || !ok {
		c.JSON(http.StatusOK, gin.H{"success": false, "redirect": homePath})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "ticket": json.RawMessage(raw)})
}
