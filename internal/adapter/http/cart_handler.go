package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ricky24m/Etiketing-I-AMpelgading-Homeland/internal/adapter/http/middleware"
	"github.com/ricky24m/Etiketing-I-AMpelgading-Homeland/internal/cart"
	domain "github.com/ricky24m/Etiketing-I-AMpelgading-Homeland/internal/entity"
	"github.com/ricky24m/Etiketing-I-AMpelgading-Homeland/internal/gate"
	"github.com/ricky24m/Etiketing-I-AMpelgading-Homeland/internal/usecase"
)

type CartHandler struct {
	carts   CartProvider
	catalog usecase.Catalog
	gate    gate.Gate
}

func NewCartHandler(carts CartProvider, catalog usecase.Catalog, g gate.Gate) *CartHandler {
	return &CartHandler{carts: carts, catalog: catalog, gate: g}
}

type addItemReq struct {
	Name string `json:"name" binding:"required"`
	Qty  int    `json:"qty" binding:"required,gte=1"`
}

// AddItem prices the line from the catalog (never from the client) and
// merges it into the session cart.
func (h *CartHandler) AddItem(c *gin.Context) {
	var req addItemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "bad_request"})
		return
	}

	item, err := h.catalog.GetItem(c.Request.Context(), req.Name)
	if err != nil {
		if errors.Is(err, usecase.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "unknown catalog item"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "something went wrong, please try again"})
		return
	}

	store := h.carts(middleware.SessionID(c))
	err = store.Add(c.Request.Context(), domain.CartLine{
		ItemName:  item.Name,
		UnitPrice: item.Price,
		Quantity:  req.Qty,
		Category:  domain.Category(item.Category),
		Unit:      item.Unit,
	})
	if err != nil {
		if errors.Is(err, cart.ErrInvalidQuantity) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "something went wrong, please try again"})
		return
	}

	h.renderCart(c, store)
}

func (h *CartHandler) RemoveItem(c *gin.Context) {
	store := h.carts(middleware.SessionID(c))
	if err := store.Remove(c.Request.Context(), c.Param("name")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "something went wrong, please try again"})
		return
	}
	h.renderCart(c, store)
}

func (h *CartHandler) ClearCart(c *gin.Context) {
	store := h.carts(middleware.SessionID(c))
	if err := store.Clear(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "something went wrong, please try again"})
		return
	}
	h.renderCart(c, store)
}

func (h *CartHandler) GetCart(c *gin.Context) {
	h.renderCart(c, h.carts(middleware.SessionID(c)))
}

// BeginCheckout gates entry into the checkout view: an empty cart sends the
// shopper back to the catalog, otherwise the single-use fromCart flag is set.
func (h *CartHandler) BeginCheckout(c *gin.Context) {
	sid := middleware.SessionID(c)
	store := h.carts(sid)
	if len(store.List(c.Request.Context())) == 0 {
		c.JSON(http.StatusOK, gin.H{"success": false, "redirect": catalogPath})
		return
	}
	if err := h.gate.MarkPassed(c.Request.Context(), sid, gate.StepCheckout); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "something went wrong, please try again"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "redirect": "/checkout"})
}

func (h *CartHandler) renderCart(c *gin.Context, store *cart.Store) {
	ctx := c.Request.Context()
	items := store.List(ctx)
	if items == nil {
		items = []domain.CartLine{}
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"items":   items,
		"total":   domain.LinesTotal(items),
	})
}
