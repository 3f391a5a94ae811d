package http

import (
	"context"

	"github.com/ricky24m/Etiketing-I-AMpelgading-Homeland/internal/cart"
)

// CartProvider opens the cart store bound to one browser session.
type CartProvider func(sessionID string) *cart.Store

// SessionStash carries small payloads between funnel steps (the order
// summary the payment and ticket views render). Implemented by
// cache.RedisSessionStash.
type SessionStash interface {
	Put(ctx context.Context, session, name string, payload []byte) error
	Get(ctx context.Context, session, name string) ([]byte, bool, error)
	Delete(ctx context.Context, session, name string) error
}

// Stash entry names, mirroring the storefront's session keys.
const (
	stashOrderData  = "orderData"
	stashTicketData = "ticketData"
)

// Canonical redirect targets when a gate check fails.
const (
	catalogPath = "/katalog"
	homePath    = "/"
)
