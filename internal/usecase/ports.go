package usecase

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound = errors.New("not found")
	// ErrDuplicateOrderID signals a unique-key conflict on insert; the
	// submission use case retries once with a fresh id.
	ErrDuplicateOrderID = errors.New("duplicate order id")
	// ErrPersistence wraps store failures at the boundary. Handlers turn it
	// into a generic "try again" message and log the detail server-side.
	ErrPersistence = errors.New("order store unavailable")
)

// Persistence shape (kept out of domain).
type OrderRecord struct {
	OrderID            string
	FullName           string
	OriginCity         string
	Phone              string
	EmergencyPhone     string
	Email              string
	VehicleDescription string
	BookingDate        string // "2006-01-02"
	ArrivalTime        string // "HH:MM", empty when not supplied
	Items              string
	Total              int64
	Status             string
	SubmittedAt        time.Time
	LastStatusChangeAt *time.Time
}

type ListFilter struct {
	Offset int
	Limit  int
	Start  string // inclusive "2006-01-02" bound on submission time
	End    string // inclusive
	Status string // empty = all
}

type OrderRepo interface {
	Insert(ctx context.Context, o *OrderRecord) error
	GetByID(ctx context.Context, id string) (*OrderRecord, error)
	// UpdateStatus overwrites unconditionally and stamps the change time.
	// Returns ErrNotFound when no row matches.
	UpdateStatus(ctx context.Context, id, status string, at time.Time) error
	// List returns one page, newest submission first, plus the total count
	// matching the filter.
	List(ctx context.Context, f ListFilter) ([]OrderRecord, int, error)
	// RevenueTotals sums only VERIFIED orders inside the optional date range.
	RevenueTotals(ctx context.Context, start, end string) (income int64, count int, err error)
}

// IdempotencyStore collapses duplicate submissions carrying the same
// client-supplied key (double-clicks, retried requests).
type IdempotencyStore interface {
	TryLock(ctx context.Context, key string) (bool, error)
	Remember(ctx context.Context, key, orderID string) error
	Recall(ctx context.Context, key string) (string, bool, error)
}

type StatusCache interface {
	SetStatus(ctx context.Context, orderID, status string) error
	GetStatus(ctx context.Context, orderID string) (string, error)
}

// EventPublisher fans lifecycle events out to the admin
// notification/reporting collaborator. Publishing is best effort; the
// MySQL row is the source of truth.
type EventPublisher interface {
	PublishSubmitted(ctx context.Context, msg OrderSubmittedMsg) error
	PublishStatusChanged(ctx context.Context, msg OrderStatusChangedMsg) error
}

// CatalogItem is the read-only view of the menu / camping-gear tables the
// cart prices lines from.
type CatalogItem struct {
	Name     string
	Price    int64
	Category string
	Unit     string
}

type Catalog interface {
	GetItem(ctx context.Context, name string) (*CatalogItem, error)
}
