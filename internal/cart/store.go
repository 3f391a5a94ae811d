package cart

import (
	"context"
	"encoding/json"
	"errors"

	domain "github.com/ricky24m/Etiketing-I-AMpelgading-Homeland/internal/entity"
)

var ErrInvalidQuantity = errors.New("quantity must be at least 1")

// Snapshot persists the full cart contents between page loads.
// Load returns nil when no snapshot exists yet.
type Snapshot interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, data []byte) error
	Clear(ctx context.Context) error
}

// Store holds a shopper's pending selections as an ordered collection keyed
// by item name. Every mutation writes the whole snapshot back, so the cart
// survives a reload. Concurrent tabs race at last-write-wins granularity.
type Store struct {
	snap Snapshot
}

func NewStore(snap Snapshot) *Store {
	return &Store{snap: snap}
}

// Add merges into an existing line by item name (quantity += delta) rather
// than creating a duplicate.
func (s *Store) Add(ctx context.Context, line domain.CartLine) error {
	if line.Quantity < 1 {
		return ErrInvalidQuantity
	}
	lines := s.load(ctx)
	merged := false
	for i := range lines {
		if lines[i].ItemName == line.ItemName {
			lines[i].Quantity += line.Quantity
			merged = true
			break
		}
	}
	if !merged {
		lines = append(lines, line)
	}
	return s.save(ctx, lines)
}

// Remove drops the line for itemName. Removing an absent item is a no-op.
func (s *Store) Remove(ctx context.Context, itemName string) error {
	lines := s.load(ctx)
	kept := lines[:0]
	for _, l := range lines {
		if l.ItemName != itemName {
			kept = append(kept, l)
		}
	}
	if len(kept) == len(lines) {
		return nil
	}
	return s.save(ctx, kept)
}

func (s *Store) Clear(ctx context.Context) error {
	return s.snap.Clear(ctx)
}

func (s *Store) List(ctx context.Context) []domain.CartLine {
	return s.load(ctx)
}

func (s *Store) Total(ctx context.Context) int64 {
	return domain.LinesTotal(s.load(ctx))
}

// load decodes the persisted snapshot. A corrupt or unreadable snapshot
// resets the cart to empty instead of surfacing an error to the caller.
func (s *Store) load(ctx context.Context) []domain.CartLine {
	raw, err := s.snap.Load(ctx)
	if err != nil || len(raw) == 0 {
		return nil
	}
	var lines []domain.CartLine
	if err := json.Unmarshal(raw, &lines); err != nil {
		_ = s.snap.Clear(ctx)
		return nil
	}
	return lines
}

func (s *Store) save(ctx context.Context, lines []domain.CartLine) error {
	if len(lines) == 0 {
		return s.snap.Clear(ctx)
	}
	raw, err := json.Marshal(lines)
	if err != nil {
		return err
	}
	return s.snap.Save(ctx, raw)
}
