package domain

import (
	"fmt"
	"strings"
)

// CartLine is one distinct catalog item plus quantity held by a shopper.
// JSON tags match the snapshot layout the storefront persists between page loads.
type CartLine struct {
	ItemName  string   `json:"name"`
	UnitPrice int64    `json:"price"`
	Quantity  int      `json:"qty"`
	Category  Category `json:"category"`
	Unit      string   `json:"unit"`
}

func (l CartLine) Subtotal() int64 {
	return l.UnitPrice * int64(l.Quantity)
}

// SummarizeLines flattens cart lines into the human-readable item summary
// stored on the order, e.g. "Paket Kemah x 2, Tenda Dome x 1".
func SummarizeLines(lines []CartLine) string {
	parts := make([]string, 0, len(lines))
	for _, l := range lines {
		parts = append(parts, fmt.Sprintf("%s x %d", l.ItemName, l.Quantity))
	}
	return strings.Join(parts, ", ")
}

// LinesTotal sums unitPrice*quantity over all lines.
func LinesTotal(lines []CartLine) int64 {
	var total int64
	for _, l := range lines {
		total += l.Subtotal()
	}
	return total
}
