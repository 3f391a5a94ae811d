package usecase

import (
	"context"
	"fmt"
	"math"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

type Pagination struct {
	CurrentPage  int `json:"current_page"`
	TotalPages   int `json:"total_pages"`
	TotalRecords int `json:"total_records"`
	PerPage      int `json:"per_page"`
}

type ListOrdersInput struct {
	Page     int
	PageSize int
	Start    string // optional "2006-01-02"
	End      string
	Status   string // optional enum member
}

type ListOrdersOutput struct {
	Rows       []OrderRecord
	Pagination Pagination
}

type RevenueSummary struct {
	TotalIncome    int64 `json:"total_income"`
	Transactions   int   `json:"total_transactions"`
	AvgTransaction int64 `json:"avg_transaction"`
}

// OrderReport is the read-only admin query surface over the order store.
type OrderReport struct {
	repo OrderRepo
}

func NewOrderReport(repo OrderRepo) *OrderReport {
	return &OrderReport{repo: repo}
}

// ListOrders pages through orders, newest submission first.
func (r *OrderReport) ListOrders(ctx context.Context, in ListOrdersInput) (ListOrdersOutput, error) {
	page := in.Page
	if page < 1 {
		page = 1
	}
	size := in.PageSize
	if size < 1 {
		size = defaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}

	rows, total, err := r.repo.List(ctx, ListFilter{
		Offset: (page - 1) * size,
		Limit:  size,
		Start:  in.Start,
		End:    in.End,
		Status: in.Status,
	})
	if err != nil {
		return ListOrdersOutput{}, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	return ListOrdersOutput{
		Rows: rows,
		Pagination: Pagination{
			CurrentPage:  page,
			TotalPages:   (total + size - 1) / size,
			TotalRecords: total,
			PerPage:      size,
		},
	}, nil
}

// Revenue sums verified orders only; cancelled and unverified bookings are
// excluded from income totals by business rule.
func (r *OrderReport) Revenue(ctx context.Context, start, end string) (RevenueSummary, error) {
	income, count, err := r.repo.RevenueTotals(ctx, start, end)
	if err != nil {
		return RevenueSummary{}, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	var avg int64
	if count > 0 {
		avg = int64(math.Round(float64(income) / float64(count)))
	}
	return RevenueSummary{
		TotalIncome:    income,
		Transactions:   count,
		AvgTransaction: avg,
	}, nil
}
