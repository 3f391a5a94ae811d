package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/ricky24m/Etiketing-I-AMpelgading-Homeland/internal/usecase"
)

const duplicateEntryErrNo = 1062

type MySQLOrderRepo struct{ db *sql.DB }

func NewMySQLOrderRepo(db *sql.DB) *MySQLOrderRepo { return &MySQLOrderRepo{db: db} }

func (r *MySQLOrderRepo) Insert(ctx context.Context, o *usecase.OrderRecord) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO booking
  (order_id, full_name, origin_city, phone, emergency_phone, email,
   vehicle_description, booking_date, arrival_time, items, total, status,
   submitted_at, last_status_change_at)
VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,NULL)`,
		o.OrderID, o.FullName, o.OriginCity, o.Phone, o.EmergencyPhone, o.Email,
		o.VehicleDescription, o.BookingDate, nullable(o.ArrivalTime), o.Items, o.Total, o.Status,
		o.SubmittedAt,
	)
	var me *mysql.MySQLError
	if errors.As(err, &me) && me.Number == duplicateEntryErrNo {
		return usecase.ErrDuplicateOrderID
	}
	return err
}

func (r *MySQLOrderRepo) GetByID(ctx context.Context, id string) (*usecase.OrderRecord, error) {
	row := r.db.QueryRowContext(ctx, selectCols+` FROM booking WHERE order_id=?`, id)
	rec, err := scanOrder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, usecase.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// UpdateStatus overwrites unconditionally; rows==0 means the order id does
// not exist (status values are validated upstream).
func (r *MySQLOrderRepo) UpdateStatus(ctx context.Context, id, status string, at time.Time) error {
	res, err := r.db.ExecContext(ctx, `
UPDATE booking SET status = ?, last_status_change_at = ? WHERE order_id = ?`,
		status, at, id,
	)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return usecase.ErrNotFound
	}
	return nil
}

func (r *MySQLOrderRepo) List(ctx context.Context, f usecase.ListFilter) ([]usecase.OrderRecord, int, error) {
	where, args := buildFilter(f)

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM booking`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.QueryContext(ctx,
		selectCols+` FROM booking`+where+` ORDER BY submitted_at DESC LIMIT ? OFFSET ?`,
		append(args, f.Limit, f.Offset)...,
	)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []usecase.OrderRecord
	for rows.Next() {
		rec, err := scanOrder(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *rec)
	}
	return out, total, rows.Err()
}

// RevenueTotals counts only verified bookings toward income.
func (r *MySQLOrderRepo) RevenueTotals(ctx context.Context, start, end string) (int64, int, error) {
	where, args := buildFilter(usecase.ListFilter{Start: start, End: end, Status: "VERIFIED"})
	var income int64
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(total),0), COUNT(*) FROM booking`+where, args...,
	).Scan(&income, &count)
	return income, count, err
}

const selectCols = `
SELECT order_id, full_name, origin_city, phone, emergency_phone, email,
       vehicle_description, booking_date, arrival_time, items, total, status,
       submitted_at, last_status_change_at`

type rowScanner interface{ Scan(dest ...any) error }

func scanOrder(row rowScanner) (*usecase.OrderRecord, error) {
	var rec usecase.OrderRecord
	var arrival sql.NullString
	var changed sql.NullTime
	if err := row.Scan(
		&rec.OrderID, &rec.FullName, &rec.OriginCity, &rec.Phone, &rec.EmergencyPhone, &rec.Email,
		&rec.VehicleDescription, &rec.BookingDate, &arrival, &rec.Items, &rec.Total, &rec.Status,
		&rec.SubmittedAt, &changed,
	); err != nil {
		return nil, err
	}
	rec.ArrivalTime = arrival.String
	if changed.Valid {
		t := changed.Time
		rec.LastStatusChangeAt = &t
	}
	return &rec, nil
}

func buildFilter(f usecase.ListFilter) (string, []any) {
	var conds []string
	var args []any
	if f.Status != "" {
		conds = append(conds, "status = ?")
		args = append(args, f.Status)
	}
	if f.Start != "" {
		conds = append(conds, "submitted_at >= ?")
		args = append(args, f.Start)
	}
	if f.End != "" {
		// inclusive end-of-day bound
		conds = append(conds, "submitted_at < DATE_ADD(?, INTERVAL 1 DAY)")
		args = append(args, f.End)
	}
	if len(conds) == 0 {
		return "", nil
	}
	return fmt.Sprintf(" WHERE %s", strings.Join(conds, " AND ")), args
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

var _ usecase.OrderRepo = (*MySQLOrderRepo)(nil)
