package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	domain "github.com/ricky24m/Etiketing-I-AMpelgading-Homeland/internal/entity"
	"github.com/ricky24m/Etiketing-I-AMpelgading-Homeland/internal/logging"
	"github.com/ricky24m/Etiketing-I-AMpelgading-Homeland/internal/usecase"
)

var statusChanges = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "booking_status_changes_total",
	Help: "Total administrative status transitions",
}, []string{"status"})

type AdminHandler struct {
	status *usecase.UpdateOrderStatus
	report *usecase.OrderReport
}

func NewAdminHandler(status *usecase.UpdateOrderStatus, report *usecase.OrderReport) *AdminHandler {
	return &AdminHandler{status: status, report: report}
}

type updateStatusReq struct {
	OrderID string `json:"orderId" binding:"required"`
	Status  string `json:"status" binding:"required"`
}

// UpdateStatus is the admin payment-confirmation action: an unconditional
// overwrite, reported verbatim to the admin UI on failure.
func (h *AdminHandler) UpdateStatus(c *gin.Context) {
	var req updateStatusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "orderId and status are required"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	err := h.status.Execute(ctx, req.OrderID, req.Status)
	switch {
	case err == nil:
		statusChanges.WithLabelValues(req.Status).Inc()
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "order status updated"})
	case errors.Is(err, domain.ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
	case errors.Is(err, usecase.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "order not found"})
	default:
		logging.From(c).Error("status update failed", "order_id", req.OrderID, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "something went wrong, please try again"})
	}
}

// ListOrders pages through bookings for the admin table.
// Query: page, limit, optional start/end (YYYY-MM-DD), optional status.
func (h *AdminHandler) ListOrders(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	out, err := h.report.ListOrders(ctx, usecase.ListOrdersInput{
		Page:     intQuery(c, "page"),
		PageSize: intQuery(c, "limit"),
		Start:    c.Query("start"),
		End:      c.Query("end"),
		Status:   c.Query("status"),
	})
	if err != nil {
		logging.From(c).Error("order listing failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "something went wrong, please try again"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"data":       rowsJSON(out.Rows),
		"pagination": out.Pagination,
	})
}

// Revenue returns the verified-only financial report: one page of rows plus
// the income summary over the same date range.
func (h *AdminHandler) Revenue(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	start, end := c.Query("start"), c.Query("end")

	out, err := h.report.ListOrders(ctx, usecase.ListOrdersInput{
		Page:     intQuery(c, "page"),
		PageSize: intQuery(c, "limit"),
		Start:    start,
		End:      end,
		Status:   string(domain.StatusVerified),
	})
	if err == nil {
		var summary usecase.RevenueSummary
		summary, err = h.report.Revenue(ctx, start, end)
		if err == nil {
			c.JSON(http.StatusOK, gin.H{
				"success":    true,
				"data":       rowsJSON(out.Rows),
				"summary":    summary,
				"pagination": out.Pagination,
			})
			return
		}
	}

	logging.From(c).Error("revenue report failed", "err", err)
	c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "something went wrong, please try again"})
}

type orderRow struct {
	OrderID            string `json:"order_id"`
	FullName           string `json:"full_name"`
	OriginCity         string `json:"origin_city"`
	Phone              string `json:"phone"`
	EmergencyPhone     string `json:"emergency_phone"`
	Email              string `json:"email"`
	VehicleDescription string `json:"vehicle_description"`
	BookingDate        string `json:"booking_date"`
	ArrivalTime        string `json:"arrival_time,omitempty"`
	Items              string `json:"items"`
	Total              int64  `json:"total"`
	Status             string `json:"status"`
	SubmittedAt        string `json:"submitted_at"`
	LastStatusChangeAt string `json:"last_status_change_at,omitempty"`
}

func rowsJSON(recs []usecase.OrderRecord) []orderRow {
	rows := make([]orderRow, 0, len(recs))
	for _, r := range recs {
		row := orderRow{
			OrderID:            r.OrderID,
			FullName:           r.FullName,
			OriginCity:         r.OriginCity,
			Phone:              r.Phone,
			EmergencyPhone:     r.EmergencyPhone,
			Email:              r.Email,
			VehicleDescription: r.VehicleDescription,
			BookingDate:        r.BookingDate,
			ArrivalTime:        r.ArrivalTime,
			Items:              r.Items,
			Total:              r.Total,
			Status:             r.Status,
			SubmittedAt:        r.SubmittedAt.Format(time.RFC3339),
		}
		if r.LastStatusChangeAt != nil {
			row.LastStatusChangeAt = r.LastStatusChangeAt.Format(time.RFC3339)
		}
		rows = append(rows, row)
	}
	return rows
}

func intQuery(c *gin.Context, name string) int {
	n, _ := strconv.Atoi(c.Query(name))
	return n
}
