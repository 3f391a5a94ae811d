package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

type Status string

const (
	StatusUnverified Status = "UNVERIFIED"
	StatusVerified   Status = "VERIFIED"
	StatusCancelled  Status = "CANCELLED"
)

var ErrInvalidStatus = errors.New("invalid status")

// ParseStatus checks enum membership. Any member may be set at any time;
// the status machine is intentionally permissive so admins can correct mistakes.
func ParseStatus(s string) (Status, error) {
	switch st := Status(strings.ToUpper(s)); st {
	case StatusUnverified, StatusVerified, StatusCancelled:
		return st, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
}

type Category string

const (
	CategoryRegularPackage    Category = "REGULAR_PACKAGE"
	CategoryCampingPackage    Category = "CAMPING_PACKAGE"
	CategoryCampingGearRental Category = "CAMPING_GEAR_RENTAL"
)

type Contact struct {
	FullName       string `json:"fullName"`
	OriginCity     string `json:"originCity"`
	Phone          string `json:"phone"`
	EmergencyPhone string `json:"emergencyPhone"`
	Email          string `json:"email"`
}

// Order is the persisted booking. OrderID and Total are immutable after
// creation; only Status and LastStatusChangeAt move afterwards.
type Order struct {
	OrderID            string
	Contact            Contact
	VehicleDescription string
	BookingDate        time.Time
	ArrivalTime        string // "HH:MM", empty when not supplied
	ItemSummary        string
	Total              int64
	Status             Status
	SubmittedAt        time.Time
	LastStatusChangeAt *time.Time
}
