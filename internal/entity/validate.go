package domain

import (
	"regexp"
	"strings"
	"time"
)

// OrderDraft is the fully assembled, not-yet-persisted checkout payload.
// It only exists as input to order submission.
type OrderDraft struct {
	Contact            Contact
	VehicleDescription string
	BookingDate        time.Time
	ArrivalTime        string // "HH:MM", required iff a camping package is in the cart
	Lines              []CartLine
}

func (d OrderDraft) Total() int64 {
	return LinesTotal(d.Lines)
}

// RequiresArrivalTime reports whether any line is a camping package.
func (d OrderDraft) RequiresArrivalTime() bool {
	for _, l := range d.Lines {
		if l.Category == CategoryCampingPackage {
			return true
		}
	}
	return false
}

// FieldError tags a user-correctable validation problem with the form
// field it belongs to, so the UI can focus the right control.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string { return e.Field + ": " + e.Message }

type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	msgs := make([]string, 0, len(v))
	for _, e := range v {
		msgs = append(msgs, e.Error())
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// ValidateDraft checks a prospective order before it may be submitted.
// It never panics on user input; the returned slice is empty iff the draft
// is valid. now is injected so the past-date check stays deterministic.
func ValidateDraft(d OrderDraft, now time.Time) ValidationErrors {
	var errs ValidationErrors

	if len(d.Lines) == 0 {
		errs = append(errs, FieldError{Field: "items", Message: "cart is empty"})
	}
	if d.Total() <= 0 {
		errs = append(errs, FieldError{Field: "total", Message: "order total must be positive"})
	}

	if strings.TrimSpace(d.Contact.FullName) == "" {
		errs = append(errs, FieldError{Field: "fullName", Message: "full name is required"})
	}
	if strings.TrimSpace(d.Contact.OriginCity) == "" {
		errs = append(errs, FieldError{Field: "originCity", Message: "origin city is required"})
	}
	if strings.TrimSpace(d.Contact.Phone) == "" {
		errs = append(errs, FieldError{Field: "phone", Message: "phone number is required"})
	}
	if strings.TrimSpace(d.Contact.EmergencyPhone) == "" {
		errs = append(errs, FieldError{Field: "emergencyPhone", Message: "emergency phone number is required"})
	}
	if strings.TrimSpace(d.Contact.Email) == "" {
		errs = append(errs, FieldError{Field: "email", Message: "email is required"})
	} else if !emailRe.MatchString(d.Contact.Email) {
		errs = append(errs, FieldError{Field: "email", Message: "email is not well-formed"})
	}

	if strings.TrimSpace(d.VehicleDescription) == "" {
		errs = append(errs, FieldError{Field: "vehicleDescription", Message: "vehicle description is required"})
	}

	// The calendar UI should never offer past dates, but re-check here.
	if d.BookingDate.IsZero() {
		errs = append(errs, FieldError{Field: "bookingDate", Message: "booking date is required"})
	} else if dateOnly(d.BookingDate).Before(dateOnly(now)) {
		errs = append(errs, FieldError{Field: "bookingDate", Message: "booking date cannot be in the past"})
	}

	if d.ArrivalTime != "" {
		if _, err := time.Parse("15:04", d.ArrivalTime); err != nil {
			errs = append(errs, FieldError{Field: "arrivalTime", Message: "arrival time must be HH:MM"})
		}
	} else if d.RequiresArrivalTime() {
		// Distinct from the generic missing-field error so the UI can
		// focus the arrival time control.
		errs = append(errs, FieldError{Field: "arrivalTime", Message: "arrival time is required for camping packages"})
	}

	return errs
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
