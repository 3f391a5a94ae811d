package usecase

import (
	"context"
	"math/rand"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	domain "github.com/ricky24m/Etiketing-I-AMpelgading-Homeland/internal/entity"
)

var submitNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

var orderIDRe = regexp.MustCompile(`^ORDER_\d+_[1-9]\d{3}$`)

func campingDraft() domain.OrderDraft {
	return domain.OrderDraft{
		Contact: domain.Contact{
			FullName:       "Rina Kusuma",
			OriginCity:     "Malang",
			Phone:          "081234567890",
			EmergencyPhone: "089876543210",
			Email:          "rina@example.com",
		},
		VehicleDescription: "2 motor",
		BookingDate:        submitNow.AddDate(0, 0, 3),
		ArrivalTime:        "14:00",
		Lines: []domain.CartLine{
			{ItemName: "Paket Kemah", UnitPrice: 150000, Quantity: 2, Category: domain.CategoryCampingPackage, Unit: "orang"},
		},
	}
}

func newTestSubmit(repo *fakeOrderRepo, idem *fakeIdem, pub *fakePublisher) *SubmitOrder {
	uc := NewSubmitOrder(repo, idem, pub)
	uc.now = func() time.Time { return submitNow }
	uc.rng = rand.New(rand.NewSource(1))
	return uc
}

func TestSubmitOrder_PersistsUnverified(t *testing.T) {
	repo := newFakeOrderRepo()
	pub := &fakePublisher{}
	uc := newTestSubmit(repo, newFakeIdem(), pub)

	out, err := uc.Execute(context.Background(), SubmitOrderInput{Draft: campingDraft()})
	require.NoError(t, err)

	assert.Regexp(t, orderIDRe, out.OrderID)
	assert.Equal(t, int64(300000), out.Total)

	rec, err := repo.GetByID(context.Background(), out.OrderID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusUnverified), rec.Status)
	assert.Equal(t, "2026-03-13", rec.BookingDate)
	assert.Equal(t, "14:00", rec.ArrivalTime)
	assert.Equal(t, "Paket Kemah x 2", rec.Items)
	assert.Equal(t, submitNow, rec.SubmittedAt)
	assert.Nil(t, rec.LastStatusChangeAt)

	require.Len(t, pub.submitted, 1)
	assert.Equal(t, out.OrderID, pub.submitted[0].OrderID)
}

func TestSubmitOrder_IdenticalDraftsGetDistinctIDs(t *testing.T) {
	repo := newFakeOrderRepo()
	uc := newTestSubmit(repo, newFakeIdem(), &fakePublisher{})

	a, err := uc.Execute(context.Background(), SubmitOrderInput{Draft: campingDraft()})
	require.NoError(t, err)
	b, err := uc.Execute(context.Background(), SubmitOrderInput{Draft: campingDraft()})
	require.NoError(t, err)

	assert.NotEqual(t, a.OrderID, b.OrderID)
	assert.Len(t, repo.orders, 2)
}

func TestSubmitOrder_ValidationErrorsPassThrough(t *testing.T) {
	repo := newFakeOrderRepo()
	uc := newTestSubmit(repo, newFakeIdem(), &fakePublisher{})

	d := campingDraft()
	d.ArrivalTime = ""

	_, err := uc.Execute(context.Background(), SubmitOrderInput{Draft: d})

	var verrs domain.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	require.Len(t, verrs, 1)
	assert.Equal(t, "arrivalTime", verrs[0].Field)
	assert.Empty(t, repo.orders)
}

func TestSubmitOrder_RetriesOnceOnDuplicateID(t *testing.T) {
	repo := newFakeOrderRepo()
	repo.insertErrs = []error{ErrDuplicateOrderID, nil}
	uc := newTestSubmit(repo, newFakeIdem(), &fakePublisher{})

	out, err := uc.Execute(context.Background(), SubmitOrderInput{Draft: campingDraft()})
	require.NoError(t, err)
	require.Len(t, repo.inserted, 1)
	assert.Equal(t, out.OrderID, repo.inserted[0])
}

func TestSubmitOrder_GivesUpAfterSecondCollision(t *testing.T) {
	repo := newFakeOrderRepo()
	repo.insertErrs = []error{ErrDuplicateOrderID, ErrDuplicateOrderID}
	uc := newTestSubmit(repo, newFakeIdem(), &fakePublisher{})

	_, err := uc.Execute(context.Background(), SubmitOrderInput{Draft: campingDraft()})
	assert.ErrorIs(t, err, ErrPersistence)
}

func TestSubmitOrder_IdempotencyKeyReturnsFirstOrder(t *testing.T) {
	repo := newFakeOrderRepo()
	uc := newTestSubmit(repo, newFakeIdem(), &fakePublisher{})

	first, err := uc.Execute(context.Background(), SubmitOrderInput{Draft: campingDraft(), IdempotencyKey: "k1"})
	require.NoError(t, err)
	assert.False(t, first.Replayed)

	// The retry arrives after the cart was drained, so its draft is empty;
	// the stored order's id and total come back regardless.
	again, err := uc.Execute(context.Background(), SubmitOrderInput{IdempotencyKey: "k1"})
	require.NoError(t, err)

	assert.True(t, again.Replayed)
	assert.Equal(t, first.OrderID, again.OrderID)
	assert.Equal(t, first.Total, again.Total)
	assert.Len(t, repo.orders, 1)
}

func TestSubmitOrder_ConcurrentDuplicateRejected(t *testing.T) {
	repo := newFakeOrderRepo()
	idem := newFakeIdem()
	// The lock is held but no order was remembered yet: a second request
	// with the same key arrived while the first is still in flight.
	idem.locked["k1"] = true
	uc := newTestSubmit(repo, idem, &fakePublisher{})

	_, err := uc.Execute(context.Background(), SubmitOrderInput{Draft: campingDraft(), IdempotencyKey: "k1"})
	assert.ErrorIs(t, err, ErrDuplicateSubmission)
}

func TestSubmitOrder_PublishFailureDoesNotFailSubmission(t *testing.T) {
	repo := newFakeOrderRepo()
	pub := &fakePublisher{err: context.DeadlineExceeded}
	uc := newTestSubmit(repo, newFakeIdem(), pub)

	out, err := uc.Execute(context.Background(), SubmitOrderInput{Draft: campingDraft()})
	require.NoError(t, err)
	assert.Contains(t, repo.orders, out.OrderID)
}
