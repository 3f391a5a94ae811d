package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	domain "github.com/ricky24m/Etiketing-I-AMpelgading-Homeland/internal/entity"
)

var changeNow = time.Date(2026, 3, 11, 9, 30, 0, 0, time.UTC)

func seededRepo(id string) *fakeOrderRepo {
	repo := newFakeOrderRepo()
	repo.orders[id] = &OrderRecord{OrderID: id, Status: string(domain.StatusUnverified), Total: 300000}
	return repo
}

func newTestUpdate(repo *fakeOrderRepo, cache *fakeStatusCache, pub *fakePublisher) *UpdateOrderStatus {
	uc := NewUpdateOrderStatus(repo, cache, pub)
	uc.now = func() time.Time { return changeNow }
	return uc
}

func TestUpdateStatus_VerifiesAndStampsAudit(t *testing.T) {
	repo := seededRepo("ORDER_1_1234")
	cache := newFakeStatusCache()
	pub := &fakePublisher{}
	uc := newTestUpdate(repo, cache, pub)

	require.NoError(t, uc.Execute(context.Background(), "ORDER_1_1234", "VERIFIED"))

	rec := repo.orders["ORDER_1_1234"]
	assert.Equal(t, string(domain.StatusVerified), rec.Status)
	require.NotNil(t, rec.LastStatusChangeAt)
	assert.Equal(t, changeNow, *rec.LastStatusChangeAt)

	assert.Equal(t, "VERIFIED", cache.set["ORDER_1_1234"])
	require.Len(t, pub.changed, 1)
	assert.Equal(t, changeNow, pub.changed[0].ChangedAt)
}

func TestUpdateStatus_RejectsUnknownStatus(t *testing.T) {
	repo := seededRepo("ORDER_1_1234")
	uc := newTestUpdate(repo, newFakeStatusCache(), &fakePublisher{})

	err := uc.Execute(context.Background(), "ORDER_1_1234", "SHIPPED")

	assert.ErrorIs(t, err, domain.ErrInvalidStatus)
	assert.Equal(t, string(domain.StatusUnverified), repo.orders["ORDER_1_1234"].Status)
}

func TestUpdateStatus_UnknownOrder(t *testing.T) {
	uc := newTestUpdate(newFakeOrderRepo(), newFakeStatusCache(), &fakePublisher{})
	err := uc.Execute(context.Background(), "ORDER_999_9999", "VERIFIED")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateStatus_AnyStateMayMoveToAnyState(t *testing.T) {
	repo := seededRepo("ORDER_1_1234")
	uc := newTestUpdate(repo, newFakeStatusCache(), &fakePublisher{})
	ctx := context.Background()

	// Admin mistakes stay correctable; there is no one-way door.
	require.NoError(t, uc.Execute(ctx, "ORDER_1_1234", "CANCELLED"))
	require.NoError(t, uc.Execute(ctx, "ORDER_1_1234", "VERIFIED"))
	require.NoError(t, uc.Execute(ctx, "ORDER_1_1234", "UNVERIFIED"))

	assert.Equal(t, string(domain.StatusUnverified), repo.orders["ORDER_1_1234"].Status)
}

func TestUpdateStatus_CacheAndPublishAreBestEffort(t *testing.T) {
	repo := seededRepo("ORDER_1_1234")
	cache := newFakeStatusCache()
	cache.err = errors.New("redis down")
	pub := &fakePublisher{err: errors.New("broker down")}
	uc := newTestUpdate(repo, cache, pub)

	require.NoError(t, uc.Execute(context.Background(), "ORDER_1_1234", "CANCELLED"))
	assert.Equal(t, string(domain.StatusCancelled), repo.orders["ORDER_1_1234"].Status)
}

func TestUpdateStatus_StoreFailureWrapped(t *testing.T) {
	repo := seededRepo("ORDER_1_1234")
	repo.updateErr = errors.New("mysql gone away")
	uc := newTestUpdate(repo, newFakeStatusCache(), &fakePublisher{})

	err := uc.Execute(context.Background(), "ORDER_1_1234", "VERIFIED")
	assert.ErrorIs(t, err, ErrPersistence)
}
