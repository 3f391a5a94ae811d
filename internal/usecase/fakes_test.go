package usecase

import (
	"context"
	"time"
)

// Hand-rolled fakes; the ports are small enough that a mocking library
// would be more code than this.

type fakeOrderRepo struct {
	orders map[string]*OrderRecord
	// insertErrs is consumed front to back; nil entries mean success.
	insertErrs []error
	inserted   []string

	updateErr error
	updatedID string
	updatedSt string
	updatedAt time.Time

	listRows  []OrderRecord
	listTotal int
	lastList  ListFilter

	income int64
	count  int
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: map[string]*OrderRecord{}}
}

func (f *fakeOrderRepo) Insert(_ context.Context, o *OrderRecord) error {
	if len(f.insertErrs) > 0 {
		err := f.insertErrs[0]
		f.insertErrs = f.insertErrs[1:]
		if err != nil {
			return err
		}
	}
	cp := *o
	f.orders[o.OrderID] = &cp
	f.inserted = append(f.inserted, o.OrderID)
	return nil
}

func (f *fakeOrderRepo) GetByID(_ context.Context, id string) (*OrderRecord, error) {
	o, ok := f.orders[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *o
	return &cp, nil
}

func (f *fakeOrderRepo) UpdateStatus(_ context.Context, id, status string, at time.Time) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	if _, ok := f.orders[id]; !ok {
		return ErrNotFound
	}
	f.orders[id].Status = status
	f.orders[id].LastStatusChangeAt = &at
	f.updatedID, f.updatedSt, f.updatedAt = id, status, at
	return nil
}

func (f *fakeOrderRepo) List(_ context.Context, flt ListFilter) ([]OrderRecord, int, error) {
	f.lastList = flt
	return f.listRows, f.listTotal, nil
}

func (f *fakeOrderRepo) RevenueTotals(_ context.Context, _, _ string) (int64, int, error) {
	return f.income, f.count, nil
}

type fakeIdem struct {
	locked map[string]bool
	known  map[string]string
}

func newFakeIdem() *fakeIdem {
	return &fakeIdem{locked: map[string]bool{}, known: map[string]string{}}
}

func (f *fakeIdem) TryLock(_ context.Context, key string) (bool, error) {
	if f.locked[key] {
		return false, nil
	}
	f.locked[key] = true
	return true, nil
}

func (f *fakeIdem) Remember(_ context.Context, key, orderID string) error {
	f.known[key] = orderID
	return nil
}

func (f *fakeIdem) Recall(_ context.Context, key string) (string, bool, error) {
	id, ok := f.known[key]
	return id, ok, nil
}

type fakePublisher struct {
	submitted []OrderSubmittedMsg
	changed   []OrderStatusChangedMsg
	err       error
}

func (f *fakePublisher) PublishSubmitted(_ context.Context, msg OrderSubmittedMsg) error {
	if f.err != nil {
		return f.err
	}
	f.submitted = append(f.submitted, msg)
	return nil
}

func (f *fakePublisher) PublishStatusChanged(_ context.Context, msg OrderStatusChangedMsg) error {
	if f.err != nil {
		return f.err
	}
	f.changed = append(f.changed, msg)
	return nil
}

type fakeStatusCache struct {
	set map[string]string
	err error
}

func newFakeStatusCache() *fakeStatusCache {
	return &fakeStatusCache{set: map[string]string{}}
}

func (f *fakeStatusCache) SetStatus(_ context.Context, orderID, status string) error {
	if f.err != nil {
		return f.err
	}
	f.set[orderID] = status
	return nil
}

func (f *fakeStatusCache) GetStatus(_ context.Context, orderID string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	st, ok := f.set[orderID]
	if !ok {
		return "", ErrNotFound
	}
	return st, nil
}
