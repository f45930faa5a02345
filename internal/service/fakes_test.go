package service

// In-memory store fakes. The fake TxRunner serializes whole units of
// work behind one mutex, which models the serializable-isolation
// contract the real Store provides: no two transactions interleave.

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/gabriel-rosch/fibershare-sub001/internal/db"
	"github.com/gabriel-rosch/fibershare-sub001/internal/models"
)

type fakeTx struct {
	mu sync.Mutex
}

func (f *fakeTx) WithTx(ctx context.Context, fn func(q db.Querier) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return fn(nil)
}

// ==================== boxes ====================

type fakeBoxStore struct {
	mu    sync.Mutex
	boxes map[string]*models.DistributionBox
}

func newFakeBoxStore() *fakeBoxStore {
	return &fakeBoxStore{boxes: make(map[string]*models.DistributionBox)}
}

func (f *fakeBoxStore) Create(ctx context.Context, q db.Querier, b *models.DistributionBox) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	now := time.Now()
	stored := *b
	stored.CreatedAt = now
	stored.UpdatedAt = now
	f.boxes[b.ID] = &stored
	return nil
}

func (f *fakeBoxStore) GetByID(ctx context.Context, q db.Querier, id string) (*models.DistributionBox, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.boxes[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (f *fakeBoxStore) List(ctx context.Context, q db.Querier) ([]*models.DistributionBox, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.DistributionBox
	for _, b := range f.boxes {
		cp := *b
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeBoxStore) AddOccupied(ctx context.Context, q db.Querier, boxID string, delta int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.boxes[boxID]
	if !ok {
		return models.ErrNotFound
	}
	b.OccupiedCount += delta
	return nil
}

// ==================== ports ====================

type fakePortStore struct {
	mu    sync.Mutex
	ports map[string]*models.Port
}

func newFakePortStore() *fakePortStore {
	return &fakePortStore{ports: make(map[string]*models.Port)}
}

func (f *fakePortStore) CreateForBox(ctx context.Context, q db.Querier, boxID string, capacity int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.ports {
		if p.BoxID == boxID {
			return fmt.Errorf("ports already provisioned for box %s", boxID)
		}
	}
	now := time.Now()
	for number := 1; number <= capacity; number++ {
		id := uuid.New().String()
		f.ports[id] = &models.Port{
			ID:        id,
			BoxID:     boxID,
			Number:    number,
			Status:    models.PortStatusAvailable,
			CreatedAt: now,
			UpdatedAt: now,
		}
	}
	return nil
}

func (f *fakePortStore) GetByID(ctx context.Context, q db.Querier, id string) (*models.Port, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.ports[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakePortStore) ListByBox(ctx context.Context, q db.Querier, boxID string) ([]*models.Port, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Port
	for _, p := range f.ports {
		if p.BoxID == boxID {
			cp := *p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out, nil
}

func (f *fakePortStore) UpdatePrice(ctx context.Context, q db.Querier, id string, price float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.ports[id]
	if !ok {
		return models.ErrNotFound
	}
	p.Price = price
	return nil
}

func (f *fakePortStore) TransitionStatus(ctx context.Context, q db.Querier, id string, from []string, to string, tenantID *string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.ports[id]
	if !ok {
		return models.ErrPortConflict
	}
	matched := false
	for _, s := range from {
		if p.Status == s {
			matched = true
			break
		}
	}
	if !matched {
		return models.ErrPortConflict
	}
	p.Status = to
	p.TenantID = tenantID
	p.UpdatedAt = time.Now()
	return nil
}

// setStatus force-sets a port's status, bypassing the CAS. Used to
// simulate a port lost to a concurrent writer.
func (f *fakePortStore) setStatus(id, status string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ports[id].Status = status
}

// ==================== orders ====================

type fakeOrderStore struct {
	mu     sync.Mutex
	orders map[string]*models.RentalOrder
}

func newFakeOrderStore() *fakeOrderStore {
	return &fakeOrderStore{orders: make(map[string]*models.RentalOrder)}
}

func (f *fakeOrderStore) Create(ctx context.Context, q db.Querier, o *models.RentalOrder) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	now := time.Now()
	stored := *o
	stored.CreatedAt = now
	stored.UpdatedAt = now
	f.orders[o.ID] = &stored
	return nil
}

func (f *fakeOrderStore) GetByID(ctx context.Context, q db.Querier, id string) (*models.RentalOrder, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.orders[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	cp := *o
	return &cp, nil
}

func (f *fakeOrderStore) Update(ctx context.Context, q db.Querier, o *models.RentalOrder) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, ok := f.orders[o.ID]
	if !ok {
		return models.ErrNotFound
	}
	stored.Status = o.Status
	stored.RequesterSigned = o.RequesterSigned
	stored.OwnerSigned = o.OwnerSigned
	stored.ScheduledAt = o.ScheduledAt
	stored.CompletedAt = o.CompletedAt
	stored.UpdatedAt = time.Now()
	return nil
}

func (f *fakeOrderStore) ExistsActiveByPort(ctx context.Context, q db.Querier, portID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, o := range f.orders {
		if o.PortID == portID && !models.IsTerminalOrderStatus(o.Status) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeOrderStore) List(ctx context.Context, q db.Querier, filter models.OrderFilter) ([]*models.RentalOrder, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.RentalOrder
	for _, o := range f.orders {
		if filter.Status != "" && o.Status != filter.Status {
			continue
		}
		if filter.PortID != "" && o.PortID != filter.PortID {
			continue
		}
		if filter.BoxID != "" && o.BoxID != filter.BoxID {
			continue
		}
		switch filter.Direction {
		case models.DirectionIncoming:
			if o.OwnerID != filter.OperatorID {
				continue
			}
		case models.DirectionOutgoing:
			if o.RequesterID != filter.OperatorID {
				continue
			}
		default:
			if o.OwnerID != filter.OperatorID && o.RequesterID != filter.OperatorID {
				continue
			}
		}
		cp := *o
		out = append(out, &cp)
	}
	return out, nil
}

// ==================== notes ====================

type fakeNoteStore struct {
	mu    sync.Mutex
	seq   int
	notes []*models.OrderNote
}

func newFakeNoteStore() *fakeNoteStore {
	return &fakeNoteStore{}
}

func (f *fakeNoteStore) Create(ctx context.Context, q db.Querier, n *models.OrderNote) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	f.seq++
	// Strictly increasing timestamps so creation order is observable
	n.CreatedAt = time.Unix(0, int64(f.seq))
	cp := *n
	f.notes = append(f.notes, &cp)
	return nil
}

func (f *fakeNoteStore) ListByOrder(ctx context.Context, q db.Querier, orderID string) ([]*models.OrderNote, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.OrderNote
	for _, n := range f.notes {
		if n.OrderID == orderID {
			cp := *n
			out = append(out, &cp)
		}
	}
	return out, nil
}
