package service

import (
	"context"

	"github.com/gabriel-rosch/fibershare-sub001/internal/db"
	"github.com/gabriel-rosch/fibershare-sub001/internal/models"
)

// TxRunner runs a unit of work as one serializable transaction. The
// Querier handed to fn is threaded through every store call so all
// reads and writes of a lifecycle transition commit or roll back
// together.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(q db.Querier) error) error
}

// BoxStore is the persistence contract for distribution boxes. A nil
// Querier means "no transaction in flight".
type BoxStore interface {
	Create(ctx context.Context, q db.Querier, b *models.DistributionBox) error
	GetByID(ctx context.Context, q db.Querier, id string) (*models.DistributionBox, error)
	List(ctx context.Context, q db.Querier) ([]*models.DistributionBox, error)
	AddOccupied(ctx context.Context, q db.Querier, boxID string, delta int) error
}

// PortStore is the persistence contract for ports. TransitionStatus is
// a compare-and-swap on the port's current status and returns
// ErrPortConflict when the swap loses.
type PortStore interface {
	CreateForBox(ctx context.Context, q db.Querier, boxID string, capacity int) error
	GetByID(ctx context.Context, q db.Querier, id string) (*models.Port, error)
	ListByBox(ctx context.Context, q db.Querier, boxID string) ([]*models.Port, error)
	UpdatePrice(ctx context.Context, q db.Querier, id string, price float64) error
	TransitionStatus(ctx context.Context, q db.Querier, id string, from []string, to string, tenantID *string) error
}

// OrderStore is the persistence contract for rental orders.
type OrderStore interface {
	Create(ctx context.Context, q db.Querier, o *models.RentalOrder) error
	GetByID(ctx context.Context, q db.Querier, id string) (*models.RentalOrder, error)
	Update(ctx context.Context, q db.Querier, o *models.RentalOrder) error
	ExistsActiveByPort(ctx context.Context, q db.Querier, portID string) (bool, error)
	List(ctx context.Context, q db.Querier, f models.OrderFilter) ([]*models.RentalOrder, error)
}

// NoteStore is the append-only persistence contract for order notes.
type NoteStore interface {
	Create(ctx context.Context, q db.Querier, n *models.OrderNote) error
	ListByOrder(ctx context.Context, q db.Querier, orderID string) ([]*models.OrderNote, error)
}
