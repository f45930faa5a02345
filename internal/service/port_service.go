package service

import (
	"context"
	"fmt"
	"log"

	"github.com/gabriel-rosch/fibershare-sub001/internal/db"
	"github.com/gabriel-rosch/fibershare-sub001/internal/models"
)

// PortService is the reservation service: atomic state transitions on
// individual ports. Every transition applies its box counter delta in
// the same transaction, so the occupied counter never drifts from the
// per-port state.
type PortService struct {
	store TxRunner
	boxes BoxStore
	ports PortStore
}

func NewPortService(store TxRunner, boxes BoxStore, ports PortStore) *PortService {
	return &PortService{
		store: store,
		boxes: boxes,
		ports: ports,
	}
}

// GetPort retrieves a port by ID
func (s *PortService) GetPort(ctx context.Context, id string) (*models.Port, error) {
	return s.ports.GetByID(ctx, nil, id)
}

// SetPrice sets the monthly price of a port. Only the box owner (or an
// admin) may set prices.
func (s *PortService) SetPrice(ctx context.Context, actor models.Actor, portID string, price float64) (*models.Port, error) {
	if price < 0 {
		return nil, fmt.Errorf("%w: price must not be negative", models.ErrInvalidPrice)
	}

	var port *models.Port
	err := s.store.WithTx(ctx, func(q db.Querier) error {
		var err error
		port, err = s.ports.GetByID(ctx, q, portID)
		if err != nil {
			return err
		}

		if err := s.authorizeOwner(ctx, q, port.BoxID, actor); err != nil {
			return err
		}

		if err := s.ports.UpdatePrice(ctx, q, portID, price); err != nil {
			return err
		}
		port.Price = price
		return nil
	})
	if err != nil {
		return nil, err
	}

	return port, nil
}

// SetMaintenance moves a port into or out of maintenance. Maintenance
// is only reachable from available, so a port under a live order cannot
// be taken out of service.
func (s *PortService) SetMaintenance(ctx context.Context, actor models.Actor, portID, action string) (*models.Port, error) {
	var from, to string
	switch action {
	case models.MaintenanceEnter:
		from, to = models.PortStatusAvailable, models.PortStatusMaintenance
	case models.MaintenanceExit:
		from, to = models.PortStatusMaintenance, models.PortStatusAvailable
	default:
		return nil, fmt.Errorf("%w: unknown maintenance action %q", models.ErrInvalidTransition, action)
	}

	var port *models.Port
	err := s.store.WithTx(ctx, func(q db.Querier) error {
		var err error
		port, err = s.ports.GetByID(ctx, q, portID)
		if err != nil {
			return err
		}

		if err := s.authorizeOwner(ctx, q, port.BoxID, actor); err != nil {
			return err
		}

		if port.Status != from {
			return fmt.Errorf("%w: port is %s, not %s", models.ErrInvalidTransition, port.Status, from)
		}

		if err := s.ports.TransitionStatus(ctx, q, portID, []string{from}, to, nil); err != nil {
			return err
		}
		port.Status = to
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[Port] Port %s maintenance %s by %s", portID, action, actor.ID)
	return port, nil
}

// Reserve moves an available port to reserved and bumps the box
// counter. Called by the order engine inside its own transaction;
// exactly one of several racing reservations wins, the rest get
// ErrPortConflict from the compare-and-swap.
func (s *PortService) Reserve(ctx context.Context, q db.Querier, port *models.Port) error {
	err := s.ports.TransitionStatus(ctx, q, port.ID,
		[]string{models.PortStatusAvailable}, models.PortStatusReserved, nil)
	if err != nil {
		return err
	}
	return s.boxes.AddOccupied(ctx, q, port.BoxID, 1)
}

// Occupy moves a reserved port to occupied and records the tenant. The
// counter already accounts for reserved ports, so no delta applies.
func (s *PortService) Occupy(ctx context.Context, q db.Querier, port *models.Port, tenantID string) error {
	return s.ports.TransitionStatus(ctx, q, port.ID,
		[]string{models.PortStatusReserved}, models.PortStatusOccupied, &tenantID)
}

// Release returns a reserved or occupied port to available, clearing
// the tenant and decrementing the box counter. Releasing a port that is
// already available is a no-op success, so a retried release can never
// drive the counter below the true occupied count.
func (s *PortService) Release(ctx context.Context, q db.Querier, portID string) error {
	port, err := s.ports.GetByID(ctx, q, portID)
	if err != nil {
		return err
	}

	if !models.CountsAsOccupied(port.Status) {
		return nil
	}

	err = s.ports.TransitionStatus(ctx, q, portID,
		[]string{models.PortStatusReserved, models.PortStatusOccupied}, models.PortStatusAvailable, nil)
	if err != nil {
		return err
	}
	return s.boxes.AddOccupied(ctx, q, port.BoxID, -1)
}

func (s *PortService) authorizeOwner(ctx context.Context, q db.Querier, boxID string, actor models.Actor) error {
	box, err := s.boxes.GetByID(ctx, q, boxID)
	if err != nil {
		return err
	}
	if box.OwnerID != actor.ID && !actor.IsAdmin() {
		return fmt.Errorf("%w: only the box owner may manage its ports", models.ErrUnauthorized)
	}
	return nil
}
