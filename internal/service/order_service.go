package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/gabriel-rosch/fibershare-sub001/internal/db"
	"github.com/gabriel-rosch/fibershare-sub001/internal/models"
)

// OrderService is the rental-order lifecycle engine. Every transition
// runs as one serializable transaction: guard check, order update, port
// compare-and-swap, counter delta and system note commit together or
// not at all.
type OrderService struct {
	store        TxRunner
	boxes        BoxStore
	ports        PortStore
	orders       OrderStore
	notes        NoteStore
	reservations *PortService
}

func NewOrderService(
	store TxRunner,
	boxes BoxStore,
	ports PortStore,
	orders OrderStore,
	notes NoteStore,
	reservations *PortService,
) *OrderService {
	return &OrderService{
		store:        store,
		boxes:        boxes,
		ports:        ports,
		orders:       orders,
		notes:        notes,
		reservations: reservations,
	}
}

// CreateOrder submits a rental request against an available port. The
// port's state is not changed: reservation only happens once the
// contract is fully signed, so pending requests never lock a port away
// from other requesters.
func (s *OrderService) CreateOrder(ctx context.Context, actor models.Actor, req *models.CreateOrderRequest) (*models.RentalOrder, error) {
	if req.Price < 0 || req.InstallationFee < 0 {
		return nil, fmt.Errorf("%w: price and installation fee must not be negative", models.ErrInvalidPrice)
	}

	var order *models.RentalOrder
	err := s.store.WithTx(ctx, func(q db.Querier) error {
		port, err := s.ports.GetByID(ctx, q, req.PortID)
		if err != nil {
			return err
		}
		if port.Status != models.PortStatusAvailable {
			return fmt.Errorf("%w: port is %s", models.ErrPortUnavailable, port.Status)
		}

		box, err := s.boxes.GetByID(ctx, q, port.BoxID)
		if err != nil {
			return err
		}
		if box.OwnerID == actor.ID {
			return fmt.Errorf("%w: cannot request a port on your own box", models.ErrUnauthorized)
		}

		active, err := s.orders.ExistsActiveByPort(ctx, q, port.ID)
		if err != nil {
			return err
		}
		if active {
			return fmt.Errorf("%w: port already has a live order", models.ErrPortUnavailable)
		}

		order = &models.RentalOrder{
			ID:              uuid.New().String(),
			PortID:          port.ID,
			BoxID:           box.ID,
			RequesterID:     actor.ID,
			OwnerID:         box.OwnerID,
			Status:          models.OrderStatusPendingApproval,
			Price:           req.Price,
			InstallationFee: req.InstallationFee,
		}
		if err := s.orders.Create(ctx, q, order); err != nil {
			return err
		}

		return s.appendSystemNote(ctx, q, order.ID,
			fmt.Sprintf("order created in %s for port %d", order.Status, port.Number))
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[Order] Created order %s: requester=%s owner=%s port=%s",
		order.ID, order.RequesterID, order.OwnerID, order.PortID)
	return s.GetOrder(ctx, actor, order.ID)
}

// Decide records the owner's approve/reject decision. Approval
// re-checks the port transactionally: an order created against a port
// that has since been taken fails with ErrPortConflict.
func (s *OrderService) Decide(ctx context.Context, actor models.Actor, orderID string, approve bool) (*models.RentalOrder, error) {
	err := s.store.WithTx(ctx, func(q db.Querier) error {
		order, err := s.orders.GetByID(ctx, q, orderID)
		if err != nil {
			return err
		}
		if actor.ID != order.OwnerID && !actor.IsAdmin() {
			return fmt.Errorf("%w: only the owner may decide an order", models.ErrUnauthorized)
		}

		if !approve {
			return s.transition(ctx, q, order, models.OrderStatusRejected)
		}

		if !models.CanTransitionOrder(order.Status, models.OrderStatusContractGenerated) {
			return fmt.Errorf("%w: cannot approve order in %s", models.ErrInvalidTransition, order.Status)
		}
		port, err := s.ports.GetByID(ctx, q, order.PortID)
		if err != nil {
			return err
		}
		if port.Status != models.PortStatusAvailable {
			return fmt.Errorf("%w: port is %s at approval time", models.ErrPortConflict, port.Status)
		}

		return s.transition(ctx, q, order, models.OrderStatusContractGenerated)
	})
	if err != nil {
		return nil, err
	}

	return s.GetOrder(ctx, actor, orderID)
}

// Sign sets the caller's own signature flag. Each party may only sign
// for itself; once both flags are set the order enters contract_signed
// and the port is reserved, bumping the box counter.
func (s *OrderService) Sign(ctx context.Context, actor models.Actor, orderID string) (*models.RentalOrder, error) {
	err := s.store.WithTx(ctx, func(q db.Querier) error {
		order, err := s.orders.GetByID(ctx, q, orderID)
		if err != nil {
			return err
		}
		if order.Status != models.OrderStatusContractGenerated {
			return fmt.Errorf("%w: cannot sign in %s", models.ErrInvalidTransition, order.Status)
		}

		switch actor.ID {
		case order.RequesterID:
			order.RequesterSigned = true
		case order.OwnerID:
			order.OwnerSigned = true
		default:
			return fmt.Errorf("%w: only a contract party may sign", models.ErrUnauthorized)
		}

		if !(order.RequesterSigned && order.OwnerSigned) {
			return s.orders.Update(ctx, q, order)
		}

		port, err := s.ports.GetByID(ctx, q, order.PortID)
		if err != nil {
			return err
		}
		if err := s.reservations.Reserve(ctx, q, port); err != nil {
			return err
		}

		return s.transition(ctx, q, order, models.OrderStatusContractSigned)
	})
	if err != nil {
		return nil, err
	}

	return s.GetOrder(ctx, actor, orderID)
}

// Schedule sets the installation date. Owner only; the date is plain
// data, no timer advances the order when it passes.
func (s *OrderService) Schedule(ctx context.Context, actor models.Actor, orderID string, date time.Time) (*models.RentalOrder, error) {
	err := s.store.WithTx(ctx, func(q db.Querier) error {
		order, err := s.orders.GetByID(ctx, q, orderID)
		if err != nil {
			return err
		}
		if actor.ID != order.OwnerID && !actor.IsAdmin() {
			return fmt.Errorf("%w: only the owner may schedule installation", models.ErrUnauthorized)
		}
		if date.Before(time.Now()) {
			return fmt.Errorf("%w: scheduled date is in the past", models.ErrInvalidTransition)
		}

		order.ScheduledAt = &date
		return s.transition(ctx, q, order, models.OrderStatusInstallScheduled)
	})
	if err != nil {
		return nil, err
	}

	return s.GetOrder(ctx, actor, orderID)
}

// Advance moves the installation forward one step: scheduled ->
// in-progress -> completed. On completion the port becomes occupied
// with the requester as tenant.
func (s *OrderService) Advance(ctx context.Context, actor models.Actor, orderID string) (*models.RentalOrder, error) {
	err := s.store.WithTx(ctx, func(q db.Querier) error {
		order, err := s.orders.GetByID(ctx, q, orderID)
		if err != nil {
			return err
		}
		if actor.ID != order.OwnerID && !actor.IsAdmin() {
			return fmt.Errorf("%w: only the owner may advance installation", models.ErrUnauthorized)
		}

		switch order.Status {
		case models.OrderStatusInstallScheduled:
			return s.transition(ctx, q, order, models.OrderStatusInstallInProgress)

		case models.OrderStatusInstallInProgress:
			port, err := s.ports.GetByID(ctx, q, order.PortID)
			if err != nil {
				return err
			}
			if err := s.reservations.Occupy(ctx, q, port, order.RequesterID); err != nil {
				return err
			}
			now := time.Now()
			order.CompletedAt = &now
			return s.transition(ctx, q, order, models.OrderStatusCompleted)

		default:
			return fmt.Errorf("%w: cannot advance installation from %s", models.ErrInvalidTransition, order.Status)
		}
	})
	if err != nil {
		return nil, err
	}

	return s.GetOrder(ctx, actor, orderID)
}

// Cancel terminates a non-terminal order. Either party may cancel; if
// the order had already reserved or occupied its port, the port is
// released and the counter decremented in the same transaction.
func (s *OrderService) Cancel(ctx context.Context, actor models.Actor, orderID string) (*models.RentalOrder, error) {
	err := s.store.WithTx(ctx, func(q db.Querier) error {
		order, err := s.orders.GetByID(ctx, q, orderID)
		if err != nil {
			return err
		}
		if !order.IsParty(actor.ID) && !actor.IsAdmin() {
			return fmt.Errorf("%w: only a party may cancel an order", models.ErrUnauthorized)
		}

		prev := order.Status
		if err := s.transition(ctx, q, order, models.OrderStatusCancelled); err != nil {
			return err
		}

		if orderHoldsPort(prev) {
			return s.reservations.Release(ctx, q, order.PortID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[Order] Order %s cancelled by %s", orderID, actor.ID)
	return s.GetOrder(ctx, actor, orderID)
}

// AddNote appends a human note. Notes are allowed in any state,
// terminal included, and never trigger a transition.
func (s *OrderService) AddNote(ctx context.Context, actor models.Actor, orderID, content string) (*models.OrderNote, error) {
	order, err := s.orders.GetByID(ctx, nil, orderID)
	if err != nil {
		return nil, err
	}
	if !order.IsParty(actor.ID) && !actor.IsAdmin() {
		return nil, fmt.Errorf("%w: only a party may comment on an order", models.ErrUnauthorized)
	}

	note := &models.OrderNote{
		OrderID:  orderID,
		AuthorID: actor.ID,
		Content:  content,
		IsSystem: false,
	}
	if err := s.notes.Create(ctx, nil, note); err != nil {
		return nil, err
	}
	return note, nil
}

// GetOrder retrieves an order with its full note history, oldest first.
// Only the parties (or an admin) may read an order.
func (s *OrderService) GetOrder(ctx context.Context, actor models.Actor, orderID string) (*models.RentalOrder, error) {
	order, err := s.orders.GetByID(ctx, nil, orderID)
	if err != nil {
		return nil, err
	}
	if !order.IsParty(actor.ID) && !actor.IsAdmin() {
		return nil, fmt.Errorf("%w: not a party to this order", models.ErrUnauthorized)
	}

	notes, err := s.notes.ListByOrder(ctx, nil, orderID)
	if err != nil {
		return nil, err
	}
	order.Notes = notes
	return order, nil
}

// ListOrders queries the caller's orders. Direction defaults to all.
func (s *OrderService) ListOrders(ctx context.Context, actor models.Actor, f models.OrderFilter) ([]*models.RentalOrder, error) {
	if f.Direction == "" {
		f.Direction = models.DirectionAll
	}
	switch f.Direction {
	case models.DirectionIncoming, models.DirectionOutgoing, models.DirectionAll:
	default:
		return nil, fmt.Errorf("invalid direction %q", f.Direction)
	}
	f.OperatorID = actor.ID

	return s.orders.List(ctx, nil, f)
}

// transition moves an order along a table-validated edge and appends
// the transition's system note.
func (s *OrderService) transition(ctx context.Context, q db.Querier, order *models.RentalOrder, to string) error {
	if !models.CanTransitionOrder(order.Status, to) {
		return fmt.Errorf("%w: %s -> %s", models.ErrInvalidTransition, order.Status, to)
	}

	from := order.Status
	order.Status = to
	if err := s.orders.Update(ctx, q, order); err != nil {
		return err
	}

	return s.appendSystemNote(ctx, q, order.ID,
		fmt.Sprintf("status changed from %s to %s", from, to))
}

func (s *OrderService) appendSystemNote(ctx context.Context, q db.Querier, orderID, content string) error {
	return s.notes.Create(ctx, q, &models.OrderNote{
		OrderID:  orderID,
		AuthorID: models.SystemAuthor,
		Content:  content,
		IsSystem: true,
	})
}

// orderHoldsPort reports whether an order in the given status has
// already reserved (or occupied) its target port.
func orderHoldsPort(status string) bool {
	switch status {
	case models.OrderStatusContractSigned,
		models.OrderStatusInstallScheduled,
		models.OrderStatusInstallInProgress:
		return true
	}
	return false
}
