package service

// Shared test environment: all three services wired against the
// in-memory fakes.

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gabriel-rosch/fibershare-sub001/internal/models"
)

var (
	ownerActor     = models.Actor{ID: "op-owner", Role: models.RoleOperator}
	requesterActor = models.Actor{ID: "op-requester", Role: models.RoleOperator}
	strangerActor  = models.Actor{ID: "op-stranger", Role: models.RoleOperator}
	adminActor     = models.Actor{ID: "op-admin", Role: models.RoleAdmin}
)

type env struct {
	tx     *fakeTx
	boxes  *fakeBoxStore
	ports  *fakePortStore
	orders *fakeOrderStore
	notes  *fakeNoteStore

	boxSvc   *BoxService
	portSvc  *PortService
	orderSvc *OrderService
}

func newEnv() *env {
	e := &env{
		tx:     &fakeTx{},
		boxes:  newFakeBoxStore(),
		ports:  newFakePortStore(),
		orders: newFakeOrderStore(),
		notes:  newFakeNoteStore(),
	}
	e.boxSvc = NewBoxService(e.tx, e.boxes, e.ports)
	e.portSvc = NewPortService(e.tx, e.boxes, e.ports)
	e.orderSvc = NewOrderService(e.tx, e.boxes, e.ports, e.orders, e.notes, e.portSvc)
	return e
}

// createBox provisions a box owned by ownerActor and returns it with
// its ports ordered by number.
func (e *env) createBox(t *testing.T, capacity int) (*models.DistributionBox, []*models.Port) {
	t.Helper()
	box, err := e.boxSvc.CreateBox(context.Background(), ownerActor, &models.CreateBoxRequest{
		Name:     "CTO-001",
		Capacity: capacity,
	})
	require.NoError(t, err)

	ports, err := e.boxSvc.ListPorts(context.Background(), box.ID)
	require.NoError(t, err)
	require.Len(t, ports, capacity)
	return box, ports
}

// requireCounterInvariant asserts that the box's occupied counter
// equals the number of its ports in reserved or occupied state.
func (e *env) requireCounterInvariant(t *testing.T, boxID string) {
	t.Helper()
	box, err := e.boxes.GetByID(context.Background(), nil, boxID)
	require.NoError(t, err)

	ports, err := e.ports.ListByBox(context.Background(), nil, boxID)
	require.NoError(t, err)

	occupied := 0
	for _, p := range ports {
		if models.CountsAsOccupied(p.Status) {
			occupied++
		}
	}
	require.Equal(t, occupied, box.OccupiedCount,
		"occupied_count must equal the number of reserved/occupied ports")
}

func (e *env) portStatus(t *testing.T, portID string) string {
	t.Helper()
	p, err := e.ports.GetByID(context.Background(), nil, portID)
	require.NoError(t, err)
	return p.Status
}
