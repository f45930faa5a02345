package service

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/gabriel-rosch/fibershare-sub001/internal/db"
	"github.com/gabriel-rosch/fibershare-sub001/internal/models"
)

// BoxService owns distribution boxes and their port provisioning.
type BoxService struct {
	store TxRunner
	boxes BoxStore
	ports PortStore
}

func NewBoxService(store TxRunner, boxes BoxStore, ports PortStore) *BoxService {
	return &BoxService{
		store: store,
		boxes: boxes,
		ports: ports,
	}
}

// CreateBox creates a box owned by the caller and provisions one
// available, price-0 port per capacity slot in the same transaction.
func (s *BoxService) CreateBox(ctx context.Context, actor models.Actor, req *models.CreateBoxRequest) (*models.DistributionBox, error) {
	if req.Capacity < 1 {
		return nil, fmt.Errorf("%w: capacity must be at least 1", models.ErrInvalidCapacity)
	}

	box := &models.DistributionBox{
		ID:        uuid.New().String(),
		Name:      req.Name,
		Capacity:  req.Capacity,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		Status:    models.BoxStatusActive,
		OwnerID:   actor.ID,
	}

	err := s.store.WithTx(ctx, func(q db.Querier) error {
		if err := s.boxes.Create(ctx, q, box); err != nil {
			return err
		}
		return s.ports.CreateForBox(ctx, q, box.ID, box.Capacity)
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[Box] Created box %s (%d ports) for operator %s", box.ID, box.Capacity, actor.ID)
	return box, nil
}

// GetBox retrieves a box with its ports ordered by port number
func (s *BoxService) GetBox(ctx context.Context, id string) (*models.DistributionBox, []*models.Port, error) {
	box, err := s.boxes.GetByID(ctx, nil, id)
	if err != nil {
		return nil, nil, err
	}

	ports, err := s.ports.ListByBox(ctx, nil, id)
	if err != nil {
		return nil, nil, err
	}

	return box, ports, nil
}

// ListBoxes retrieves all boxes
func (s *BoxService) ListBoxes(ctx context.Context) ([]*models.DistributionBox, error) {
	return s.boxes.List(ctx, nil)
}

// ListPorts retrieves a box's ports ordered by port number
func (s *BoxService) ListPorts(ctx context.Context, boxID string) ([]*models.Port, error) {
	if _, err := s.boxes.GetByID(ctx, nil, boxID); err != nil {
		return nil, err
	}
	return s.ports.ListByBox(ctx, nil, boxID)
}
