package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gabriel-rosch/fibershare-sub001/internal/db"
	"github.com/gabriel-rosch/fibershare-sub001/internal/models"
)

type BoxRepository struct {
	pool *pgxpool.Pool
}

func NewBoxRepository(pool *pgxpool.Pool) *BoxRepository {
	return &BoxRepository{pool: pool}
}

// querier returns q when a transaction is in flight, the pool otherwise
func (r *BoxRepository) querier(q db.Querier) db.Querier {
	if q != nil {
		return q
	}
	return r.pool
}

// Create inserts a new distribution box
func (r *BoxRepository) Create(ctx context.Context, q db.Querier, b *models.DistributionBox) error {
	query := `
		INSERT INTO fibershare.boxes (
			id, name, capacity, occupied_count, latitude, longitude,
			status, owner_id
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.querier(q).Exec(ctx, query,
		b.ID, b.Name, b.Capacity, b.OccupiedCount, b.Latitude, b.Longitude,
		b.Status, b.OwnerID,
	)
	if err != nil {
		return fmt.Errorf("insert box: %w", err)
	}

	return nil
}

// GetByID retrieves a box by ID
func (r *BoxRepository) GetByID(ctx context.Context, q db.Querier, id string) (*models.DistributionBox, error) {
	query := `
		SELECT id, name, capacity, occupied_count, latitude, longitude,
		       status, owner_id, created_at, updated_at
		FROM fibershare.boxes
		WHERE id = $1
	`

	return r.scanBox(r.querier(q).QueryRow(ctx, query, id))
}

// List retrieves all boxes, newest first
func (r *BoxRepository) List(ctx context.Context, q db.Querier) ([]*models.DistributionBox, error) {
	query := `
		SELECT id, name, capacity, occupied_count, latitude, longitude,
		       status, owner_id, created_at, updated_at
		FROM fibershare.boxes
		ORDER BY created_at DESC
	`

	rows, err := r.querier(q).Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query boxes: %w", err)
	}
	defer rows.Close()

	var boxes []*models.DistributionBox
	for rows.Next() {
		b := &models.DistributionBox{}
		err := rows.Scan(
			&b.ID, &b.Name, &b.Capacity, &b.OccupiedCount, &b.Latitude, &b.Longitude,
			&b.Status, &b.OwnerID, &b.CreatedAt, &b.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan box row: %w", err)
		}
		boxes = append(boxes, b)
	}
	return boxes, rows.Err()
}

// AddOccupied applies a delta to the box's occupied counter. Only ever
// called in the same transaction as the port status change it accounts
// for.
func (r *BoxRepository) AddOccupied(ctx context.Context, q db.Querier, boxID string, delta int) error {
	query := `
		UPDATE fibershare.boxes
		SET occupied_count = occupied_count + $1, updated_at = now()
		WHERE id = $2
	`

	tag, err := r.querier(q).Exec(ctx, query, delta, boxID)
	if err != nil {
		return fmt.Errorf("update occupied_count: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *BoxRepository) scanBox(row pgx.Row) (*models.DistributionBox, error) {
	b := &models.DistributionBox{}
	err := row.Scan(
		&b.ID, &b.Name, &b.Capacity, &b.OccupiedCount, &b.Latitude, &b.Longitude,
		&b.Status, &b.OwnerID, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("scan box: %w", err)
	}
	return b, nil
}
