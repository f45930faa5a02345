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

type OrderRepository struct {
	pool *pgxpool.Pool
}

func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}

func (r *OrderRepository) querier(q db.Querier) db.Querier {
	if q != nil {
		return q
	}
	return r.pool
}

// Create inserts a new rental order
func (r *OrderRepository) Create(ctx context.Context, q db.Querier, o *models.RentalOrder) error {
	query := `
		INSERT INTO fibershare.orders (
			id, port_id, box_id, requester_id, owner_id, status,
			price, installation_fee, requester_signed, owner_signed,
			scheduled_at, completed_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.querier(q).Exec(ctx, query,
		o.ID, o.PortID, o.BoxID, o.RequesterID, o.OwnerID, o.Status,
		o.Price, o.InstallationFee, o.RequesterSigned, o.OwnerSigned,
		o.ScheduledAt, o.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	return nil
}

// GetByID retrieves an order by ID (without notes)
func (r *OrderRepository) GetByID(ctx context.Context, q db.Querier, id string) (*models.RentalOrder, error) {
	query := `
		SELECT id, port_id, box_id, requester_id, owner_id, status,
		       price, installation_fee, requester_signed, owner_signed,
		       scheduled_at, completed_at, created_at, updated_at
		FROM fibershare.orders
		WHERE id = $1
	`

	return r.scanOrder(r.querier(q).QueryRow(ctx, query, id))
}

// Update writes back the mutable order fields
func (r *OrderRepository) Update(ctx context.Context, q db.Querier, o *models.RentalOrder) error {
	query := `
		UPDATE fibershare.orders SET
			status = $1,
			requester_signed = $2,
			owner_signed = $3,
			scheduled_at = $4,
			completed_at = $5,
			updated_at = now()
		WHERE id = $6
	`

	tag, err := r.querier(q).Exec(ctx, query,
		o.Status, o.RequesterSigned, o.OwnerSigned,
		o.ScheduledAt, o.CompletedAt, o.ID,
	)
	if err != nil {
		return fmt.Errorf("update order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

// ExistsActiveByPort reports whether any non-terminal order targets the
// port. At most one such order exists at a time.
func (r *OrderRepository) ExistsActiveByPort(ctx context.Context, q db.Querier, portID string) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM fibershare.orders
			WHERE port_id = $1 AND status = ANY($2)
		)
	`

	var exists bool
	err := r.querier(q).QueryRow(ctx, query, portID, models.ActiveOrderStatuses()).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check active order: %w", err)
	}
	return exists, nil
}

// List queries orders with optional filters, newest first. Direction is
// resolved against the filter's operator id.
func (r *OrderRepository) List(ctx context.Context, q db.Querier, f models.OrderFilter) ([]*models.RentalOrder, error) {
	query := `
		SELECT id, port_id, box_id, requester_id, owner_id, status,
		       price, installation_fee, requester_signed, owner_signed,
		       scheduled_at, completed_at, created_at, updated_at
		FROM fibershare.orders
		WHERE ($1 = '' OR status = $1)
		  AND ($2 = '' OR port_id = $2)
		  AND ($3 = '' OR box_id = $3)
		  AND (
			($4 = 'incoming' AND owner_id = $5)
			OR ($4 = 'outgoing' AND requester_id = $5)
			OR ($4 = 'all' AND (owner_id = $5 OR requester_id = $5))
		  )
		ORDER BY created_at DESC
		LIMIT 100
	`

	rows, err := r.querier(q).Query(ctx, query, f.Status, f.PortID, f.BoxID, f.Direction, f.OperatorID)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var orders []*models.RentalOrder
	for rows.Next() {
		o := &models.RentalOrder{}
		err := rows.Scan(
			&o.ID, &o.PortID, &o.BoxID, &o.RequesterID, &o.OwnerID, &o.Status,
			&o.Price, &o.InstallationFee, &o.RequesterSigned, &o.OwnerSigned,
			&o.ScheduledAt, &o.CompletedAt, &o.CreatedAt, &o.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan order row: %w", err)
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func (r *OrderRepository) scanOrder(row pgx.Row) (*models.RentalOrder, error) {
	o := &models.RentalOrder{}
	err := row.Scan(
		&o.ID, &o.PortID, &o.BoxID, &o.RequesterID, &o.OwnerID, &o.Status,
		&o.Price, &o.InstallationFee, &o.RequesterSigned, &o.OwnerSigned,
		&o.ScheduledAt, &o.CompletedAt, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("scan order: %w", err)
	}
	return o, nil
}
