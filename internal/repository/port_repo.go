package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gabriel-rosch/fibershare-sub001/internal/db"
	"github.com/gabriel-rosch/fibershare-sub001/internal/models"
)

type PortRepository struct {
	pool *pgxpool.Pool
}

func NewPortRepository(pool *pgxpool.Pool) *PortRepository {
	return &PortRepository{pool: pool}
}

func (r *PortRepository) querier(q db.Querier) db.Querier {
	if q != nil {
		return q
	}
	return r.pool
}

// CreateForBox provisions one available, price-0 port per capacity
// slot. Refuses if any ports already exist for the box, so a repeated
// call cannot duplicate slots.
func (r *PortRepository) CreateForBox(ctx context.Context, q db.Querier, boxID string, capacity int) error {
	qr := r.querier(q)

	var exists bool
	err := qr.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM fibershare.ports WHERE box_id = $1)`, boxID,
	).Scan(&exists)
	if err != nil {
		return fmt.Errorf("check existing ports: %w", err)
	}
	if exists {
		return fmt.Errorf("ports already provisioned for box %s", boxID)
	}

	query := `
		INSERT INTO fibershare.ports (id, box_id, number, status, price)
		VALUES ($1, $2, $3, $4, 0)
	`
	for number := 1; number <= capacity; number++ {
		_, err := qr.Exec(ctx, query, uuid.New().String(), boxID, number, models.PortStatusAvailable)
		if err != nil {
			return fmt.Errorf("insert port %d: %w", number, err)
		}
	}

	return nil
}

// GetByID retrieves a port by ID
func (r *PortRepository) GetByID(ctx context.Context, q db.Querier, id string) (*models.Port, error) {
	query := `
		SELECT id, box_id, number, status, price, tenant_id, service_plan,
		       created_at, updated_at
		FROM fibershare.ports
		WHERE id = $1
	`

	return r.scanPort(r.querier(q).QueryRow(ctx, query, id))
}

// ListByBox retrieves a box's ports ordered by port number
func (r *PortRepository) ListByBox(ctx context.Context, q db.Querier, boxID string) ([]*models.Port, error) {
	query := `
		SELECT id, box_id, number, status, price, tenant_id, service_plan,
		       created_at, updated_at
		FROM fibershare.ports
		WHERE box_id = $1
		ORDER BY number
	`

	rows, err := r.querier(q).Query(ctx, query, boxID)
	if err != nil {
		return nil, fmt.Errorf("query ports: %w", err)
	}
	defer rows.Close()

	var ports []*models.Port
	for rows.Next() {
		p := &models.Port{}
		err := rows.Scan(
			&p.ID, &p.BoxID, &p.Number, &p.Status, &p.Price, &p.TenantID, &p.ServicePlan,
			&p.CreatedAt, &p.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan port row: %w", err)
		}
		ports = append(ports, p)
	}
	return ports, rows.Err()
}

// UpdatePrice sets the monthly price of a port
func (r *PortRepository) UpdatePrice(ctx context.Context, q db.Querier, id string, price float64) error {
	query := `UPDATE fibershare.ports SET price = $1, updated_at = now() WHERE id = $2`

	tag, err := r.querier(q).Exec(ctx, query, price, id)
	if err != nil {
		return fmt.Errorf("update port price: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

// TransitionStatus moves a port to a new status with a compare-and-swap
// keyed on its current status, setting (or clearing) the tenant in the
// same statement. ErrPortConflict is returned when the port is no
// longer in one of the expected source states, which is how exactly one
// of several racing transactions wins.
func (r *PortRepository) TransitionStatus(ctx context.Context, q db.Querier, id string, from []string, to string, tenantID *string) error {
	query := `
		UPDATE fibershare.ports
		SET status = $1, tenant_id = $2, updated_at = now()
		WHERE id = $3 AND status = ANY($4)
	`

	tag, err := r.querier(q).Exec(ctx, query, to, tenantID, id, from)
	if err != nil {
		return fmt.Errorf("transition port status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrPortConflict
	}
	return nil
}

func (r *PortRepository) scanPort(row pgx.Row) (*models.Port, error) {
	p := &models.Port{}
	err := row.Scan(
		&p.ID, &p.BoxID, &p.Number, &p.Status, &p.Price, &p.TenantID, &p.ServicePlan,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("scan port: %w", err)
	}
	return p, nil
}
