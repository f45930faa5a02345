package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gabriel-rosch/fibershare-sub001/internal/db"
	"github.com/gabriel-rosch/fibershare-sub001/internal/models"
)

// NoteRepository is append-only: there is no update or delete.
type NoteRepository struct {
	pool *pgxpool.Pool
}

func NewNoteRepository(pool *pgxpool.Pool) *NoteRepository {
	return &NoteRepository{pool: pool}
}

func (r *NoteRepository) querier(q db.Querier) db.Querier {
	if q != nil {
		return q
	}
	return r.pool
}

// Create appends a note to an order
func (r *NoteRepository) Create(ctx context.Context, q db.Querier, n *models.OrderNote) error {
	if n.ID == "" {
		n.ID = uuid.New().String()
	}

	query := `
		INSERT INTO fibershare.order_notes (id, order_id, author_id, content, is_system)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.querier(q).Exec(ctx, query,
		n.ID, n.OrderID, n.AuthorID, n.Content, n.IsSystem,
	)
	if err != nil {
		return fmt.Errorf("insert order note: %w", err)
	}

	return nil
}

// ListByOrder retrieves an order's notes, oldest first
func (r *NoteRepository) ListByOrder(ctx context.Context, q db.Querier, orderID string) ([]*models.OrderNote, error) {
	query := `
		SELECT id, order_id, author_id, content, is_system, created_at
		FROM fibershare.order_notes
		WHERE order_id = $1
		ORDER BY created_at
	`

	rows, err := r.querier(q).Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("query order notes: %w", err)
	}
	defer rows.Close()

	var notes []*models.OrderNote
	for rows.Next() {
		n := &models.OrderNote{}
		err := rows.Scan(&n.ID, &n.OrderID, &n.AuthorID, &n.Content, &n.IsSystem, &n.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan order note: %w", err)
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}
