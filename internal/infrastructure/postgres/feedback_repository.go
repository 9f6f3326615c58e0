package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/puntolimpio/lavanderia-api/internal/domain"
	"github.com/puntolimpio/lavanderia-api/internal/domain/entity"
	"github.com/puntolimpio/lavanderia-api/internal/domain/repository"
)

var _ repository.FeedbackRepository = (*FeedbackRepo)(nil)

// FeedbackRepo implementación de FeedbackRepository (usable con pool o tx).
type FeedbackRepo struct {
	q Querier
}

// NewFeedbackRepository construye el adaptador. Pasar pool o tx (Querier).
func NewFeedbackRepository(q Querier) *FeedbackRepo {
	return &FeedbackRepo{q: q}
}

// Create persiste un comentario de cliente.
func (r *FeedbackRepo) Create(fb *entity.Feedback) error {
	if fb.ID == "" {
		fb.ID = uuid.New().String()
	}
	query := `
		INSERT INTO customer_feedback (id, cliente_nombre, telefono, rating, comentario, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		fb.ID, fb.ClienteNombre, nullIfEmpty(fb.Telefono), fb.Rating, nullIfEmpty(fb.Comentario), fb.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert feedback: %w", err)
	}
	return nil
}

// List lista comentarios, más recientes primero.
func (r *FeedbackRepo) List(limit, offset int) ([]*entity.Feedback, error) {
	query := `
		SELECT id, cliente_nombre, COALESCE(telefono, ''), rating, COALESCE(comentario, ''), created_at
		FROM customer_feedback ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list feedback: %w", err)
	}
	defer rows.Close()
	var list []*entity.Feedback
	for rows.Next() {
		var fb entity.Feedback
		if err := rows.Scan(&fb.ID, &fb.ClienteNombre, &fb.Telefono, &fb.Rating, &fb.Comentario, &fb.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan feedback: %w", err)
		}
		list = append(list, &fb)
	}
	return list, rows.Err()
}
