package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/puntolimpio/lavanderia-api/internal/domain"
	"github.com/puntolimpio/lavanderia-api/internal/domain/entity"
	"github.com/puntolimpio/lavanderia-api/internal/domain/repository"
)

var _ repository.GastoRepository = (*GastoRepo)(nil)

// GastoRepo implementación de GastoRepository (usable con pool o tx).
type GastoRepo struct {
	q Querier
}

// NewGastoRepository construye el adaptador. Pasar pool o tx (Querier).
func NewGastoRepository(q Querier) *GastoRepo {
	return &GastoRepo{q: q}
}

// Create persiste un gasto.
func (r *GastoRepo) Create(g *entity.Gasto) error {
	if g.ID == "" {
		g.ID = uuid.New().String()
	}
	query := `
		INSERT INTO gastos (id, concepto, categoria, monto, fecha, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		g.ID, g.Concepto, g.Categoria, g.Monto, g.Fecha, g.CreatedAt, g.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert gasto: %w", err)
	}
	return nil
}

// GetByID obtiene un gasto por ID.
func (r *GastoRepo) GetByID(id string) (*entity.Gasto, error) {
	query := `
		SELECT id, concepto, categoria, monto, fecha, created_at, updated_at
		FROM gastos WHERE id = $1`
	var g entity.Gasto
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&g.ID, &g.Concepto, &g.Categoria, &g.Monto, &g.Fecha, &g.CreatedAt, &g.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get gasto: %w", err)
	}
	return &g, nil
}

// ListByRange lista gastos del período, más recientes primero.
func (r *GastoRepo) ListByRange(from, to time.Time, limit, offset int) ([]*entity.Gasto, error) {
	query := `
		SELECT id, concepto, categoria, monto, fecha, created_at, updated_at
		FROM gastos WHERE fecha BETWEEN $1 AND $2
		ORDER BY fecha DESC LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(context.Background(), query, from, to, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list gastos: %w", err)
	}
	defer rows.Close()
	var list []*entity.Gasto
	for rows.Next() {
		var g entity.Gasto
		if err := rows.Scan(&g.ID, &g.Concepto, &g.Categoria, &g.Monto, &g.Fecha, &g.CreatedAt, &g.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan gasto: %w", err)
		}
		list = append(list, &g)
	}
	return list, rows.Err()
}

// Update actualiza un gasto.
func (r *GastoRepo) Update(g *entity.Gasto) error {
	query := `
		UPDATE gastos SET concepto = $2, categoria = $3, monto = $4, updated_at = $5
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		g.ID, g.Concepto, g.Categoria, g.Monto, g.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update gasto: %w", err)
	}
	return nil
}

// Delete elimina un gasto por ID.
func (r *GastoRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM gastos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete gasto: %w", err)
	}
	return nil
}
