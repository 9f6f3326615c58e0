package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/puntolimpio/lavanderia-api/internal/domain"
	"github.com/puntolimpio/lavanderia-api/internal/domain/entity"
	"github.com/puntolimpio/lavanderia-api/internal/domain/repository"
)

var _ repository.InventarioRepository = (*InventarioRepo)(nil)

// InventarioRepo implementación de InventarioRepository (usable con pool o tx).
type InventarioRepo struct {
	q Querier
}

// NewInventarioRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventarioRepository(q Querier) *InventarioRepo {
	return &InventarioRepo{q: q}
}

// Create persiste un insumo. El nombre es único.
func (r *InventarioRepo) Create(item *entity.InventarioItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	query := `
		INSERT INTO inventario_items (id, nombre, stock, stock_minimo, unit_cost, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.Nombre, item.Stock, item.StockMinimo, item.UnitCost, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert inventario item: %w", err)
	}
	return nil
}

// GetByID obtiene un insumo por ID.
func (r *InventarioRepo) GetByID(id string) (*entity.InventarioItem, error) {
	query := `
		SELECT id, nombre, stock, stock_minimo, unit_cost, created_at, updated_at
		FROM inventario_items WHERE id = $1`
	var it entity.InventarioItem
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&it.ID, &it.Nombre, &it.Stock, &it.StockMinimo, &it.UnitCost, &it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventario item: %w", err)
	}
	return &it, nil
}

// List lista insumos ordenados por nombre con paginación.
func (r *InventarioRepo) List(limit, offset int) ([]*entity.InventarioItem, error) {
	query := `
		SELECT id, nombre, stock, stock_minimo, unit_cost, created_at, updated_at
		FROM inventario_items ORDER BY nombre LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list inventario: %w", err)
	}
	return r.scanList(rows)
}

// ListBajoStock lista los insumos con stock en o por debajo del umbral.
func (r *InventarioRepo) ListBajoStock() ([]*entity.InventarioItem, error) {
	query := `
		SELECT id, nombre, stock, stock_minimo, unit_cost, created_at, updated_at
		FROM inventario_items WHERE stock <= stock_minimo ORDER BY nombre`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list bajo stock: %w", err)
	}
	return r.scanList(rows)
}

func (r *InventarioRepo) scanList(rows pgx.Rows) ([]*entity.InventarioItem, error) {
	defer rows.Close()
	var list []*entity.InventarioItem
	for rows.Next() {
		var it entity.InventarioItem
		if err := rows.Scan(&it.ID, &it.Nombre, &it.Stock, &it.StockMinimo, &it.UnitCost, &it.CreatedAt, &it.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan inventario item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

// Update actualiza un insumo (stock, umbral, costo).
func (r *InventarioRepo) Update(item *entity.InventarioItem) error {
	query := `
		UPDATE inventario_items SET nombre = $2, stock = $3, stock_minimo = $4, unit_cost = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.Nombre, item.Stock, item.StockMinimo, item.UnitCost, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update inventario item: %w", err)
	}
	return nil
}
