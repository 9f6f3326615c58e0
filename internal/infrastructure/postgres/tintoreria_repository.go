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

var _ repository.TintoreriaRepository = (*TintoreriaRepo)(nil)

// TintoreriaRepo implementación de TintoreriaRepository (usable con pool o tx).
type TintoreriaRepo struct {
	q Querier
}

// NewTintoreriaRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTintoreriaRepository(q Querier) *TintoreriaRepo {
	return &TintoreriaRepo{q: q}
}

// Create persiste un artículo del catálogo. El nombre es único.
func (r *TintoreriaRepo) Create(item *entity.TintoreriaItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	query := `
		INSERT INTO tintoreria_items (id, nombre, precio, activo, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.Nombre, item.Precio, item.Activo, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert tintoreria item: %w", err)
	}
	return nil
}

// GetByID obtiene un artículo por ID.
func (r *TintoreriaRepo) GetByID(id string) (*entity.TintoreriaItem, error) {
	query := `
		SELECT id, nombre, precio, activo, created_at, updated_at
		FROM tintoreria_items WHERE id = $1`
	var it entity.TintoreriaItem
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&it.ID, &it.Nombre, &it.Precio, &it.Activo, &it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get tintoreria item: %w", err)
	}
	return &it, nil
}

// ListActivos lista los artículos activos del catálogo ordenados por nombre.
func (r *TintoreriaRepo) ListActivos() ([]*entity.TintoreriaItem, error) {
	query := `
		SELECT id, nombre, precio, activo, created_at, updated_at
		FROM tintoreria_items WHERE activo ORDER BY nombre`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list tintoreria: %w", err)
	}
	defer rows.Close()
	var list []*entity.TintoreriaItem
	for rows.Next() {
		var it entity.TintoreriaItem
		if err := rows.Scan(&it.ID, &it.Nombre, &it.Precio, &it.Activo, &it.CreatedAt, &it.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan tintoreria item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

// Update actualiza nombre, precio y estado del artículo.
func (r *TintoreriaRepo) Update(item *entity.TintoreriaItem) error {
	query := `
		UPDATE tintoreria_items SET nombre = $2, precio = $3, activo = $4, updated_at = $5
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.Nombre, item.Precio, item.Activo, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update tintoreria item: %w", err)
	}
	return nil
}
