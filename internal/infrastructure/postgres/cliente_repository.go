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
	"github.com/puntolimpio/lavanderia-api/pkg/normalize"
)

var _ repository.ClienteRepository = (*ClienteRepo)(nil)

// ClienteRepo implementación de ClienteRepository (usable con pool o tx).
type ClienteRepo struct {
	q Querier
}

// NewClienteRepository construye el adaptador. Pasar pool o tx (Querier).
func NewClienteRepository(q Querier) *ClienteRepo {
	return &ClienteRepo{q: q}
}

const clienteColumns = `id, nombre, telefono, valets_count, loyalty_points, free_valets,
		valets_redeemed, last_visit, notas, created_at, updated_at`

// Create persiste un nuevo cliente. El teléfono es único.
func (r *ClienteRepo) Create(c *entity.Cliente) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	query := `
		INSERT INTO clientes (` + clienteColumns + `, nombre_normalizado)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		c.ID, c.Nombre, c.Telefono, c.ValetsCount, c.LoyaltyPoints, c.FreeValets,
		c.ValetsRedeemed, c.LastVisit, c.Notas, c.CreatedAt, c.UpdatedAt,
		normalize.Search(c.Nombre),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert cliente: %w", err)
	}
	return nil
}

// GetByID obtiene un cliente por ID.
func (r *ClienteRepo) GetByID(id string) (*entity.Cliente, error) {
	query := `SELECT ` + clienteColumns + ` FROM clientes WHERE id = $1`
	return r.getOne(query, id)
}

// GetByTelefono obtiene un cliente por teléfono normalizado (clave de búsqueda).
func (r *ClienteRepo) GetByTelefono(telefono string) (*entity.Cliente, error) {
	query := `SELECT ` + clienteColumns + ` FROM clientes WHERE telefono = $1`
	return r.getOne(query, normalize.Phone(telefono))
}

func (r *ClienteRepo) getOne(query string, arg any) (*entity.Cliente, error) {
	var c entity.Cliente
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&c.ID, &c.Nombre, &c.Telefono, &c.ValetsCount, &c.LoyaltyPoints, &c.FreeValets,
		&c.ValetsRedeemed, &c.LastVisit, &c.Notas, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cliente: %w", err)
	}
	return &c, nil
}

// Search busca por prefijo de teléfono o por nombre normalizado (sin tildes).
func (r *ClienteRepo) Search(q string, limit, offset int) ([]*entity.Cliente, error) {
	query := `
		SELECT ` + clienteColumns + `
		FROM clientes
		WHERE telefono LIKE $1 || '%' OR nombre_normalizado LIKE '%' || $2 || '%'
		ORDER BY nombre LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(context.Background(), query,
		normalize.Phone(q), normalize.Search(q), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("search clientes: %w", err)
	}
	return r.scanList(rows)
}

// List lista clientes ordenados por nombre con paginación.
func (r *ClienteRepo) List(limit, offset int) ([]*entity.Cliente, error) {
	query := `SELECT ` + clienteColumns + ` FROM clientes ORDER BY nombre LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list clientes: %w", err)
	}
	return r.scanList(rows)
}

func (r *ClienteRepo) scanList(rows pgx.Rows) ([]*entity.Cliente, error) {
	defer rows.Close()
	var list []*entity.Cliente
	for rows.Next() {
		var c entity.Cliente
		if err := rows.Scan(
			&c.ID, &c.Nombre, &c.Telefono, &c.ValetsCount, &c.LoyaltyPoints, &c.FreeValets,
			&c.ValetsRedeemed, &c.LastVisit, &c.Notas, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan cliente: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// Update actualiza datos y contadores de fidelidad del cliente.
func (r *ClienteRepo) Update(c *entity.Cliente) error {
	query := `
		UPDATE clientes SET nombre = $2, nombre_normalizado = $3, valets_count = $4,
			loyalty_points = $5, free_valets = $6, valets_redeemed = $7,
			last_visit = $8, notas = $9, updated_at = $10
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		c.ID, c.Nombre, normalize.Search(c.Nombre), c.ValetsCount,
		c.LoyaltyPoints, c.FreeValets, c.ValetsRedeemed,
		c.LastVisit, c.Notas, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update cliente: %w", err)
	}
	return nil
}
