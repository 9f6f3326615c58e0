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

var _ repository.TicketRepository = (*TicketRepo)(nil)

// TicketRepo implementación de TicketRepository (usable con pool o tx).
type TicketRepo struct {
	q Querier
}

// NewTicketRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTicketRepository(q Querier) *TicketRepo {
	return &TicketRepo{q: q}
}

const ticketColumns = `id, numero, cliente_id, cliente_nombre, cliente_telefono, servicio,
		valet_quantity, es_valet_gratis, opciones, total, payment_method, is_paid,
		status, motivo_cancelacion, created_at, delivered_at, updated_at`

// Create persiste la cabecera del ticket.
func (r *TicketRepo) Create(t *entity.Ticket) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	query := `
		INSERT INTO tickets (` + ticketColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	_, err := r.q.Exec(context.Background(), query,
		t.ID, t.Numero, t.ClienteID, t.ClienteNombre, t.ClienteTelefono, t.Servicio,
		t.ValetQuantity, t.EsValetGratis, t.Opciones, t.Total, nullIfEmpty(t.PaymentMethod), t.IsPaid,
		string(t.Status), nullIfEmpty(t.MotivoCancelacion), t.CreatedAt, t.DeliveredAt, t.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert ticket: %w", err)
	}
	return nil
}

// CreateItem persiste una línea de tintorería.
func (r *TicketRepo) CreateItem(item *entity.TicketItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	query := `
		INSERT INTO ticket_items (id, ticket_id, item_id, nombre, unit_price, quantity)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.TicketID, item.ItemID, item.Nombre, item.UnitPrice, item.Quantity,
	)
	if err != nil {
		return fmt.Errorf("insert ticket item: %w", err)
	}
	return nil
}

// GetByID obtiene un ticket por ID (sin líneas; usar ListItems).
func (r *TicketRepo) GetByID(id string) (*entity.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM tickets WHERE id = $1`
	t, err := scanTicket(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get ticket: %w", err)
	}
	return t, nil
}

// ListItems lista las líneas de tintorería de un ticket.
func (r *TicketRepo) ListItems(ticketID string) ([]entity.TicketItem, error) {
	query := `
		SELECT id, ticket_id, item_id, nombre, unit_price, quantity
		FROM ticket_items WHERE ticket_id = $1 ORDER BY nombre`
	rows, err := r.q.Query(context.Background(), query, ticketID)
	if err != nil {
		return nil, fmt.Errorf("list ticket items: %w", err)
	}
	defer rows.Close()
	var items []entity.TicketItem
	for rows.Next() {
		var it entity.TicketItem
		if err := rows.Scan(&it.ID, &it.TicketID, &it.ItemID, &it.Nombre, &it.UnitPrice, &it.Quantity); err != nil {
			return nil, fmt.Errorf("scan ticket item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// List lista tickets con filtros de estado y rango de fechas, más recientes primero.
func (r *TicketRepo) List(filter repository.TicketFilter) ([]*entity.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM tickets WHERE 1=1`
	args := []any{}
	n := 0
	if filter.Status != "" {
		n++
		query += fmt.Sprintf(" AND status = $%d", n)
		args = append(args, filter.Status)
	}
	if filter.From != nil {
		n++
		query += fmt.Sprintf(" AND created_at >= $%d", n)
		args = append(args, *filter.From)
	}
	if filter.To != nil {
		n++
		query += fmt.Sprintf(" AND created_at <= $%d", n)
		args = append(args, *filter.To)
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", n+1, n+2)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list tickets: %w", err)
	}
	defer rows.Close()
	var list []*entity.Ticket
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return nil, fmt.Errorf("scan ticket: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

// Update actualiza el estado, cobro y sellos de tiempo del ticket.
func (r *TicketRepo) Update(t *entity.Ticket) error {
	query := `
		UPDATE tickets SET payment_method = $2, is_paid = $3, status = $4,
			motivo_cancelacion = $5, delivered_at = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		t.ID, nullIfEmpty(t.PaymentMethod), t.IsPaid, string(t.Status),
		nullIfEmpty(t.MotivoCancelacion), t.DeliveredAt, t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update ticket: %w", err)
	}
	return nil
}

// NextNumero reserva el siguiente consecutivo del talonario (secuencia DB),
// con cero a la izquierda: "00000042".
func (r *TicketRepo) NextNumero() (string, error) {
	var n int64
	err := r.q.QueryRow(context.Background(), `SELECT nextval('tickets_numero_seq')`).Scan(&n)
	if err != nil {
		return "", fmt.Errorf("next numero: %w", err)
	}
	return fmt.Sprintf("%08d", n), nil
}

// scanTicket lee una fila de tickets; payment_method y motivo_cancelacion son NULLables.
func scanTicket(row pgx.Row) (*entity.Ticket, error) {
	var t entity.Ticket
	var paymentMethod, motivo *string
	var status string
	err := row.Scan(
		&t.ID, &t.Numero, &t.ClienteID, &t.ClienteNombre, &t.ClienteTelefono, &t.Servicio,
		&t.ValetQuantity, &t.EsValetGratis, &t.Opciones, &t.Total, &paymentMethod, &t.IsPaid,
		&status, &motivo, &t.CreatedAt, &t.DeliveredAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if paymentMethod != nil {
		t.PaymentMethod = *paymentMethod
	}
	if motivo != nil {
		t.MotivoCancelacion = *motivo
	}
	t.Status = entity.TicketStatus(status)
	return &t, nil
}
