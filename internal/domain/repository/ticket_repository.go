package repository

import (
	"time"

	"github.com/puntolimpio/lavanderia-api/internal/domain/entity"
)

// TicketFilter filtros para listados de tickets.
type TicketFilter struct {
	Status string // vacío = todos
	From   *time.Time
	To     *time.Time
	Limit  int
	Offset int
}

// TicketRepository define el puerto de persistencia para Ticket.
type TicketRepository interface {
	Create(ticket *entity.Ticket) error
	CreateItem(item *entity.TicketItem) error
	GetByID(id string) (*entity.Ticket, error)
	ListItems(ticketID string) ([]entity.TicketItem, error)
	List(filter TicketFilter) ([]*entity.Ticket, error)
	Update(ticket *entity.Ticket) error
	// NextNumero reserva el siguiente consecutivo del talonario (secuencia DB).
	NextNumero() (string, error)
}
