package usecase

import (
	"context"

	"github.com/puntolimpio/lavanderia-api/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción, con repos de tickets y
// clientes atados a la tx. Lo usan el alta de ticket (ticket + acumulación de
// fidelidad) y los canjes (decremento de puntos + incremento de valets gratis),
// que deben ser atómicos: un fallo parcial no puede dejar los contadores
// inconsistentes.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		ticketRepo repository.TicketRepository,
		clienteRepo repository.ClienteRepository,
	) error) error
}
