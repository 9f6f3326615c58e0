package usecase

import (
	"context"
	"time"

	"github.com/puntolimpio/lavanderia-api/internal/application/dto"
	"github.com/puntolimpio/lavanderia-api/internal/domain"
	"github.com/puntolimpio/lavanderia-api/internal/domain/entity"
	"github.com/puntolimpio/lavanderia-api/internal/domain/loyalty"
	"github.com/puntolimpio/lavanderia-api/internal/domain/repository"
	"github.com/puntolimpio/lavanderia-api/internal/infrastructure/localstore"
	"github.com/puntolimpio/lavanderia-api/pkg/logger"
	"github.com/puntolimpio/lavanderia-api/pkg/normalize"
)

// ClienteUseCase casos de uso de clientes y su cuenta de fidelidad.
// Los canjes corren en transacción: las tres columnas de la cuenta
// (free_valets, valets_redeemed, loyalty_points) mutan juntas o no mutan.
// La edición de ficha es tolerante a cortes: sin DB el cliente editado se
// encola y SyncAll lo sube después (último escritor gana, por teléfono).
type ClienteUseCase struct {
	clienteRepo repository.ClienteRepository
	txRunner    TxRunner
	pending     PendingWriter
	log         *logger.Logger
}

// NewClienteUseCase construye el caso de uso. pending puede ser nil.
func NewClienteUseCase(clienteRepo repository.ClienteRepository, txRunner TxRunner, pending PendingWriter, log *logger.Logger) *ClienteUseCase {
	return &ClienteUseCase{clienteRepo: clienteRepo, txRunner: txRunner, pending: pending, log: log}
}

// List lista clientes paginados.
func (uc *ClienteUseCase) List(ctx context.Context, limit, offset int) ([]*dto.ClienteResponse, error) {
	list, err := uc.clienteRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	return toClienteResponses(list), nil
}

// Search busca por teléfono o nombre (insensible a tildes y mayúsculas).
func (uc *ClienteUseCase) Search(ctx context.Context, q string, limit, offset int) ([]*dto.ClienteResponse, error) {
	if q == "" {
		return uc.List(ctx, limit, offset)
	}
	list, err := uc.clienteRepo.Search(q, limit, offset)
	if err != nil {
		return nil, err
	}
	return toClienteResponses(list), nil
}

// GetByTelefono obtiene un cliente por teléfono.
func (uc *ClienteUseCase) GetByTelefono(ctx context.Context, telefono string) (*dto.ClienteResponse, error) {
	cliente, err := uc.lookup(telefono)
	if err != nil {
		return nil, err
	}
	return toClienteResponse(cliente), nil
}

// Update edita nombre y notas del cliente.
func (uc *ClienteUseCase) Update(ctx context.Context, telefono string, in dto.UpdateClienteRequest) (*dto.ClienteResponse, error) {
	cliente, err := uc.lookup(telefono)
	if err != nil {
		return nil, err
	}
	if in.Nombre != "" {
		cliente.Nombre = in.Nombre
	}
	if in.Notas != "" {
		cliente.Notas = in.Notas
	}
	cliente.UpdatedAt = time.Now()
	if err := uc.clienteRepo.Update(cliente); err != nil {
		if uc.pending == nil {
			return nil, err
		}
		if qerr := uc.pending.Append(localstore.EntidadClientes, cliente); qerr != nil {
			return nil, err
		}
		uc.log.Warn().Err(err).Str("telefono", cliente.Telefono).
			Msg("DB no disponible, cliente encolado para sincronizar")
		return toClienteResponse(cliente), nil
	}
	return toClienteResponse(cliente), nil
}

// Loyalty devuelve el resumen de la cuenta de fidelidad.
func (uc *ClienteUseCase) Loyalty(ctx context.Context, telefono string) (*dto.LoyaltyResponse, error) {
	cliente, err := uc.lookup(telefono)
	if err != nil {
		return nil, err
	}
	return toLoyaltyResponse(cliente), nil
}

// RedeemFreeValet consume un valet gratis del saldo del cliente.
func (uc *ClienteUseCase) RedeemFreeValet(ctx context.Context, telefono string) (*dto.LoyaltyResponse, error) {
	return uc.redeem(ctx, telefono, loyalty.RedeemFreeValet)
}

// RedeemPoints canjea 100 puntos por un valet gratis.
func (uc *ClienteUseCase) RedeemPoints(ctx context.Context, telefono string) (*dto.LoyaltyResponse, error) {
	return uc.redeem(ctx, telefono, loyalty.RedeemPointsForValet)
}

// redeem corre un canje dentro de la transacción, releyendo el cliente para
// no pisar un canje concurrente con datos viejos.
func (uc *ClienteUseCase) redeem(
	ctx context.Context,
	telefono string,
	fn func(c *entity.Cliente, now time.Time) error,
) (*dto.LoyaltyResponse, error) {
	tel := normalize.Phone(telefono)
	if tel == "" {
		return nil, domain.ErrInvalidInput
	}
	var out *dto.LoyaltyResponse
	err := uc.txRunner.Run(ctx, func(
		_ repository.TicketRepository,
		clienteRepo repository.ClienteRepository,
	) error {
		cliente, err := clienteRepo.GetByTelefono(tel)
		if err != nil {
			return err
		}
		if cliente == nil {
			return domain.ErrNotFound
		}
		if err := fn(cliente, time.Now()); err != nil {
			return err
		}
		if err := clienteRepo.Update(cliente); err != nil {
			return err
		}
		out = toLoyaltyResponse(cliente)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (uc *ClienteUseCase) lookup(telefono string) (*entity.Cliente, error) {
	tel := normalize.Phone(telefono)
	if tel == "" {
		return nil, domain.ErrInvalidInput
	}
	cliente, err := uc.clienteRepo.GetByTelefono(tel)
	if err != nil {
		return nil, err
	}
	if cliente == nil {
		return nil, domain.ErrNotFound
	}
	return cliente, nil
}

func toClienteResponse(c *entity.Cliente) *dto.ClienteResponse {
	return &dto.ClienteResponse{
		ID:             c.ID,
		Nombre:         c.Nombre,
		Telefono:       c.Telefono,
		ValetsCount:    c.ValetsCount,
		LoyaltyPoints:  c.LoyaltyPoints,
		FreeValets:     c.FreeValets,
		ValetsRedeemed: c.ValetsRedeemed,
		LastVisit:      c.LastVisit,
		Notas:          c.Notas,
	}
}

func toClienteResponses(list []*entity.Cliente) []*dto.ClienteResponse {
	out := make([]*dto.ClienteResponse, 0, len(list))
	for _, c := range list {
		out = append(out, toClienteResponse(c))
	}
	return out
}

func toLoyaltyResponse(c *entity.Cliente) *dto.LoyaltyResponse {
	return &dto.LoyaltyResponse{
		Telefono:          c.Telefono,
		ValetsCount:       c.ValetsCount,
		LoyaltyPoints:     c.LoyaltyPoints,
		FreeValets:        c.FreeValets,
		ValetsRedeemed:    c.ValetsRedeemed,
		ParaProximoGratis: loyalty.ValetsForFree - c.ValetsCount%loyalty.ValetsForFree,
	}
}
