package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/puntolimpio/lavanderia-api/internal/application/dto"
	"github.com/puntolimpio/lavanderia-api/internal/domain"
	"github.com/puntolimpio/lavanderia-api/internal/domain/entity"
	"github.com/puntolimpio/lavanderia-api/internal/domain/loyalty"
	"github.com/puntolimpio/lavanderia-api/internal/domain/pricing"
	"github.com/puntolimpio/lavanderia-api/internal/domain/repository"
	"github.com/puntolimpio/lavanderia-api/internal/infrastructure/cache"
	"github.com/puntolimpio/lavanderia-api/pkg/normalize"
	"github.com/shopspring/decimal"
)

// TicketPDFGenerator genera el comprobante imprimible de un ticket.
type TicketPDFGenerator interface {
	GenerateTicketPDF(ctx context.Context, ticket *entity.Ticket) ([]byte, error)
}

// TicketUseCase casos de uso del ciclo de vida del ticket: alta en mostrador,
// transiciones de estado, cobro y comprobante.
//
// El alta corre en una transacción: ticket + alta/actualización del cliente +
// acumulación de fidelidad deben quedar consistentes (un fallo parcial no puede
// dejar puntos sin ticket ni ticket sin cliente).
type TicketUseCase struct {
	txRunner       TxRunner
	ticketRepo     repository.TicketRepository
	clienteRepo    repository.ClienteRepository
	tintoreriaRepo repository.TintoreriaRepository
	pdfGen         TicketPDFGenerator

	// catalogCache evita releer el catálogo de tintorería en cada alta.
	catalogCache *cache.Cache[catalogo]
	// listCache evita relistar tickets en ventanas cortas; se invalida por
	// namespace "tickets-" en cada mutación.
	listCache *cache.Cache[[]*entity.Ticket]

	precioValet decimal.Decimal
	cacheTTL    time.Duration
}

// NewTicketUseCase construye el caso de uso.
func NewTicketUseCase(
	txRunner TxRunner,
	ticketRepo repository.TicketRepository,
	clienteRepo repository.ClienteRepository,
	tintoreriaRepo repository.TintoreriaRepository,
	pdfGen TicketPDFGenerator,
	precioValet decimal.Decimal,
	cacheTTL time.Duration,
) *TicketUseCase {
	return &TicketUseCase{
		txRunner:       txRunner,
		ticketRepo:     ticketRepo,
		clienteRepo:    clienteRepo,
		tintoreriaRepo: tintoreriaRepo,
		pdfGen:         pdfGen,
		catalogCache:   cache.New[catalogo](),
		listCache:      cache.New[[]*entity.Ticket](),
		precioValet:    precioValet,
		cacheTTL:       cacheTTL,
	}
}

// Create registra un ticket nuevo. El total se calcula en el servidor con el
// catálogo autoritativo; la acumulación de fidelidad ocurre acá (al confirmar
// el servicio), no en la entrega.
func (uc *TicketUseCase) Create(ctx context.Context, in dto.CreateTicketRequest) (*dto.TicketResponse, error) {
	if in.ClienteNombre == "" || normalize.Phone(in.ClienteTelefono) == "" {
		return nil, domain.ErrInvalidInput
	}
	switch in.Servicio {
	case entity.ServicioValet:
		if !in.UseFreeValet && in.ValetQuantity < 1 {
			return nil, domain.ErrInvalidInput
		}
		if in.UseFreeValet && in.ValetQuantity < 1 {
			in.ValetQuantity = 1
		}
	case entity.ServicioTintoreria:
		if len(in.Items) == 0 {
			return nil, domain.ErrInvalidInput
		}
		for _, it := range in.Items {
			if it.ItemID == "" || it.Quantity < 1 {
				return nil, domain.ErrInvalidInput
			}
		}
	default:
		return nil, domain.ErrInvalidInput
	}
	if in.PaymentMethod != "" && !entity.ValidPaymentMethod(in.PaymentMethod) {
		return nil, domain.ErrInvalidInput
	}

	cat, err := uc.catalog(ctx)
	if err != nil {
		return nil, err
	}

	selecciones := make([]pricing.Seleccion, 0, len(in.Items))
	for _, it := range in.Items {
		selecciones = append(selecciones, pricing.Seleccion{ItemID: it.ItemID, Quantity: it.Quantity})
	}
	total := pricing.CalculateTotal(in.Servicio, in.ValetQuantity, in.UseFreeValet, selecciones, cat.precios)

	now := time.Now()
	telefono := normalize.Phone(in.ClienteTelefono)
	var ticket *entity.Ticket

	err = uc.txRunner.Run(ctx, func(
		ticketRepo repository.TicketRepository,
		clienteRepo repository.ClienteRepository,
	) error {
		// 1) Cliente: buscar por teléfono, crear si es la primera visita.
		cliente, err := clienteRepo.GetByTelefono(telefono)
		if err != nil {
			return err
		}
		created := false
		if cliente == nil {
			cliente = &entity.Cliente{
				ID:        uuid.New().String(),
				Nombre:    in.ClienteNombre,
				Telefono:  telefono,
				LastVisit: now,
				CreatedAt: now,
				UpdatedAt: now,
			}
			created = true
		}

		// 2) Fidelidad: el valet gratis consume saldo; el valet pagado acumula
		// (un valet por unidad). La tintorería no acumula.
		if in.Servicio == entity.ServicioValet {
			if in.UseFreeValet {
				if err := loyalty.RedeemFreeValet(cliente, now); err != nil {
					return err
				}
			} else {
				for i := 0; i < in.ValetQuantity; i++ {
					loyalty.RecordCompletedValet(cliente, in.IsPaid, now)
				}
			}
		}
		cliente.LastVisit = now
		cliente.UpdatedAt = now

		if created {
			if err := clienteRepo.Create(cliente); err != nil {
				return err
			}
		} else if err := clienteRepo.Update(cliente); err != nil {
			return err
		}

		// 3) Número consecutivo del talonario y cabecera.
		numero, err := ticketRepo.NextNumero()
		if err != nil {
			return err
		}
		ticket = &entity.Ticket{
			ID:              uuid.New().String(),
			Numero:          numero,
			ClienteID:       cliente.ID,
			ClienteNombre:   cliente.Nombre,
			ClienteTelefono: telefono,
			Servicio:        in.Servicio,
			ValetQuantity:   in.ValetQuantity,
			EsValetGratis:   in.UseFreeValet,
			Opciones:        in.Opciones,
			Total:           total,
			PaymentMethod:   in.PaymentMethod,
			IsPaid:          in.IsPaid,
			Status:          entity.StatusPending,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		if err := ticketRepo.Create(ticket); err != nil {
			return err
		}

		// 4) Líneas de tintorería con precio congelado al momento del alta.
		for _, it := range in.Items {
			nombre := it.ItemID
			if n, ok := cat.nombres[it.ItemID]; ok {
				nombre = n
			}
			line := entity.TicketItem{
				ID:        uuid.New().String(),
				TicketID:  ticket.ID,
				ItemID:    it.ItemID,
				Nombre:    nombre,
				UnitPrice: cat.precios.PrecioItem(it.ItemID),
				Quantity:  it.Quantity,
			}
			if err := ticketRepo.CreateItem(&line); err != nil {
				return err
			}
			ticket.Items = append(ticket.Items, line)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.listCache.InvalidateNamespace("tickets-")
	return toTicketResponse(ticket), nil
}

// GetByID obtiene un ticket con sus líneas.
func (uc *TicketUseCase) GetByID(ctx context.Context, id string) (*dto.TicketResponse, error) {
	ticket, err := uc.loadTicket(id)
	if err != nil {
		return nil, err
	}
	return toTicketResponse(ticket), nil
}

// List lista tickets con filtros. El resultado se cachea por unos segundos:
// el mostrador refresca el listado constantemente.
func (uc *TicketUseCase) List(ctx context.Context, status string, from, to *time.Time, limit, offset int) ([]*dto.TicketResponse, error) {
	if status != "" && !entity.ValidStatus(status) {
		return nil, domain.ErrInvalidInput
	}
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	key := fmt.Sprintf("tickets-%s-%d-%d-%s-%s", status, limit, offset, timeKey(from), timeKey(to))
	list, err := uc.listCache.GetOrFetch(ctx, key, uc.cacheTTL, func(ctx context.Context) ([]*entity.Ticket, error) {
		return uc.ticketRepo.List(repository.TicketFilter{
			Status: status, From: from, To: to, Limit: limit, Offset: offset,
		})
	})
	if err != nil {
		return nil, err
	}
	out := make([]*dto.TicketResponse, 0, len(list))
	for _, t := range list {
		out = append(out, toTicketResponse(t))
	}
	return out, nil
}

// Transition aplica un cambio de estado. La entrega NO vuelve a acumular
// fidelidad: eso ya ocurrió en el alta.
func (uc *TicketUseCase) Transition(ctx context.Context, id string, in dto.TransitionRequest) (*dto.TicketResponse, error) {
	ticket, err := uc.loadTicket(id)
	if err != nil {
		return nil, err
	}
	if err := ticket.Transition(entity.TicketStatus(in.Status), in.Motivo, time.Now()); err != nil {
		return nil, err
	}
	if err := uc.ticketRepo.Update(ticket); err != nil {
		return nil, err
	}
	uc.listCache.InvalidateNamespace("tickets-")
	return toTicketResponse(ticket), nil
}

// Pago muta método de pago y/o flag de cobro, independiente del estado
// (mientras el ticket no sea terminal).
func (uc *TicketUseCase) Pago(ctx context.Context, id string, in dto.PagoRequest) (*dto.TicketResponse, error) {
	if in.PaymentMethod == nil && in.IsPaid == nil {
		return nil, domain.ErrInvalidInput
	}
	ticket, err := uc.loadTicket(id)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	if in.PaymentMethod != nil {
		if err := ticket.SetPaymentMethod(*in.PaymentMethod, now); err != nil {
			return nil, err
		}
	}
	if in.IsPaid != nil {
		if err := ticket.SetPaid(*in.IsPaid, now); err != nil {
			return nil, err
		}
	}
	if err := uc.ticketRepo.Update(ticket); err != nil {
		return nil, err
	}
	uc.listCache.InvalidateNamespace("tickets-")
	return toTicketResponse(ticket), nil
}

// Receipt genera el comprobante PDF del ticket.
func (uc *TicketUseCase) Receipt(ctx context.Context, id string) ([]byte, error) {
	ticket, err := uc.loadTicket(id)
	if err != nil {
		return nil, err
	}
	return uc.pdfGen.GenerateTicketPDF(ctx, ticket)
}

// loadTicket carga cabecera + líneas o ErrNotFound.
func (uc *TicketUseCase) loadTicket(id string) (*entity.Ticket, error) {
	ticket, err := uc.ticketRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if ticket == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.ticketRepo.ListItems(id)
	if err != nil {
		return nil, err
	}
	ticket.Items = items
	return ticket, nil
}

// catalogo es el catálogo autoritativo de precios y nombres, armado desde la DB.
type catalogo struct {
	precios pricing.Catalog
	nombres map[string]string
}

func (uc *TicketUseCase) catalog(ctx context.Context) (catalogo, error) {
	return uc.catalogCache.GetOrFetch(ctx, "catalogo-tintoreria", uc.cacheTTL, func(ctx context.Context) (catalogo, error) {
		items, err := uc.tintoreriaRepo.ListActivos()
		if err != nil {
			return catalogo{}, err
		}
		cat := catalogo{
			precios: pricing.Catalog{
				PrecioValet: uc.precioValet,
				Tintoreria:  make(map[string]decimal.Decimal, len(items)),
			},
			nombres: make(map[string]string, len(items)),
		}
		for _, it := range items {
			cat.precios.Tintoreria[it.ID] = it.Precio
			cat.nombres[it.ID] = it.Nombre
		}
		return cat, nil
	})
}

func timeKey(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format("20060102")
}

func toTicketResponse(t *entity.Ticket) *dto.TicketResponse {
	if t == nil {
		return nil
	}
	items := make([]dto.TicketItemResponse, 0, len(t.Items))
	for _, it := range t.Items {
		items = append(items, dto.TicketItemResponse{
			ItemID:    it.ItemID,
			Nombre:    it.Nombre,
			UnitPrice: it.UnitPrice,
			Quantity:  it.Quantity,
		})
	}
	return &dto.TicketResponse{
		ID:                t.ID,
		Numero:            t.Numero,
		ClienteID:         t.ClienteID,
		ClienteNombre:     t.ClienteNombre,
		ClienteTelefono:   t.ClienteTelefono,
		Servicio:          t.Servicio,
		ValetQuantity:     t.ValetQuantity,
		EsValetGratis:     t.EsValetGratis,
		Items:             items,
		Opciones:          t.Opciones,
		Total:             t.Total,
		PaymentMethod:     t.PaymentMethod,
		IsPaid:            t.IsPaid,
		Status:            string(t.Status),
		MotivoCancelacion: t.MotivoCancelacion,
		CreatedAt:         t.CreatedAt,
		DeliveredAt:       t.DeliveredAt,
	}
}
