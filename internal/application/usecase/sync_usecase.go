package usecase

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/puntolimpio/lavanderia-api/internal/application/dto"
	"github.com/puntolimpio/lavanderia-api/internal/domain"
	"github.com/puntolimpio/lavanderia-api/internal/domain/entity"
	"github.com/puntolimpio/lavanderia-api/internal/domain/repository"
	"github.com/puntolimpio/lavanderia-api/internal/infrastructure/localstore"
	"github.com/puntolimpio/lavanderia-api/pkg/logger"
)

// PendingStore cola local de registros capturados sin conexión.
type PendingStore interface {
	ListPending(entidad string) ([]localstore.Record, error)
	Remove(entidad, id string) error
}

// PendingWriter encola un registro cuando la DB no está disponible, para que
// SyncAll lo suba en el próximo intento. localstore.Store implementa ambos lados.
type PendingWriter interface {
	Append(entidad string, payload any) error
}

// SyncUseCase sube a la DB los registros pendientes del almacén local.
// Cada categoría se procesa aislada: un fallo en gastos no frena tickets.
// Dentro de una categoría, un registro que falla queda en la cola para el
// próximo intento; los corruptos se descartan con warning.
type SyncUseCase struct {
	store        PendingStore
	ticketRepo   repository.TicketRepository
	gastoRepo    repository.GastoRepository
	clienteRepo  repository.ClienteRepository
	feedbackRepo repository.FeedbackRepository
	log          *logger.Logger
}

// NewSyncUseCase construye el caso de uso.
func NewSyncUseCase(
	store PendingStore,
	ticketRepo repository.TicketRepository,
	gastoRepo repository.GastoRepository,
	clienteRepo repository.ClienteRepository,
	feedbackRepo repository.FeedbackRepository,
	log *logger.Logger,
) *SyncUseCase {
	return &SyncUseCase{
		store:        store,
		ticketRepo:   ticketRepo,
		gastoRepo:    gastoRepo,
		clienteRepo:  clienteRepo,
		feedbackRepo: feedbackRepo,
		log:          log,
	}
}

// SyncAll procesa las cuatro colas y devuelve cuántos registros subió cada una.
func (uc *SyncUseCase) SyncAll(ctx context.Context) (*dto.SyncResult, error) {
	result := &dto.SyncResult{}
	result.TicketsSync = uc.syncEntidad(localstore.EntidadTickets, uc.upsertTicket)
	result.GastosSync = uc.syncEntidad(localstore.EntidadGastos, uc.upsertGasto)
	result.ClientesSync = uc.syncEntidad(localstore.EntidadClientes, uc.upsertCliente)
	result.FeedbackSync = uc.syncEntidad(localstore.EntidadFeedback, uc.upsertFeedback)
	uc.log.Info().
		Int("tickets", result.TicketsSync).
		Int("gastos", result.GastosSync).
		Int("clientes", result.ClientesSync).
		Int("feedback", result.FeedbackSync).
		Msg("sincronización de pendientes completada")
	return result, nil
}

// syncEntidad procesa una cola. Devuelve cuántos registros subió.
func (uc *SyncUseCase) syncEntidad(entidad string, upsert func(payload json.RawMessage) error) int {
	records, err := uc.store.ListPending(entidad)
	if err != nil {
		uc.log.Error().Err(err).Str("entidad", entidad).Msg("no se pudo leer la cola de pendientes")
		return 0
	}
	synced := 0
	for _, rec := range records {
		if err := upsert(rec.Payload); err != nil {
			if isCorrupt(err) {
				uc.log.Warn().Err(err).Str("entidad", entidad).Str("record_id", rec.ID).
					Msg("registro pendiente inválido, se descarta")
				_ = uc.store.Remove(entidad, rec.ID)
				continue
			}
			uc.log.Error().Err(err).Str("entidad", entidad).Str("record_id", rec.ID).
				Msg("no se pudo subir el registro pendiente, queda en cola")
			continue
		}
		if err := uc.store.Remove(entidad, rec.ID); err != nil {
			uc.log.Error().Err(err).Str("entidad", entidad).Str("record_id", rec.ID).
				Msg("registro subido pero no se pudo sacar de la cola")
		}
		synced++
	}
	return synced
}

func (uc *SyncUseCase) upsertTicket(payload json.RawMessage) error {
	var t entity.Ticket
	if err := json.Unmarshal(payload, &t); err != nil {
		return corrupt(err)
	}
	if err := uc.ticketRepo.Create(&t); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil // ya subido en un intento anterior
		}
		return err
	}
	for i := range t.Items {
		if err := uc.ticketRepo.CreateItem(&t.Items[i]); err != nil && !errors.Is(err, domain.ErrDuplicate) {
			return err
		}
	}
	return nil
}

func (uc *SyncUseCase) upsertGasto(payload json.RawMessage) error {
	var g entity.Gasto
	if err := json.Unmarshal(payload, &g); err != nil {
		return corrupt(err)
	}
	err := uc.gastoRepo.Create(&g)
	if errors.Is(err, domain.ErrDuplicate) {
		return nil
	}
	return err
}

func (uc *SyncUseCase) upsertCliente(payload json.RawMessage) error {
	var c entity.Cliente
	if err := json.Unmarshal(payload, &c); err != nil {
		return corrupt(err)
	}
	existing, err := uc.clienteRepo.GetByTelefono(c.Telefono)
	if err != nil {
		return err
	}
	if existing == nil {
		return uc.clienteRepo.Create(&c)
	}
	c.ID = existing.ID
	return uc.clienteRepo.Update(&c)
}

func (uc *SyncUseCase) upsertFeedback(payload json.RawMessage) error {
	var fb entity.Feedback
	if err := json.Unmarshal(payload, &fb); err != nil {
		return corrupt(err)
	}
	err := uc.feedbackRepo.Create(&fb)
	if errors.Is(err, domain.ErrDuplicate) {
		return nil
	}
	return err
}

// errCorrupt marca payloads que nunca van a poder subirse.
var errCorrupt = errors.New("payload pendiente corrupto")

func corrupt(err error) error {
	return errors.Join(errCorrupt, err)
}

func isCorrupt(err error) bool {
	return errors.Is(err, errCorrupt)
}
