package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/puntolimpio/lavanderia-api/internal/application/dto"
	"github.com/puntolimpio/lavanderia-api/internal/domain"
	"github.com/puntolimpio/lavanderia-api/internal/domain/entity"
	"github.com/puntolimpio/lavanderia-api/internal/domain/repository"
	"github.com/puntolimpio/lavanderia-api/internal/infrastructure/localstore"
	"github.com/puntolimpio/lavanderia-api/pkg/logger"
)

// GastoUseCase casos de uso de gastos operativos del local.
// El alta es tolerante a cortes: si la DB no responde, el gasto se encola en
// el almacén local y SyncAll lo sube después.
type GastoUseCase struct {
	gastoRepo repository.GastoRepository
	pending   PendingWriter
	log       *logger.Logger
}

// NewGastoUseCase construye el caso de uso. pending puede ser nil: en ese caso
// un fallo de DB se devuelve al caller sin captura local.
func NewGastoUseCase(gastoRepo repository.GastoRepository, pending PendingWriter, log *logger.Logger) *GastoUseCase {
	return &GastoUseCase{gastoRepo: gastoRepo, pending: pending, log: log}
}

// Create registra un gasto. Sin fecha explícita se asume hoy.
func (uc *GastoUseCase) Create(ctx context.Context, in dto.CreateGastoRequest) (*dto.GastoResponse, error) {
	if in.Concepto == "" || !validCategoria(in.Categoria) || in.Monto.IsNegative() || in.Monto.IsZero() {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	fecha := now
	if in.Fecha != nil {
		fecha = *in.Fecha
	}
	gasto := &entity.Gasto{
		ID:        uuid.New().String(),
		Concepto:  in.Concepto,
		Categoria: in.Categoria,
		Monto:     in.Monto,
		Fecha:     fecha,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.gastoRepo.Create(gasto); err != nil {
		if errors.Is(err, domain.ErrDuplicate) || uc.pending == nil {
			return nil, err
		}
		if qerr := uc.pending.Append(localstore.EntidadGastos, gasto); qerr != nil {
			return nil, err
		}
		uc.log.Warn().Err(err).Str("gasto_id", gasto.ID).
			Msg("DB no disponible, gasto encolado para sincronizar")
		return toGastoResponse(gasto), nil
	}
	return toGastoResponse(gasto), nil
}

// ListByRange lista gastos del rango de fechas, más nuevos primero.
func (uc *GastoUseCase) ListByRange(ctx context.Context, from, to time.Time, limit, offset int) ([]*dto.GastoResponse, error) {
	list, err := uc.gastoRepo.ListByRange(from, to, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.GastoResponse, 0, len(list))
	for _, g := range list {
		out = append(out, toGastoResponse(g))
	}
	return out, nil
}

// Update edita concepto, categoría y/o monto de un gasto.
func (uc *GastoUseCase) Update(ctx context.Context, id string, in dto.UpdateGastoRequest) (*dto.GastoResponse, error) {
	gasto, err := uc.gastoRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if gasto == nil {
		return nil, domain.ErrNotFound
	}
	if in.Concepto != "" {
		gasto.Concepto = in.Concepto
	}
	if in.Categoria != "" {
		if !validCategoria(in.Categoria) {
			return nil, domain.ErrInvalidInput
		}
		gasto.Categoria = in.Categoria
	}
	if in.Monto != nil {
		if in.Monto.IsNegative() || in.Monto.IsZero() {
			return nil, domain.ErrInvalidInput
		}
		gasto.Monto = *in.Monto
	}
	gasto.UpdatedAt = time.Now()
	if err := uc.gastoRepo.Update(gasto); err != nil {
		return nil, err
	}
	return toGastoResponse(gasto), nil
}

// Delete elimina un gasto.
func (uc *GastoUseCase) Delete(ctx context.Context, id string) error {
	gasto, err := uc.gastoRepo.GetByID(id)
	if err != nil {
		return err
	}
	if gasto == nil {
		return domain.ErrNotFound
	}
	return uc.gastoRepo.Delete(id)
}

func validCategoria(c string) bool {
	switch c {
	case entity.GastoInsumos, entity.GastoServicios, entity.GastoSueldos,
		entity.GastoMantenimiento, entity.GastoOtros:
		return true
	}
	return false
}

func toGastoResponse(g *entity.Gasto) *dto.GastoResponse {
	return &dto.GastoResponse{
		ID:        g.ID,
		Concepto:  g.Concepto,
		Categoria: g.Categoria,
		Monto:     g.Monto,
		Fecha:     g.Fecha,
	}
}
