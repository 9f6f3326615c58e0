package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/puntolimpio/lavanderia-api/internal/application/dto"
	"github.com/puntolimpio/lavanderia-api/internal/domain"
	"github.com/puntolimpio/lavanderia-api/internal/domain/entity"
	"github.com/puntolimpio/lavanderia-api/internal/domain/inventario"
	"github.com/puntolimpio/lavanderia-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// InventarioUseCase casos de uso de insumos del local (jabón, perfume, bolsas).
type InventarioUseCase struct {
	inventarioRepo repository.InventarioRepository
}

// NewInventarioUseCase construye el caso de uso.
func NewInventarioUseCase(inventarioRepo repository.InventarioRepository) *InventarioUseCase {
	return &InventarioUseCase{inventarioRepo: inventarioRepo}
}

// Create da de alta un insumo.
func (uc *InventarioUseCase) Create(ctx context.Context, in dto.CreateInventarioRequest) (*dto.InventarioResponse, error) {
	if in.Nombre == "" || in.Stock < 0 || in.StockMinimo < 0 || in.UnitCost.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	item := &entity.InventarioItem{
		ID:          uuid.New().String(),
		Nombre:      in.Nombre,
		Stock:       in.Stock,
		StockMinimo: in.StockMinimo,
		UnitCost:    in.UnitCost,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.inventarioRepo.Create(item); err != nil {
		return nil, err
	}
	return toInventarioResponse(item), nil
}

// List lista insumos paginados.
func (uc *InventarioUseCase) List(ctx context.Context, limit, offset int) ([]*dto.InventarioResponse, error) {
	list, err := uc.inventarioRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	return toInventarioResponses(list), nil
}

// ListBajoStock lista los insumos en o bajo su umbral de reposición.
func (uc *InventarioUseCase) ListBajoStock(ctx context.Context) ([]*dto.InventarioResponse, error) {
	list, err := uc.inventarioRepo.ListBajoStock()
	if err != nil {
		return nil, err
	}
	return toInventarioResponses(list), nil
}

// Update edita nombre y/o umbral de reposición.
func (uc *InventarioUseCase) Update(ctx context.Context, id string, in dto.UpdateInventarioRequest) (*dto.InventarioResponse, error) {
	item, err := uc.load(id)
	if err != nil {
		return nil, err
	}
	if in.Nombre != "" {
		item.Nombre = in.Nombre
	}
	if in.StockMinimo != nil {
		if *in.StockMinimo < 0 {
			return nil, domain.ErrInvalidInput
		}
		item.StockMinimo = *in.StockMinimo
	}
	item.UpdatedAt = time.Now()
	if err := uc.inventarioRepo.Update(item); err != nil {
		return nil, err
	}
	return toInventarioResponse(item), nil
}

// AjusteStock aplica una entrada (cantidad positiva) o un consumo (negativa).
// En entradas con costo unitario, el costo del insumo se recalcula como
// promedio ponderado entre el stock existente y la mercadería que ingresa.
func (uc *InventarioUseCase) AjusteStock(ctx context.Context, id string, in dto.AjusteStockRequest) (*dto.InventarioResponse, error) {
	if in.Cantidad == 0 {
		return nil, domain.ErrInvalidInput
	}
	item, err := uc.load(id)
	if err != nil {
		return nil, err
	}
	nuevoStock := item.Stock + in.Cantidad
	if nuevoStock < 0 {
		return nil, domain.ErrInsufficientBalance
	}
	if in.Cantidad > 0 && in.UnitCost != nil {
		item.UnitCost = inventario.CostoPromedio(
			decimal.NewFromInt(int64(item.Stock)), item.UnitCost,
			decimal.NewFromInt(int64(in.Cantidad)), *in.UnitCost,
		)
	}
	item.Stock = nuevoStock
	item.UpdatedAt = time.Now()
	if err := uc.inventarioRepo.Update(item); err != nil {
		return nil, err
	}
	return toInventarioResponse(item), nil
}

func (uc *InventarioUseCase) load(id string) (*entity.InventarioItem, error) {
	item, err := uc.inventarioRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return item, nil
}

func toInventarioResponse(i *entity.InventarioItem) *dto.InventarioResponse {
	return &dto.InventarioResponse{
		ID:          i.ID,
		Nombre:      i.Nombre,
		Stock:       i.Stock,
		StockMinimo: i.StockMinimo,
		UnitCost:    i.UnitCost,
		BajoStock:   i.BajoStock(),
	}
}

func toInventarioResponses(list []*entity.InventarioItem) []*dto.InventarioResponse {
	out := make([]*dto.InventarioResponse, 0, len(list))
	for _, i := range list {
		out = append(out, toInventarioResponse(i))
	}
	return out
}
