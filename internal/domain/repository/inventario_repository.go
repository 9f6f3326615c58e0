package repository

import "github.com/puntolimpio/lavanderia-api/internal/domain/entity"

// InventarioRepository define el puerto de persistencia para insumos del local.
type InventarioRepository interface {
	Create(item *entity.InventarioItem) error
	GetByID(id string) (*entity.InventarioItem, error)
	List(limit, offset int) ([]*entity.InventarioItem, error)
	ListBajoStock() ([]*entity.InventarioItem, error)
	Update(item *entity.InventarioItem) error
}
