package repository

import "github.com/puntolimpio/lavanderia-api/internal/domain/entity"

// TintoreriaRepository define el puerto de persistencia para el catálogo de tintorería.
type TintoreriaRepository interface {
	Create(item *entity.TintoreriaItem) error
	GetByID(id string) (*entity.TintoreriaItem, error)
	ListActivos() ([]*entity.TintoreriaItem, error)
	Update(item *entity.TintoreriaItem) error
}
