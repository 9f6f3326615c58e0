package repository

import (
	"time"

	"github.com/puntolimpio/lavanderia-api/internal/domain/entity"
)

// GastoRepository define el puerto de persistencia para Gasto.
type GastoRepository interface {
	Create(gasto *entity.Gasto) error
	GetByID(id string) (*entity.Gasto, error)
	ListByRange(from, to time.Time, limit, offset int) ([]*entity.Gasto, error)
	Update(gasto *entity.Gasto) error
	Delete(id string) error
}
