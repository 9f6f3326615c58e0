package repository

import "github.com/puntolimpio/lavanderia-api/internal/domain/entity"

// ClienteRepository define el puerto de persistencia para Cliente.
// El teléfono (normalizado a dígitos) es la clave de búsqueda.
type ClienteRepository interface {
	Create(cliente *entity.Cliente) error
	GetByID(id string) (*entity.Cliente, error)
	GetByTelefono(telefono string) (*entity.Cliente, error)
	// Search busca por nombre normalizado (sin tildes) o por teléfono.
	Search(q string, limit, offset int) ([]*entity.Cliente, error)
	List(limit, offset int) ([]*entity.Cliente, error)
	Update(cliente *entity.Cliente) error
}
