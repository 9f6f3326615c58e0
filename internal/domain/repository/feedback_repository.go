package repository

import "github.com/puntolimpio/lavanderia-api/internal/domain/entity"

// FeedbackRepository define el puerto de persistencia para comentarios de clientes.
type FeedbackRepository interface {
	Create(fb *entity.Feedback) error
	List(limit, offset int) ([]*entity.Feedback, error)
}
