package dto

import "time"

// CreateFeedbackRequest alta de un comentario de cliente.
type CreateFeedbackRequest struct {
	ClienteNombre string `json:"cliente_nombre" validate:"required,min=1,max=200"`
	Telefono      string `json:"telefono" validate:"omitempty,max=30"`
	Rating        int    `json:"rating" validate:"required,min=1,max=5"`
	Comentario    string `json:"comentario" validate:"omitempty,max=1000"`
}

// FeedbackResponse salida de un comentario.
type FeedbackResponse struct {
	ID            string    `json:"id"`
	ClienteNombre string    `json:"cliente_nombre"`
	Telefono      string    `json:"telefono,omitempty"`
	Rating        int       `json:"rating"`
	Comentario    string    `json:"comentario,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}
