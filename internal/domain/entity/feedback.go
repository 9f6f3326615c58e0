package entity

import "time"

// Feedback comentario de un cliente sobre el servicio (1 a 5 estrellas).
type Feedback struct {
	ID        string
	ClienteNombre string
	Telefono  string
	Rating    int // 1..5
	Comentario string
	CreatedAt time.Time
}
