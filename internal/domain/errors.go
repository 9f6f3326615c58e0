package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound             = errors.New("recurso no encontrado")
	ErrUserNotFound         = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists   = errors.New("el email ya está registrado")
	ErrInvalidInput         = errors.New("entrada inválida")
	ErrDuplicate            = errors.New("recurso duplicado")
	ErrUnauthorized         = errors.New("no autorizado")
	ErrForbidden            = errors.New("acceso denegado")
	ErrInsufficientBalance  = errors.New("el cliente no tiene valets gratis disponibles")
	ErrInsufficientPoints   = errors.New("puntos insuficientes para canjear")
	ErrInvalidTransition    = errors.New("transición de estado inválida")
	ErrTicketTerminal       = errors.New("el ticket está en un estado terminal")
	ErrMotivoRequerido      = errors.New("la cancelación requiere un motivo")
)
