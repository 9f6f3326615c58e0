package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// TicketItemRequest línea de tintorería seleccionada en el alta.
type TicketItemRequest struct {
	ItemID   string `json:"item_id" validate:"required"`
	Quantity int    `json:"quantity" validate:"required,min=1"`
}

// CreateTicketRequest entrada del alta de ticket (mostrador).
// El total NO viene del cliente: se calcula en el servidor con el catálogo.
type CreateTicketRequest struct {
	ClienteNombre   string              `json:"cliente_nombre" validate:"required,min=1,max=200"`
	ClienteTelefono string              `json:"cliente_telefono" validate:"required,min=6,max=30"`
	Servicio        string              `json:"servicio" validate:"required,oneof=valet tintoreria"`
	ValetQuantity   int                 `json:"valet_quantity" validate:"omitempty,min=1"`
	UseFreeValet    bool                `json:"use_free_valet"`
	Items           []TicketItemRequest `json:"items" validate:"omitempty,dive"`
	Opciones        []string            `json:"opciones"` // ej: "separar_por_color"
	PaymentMethod   string              `json:"payment_method" validate:"omitempty,oneof=efectivo debito mercadopago cuenta_dni"`
	IsPaid          bool                `json:"is_paid"`
}

// TransitionRequest cambio de estado de un ticket.
type TransitionRequest struct {
	Status string `json:"status" validate:"required,oneof=processing ready delivered canceled"`
	Motivo string `json:"motivo" validate:"omitempty,max=500"` // obligatorio para canceled
}

// PagoRequest mutación de cobro independiente del estado.
type PagoRequest struct {
	PaymentMethod *string `json:"payment_method" validate:"omitempty,oneof=efectivo debito mercadopago cuenta_dni"`
	IsPaid        *bool   `json:"is_paid"`
}

// TicketItemResponse línea de tintorería en respuestas.
type TicketItemResponse struct {
	ItemID    string          `json:"item_id"`
	Nombre    string          `json:"nombre"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
}

// TicketResponse salida de un ticket.
type TicketResponse struct {
	ID                string               `json:"id"`
	Numero            string               `json:"numero"`
	ClienteID         string               `json:"cliente_id"`
	ClienteNombre     string               `json:"cliente_nombre"`
	ClienteTelefono   string               `json:"cliente_telefono"`
	Servicio          string               `json:"servicio"`
	ValetQuantity     int                  `json:"valet_quantity,omitempty"`
	EsValetGratis     bool                 `json:"es_valet_gratis"`
	Items             []TicketItemResponse `json:"items,omitempty"`
	Opciones          []string             `json:"opciones,omitempty"`
	Total             decimal.Decimal      `json:"total"`
	PaymentMethod     string               `json:"payment_method,omitempty"`
	IsPaid            bool                 `json:"is_paid"`
	Status            string               `json:"status"`
	MotivoCancelacion string               `json:"motivo_cancelacion,omitempty"`
	CreatedAt         time.Time            `json:"created_at"`
	DeliveredAt       *time.Time           `json:"delivered_at,omitempty"`
}
