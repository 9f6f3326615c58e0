package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/puntolimpio/lavanderia-api/internal/domain"
)

// Tipos de servicio de un ticket.
const (
	ServicioValet      = "valet"
	ServicioTintoreria = "tintoreria"
)

// Métodos de pago aceptados en el local.
const (
	PagoEfectivo    = "efectivo"
	PagoDebito      = "debito"
	PagoMercadoPago = "mercadopago"
	PagoCuentaDNI   = "cuenta_dni"
)

// Estados del ticket. pending -> processing -> ready -> delivered es el camino
// feliz; canceled puede alcanzarse desde cualquier estado no terminal.
type TicketStatus string

const (
	StatusPending    TicketStatus = "pending"
	StatusProcessing TicketStatus = "processing"
	StatusReady      TicketStatus = "ready"
	StatusDelivered  TicketStatus = "delivered"
	StatusCanceled   TicketStatus = "canceled"
)

// transitions lista, por estado destino, desde qué estados se puede llegar.
var transitions = map[TicketStatus][]TicketStatus{
	StatusProcessing: {StatusPending},
	StatusReady:      {StatusProcessing},
	StatusDelivered:  {StatusReady},
	StatusCanceled:   {StatusPending, StatusProcessing, StatusReady},
}

// ValidStatus indica si el string corresponde a un estado conocido.
func ValidStatus(s string) bool {
	switch TicketStatus(s) {
	case StatusPending, StatusProcessing, StatusReady, StatusDelivered, StatusCanceled:
		return true
	}
	return false
}

// ValidPaymentMethod indica si el método de pago es uno de los aceptados.
func ValidPaymentMethod(m string) bool {
	switch m {
	case PagoEfectivo, PagoDebito, PagoMercadoPago, PagoCuentaDNI:
		return true
	}
	return false
}

// IsTerminal indica si el estado no admite más transiciones.
func (s TicketStatus) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCanceled
}

// CanTransitionTo verifica si la transición s -> to está permitida.
func (s TicketStatus) CanTransitionTo(to TicketStatus) bool {
	for _, from := range transitions[to] {
		if from == s {
			return true
		}
	}
	return false
}

// TicketItem es una línea de tintorería del ticket (prenda + cantidad).
type TicketItem struct {
	ID        string
	TicketID  string
	ItemID    string // id del artículo de tintorería en el catálogo
	Nombre    string
	UnitPrice decimal.Decimal
	Quantity  int
}

// Ticket representa una orden de trabajo de la lavandería.
type Ticket struct {
	ID                string
	Numero            string // consecutivo legible, ej: "00000042"
	ClienteID         string
	ClienteNombre     string
	ClienteTelefono   string
	Servicio          string // valet | tintoreria
	ValetQuantity     int
	EsValetGratis     bool // valet pagado con saldo de fidelidad (total = 0)
	Items             []TicketItem
	Opciones          []string // preferencias de lavado, ej: "separar_por_color"
	Total             decimal.Decimal
	PaymentMethod     string
	IsPaid            bool
	Status            TicketStatus
	MotivoCancelacion string
	CreatedAt         time.Time
	DeliveredAt       *time.Time
	UpdatedAt         time.Time
}

// Transition aplica el cambio de estado si la transición es legal. Es una
// transformación pura: no persiste ni dispara efectos; el caller guarda el
// ticket resultante.
//
// Reglas:
//   - transición ilegal -> ErrInvalidTransition (el ticket no se modifica);
//     los estados terminales no figuran como origen en la tabla, así que
//     cualquier intento desde delivered/canceled cae acá
//   - cancelar requiere motivo no vacío -> ErrMotivoRequerido
//   - ready -> delivered fuerza IsPaid=true y sella DeliveredAt
func (t *Ticket) Transition(to TicketStatus, motivo string, now time.Time) error {
	if !t.Status.CanTransitionTo(to) {
		return domain.ErrInvalidTransition
	}
	if to == StatusCanceled && motivo == "" {
		return domain.ErrMotivoRequerido
	}

	t.Status = to
	t.UpdatedAt = now
	switch to {
	case StatusDelivered:
		// La entrega confirma el cobro, haya quedado registrado antes o no.
		t.IsPaid = true
		delivered := now
		t.DeliveredAt = &delivered
	case StatusCanceled:
		t.MotivoCancelacion = motivo
	}
	return nil
}

// SetPaid marca o desmarca el cobro. Sólo válido en estados no terminales.
func (t *Ticket) SetPaid(paid bool, now time.Time) error {
	if t.Status.IsTerminal() {
		return domain.ErrTicketTerminal
	}
	t.IsPaid = paid
	t.UpdatedAt = now
	return nil
}

// SetPaymentMethod cambia el método de pago. Sólo válido en estados no terminales.
func (t *Ticket) SetPaymentMethod(method string, now time.Time) error {
	if t.Status.IsTerminal() {
		return domain.ErrTicketTerminal
	}
	if !ValidPaymentMethod(method) {
		return domain.ErrInvalidInput
	}
	t.PaymentMethod = method
	t.UpdatedAt = now
	return nil
}
