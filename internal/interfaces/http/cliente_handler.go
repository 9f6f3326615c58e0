package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/puntolimpio/lavanderia-api/internal/application/dto"
	"github.com/puntolimpio/lavanderia-api/internal/application/usecase"
	"github.com/puntolimpio/lavanderia-api/internal/domain"
)

// ClienteHandler maneja las peticiones HTTP de clientes y fidelidad (protegido).
type ClienteHandler struct {
	uc *usecase.ClienteUseCase
}

// NewClienteHandler construye el handler.
func NewClienteHandler(uc *usecase.ClienteUseCase) *ClienteHandler {
	return &ClienteHandler{uc: uc}
}

// List lista o busca clientes. Con ?q= busca por teléfono o nombre
// (insensible a tildes y mayúsculas).
// GET /api/clients?q=&limit=&offset=
func (h *ClienteHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()

	list, err := h.uc.Search(c.Context(), c.Query("q"), page.Limit, page.Offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(list)
}

// GetByTelefono obtiene un cliente por teléfono.
// GET /api/clients/:telefono
func (h *ClienteHandler) GetByTelefono(c *fiber.Ctx) error {
	cliente, err := h.uc.GetByTelefono(c.Context(), c.Params("telefono"))
	if err != nil {
		return clienteError(c, err)
	}
	return c.JSON(cliente)
}

// Update edita nombre y notas del cliente.
// PUT /api/clients/:telefono
func (h *ClienteHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateClienteRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	cliente, err := h.uc.Update(c.Context(), c.Params("telefono"), in)
	if err != nil {
		return clienteError(c, err)
	}
	return c.JSON(cliente)
}

// Loyalty devuelve el resumen de la cuenta de fidelidad.
// GET /api/clients/:telefono/loyalty
func (h *ClienteHandler) Loyalty(c *fiber.Ctx) error {
	resumen, err := h.uc.Loyalty(c.Context(), c.Params("telefono"))
	if err != nil {
		return clienteError(c, err)
	}
	return c.JSON(resumen)
}

// RedeemFreeValet consume un valet gratis del saldo.
// POST /api/clients/:telefono/loyalty/redeem
func (h *ClienteHandler) RedeemFreeValet(c *fiber.Ctx) error {
	resumen, err := h.uc.RedeemFreeValet(c.Context(), c.Params("telefono"))
	if err != nil {
		return clienteError(c, err)
	}
	return c.JSON(resumen)
}

// RedeemPoints canjea 100 puntos por un valet gratis.
// POST /api/clients/:telefono/loyalty/redeem-points
func (h *ClienteHandler) RedeemPoints(c *fiber.Ctx) error {
	resumen, err := h.uc.RedeemPoints(c.Context(), c.Params("telefono"))
	if err != nil {
		return clienteError(c, err)
	}
	return c.JSON(resumen)
}

// clienteError mapea errores de dominio de clientes/fidelidad a HTTP.
func clienteError(c *fiber.Ctx, err error) error {
	switch err {
	case domain.ErrInvalidInput:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "teléfono inválido"})
	case domain.ErrNotFound:
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "cliente no encontrado"})
	case domain.ErrInsufficientBalance:
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "NO_FREE_VALETS", Message: "sin valets gratis disponibles"})
	case domain.ErrInsufficientPoints:
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_POINTS", Message: "puntos insuficientes para el canje"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
