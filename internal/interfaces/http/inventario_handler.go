package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/puntolimpio/lavanderia-api/internal/application/dto"
	"github.com/puntolimpio/lavanderia-api/internal/application/usecase"
	"github.com/puntolimpio/lavanderia-api/internal/domain"
)

// InventarioHandler maneja las peticiones HTTP de insumos (protegido).
type InventarioHandler struct {
	uc *usecase.InventarioUseCase
}

// NewInventarioHandler construye el handler.
func NewInventarioHandler(uc *usecase.InventarioUseCase) *InventarioHandler {
	return &InventarioHandler{uc: uc}
}

// Create da de alta un insumo.
// POST /api/inventario
func (h *InventarioHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateInventarioRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	item, err := h.uc.Create(c.Context(), in)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
		}
		if err == domain.ErrDuplicate {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "ya existe un insumo con ese nombre"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

// List lista insumos paginados.
// GET /api/inventario?limit=&offset=
func (h *InventarioHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()

	list, err := h.uc.List(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(list)
}

// ListBajoStock lista los insumos que necesitan reposición.
// GET /api/inventario/bajo-stock
func (h *InventarioHandler) ListBajoStock(c *fiber.Ctx) error {
	list, err := h.uc.ListBajoStock(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(list)
}

// Update edita nombre y/o umbral de reposición.
// PUT /api/inventario/:id
func (h *InventarioHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateInventarioRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	item, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return inventarioError(c, err)
	}
	return c.JSON(item)
}

// AjusteStock aplica una entrada o consumo de stock.
// POST /api/inventario/:id/ajuste
func (h *InventarioHandler) AjusteStock(c *fiber.Ctx) error {
	var in dto.AjusteStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	item, err := h.uc.AjusteStock(c.Context(), c.Params("id"), in)
	if err != nil {
		return inventarioError(c, err)
	}
	return c.JSON(item)
}

// inventarioError mapea errores de dominio de inventario a HTTP.
func inventarioError(c *fiber.Ctx, err error) error {
	switch err {
	case domain.ErrNotFound:
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "insumo no encontrado"})
	case domain.ErrInvalidInput:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	case domain.ErrInsufficientBalance:
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "stock insuficiente para el consumo"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
