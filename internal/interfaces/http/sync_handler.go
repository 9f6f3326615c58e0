package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/puntolimpio/lavanderia-api/internal/application/dto"
	"github.com/puntolimpio/lavanderia-api/internal/application/usecase"
)

// SyncHandler dispara la subida de registros pendientes del almacén local.
type SyncHandler struct {
	uc *usecase.SyncUseCase
}

// NewSyncHandler construye el handler.
func NewSyncHandler(uc *usecase.SyncUseCase) *SyncHandler {
	return &SyncHandler{uc: uc}
}

// Sync procesa las colas de pendientes y devuelve los contadores por entidad.
// POST /api/sync
func (h *SyncHandler) Sync(c *fiber.Ctx) error {
	result, err := h.uc.SyncAll(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(result)
}
