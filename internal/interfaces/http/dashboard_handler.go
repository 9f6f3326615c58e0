package http

import (
	"github.com/gofiber/fiber/v2"
	appanalytics "github.com/puntolimpio/lavanderia-api/internal/application/analytics"
	"github.com/puntolimpio/lavanderia-api/internal/application/dto"
)

// DashboardHandler maneja los endpoints del panel del local.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetSummary devuelve el resumen financiero del día y del mes en curso.
// GET /api/dashboard/summary
//
// Respuesta: DashboardSummaryDTO (today_revenue, today_gastos, monthly_revenue,
// monthly_gastos, monthly_margin, tickets_by_status, payment_breakdown,
// top_tintoreria[5], date_label).
// No requiere parámetros; las fechas se calculan automáticamente en el servidor.
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.uc.GetSummary(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code: "INTERNAL", Message: err.Error(),
		})
	}
	return c.JSON(summary)
}
