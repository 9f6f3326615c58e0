package http

import (
	"github.com/gofiber/fiber/v2"
	appanalytics "github.com/puntolimpio/lavanderia-api/internal/application/analytics"
	"github.com/puntolimpio/lavanderia-api/internal/application/auth"
	"github.com/puntolimpio/lavanderia-api/internal/application/usecase"
	"github.com/puntolimpio/lavanderia-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	TicketUC     *usecase.TicketUseCase
	ClienteUC    *usecase.ClienteUseCase
	GastoUC      *usecase.GastoUseCase
	InventarioUC *usecase.InventarioUseCase
	FeedbackUC   *usecase.FeedbackUseCase
	SyncUC       *usecase.SyncUseCase
	DashboardUC  *appanalytics.DashboardUseCase
	AuthUC       *auth.AuthUseCase
	JWTSecret    string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Feedback: el alta es pública (el cliente opina desde su teléfono)
	feedbackHandler := NewFeedbackHandler(deps.FeedbackUC)
	api.Post("/feedback", feedbackHandler.Create)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Tickets (protegido)
	tickets := protected.Group("/tickets")
	ticketHandler := NewTicketHandler(deps.TicketUC)
	tickets.Post("/", ticketHandler.Create)
	tickets.Get("/", ticketHandler.List)
	tickets.Get("/:id", ticketHandler.GetByID)
	tickets.Patch("/:id/status", ticketHandler.Transition)
	tickets.Patch("/:id/pago", ticketHandler.Pago)
	tickets.Get("/:id/receipt", ticketHandler.Receipt)

	// Clientes y fidelidad (protegido)
	clients := protected.Group("/clients")
	clienteHandler := NewClienteHandler(deps.ClienteUC)
	clients.Get("/", clienteHandler.List)
	clients.Get("/:telefono", clienteHandler.GetByTelefono)
	clients.Put("/:telefono", clienteHandler.Update)
	clients.Get("/:telefono/loyalty", clienteHandler.Loyalty)
	clients.Post("/:telefono/loyalty/redeem", clienteHandler.RedeemFreeValet)
	clients.Post("/:telefono/loyalty/redeem-points", clienteHandler.RedeemPoints)

	// Gastos (protegido)
	gastos := protected.Group("/gastos")
	gastoHandler := NewGastoHandler(deps.GastoUC)
	gastos.Post("/", gastoHandler.Create)
	gastos.Get("/", gastoHandler.List)
	gastos.Put("/:id", gastoHandler.Update)
	gastos.Delete("/:id", gastoHandler.Delete)

	// Inventario de insumos (protegido)
	inventario := protected.Group("/inventario")
	inventarioHandler := NewInventarioHandler(deps.InventarioUC)
	inventario.Post("/", inventarioHandler.Create)
	inventario.Get("/", inventarioHandler.List)
	inventario.Get("/bajo-stock", inventarioHandler.ListBajoStock)
	inventario.Put("/:id", inventarioHandler.Update)
	inventario.Post("/:id/ajuste", inventarioHandler.AjusteStock)

	// Feedback: listado para el panel (protegido)
	protected.Get("/feedback", feedbackHandler.List)

	// Dashboard (protegido)
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard/summary", dashboardHandler.GetSummary)

	// Sincronización de pendientes (protegido, sólo admin)
	syncHandler := NewSyncHandler(deps.SyncUC)
	protected.Post("/sync", RequireRole(entity.RoleAdmin), syncHandler.Sync)
}
