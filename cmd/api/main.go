package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	appanalytics "github.com/puntolimpio/lavanderia-api/internal/application/analytics"
	"github.com/puntolimpio/lavanderia-api/internal/application/auth"
	"github.com/puntolimpio/lavanderia-api/internal/application/usecase"
	"github.com/puntolimpio/lavanderia-api/internal/infrastructure/localstore"
	infrapdf "github.com/puntolimpio/lavanderia-api/internal/infrastructure/pdf"
	"github.com/puntolimpio/lavanderia-api/internal/infrastructure/postgres"
	httpRouter "github.com/puntolimpio/lavanderia-api/internal/interfaces/http"
	"github.com/puntolimpio/lavanderia-api/pkg/config"
	"github.com/puntolimpio/lavanderia-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	ticketRepo := postgres.NewTicketRepository(pool)
	clienteRepo := postgres.NewClienteRepository(pool)
	gastoRepo := postgres.NewGastoRepository(pool)
	inventarioRepo := postgres.NewInventarioRepository(pool)
	feedbackRepo := postgres.NewFeedbackRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	tintoreriaRepo := postgres.NewTintoreriaRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	store, err := localstore.New(cfg.Sync.LocalStorePath)
	if err != nil {
		log.Fatal().Err(err).Msg("almacén local de pendientes")
	}

	pdfGenerator := infrapdf.NewMarotoTicketGenerator(cfg.App.Name)
	cacheTTL := time.Duration(cfg.Negocio.CacheTTLMs) * time.Millisecond

	ticketUC := usecase.NewTicketUseCase(
		txRunner, ticketRepo, clienteRepo, tintoreriaRepo,
		pdfGenerator, cfg.Negocio.PrecioValet, cacheTTL,
	)
	clienteUC := usecase.NewClienteUseCase(clienteRepo, txRunner, store, log)
	gastoUC := usecase.NewGastoUseCase(gastoRepo, store, log)
	inventarioUC := usecase.NewInventarioUseCase(inventarioRepo)
	feedbackUC := usecase.NewFeedbackUseCase(feedbackRepo, store, log)
	syncUC := usecase.NewSyncUseCase(store, ticketRepo, gastoRepo, clienteRepo, feedbackRepo, log)
	dashboardUC := appanalytics.NewDashboardUseCase(analyticsRepo)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	// Sólo si el JSON generado está presente; sin él la app arranca igual.
	const swaggerFile = "./docs/swagger.json"
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    cfg.App.Name,
		}))
	} else {
		log.Warn().Str("file", swaggerFile).Msg("swagger.json no encontrado, se omite la UI de docs")
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		TicketUC:     ticketUC,
		ClienteUC:    clienteUC,
		GastoUC:      gastoUC,
		InventarioUC: inventarioUC,
		FeedbackUC:   feedbackUC,
		SyncUC:       syncUC,
		DashboardUC:  dashboardUC,
		AuthUC:       authUC,
		JWTSecret:    cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
