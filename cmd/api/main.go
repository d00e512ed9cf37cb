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
	"github.com/tu-usuario/almacen-obras/internal/application/auth"
	"github.com/tu-usuario/almacen-obras/internal/application/catalog"
	"github.com/tu-usuario/almacen-obras/internal/application/ledger"
	"github.com/tu-usuario/almacen-obras/internal/application/obra"
	"github.com/tu-usuario/almacen-obras/internal/application/report"
	"github.com/tu-usuario/almacen-obras/internal/application/request"
	"github.com/tu-usuario/almacen-obras/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/almacen-obras/internal/interfaces/http"
	"github.com/tu-usuario/almacen-obras/pkg/config"
	"github.com/tu-usuario/almacen-obras/pkg/logger"
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

	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("bootstrap del esquema")
	}

	itemRepo := postgres.NewItemRepository(pool)
	descRepo := postgres.NewDescriptionRepository(pool)
	movRepo := postgres.NewMovementRepository(pool)
	requestRepo := postgres.NewRequestRepository(pool)
	obraRepo := postgres.NewObraRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	reportRepo := postgres.NewReportRepository(pool)
	txRunner := postgres.NewTxRunner(pool)
	recorder := postgres.NewAuditRecorder(pool, log)

	ledgerUC := ledger.NewApplyMovementUseCase(txRunner, movRepo, itemRepo, recorder)
	catalogUC := catalog.NewCatalogUseCase(itemRepo, descRepo, ledgerUC, recorder)
	workflowUC := request.NewWorkflowUseCase(txRunner, requestRepo, itemRepo, obraRepo, ledgerUC, recorder)
	obraUC := obra.NewObraUseCase(obraRepo, movRepo, recorder)
	reportUC := report.NewReportUseCase(reportRepo)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, recorder)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Almacén de Obras API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		CatalogUC:  catalogUC,
		LedgerUC:   ledgerUC,
		WorkflowUC: workflowUC,
		ObraUC:     obraUC,
		ReportUC:   reportUC,
		AuthUC:     authUC,
		JWTSecret:  cfg.JWT.Secret,
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
