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

	"github.com/jhoicas/contable-api/internal/application/documents"
	"github.com/jhoicas/contable-api/internal/application/reports"
	infrapdf "github.com/jhoicas/contable-api/internal/infrastructure/pdf"
	"github.com/jhoicas/contable-api/internal/infrastructure/postgres"
	infrasri "github.com/jhoicas/contable-api/internal/infrastructure/sri"
	httpRouter "github.com/jhoicas/contable-api/internal/interfaces/http"
	"github.com/jhoicas/contable-api/pkg/config"
	"github.com/jhoicas/contable-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("configuración inválida")
	}
	loc, _ := cfg.Report.Location() // ya validada
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("sri_environment", cfg.SRI.Environment).
		Str("timezone", loc.String()).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	companyRepo := postgres.NewCompanyRepository(pool)
	accountRepo := postgres.NewAccountRepository(pool)
	costCenterRepo := postgres.NewCostCenterRepository(pool)
	ledgerRepo := postgres.NewLedgerRepository(pool)
	emissionPointRepo := postgres.NewEmissionPointRepository(pool)
	documentRepo := postgres.NewDocumentRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// PDF: versión imprimible de los estados financieros
	pdfGenerator := infrapdf.NewMarotoPDFGenerator()
	reportsUC := reports.NewUseCase(
		companyRepo, accountRepo, costCenterRepo, ledgerRepo, pdfGenerator, loc, log,
	)

	documentsUC := documents.NewUseCase(
		companyRepo, emissionPointRepo, documentRepo, txRunner,
		infrasri.NewInfoTributariaBuilder(), cfg.SRI, loc, log,
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30, // los PDF de planes grandes tardan más
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Contable API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := pool.Ping(c.Context()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "service": cfg.App.Name})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Reports:   reportsUC,
		Documents: documentsUC,
		JWTSecret: cfg.JWT.Secret,
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
