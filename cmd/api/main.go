package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/erp-expedientes/internal/bootstrap"
	httpRouter "github.com/jhoicas/erp-expedientes/internal/interfaces/http"
	"github.com/jhoicas/erp-expedientes/pkg/config"
	"github.com/jhoicas/erp-expedientes/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")
	httpRouter.SetErrorLogger(log)

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	c, err := bootstrap.New(ctx, cfg, log, bootstrap.Opciones{Redis: true})
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar dependencias")
	}
	defer c.Close()

	// Despachador del outbox de correos; se detiene con stop().
	dispatcherDone := make(chan struct{})
	go func() {
		defer close(dispatcherDone)
		c.Dispatcher.Run(ctx)
	}()

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 60, // cargas de Excel grandes
		IdleTimeout:  time.Second * 60,
		BodyLimit:    20 * 1024 * 1024,
	})
	app.Use(recover.New())
	app.Use(cors.New())

	// Swagger UI en local: http://localhost:<port>/docs (generado con swag init)
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Expedientes API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       c.Auth,
		BodegaUC:     c.Bodegas,
		EstructuraUC: c.Estructura,
		ReferenciaUC: c.Referencia,
		CreditoUC:    c.Creditos,
		SolicitudUC:  c.Solicitud,
		QlikUC:       c.Qlik,
		LicenciaUC:   c.Licencias,
		TomoUC:       c.Tomos,
		EtiquetaUC:   c.Etiquetas,
		CargaUC:      c.Carga,
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
	stop()
	<-dispatcherDone

	log.Info().Msg("aplicación detenida")
}
