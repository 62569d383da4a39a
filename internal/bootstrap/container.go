// Package bootstrap arma los repositorios y casos de uso compartidos por la API y erpctl.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"

	"github.com/jhoicas/erp-expedientes/internal/application/auth"
	"github.com/jhoicas/erp-expedientes/internal/application/carga"
	"github.com/jhoicas/erp-expedientes/internal/application/expedientes"
	"github.com/jhoicas/erp-expedientes/internal/application/notificacion"
	"github.com/jhoicas/erp-expedientes/internal/application/usecase"
	"github.com/jhoicas/erp-expedientes/internal/infrastructure/bitacora"
	"github.com/jhoicas/erp-expedientes/internal/infrastructure/idgen"
	"github.com/jhoicas/erp-expedientes/internal/infrastructure/mail"
	infrapdf "github.com/jhoicas/erp-expedientes/internal/infrastructure/pdf"
	"github.com/jhoicas/erp-expedientes/internal/infrastructure/postgres"
	infraredis "github.com/jhoicas/erp-expedientes/internal/infrastructure/redis"
	"github.com/jhoicas/erp-expedientes/pkg/config"
	"github.com/jhoicas/erp-expedientes/pkg/excel"
	"github.com/jhoicas/erp-expedientes/pkg/logger"
)

// Opciones qué dependencias externas abrir además de PostgreSQL.
type Opciones struct {
	// Redis solo lo necesita la lista de extracción de tomos.
	Redis bool
}

// Container conexiones abiertas y casos de uso listos para usar.
type Container struct {
	Pool  *pgxpool.Pool
	Redis *goredis.Client

	Auth       *auth.AuthUseCase
	Bodegas    *usecase.BodegaUseCase
	Estructura *usecase.EstructuraUseCase
	Referencia *usecase.ReferenciaUseCase
	Creditos   *usecase.CreditoUseCase
	Solicitud  *usecase.SolicitudUseCase
	Qlik       *usecase.QlikUseCase
	Licencias  *usecase.LicenciaUseCase
	Tomos      *expedientes.TomoUseCase
	Etiquetas  *expedientes.EtiquetaUseCase
	Carga      *carga.UseCase
	Dispatcher *notificacion.Dispatcher
}

// New abre PostgreSQL (y Redis si se pide) y construye los casos de uso.
func New(ctx context.Context, cfg *config.Config, log *logger.Logger, opts Opciones) (*Container, error) {
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
	}
	c := &Container{Pool: pool}

	var pickList expedientes.PickList
	if opts.Redis {
		c.Redis, err = infraredis.NewClient(ctx, cfg.Redis)
		if err != nil {
			pool.Close()
			return nil, err
		}
		pickList = infraredis.NewPickList(c.Redis, cfg.Redis.PickListTTL())
	}

	renderer, err := mail.NewRenderer()
	if err != nil {
		c.Close()
		return nil, err
	}
	ids, err := idgen.NewSnowflake(cfg.Import.NodeID)
	if err != nil {
		c.Close()
		return nil, err
	}
	logs, err := bitacora.NewDir(cfg.Import.LogDir)
	if err != nil {
		c.Close()
		return nil, err
	}

	txRunner := postgres.NewTxRunner(pool)
	userRepo := postgres.NewUsuarioRepository(pool)
	correoRepo := postgres.NewCorreoRepository(pool)
	bodegaRepo := postgres.NewBodegaRepository(pool)
	estructuraRepo := postgres.NewEstructuraRepository(pool)
	referenciaRepo := postgres.NewReferenciaRepository(pool)
	creditoRepo := postgres.NewCreditoRepository(pool)
	tomoRepo := postgres.NewTomoRepository(pool)
	solicitanteRepo := postgres.NewSolicitanteRepository(pool)
	motivoRepo := postgres.NewMotivoRepository(pool)
	documentoRepo := postgres.NewDocumentoFHARepository(pool)
	solicitudRepo := postgres.NewSolicitudFHARepository(pool)
	permisoRepo := postgres.NewPermisoRepository(pool)

	composer := notificacion.NewComposer(renderer, cfg.Mail.From)

	c.Auth = auth.NewAuthUseCase(userRepo, correoRepo, composer, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, log)
	c.Bodegas = usecase.NewBodegaUseCase(txRunner, bodegaRepo, estructuraRepo, userRepo)
	c.Estructura = usecase.NewEstructuraUseCase(txRunner, estructuraRepo, bodegaRepo, tomoRepo, log)
	c.Referencia = usecase.NewReferenciaUseCase(referenciaRepo)
	c.Creditos = usecase.NewCreditoUseCase(creditoRepo, tomoRepo, documentoRepo, solicitudRepo)
	c.Solicitud = usecase.NewSolicitudUseCase(solicitanteRepo, motivoRepo, documentoRepo, solicitudRepo)
	c.Qlik = usecase.NewQlikUseCase(
		postgres.NewStreamRepository(pool),
		postgres.NewModeloRepository(pool),
		postgres.NewTipoDatoRepository(pool),
		postgres.NewOrigenDatoRepository(pool),
		permisoRepo,
		cfg.Qlik.Proxy,
	)
	c.Licencias = usecase.NewLicenciaUseCase(
		txRunner,
		postgres.NewTipoLicenciaRepository(pool),
		postgres.NewLicenciaRepository(pool),
		permisoRepo,
	)
	c.Tomos = expedientes.NewTomoUseCase(expedientes.Deps{
		TxRunner:        txRunner,
		TomoRepo:        tomoRepo,
		CreditoRepo:     creditoRepo,
		EstructuraRepo:  estructuraRepo,
		BodegaRepo:      bodegaRepo,
		SolicitanteRepo: solicitanteRepo,
		MotivoRepo:      motivoRepo,
		UserRepo:        userRepo,
		PickList:        pickList,
		Composer:        composer,
		Log:             log,
	})
	c.Etiquetas = expedientes.NewEtiquetaUseCase(tomoRepo, creditoRepo, estructuraRepo, infrapdf.NewLabelGenerator())
	c.Carga = carga.NewUseCase(txRunner, excel.NewReader(), ids, logs, c.Auth,
		carga.Config{ChunkSize: cfg.Import.ChunkSize}, log)
	c.Dispatcher = notificacion.NewDispatcher(correoRepo, mail.NewSender(cfg.Mail), notificacion.DispatcherConfig{
		Interval:    cfg.Mail.Interval(),
		BatchSize:   cfg.Mail.BatchSize,
		MaxAttempts: cfg.Mail.MaxAttempts,
	}, log)
	return c, nil
}

// Close libera las conexiones.
func (c *Container) Close() {
	if c.Redis != nil {
		_ = c.Redis.Close()
	}
	c.Pool.Close()
}
