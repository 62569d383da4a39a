package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/erp-expedientes/internal/application/auth"
	"github.com/jhoicas/erp-expedientes/internal/application/carga"
	"github.com/jhoicas/erp-expedientes/internal/application/expedientes"
	"github.com/jhoicas/erp-expedientes/internal/application/usecase"
	"github.com/jhoicas/erp-expedientes/internal/domain/repository"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	BodegaUC     *usecase.BodegaUseCase
	EstructuraUC *usecase.EstructuraUseCase
	ReferenciaUC *usecase.ReferenciaUseCase
	CreditoUC    *usecase.CreditoUseCase
	SolicitudUC  *usecase.SolicitudUseCase
	QlikUC       *usecase.QlikUseCase
	LicenciaUC   *usecase.LicenciaUseCase
	TomoUC       *expedientes.TomoUseCase
	EtiquetaUC   *expedientes.EtiquetaUseCase
	CargaUC      *carga.UseCase
	JWTSecret    string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	public := api.Group("/auth")
	public.Post("/login", authHandler.Login)
	public.Post("/password/reset", authHandler.SolicitarReset)
	public.Post("/password/reset/confirmar", authHandler.ConfirmarReset)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	perm := func(codename string) fiber.Handler {
		return RequirePermission(codename, deps.AuthUC)
	}

	me := protected.Group("/auth")
	me.Get("/perfil", authHandler.Perfil)
	me.Put("/perfil", authHandler.ActualizarPerfil)
	me.Post("/password", authHandler.CambiarPassword)
	me.Get("/apps", authHandler.Apps)

	// Bodegas y su estructura
	bodegaHandler := NewBodegaHandler(deps.BodegaUC, deps.EstructuraUC, deps.EtiquetaUC)
	bodegas := protected.Group("/bodegas")
	bodegas.Get("/", perm("documentos.view_bodega"), bodegaHandler.List)
	bodegas.Post("/", perm("documentos.add_bodega"), bodegaHandler.Create)
	bodegas.Get("/usuarios-elegibles", perm("documentos.change_bodega"), authHandler.UsuariosElegibles)
	bodegas.Get("/:id", perm("documentos.view_bodega"), bodegaHandler.GetByID)
	bodegas.Put("/:id", perm("documentos.change_bodega"), bodegaHandler.Update)
	bodegas.Delete("/:id", perm("documentos.delete_bodega"), bodegaHandler.Toggle)
	bodegas.Get("/:id/cajas-inhabilitadas", perm("documentos.view_caja"), bodegaHandler.CajasInhabilitadas)
	bodegas.Post("/:id/estructura", perm("documentos.add_estante"), bodegaHandler.GenerarEstructura)

	estantes := protected.Group("/estantes")
	estantes.Post("/", perm("documentos.add_estante"), bodegaHandler.CreateEstante)
	estantes.Get("/:id", perm("documentos.view_estante"), bodegaHandler.GetEstante)
	estantes.Put("/:id", perm("documentos.change_estante"), bodegaHandler.UpdateEstante)
	estantes.Delete("/:id", perm("documentos.delete_estante"), bodegaHandler.ToggleEstante)
	estantes.Get("/:id/etiquetas", perm("documentos.label_estante"), bodegaHandler.EtiquetasNodo(repository.NodoEstante))

	niveles := protected.Group("/niveles")
	niveles.Post("/", perm("documentos.add_nivel"), bodegaHandler.CreateNivel)
	niveles.Get("/:id", perm("documentos.view_nivel"), bodegaHandler.GetNivel)
	niveles.Put("/:id", perm("documentos.change_nivel"), bodegaHandler.UpdateNivel)
	niveles.Delete("/:id", perm("documentos.delete_nivel"), bodegaHandler.ToggleNivel)
	niveles.Get("/:id/etiquetas", perm("documentos.label_estante"), bodegaHandler.EtiquetasNodo(repository.NodoNivel))

	posiciones := protected.Group("/posiciones")
	posiciones.Post("/", perm("documentos.add_posicion"), bodegaHandler.CreatePosicion)
	posiciones.Get("/:id", perm("documentos.view_posicion"), bodegaHandler.GetPosicion)
	posiciones.Put("/:id", perm("documentos.change_posicion"), bodegaHandler.UpdatePosicion)
	posiciones.Delete("/:id", perm("documentos.delete_posicion"), bodegaHandler.TogglePosicion)
	posiciones.Get("/:id/etiquetas", perm("documentos.label_estante"), bodegaHandler.EtiquetasNodo(repository.NodoPosicion))

	cajas := protected.Group("/cajas")
	cajas.Post("/", perm("documentos.add_caja"), bodegaHandler.CreateCaja)
	cajas.Get("/:id", perm("documentos.view_caja"), bodegaHandler.GetCaja)
	cajas.Put("/:id", perm("documentos.change_caja"), bodegaHandler.UpdateCaja)
	cajas.Delete("/:id", perm("documentos.delete_caja"), bodegaHandler.ToggleCaja)
	cajas.Get("/:id/etiquetas", perm("documentos.label_estante"), bodegaHandler.EtiquetaCaja)

	// Referencias
	refHandler := NewReferenciaHandler(deps.ReferenciaUC)
	protected.Get("/clientes", perm("documentos.view_cliente"), refHandler.ListClientes)
	protected.Post("/clientes", perm("documentos.add_cliente"), refHandler.CreateCliente)
	protected.Put("/clientes/:id", perm("documentos.change_cliente"), refHandler.UpdateCliente)
	protected.Get("/monedas", perm("documentos.view_moneda"), refHandler.ListMonedas)
	protected.Post("/monedas", perm("documentos.add_moneda"), refHandler.CreateMoneda)
	protected.Put("/monedas/:id", perm("documentos.change_moneda"), refHandler.UpdateMoneda)
	protected.Get("/productos", perm("documentos.view_producto"), refHandler.ListProductos)
	protected.Post("/productos", perm("documentos.add_producto"), refHandler.CreateProducto)
	protected.Put("/productos/:id", perm("documentos.change_producto"), refHandler.UpdateProducto)
	protected.Get("/oficinas", perm("documentos.view_oficina"), refHandler.ListOficinas)
	protected.Post("/oficinas", perm("documentos.add_oficina"), refHandler.CreateOficina)
	protected.Put("/oficinas/:id", perm("documentos.change_oficina"), refHandler.UpdateOficina)

	// Créditos
	creditoHandler := NewCreditoHandler(deps.CreditoUC, deps.TomoUC, deps.EtiquetaUC)
	creditos := protected.Group("/creditos")
	creditos.Get("/", perm("documentos.view_credito"), creditoHandler.List)
	creditos.Post("/", perm("documentos.add_credito"), creditoHandler.Create)
	creditos.Get("/buscar", perm("documentos.view_credito"), creditoHandler.Buscar)
	creditos.Get("/:id", perm("documentos.view_credito"), creditoHandler.GetByID)
	creditos.Put("/:id", perm("documentos.change_credito"), creditoHandler.Update)
	creditos.Post("/:id/escaneado", perm("documentos.change_credito"), creditoHandler.MarcarEscaneado)
	creditos.Post("/:id/tomos", perm("documentos.add_tomo"), creditoHandler.AgregarTomo)
	creditos.Delete("/:id/tomos", perm("documentos.delete_tomo"), creditoHandler.RemoverTomo)
	creditos.Get("/:id/etiquetas", perm("documentos.label_credito"), creditoHandler.Etiquetas)

	// Tomos: ingreso a caja y lista de extracción
	tomoHandler := NewTomoHandler(deps.TomoUC, deps.EtiquetaUC)
	tomos := protected.Group("/tomos")
	tomos.Post("/ingreso", perm("documentos.change_tomo"), tomoHandler.Ingresar)
	tomos.Get("/extraccion", perm("documentos.change_tomo"), tomoHandler.Lista)
	tomos.Post("/extraccion", perm("documentos.change_tomo"), tomoHandler.Agregar)
	tomos.Post("/extraccion/traslado", perm("documentos.change_tomo"), tomoHandler.Trasladar)
	tomos.Post("/extraccion/egreso", perm("documentos.change_tomo"), tomoHandler.Egresar)
	tomos.Delete("/extraccion/:id", perm("documentos.change_tomo"), tomoHandler.Quitar)
	tomos.Get("/:id", perm("documentos.view_tomo"), tomoHandler.GetByID)
	tomos.Get("/:id/etiqueta", perm("documentos.label_credito"), tomoHandler.Etiqueta)

	// Carga masiva
	cargaHandler := NewCargaHandler(deps.CargaUC)
	protected.Post("/cargas/creditos", perm("documentos.add_credito"), cargaHandler.CargarCreditos)

	// Documentos FHA
	fhaHandler := NewFHAHandler(deps.SolicitudUC)
	protected.Get("/solicitantes", perm("documentos.view_solicitante"), fhaHandler.ListSolicitantes)
	protected.Post("/solicitantes", perm("documentos.add_solicitante"), fhaHandler.CreateSolicitante)
	protected.Get("/solicitantes/:id", perm("documentos.view_solicitante"), fhaHandler.GetSolicitante)
	protected.Put("/solicitantes/:id", perm("documentos.change_solicitante"), fhaHandler.UpdateSolicitante)
	protected.Get("/motivos", perm("documentos.view_motivo"), fhaHandler.ListMotivos)
	protected.Post("/motivos", perm("documentos.add_motivo"), fhaHandler.CreateMotivo)
	protected.Put("/motivos/:id", perm("documentos.change_motivo"), fhaHandler.UpdateMotivo)
	protected.Get("/motivos/:id/demanda", perm("documentos.view_motivo"), fhaHandler.Demanda)
	protected.Post("/documentos-fha", perm("documentos.add_documentofha"), fhaHandler.CreateDocumento)
	protected.Get("/documentos-fha/:id", perm("documentos.view_documentofha"), fhaHandler.GetDocumento)
	protected.Put("/documentos-fha/:id", perm("documentos.change_documentofha"), fhaHandler.UpdateDocumento)

	solicitudes := protected.Group("/solicitudes-fha")
	solicitudes.Post("/", perm("documentos.add_solicitudfha"), fhaHandler.CrearSolicitud)
	solicitudes.Get("/abiertas", perm("documentos.view_solicitudfha"), fhaHandler.Abiertas)
	solicitudes.Get("/:id", perm("documentos.view_solicitudfha"), fhaHandler.GetSolicitud)
	solicitudes.Put("/:id", perm("documentos.change_solicitudfha"), fhaHandler.ActualizarSolicitud)
	solicitudes.Delete("/:id", perm("documentos.delete_solicitudfha"), fhaHandler.Anular)

	// Qlik
	qlikHandler := NewQlikHandler(deps.QlikUC)
	qlik := protected.Group("/qlik")
	qlik.Get("/streams", perm("qlik.view_stream"), qlikHandler.ListStreams)
	qlik.Post("/streams", perm("qlik.add_stream"), qlikHandler.CreateStream)
	qlik.Get("/streams/:id", perm("qlik.view_stream"), qlikHandler.GetStream)
	qlik.Put("/streams/:id", perm("qlik.change_stream"), qlikHandler.UpdateStream)
	qlik.Delete("/streams/:id", perm("qlik.delete_stream"), qlikHandler.DeleteStream)
	qlik.Post("/streams/:id/modelos", perm("qlik.add_modelo"), qlikHandler.AgregarModelo)

	qlik.Get("/modelos", perm("qlik.view_modelo"), qlikHandler.ListModelos)
	qlik.Post("/modelos", perm("qlik.add_modelo"), qlikHandler.CreateModelo)
	qlik.Get("/modelos/:id", perm("qlik.view_modelo"), qlikHandler.GetModelo)
	qlik.Put("/modelos/:id", perm("qlik.change_modelo"), qlikHandler.UpdateModelo)
	qlik.Delete("/modelos/:id", perm("qlik.delete_modelo"), qlikHandler.DeleteModelo)
	qlik.Post("/modelos/:id/usa", perm("qlik.change_modelo"), qlikHandler.UsaOrigen)
	qlik.Post("/modelos/:id/genera", perm("qlik.change_modelo"), qlikHandler.GeneraOrigen)
	qlik.Delete("/origenes-modelo/:id", perm("qlik.change_modelo"), qlikHandler.DeleteUso)

	qlik.Get("/tipos-dato", perm("qlik.view_tipodato"), qlikHandler.ListTiposDato)
	qlik.Post("/tipos-dato", perm("qlik.add_tipodato"), qlikHandler.CreateTipoDato)
	qlik.Get("/tipos-dato/:id", perm("qlik.view_tipodato"), qlikHandler.GetTipoDato)
	qlik.Put("/tipos-dato/:id", perm("qlik.change_tipodato"), qlikHandler.UpdateTipoDato)
	qlik.Delete("/tipos-dato/:id", perm("qlik.delete_tipodato"), qlikHandler.DeleteTipoDato)

	qlik.Get("/origenes", perm("qlik.view_origendato"), qlikHandler.ListOrigenes)
	qlik.Post("/origenes", perm("qlik.add_origendato"), qlikHandler.CreateOrigen)
	qlik.Get("/origenes/:id", perm("qlik.view_origendato"), qlikHandler.GetOrigen)
	qlik.Put("/origenes/:id", perm("qlik.change_origendato"), qlikHandler.UpdateOrigen)
	qlik.Delete("/origenes/:id", perm("qlik.delete_origendato"), qlikHandler.DeleteOrigen)

	licHandler := NewLicenciaHandler(deps.LicenciaUC)
	qlik.Get("/tipos-licencia", perm("qlik.view_tipolicencia"), licHandler.ListTipos)
	qlik.Post("/tipos-licencia", perm("qlik.add_tipolicencia"), licHandler.CreateTipo)
	qlik.Get("/tipos-licencia/:id", perm("qlik.view_tipolicencia"), licHandler.GetTipo)
	qlik.Put("/tipos-licencia/:id", perm("qlik.change_tipolicencia"), licHandler.UpdateTipo)
	qlik.Delete("/tipos-licencia/:id", perm("qlik.delete_tipolicencia"), licHandler.DeleteTipo)

	qlik.Get("/licencias", perm("qlik.view_licencia"), licHandler.ListLicencias)
	qlik.Post("/licencias", perm("qlik.add_licencia"), licHandler.CreateLicencia)
	qlik.Get("/licencias/:id", perm("qlik.view_licencia"), licHandler.GetLicencia)
	qlik.Put("/licencias/:id", perm("qlik.change_licencia"), licHandler.UpdateLicencia)
	qlik.Delete("/licencias/:id", perm("qlik.delete_licencia"), licHandler.DeleteLicencia)

	qlik.Get("/permisos", perm("qlik.view_permiso"), licHandler.ListPermisos)
	qlik.Post("/permisos", perm("qlik.add_permiso"), licHandler.CreatePermiso)
	qlik.Get("/permisos/objetos", perm("qlik.add_permiso"), licHandler.Objetos)
	qlik.Delete("/permisos/:id", perm("qlik.delete_permiso"), licHandler.DeletePermiso)
}
