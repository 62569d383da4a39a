// Package carga importa créditos y documentos FHA desde un libro de Excel.
package carga

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/erp-expedientes/internal/application/dto"
	"github.com/jhoicas/erp-expedientes/internal/domain"
	"github.com/jhoicas/erp-expedientes/internal/domain/entity"
	"github.com/jhoicas/erp-expedientes/internal/domain/repository"
	"github.com/jhoicas/erp-expedientes/pkg/excel"
	"github.com/jhoicas/erp-expedientes/pkg/logger"
	"github.com/jhoicas/erp-expedientes/pkg/texto"
)

// PermisoDocumentosFHA permite cargar la hoja de documentos FHA.
const PermisoDocumentosFHA = "documentos.add_documentofha"

const formatoLog = "20060102_150405"

var camposCreditos = []excel.Campo{
	{Columna: "Credito", Tipo: excel.Texto},
	{Columna: "Cod_Cliente", Tipo: excel.Entero},
	{Columna: "Cliente", Tipo: excel.Texto},
	{Columna: "Cod_ofi", Tipo: excel.Entero},
	{Columna: "Oficina", Tipo: excel.Texto},
	{Columna: "Moneda", Tipo: excel.Texto},
	{Columna: "Producto", Tipo: excel.Texto},
	{Columna: "Fecha_Ini", Tipo: excel.Fecha, Vacio: true},
	{Columna: "Monto", Tipo: excel.Numero, Vacio: true},
	{Columna: "Credito_Anterior", Tipo: excel.Texto, Vacio: true},
	{Columna: "Escaneado", Tipo: excel.Booleano, Vacio: true, Valores: "SI|NO"},
}

var camposFHA = []excel.Campo{
	{Columna: "Credito", Tipo: excel.Texto},
	{Columna: "Tipo", Tipo: excel.Texto, Valores: strings.Join([]string{entity.DocumentoCedula, entity.DocumentoSeguro, entity.DocumentoEscritura}, "|")},
	{Columna: "Numero", Tipo: excel.Texto},
	{Columna: "Ubicacion", Tipo: excel.Texto, Vacio: true},
	{Columna: "Poliza", Tipo: excel.Texto, Vacio: true},
}

// Config parámetros de la carga.
type Config struct {
	ChunkSize int
}

// UseCase carga masiva de créditos.
type UseCase struct {
	txRunner TxRunner
	reader   HojaReader
	ids      IDGenerator
	logs     LogWriter
	permisos PermisoChecker
	cfg      Config
	log      *logger.Logger
	now      func() time.Time
}

// NewUseCase construye la carga; ChunkSize por defecto 1000.
func NewUseCase(txRunner TxRunner, reader HojaReader, ids IDGenerator, logs LogWriter, permisos PermisoChecker, cfg Config, log *logger.Logger) *UseCase {
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = 1000
	}
	return &UseCase{
		txRunner: txRunner,
		reader:   reader,
		ids:      ids,
		logs:     logs,
		permisos: permisos,
		cfg:      cfg,
		log:      log.Named("carga"),
		now:      time.Now,
	}
}

// fila crédito leído de la hoja con las claves naturales de sus referencias.
type fila struct {
	credito  *entity.Credito
	cliente  entity.Cliente
	oficina  entity.Oficina
	moneda   string
	producto string
}

// CargarCreditos procesa la primera hoja (créditos) y, si existe y el usuario tiene permiso,
// la segunda (documentos FHA). Cada bloque se confirma por separado: un bloque con error
// se registra en la bitácora y la carga continúa.
func (uc *UseCase) CargarCreditos(ctx context.Context, userID string, superuser bool, archivo io.Reader) (*dto.CargaResponse, error) {
	hojas, err := uc.reader.Hojas(archivo)
	if err != nil {
		return nil, domain.NewBusinessError(domain.ErrInvalidInput, "No se pudo leer el archivo: "+err.Error())
	}
	if len(hojas) == 0 {
		return nil, domain.NewBusinessError(domain.ErrInvalidInput, "El archivo no tiene hojas")
	}
	leidos, err := excel.LeerRegistros(hojas[0], camposCreditos)
	if err != nil {
		return nil, domain.NewBusinessError(domain.ErrInvalidInput, "Hoja de créditos: "+err.Error())
	}

	inicio := uc.now()
	out := &dto.CargaResponse{
		ID:          uc.ids.NextID(),
		Total:       len(leidos.Registros),
		Excluidos:   make([]int, 0, len(leidos.Excluidos)),
		Errores:     []string{},
		Avisos:      []string{},
		LogCreditos: inicio.Format(formatoLog) + "-CargaCreditos",
	}
	lw, err := uc.logs.Open(out.LogCreditos)
	if err != nil {
		return nil, fmt.Errorf("abrir bitácora: %w", err)
	}
	defer lw.Close()

	fmt.Fprintf(lw, "Carga %d > %d registros\n", out.ID, out.Total)
	for _, e := range leidos.Excluidos {
		out.Excluidos = append(out.Excluidos, e.Fila)
		fmt.Fprintf(lw, "Excluido > %s\n", e)
	}

	filas := uc.filas(leidos.Registros, inicio)
	for i := 0; i < len(filas); i += uc.cfg.ChunkSize {
		fin := min(i+uc.cfg.ChunkSize, len(filas))
		ins, existentes, err := uc.bloque(ctx, filas[i:fin], lw)
		if err != nil {
			msg := fmt.Sprintf("Bloque %d-%d: %v", i+1, fin, err)
			out.Errores = append(out.Errores, msg)
			fmt.Fprintf(lw, "Error > %s\n", msg)
			uc.log.Error().Err(err).Int64("carga", out.ID).Int("desde", i+1).Int("hasta", fin).Msg("bloque de créditos falló")
			continue
		}
		out.Insertados += ins
		out.Existentes += existentes
	}
	fmt.Fprintf(lw, "\nFIN: %s\n", uc.now().Format(formatoLog))

	if len(hojas) > 1 && len(hojas[1]) > 1 {
		if err := uc.cargarFHA(ctx, userID, superuser, hojas[1], inicio, out); err != nil {
			return nil, err
		}
	}
	uc.log.Info().
		Int64("carga", out.ID).
		Int("total", out.Total).
		Int64("insertados", out.Insertados).
		Int("existentes", out.Existentes).
		Int("excluidos", len(out.Excluidos)).
		Int("documentos_fha", out.DocumentosFHA).
		Msg("carga de créditos terminada")
	return out, nil
}

// filas convierte los registros en créditos; un número repetido en el archivo se toma una vez.
func (uc *UseCase) filas(regs []excel.Registro, ingreso time.Time) []fila {
	vistos := make(map[string]bool, len(regs))
	out := make([]fila, 0, len(regs))
	for _, r := range regs {
		numero := texto.SinEspacios(r.Texto("Credito"))
		if vistos[numero] {
			continue
		}
		vistos[numero] = true
		c := &entity.Credito{
			ID:              uuid.New().String(),
			Numero:          numero,
			Monto:           r.Numero("Monto").Round(2),
			Escaneado:       r.Booleano("Escaneado"),
			FechaIngreso:    ingreso,
			CreditoAnterior: texto.SinEspacios(r.Texto("Credito_Anterior")),
		}
		if f := r.Fecha("Fecha_Ini"); !f.IsZero() {
			c.FechaConcesion = &f
		}
		out = append(out, fila{
			credito:  c,
			cliente:  entity.Cliente{Codigo: r.Entero("Cod_Cliente"), Nombre: texto.Mayusculas(r.Texto("Cliente"))},
			oficina:  entity.Oficina{Numero: int(r.Entero("Cod_ofi")), Descripcion: texto.Mayusculas(r.Texto("Oficina"))},
			moneda:   texto.Mayusculas(r.Texto("Moneda")),
			producto: texto.Mayusculas(r.Texto("Producto")),
		})
	}
	return out
}

// bloque inserta las referencias faltantes y los créditos nuevos del bloque en una transacción.
func (uc *UseCase) bloque(ctx context.Context, filas []fila, lw io.Writer) (int64, int, error) {
	var (
		insertados int64
		lineas     []string
		existentes int
	)
	err := uc.txRunner.RunCarga(ctx, func(refRepo repository.ReferenciaRepository, creditoRepo repository.CreditoRepository, _ repository.DocumentoFHARepository) error {
		lineas, existentes = nil, 0
		var (
			clientes  []*entity.Cliente
			oficinas  []*entity.Oficina
			monedas   []string
			productos []string
			numeros   []string
		)
		vCli, vOfi := map[int64]bool{}, map[int]bool{}
		vMon, vPro := map[string]bool{}, map[string]bool{}
		for _, f := range filas {
			if !vCli[f.cliente.Codigo] {
				vCli[f.cliente.Codigo] = true
				clientes = append(clientes, &entity.Cliente{ID: uuid.New().String(), Codigo: f.cliente.Codigo, Nombre: f.cliente.Nombre})
			}
			if !vOfi[f.oficina.Numero] {
				vOfi[f.oficina.Numero] = true
				oficinas = append(oficinas, &entity.Oficina{ID: uuid.New().String(), Numero: f.oficina.Numero, Descripcion: f.oficina.Descripcion})
			}
			if !vMon[f.moneda] {
				vMon[f.moneda] = true
				monedas = append(monedas, f.moneda)
			}
			if !vPro[f.producto] {
				vPro[f.producto] = true
				productos = append(productos, f.producto)
			}
			numeros = append(numeros, f.credito.Numero)
		}

		idClientes, err := refRepo.EnsureClientes(ctx, clientes)
		if err != nil {
			return err
		}
		idOficinas, err := refRepo.EnsureOficinas(ctx, oficinas)
		if err != nil {
			return err
		}
		idMonedas, err := refRepo.EnsureMonedas(ctx, monedas)
		if err != nil {
			return err
		}
		idProductos, err := refRepo.EnsureProductos(ctx, productos)
		if err != nil {
			return err
		}
		yaExisten, err := creditoRepo.ExistentesPorNumero(ctx, numeros)
		if err != nil {
			return err
		}

		nuevos := make([]*entity.Credito, 0, len(filas))
		for _, f := range filas {
			if _, ok := yaExisten[f.credito.Numero]; ok {
				existentes++
				lineas = append(lineas, "Credito Existente > "+f.credito.Numero)
				continue
			}
			c := f.credito
			c.ClienteID = idClientes[f.cliente.Codigo]
			c.OficinaID = idOficinas[f.oficina.Numero]
			c.MonedaID = idMonedas[f.moneda]
			c.ProductoID = idProductos[f.producto]
			nuevos = append(nuevos, c)
			lineas = append(lineas, "Credito > "+c.Numero)
		}
		insertados, err = creditoRepo.InsertMany(ctx, nuevos)
		return err
	})
	if err != nil {
		return 0, 0, err
	}
	for _, l := range lineas {
		fmt.Fprintln(lw, l)
	}
	return insertados, existentes, nil
}

// cargarFHA procesa la hoja de documentos FHA si el usuario tiene permiso.
func (uc *UseCase) cargarFHA(ctx context.Context, userID string, superuser bool, hoja [][]string, inicio time.Time, out *dto.CargaResponse) error {
	ok, err := uc.permisos.TienePermiso(ctx, userID, superuser, PermisoDocumentosFHA)
	if err != nil {
		return err
	}
	if !ok {
		out.Avisos = append(out.Avisos, "No tiene permisos para cargar documentos fha")
		return nil
	}
	leidos, err := excel.LeerRegistros(hoja, camposFHA)
	if err != nil {
		out.Avisos = append(out.Avisos, "Hoja FHA: "+err.Error())
		return nil
	}

	out.LogFHA = inicio.Format(formatoLog) + "-CargaFHA"
	lw, err := uc.logs.Open(out.LogFHA)
	if err != nil {
		return fmt.Errorf("abrir bitácora: %w", err)
	}
	defer lw.Close()
	for _, e := range leidos.Excluidos {
		fmt.Fprintf(lw, "Excluido DoctoFHA > %s\n", e)
	}

	regs := leidos.Registros
	for i := 0; i < len(regs); i += uc.cfg.ChunkSize {
		fin := min(i+uc.cfg.ChunkSize, len(regs))
		var lineas, errores []string
		var creados int
		err := uc.txRunner.RunCarga(ctx, func(_ repository.ReferenciaRepository, creditoRepo repository.CreditoRepository, documentoRepo repository.DocumentoFHARepository) error {
			lineas, errores, creados = nil, nil, 0
			numeros := make([]string, 0, fin-i)
			for _, r := range regs[i:fin] {
				numeros = append(numeros, texto.SinEspacios(r.Texto("Credito")))
			}
			creditos, err := creditoRepo.ExistentesPorNumero(ctx, numeros)
			if err != nil {
				return err
			}
			for _, r := range regs[i:fin] {
				numero := texto.SinEspacios(r.Texto("Credito"))
				d := &entity.DocumentoFHA{
					ID:        uuid.New().String(),
					Tipo:      texto.Mayusculas(r.Texto("Tipo")),
					Numero:    texto.Mayusculas(r.Texto("Numero")),
					Ubicacion: texto.Mayusculas(r.Texto("Ubicacion")),
					Poliza:    r.Texto("Poliza"),
					Vigente:   true,
				}
				creditoID, ok := creditos[numero]
				if !ok {
					errores = append(errores, fmt.Sprintf("Error DoctoFHA: %s; No se encontró el número de crédito", numero))
					continue
				}
				d.CreditoID = creditoID
				existe, err := documentoRepo.Exists(ctx, creditoID, d.Tipo, d.Numero)
				if err != nil {
					return err
				}
				if existe {
					errores = append(errores, fmt.Sprintf("Error DoctoFHA: %s, %s: %s; Ya existe el documento.", numero, d.Tipo, d.Numero))
					continue
				}
				if err := documentoRepo.Create(ctx, d); err != nil {
					return err
				}
				creados++
				lineas = append(lineas, fmt.Sprintf("DoctoFHA: %s %s-%s", numero, d.Tipo, d.Numero))
			}
			return nil
		})
		if err != nil {
			msg := fmt.Sprintf("Bloque FHA %d-%d: %v", i+1, fin, err)
			out.Errores = append(out.Errores, msg)
			fmt.Fprintf(lw, "Error > %s\n", msg)
			continue
		}
		out.DocumentosFHA += creados
		out.Errores = append(out.Errores, errores...)
		for _, l := range append(lineas, errores...) {
			fmt.Fprintln(lw, l)
		}
	}
	fmt.Fprintf(lw, "\nFIN: %s\n", uc.now().Format(formatoLog))
	return nil
}
