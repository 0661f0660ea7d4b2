package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"viotex/internal/dto"
	"viotex/internal/model"
	"viotex/internal/pricing"
	"viotex/internal/repository"
	"viotex/internal/worker"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CotizacionService interface {
	// Crear resuelve precios, calcula totales y persiste todo en una sola
	// transaccion. Cualquier linea sin precio resuelto bloquea el guardado.
	Crear(ctx context.Context, usuarioID uuid.UUID, req dto.CrearCotizacionRequest) (*dto.CotizacionResponse, error)
	// Preview calcula sin persistir; las lineas incompletas llegan enumeradas.
	Preview(ctx context.Context, req dto.CrearCotizacionRequest) (*dto.PreviewCotizacionResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.CotizacionResponse, error)
	Listar(ctx context.Context, filter dto.CotizacionFilter) (*dto.CotizacionListResponse, error)
	Anular(ctx context.Context, id uuid.UUID, motivo string) error
}

type cotizacionService struct {
	repo        repository.CotizacionRepository
	clienteRepo repository.ClienteRepository
	precioRepo  repository.PrecioRepository
	trm         TRMService
	dispatcher  *worker.Dispatcher
}

func NewCotizacionService(
	repo repository.CotizacionRepository,
	clienteRepo repository.ClienteRepository,
	precioRepo repository.PrecioRepository,
	trm TRMService,
	dispatcher *worker.Dispatcher,
) CotizacionService {
	return &cotizacionService{
		repo:        repo,
		clienteRepo: clienteRepo,
		precioRepo:  precioRepo,
		trm:         trm,
		dispatcher:  dispatcher,
	}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// lineaResuelta es el resultado intermedio de resolver y calcular una linea.
type lineaResuelta struct {
	modelo    model.CotizacionLinea
	resultado pricing.ResultadoLinea
	respuesta dto.LineaResponse
}

// armada es el borrador completo de una cotizacion antes de persistir.
type armada struct {
	cliente           *model.Cliente
	moneda            pricing.Moneda
	lineas            []lineaResuelta
	totales           pricing.Totales
	trmUsada          decimal.NullDecimal
	lineasIncompletas []int // indices 1-based de lineas sin precio completo
}

// ── Crear ─────────────────────────────────────────────────────────────────────
// Flujo completo:
//   1. Cliente → clasificacion y tipo de documento
//   2. Por linea: resolver precio (catalogo + resolver puro), adiciones incluidas
//   3. Calcular totales (IVA segun documento, envio/seguro, anticipo 50%)
//   4. Lineas incompletas ⇒ error, nada se guarda
//   5. TX: numero consecutivo + cotizacion con lineas y adiciones
//   6. (async) job de PDF + correo

func (s *cotizacionService) Crear(ctx context.Context, usuarioID uuid.UUID, req dto.CrearCotizacionRequest) (*dto.CotizacionResponse, error) {
	a, err := s.armar(ctx, req)
	if err != nil {
		return nil, err
	}
	if len(a.lineasIncompletas) > 0 {
		return nil, fmt.Errorf("lineas sin precio resuelto: %v", a.lineasIncompletas)
	}

	cot := model.Cotizacion{
		ClienteID:     a.cliente.ID,
		UsuarioID:     usuarioID,
		Moneda:        string(a.moneda),
		TipoDocumento: a.cliente.TipoDocumento,
		Subtotal:      a.totales.Subtotal,
		IVA:           a.totales.IVA,
		Envio:         a.totales.Envio,
		Seguro:        a.totales.Seguro,
		Total:         a.totales.Total,
		Anticipo:      a.totales.Anticipo,
		TRMUsada:      a.trmUsada,
		Estado:        "vigente",
	}
	for _, l := range a.lineas {
		cot.Lineas = append(cot.Lineas, l.modelo)
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		numero, err := s.repo.NextNumero(ctx, tx)
		if err != nil {
			return err
		}
		cot.Numero = numero
		return s.repo.Create(ctx, tx, &cot)
	})
	if txErr != nil {
		return nil, txErr
	}

	// Job de PDF + correo — best effort, nunca bloquea la respuesta.
	if s.dispatcher != nil {
		payload := worker.CotizacionPDFPayload{CotizacionID: cot.ID.String()}
		if req.EmailCliente != nil {
			payload.Email = *req.EmailCliente
		}
		_ = s.dispatcher.EnqueueCotizacionPDF(ctx, payload)
	}

	cot.Cliente = a.cliente
	resp := s.toResponse(&cot, a)
	return resp, nil
}

func (s *cotizacionService) Preview(ctx context.Context, req dto.CrearCotizacionRequest) (*dto.PreviewCotizacionResponse, error) {
	a, err := s.armar(ctx, req)
	if err != nil {
		return nil, err
	}

	lineas := make([]dto.LineaResponse, len(a.lineas))
	for i, l := range a.lineas {
		lineas[i] = l.respuesta
	}
	return &dto.PreviewCotizacionResponse{
		Lineas:            lineas,
		Totales:           totalesToResponse(a.totales),
		LineasIncompletas: a.lineasIncompletas,
	}, nil
}

// armar resuelve precios y calcula totales sin tocar la base de escritura.
func (s *cotizacionService) armar(ctx context.Context, req dto.CrearCotizacionRequest) (*armada, error) {
	clienteID, err := uuid.Parse(req.ClienteID)
	if err != nil {
		return nil, fmt.Errorf("cliente_id invalido: %w", err)
	}
	cliente, err := s.clienteRepo.FindByID(ctx, clienteID)
	if err != nil {
		return nil, errors.New("cliente no encontrado")
	}
	clasif := pricing.Clasificacion(cliente.Clasificacion)
	if !clasif.EsValida() {
		return nil, fmt.Errorf("cliente con clasificacion desconocida %q", cliente.Clasificacion)
	}

	moneda := pricing.Moneda(req.Moneda)
	if moneda == "" {
		moneda = pricing.MonedaCOP
	}

	a := &armada{cliente: cliente, moneda: moneda}
	ahora := time.Now()

	for i, lr := range req.Lineas {
		numLinea := i + 1

		pid, err := uuid.Parse(lr.ProductoID)
		if err != nil {
			return nil, fmt.Errorf("linea %d: producto_id invalido", numLinea)
		}
		registro, err := s.precioRepo.FindVigenteByID(ctx, pid, ahora)
		if err != nil {
			return nil, fmt.Errorf("linea %d: producto sin precio vigente", numLinea)
		}

		precio, err := s.resolverConConversion(ctx, a, registro.Registro(), lr.Cantidad, moneda, clasif, lr.PrecioManual)
		if err != nil {
			if errors.Is(err, pricing.ErrPrecioNoResuelto) {
				a.lineasIncompletas = append(a.lineasIncompletas, numLinea)
				precio = decimal.Zero
			} else {
				return nil, fmt.Errorf("linea %d: %w", numLinea, err)
			}
		}

		// Adiciones: cantidad 0 hereda la de la linea padre.
		var adiciones []pricing.Adicion
		var adModelos []model.CotizacionAdicion
		var adRespuestas []dto.AdicionResponse
		for _, ar := range lr.Adiciones {
			cantidad := ar.Cantidad
			if cantidad == 0 {
				cantidad = lr.Cantidad
			}
			adID, err := uuid.Parse(ar.ProductoID)
			if err != nil {
				return nil, fmt.Errorf("linea %d: adicion con producto_id invalido", numLinea)
			}

			adPrecio := decimal.NullDecimal{}
			adNombre := ""
			if adReg, err := s.precioRepo.FindVigenteByID(ctx, adID, ahora); err == nil {
				adNombre = adReg.Nombre
				if p, rerr := s.resolverConConversion(ctx, a, adReg.Registro(), cantidad, moneda, clasif, ""); rerr == nil {
					adPrecio = decimal.NullDecimal{Decimal: p, Valid: true}
				}
			}

			adiciones = append(adiciones, pricing.Adicion{Cantidad: cantidad, PrecioUnitario: adPrecio})
			adModelos = append(adModelos, model.CotizacionAdicion{
				ProductoID:     adID,
				Descripcion:    adNombre,
				Cantidad:       cantidad,
				PrecioUnitario: adPrecio.Decimal,
			})
			adRespuestas = append(adRespuestas, dto.AdicionResponse{
				Producto:       adNombre,
				Cantidad:       cantidad,
				PrecioUnitario: pricing.Redondear(adPrecio.Decimal),
				Subtotal:       pricing.Redondear(adPrecio.Decimal.Mul(decimal.NewFromInt(int64(cantidad)))),
			})
		}

		resultado, err := pricing.CalcularLinea(pricing.Linea{
			Cantidad:       lr.Cantidad,
			PrecioUnitario: precio,
			DescuentoPct:   lr.DescuentoPct,
			Adiciones:      adiciones,
		})
		if err != nil {
			return nil, fmt.Errorf("linea %d: %w", numLinea, err)
		}
		if resultado.Incompleta {
			a.lineasIncompletas = append(a.lineasIncompletas, numLinea)
		}

		tipoPedido := lr.TipoPedido
		if tipoPedido == "" {
			tipoPedido = string(pricing.PedidoNormal)
		}

		a.lineas = append(a.lineas, lineaResuelta{
			modelo: model.CotizacionLinea{
				ProductoID:     pid,
				Descripcion:    registro.Nombre,
				Cantidad:       lr.Cantidad,
				PrecioUnitario: precio,
				DescuentoPct:   lr.DescuentoPct,
				TipoPedido:     tipoPedido,
				Negociacion:    lr.Negociacion,
				TotalLinea:     resultado.TotalLinea,
				TotalAdiciones: resultado.TotalAdiciones,
				TotalGeneral:   resultado.TotalGeneral,
				Adiciones:      adModelos,
			},
			resultado: resultado,
			respuesta: dto.LineaResponse{
				Producto:       registro.Nombre,
				Cantidad:       lr.Cantidad,
				PrecioUnitario: pricing.Redondear(precio),
				DescuentoPct:   lr.DescuentoPct,
				TotalLinea:     pricing.Redondear(resultado.TotalLinea),
				TotalAdiciones: pricing.Redondear(resultado.TotalAdiciones),
				TotalGeneral:   pricing.Redondear(resultado.TotalGeneral),
				TipoPedido:     tipoPedido,
				Adiciones:      adRespuestas,
			},
		})
	}

	resultados := make([]pricing.ResultadoLinea, len(a.lineas))
	for i, l := range a.lineas {
		resultados[i] = l.resultado
	}
	a.totales = pricing.CalcularTotales(
		resultados,
		pricing.Cargo{Habilitado: req.Envio.Habilitado, Valor: req.Envio.Valor},
		pricing.Cargo{Habilitado: req.Seguro.Habilitado, Valor: req.Seguro.Valor},
		pricing.TipoDocumento(cliente.TipoDocumento),
	)
	return a, nil
}

// resolverConConversion resuelve el precio unitario en la moneda pedida.
// En USD, el precio plano en dolares manda; si el registro no lo tiene, se
// resuelve el precio domestico y se convierte con recargo del 19% y la TRM
// vigente, registrando la tasa usada en la cotizacion.
func (s *cotizacionService) resolverConConversion(
	ctx context.Context,
	a *armada,
	reg pricing.RegistroPrecio,
	cantidad int,
	moneda pricing.Moneda,
	clasif pricing.Clasificacion,
	precioManual string,
) (decimal.Decimal, error) {
	precio, err := pricing.ResolverPrecio(reg, cantidad, moneda, clasif, precioManual)
	if err == nil || moneda != pricing.MonedaUSD || !errors.Is(err, pricing.ErrPrecioNoResuelto) {
		return precio, err
	}

	// Sin precio plano en USD: convertir el precio domestico.
	base, err := pricing.ResolverPrecio(reg, cantidad, pricing.MonedaCOP, clasif, precioManual)
	if err != nil {
		return decimal.Zero, err
	}
	tasa, _, err := s.trm.Obtener(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	conv, err := pricing.ConvertirAExterior(base, tasa)
	if err != nil {
		return decimal.Zero, err
	}
	a.trmUsada = decimal.NullDecimal{Decimal: conv.TasaUsada, Valid: true}
	return conv.Monto, nil
}

// ── Lectura / anulacion ──────────────────────────────────────────────────────

func (s *cotizacionService) Obtener(ctx context.Context, id uuid.UUID) (*dto.CotizacionResponse, error) {
	cot, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("cotizacion no encontrada")
	}
	return cotizacionToResponse(cot), nil
}

func (s *cotizacionService) Listar(ctx context.Context, filter dto.CotizacionFilter) (*dto.CotizacionListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	if filter.Estado == "" {
		filter.Estado = "vigente"
	}
	cotizaciones, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.CotizacionResponse, len(cotizaciones))
	for i := range cotizaciones {
		data[i] = *cotizacionToResponse(&cotizaciones[i])
	}
	return &dto.CotizacionListResponse{Data: data, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *cotizacionService) Anular(ctx context.Context, id uuid.UUID, motivo string) error {
	cot, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return errors.New("cotizacion no encontrada")
	}
	if cot.Estado == "anulada" {
		return errors.New("la cotizacion ya esta anulada")
	}
	_ = motivo // queda en el log de auditoria del handler
	return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		return s.repo.UpdateEstadoTx(tx, id, "anulada")
	})
}

// ── Mapping ──────────────────────────────────────────────────────────────────

func (s *cotizacionService) toResponse(cot *model.Cotizacion, a *armada) *dto.CotizacionResponse {
	resp := cotizacionToResponse(cot)
	// Las respuestas de armado ya traen nombres de producto resueltos.
	resp.Lineas = resp.Lineas[:0]
	for _, l := range a.lineas {
		resp.Lineas = append(resp.Lineas, l.respuesta)
	}
	return resp
}

func cotizacionToResponse(cot *model.Cotizacion) *dto.CotizacionResponse {
	lineas := make([]dto.LineaResponse, 0, len(cot.Lineas))
	for _, l := range cot.Lineas {
		adiciones := make([]dto.AdicionResponse, 0, len(l.Adiciones))
		for _, ad := range l.Adiciones {
			adiciones = append(adiciones, dto.AdicionResponse{
				Producto:       ad.Descripcion,
				Cantidad:       ad.Cantidad,
				PrecioUnitario: pricing.Redondear(ad.PrecioUnitario),
				Subtotal:       pricing.Redondear(ad.PrecioUnitario.Mul(decimal.NewFromInt(int64(ad.Cantidad)))),
			})
		}
		lineas = append(lineas, dto.LineaResponse{
			Producto:       l.Descripcion,
			Cantidad:       l.Cantidad,
			PrecioUnitario: pricing.Redondear(l.PrecioUnitario),
			DescuentoPct:   l.DescuentoPct,
			TotalLinea:     pricing.Redondear(l.TotalLinea),
			TotalAdiciones: pricing.Redondear(l.TotalAdiciones),
			TotalGeneral:   pricing.Redondear(l.TotalGeneral),
			TipoPedido:     l.TipoPedido,
			Adiciones:      adiciones,
		})
	}

	clienteNombre := ""
	if cot.Cliente != nil {
		clienteNombre = cot.Cliente.Nombre
	}

	resp := &dto.CotizacionResponse{
		ID:            cot.ID.String(),
		Numero:        cot.Numero,
		ClienteID:     cot.ClienteID.String(),
		Cliente:       clienteNombre,
		Moneda:        cot.Moneda,
		TipoDocumento: cot.TipoDocumento,
		Lineas:        lineas,
		Totales: dto.TotalesResponse{
			Subtotal: pricing.Redondear(cot.Subtotal),
			IVA:      pricing.Redondear(cot.IVA),
			Envio:    pricing.Redondear(cot.Envio),
			Seguro:   pricing.Redondear(cot.Seguro),
			Total:    pricing.Redondear(cot.Total),
			Anticipo: pricing.Redondear(cot.Anticipo),
		},
		Estado:    cot.Estado,
		CreatedAt: cot.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
	if cot.TRMUsada.Valid {
		t := cot.TRMUsada.Decimal
		resp.TRMUsada = &t
	}
	return resp
}

func totalesToResponse(t pricing.Totales) dto.TotalesResponse {
	return dto.TotalesResponse{
		Subtotal: pricing.Redondear(t.Subtotal),
		IVA:      pricing.Redondear(t.IVA),
		Envio:    pricing.Redondear(t.Envio),
		Seguro:   pricing.Redondear(t.Seguro),
		Total:    pricing.Redondear(t.Total),
		Anticipo: pricing.Redondear(t.Anticipo),
	}
}
