package service

import (
	"context"
	"testing"
	"time"

	"viotex/internal/dto"
	"viotex/internal/model"
	"viotex/internal/pricing"
	"viotex/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// ─── Stubs ───────────────────────────────────────────────────────────────────

type stubCotizacionRepo struct {
	created *model.Cotizacion
	numero  int
	byID    map[uuid.UUID]*model.Cotizacion
}

func (s *stubCotizacionRepo) Create(_ context.Context, _ *gorm.DB, c *model.Cotizacion) error {
	s.created = c
	return nil
}
func (s *stubCotizacionRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Cotizacion, error) {
	if c, ok := s.byID[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}
func (s *stubCotizacionRepo) List(context.Context, dto.CotizacionFilter) ([]model.Cotizacion, int64, error) {
	return nil, 0, nil
}
func (s *stubCotizacionRepo) UpdateEstadoTx(*gorm.DB, uuid.UUID, string) error { return nil }
func (s *stubCotizacionRepo) NextNumero(context.Context, *gorm.DB) (int, error) {
	return s.numero, nil
}
func (s *stubCotizacionRepo) DB() *gorm.DB { return nil }

type stubClienteRepo struct {
	clientes map[uuid.UUID]*model.Cliente
}

func (s *stubClienteRepo) Create(context.Context, *model.Cliente) error { return nil }
func (s *stubClienteRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Cliente, error) {
	if c, ok := s.clientes[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}
func (s *stubClienteRepo) FindByDocumento(context.Context, string) (*model.Cliente, error) {
	return nil, gorm.ErrRecordNotFound
}
func (s *stubClienteRepo) List(context.Context) ([]model.Cliente, error) { return nil, nil }
func (s *stubClienteRepo) Update(context.Context, *model.Cliente) error { return nil }
func (s *stubClienteRepo) SoftDelete(context.Context, uuid.UUID) error  { return nil }

type stubPrecioRepo struct {
	precios map[uuid.UUID]*model.PrecioProducto
}

func (s *stubPrecioRepo) Create(context.Context, *model.PrecioProducto) error { return nil }
func (s *stubPrecioRepo) FindByID(_ context.Context, id uuid.UUID) (*model.PrecioProducto, error) {
	if p, ok := s.precios[id]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}
func (s *stubPrecioRepo) FindVigenteByID(ctx context.Context, id uuid.UUID, en time.Time) (*model.PrecioProducto, error) {
	p, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !p.Vigente(en) {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}
func (s *stubPrecioRepo) FindByReferencia(context.Context, string) (*model.PrecioProducto, error) {
	return nil, gorm.ErrRecordNotFound
}
func (s *stubPrecioRepo) List(context.Context, dto.PrecioFilter) ([]model.PrecioProducto, int64, error) {
	return nil, 0, nil
}
func (s *stubPrecioRepo) Update(context.Context, *model.PrecioProducto) error { return nil }
func (s *stubPrecioRepo) SoftDelete(context.Context, uuid.UUID) error         { return nil }

type stubTRM struct {
	tasa decimal.Decimal
	err  error
}

func (s *stubTRM) Obtener(context.Context) (decimal.Decimal, string, error) {
	return s.tasa, "cache", s.err
}
func (s *stubTRM) Refresh(context.Context) error { return nil }
func (s *stubTRM) CBState() string               { return "closed" }

// ─── Fixtures ────────────────────────────────────────────────────────────────

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func nd(s string) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: d(s), Valid: true}
}

func fixtureCliente(clasif, doc string) *model.Cliente {
	return &model.Cliente{
		ID:            uuid.New(),
		Nombre:        "Dotaciones del Oriente",
		Documento:     "900123456",
		TipoDocumento: doc,
		Clasificacion: clasif,
		Activo:        true,
	}
}

func fixtureCamiseta() *model.PrecioProducto {
	return &model.PrecioProducto{
		ID:           uuid.New(),
		Referencia:   "CAM-POLO-01",
		Nombre:       "Camiseta polo",
		PrecioTramo1: nd("30000"),
		PrecioTramo2: nd("28000"),
		PrecioTramo3: nd("25000"),
		Activo:       true,
	}
}

func fixtureBordado() *model.PrecioProducto {
	return &model.PrecioProducto{
		ID:           uuid.New(),
		Referencia:   "AD-BORD-01",
		Nombre:       "Bordado pecho",
		EsAdicion:    true,
		PrecioTramo1: nd("4000"),
		PrecioTramo2: nd("3500"),
		PrecioTramo3: nd("3000"),
		Activo:       true,
	}
}

func newCotizacionFixture(cliente *model.Cliente, precios ...*model.PrecioProducto) (*stubCotizacionRepo, CotizacionService) {
	cotRepo := &stubCotizacionRepo{numero: 7}
	clienteRepo := &stubClienteRepo{clientes: map[uuid.UUID]*model.Cliente{cliente.ID: cliente}}
	precioRepo := &stubPrecioRepo{precios: map[uuid.UUID]*model.PrecioProducto{}}
	for _, p := range precios {
		precioRepo.precios[p.ID] = p
	}
	trm := &stubTRM{tasa: d("4000")}
	svc := NewCotizacionService(cotRepo, clienteRepo, precioRepo, trm, nil)
	return cotRepo, svc
}

// ─── Crear ───────────────────────────────────────────────────────────────────

func TestCrear_PersonaNaturalConIVAYAnticipo(t *testing.T) {
	cliente := fixtureCliente("MAYORISTA", "P")
	camiseta := fixtureCamiseta()
	camiseta.PrecioMayorista = nd("26000")
	cotRepo, svc := newCotizacionFixture(cliente, camiseta)

	resp, err := svc.Crear(context.Background(), uuid.New(), dto.CrearCotizacionRequest{
		ClienteID: cliente.ID.String(),
		Lineas: []dto.LineaRequest{
			{ProductoID: camiseta.ID.String(), Cantidad: 100},
		},
		Envio: dto.CargoRequest{Habilitado: true, Valor: d("20000")},
	})
	require.NoError(t, err)

	// 100 x 26000 = 2'600.000; IVA 19% = 494.000; + envio = 3'114.000
	assert.True(t, resp.Totales.Subtotal.Equal(d("2600000")), "subtotal %s", resp.Totales.Subtotal)
	assert.True(t, resp.Totales.IVA.Equal(d("494000")), "iva %s", resp.Totales.IVA)
	assert.True(t, resp.Totales.Total.Equal(d("3114000")), "total %s", resp.Totales.Total)
	assert.True(t, resp.Totales.Anticipo.Equal(d("1557000")), "anticipo %s", resp.Totales.Anticipo)
	assert.Equal(t, 7, resp.Numero)

	require.NotNil(t, cotRepo.created)
	assert.Equal(t, "vigente", cotRepo.created.Estado)
	assert.Len(t, cotRepo.created.Lineas, 1)
}

func TestCrear_RegimenComunSinIVA(t *testing.T) {
	cliente := fixtureCliente("MAYORISTA", "R")
	camiseta := fixtureCamiseta()
	camiseta.PrecioMayorista = nd("26000")
	_, svc := newCotizacionFixture(cliente, camiseta)

	resp, err := svc.Crear(context.Background(), uuid.New(), dto.CrearCotizacionRequest{
		ClienteID: cliente.ID.String(),
		Lineas:    []dto.LineaRequest{{ProductoID: camiseta.ID.String(), Cantidad: 100}},
	})
	require.NoError(t, err)
	assert.True(t, resp.Totales.IVA.IsZero())
	assert.True(t, resp.Totales.Total.Equal(d("2600000")))
}

func TestCrear_TramoPorCantidadParaViomar(t *testing.T) {
	cliente := fixtureCliente("VIOMAR", "R")
	camiseta := fixtureCamiseta() // sin precio fijo VIOMAR: caen los tramos
	_, svc := newCotizacionFixture(cliente, camiseta)

	resp, err := svc.Crear(context.Background(), uuid.New(), dto.CrearCotizacionRequest{
		ClienteID: cliente.ID.String(),
		Lineas:    []dto.LineaRequest{{ProductoID: camiseta.ID.String(), Cantidad: 750}},
	})
	require.NoError(t, err)
	// Tramo 2 (500-1000): 750 x 28000
	assert.True(t, resp.Lineas[0].PrecioUnitario.Equal(d("28000")))
	assert.True(t, resp.Totales.Subtotal.Equal(d("21000000")))
}

func TestCrear_LineaSinPrecioBloqueaElGuardado(t *testing.T) {
	cliente := fixtureCliente("MAYORISTA", "P")
	sinPrecio := fixtureCamiseta()
	// MAYORISTA exige precio fijo; sin el, la linea queda sin resolver.
	cotRepo, svc := newCotizacionFixture(cliente, sinPrecio)

	_, err := svc.Crear(context.Background(), uuid.New(), dto.CrearCotizacionRequest{
		ClienteID: cliente.ID.String(),
		Lineas:    []dto.LineaRequest{{ProductoID: sinPrecio.ID.String(), Cantidad: 10}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "lineas sin precio resuelto")
	assert.Nil(t, cotRepo.created, "nada debe persistirse")
}

func TestCrear_USDConvierteYRegistraTRM(t *testing.T) {
	cliente := fixtureCliente("VIOMAR", "R")
	camiseta := fixtureCamiseta() // sin PrecioUSD plano: convierte el domestico
	cotRepo, svc := newCotizacionFixture(cliente, camiseta)

	resp, err := svc.Crear(context.Background(), uuid.New(), dto.CrearCotizacionRequest{
		ClienteID: cliente.ID.String(),
		Moneda:    "USD",
		Lineas:    []dto.LineaRequest{{ProductoID: camiseta.ID.String(), Cantidad: 100}},
	})
	require.NoError(t, err)

	// Tramo 1: 30000 COP -> x1.19 = 35700 -> /4000 = 8.925 USD
	assert.True(t, resp.Lineas[0].PrecioUnitario.Equal(d("8.93")), "unitario %s", resp.Lineas[0].PrecioUnitario)
	require.NotNil(t, resp.TRMUsada)
	assert.True(t, resp.TRMUsada.Equal(d("4000")))
	require.NotNil(t, cotRepo.created)
	assert.True(t, cotRepo.created.TRMUsada.Valid)
}

func TestCrear_USDPrecioPlanoManda(t *testing.T) {
	cliente := fixtureCliente("VIOMAR", "R")
	camiseta := fixtureCamiseta()
	camiseta.PrecioUSD = nd("12.50")
	cotRepo, svc := newCotizacionFixture(cliente, camiseta)

	resp, err := svc.Crear(context.Background(), uuid.New(), dto.CrearCotizacionRequest{
		ClienteID: cliente.ID.String(),
		Moneda:    "USD",
		Lineas:    []dto.LineaRequest{{ProductoID: camiseta.ID.String(), Cantidad: 100}},
	})
	require.NoError(t, err)
	assert.True(t, resp.Lineas[0].PrecioUnitario.Equal(d("12.50")))
	// Con precio plano no hay conversion y la TRM no se registra.
	assert.Nil(t, resp.TRMUsada)
	assert.False(t, cotRepo.created.TRMUsada.Valid)
}

func TestCrear_USDSinTRMDisponibleFalla(t *testing.T) {
	cliente := fixtureCliente("VIOMAR", "R")
	camiseta := fixtureCamiseta()
	cotRepo := &stubCotizacionRepo{numero: 1}
	clienteRepo := &stubClienteRepo{clientes: map[uuid.UUID]*model.Cliente{cliente.ID: cliente}}
	precioRepo := &stubPrecioRepo{precios: map[uuid.UUID]*model.PrecioProducto{camiseta.ID: camiseta}}
	svc := NewCotizacionService(cotRepo, clienteRepo, precioRepo, &stubTRM{err: pricing.ErrTRMNoDisponible}, nil)

	_, err := svc.Crear(context.Background(), uuid.New(), dto.CrearCotizacionRequest{
		ClienteID: cliente.ID.String(),
		Moneda:    "USD",
		Lineas:    []dto.LineaRequest{{ProductoID: camiseta.ID.String(), Cantidad: 100}},
	})
	require.ErrorIs(t, err, pricing.ErrTRMNoDisponible)
	assert.Nil(t, cotRepo.created)
}

func TestCrear_AutorizadoConPrecioManual(t *testing.T) {
	cliente := fixtureCliente("AUTORIZADO", "P")
	camiseta := fixtureCamiseta()
	_, svc := newCotizacionFixture(cliente, camiseta)

	resp, err := svc.Crear(context.Background(), uuid.New(), dto.CrearCotizacionRequest{
		ClienteID: cliente.ID.String(),
		Lineas: []dto.LineaRequest{
			{ProductoID: camiseta.ID.String(), Cantidad: 10, PrecioManual: "22500"},
		},
	})
	require.NoError(t, err)
	assert.True(t, resp.Lineas[0].PrecioUnitario.Equal(d("22500")))
}

// ─── Preview ─────────────────────────────────────────────────────────────────

func TestPreview_EnumeraLineasIncompletasSinPersistir(t *testing.T) {
	cliente := fixtureCliente("MAYORISTA", "P")
	conPrecio := fixtureCamiseta()
	conPrecio.PrecioMayorista = nd("26000")
	sinPrecio := fixtureCamiseta()
	sinPrecio.ID = uuid.New()
	cotRepo, svc := newCotizacionFixture(cliente, conPrecio, sinPrecio)

	resp, err := svc.Preview(context.Background(), dto.CrearCotizacionRequest{
		ClienteID: cliente.ID.String(),
		Lineas: []dto.LineaRequest{
			{ProductoID: conPrecio.ID.String(), Cantidad: 10},
			{ProductoID: sinPrecio.ID.String(), Cantidad: 10},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, []int{2}, resp.LineasIncompletas)
	assert.Len(t, resp.Lineas, 2)
	assert.Nil(t, cotRepo.created)
}

func TestPreview_AdicionesConDescuentoSoloEnLaLinea(t *testing.T) {
	cliente := fixtureCliente("VIOMAR", "R")
	camiseta := fixtureCamiseta()
	bordado := fixtureBordado()
	_, svc := newCotizacionFixture(cliente, camiseta, bordado)

	resp, err := svc.Preview(context.Background(), dto.CrearCotizacionRequest{
		ClienteID: cliente.ID.String(),
		Lineas: []dto.LineaRequest{
			{
				ProductoID:   camiseta.ID.String(),
				Cantidad:     100,
				DescuentoPct: d("10"),
				// Cantidad 0 hereda la de la linea padre.
				Adiciones: []dto.AdicionRequest{{ProductoID: bordado.ID.String(), Cantidad: 0}},
			},
		},
	})
	require.NoError(t, err)

	// Linea: 100 x 30000 - 10% = 2'700.000. Adicion sin descuento: 100 x 4000.
	linea := resp.Lineas[0]
	assert.True(t, linea.TotalLinea.Equal(d("2700000")), "total linea %s", linea.TotalLinea)
	assert.True(t, linea.TotalAdiciones.Equal(d("400000")), "adiciones %s", linea.TotalAdiciones)
	assert.True(t, linea.TotalGeneral.Equal(d("3100000")))
	require.Len(t, linea.Adiciones, 1)
	assert.Equal(t, 100, linea.Adiciones[0].Cantidad)
}

func TestCrear_ClienteInexistente(t *testing.T) {
	_, svc := newCotizacionFixture(fixtureCliente("MAYORISTA", "P"))

	_, err := svc.Crear(context.Background(), uuid.New(), dto.CrearCotizacionRequest{
		ClienteID: uuid.New().String(),
		Lineas:    []dto.LineaRequest{{ProductoID: uuid.New().String(), Cantidad: 1}},
	})
	assert.EqualError(t, err, "cliente no encontrado")
}

// Compile-time: las implementaciones reales siguen cumpliendo los contratos
// que estos stubs duplican.
var (
	_ repository.CotizacionRepository = (*stubCotizacionRepo)(nil)
	_ repository.ClienteRepository    = (*stubClienteRepo)(nil)
	_ repository.PrecioRepository     = (*stubPrecioRepo)(nil)
	_ TRMService                      = (*stubTRM)(nil)
)
