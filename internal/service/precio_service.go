package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"viotex/internal/config"
	"viotex/internal/dto"
	"viotex/internal/model"
	"viotex/internal/pricing"
	"viotex/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

type PrecioService interface {
	Crear(ctx context.Context, req dto.PrecioRequest) (*dto.PrecioResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.PrecioResponse, error)
	Listar(ctx context.Context, filter dto.PrecioFilter) (*dto.PrecioListResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.PrecioRequest) (*dto.PrecioResponse, error)
	Desactivar(ctx context.Context, id uuid.UUID) error

	// ConsultarPrecio resuelve el precio unitario para un contexto de pedido
	// (cantidad, clasificacion, moneda y precio manual opcional).
	ConsultarPrecio(ctx context.Context, req dto.ConsultaPrecioRequest) (*dto.ConsultaPrecioResponse, error)
}

type precioService struct {
	repo     repository.PrecioRepository
	rdb      *redis.Client
	cacheTTL time.Duration
}

func NewPrecioService(repo repository.PrecioRepository, rdb *redis.Client, cfg *config.Config) PrecioService {
	ttl := cfg.PrecioCacheTTL
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &precioService{repo: repo, rdb: rdb, cacheTTL: ttl}
}

func (s *precioService) Crear(ctx context.Context, req dto.PrecioRequest) (*dto.PrecioResponse, error) {
	if _, err := s.repo.FindByReferencia(ctx, req.Referencia); err == nil {
		return nil, errors.New("ya existe un precio activo para esa referencia")
	}

	p := precioFromRequest(req)
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	s.invalidarCache(ctx, p.ID)
	resp := precioToResponse(p)
	return &resp, nil
}

func (s *precioService) Obtener(ctx context.Context, id uuid.UUID) (*dto.PrecioResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("precio no encontrado")
	}
	resp := precioToResponse(p)
	return &resp, nil
}

func (s *precioService) Listar(ctx context.Context, filter dto.PrecioFilter) (*dto.PrecioListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	precios, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.PrecioResponse, len(precios))
	for i := range precios {
		data[i] = precioToResponse(&precios[i])
	}
	return &dto.PrecioListResponse{Data: data, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *precioService) Actualizar(ctx context.Context, id uuid.UUID, req dto.PrecioRequest) (*dto.PrecioResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("precio no encontrado")
	}

	nuevo := precioFromRequest(req)
	nuevo.ID = p.ID
	nuevo.Activo = p.Activo
	nuevo.CreatedAt = p.CreatedAt
	if err := s.repo.Update(ctx, nuevo); err != nil {
		return nil, err
	}
	s.invalidarCache(ctx, id)
	resp := precioToResponse(nuevo)
	return &resp, nil
}

func (s *precioService) Desactivar(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return err
	}
	s.invalidarCache(ctx, id)
	return nil
}

// ── Consulta de precio ───────────────────────────────────────────────────────

func (s *precioService) ConsultarPrecio(ctx context.Context, req dto.ConsultaPrecioRequest) (*dto.ConsultaPrecioResponse, error) {
	pid, err := uuid.Parse(req.ProductoID)
	if err != nil {
		return nil, fmt.Errorf("producto_id invalido: %w", err)
	}

	moneda := pricing.Moneda(req.Moneda)
	if moneda == "" {
		moneda = pricing.MonedaCOP
	}
	clasif := pricing.Clasificacion(req.Clasificacion)
	if !clasif.EsValida() {
		return nil, errors.New("clasificacion desconocida")
	}

	// Las consultas con precio manual no se cachean: el resultado depende de
	// la entrada del vendedor, no solo del catalogo.
	cacheKey := ""
	if s.rdb != nil && req.PrecioManual == "" {
		cacheKey = fmt.Sprintf("precio:%s:%d:%s:%s", pid, pricing.TramoParaCantidad(req.Cantidad), clasif, moneda)
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var resp dto.ConsultaPrecioResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				resp.Cantidad = req.Cantidad
				return &resp, nil
			}
		}
	}

	p, err := s.repo.FindVigenteByID(ctx, pid, time.Now())
	if err != nil {
		return nil, errors.New("producto sin precio vigente")
	}

	precio, err := pricing.ResolverPrecio(p.Registro(), req.Cantidad, moneda, clasif, req.PrecioManual)
	if err != nil {
		return nil, err
	}

	resp := &dto.ConsultaPrecioResponse{
		ProductoID:     pid.String(),
		Nombre:         p.Nombre,
		Cantidad:       req.Cantidad,
		Moneda:         string(moneda),
		Clasificacion:  string(clasif),
		PrecioUnitario: pricing.Redondear(precio),
		Editable:       p.EsEditable && clasif == pricing.ClasifAutorizado,
	}

	if cacheKey != "" {
		if data, merr := json.Marshal(resp); merr == nil {
			if err := s.rdb.Set(ctx, cacheKey, data, s.cacheTTL).Err(); err != nil {
				log.Debug().Err(err).Msg("consulta_precio: cache write failed")
			}
		}
	}
	return resp, nil
}

// invalidarCache borra las entradas de consulta del producto. Una por tramo y
// combinacion conocida; barato comparado con un SCAN.
func (s *precioService) invalidarCache(ctx context.Context, id uuid.UUID) {
	if s.rdb == nil {
		return
	}
	keys := make([]string, 0, 24)
	for tramo := 1; tramo <= 3; tramo++ {
		for _, clasif := range []pricing.Clasificacion{pricing.ClasifAutorizado, pricing.ClasifMayorista, pricing.ClasifViomar, pricing.ClasifColanta} {
			for _, moneda := range []pricing.Moneda{pricing.MonedaCOP, pricing.MonedaUSD} {
				keys = append(keys, fmt.Sprintf("precio:%s:%d:%s:%s", id, tramo, clasif, moneda))
			}
		}
	}
	if err := s.rdb.Del(ctx, keys...).Err(); err != nil {
		log.Debug().Err(err).Msg("consulta_precio: cache invalidation failed")
	}
}

// ── Mapping ──────────────────────────────────────────────────────────────────

func precioFromRequest(req dto.PrecioRequest) *model.PrecioProducto {
	p := &model.PrecioProducto{
		Referencia:      req.Referencia,
		Nombre:          req.Nombre,
		EsAdicion:       req.EsAdicion,
		PrecioTramo1:    toNull(req.PrecioTramo1),
		PrecioTramo2:    toNull(req.PrecioTramo2),
		PrecioTramo3:    toNull(req.PrecioTramo3),
		PrecioMayorista: toNull(req.PrecioMayorista),
		PrecioColanta:   toNull(req.PrecioColanta),
		PrecioViomar:    toNull(req.PrecioViomar),
		PrecioUSD:       toNull(req.PrecioUSD),
		EsEditable:      req.EsEditable,
		Activo:          true,
	}
	p.VigenciaInicio = parseFecha(req.VigenciaInicio)
	p.VigenciaFin = parseFecha(req.VigenciaFin)
	return p
}

func precioToResponse(p *model.PrecioProducto) dto.PrecioResponse {
	return dto.PrecioResponse{
		ID:              p.ID.String(),
		Referencia:      p.Referencia,
		Nombre:          p.Nombre,
		EsAdicion:       p.EsAdicion,
		PrecioTramo1:    fromNull(p.PrecioTramo1),
		PrecioTramo2:    fromNull(p.PrecioTramo2),
		PrecioTramo3:    fromNull(p.PrecioTramo3),
		PrecioMayorista: fromNull(p.PrecioMayorista),
		PrecioColanta:   fromNull(p.PrecioColanta),
		PrecioViomar:    fromNull(p.PrecioViomar),
		PrecioUSD:       fromNull(p.PrecioUSD),
		VigenciaInicio:  formatFecha(p.VigenciaInicio),
		VigenciaFin:     formatFecha(p.VigenciaFin),
		EsEditable:      p.EsEditable,
		Activo:          p.Activo,
	}
}

func toNull(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *d, Valid: true}
}

func fromNull(d decimal.NullDecimal) *decimal.Decimal {
	if !d.Valid {
		return nil
	}
	v := d.Decimal
	return &v
}

func parseFecha(s *string) *time.Time {
	if s == nil || *s == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", *s)
	if err != nil {
		return nil
	}
	return &t
}

func formatFecha(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format("2006-01-02")
	return &s
}
