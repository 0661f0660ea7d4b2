package repository

import (
	"context"
	"time"

	"viotex/internal/dto"
	"viotex/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PrecioRepository defines the data access contract for price records.
// Services depend on this interface, not on the concrete GORM implementation,
// enabling clean unit testing via stubs.
type PrecioRepository interface {
	Create(ctx context.Context, p *model.PrecioProducto) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.PrecioProducto, error)
	// FindVigenteByID devuelve el registro solo si esta activo y dentro de su
	// ventana de vigencia en el instante dado — contrato del catalogo: el
	// nucleo de pricing recibe registros ya filtrados.
	FindVigenteByID(ctx context.Context, id uuid.UUID, en time.Time) (*model.PrecioProducto, error)
	FindByReferencia(ctx context.Context, referencia string) (*model.PrecioProducto, error)
	List(ctx context.Context, filter dto.PrecioFilter) ([]model.PrecioProducto, int64, error)
	Update(ctx context.Context, p *model.PrecioProducto) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

type precioRepo struct{ db *gorm.DB }

func NewPrecioRepository(db *gorm.DB) PrecioRepository { return &precioRepo{db: db} }

func (r *precioRepo) Create(ctx context.Context, p *model.PrecioProducto) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *precioRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.PrecioProducto, error) {
	var p model.PrecioProducto
	err := r.db.WithContext(ctx).First(&p, id).Error
	return &p, err
}

func (r *precioRepo) FindVigenteByID(ctx context.Context, id uuid.UUID, en time.Time) (*model.PrecioProducto, error) {
	var p model.PrecioProducto
	err := r.db.WithContext(ctx).
		Where("id = ? AND activo = true", id).
		Where("(vigencia_inicio IS NULL OR vigencia_inicio <= ?)", en).
		Where("(vigencia_fin IS NULL OR vigencia_fin >= ?)", en).
		First(&p).Error
	return &p, err
}

func (r *precioRepo) FindByReferencia(ctx context.Context, referencia string) (*model.PrecioProducto, error) {
	var p model.PrecioProducto
	err := r.db.WithContext(ctx).Where("referencia = ? AND activo = true", referencia).First(&p).Error
	return &p, err
}

func (r *precioRepo) List(ctx context.Context, filter dto.PrecioFilter) ([]model.PrecioProducto, int64, error) {
	var precios []model.PrecioProducto
	var total int64

	q := r.db.WithContext(ctx).Model(&model.PrecioProducto{})

	switch filter.Activo {
	case "false":
		q = q.Where("activo = false")
	case "all":
		// no filter
	default:
		q = q.Where("activo = true")
	}

	if filter.Referencia != "" {
		q = q.Where("referencia = ?", filter.Referencia)
	}
	if filter.Nombre != "" {
		q = q.Where("nombre ILIKE ?", "%"+filter.Nombre+"%")
	}
	switch filter.EsAdicion {
	case "true":
		q = q.Where("es_adicion = true")
	case "false":
		q = q.Where("es_adicion = false")
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Order("nombre ASC").Limit(filter.Limit).Offset(offset).Find(&precios).Error
	return precios, total, err
}

func (r *precioRepo) Update(ctx context.Context, p *model.PrecioProducto) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *precioRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.PrecioProducto{}).Where("id = ?", id).Update("activo", false).Error
}
