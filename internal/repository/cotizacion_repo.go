package repository

import (
	"context"

	"viotex/internal/dto"
	"viotex/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CotizacionRepository interface {
	// Create persiste la cotizacion con lineas y adiciones dentro de la tx dada.
	Create(ctx context.Context, tx *gorm.DB, c *model.Cotizacion) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Cotizacion, error)
	List(ctx context.Context, filter dto.CotizacionFilter) ([]model.Cotizacion, int64, error)
	UpdateEstadoTx(tx *gorm.DB, id uuid.UUID, estado string) error
	NextNumero(ctx context.Context, tx *gorm.DB) (int, error)

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type cotizacionRepo struct{ db *gorm.DB }

func NewCotizacionRepository(db *gorm.DB) CotizacionRepository { return &cotizacionRepo{db: db} }

func (r *cotizacionRepo) Create(ctx context.Context, tx *gorm.DB, c *model.Cotizacion) error {
	db := tx
	if db == nil {
		db = r.db.WithContext(ctx)
	}
	return db.Create(c).Error
}

func (r *cotizacionRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Cotizacion, error) {
	var c model.Cotizacion
	err := r.db.WithContext(ctx).
		Preload("Cliente").
		Preload("Lineas").
		Preload("Lineas.Adiciones").
		First(&c, id).Error
	return &c, err
}

func (r *cotizacionRepo) List(ctx context.Context, filter dto.CotizacionFilter) ([]model.Cotizacion, int64, error) {
	var cotizaciones []model.Cotizacion
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Cotizacion{})

	if filter.Estado != "all" && filter.Estado != "" {
		q = q.Where("estado = ?", filter.Estado)
	}
	if filter.ClienteID != "" {
		q = q.Where("cliente_id = ?", filter.ClienteID)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Cliente").Preload("Lineas").Preload("Lineas.Adiciones").
		Order("numero DESC").Limit(filter.Limit).Offset(offset).
		Find(&cotizaciones).Error
	return cotizaciones, total, err
}

func (r *cotizacionRepo) UpdateEstadoTx(tx *gorm.DB, id uuid.UUID, estado string) error {
	return tx.Model(&model.Cotizacion{}).Where("id = ?", id).Update("estado", estado).Error
}

func (r *cotizacionRepo) NextNumero(ctx context.Context, tx *gorm.DB) (int, error) {
	db := tx
	if db == nil {
		db = r.db.WithContext(ctx)
	}
	var numero int
	err := db.Raw("SELECT COALESCE(MAX(numero), 0) + 1 FROM cotizaciones").Scan(&numero).Error
	return numero, err
}

func (r *cotizacionRepo) DB() *gorm.DB { return r.db }
