package repository

import (
	"context"
	"errors"

	"viotex/internal/dto"
	"viotex/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrEstadoDesactualizado indica que el chequeo optimista fallo: alguien mas
// movio el item entre la lectura y la escritura.
var ErrEstadoDesactualizado = errors.New("el estado del item cambio, recargue e intente de nuevo")

type PedidoRepository interface {
	Create(ctx context.Context, tx *gorm.DB, p *model.Pedido) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Pedido, error)
	FindItemByID(ctx context.Context, id uuid.UUID) (*model.PedidoItem, error)
	ListItems(ctx context.Context, filter dto.PedidoItemFilter) ([]model.PedidoItem, int64, error)
	NextNumero(ctx context.Context, tx *gorm.DB) (int, error)

	// UpdateEstadoItemTx escribe el nuevo estado solo si el item sigue en
	// estadoAnterior. Devuelve ErrEstadoDesactualizado si la fila ya no esta
	// donde el llamador la leyo.
	UpdateEstadoItemTx(tx *gorm.DB, itemID uuid.UUID, estadoAnterior, estadoNuevo string) error
	CreateHistorialTx(tx *gorm.DB, h *model.HistorialEstado) error
	ListHistorial(ctx context.Context, itemID uuid.UUID) ([]model.HistorialEstado, error)

	DB() *gorm.DB
}

type pedidoRepo struct{ db *gorm.DB }

func NewPedidoRepository(db *gorm.DB) PedidoRepository { return &pedidoRepo{db: db} }

func (r *pedidoRepo) Create(ctx context.Context, tx *gorm.DB, p *model.Pedido) error {
	db := tx
	if db == nil {
		db = r.db.WithContext(ctx)
	}
	return db.Create(p).Error
}

func (r *pedidoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Pedido, error) {
	var p model.Pedido
	err := r.db.WithContext(ctx).
		Preload("Cliente").
		Preload("Items").
		First(&p, id).Error
	return &p, err
}

func (r *pedidoRepo) FindItemByID(ctx context.Context, id uuid.UUID) (*model.PedidoItem, error) {
	var item model.PedidoItem
	err := r.db.WithContext(ctx).First(&item, id).Error
	return &item, err
}

func (r *pedidoRepo) ListItems(ctx context.Context, filter dto.PedidoItemFilter) ([]model.PedidoItem, int64, error) {
	var items []model.PedidoItem
	var total int64

	q := r.db.WithContext(ctx).Model(&model.PedidoItem{})

	if filter.PedidoID != "" {
		q = q.Where("pedido_id = ?", filter.PedidoID)
	}
	if filter.Estado != "" && filter.Estado != "all" {
		q = q.Where("estado = ?", filter.Estado)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Order("created_at ASC").Limit(filter.Limit).Offset(offset).Find(&items).Error
	return items, total, err
}

func (r *pedidoRepo) NextNumero(ctx context.Context, tx *gorm.DB) (int, error) {
	db := tx
	if db == nil {
		db = r.db.WithContext(ctx)
	}
	var numero int
	err := db.Raw("SELECT COALESCE(MAX(numero), 0) + 1 FROM pedidos").Scan(&numero).Error
	return numero, err
}

func (r *pedidoRepo) UpdateEstadoItemTx(tx *gorm.DB, itemID uuid.UUID, estadoAnterior, estadoNuevo string) error {
	res := tx.Model(&model.PedidoItem{}).
		Where("id = ? AND estado = ?", itemID, estadoAnterior).
		Update("estado", estadoNuevo)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrEstadoDesactualizado
	}
	return nil
}

func (r *pedidoRepo) CreateHistorialTx(tx *gorm.DB, h *model.HistorialEstado) error {
	return tx.Create(h).Error
}

func (r *pedidoRepo) ListHistorial(ctx context.Context, itemID uuid.UUID) ([]model.HistorialEstado, error) {
	var historial []model.HistorialEstado
	err := r.db.WithContext(ctx).
		Where("pedido_item_id = ?", itemID).
		Order("created_at ASC").
		Find(&historial).Error
	return historial, err
}

func (r *pedidoRepo) DB() *gorm.DB { return r.db }
