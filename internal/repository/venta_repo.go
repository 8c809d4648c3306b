package repository

import (
	"context"

	"gestor/internal/dto"
	"gestor/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type VentaRepository interface {
	Create(ctx context.Context, tx *gorm.DB, v *model.Venta) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Venta, error)
	ExistsCodigo(ctx context.Context, codigo string) (bool, error)
	List(ctx context.Context, filter dto.VentaFilter) ([]model.Venta, int64, error)
	// CountByCliente / CountItemsByProducto back the protect-on-delete guards.
	CountByCliente(ctx context.Context, clienteID uuid.UUID) (int64, error)
	CountItemsByProducto(ctx context.Context, productoID uuid.UUID) (int64, error)
	// DailyTotals groups committed sales by calendar date, chronologically.
	DailyTotals(ctx context.Context) ([]dto.VentaDiaria, error)
	DB() *gorm.DB // exposes the DB for transaction creation in the service layer
}

type ventaRepo struct{ db *gorm.DB }

func NewVentaRepository(db *gorm.DB) VentaRepository { return &ventaRepo{db: db} }

func (r *ventaRepo) DB() *gorm.DB { return r.db }

func (r *ventaRepo) Create(ctx context.Context, tx *gorm.DB, v *model.Venta) error {
	return tx.WithContext(ctx).Create(v).Error
}

func (r *ventaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Venta, error) {
	var v model.Venta
	err := r.db.WithContext(ctx).
		Preload("Items.Producto").
		Preload("Cliente").
		First(&v, id).Error
	return &v, err
}

func (r *ventaRepo) ExistsCodigo(ctx context.Context, codigo string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Venta{}).
		Where("codigo = ?", codigo).Count(&count).Error
	return count > 0, err
}

func (r *ventaRepo) List(ctx context.Context, filter dto.VentaFilter) ([]model.Venta, int64, error) {
	var ventas []model.Venta
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Venta{})
	if filter.Fecha != "" {
		q = q.Where("DATE(created_at) = ?", filter.Fecha)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Items.Producto").Preload("Cliente").
		Order("created_at DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&ventas).Error
	return ventas, total, err
}

func (r *ventaRepo) CountByCliente(ctx context.Context, clienteID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Venta{}).
		Where("cliente_id = ?", clienteID).Count(&count).Error
	return count, err
}

func (r *ventaRepo) CountItemsByProducto(ctx context.Context, productoID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.ItemVenta{}).
		Where("producto_id = ?", productoID).Count(&count).Error
	return count, err
}

func (r *ventaRepo) DailyTotals(ctx context.Context) ([]dto.VentaDiaria, error) {
	var rows []dto.VentaDiaria
	err := r.db.WithContext(ctx).Raw(`
		SELECT to_char(created_at::date, 'YYYY-MM-DD') AS fecha,
		       SUM(total)                              AS total
		FROM ventas
		GROUP BY created_at::date
		ORDER BY created_at::date`).Scan(&rows).Error
	return rows, err
}
