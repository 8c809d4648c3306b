package service

import (
	"context"

	"gestor/internal/dto"
	"gestor/internal/model"
	"gestor/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InventarioService manages the stock ledger: explicit entry/exit movements,
// absolute adjustments and the low-stock view. Every stock mutation appends a
// ledger entry in the same transaction that updates the product.
type InventarioService interface {
	RegistrarMovimiento(ctx context.Context, productoID uuid.UUID, usuario string, req dto.RegistrarMovimientoRequest) (*dto.MovimientoResponse, error)
	AjustarStock(ctx context.Context, productoID uuid.UUID, usuario string, req dto.AjustarStockRequest) (*dto.AjusteStockResponse, error)
	ListarMovimientos(ctx context.Context, productoID uuid.UUID, filter dto.MovimientoFilter) (*dto.MovimientoListResponse, error)
	ListarStockBajo(ctx context.Context) ([]dto.ProductoResponse, error)
}

type inventarioService struct {
	productoRepo   repository.ProductoRepository
	movimientoRepo repository.MovimientoStockRepository
}

func NewInventarioService(
	productoRepo repository.ProductoRepository,
	movimientoRepo repository.MovimientoStockRepository,
) InventarioService {
	return &inventarioService{productoRepo: productoRepo, movimientoRepo: movimientoRepo}
}

// RegistrarMovimiento appends one ledger entry and applies it to the product
// stock atomically. A salida larger than the on-hand stock is rejected before
// anything is written.
func (s *inventarioService) RegistrarMovimiento(ctx context.Context, productoID uuid.UUID, usuario string, req dto.RegistrarMovimientoRequest) (*dto.MovimientoResponse, error) {
	producto, err := s.productoRepo.FindByID(ctx, productoID)
	if err != nil {
		return nil, &NotFoundError{Entidad: "Producto"}
	}

	delta := req.Cantidad
	if req.Tipo == model.MovimientoSalida {
		if req.Cantidad > producto.Stock {
			return nil, &InsufficientStockError{Producto: producto.Nombre, Disponible: producto.Stock}
		}
		delta = -req.Cantidad
	}

	mov := &model.MovimientoStock{
		ProductoID:    producto.ID,
		Tipo:          req.Tipo,
		Cantidad:      req.Cantidad,
		StockAnterior: producto.Stock,
		StockNuevo:    producto.Stock + delta,
		Motivo:        req.Motivo,
		Usuario:       usuario,
	}

	txErr := runTx(ctx, s.productoRepo.DB(), func(tx *gorm.DB) error {
		if err := s.productoRepo.ActualizarStockTx(tx, producto.ID, delta); err != nil {
			return err
		}
		return createMovimientoTx(s.movimientoRepo, ctx, tx, mov)
	})
	if txErr != nil {
		return nil, txErr
	}

	producto.Stock = mov.StockNuevo
	return movimientoToResponse(mov, producto.Nombre), nil
}

// AjustarStock sets the absolute stock of a product by synthesizing the
// entrada/salida movement for the delta. A zero delta appends nothing and
// reports "sin_cambios".
func (s *inventarioService) AjustarStock(ctx context.Context, productoID uuid.UUID, usuario string, req dto.AjustarStockRequest) (*dto.AjusteStockResponse, error) {
	producto, err := s.productoRepo.FindByID(ctx, productoID)
	if err != nil {
		return nil, &NotFoundError{Entidad: "Producto"}
	}

	delta := req.Cantidad - producto.Stock
	if delta == 0 {
		return &dto.AjusteStockResponse{Cambio: "sin_cambios", Stock: producto.Stock}, nil
	}

	tipo := model.MovimientoEntrada
	cantidad := delta
	if delta < 0 {
		tipo = model.MovimientoSalida
		cantidad = -delta
	}
	motivo := req.Motivo
	if motivo == "" {
		motivo = "Ajuste de stock"
	}

	resp, err := s.RegistrarMovimiento(ctx, productoID, usuario, dto.RegistrarMovimientoRequest{
		Tipo:     tipo,
		Cantidad: cantidad,
		Motivo:   motivo,
	})
	if err != nil {
		return nil, err
	}
	return &dto.AjusteStockResponse{Cambio: tipo, Stock: req.Cantidad, Movimiento: resp}, nil
}

func (s *inventarioService) ListarMovimientos(ctx context.Context, productoID uuid.UUID, filter dto.MovimientoFilter) (*dto.MovimientoListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	if _, err := s.productoRepo.FindByID(ctx, productoID); err != nil {
		return nil, &NotFoundError{Entidad: "Producto"}
	}
	movimientos, total, err := s.movimientoRepo.ListByProducto(ctx, productoID, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.MovimientoResponse, 0, len(movimientos))
	for i := range movimientos {
		m := &movimientos[i]
		nombre := ""
		if m.Producto != nil {
			nombre = m.Producto.Nombre
		}
		data = append(data, *movimientoToResponse(m, nombre))
	}
	return &dto.MovimientoListResponse{Data: data, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

// ListarStockBajo returns the products below their alert threshold,
// the most depleted first.
func (s *inventarioService) ListarStockBajo(ctx context.Context) ([]dto.ProductoResponse, error) {
	productos, err := s.productoRepo.ListStockBajo(ctx)
	if err != nil {
		return nil, err
	}
	data := make([]dto.ProductoResponse, 0, len(productos))
	for i := range productos {
		data = append(data, *productoToResponse(&productos[i]))
	}
	return data, nil
}

func movimientoToResponse(m *model.MovimientoStock, producto string) *dto.MovimientoResponse {
	return &dto.MovimientoResponse{
		ID:            m.ID.String(),
		ProductoID:    m.ProductoID.String(),
		Producto:      producto,
		Tipo:          m.Tipo,
		Cantidad:      m.Cantidad,
		StockAnterior: m.StockAnterior,
		StockNuevo:    m.StockNuevo,
		Motivo:        m.Motivo,
		Usuario:       m.Usuario,
		CreatedAt:     m.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
