package service

import (
	"context"

	"gestor/internal/dto"
	"gestor/internal/model"
	"gestor/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductoService defines the business logic contract for the product catalog.
// Stock is read-only here: it changes through InventarioService movements and
// through sale commits, never through Actualizar.
type ProductoService interface {
	Crear(ctx context.Context, usuario string, req dto.CrearProductoRequest) (*dto.ProductoResponse, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.ProductoResponse, error)
	Listar(ctx context.Context, filter dto.ProductoFilter) (*dto.ProductoListResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error
}

type productoService struct {
	repo           repository.ProductoRepository
	movimientoRepo repository.MovimientoStockRepository
	ventaRepo      repository.VentaRepository
}

func NewProductoService(
	repo repository.ProductoRepository,
	movimientoRepo repository.MovimientoStockRepository,
	ventaRepo repository.VentaRepository,
) ProductoService {
	return &productoService{repo: repo, movimientoRepo: movimientoRepo, ventaRepo: ventaRepo}
}

// Crear persists the product and, when an initial stock was supplied, the
// synthetic "entrada" movement that documents it — both in one transaction.
func (s *productoService) Crear(ctx context.Context, usuario string, req dto.CrearProductoRequest) (*dto.ProductoResponse, error) {
	if _, err := s.repo.FindBySKU(ctx, req.SKU); err == nil {
		return nil, &UniquenessError{Campo: "sku", Valor: req.SKU}
	}

	producto := model.Producto{
		SKU:         req.SKU,
		Nombre:      req.Nombre,
		Descripcion: req.Descripcion,
		Precio:      req.Precio,
		Stock:       req.Stock,
		StockMinimo: req.StockMinimo,
		ImagenURL:   req.ImagenURL,
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := createProductoTx(s.repo, ctx, tx, &producto); err != nil {
			return err
		}
		if req.Stock > 0 {
			mov := &model.MovimientoStock{
				ProductoID:    producto.ID,
				Tipo:          model.MovimientoEntrada,
				Cantidad:      req.Stock,
				StockAnterior: 0,
				StockNuevo:    req.Stock,
				Motivo:        "Stock inicial",
				Usuario:       usuario,
			}
			return createMovimientoTx(s.movimientoRepo, ctx, tx, mov)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return productoToResponse(&producto), nil
}

func (s *productoService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.ProductoResponse, error) {
	producto, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, &NotFoundError{Entidad: "Producto"}
	}
	return productoToResponse(producto), nil
}

func (s *productoService) Listar(ctx context.Context, filter dto.ProductoFilter) (*dto.ProductoListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}
	productos, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.ProductoResponse, 0, len(productos))
	for i := range productos {
		data = append(data, *productoToResponse(&productos[i]))
	}
	return &dto.ProductoListResponse{Data: data, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

// Actualizar edits descriptive and pricing fields. Stock is deliberately not
// writable through this path.
func (s *productoService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, error) {
	producto, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, &NotFoundError{Entidad: "Producto"}
	}

	if req.Nombre != nil {
		producto.Nombre = *req.Nombre
	}
	if req.Descripcion != nil {
		producto.Descripcion = req.Descripcion
	}
	if req.Precio != nil {
		producto.Precio = *req.Precio
	}
	if req.StockMinimo != nil {
		producto.StockMinimo = *req.StockMinimo
	}
	if req.ImagenURL != nil {
		producto.ImagenURL = req.ImagenURL
	}

	if err := s.repo.Update(ctx, producto); err != nil {
		return nil, err
	}
	return productoToResponse(producto), nil
}

// Eliminar removes a product unless any sale line references it — the same
// protect-on-delete policy customers have.
func (s *productoService) Eliminar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return &NotFoundError{Entidad: "Producto"}
	}
	refs, err := s.ventaRepo.CountItemsByProducto(ctx, id)
	if err != nil {
		return err
	}
	if refs > 0 {
		return &ReferentialIntegrityError{Entidad: "producto", Referencias: refs}
	}
	return s.repo.Delete(ctx, id)
}

func productoToResponse(p *model.Producto) *dto.ProductoResponse {
	return &dto.ProductoResponse{
		ID:          p.ID.String(),
		SKU:         p.SKU,
		Nombre:      p.Nombre,
		Descripcion: p.Descripcion,
		Precio:      p.Precio,
		Stock:       p.Stock,
		StockMinimo: p.StockMinimo,
		StockBajo:   p.Stock < p.StockMinimo,
		ImagenURL:   p.ImagenURL,
		CreatedAt:   p.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

// createProductoTx / createMovimientoTx fall back to the non-Tx repository
// methods when no transaction is available (unit test mode, nil db).
func createProductoTx(repo repository.ProductoRepository, ctx context.Context, tx *gorm.DB, p *model.Producto) error {
	if tx == nil {
		return repo.Create(ctx, p)
	}
	return repo.CreateTx(tx, p)
}

func createMovimientoTx(repo repository.MovimientoStockRepository, ctx context.Context, tx *gorm.DB, m *model.MovimientoStock) error {
	if tx == nil {
		return repo.Create(ctx, m)
	}
	return repo.CreateTx(tx, m)
}
