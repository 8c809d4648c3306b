package service

import (
	"context"
	"fmt"

	"gestor/internal/dto"
	"gestor/internal/model"
	"gestor/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ReciboMailer delivers the printable receipt of a committed sale to the
// customer. Delivery is best-effort: failures are logged, never surfaced.
type ReciboMailer interface {
	EnviarRecibo(venta *model.Venta, destinatario string) error
}

type VentaService interface {
	Registrar(ctx context.Context, usuario string, req dto.RegistrarVentaRequest) (*dto.VentaResponse, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.VentaResponse, error)
	Listar(ctx context.Context, filter dto.VentaFilter) (*dto.VentaListResponse, error)
}

type ventaService struct {
	repo           repository.VentaRepository
	clienteRepo    repository.ClienteRepository
	productoRepo   repository.ProductoRepository
	movimientoRepo repository.MovimientoStockRepository
	rdb            *redis.Client // nil disables report-cache invalidation
	recibos        ReciboMailer  // nil disables receipt email
}

func NewVentaService(
	repo repository.VentaRepository,
	clienteRepo repository.ClienteRepository,
	productoRepo repository.ProductoRepository,
	movimientoRepo repository.MovimientoStockRepository,
	rdb *redis.Client,
	recibos ReciboMailer,
) VentaService {
	return &ventaService{
		repo:           repo,
		clienteRepo:    clienteRepo,
		productoRepo:   productoRepo,
		movimientoRepo: movimientoRepo,
		rdb:            rdb,
		recibos:        recibos,
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

// ── Registrar ────────────────────────────────────────────────────────────────
// Single transition path: Draft → Validated → Committed | Rejected.
//   1. Drop lines marked eliminar; reject an empty line set
//   2. Resolve customer, reject a duplicate codigo
//   3. Pre-flight per line: resolve product, check stock >= cantidad
//   4. Compute subtotals and total
//   5. BEGIN TX: create venta+items, guarded stock decrement per line,
//      append one salida ledger entry per line
//   6. COMMIT — then invalidate the daily-totals cache and (best-effort)
//      email the receipt
// Nothing is persisted on any failure; the caller keeps its input.

func (s *ventaService) Registrar(ctx context.Context, usuario string, req dto.RegistrarVentaRequest) (*dto.VentaResponse, error) {
	// 1. Drop removed lines before validating anything
	candidatas := make([]dto.ItemVentaRequest, 0, len(req.Items))
	for _, item := range req.Items {
		if !item.Eliminar {
			candidatas = append(candidatas, item)
		}
	}
	if len(candidatas) == 0 {
		return nil, ErrVentaSinItems
	}

	clienteID, err := uuid.Parse(req.ClienteID)
	if err != nil {
		return nil, fmt.Errorf("cliente_id inválido: %w", err)
	}
	cliente, err := s.clienteRepo.FindByID(ctx, clienteID)
	if err != nil {
		return nil, &NotFoundError{Entidad: "Cliente"}
	}

	// 2. Duplicate code check. The unique index backs this up inside the
	// transaction; the pre-check gives the caller a clean error.
	if exists, err := s.repo.ExistsCodigo(ctx, req.Codigo); err != nil {
		return nil, err
	} else if exists {
		return nil, &UniquenessError{Campo: "codigo", Valor: req.Codigo}
	}

	// 3/4. Resolve products, validate stock, compute totals (pre-flight, outside TX)
	type lineaResuelta struct {
		producto *model.Producto
		cantidad int
		precio   decimal.Decimal
		subtotal decimal.Decimal
	}

	resueltas := make([]lineaResuelta, 0, len(candidatas))
	total := decimal.Zero
	for _, item := range candidatas {
		pid, err := uuid.Parse(item.ProductoID)
		if err != nil {
			return nil, fmt.Errorf("producto_id inválido: %w", err)
		}
		p, err := s.productoRepo.FindByID(ctx, pid)
		if err != nil {
			return nil, &NotFoundError{Entidad: "Producto"}
		}
		if p.Stock < item.Cantidad {
			return nil, &InsufficientStockError{Producto: p.Nombre, Disponible: p.Stock}
		}
		subtotal := item.PrecioUnitario.Mul(decimal.NewFromInt(int64(item.Cantidad)))
		total = total.Add(subtotal)
		resueltas = append(resueltas, lineaResuelta{
			producto: p,
			cantidad: item.Cantidad,
			precio:   item.PrecioUnitario,
			subtotal: subtotal,
		})
	}

	// 5. ACID transaction: venta + items + stock decrements + ledger entries
	venta := model.Venta{
		Codigo:    req.Codigo,
		ClienteID: cliente.ID,
		Total:     total,
	}
	for _, r := range resueltas {
		venta.Items = append(venta.Items, model.ItemVenta{
			ProductoID:     r.producto.ID,
			Cantidad:       r.cantidad,
			PrecioUnitario: r.precio,
			Subtotal:       r.subtotal,
			Producto:       r.producto,
		})
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.Create(ctx, tx, &venta); err != nil {
			return err
		}
		for _, r := range resueltas {
			// Guarded decrement: re-checks stock under the transaction so two
			// concurrent sales cannot both drain the same units.
			ok, err := s.productoRepo.DescontarStockTx(tx, r.producto.ID, r.cantidad)
			if err != nil {
				return err
			}
			if !ok {
				return &InsufficientStockError{Producto: r.producto.Nombre, Disponible: r.producto.Stock}
			}
			mov := &model.MovimientoStock{
				ProductoID:    r.producto.ID,
				Tipo:          model.MovimientoSalida,
				Cantidad:      r.cantidad,
				StockAnterior: r.producto.Stock,
				StockNuevo:    r.producto.Stock - r.cantidad,
				Motivo:        fmt.Sprintf("Venta %s", venta.Codigo),
				Usuario:       usuario,
			}
			if err := createMovimientoTx(s.movimientoRepo, ctx, tx, mov); err != nil {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	// 6. Committed. Downstream effects are read-side and best-effort.
	s.invalidarReporteDiario(ctx)
	if s.recibos != nil && cliente.Email != "" {
		venta.Cliente = cliente
		if err := s.recibos.EnviarRecibo(&venta, cliente.Email); err != nil {
			log.Warn().Err(err).Str("venta", venta.Codigo).Msg("no se pudo enviar el recibo por email")
		}
	}

	venta.Cliente = cliente
	return ventaToResponse(&venta), nil
}

func (s *ventaService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.VentaResponse, error) {
	venta, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, &NotFoundError{Entidad: "Venta"}
	}
	return ventaToResponse(venta), nil
}

func (s *ventaService) Listar(ctx context.Context, filter dto.VentaFilter) (*dto.VentaListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	ventas, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.VentaResponse, 0, len(ventas))
	for i := range ventas {
		data = append(data, *ventaToResponse(&ventas[i]))
	}
	return &dto.VentaListResponse{Data: data, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *ventaService) invalidarReporteDiario(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, reporteDiarioCacheKey).Err(); err != nil {
		log.Warn().Err(err).Msg("no se pudo invalidar el cache de ventas diarias")
	}
}

func ventaToResponse(v *model.Venta) *dto.VentaResponse {
	items := make([]dto.ItemVentaResponse, 0, len(v.Items))
	for _, item := range v.Items {
		nombre := ""
		if item.Producto != nil {
			nombre = item.Producto.Nombre
		}
		items = append(items, dto.ItemVentaResponse{
			ProductoID:     item.ProductoID.String(),
			Producto:       nombre,
			Cantidad:       item.Cantidad,
			PrecioUnitario: item.PrecioUnitario,
			Subtotal:       item.Subtotal,
		})
	}
	clienteNombre := ""
	if v.Cliente != nil {
		clienteNombre = fmt.Sprintf("%s, %s", v.Cliente.Apellido, v.Cliente.Nombre)
	}
	return &dto.VentaResponse{
		ID:        v.ID.String(),
		Codigo:    v.Codigo,
		ClienteID: v.ClienteID.String(),
		Cliente:   clienteNombre,
		Items:     items,
		Total:     v.Total,
		CreatedAt: v.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
