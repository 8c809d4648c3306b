package tests

import (
	"context"
	"errors"
	"sort"
	"time"

	"gestor/internal/dto"
	"gestor/internal/model"
	"gestor/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// In-memory repository stubs shared by the unit tests. DB() returns nil so
// service transactions run their callback directly (no GORM involved).

// ── ClienteRepository ────────────────────────────────────────────────────────

type stubClienteRepo struct {
	clientes map[uuid.UUID]*model.Cliente
}

func newStubClienteRepo() *stubClienteRepo {
	return &stubClienteRepo{clientes: make(map[uuid.UUID]*model.Cliente)}
}

func (r *stubClienteRepo) Create(_ context.Context, c *model.Cliente) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.clientes[c.ID] = c
	return nil
}

func (r *stubClienteRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Cliente, error) {
	c, ok := r.clientes[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	return c, nil
}

func (r *stubClienteRepo) FindByDocumento(_ context.Context, doc string) (*model.Cliente, error) {
	for _, c := range r.clientes {
		if c.NumeroDocumento == doc {
			return c, nil
		}
	}
	return nil, errors.New("record not found")
}

func (r *stubClienteRepo) List(_ context.Context, filter dto.ClienteFilter) ([]model.Cliente, int64, error) {
	var result []model.Cliente
	for _, c := range r.clientes {
		result = append(result, *c)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Nombre < result[j].Nombre })
	return result, int64(len(result)), nil
}

func (r *stubClienteRepo) Update(_ context.Context, c *model.Cliente) error {
	r.clientes[c.ID] = c
	return nil
}

func (r *stubClienteRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.clientes[id]; !ok {
		return errors.New("record not found")
	}
	delete(r.clientes, id)
	return nil
}

var _ repository.ClienteRepository = (*stubClienteRepo)(nil)

// ── ProductoRepository ───────────────────────────────────────────────────────

type stubProductoRepo struct {
	productos map[uuid.UUID]*model.Producto
}

func newStubProductoRepo() *stubProductoRepo {
	return &stubProductoRepo{productos: make(map[uuid.UUID]*model.Producto)}
}

func (r *stubProductoRepo) Create(_ context.Context, p *model.Producto) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.productos[p.ID] = p
	return nil
}

func (r *stubProductoRepo) CreateTx(_ *gorm.DB, p *model.Producto) error {
	return r.Create(context.Background(), p)
}

func (r *stubProductoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Producto, error) {
	p, ok := r.productos[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	return p, nil
}

func (r *stubProductoRepo) FindBySKU(_ context.Context, sku string) (*model.Producto, error) {
	for _, p := range r.productos {
		if p.SKU == sku {
			return p, nil
		}
	}
	return nil, errors.New("record not found")
}

func (r *stubProductoRepo) List(_ context.Context, filter dto.ProductoFilter) ([]model.Producto, int64, error) {
	var result []model.Producto
	for _, p := range r.productos {
		if filter.StockBajo && p.Stock >= p.StockMinimo {
			continue
		}
		result = append(result, *p)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Nombre < result[j].Nombre })
	return result, int64(len(result)), nil
}

func (r *stubProductoRepo) ListStockBajo(_ context.Context) ([]model.Producto, error) {
	var result []model.Producto
	for _, p := range r.productos {
		if p.Stock < p.StockMinimo {
			result = append(result, *p)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Stock < result[j].Stock })
	return result, nil
}

func (r *stubProductoRepo) Update(_ context.Context, p *model.Producto) error {
	r.productos[p.ID] = p
	return nil
}

func (r *stubProductoRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.productos[id]; !ok {
		return errors.New("record not found")
	}
	delete(r.productos, id)
	return nil
}

func (r *stubProductoRepo) ActualizarStockTx(_ *gorm.DB, id uuid.UUID, delta int) error {
	p, ok := r.productos[id]
	if !ok {
		return errors.New("record not found")
	}
	p.Stock += delta
	return nil
}

func (r *stubProductoRepo) DescontarStockTx(_ *gorm.DB, id uuid.UUID, cantidad int) (bool, error) {
	p, ok := r.productos[id]
	if !ok {
		return false, errors.New("record not found")
	}
	if p.Stock < cantidad {
		return false, nil
	}
	p.Stock -= cantidad
	return true, nil
}

func (r *stubProductoRepo) DB() *gorm.DB { return nil }

var _ repository.ProductoRepository = (*stubProductoRepo)(nil)

// ── MovimientoStockRepository ────────────────────────────────────────────────

type stubMovimientoRepo struct {
	movimientos []*model.MovimientoStock
}

func newStubMovimientoRepo() *stubMovimientoRepo { return &stubMovimientoRepo{} }

func (r *stubMovimientoRepo) Create(_ context.Context, m *model.MovimientoStock) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}
	r.movimientos = append(r.movimientos, m)
	return nil
}

func (r *stubMovimientoRepo) CreateTx(_ *gorm.DB, m *model.MovimientoStock) error {
	return r.Create(context.Background(), m)
}

func (r *stubMovimientoRepo) ListByProducto(_ context.Context, productoID uuid.UUID, filter dto.MovimientoFilter) ([]model.MovimientoStock, int64, error) {
	var result []model.MovimientoStock
	// newest first
	for i := len(r.movimientos) - 1; i >= 0; i-- {
		m := r.movimientos[i]
		if m.ProductoID != productoID {
			continue
		}
		if filter.Tipo != "" && m.Tipo != filter.Tipo {
			continue
		}
		result = append(result, *m)
	}
	return result, int64(len(result)), nil
}

var _ repository.MovimientoStockRepository = (*stubMovimientoRepo)(nil)

// porProducto returns the stored entries for one product, oldest first.
func (r *stubMovimientoRepo) porProducto(productoID uuid.UUID) []*model.MovimientoStock {
	var result []*model.MovimientoStock
	for _, m := range r.movimientos {
		if m.ProductoID == productoID {
			result = append(result, m)
		}
	}
	return result
}

// ── VentaRepository ──────────────────────────────────────────────────────────

type stubVentaRepo struct {
	ventas map[uuid.UUID]*model.Venta
}

func newStubVentaRepo() *stubVentaRepo {
	return &stubVentaRepo{ventas: make(map[uuid.UUID]*model.Venta)}
}

func (r *stubVentaRepo) Create(_ context.Context, _ *gorm.DB, v *model.Venta) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	if v.CreatedAt.IsZero() {
		v.CreatedAt = time.Now()
	}
	for i := range v.Items {
		if v.Items[i].ID == uuid.Nil {
			v.Items[i].ID = uuid.New()
		}
		v.Items[i].VentaID = v.ID
	}
	r.ventas[v.ID] = v
	return nil
}

func (r *stubVentaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Venta, error) {
	v, ok := r.ventas[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	return v, nil
}

func (r *stubVentaRepo) ExistsCodigo(_ context.Context, codigo string) (bool, error) {
	for _, v := range r.ventas {
		if v.Codigo == codigo {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubVentaRepo) List(_ context.Context, filter dto.VentaFilter) ([]model.Venta, int64, error) {
	var result []model.Venta
	for _, v := range r.ventas {
		if filter.Fecha != "" && v.CreatedAt.Format("2006-01-02") != filter.Fecha {
			continue
		}
		result = append(result, *v)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result, int64(len(result)), nil
}

func (r *stubVentaRepo) CountByCliente(_ context.Context, clienteID uuid.UUID) (int64, error) {
	var count int64
	for _, v := range r.ventas {
		if v.ClienteID == clienteID {
			count++
		}
	}
	return count, nil
}

func (r *stubVentaRepo) CountItemsByProducto(_ context.Context, productoID uuid.UUID) (int64, error) {
	var count int64
	for _, v := range r.ventas {
		for _, item := range v.Items {
			if item.ProductoID == productoID {
				count++
			}
		}
	}
	return count, nil
}

func (r *stubVentaRepo) DailyTotals(_ context.Context) ([]dto.VentaDiaria, error) {
	totales := make(map[string]decimal.Decimal)
	for _, v := range r.ventas {
		fecha := v.CreatedAt.Format("2006-01-02")
		totales[fecha] = totales[fecha].Add(v.Total)
	}
	var serie []dto.VentaDiaria
	for fecha, total := range totales {
		serie = append(serie, dto.VentaDiaria{Fecha: fecha, Total: total})
	}
	sort.Slice(serie, func(i, j int) bool { return serie[i].Fecha < serie[j].Fecha })
	return serie, nil
}

func (r *stubVentaRepo) DB() *gorm.DB { return nil }

var _ repository.VentaRepository = (*stubVentaRepo)(nil)

// ── Seed helpers ─────────────────────────────────────────────────────────────

func seedCliente(repo *stubClienteRepo, nombre, apellido, documento string) *model.Cliente {
	c := &model.Cliente{
		ID:              uuid.New(),
		Nombre:          nombre,
		Apellido:        apellido,
		NumeroDocumento: documento,
		Email:           nombre + "@example.com",
		Telefono:        "11-5555-0000",
		Direccion:       "Av. Siempre Viva 742",
		CreatedAt:       time.Now(),
	}
	repo.clientes[c.ID] = c
	return c
}

func ventaConCliente(clienteID uuid.UUID, codigo string) *model.Venta {
	return &model.Venta{
		ID:        uuid.New(),
		Codigo:    codigo,
		ClienteID: clienteID,
		Total:     decimal.NewFromFloat(100),
		CreatedAt: time.Now(),
	}
}

func seedProducto(repo *stubProductoRepo, nombre, sku string, precio float64, stock, stockMin int) *model.Producto {
	p := &model.Producto{
		ID:          uuid.New(),
		SKU:         sku,
		Nombre:      nombre,
		Precio:      decimal.NewFromFloat(precio),
		Stock:       stock,
		StockMinimo: stockMin,
		CreatedAt:   time.Now(),
	}
	repo.productos[p.ID] = p
	return p
}
