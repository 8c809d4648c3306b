package tests

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"gestor/internal/infra"
	"gestor/internal/model"
	"gestor/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVentasDiarias(t *testing.T) {
	repo := newStubVentaRepo()
	svc := service.NewReporteService(repo, nil, nil) // nil Redis — caching is best-effort

	clienteID := uuid.New()
	dia1 := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
	dia2 := time.Date(2026, 8, 29, 16, 30, 0, 0, time.UTC)

	v1 := ventaConCliente(clienteID, "V-0001")
	v1.CreatedAt = dia1
	v1.Total = decimal.NewFromFloat(100)
	v2 := ventaConCliente(clienteID, "V-0002")
	v2.CreatedAt = dia1
	v2.Total = decimal.NewFromFloat(50.25)
	v3 := ventaConCliente(clienteID, "V-0003")
	v3.CreatedAt = dia2
	v3.Total = decimal.NewFromFloat(30)
	for _, v := range []*model.Venta{v1, v2, v3} {
		repo.ventas[v.ID] = v
	}

	serie, err := svc.VentasDiarias(context.Background())
	require.NoError(t, err)
	require.Len(t, serie, 2)
	// Chronological, one point per day with summed totals
	assert.Equal(t, "2026-08-28", serie[0].Fecha)
	assert.Equal(t, decimal.NewFromFloat(150.25).String(), serie[0].Total.String())
	assert.Equal(t, "2026-08-29", serie[1].Fecha)
	assert.Equal(t, decimal.NewFromFloat(30).String(), serie[1].Total.String())
}

func TestGenerarRecibo(t *testing.T) {
	repo := newStubVentaRepo()
	dir := t.TempDir()
	render := func(v *model.Venta) (string, error) {
		return infra.GenerarReciboPDF(v, "Gestor", dir)
	}
	svc := service.NewReporteService(repo, render, nil)

	producto := &model.Producto{ID: uuid.New(), Nombre: "Café 250g", Precio: decimal.NewFromFloat(3.50)}
	venta := ventaConCliente(uuid.New(), "V-0042")
	venta.Cliente = &model.Cliente{Nombre: "Ana", Apellido: "García"}
	venta.Total = decimal.NewFromFloat(7)
	venta.Items = []model.ItemVenta{{
		ID:             uuid.New(),
		VentaID:        venta.ID,
		ProductoID:     producto.ID,
		Cantidad:       2,
		PrecioUnitario: decimal.NewFromFloat(3.50),
		Subtotal:       decimal.NewFromFloat(7),
		Producto:       producto,
	}}
	repo.ventas[venta.ID] = venta

	path, err := svc.GenerarRecibo(context.Background(), venta.ID)
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
	assert.Contains(t, path, "recibo_V-0042.pdf")
}

func TestGenerarReciboNombreLargoAcentuado(t *testing.T) {
	dir := t.TempDir()
	// Multi-byte characters must survive the name truncation and the
	// cp1252 core-font encoding.
	producto := &model.Producto{ID: uuid.New(), Nombre: "Café torrado extra fuerte 1kg", Precio: decimal.NewFromFloat(12.90)}
	venta := ventaConCliente(uuid.New(), "V-0043")
	venta.Cliente = &model.Cliente{Nombre: "José", Apellido: "Muñoz"}
	venta.Total = decimal.NewFromFloat(12.90)
	venta.Items = []model.ItemVenta{{
		ID:             uuid.New(),
		VentaID:        venta.ID,
		ProductoID:     producto.ID,
		Cantidad:       1,
		PrecioUnitario: decimal.NewFromFloat(12.90),
		Subtotal:       decimal.NewFromFloat(12.90),
		Producto:       producto,
	}}

	path, err := infra.GenerarReciboPDF(venta, "Almacén Ñandú", dir)
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestGenerarReciboVentaNoExiste(t *testing.T) {
	svc := service.NewReporteService(newStubVentaRepo(), nil, nil)

	_, err := svc.GenerarRecibo(context.Background(), uuid.New())

	var notFound *service.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "Venta", notFound.Entidad)
}

func TestGenerarReciboFallaRender(t *testing.T) {
	repo := newStubVentaRepo()
	render := func(_ *model.Venta) (string, error) {
		return "", errors.New("disk full")
	}
	svc := service.NewReporteService(repo, render, nil)

	venta := ventaConCliente(uuid.New(), "V-0099")
	repo.ventas[venta.ID] = venta

	_, err := svc.GenerarRecibo(context.Background(), venta.ID)

	var rendering *service.RenderingError
	require.ErrorAs(t, err, &rendering)
	// The stored sale is untouched
	assert.Contains(t, repo.ventas, venta.ID)
}
