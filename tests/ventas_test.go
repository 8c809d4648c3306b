package tests

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"gestor/internal/dto"
	"gestor/internal/handler"
	"gestor/internal/model"
	"gestor/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// spyMailer records receipt deliveries; fail makes every send error out.
type spyMailer struct {
	enviados []string
	fail     bool
}

func (m *spyMailer) EnviarRecibo(_ *model.Venta, destinatario string) error {
	if m.fail {
		return errors.New("smtp unavailable")
	}
	m.enviados = append(m.enviados, destinatario)
	return nil
}

type ventaFixture struct {
	repo        *stubVentaRepo
	clienteRepo *stubClienteRepo
	prodRepo    *stubProductoRepo
	movRepo     *stubMovimientoRepo
	svc         service.VentaService
}

func newVentaFixture(mailer service.ReciboMailer) *ventaFixture {
	f := &ventaFixture{
		repo:        newStubVentaRepo(),
		clienteRepo: newStubClienteRepo(),
		prodRepo:    newStubProductoRepo(),
		movRepo:     newStubMovimientoRepo(),
	}
	f.svc = service.NewVentaService(f.repo, f.clienteRepo, f.prodRepo, f.movRepo, nil, mailer)
	return f
}

func TestRegistrarVenta(t *testing.T) {
	f := newVentaFixture(nil)
	cliente := seedCliente(f.clienteRepo, "Ana", "García", "30111222")
	cafe := seedProducto(f.prodRepo, "Café 250g", "CAF-250", 3.50, 10, 2)
	yerba := seedProducto(f.prodRepo, "Yerba 500g", "YER-500", 6.50, 5, 1)

	resp, err := f.svc.Registrar(context.Background(), "ana", dto.RegistrarVentaRequest{
		Codigo:    "V-0001",
		ClienteID: cliente.ID.String(),
		Items: []dto.ItemVentaRequest{
			{ProductoID: cafe.ID.String(), Cantidad: 2, PrecioUnitario: decimal.NewFromFloat(3.50)},
			{ProductoID: yerba.ID.String(), Cantidad: 1, PrecioUnitario: decimal.NewFromFloat(6.50)},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, "V-0001", resp.Codigo)
	assert.Equal(t, "García, Ana", resp.Cliente)
	assert.Equal(t, decimal.NewFromFloat(13.50).String(), resp.Total.String())
	require.Len(t, resp.Items, 2)
	assert.Equal(t, decimal.NewFromFloat(7).String(), resp.Items[0].Subtotal.String())

	// Stock decremented per line
	assert.Equal(t, 8, f.prodRepo.productos[cafe.ID].Stock)
	assert.Equal(t, 4, f.prodRepo.productos[yerba.ID].Stock)

	// One salida ledger entry per line, attributed to the seller
	movs := f.movRepo.porProducto(cafe.ID)
	require.Len(t, movs, 1)
	assert.Equal(t, model.MovimientoSalida, movs[0].Tipo)
	assert.Equal(t, "Venta V-0001", movs[0].Motivo)
	assert.Equal(t, "ana", movs[0].Usuario)
}

func TestRegistrarVentaStockInsuficiente(t *testing.T) {
	f := newVentaFixture(nil)
	cliente := seedCliente(f.clienteRepo, "Ana", "García", "30111222")
	cafe := seedProducto(f.prodRepo, "Café 250g", "CAF-250", 3.50, 10, 2)
	yerba := seedProducto(f.prodRepo, "Yerba 500g", "YER-500", 6.50, 3, 1)

	_, err := f.svc.Registrar(context.Background(), "ana", dto.RegistrarVentaRequest{
		Codigo:    "V-0002",
		ClienteID: cliente.ID.String(),
		Items: []dto.ItemVentaRequest{
			{ProductoID: cafe.ID.String(), Cantidad: 1, PrecioUnitario: decimal.NewFromFloat(3.50)},
			{ProductoID: yerba.ID.String(), Cantidad: 4, PrecioUnitario: decimal.NewFromFloat(6.50)},
		},
	})

	var sinStock *service.InsufficientStockError
	require.ErrorAs(t, err, &sinStock)
	assert.Equal(t, "Yerba 500g", sinStock.Producto)
	assert.Equal(t, 3, sinStock.Disponible)

	// Nothing persisted: no sale, no stock change, no ledger entries
	assert.Empty(t, f.repo.ventas)
	assert.Equal(t, 10, f.prodRepo.productos[cafe.ID].Stock)
	assert.Equal(t, 3, f.prodRepo.productos[yerba.ID].Stock)
	assert.Empty(t, f.movRepo.movimientos)
}

func TestRegistrarVentaCodigoDuplicado(t *testing.T) {
	f := newVentaFixture(nil)
	cliente := seedCliente(f.clienteRepo, "Ana", "García", "30111222")
	cafe := seedProducto(f.prodRepo, "Café 250g", "CAF-250", 3.50, 10, 2)
	f.repo.ventas[uuid.New()] = ventaConCliente(cliente.ID, "V-0003")

	_, err := f.svc.Registrar(context.Background(), "ana", dto.RegistrarVentaRequest{
		Codigo:    "V-0003",
		ClienteID: cliente.ID.String(),
		Items: []dto.ItemVentaRequest{
			{ProductoID: cafe.ID.String(), Cantidad: 1, PrecioUnitario: decimal.NewFromFloat(3.50)},
		},
	})

	var dup *service.UniquenessError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "codigo", dup.Campo)
	assert.Equal(t, 10, f.prodRepo.productos[cafe.ID].Stock)
}

func TestRegistrarVentaDescartaItemsEliminados(t *testing.T) {
	f := newVentaFixture(nil)
	cliente := seedCliente(f.clienteRepo, "Ana", "García", "30111222")
	cafe := seedProducto(f.prodRepo, "Café 250g", "CAF-250", 3.50, 10, 2)
	yerba := seedProducto(f.prodRepo, "Yerba 500g", "YER-500", 6.50, 5, 1)

	resp, err := f.svc.Registrar(context.Background(), "ana", dto.RegistrarVentaRequest{
		Codigo:    "V-0004",
		ClienteID: cliente.ID.String(),
		Items: []dto.ItemVentaRequest{
			{ProductoID: cafe.ID.String(), Cantidad: 2, PrecioUnitario: decimal.NewFromFloat(3.50)},
			// Discarded by the user before submitting — must not count nor
			// fail validation even with an absurd quantity
			{ProductoID: yerba.ID.String(), Cantidad: 999, PrecioUnitario: decimal.NewFromFloat(6.50), Eliminar: true},
		},
	})

	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, decimal.NewFromFloat(7).String(), resp.Total.String())
	assert.Equal(t, 5, f.prodRepo.productos[yerba.ID].Stock)
}

// registrarVentaHTTP posts the raw JSON body through the gin handler so the
// whole bind-prune-validate pipeline runs, not just the service.
func registrarVentaHTTP(f *ventaFixture, body string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/v1/ventas", handler.NewVentasHandler(f.svc, nil).Registrar)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/ventas", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestRegistrarVentaHTTPDescartaItemsEliminados(t *testing.T) {
	f := newVentaFixture(nil)
	cliente := seedCliente(f.clienteRepo, "Ana", "García", "30111222")
	cafe := seedProducto(f.prodRepo, "Café 250g", "CAF-250", 3.50, 10, 2)

	// A discarded UI row arrives zeroed out; it must not trip field
	// validation before being dropped.
	body := fmt.Sprintf(`{
		"codigo": "V-0015",
		"cliente_id": %q,
		"items": [
			{"producto_id": %q, "cantidad": 2, "precio_unitario": 3.50},
			{"producto_id": "", "cantidad": 0, "precio_unitario": 0, "eliminar": true}
		]
	}`, cliente.ID, cafe.ID)

	w := registrarVentaHTTP(f, body)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, 8, f.prodRepo.productos[cafe.ID].Stock)
	assert.Contains(t, w.Body.String(), `"codigo":"V-0015"`)
}

func TestRegistrarVentaHTTPItemVigenteInvalido(t *testing.T) {
	f := newVentaFixture(nil)
	cliente := seedCliente(f.clienteRepo, "Ana", "García", "30111222")
	cafe := seedProducto(f.prodRepo, "Café 250g", "CAF-250", 3.50, 10, 2)

	// A zeroed line NOT marked eliminar is still a validation error.
	body := fmt.Sprintf(`{
		"codigo": "V-0016",
		"cliente_id": %q,
		"items": [
			{"producto_id": %q, "cantidad": 2, "precio_unitario": 3.50},
			{"producto_id": "", "cantidad": 0, "precio_unitario": 0}
		]
	}`, cliente.ID, cafe.ID)

	w := registrarVentaHTTP(f, body)

	require.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())
	assert.Equal(t, 10, f.prodRepo.productos[cafe.ID].Stock)
}

func TestRegistrarVentaHTTPTodosEliminados(t *testing.T) {
	f := newVentaFixture(nil)
	cliente := seedCliente(f.clienteRepo, "Ana", "García", "30111222")

	body := fmt.Sprintf(`{
		"codigo": "V-0017",
		"cliente_id": %q,
		"items": [
			{"producto_id": "", "cantidad": 0, "precio_unitario": 0, "eliminar": true}
		]
	}`, cliente.ID)

	w := registrarVentaHTTP(f, body)

	require.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), service.ErrVentaSinItems.Error())
}

func TestRegistrarVentaSinItems(t *testing.T) {
	f := newVentaFixture(nil)
	cliente := seedCliente(f.clienteRepo, "Ana", "García", "30111222")
	cafe := seedProducto(f.prodRepo, "Café 250g", "CAF-250", 3.50, 10, 2)

	_, err := f.svc.Registrar(context.Background(), "ana", dto.RegistrarVentaRequest{
		Codigo:    "V-0005",
		ClienteID: cliente.ID.String(),
		Items: []dto.ItemVentaRequest{
			{ProductoID: cafe.ID.String(), Cantidad: 1, PrecioUnitario: decimal.NewFromFloat(3.50), Eliminar: true},
		},
	})

	assert.ErrorIs(t, err, service.ErrVentaSinItems)
	assert.Empty(t, f.repo.ventas)
}

func TestRegistrarVentaClienteNoExiste(t *testing.T) {
	f := newVentaFixture(nil)
	cafe := seedProducto(f.prodRepo, "Café 250g", "CAF-250", 3.50, 10, 2)

	_, err := f.svc.Registrar(context.Background(), "ana", dto.RegistrarVentaRequest{
		Codigo:    "V-0006",
		ClienteID: uuid.NewString(),
		Items: []dto.ItemVentaRequest{
			{ProductoID: cafe.ID.String(), Cantidad: 1, PrecioUnitario: decimal.NewFromFloat(3.50)},
		},
	})

	var notFound *service.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "Cliente", notFound.Entidad)
}

func TestRegistrarVentaEnviaRecibo(t *testing.T) {
	mailer := &spyMailer{}
	f := newVentaFixture(mailer)
	cliente := seedCliente(f.clienteRepo, "Ana", "García", "30111222")
	cafe := seedProducto(f.prodRepo, "Café 250g", "CAF-250", 3.50, 10, 2)

	_, err := f.svc.Registrar(context.Background(), "ana", dto.RegistrarVentaRequest{
		Codigo:    "V-0007",
		ClienteID: cliente.ID.String(),
		Items: []dto.ItemVentaRequest{
			{ProductoID: cafe.ID.String(), Cantidad: 1, PrecioUnitario: decimal.NewFromFloat(3.50)},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, []string{cliente.Email}, mailer.enviados)
}

func TestRegistrarVentaReciboFallidoNoAfectaVenta(t *testing.T) {
	f := newVentaFixture(&spyMailer{fail: true})
	cliente := seedCliente(f.clienteRepo, "Ana", "García", "30111222")
	cafe := seedProducto(f.prodRepo, "Café 250g", "CAF-250", 3.50, 10, 2)

	resp, err := f.svc.Registrar(context.Background(), "ana", dto.RegistrarVentaRequest{
		Codigo:    "V-0008",
		ClienteID: cliente.ID.String(),
		Items: []dto.ItemVentaRequest{
			{ProductoID: cafe.ID.String(), Cantidad: 1, PrecioUnitario: decimal.NewFromFloat(3.50)},
		},
	})

	// Delivery is best-effort: the sale commits regardless
	require.NoError(t, err)
	assert.Equal(t, "V-0008", resp.Codigo)
	assert.Len(t, f.repo.ventas, 1)
	assert.Equal(t, 9, f.prodRepo.productos[cafe.ID].Stock)
}

func TestListarVentasPorFecha(t *testing.T) {
	f := newVentaFixture(nil)
	cliente := seedCliente(f.clienteRepo, "Ana", "García", "30111222")

	hoy := ventaConCliente(cliente.ID, "V-0010")
	f.repo.ventas[hoy.ID] = hoy
	ayer := ventaConCliente(cliente.ID, "V-0011")
	ayer.CreatedAt = ayer.CreatedAt.AddDate(0, 0, -1)
	f.repo.ventas[ayer.ID] = ayer

	resp, err := f.svc.Listar(context.Background(), dto.VentaFilter{
		Fecha: hoy.CreatedAt.Format("2006-01-02"),
	})

	require.NoError(t, err)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "V-0010", resp.Data[0].Codigo)
}
