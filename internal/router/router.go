package router

import (
	"time"

	"gestor/internal/config"
	"gestor/internal/handler"
	"gestor/internal/infra"
	"gestor/internal/middleware"
	"gestor/internal/model"
	"gestor/internal/repository"
	"gestor/internal/service"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, smtpCB *infra.CircuitBreaker) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Infrastructure ───────────────────────────────────────────────────────
	mailer := infra.NewMailer(cfg)
	recibos := infra.NewReciboSender(mailer, smtpCB, cfg.EmpresaNombre, cfg.PDFStoragePath)

	// ── Repositories ─────────────────────────────────────────────────────────
	clienteRepo := repository.NewClienteRepository(db)
	productoRepo := repository.NewProductoRepository(db)
	movimientoRepo := repository.NewMovimientoStockRepository(db)
	ventaRepo := repository.NewVentaRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	clienteSvc := service.NewClienteService(clienteRepo, ventaRepo)
	productoSvc := service.NewProductoService(productoRepo, movimientoRepo, ventaRepo)
	inventarioSvc := service.NewInventarioService(productoRepo, movimientoRepo)
	ventaSvc := service.NewVentaService(ventaRepo, clienteRepo, productoRepo, movimientoRepo, rdb, recibos)

	render := func(venta *model.Venta) (string, error) {
		return infra.GenerarReciboPDF(venta, cfg.EmpresaNombre, cfg.PDFStoragePath)
	}
	reporteSvc := service.NewReporteService(ventaRepo, render, rdb)

	// ── Handlers ─────────────────────────────────────────────────────────────
	clientesH := handler.NewClientesHandler(clienteSvc)
	productosH := handler.NewProductosHandler(productoSvc)
	inventarioH := handler.NewInventarioHandler(inventarioSvc)
	ventasH := handler.NewVentasHandler(ventaSvc, reporteSvc)
	reportesH := handler.NewReportesHandler(reporteSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb, smtpCB))

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		// Groups: ventas, stock, administradores — declared per route family
		clientes := v1.Group("/clientes", middleware.RequireGroups("ventas", "administradores"))
		{
			clientes.POST("", clientesH.Crear)
			clientes.GET("", clientesH.Listar)
			clientes.GET("/:id", clientesH.ObtenerPorID)
			clientes.PUT("/:id", clientesH.Actualizar)
			clientes.DELETE("/:id", clientesH.Eliminar)
		}

		productos := v1.Group("/productos", middleware.RequireGroups("stock", "administradores"))
		{
			productos.POST("", productosH.Crear)
			productos.GET("", productosH.Listar)
			productos.GET("/:id", productosH.ObtenerPorID)
			productos.PUT("/:id", productosH.Actualizar)
			productos.DELETE("/:id", productosH.Eliminar)
			productos.POST("/:id/movimientos", inventarioH.RegistrarMovimiento)
			productos.GET("/:id/movimientos", inventarioH.ListarMovimientos)
			productos.PATCH("/:id/stock", inventarioH.AjustarStock)
		}

		v1.GET("/inventario/stock-bajo", middleware.RequireGroups("stock", "administradores"), inventarioH.ListarStockBajo)

		ventas := v1.Group("/ventas", middleware.RequireGroups("ventas", "administradores"))
		{
			ventas.POST("", ventasH.Registrar)
			ventas.GET("", ventasH.Listar)
			ventas.GET("/:id", ventasH.ObtenerPorID)
			ventas.GET("/:id/recibo", ventasH.Recibo)
		}

		v1.GET("/reportes/ventas-diarias", middleware.RequireGroups("ventas", "stock", "administradores"), reportesH.VentasDiarias)
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
