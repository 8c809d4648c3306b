package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

// RegistrarMovimientoRequest creates one explicit stock-ledger entry.
type RegistrarMovimientoRequest struct {
	Tipo     string `json:"tipo"     validate:"required,oneof=entrada salida"`
	Cantidad int    `json:"cantidad" validate:"required,gt=0"`
	Motivo   string `json:"motivo"   validate:"max=255"`
}

// AjustarStockRequest sets the absolute stock of a product; the service
// synthesizes the entrada/salida movement from the delta.
type AjustarStockRequest struct {
	Cantidad int    `json:"cantidad" validate:"min=0"`
	Motivo   string `json:"motivo"   validate:"max=255"`
}

// ─── Filter ──────────────────────────────────────────────────────────────────

type MovimientoFilter struct {
	Tipo  string `form:"tipo"  validate:"omitempty,oneof=entrada salida"`
	Page  int    `form:"page,default=1"   validate:"min=1"`
	Limit int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type MovimientoResponse struct {
	ID            string `json:"id"`
	ProductoID    string `json:"producto_id"`
	Producto      string `json:"producto"`
	Tipo          string `json:"tipo"`
	Cantidad      int    `json:"cantidad"`
	StockAnterior int    `json:"stock_anterior"`
	StockNuevo    int    `json:"stock_nuevo"`
	Motivo        string `json:"motivo"`
	Usuario       string `json:"usuario"`
	CreatedAt     string `json:"created_at"`
}

type MovimientoListResponse struct {
	Data  []MovimientoResponse `json:"data"`
	Total int64                `json:"total"`
	Page  int                  `json:"page"`
	Limit int                  `json:"limit"`
}

// AjusteStockResponse reports the outcome of an absolute adjustment.
// Cambio: "entrada" | "salida" | "sin_cambios".
type AjusteStockResponse struct {
	Cambio     string              `json:"cambio"`
	Stock      int                 `json:"stock"`
	Movimiento *MovimientoResponse `json:"movimiento,omitempty"`
}
