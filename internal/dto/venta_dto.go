package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// ItemVentaRequest is one candidate line of a sale. Eliminar marks the line
// for removal before validation (UI keeps rows the user discarded).
type ItemVentaRequest struct {
	ProductoID     string          `json:"producto_id"     validate:"required,uuid"`
	Cantidad       int             `json:"cantidad"        validate:"required,gt=0"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario" validate:"required,gt=0"`
	Eliminar       bool            `json:"eliminar"`
}

type RegistrarVentaRequest struct {
	Codigo    string             `json:"codigo"     validate:"required,min=1,max=20"`
	ClienteID string             `json:"cliente_id" validate:"required,uuid"`
	Items     []ItemVentaRequest `json:"items"      validate:"required,dive"`
}

// ─── Filter ──────────────────────────────────────────────────────────────────

type VentaFilter struct {
	Fecha string `form:"fecha"` // YYYY-MM-DD; empty = no date filter
	Page  int    `form:"page,default=1"   validate:"min=1"`
	Limit int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ItemVentaResponse struct {
	ProductoID     string          `json:"producto_id"`
	Producto       string          `json:"producto"`
	Cantidad       int             `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	Subtotal       decimal.Decimal `json:"subtotal"`
}

type VentaResponse struct {
	ID        string              `json:"id"`
	Codigo    string              `json:"codigo"`
	ClienteID string              `json:"cliente_id"`
	Cliente   string              `json:"cliente"`
	Items     []ItemVentaResponse `json:"items"`
	Total     decimal.Decimal     `json:"total"`
	CreatedAt string              `json:"created_at"`
}

type VentaListResponse struct {
	Data  []VentaResponse `json:"data"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}
