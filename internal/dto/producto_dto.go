package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearProductoRequest struct {
	SKU         string          `json:"sku"          validate:"required,min=3,max=40"`
	Nombre      string          `json:"nombre"       validate:"required,min=2,max=120"`
	Descripcion *string         `json:"descripcion"`
	Precio      decimal.Decimal `json:"precio"       validate:"required,gt=0"`
	// Stock is the initial on-hand quantity; > 0 generates an "entrada"
	// movement with motivo "Stock inicial".
	Stock       int     `json:"stock"        validate:"min=0"`
	StockMinimo int     `json:"stock_minimo" validate:"min=0"`
	ImagenURL   *string `json:"imagen_url"   validate:"omitempty,url"`
}

// ActualizarProductoRequest edits descriptive/pricing fields only.
// Stock is deliberately absent: stock changes go through movements.
type ActualizarProductoRequest struct {
	Nombre      *string          `json:"nombre"       validate:"omitempty,min=2,max=120"`
	Descripcion *string          `json:"descripcion"`
	Precio      *decimal.Decimal `json:"precio"       validate:"omitempty,gt=0"`
	StockMinimo *int             `json:"stock_minimo" validate:"omitempty,min=0"`
	ImagenURL   *string          `json:"imagen_url"   validate:"omitempty,url"`
}

// ─── Filter / Pagination ─────────────────────────────────────────────────────

// ProductoFilter is bound from the query string of GET /v1/productos.
// StockBajo limits the list to products below their alert threshold.
type ProductoFilter struct {
	Buscar    string `form:"buscar"`
	StockBajo bool   `form:"stock_bajo"`
	Page      int    `form:"page,default=1"   validate:"min=1"`
	Limit     int    `form:"limit,default=20" validate:"min=1,max=100"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ProductoResponse struct {
	ID          string          `json:"id"`
	SKU         string          `json:"sku"`
	Nombre      string          `json:"nombre"`
	Descripcion *string         `json:"descripcion"`
	Precio      decimal.Decimal `json:"precio"`
	Stock       int             `json:"stock"`
	StockMinimo int             `json:"stock_minimo"`
	StockBajo   bool            `json:"stock_bajo"`
	ImagenURL   *string         `json:"imagen_url"`
	CreatedAt   string          `json:"created_at"`
}

type ProductoListResponse struct {
	Data  []ProductoResponse `json:"data"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
}
