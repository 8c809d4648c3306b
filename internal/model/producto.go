package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Producto is a catalog entry with live on-hand stock.
// Stock is only mutated through MovimientoStock entries (or the sale
// transaction) — never written directly by the product update path.
type Producto struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SKU         string    `gorm:"column:sku;uniqueIndex;not null"`
	Nombre      string    `gorm:"index;not null"`
	Descripcion *string
	Precio      decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Stock       int             `gorm:"not null;default:0"`
	// StockMinimo is the low-stock alert threshold: stock < stock_minimo flags the product.
	StockMinimo int     `gorm:"not null;default:0"`
	ImagenURL   *string `gorm:"column:imagen_url"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Producto) TableName() string { return "productos" }
