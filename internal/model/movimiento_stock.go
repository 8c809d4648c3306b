package model

import (
	"time"

	"github.com/google/uuid"
)

// Movement kinds. An entrada increases stock, a salida decreases it.
const (
	MovimientoEntrada = "entrada"
	MovimientoSalida  = "salida"
)

// MovimientoStock is an append-only ledger entry recording one inventory
// change. Created by manual adjustments, by product creation (initial stock)
// and by sale commits. Entries are NEVER updated or deleted.
type MovimientoStock struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductoID uuid.UUID `gorm:"type:uuid;not null;index"`
	Tipo       string    `gorm:"type:varchar(10);not null"` // "entrada" | "salida"
	Cantidad   int       `gorm:"not null"`                  // always > 0; Tipo carries the sign
	// StockAnterior / StockNuevo snapshot the product stock around the movement.
	StockAnterior int    `gorm:"not null"`
	StockNuevo    int    `gorm:"not null"`
	Motivo        string
	// Usuario is the acting-user label, "Sistema" for synthetic movements.
	Usuario   string `gorm:"not null;default:'Sistema'"`
	CreatedAt time.Time

	Producto *Producto `gorm:"foreignKey:ProductoID"`
}

// TableName overrides GORM's default pluralization (movimiento_stocks → movimientos_stock).
func (MovimientoStock) TableName() string { return "movimientos_stock" }
