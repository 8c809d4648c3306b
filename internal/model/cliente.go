package model

import (
	"time"

	"github.com/google/uuid"
)

// Cliente represents a customer that can be referenced by sales.
// NumeroDocumento is unique across all customers.
type Cliente struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre          string    `gorm:"index;not null"`
	Apellido        string    `gorm:"not null"`
	NumeroDocumento string    `gorm:"uniqueIndex;not null"`
	Email           string
	Telefono        string
	Direccion       string
	CreatedAt       time.Time
	UpdatedAt       time.Time

	Ventas []Venta `gorm:"foreignKey:ClienteID"`
}

// TableName overrides GORM's default pluralization for Spanish names.
func (Cliente) TableName() string { return "clientes" }
