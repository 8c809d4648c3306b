package service

import (
	"errors"
	"fmt"
)

// Typed domain errors. Handlers map these to HTTP statuses; everything else
// surfaces as a generic request error. None of them is process-fatal.

// ErrVentaSinItems rejects a sale whose line set is empty after dropping
// the rows marked for removal.
var ErrVentaSinItems = errors.New("La venta debe incluir al menos un item")

// NotFoundError signals that the referenced record does not exist.
type NotFoundError struct {
	Entidad string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s no encontrado", e.Entidad)
}

// UniquenessError signals a duplicate value on a unique field
// (customer document number, product SKU, sale code).
type UniquenessError struct {
	Campo string
	Valor string
}

func (e *UniquenessError) Error() string {
	return fmt.Sprintf("Ya existe un registro con %s %q", e.Campo, e.Valor)
}

// ReferentialIntegrityError blocks a delete while live references exist.
// The record is retained and stays queryable.
type ReferentialIntegrityError struct {
	Entidad     string
	Referencias int64
}

func (e *ReferentialIntegrityError) Error() string {
	return fmt.Sprintf("No se puede eliminar el %s: está referenciado por %d venta(s)", e.Entidad, e.Referencias)
}

// InsufficientStockError rejects an exit movement or sale line whose quantity
// exceeds the product's on-hand stock. Disponible carries the quantity the
// caller may still request.
type InsufficientStockError struct {
	Producto   string
	Disponible int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("No hay stock suficiente para %s. Disponible: %d", e.Producto, e.Disponible)
}

// RenderingError wraps a receipt-generation failure. Persisted data is never
// affected by a rendering failure.
type RenderingError struct {
	Err error
}

func (e *RenderingError) Error() string { return "Error al generar el recibo" }
func (e *RenderingError) Unwrap() error { return e.Err }
