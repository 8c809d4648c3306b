package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearClienteRequest struct {
	Nombre          string `json:"nombre"           validate:"required,min=2,max=100"`
	Apellido        string `json:"apellido"         validate:"required,min=2,max=100"`
	NumeroDocumento string `json:"numero_documento" validate:"required,min=5,max=20"`
	Email           string `json:"email"            validate:"required,email"`
	Telefono        string `json:"telefono"         validate:"required,max=20"`
	Direccion       string `json:"direccion"        validate:"required,max=255"`
}

type ActualizarClienteRequest struct {
	Nombre          *string `json:"nombre"           validate:"omitempty,min=2,max=100"`
	Apellido        *string `json:"apellido"         validate:"omitempty,min=2,max=100"`
	NumeroDocumento *string `json:"numero_documento" validate:"omitempty,min=5,max=20"`
	Email           *string `json:"email"            validate:"omitempty,email"`
	Telefono        *string `json:"telefono"         validate:"omitempty,max=20"`
	Direccion       *string `json:"direccion"        validate:"omitempty,max=255"`
}

// ─── Filter / Pagination ─────────────────────────────────────────────────────

// ClienteFilter is bound from the query string of GET /v1/clientes.
// Q filters by name substring, matching the original list view.
type ClienteFilter struct {
	Q     string `form:"q"`
	Page  int    `form:"page,default=1"   validate:"min=1"`
	Limit int    `form:"limit,default=20" validate:"min=1,max=100"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ClienteResponse struct {
	ID              string `json:"id"`
	Nombre          string `json:"nombre"`
	Apellido        string `json:"apellido"`
	NumeroDocumento string `json:"numero_documento"`
	Email           string `json:"email"`
	Telefono        string `json:"telefono"`
	Direccion       string `json:"direccion"`
	CreatedAt       string `json:"created_at"`
}

type ClienteListResponse struct {
	Data  []ClienteResponse `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}
