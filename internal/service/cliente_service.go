package service

import (
	"context"

	"gestor/internal/dto"
	"gestor/internal/model"
	"gestor/internal/repository"

	"github.com/google/uuid"
)

// ClienteService defines the business logic contract for customers.
type ClienteService interface {
	Crear(ctx context.Context, req dto.CrearClienteRequest) (*dto.ClienteResponse, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.ClienteResponse, error)
	Listar(ctx context.Context, filter dto.ClienteFilter) (*dto.ClienteListResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarClienteRequest) (*dto.ClienteResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error
}

type clienteService struct {
	repo      repository.ClienteRepository
	ventaRepo repository.VentaRepository
}

func NewClienteService(repo repository.ClienteRepository, ventaRepo repository.VentaRepository) ClienteService {
	return &clienteService{repo: repo, ventaRepo: ventaRepo}
}

func (s *clienteService) Crear(ctx context.Context, req dto.CrearClienteRequest) (*dto.ClienteResponse, error) {
	if _, err := s.repo.FindByDocumento(ctx, req.NumeroDocumento); err == nil {
		return nil, &UniquenessError{Campo: "numero_documento", Valor: req.NumeroDocumento}
	}

	cliente := model.Cliente{
		Nombre:          req.Nombre,
		Apellido:        req.Apellido,
		NumeroDocumento: req.NumeroDocumento,
		Email:           req.Email,
		Telefono:        req.Telefono,
		Direccion:       req.Direccion,
	}
	if err := s.repo.Create(ctx, &cliente); err != nil {
		return nil, err
	}
	return clienteToResponse(&cliente), nil
}

func (s *clienteService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.ClienteResponse, error) {
	cliente, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, &NotFoundError{Entidad: "Cliente"}
	}
	return clienteToResponse(cliente), nil
}

func (s *clienteService) Listar(ctx context.Context, filter dto.ClienteFilter) (*dto.ClienteListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}
	clientes, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.ClienteResponse, 0, len(clientes))
	for i := range clientes {
		data = append(data, *clienteToResponse(&clientes[i]))
	}
	return &dto.ClienteListResponse{Data: data, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *clienteService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarClienteRequest) (*dto.ClienteResponse, error) {
	cliente, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, &NotFoundError{Entidad: "Cliente"}
	}

	if req.NumeroDocumento != nil && *req.NumeroDocumento != cliente.NumeroDocumento {
		if _, err := s.repo.FindByDocumento(ctx, *req.NumeroDocumento); err == nil {
			return nil, &UniquenessError{Campo: "numero_documento", Valor: *req.NumeroDocumento}
		}
		cliente.NumeroDocumento = *req.NumeroDocumento
	}
	if req.Nombre != nil {
		cliente.Nombre = *req.Nombre
	}
	if req.Apellido != nil {
		cliente.Apellido = *req.Apellido
	}
	if req.Email != nil {
		cliente.Email = *req.Email
	}
	if req.Telefono != nil {
		cliente.Telefono = *req.Telefono
	}
	if req.Direccion != nil {
		cliente.Direccion = *req.Direccion
	}

	if err := s.repo.Update(ctx, cliente); err != nil {
		return nil, err
	}
	return clienteToResponse(cliente), nil
}

// Eliminar removes a customer unless any sale references it, in which case
// the delete is rejected and the record is retained.
func (s *clienteService) Eliminar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return &NotFoundError{Entidad: "Cliente"}
	}
	refs, err := s.ventaRepo.CountByCliente(ctx, id)
	if err != nil {
		return err
	}
	if refs > 0 {
		return &ReferentialIntegrityError{Entidad: "cliente", Referencias: refs}
	}
	return s.repo.Delete(ctx, id)
}

func clienteToResponse(c *model.Cliente) *dto.ClienteResponse {
	return &dto.ClienteResponse{
		ID:              c.ID.String(),
		Nombre:          c.Nombre,
		Apellido:        c.Apellido,
		NumeroDocumento: c.NumeroDocumento,
		Email:           c.Email,
		Telefono:        c.Telefono,
		Direccion:       c.Direccion,
		CreatedAt:       c.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
