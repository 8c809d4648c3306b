package service

import (
	"context"
	"encoding/json"
	"time"

	"gestor/internal/dto"
	"gestor/internal/model"
	"gestor/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	reporteDiarioCacheKey = "reportes:ventas_diarias"
	reporteDiarioCacheTTL = 60 * time.Second
)

// ReporteService is the read-side collaborator: receipt rendering and the
// daily sales totals series.
type ReporteService interface {
	GenerarRecibo(ctx context.Context, ventaID uuid.UUID) (string, error)
	VentasDiarias(ctx context.Context) ([]dto.VentaDiaria, error)
}

type reporteService struct {
	ventaRepo repository.VentaRepository
	render    RenderReciboFunc
	rdb       *redis.Client // nil disables caching
}

// RenderReciboFunc writes the printable receipt document for a sale and
// returns its path. Pure read-side: a renderer failure must never affect
// persisted data.
type RenderReciboFunc func(venta *model.Venta) (string, error)

func NewReporteService(ventaRepo repository.VentaRepository, render RenderReciboFunc, rdb *redis.Client) ReporteService {
	return &reporteService{ventaRepo: ventaRepo, render: render, rdb: rdb}
}

// GenerarRecibo renders the receipt for a committed sale. Rendering failures
// come back as RenderingError and leave all persisted data untouched.
func (s *reporteService) GenerarRecibo(ctx context.Context, ventaID uuid.UUID) (string, error) {
	venta, err := s.ventaRepo.FindByID(ctx, ventaID)
	if err != nil {
		return "", &NotFoundError{Entidad: "Venta"}
	}
	path, err := s.render(venta)
	if err != nil {
		return "", &RenderingError{Err: err}
	}
	return path, nil
}

// VentasDiarias returns (date, total) pairs of committed sales grouped by
// calendar day, chronological. The series is cached briefly; sale commits
// invalidate the cache.
func (s *reporteService) VentasDiarias(ctx context.Context) ([]dto.VentaDiaria, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, reporteDiarioCacheKey).Bytes(); err == nil {
			var serie []dto.VentaDiaria
			if json.Unmarshal(cached, &serie) == nil {
				return serie, nil
			}
		}
	}

	serie, err := s.ventaRepo.DailyTotals(ctx)
	if err != nil {
		return nil, err
	}

	if s.rdb != nil {
		if payload, err := json.Marshal(serie); err == nil {
			if err := s.rdb.Set(ctx, reporteDiarioCacheKey, payload, reporteDiarioCacheTTL).Err(); err != nil {
				log.Warn().Err(err).Msg("no se pudo cachear el reporte de ventas diarias")
			}
		}
	}
	return serie, nil
}
