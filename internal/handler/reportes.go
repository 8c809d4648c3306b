package handler

import (
	"net/http"

	"gestor/internal/apierror"
	"gestor/internal/service"

	"github.com/gin-gonic/gin"
)

type ReportesHandler struct{ svc service.ReporteService }

func NewReportesHandler(svc service.ReporteService) *ReportesHandler {
	return &ReportesHandler{svc: svc}
}

// VentasDiarias returns the committed sales totals grouped by calendar day.
func (h *ReportesHandler) VentasDiarias(c *gin.Context) {
	serie, err := h.svc.VentasDiarias(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al generar el reporte"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": serie})
}
