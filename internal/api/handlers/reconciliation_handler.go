// internal/api/handlers/reconciliation_handler.go
package handlers

import (
	"fmt"
	"net/http"
	"time"

	"fiscal-service/internal/api/responses"
	"fiscal-service/internal/core/export"
	"fiscal-service/internal/core/reconciliation"
	"fiscal-service/internal/store"

	"github.com/gin-gonic/gin"
)

// ReconciliationHandler lida com consulta, conciliação e exportação dos
// registros acumulados.
type ReconciliationHandler struct {
	reconciliation reconciliation.Service
	export         export.Service
	store          *store.Store
}

// NewReconciliationHandler cria um novo handler de conciliação.
func NewReconciliationHandler(rec reconciliation.Service, exp export.Service, st *store.Store) *ReconciliationHandler {
	return &ReconciliationHandler{
		reconciliation: rec,
		export:         exp,
		store:          st,
	}
}

// HandleListRecords devolve o conteúdo atual do store.
func (h *ReconciliationHandler) HandleListRecords(c *gin.Context) {
	orderItems, darfItems := h.store.Snapshot()
	responses.Success(c, gin.H{
		"orderItems": orderItems,
		"darfItems":  darfItems,
	}, "Registros acumulados")
}

// HandleReconcile executa a conciliação sobre o conteúdo atual do store.
func (h *ReconciliationHandler) HandleReconcile(c *gin.Context) {
	orderItems, darfItems := h.store.Snapshot()
	unified := h.reconciliation.Reconcile(orderItems, darfItems)
	responses.Success(c, unified, "Conciliação executada")
}

// HandleExport gera o arquivo de conciliação no formato pedido
// (?format=csv|xlsx, padrão csv).
func (h *ReconciliationHandler) HandleExport(c *gin.Context) {
	orderItems, darfItems := h.store.Snapshot()
	unified := h.reconciliation.Reconcile(orderItems, darfItems)

	format := c.DefaultQuery("format", "csv")
	timestamp := time.Now().Format("20060102_150405")

	switch format {
	case "csv":
		output, err := h.export.UnifiedToCSV(unified)
		if err != nil {
			responses.Error(c, http.StatusInternalServerError, "Erro ao gerar o CSV de conciliação", err.Error())
			return
		}
		fileName := fmt.Sprintf("Conciliacao_%s.csv", timestamp)
		c.Header("Content-Disposition", "attachment; filename="+fileName)
		c.Data(http.StatusOK, "text/csv; charset=windows-1252", output)
	case "xlsx":
		output, err := h.export.UnifiedToXLSX(unified)
		if err != nil {
			responses.Error(c, http.StatusInternalServerError, "Erro ao gerar a planilha de conciliação", err.Error())
			return
		}
		fileName := fmt.Sprintf("Conciliacao_%s.xlsx", timestamp)
		c.Header("Content-Disposition", "attachment; filename="+fileName)
		c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", output)
	default:
		responses.Error(c, http.StatusBadRequest, fmt.Sprintf("Formato de exportação não suportado: %s", format))
	}
}

// HandleReset limpa obrigações e pagamentos de uma vez.
func (h *ReconciliationHandler) HandleReset(c *gin.Context) {
	h.store.Reset()
	responses.Success(c, nil, "Registros removidos")
}
