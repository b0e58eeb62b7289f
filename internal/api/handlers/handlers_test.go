package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"fiscal-service/internal/api/responses"
	"fiscal-service/internal/core/export"
	"fiscal-service/internal/core/extraction"
	"fiscal-service/internal/core/reconciliation"
	"fiscal-service/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestRouter() (*gin.Engine, *store.Store) {
	gin.SetMode(gin.TestMode)
	responses.InitLogger()
	logger := zap.NewNop()

	recordStore := store.NewStore()
	extractionHandler := NewExtractionHandler(extraction.NewService(logger), recordStore)
	reconciliationHandler := NewReconciliationHandler(
		reconciliation.NewService(logger), export.NewService(), recordStore)

	router := gin.New()
	apiV1 := router.Group("/api/v1")
	{
		apiV1.POST("/extraction/situacao-fiscal", extractionHandler.HandleSituacaoFiscal)
		apiV1.POST("/extraction/darf", extractionHandler.HandleDarf)
		apiV1.GET("/records", reconciliationHandler.HandleListRecords)
		apiV1.DELETE("/records", reconciliationHandler.HandleReset)
		apiV1.GET("/reconciliation", reconciliationHandler.HandleReconcile)
		apiV1.GET("/reconciliation/export", reconciliationHandler.HandleExport)
	}
	return router, recordStore
}

func uploadTextFile(t *testing.T, router *gin.Engine, path, content string) *httptest.ResponseRecorder {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("textFile", "documento.txt")
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandleSituacaoFiscalAcumulaNoStore(t *testing.T) {
	router, recordStore := newTestRouter()

	text := strings.Join([]string{
		"Pendência - Débito (SIEF)",
		"CNPJ: 03.367.118/0001-40",
		"8109-02 - PIS",
		"01/2025",
		"25/02/2025",
		"42.739,17",
		"42.739,17",
		"DEVEDOR",
		"Final do Relatório",
	}, "\n")

	rec := uploadTextFile(t, router, "/api/v1/extraction/situacao-fiscal", text)
	assert.Equal(t, http.StatusOK, rec.Code)

	orders, _ := recordStore.Snapshot()
	require.Len(t, orders, 1)
	assert.Equal(t, "8109-02 - PIS", orders[0].Code)
}

func TestHandleSituacaoFiscalSemArquivo(t *testing.T) {
	router, _ := newTestRouter()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/extraction/situacao-fiscal", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestFluxoExtracaoEConciliacao(t *testing.T) {
	router, _ := newTestRouter()

	relatorio := strings.Join([]string{
		"Pendência - Débito (SIEF)",
		"CNPJ: 12.345.678/0001-99",
		"8109-02 - PIS",
		"01/2025",
		"25/02/2025",
		"1.015,00",
		"1.015,00",
		"DEVEDOR",
		"Final do Relatório",
	}, "\n")
	darf := strings.Join([]string{
		"CNPJ: 12.345.678/0001-99",
		"Data de Arrecadação: 20/02/2025",
		"Composição do Documento de Arrecadação",
		"Código Denominação Principal Multa Juros Total",
		"8109 PIS 1.000,00 10,00 5,00 1.015,00",
		"PIS - PROGRAMA DE INTEGRAÇÃO SOCIAL",
		"PA 01/2025 Vencimento 25/02/2025",
		"Total do Documento",
	}, "\n")

	assert.Equal(t, http.StatusOK, uploadTextFile(t, router, "/api/v1/extraction/situacao-fiscal", relatorio).Code)
	assert.Equal(t, http.StatusOK, uploadTextFile(t, router, "/api/v1/extraction/darf", darf).Code)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/reconciliation", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var envelope struct {
		Status string            `json:"status"`
		Data   []json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, "success", envelope.Status)
	require.Len(t, envelope.Data, 1)
	assert.Contains(t, string(envelope.Data[0]), `"payment_status":"Paid"`)
}

func TestHandleResetLimpaStore(t *testing.T) {
	router, recordStore := newTestRouter()

	relatorio := strings.Join([]string{
		"Pendência - Débito (SIEF)",
		"CNPJ: 12.345.678/0001-99",
		"SIMPLES NAC.",
		"Final do Relatório",
	}, "\n")
	uploadTextFile(t, router, "/api/v1/extraction/situacao-fiscal", relatorio)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/records", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	orders, darfs := recordStore.Snapshot()
	assert.Empty(t, orders)
	assert.Empty(t, darfs)
}

func TestHandleExportCSV(t *testing.T) {
	router, _ := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/reconciliation/export?format=csv", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "Conciliacao_")
	assert.True(t, strings.HasPrefix(rec.Body.String(), "CNPJ;Tipo;"))
}

func TestHandleExportFormatoInvalido(t *testing.T) {
	router, _ := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/reconciliation/export?format=pdf", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
