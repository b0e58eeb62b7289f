// internal/api/handlers/extraction_handler.go
package handlers

import (
	"io"
	"net/http"

	"fiscal-service/internal/api/responses"
	"fiscal-service/internal/core/extraction"
	"fiscal-service/internal/store"

	"github.com/gin-gonic/gin"
)

// ExtractionHandler lida com os uploads de texto extraído de documentos
// fiscais.
type ExtractionHandler struct {
	service extraction.Service
	store   *store.Store
}

// NewExtractionHandler cria um novo handler de extração.
func NewExtractionHandler(service extraction.Service, st *store.Store) *ExtractionHandler {
	return &ExtractionHandler{
		service: service,
		store:   st,
	}
}

// readTextFile lê o conteúdo do campo multipart "textFile".
func readTextFile(c *gin.Context) (string, string, bool) {
	fileHeader, err := c.FormFile("textFile")
	if err != nil {
		responses.Error(c, http.StatusBadRequest, "Arquivo de texto (textFile) não encontrado ou inválido")
		return "", "", false
	}
	file, err := fileHeader.Open()
	if err != nil {
		responses.Error(c, http.StatusInternalServerError, "Não foi possível abrir o arquivo de texto")
		return "", "", false
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		responses.Error(c, http.StatusInternalServerError, "Não foi possível ler o arquivo de texto")
		return "", "", false
	}
	return string(content), fileHeader.Filename, true
}

// HandleSituacaoFiscal extrai um relatório de situação fiscal e acumula as
// obrigações no store.
func (h *ExtractionHandler) HandleSituacaoFiscal(c *gin.Context) {
	text, filename, ok := readTextFile(c)
	if !ok {
		return
	}

	data, orderItems := h.service.ExtractSituacaoFiscal(text, filename)
	h.store.AppendOrderItems(orderItems)

	responses.Success(c, gin.H{
		"situacaoFiscal": data,
		"orderItems":     orderItems,
	}, "Relatório de situação fiscal processado")
}

// HandleDarf extrai um comprovante DARF e acumula os pagamentos no store.
func (h *ExtractionHandler) HandleDarf(c *gin.Context) {
	text, filename, ok := readTextFile(c)
	if !ok {
		return
	}

	items := h.service.ExtractDarf(text, filename)
	h.store.AppendDarfItems(items)

	responses.Success(c, gin.H{"darfItems": items}, "Comprovante DARF processado")
}
