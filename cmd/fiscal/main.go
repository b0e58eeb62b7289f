// cmd/fiscal/main.go
package main

import (
	"log"
	"os"

	"fiscal-service/internal/api/handlers"
	"fiscal-service/internal/api/responses"
	"fiscal-service/internal/core/export"
	"fiscal-service/internal/core/extraction"
	"fiscal-service/internal/core/reconciliation"
	"fiscal-service/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Print("Arquivo .env não encontrado, prosseguindo com variáveis de ambiente")
	}

	responses.InitLogger()
	logger := responses.Logger()

	recordStore := store.NewStore()
	extractionService := extraction.NewService(logger)
	reconciliationService := reconciliation.NewService(logger)
	exportService := export.NewService()

	extractionHandler := handlers.NewExtractionHandler(extractionService, recordStore)
	reconciliationHandler := handlers.NewReconciliationHandler(reconciliationService, exportService, recordStore)

	router := gin.Default()

	apiV1 := router.Group("/api/v1")
	{
		apiV1.POST("/extraction/situacao-fiscal", extractionHandler.HandleSituacaoFiscal)
		apiV1.POST("/extraction/darf", extractionHandler.HandleDarf)
		apiV1.GET("/records", reconciliationHandler.HandleListRecords)
		apiV1.DELETE("/records", reconciliationHandler.HandleReset)
		apiV1.GET("/reconciliation", reconciliationHandler.HandleReconcile)
		apiV1.GET("/reconciliation/export", reconciliationHandler.HandleExport)
	}

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "UP", "service": "fiscal-service"})
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8082"
	}
	log.Printf("🚀 Fiscal Service (Go) iniciado e escutando na porta %s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatal("Falha ao iniciar o servidor fiscal: ", err)
	}
}
