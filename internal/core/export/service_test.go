package export

import (
	"bytes"
	"testing"

	"fiscal-service/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func registroExemplo() domain.UnifiedRecord {
	return domain.UnifiedRecord{
		OrderItem: domain.OrderItem{
			ID:            "1",
			Code:          "8109-02 - PIS",
			TaxType:       domain.TaxTypeDebito,
			Cnpj:          "03.367.118/0001-40",
			StartPeriod:   "01/2025",
			DueDate:       "2025-02-25",
			OriginalValue: 42739.17,
			Status:        "DEVEDOR",
		},
		PaymentStatus:    domain.StatusUnpaid,
		DiscrepancyNotes: []string{},
	}
}

func TestUnifiedToCSV(t *testing.T) {
	svc := NewService()

	output, err := svc.UnifiedToCSV([]domain.UnifiedRecord{registroExemplo()})
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(output, []byte("CNPJ;Tipo;")))
	assert.Contains(t, string(output), "8109-02 - PIS")
	assert.Contains(t, string(output), "42739,17")
	assert.Contains(t, string(output), "Unpaid")
}

func TestUnifiedToCSVSemRegistros(t *testing.T) {
	svc := NewService()

	output, err := svc.UnifiedToCSV(nil)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(output, []byte("CNPJ;Tipo;")))
}

func TestUnifiedToXLSX(t *testing.T) {
	svc := NewService()

	output, err := svc.UnifiedToXLSX([]domain.UnifiedRecord{registroExemplo()})
	require.NoError(t, err)
	assert.NotEmpty(t, output)
	// Arquivo xlsx é um zip: assinatura PK.
	assert.True(t, bytes.HasPrefix(output, []byte("PK")))
}
