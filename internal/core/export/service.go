// internal/core/export/service.go
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"

	"fiscal-service/internal/domain"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// Service define o contrato de exportação do resultado da conciliação.
type Service interface {
	// UnifiedToCSV gera CSV com ponto e vírgula em Windows-1252, o formato
	// aceito pelos sistemas contábeis que consomem o arquivo.
	UnifiedToCSV(records []domain.UnifiedRecord) ([]byte, error)
	// UnifiedToXLSX gera uma planilha com uma linha por registro.
	UnifiedToXLSX(records []domain.UnifiedRecord) ([]byte, error)
}

type service struct{}

// NewService cria um novo serviço de exportação.
func NewService() Service {
	return &service{}
}

var exportHeader = []string{
	"CNPJ", "Tipo", "Código", "Período", "Vencimento",
	"Vl. Original", "Sdo. Devedor", "Multa", "Juros", "Sdo. Dev. Cons.",
	"Situação", "Status Pagamento", "Código Pago", "Período Pago",
	"Data Arrecadação", "Principal Pago", "Multa Paga", "Juros Pagos",
	"Total Pago", "Discrepâncias",
}

func (svc *service) formatTwoDecimalsComma(val float64) string {
	return strings.Replace(fmt.Sprintf("%.2f", val), ".", ",", 1)
}

func (svc *service) recordToRow(r domain.UnifiedRecord) []string {
	return []string{
		r.Cnpj,
		r.TaxType,
		r.Code,
		r.StartPeriod,
		r.DueDate,
		svc.formatTwoDecimalsComma(r.OriginalValue),
		svc.formatTwoDecimalsComma(r.CurrentBalance),
		svc.formatTwoDecimalsComma(r.Fine),
		svc.formatTwoDecimalsComma(r.Interest),
		svc.formatTwoDecimalsComma(r.SaldoDevedorConsolidado),
		r.Status,
		string(r.PaymentStatus),
		r.PaymentCode,
		r.PaymentPeriod,
		r.PaymentDate,
		svc.formatTwoDecimalsComma(r.PaidPrincipal),
		svc.formatTwoDecimalsComma(r.PaidFine),
		svc.formatTwoDecimalsComma(r.PaidInterest),
		svc.formatTwoDecimalsComma(r.PaidTotal),
		strings.Join(r.DiscrepancyNotes, " "),
	}
}

func (svc *service) UnifiedToCSV(records []domain.UnifiedRecord) ([]byte, error) {
	var buffer bytes.Buffer
	encoder := charmap.Windows1252.NewEncoder()
	writer := csv.NewWriter(transform.NewWriter(&buffer, encoder))
	writer.Comma = ';'

	if err := writer.Write(exportHeader); err != nil {
		return nil, err
	}
	for _, record := range records {
		if err := writer.Write(svc.recordToRow(record)); err != nil {
			return nil, err
		}
	}

	writer.Flush()
	return buffer.Bytes(), writer.Error()
}

func (svc *service) UnifiedToXLSX(records []domain.UnifiedRecord) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Conciliação"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	header := make([]interface{}, len(exportHeader))
	for i, h := range exportHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, err
	}

	for idx, record := range records {
		row := svc.recordToRow(record)
		cells := make([]interface{}, len(row))
		for i, v := range row {
			cells[i] = v
		}
		cell, err := excelize.CoordinatesToCellName(1, idx+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
			return nil, err
		}
	}

	var buffer bytes.Buffer
	if err := f.Write(&buffer); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}
