package extraction

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractDarfFormatoCodigoSozinho(t *testing.T) {
	svc := newTestService()

	text := strings.Join([]string{
		"CNPJ: 12.345.678/0001-99",
		"Data de Arrecadação: 10/02/2025",
		"Composição do Documento de Arrecadação",
		"Código Denominação Principal Multa Juros Total",
		"0220",
		"IRPJ",
		"1.000,00",
		"10,00",
		"5,00",
		"1.015,00",
		"IRPJ - IMPOSTO SOBRE A RENDA DA PESSOA JURÍDICA",
		"PA 01/2025 Vencimento 31/01/2025",
		"Total do Documento",
	}, "\n")

	items := svc.ExtractDarf(text, "darf.txt")

	require.Len(t, items, 1)
	item := items[0]
	assert.Equal(t, "0220", item.Codigo)
	assert.Equal(t, "IRPJ", item.Denominacao)
	assert.Equal(t, "01/2025", item.PeriodoApuracao)
	assert.Equal(t, "31/01/2025", item.Vencimento)
	assert.InDelta(t, 1000.0, item.Principal, 1e-9)
	assert.InDelta(t, 10.0, item.Multa, 1e-9)
	assert.InDelta(t, 5.0, item.Juros, 1e-9)
	assert.InDelta(t, 1015.0, item.Total, 1e-9)
	assert.Equal(t, "12.345.678/0001-99", item.Cnpj)
	assert.Equal(t, "2025-02-10", item.DataArrecadacao)
	assert.Equal(t, "darf.txt", item.SourceFile)
}

func TestExtractDarfDuasSecoesIndependentes(t *testing.T) {
	svc := newTestService()

	text := strings.Join([]string{
		"CNPJ: 12.345.678/0001-99",
		"Data de Arrecadação: 10/02/2025",
		"Composição do Documento de Arrecadação",
		"Código Denominação Principal Multa Juros Total",
		"0220 IRPJ 1.000,00 10,00 5,00 1.015,00",
		"IRPJ - IMPOSTO SOBRE A RENDA DA PESSOA JURÍDICA",
		"PA 01/2025 Vencimento 31/01/2025",
		"Total do Documento",
		"Composição do Documento de Arrecadação",
		"Código Denominação Principal Multa Juros Total",
		"5856 CSLL 2.000,00 0,00 0,00 2.000,00",
		"CSLL - CONTRIBUIÇÃO SOCIAL SOBRE O LUCRO LÍQUIDO",
		"PA 01/2025 Vencimento 31/01/2025",
		"Total do Documento",
	}, "\n")

	items := svc.ExtractDarf(text, "darf.txt")

	require.Len(t, items, 2)
	assert.Equal(t, "0220", items[0].Codigo)
	assert.Equal(t, "IRPJ", items[0].Denominacao)
	assert.Equal(t, "5856", items[1].Codigo)
	assert.Equal(t, "CSLL", items[1].Denominacao)
	assert.InDelta(t, 2000.0, items[1].Total, 1e-9)
}

func TestExtractDarfLinhaIncompletaDescartada(t *testing.T) {
	svc := newTestService()

	// Sem a linha "PA ... Vencimento ...": o item não pode ser montado.
	text := strings.Join([]string{
		"Composição do Documento de Arrecadação",
		"1234 ALGUMA COISA 1,00 0,00 0,00 1,00",
		"descrição longa",
		"linha sem período",
		"Total do Documento",
	}, "\n")

	items := svc.ExtractDarf(text, "darf.txt")
	assert.Empty(t, items)
}

func TestExtractDarfTextoVazio(t *testing.T) {
	svc := newTestService()
	assert.Empty(t, svc.ExtractDarf("", "vazio.txt"))
}

func TestExtractDarfParaNoTotalDoDocumento(t *testing.T) {
	svc := newTestService()

	text := strings.Join([]string{
		"Composição do Documento de Arrecadação",
		"Total do Documento",
		"0220 IRPJ 1.000,00 10,00 5,00 1.015,00",
		"IRPJ",
		"PA 01/2025 Vencimento 31/01/2025",
	}, "\n")

	items := svc.ExtractDarf(text, "darf.txt")
	assert.Empty(t, items)
}
