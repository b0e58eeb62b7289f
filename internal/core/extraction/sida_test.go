package extraction

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractInscricoesSidaLinhaCompleta(t *testing.T) {
	svc := newTestService()

	text := strings.Join([]string{
		"Inscrição com Exigibilidade Suspensa (SIDA)",
		"CNPJ: 03.367.118/0001-40",
		"80.6.05.000123-45 0108-IRPJ 15/03/2020 - DEVEDOR PRINCIPAL",
		"12345.678901/2020-99",
		"Situação: PARCELADA",
		"Final do Relatório",
	}, "\n")

	data, orderItems := svc.ExtractSituacaoFiscal(text, "relatorio.txt")

	require.Len(t, data.PendenciasInscricao, 1)
	insc := data.PendenciasInscricao[0]
	assert.Equal(t, "80.6.05.000123-45", insc.Inscricao)
	assert.Equal(t, "0108-IRPJ", insc.Receita)
	assert.Equal(t, "2020-03-15", insc.InscritoEm)
	assert.Equal(t, "", insc.AjuizadoEm)
	assert.Equal(t, "12345.678901/2020-99", insc.Processo)
	assert.Equal(t, "DEVEDOR PRINCIPAL", insc.TipoDevedor)
	assert.Equal(t, "DEVEDOR PRINCIPAL", insc.DevedorPrincipal)
	assert.Equal(t, "PARCELADA", insc.Situacao)

	require.Len(t, orderItems, 1)
	assert.Equal(t, "PENDENCIA_INSCRICAO_SIDA", orderItems[0].TaxType)
	assert.Equal(t, "0108-IRPJ", orderItems[0].Code)
}

func TestExtractInscricoesSidaCorresponsavel(t *testing.T) {
	svc := newTestService()

	text := strings.Join([]string{
		"Inscrição com Exigibilidade Suspensa (SIDA)",
		"CNPJ: 03.367.118/0001-40",
		"80.6.05.000123-45 0108-IRPJ 15/03/2020 10/06/2021 CORRESPONSÁVEL",
		"Devedor Principal: EMPRESA EXEMPLO LTDA",
		"Final do Relatório",
	}, "\n")

	data, _ := svc.ExtractSituacaoFiscal(text, "relatorio.txt")

	require.Len(t, data.PendenciasInscricao, 1)
	insc := data.PendenciasInscricao[0]
	assert.Equal(t, "2021-06-10", insc.AjuizadoEm)
	assert.Equal(t, "CORRESPONSÁVEL", insc.TipoDevedor)
	assert.Equal(t, "EMPRESA EXEMPLO LTDA", insc.DevedorPrincipal)
}

func TestExtractInscricoesSidaIncompletaDescartada(t *testing.T) {
	svc := newTestService()

	text := strings.Join([]string{
		"Inscrição com Exigibilidade Suspensa (SIDA)",
		"CNPJ: 03.367.118/0001-40",
		"80.6.05.000123-45",
		"Final do Relatório",
	}, "\n")

	data, _ := svc.ExtractSituacaoFiscal(text, "relatorio.txt")
	assert.Empty(t, data.PendenciasInscricao)
}
