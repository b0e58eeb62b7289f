package extraction

import (
	"testing"

	"fiscal-service/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSegmentReconheceSecoes(t *testing.T) {
	svc := newTestService()

	lines := []string{
		"Pendência - Débito (SIEF)",
		"CNPJ: 03.367.118/0001-40",
		"8109-02 - PIS",
		"Parcelamento com Exigibilidade Suspensa (SIEFPAR)",
		"Parcelamento: 12345",
		"Final do Relatório",
	}
	sections := svc.segment(lines)

	require.Len(t, sections, 2)
	assert.Equal(t, domain.SectionPendenciaDebito, sections[0].Kind)
	assert.Equal(t, []string{"CNPJ: 03.367.118/0001-40", "8109-02 - PIS"}, sections[0].Lines)
	assert.Equal(t, domain.SectionParcelamentoSiefpar, sections[1].Kind)
	assert.Equal(t, []string{"Parcelamento: 12345"}, sections[1].Lines)
}

func TestSegmentNaoDescartaSecaoAbertaNoFim(t *testing.T) {
	svc := newTestService()

	lines := []string{
		"texto solto",
		"Inscrição com Exigibilidade Suspensa (SIDA)",
		"CNPJ: 03.367.118/0001-40",
		"11.1.11.111111-11",
	}
	sections := svc.segment(lines)

	require.Len(t, sections, 1)
	assert.Equal(t, domain.SectionInscricaoSida, sections[0].Kind)
	assert.Equal(t, []string{"CNPJ: 03.367.118/0001-40", "11.1.11.111111-11"}, sections[0].Lines)
}

func TestSegmentOcorrenciasRepetidasViramSecoesIndependentes(t *testing.T) {
	svc := newTestService()

	lines := []string{
		"Pendência - Débito (SIEF)",
		"pagina um",
		"________________",
		"Pendência - Débito (SIEF)",
		"pagina dois",
	}
	sections := svc.segment(lines)

	require.Len(t, sections, 2)
	assert.Equal(t, domain.SectionPendenciaDebito, sections[0].Kind)
	assert.Equal(t, domain.SectionPendenciaDebito, sections[1].Kind)
	assert.Equal(t, []string{"pagina um"}, sections[0].Lines)
	assert.Equal(t, []string{"pagina dois"}, sections[1].Lines)
}

func TestSegmentFechaNaMudancaParaProcuradoria(t *testing.T) {
	svc := newTestService()

	lines := []string{
		"Débito com Exigibilidade Suspensa (SIEF)",
		"CNPJ: 03.367.118/0001-40",
		"Diagnóstico Fiscal na Procuradoria-Geral",
		"conteúdo posterior ignorado",
	}
	sections := svc.segment(lines)

	require.Len(t, sections, 1)
	assert.Equal(t, domain.SectionDebitoExigSuspensa, sections[0].Kind)
	assert.Equal(t, []string{"CNPJ: 03.367.118/0001-40"}, sections[0].Lines)
}

func TestSegmentRegistroParcelamentoNaoFechaSecao(t *testing.T) {
	svc := newTestService()

	lines := []string{
		"Parcelamento com Exigibilidade Suspensa (SIEFPAR)",
		"CNPJ: 03.367.118/0001-40",
		"Parcelamento: 99887",
		"Valor Suspenso: 1.000,00",
		"MODALIDADE X",
	}
	sections := svc.segment(lines)

	require.Len(t, sections, 1)
	assert.Len(t, sections[0].Lines, 4)
}
