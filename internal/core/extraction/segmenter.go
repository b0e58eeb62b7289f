// internal/core/extraction/segmenter.go
package extraction

import (
	"regexp"
	"strings"

	"fiscal-service/internal/domain"
)

// Tabela de padrões de início de seção, na ordem em que são testados.
// A primeira que casar define o tipo da seção.
var sectionStartPatterns = []struct {
	kind    domain.SectionKind
	pattern *regexp.Regexp
}{
	{domain.SectionPendenciaDebito, regexp.MustCompile(`(?i)(?:Pendência|Pendencia)[\s-]*(?:Débito|Debito)[\s-]*\(SIEF\)`)},
	{domain.SectionDebitoExigSuspensa, regexp.MustCompile(`(?i)(?:Débito|Debito)\s+com\s+Exigibilidade\s+Suspensa\s+\(SIEF\)`)},
	{domain.SectionDebitoSicob, regexp.MustCompile(`(?i)(?:Débito|Debito)\s+com\s+Exigibilidade\s+Suspensa\s+\(SICOB\)`)},
	{domain.SectionParcelamentoSiefpar, regexp.MustCompile(`(?i)Parcelamento\s+com\s+Exigibilidade\s+Suspensa\s+\(SIEFPAR\)`)},
	{domain.SectionParcelamentoSipade, regexp.MustCompile(`(?i)Parcelamento\s+com\s+Exigibilidade\s+Suspensa\s+\(SIPADE\)`)},
	{domain.SectionProcessoFiscal, regexp.MustCompile(`(?i)Processo\s+Fiscal\s+com\s+Exigibilidade\s+Suspensa\s+\(SIEF\)`)},
	{domain.SectionInscricaoSida, regexp.MustCompile(`(?i)(?:Inscrição|Inscricao)\s+com\s+Exigibilidade\s+Suspensa\s+\(SIDA\)`)},
	{domain.SectionPendenciaSispar, regexp.MustCompile(`(?i)(?:Pendência|Pendencia)\s+-\s+Parcelamento\s+\(SISPAR\)`)},
}

// Marcadores que encerram a seção aberta sem abrir outra: fim do relatório,
// mudança para a parte da Procuradoria e linhas-régua de underscores.
var sectionTerminalPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)Final\s+do\s+Relatório`),
	regexp.MustCompile(`(?i)Diagnóstico\s+Fiscal\s+na\s+Procuradoria-Geral`),
	regexp.MustCompile(`^\s*_{10,}\s*$`),
}

// Cabeçalhos de seções não mapeadas também fecham a seção corrente. Os
// prefixos são longos de propósito: "Parcelamento:" e "Processo:" iniciam
// registros dentro de seções e não podem fechar nada.
var sectionBoundaryPattern = regexp.MustCompile(`(?i)^(?:(?:Pendência|Pendencia)\s+-|Parcelamento\s+com\s+Exigibilidade|Processo\s+Fiscal\s+com|(?:Inscrição|Inscricao)\s+com\s+Exigibilidade|(?:Débito|Debito)\s+com\s+Exigibilidade)`)

func matchSectionStart(line string) (domain.SectionKind, bool) {
	for _, entry := range sectionStartPatterns {
		if entry.pattern.MatchString(line) {
			return entry.kind, true
		}
	}
	return "", false
}

func isTerminalLine(line string) bool {
	for _, pattern := range sectionTerminalPatterns {
		if pattern.MatchString(line) {
			return true
		}
	}
	return false
}

// segment percorre as linhas normalizadas e produz as seções reconhecidas,
// na ordem do documento. Ocorrências repetidas do mesmo tipo viram seções
// independentes. Fim de entrada fecha a seção aberta sem descartar linhas.
func (svc *service) segment(lines []string) []domain.Section {
	var sections []domain.Section
	var current *domain.Section

	closeCurrent := func() {
		if current != nil {
			sections = append(sections, *current)
			current = nil
		}
	}

	for _, raw := range lines {
		line := strings.TrimSpace(raw)

		if kind, ok := matchSectionStart(line); ok {
			closeCurrent()
			current = &domain.Section{Kind: kind}
			continue
		}
		if current == nil {
			continue
		}
		if isTerminalLine(line) || sectionBoundaryPattern.MatchString(line) {
			closeCurrent()
			continue
		}
		current.Lines = append(current.Lines, line)
	}
	closeCurrent()

	return sections
}
