// internal/core/extraction/darf.go
package extraction

import (
	"regexp"
	"strings"

	"fiscal-service/internal/domain"

	"go.uber.org/zap"
)

var (
	composicaoStartRegex  = regexp.MustCompile(`(?i)Composição\s+do\s+Documento\s+de\s+Arrecadação`)
	composicaoHeaderRegex = regexp.MustCompile(`(?i)Código\s+Denominação\s+Principal\s+Multa\s+Juros\s+Total`)
	codigoOnlyRegex       = regexp.MustCompile(`^(\d{4})$`)
	codigoInlineRegex     = regexp.MustCompile(`^(\d{4})\s+(.+?)\s+([\d.,]+)\s+([\d.,]+)\s+([\d.,]+)\s+([\d.,]+)$`)
	paRegex               = regexp.MustCompile(`PA\s+(\d{2}/\d{2}/\d{4}|\d{2}/\d{4})`)
	vencimentoDarfRegex   = regexp.MustCompile(`Vencimento\s+(\d{2}/\d{2}/\d{4})`)
	arrecadacaoRegex      = regexp.MustCompile(`(?i)Data\s+de\s+Arrecada[çc][ãa]o:?\s*(\d{2}/\d{2}/\d{4})?`)
)

func isDarfTerminalLine(line string) bool {
	return line == "" ||
		strings.HasPrefix(line, "Total do Documento") ||
		strings.HasPrefix(line, "VENCIMENTO") ||
		strings.HasPrefix(line, "AUTENTICAÇÃO")
}

// documentContext captura o CNPJ e a data de arrecadação do cabeçalho do
// comprovante, que valem para todas as linhas da composição.
func (svc *service) darfDocumentContext(lines []string) (cnpj, dataArrecadacao string) {
	for idx, raw := range lines {
		line := strings.TrimSpace(raw)
		if cnpj == "" {
			if m := cnpjRegex.FindStringSubmatch(line); m != nil {
				cnpj = m[1]
			} else if m := cpfRegex.FindStringSubmatch(line); m != nil {
				cnpj = m[1]
			}
		}
		if dataArrecadacao == "" {
			if m := arrecadacaoRegex.FindStringSubmatch(line); m != nil {
				if m[1] != "" {
					dataArrecadacao = svc.formatDate(m[1])
				} else {
					// Data na linha seguinte ao rótulo.
					for j := idx + 1; j < len(lines) && j <= idx+2; j++ {
						next := strings.TrimSpace(lines[j])
						if next == "" {
							continue
						}
						if vencimentoShapeRegex.MatchString(next) {
							dataArrecadacao = svc.formatDate(next)
						}
						break
					}
				}
			}
		}
		if cnpj != "" && dataArrecadacao != "" {
			break
		}
	}
	return cnpj, dataArrecadacao
}

// extractDarfItems extrai todas as tabelas "Composição do Documento de
// Arrecadação" de um comprovante DARF. Cada tabela é uma região
// independente (comprovantes de várias páginas repetem o marcador) e cada
// linha pode vir em dois layouts: código sozinho seguido de sete linhas, ou
// código, denominação e os quatro valores na mesma linha seguidos de duas.
func (svc *service) extractDarfItems(lines []string, sourceFile string) []domain.DarfItem {
	var result []domain.DarfItem

	cnpj, dataArrecadacao := svc.darfDocumentContext(lines)

	var sectionStarts []int
	for i, raw := range lines {
		if composicaoStartRegex.MatchString(strings.TrimSpace(raw)) {
			sectionStarts = append(sectionStarts, i)
		}
	}
	svc.logger.Info("Seções de composição encontradas no DARF",
		zap.Int("secoes", len(sectionStarts)), zap.String("arquivo", sourceFile))

	for sectionIdx, sectionStart := range sectionStarts {
		sectionEnd := len(lines)
		if sectionIdx < len(sectionStarts)-1 {
			sectionEnd = sectionStarts[sectionIdx+1]
		}

		i := sectionStart + 1
		for i < sectionEnd {
			line := strings.TrimSpace(lines[i])

			if composicaoHeaderRegex.MatchString(line) {
				i++
				continue
			}
			if isDarfTerminalLine(line) {
				break
			}

			if m := codigoOnlyRegex.FindStringSubmatch(line); m != nil {
				// Formato 1: código sozinho, sete linhas de dados a seguir.
				if i+7 >= sectionEnd {
					svc.logger.Warn("Linhas insuficientes após código DARF",
						zap.String("codigo", m[1]), zap.Int("secao", sectionIdx+1))
					i++
					continue
				}
				item := domain.DarfItem{
					Cnpj:            cnpj,
					Codigo:          m[1],
					Denominacao:     strings.TrimSpace(lines[i+1]),
					Principal:       svc.parseBRCurrency(strings.TrimSpace(lines[i+2])),
					Multa:           svc.parseBRCurrency(strings.TrimSpace(lines[i+3])),
					Juros:           svc.parseBRCurrency(strings.TrimSpace(lines[i+4])),
					Total:           svc.parseBRCurrency(strings.TrimSpace(lines[i+5])),
					DataArrecadacao: dataArrecadacao,
					SourceFile:      sourceFile,
				}
				periodoVencimento := strings.TrimSpace(lines[i+7])
				if pa := paRegex.FindStringSubmatch(periodoVencimento); pa != nil {
					item.PeriodoApuracao = pa[1]
				}
				if vc := vencimentoDarfRegex.FindStringSubmatch(periodoVencimento); vc != nil {
					item.Vencimento = vc[1]
				}
				if item.Denominacao == "" || item.PeriodoApuracao == "" || item.Vencimento == "" {
					svc.logger.Warn("Item DARF descartado por dados incompletos",
						zap.String("codigo", item.Codigo), zap.Int("secao", sectionIdx+1))
					i++
					continue
				}
				result = append(result, item)
				i += 8
				continue
			}

			if m := codigoInlineRegex.FindStringSubmatch(line); m != nil {
				// Formato 2: código e valores inline, duas linhas a seguir.
				if i+2 >= sectionEnd {
					svc.logger.Warn("Linhas insuficientes após código DARF inline",
						zap.String("codigo", m[1]), zap.Int("secao", sectionIdx+1))
					i++
					continue
				}
				item := domain.DarfItem{
					Cnpj:            cnpj,
					Codigo:          m[1],
					Denominacao:     strings.TrimSpace(m[2]),
					Principal:       svc.parseBRCurrency(m[3]),
					Multa:           svc.parseBRCurrency(m[4]),
					Juros:           svc.parseBRCurrency(m[5]),
					Total:           svc.parseBRCurrency(m[6]),
					DataArrecadacao: dataArrecadacao,
					SourceFile:      sourceFile,
				}
				periodoVencimento := strings.TrimSpace(lines[i+2])
				if pa := paRegex.FindStringSubmatch(periodoVencimento); pa != nil {
					item.PeriodoApuracao = pa[1]
				}
				if vc := vencimentoDarfRegex.FindStringSubmatch(periodoVencimento); vc != nil {
					item.Vencimento = vc[1]
				}
				if item.Denominacao == "" || item.PeriodoApuracao == "" || item.Vencimento == "" {
					svc.logger.Warn("Item DARF inline descartado por dados incompletos",
						zap.String("codigo", item.Codigo), zap.Int("secao", sectionIdx+1))
					i++
					continue
				}
				result = append(result, item)
				i += 3
				continue
			}

			i++
		}
	}

	return result
}
