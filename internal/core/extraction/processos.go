// internal/core/extraction/processos.go
package extraction

import (
	"regexp"
	"strings"

	"fiscal-service/internal/domain"

	"go.uber.org/zap"
)

var (
	localizacaoLinhaRegex = regexp.MustCompile(`(?i)^Localização:\s*(.*)`)
	debitoNumeroRegex     = regexp.MustCompile(`^(\d[\d./-]*\d)$`)
)

// extractProcessosFiscais extrai a seção "Processo Fiscal com Exigibilidade
// Suspensa (SIEF)". Cada registro inicia em "Processo:" e os campos de
// situação e localização vêm nas linhas seguintes, com prefixo próprio.
func (svc *service) extractProcessosFiscais(sec domain.Section, sourceFile string) []domain.ProcessoFiscal {
	var result []domain.ProcessoFiscal
	lines := sec.Lines
	currentCnpj := ""
	var current *domain.ProcessoFiscal

	flush := func() {
		if current == nil {
			return
		}
		if current.Processo != "" {
			result = append(result, *current)
		}
		current = nil
	}

	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		if id, ok := matchContribuinte(line); ok {
			currentCnpj = id
			continue
		}

		if m := processoNumRegex.FindStringSubmatch(line); m != nil {
			flush()
			if currentCnpj == "" {
				svc.logger.Info("Processo fiscal sem contribuinte corrente ignorado",
					zap.String("processo", m[1]))
				continue
			}
			current = &domain.ProcessoFiscal{
				Cnpj:       currentCnpj,
				Processo:   m[1],
				SourceFile: sourceFile,
			}
			continue
		}
		if current == nil {
			continue
		}
		if sm := situacaoLinhaRegex.FindStringSubmatch(line); sm != nil {
			current.Situacao = strings.TrimSpace(sm[1])
			continue
		}
		if lm := localizacaoLinhaRegex.FindStringSubmatch(line); lm != nil {
			current.Localizacao = strings.TrimSpace(lm[1])
			continue
		}
	}
	flush()

	return result
}

// extractDebitosSicob extrai a seção "Débito com Exigibilidade Suspensa
// (SICOB)". Cada registro ocupa três linhas: número do débito, descrição e
// situação (com ou sem o prefixo "Situação:").
func (svc *service) extractDebitosSicob(sec domain.Section, sourceFile string) []domain.DebitoSicob {
	var result []domain.DebitoSicob
	lines := sec.Lines
	currentCnpj := ""

	i := 0
	for i < len(lines) {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			i++
			continue
		}

		if id, ok := matchContribuinte(line); ok {
			currentCnpj = id
			i++
			continue
		}
		if strings.EqualFold(line, "débito") || strings.EqualFold(line, "debito") {
			i++
			continue
		}

		m := debitoNumeroRegex.FindStringSubmatch(line)
		if m == nil || currentCnpj == "" {
			i++
			continue
		}
		if i+2 >= len(lines) {
			svc.logger.Warn("Fim da seção SICOB antes das linhas de descrição e situação",
				zap.String("debito", m[1]))
			break
		}

		descricao := strings.TrimSpace(lines[i+1])
		if descricao == "" || debitoNumeroRegex.MatchString(descricao) {
			i++
			continue
		}
		situacao := strings.TrimSpace(lines[i+2])
		if sm := situacaoLinhaRegex.FindStringSubmatch(situacao); sm != nil {
			situacao = strings.TrimSpace(sm[1])
		}

		result = append(result, domain.DebitoSicob{
			Cnpj:       currentCnpj,
			Debito:     m[1],
			Descricao:  descricao,
			Situacao:   situacao,
			SourceFile: sourceFile,
		})
		i += 3
	}

	return result
}
