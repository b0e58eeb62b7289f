// internal/core/extraction/parcelamentos.go
package extraction

import (
	"regexp"
	"strings"

	"fiscal-service/internal/domain"

	"go.uber.org/zap"
)

var (
	parcelamentoNumRegex = regexp.MustCompile(`(?i)^Parcelamento:\s*(\d+)`)
	processoNumRegex     = regexp.MustCompile(`(?i)^Processo:\s*([\d./-]+)`)
	valorSuspensoRegex   = regexp.MustCompile(`(?i)^Valor Suspenso:\s*([\d.,]+)`)
	modalidadeRegex      = regexp.MustCompile(`(?i)^Modalidade:\s*(.*)`)
	contaRegex           = regexp.MustCompile(`^(\d+)$`)
)

// extractParcelamentosSiefpar extrai a seção "Parcelamento com Exigibilidade
// Suspensa (SIEFPAR)". Cada registro ocupa três linhas: número do
// parcelamento, valor suspenso e modalidade (com ou sem o prefixo).
func (svc *service) extractParcelamentosSiefpar(sec domain.Section, sourceFile string) []domain.ParcelamentoSiefpar {
	var result []domain.ParcelamentoSiefpar
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

		m := parcelamentoNumRegex.FindStringSubmatch(line)
		if m == nil || currentCnpj == "" {
			i++
			continue
		}
		if i+2 >= len(lines) {
			svc.logger.Warn("Linhas insuficientes após registro de parcelamento SIEFPAR",
				zap.String("parcelamento", m[1]))
			i++
			continue
		}

		valorMatch := valorSuspensoRegex.FindStringSubmatch(strings.TrimSpace(lines[i+1]))
		if valorMatch == nil {
			svc.logger.Info("Linha seguinte ao parcelamento SIEFPAR sem valor suspenso",
				zap.String("linha", strings.TrimSpace(lines[i+1])))
			i++
			continue
		}
		modalidade := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(lines[i+2]), "Modalidade:"))

		result = append(result, domain.ParcelamentoSiefpar{
			Cnpj:          currentCnpj,
			Parcelamento:  m[1],
			ValorSuspenso: svc.parseBRCurrency(valorMatch[1]),
			Modalidade:    modalidade,
			SourceFile:    sourceFile,
		})
		i += 3
	}

	return result
}

// extractParcelamentosSipade extrai a seção "Parcelamento com Exigibilidade
// Suspensa (SIPADE)". Mesmo formato de três linhas do SIEFPAR, mas o
// registro é identificado pelo número do processo.
func (svc *service) extractParcelamentosSipade(sec domain.Section, sourceFile string) []domain.ParcelamentoSipade {
	var result []domain.ParcelamentoSipade
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

		m := processoNumRegex.FindStringSubmatch(line)
		if m == nil || currentCnpj == "" {
			i++
			continue
		}
		if i+2 >= len(lines) {
			svc.logger.Warn("Linhas insuficientes após registro de parcelamento SIPADE",
				zap.String("processo", m[1]))
			i++
			continue
		}

		valorMatch := valorSuspensoRegex.FindStringSubmatch(strings.TrimSpace(lines[i+1]))
		if valorMatch == nil {
			i++
			continue
		}
		modalidade := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(lines[i+2]), "Modalidade:"))

		result = append(result, domain.ParcelamentoSipade{
			Cnpj:          currentCnpj,
			Processo:      m[1],
			ValorSuspenso: svc.parseBRCurrency(valorMatch[1]),
			Modalidade:    modalidade,
			SourceFile:    sourceFile,
		})
		i += 3
	}

	return result
}

// extractPendenciasSispar extrai a seção "Pendência - Parcelamento (SISPAR)".
// Cada registro ocupa três linhas: conta (apenas dígitos), descrição e
// modalidade.
func (svc *service) extractPendenciasSispar(sec domain.Section, sourceFile string) []domain.PendenciaSispar {
	var result []domain.PendenciaSispar
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
		if strings.EqualFold(line, "conta") {
			i++
			continue
		}

		contaMatch := contaRegex.FindStringSubmatch(line)
		if contaMatch == nil || currentCnpj == "" {
			i++
			continue
		}
		if i+1 >= len(lines) {
			svc.logger.Warn("Fim da seção SISPAR antes da linha de descrição",
				zap.String("conta", contaMatch[1]))
			break
		}

		descricao := strings.TrimSpace(lines[i+1])
		if descricao == "" || modalidadeRegex.MatchString(descricao) {
			svc.logger.Info("Linha após a conta SISPAR não parece descrição",
				zap.String("linha", descricao))
			i++
			continue
		}
		if i+2 >= len(lines) {
			svc.logger.Warn("Fim da seção SISPAR antes da linha de modalidade",
				zap.String("conta", contaMatch[1]))
			break
		}
		modalidadeMatch := modalidadeRegex.FindStringSubmatch(strings.TrimSpace(lines[i+2]))
		if modalidadeMatch == nil {
			svc.logger.Info("Linha após a descrição SISPAR sem modalidade",
				zap.String("linha", strings.TrimSpace(lines[i+2])))
			i++
			continue
		}

		result = append(result, domain.PendenciaSispar{
			Cnpj:       currentCnpj,
			Conta:      contaMatch[1],
			Descricao:  descricao,
			Modalidade: strings.TrimSpace(modalidadeMatch[1]),
			SourceFile: sourceFile,
		})
		i += 3
	}

	return result
}
