// internal/core/extraction/debitos.go
package extraction

import (
	"regexp"
	"strings"

	"fiscal-service/internal/domain"

	"go.uber.org/zap"
)

var (
	cnpjRegex         = regexp.MustCompile(`CNPJ:\s*(\d{2}\.\d{3}\.\d{3}/\d{4}-\d{2})`)
	cpfRegex          = regexp.MustCompile(`CPF:\s*(\d{3}\.\d{3}\.\d{3}-\d{2})`)
	cnoRegex          = regexp.MustCompile(`CNO:\s*([\d./-]+)`)
	receitaRegex      = regexp.MustCompile(`^(\d{4}-\d{2}\s+-\s+.*)`)
	simplesRegex      = regexp.MustCompile(`(?i)SIMPLES\s+NAC\.?`)
	simplesOnlyRegex  = regexp.MustCompile(`(?i)^SIMPLES\s+NAC\.?$`)
	receitaCodeRegex  = regexp.MustCompile(`^\d{4}-\d{2}`)
	currencyLineRegex = regexp.MustCompile(`^[\d.,]+$`)

	// Linha tabular completa: período, vencimento, cinco valores e situação.
	tabularRowRegex = regexp.MustCompile(`^(\d{2}/\d{4})\s+(\d{2}/\d{2}/\d{4})\s+([\d.,]+)\s+([\d.,]+)\s+([\d.,]+)\s+([\d.,]+)\s+([\d.,]+)\s+(\w+)`)

	periodoShapeRegex    = regexp.MustCompile(`(?i)^(?:\d{2}/\d{2}/\d{4}|\d{2}/\d{4}|\d{1,2}(?:º|o|ª|\s)?\s*TRIM/\d{4})`)
	vencimentoShapeRegex = regexp.MustCompile(`^\d{2}/\d{2}/\d{4}`)
	mesAnoShapeRegex     = regexp.MustCompile(`^\d{2}/\d{4}`)
)

// matchContribuinte atualiza o contribuinte corrente quando a linha traz
// um marcador CNPJ:/CPF:.
func matchContribuinte(line string) (string, bool) {
	if m := cnpjRegex.FindStringSubmatch(line); m != nil {
		return m[1], true
	}
	if m := cpfRegex.FindStringSubmatch(line); m != nil {
		return m[1], true
	}
	return "", false
}

func isDebitoHeaderLine(line string) bool {
	if strings.Contains(line, "Receita") && strings.Contains(line, "PA/Exerc") && strings.Contains(line, "Vcto") {
		return true
	}
	switch line {
	case "Dt. Vcto", "Vl. Original", "Vl.Original", "Sdo. Devedor", "Sdo.Devedor", "Multa", "Juros", "Sdo. Dev. Cons.", "Situação":
		return true
	}
	return false
}

// mergeTrimestreLines junta linhas de período trimestral quebradas pela
// extração do PDF ("1º" numa linha, "TRIM/2023" na seguinte).
func mergeTrimestreLines(collected []string) []string {
	merged := make([]string, 0, len(collected))
	for k := 0; k < len(collected); k++ {
		line := collected[k]
		if k+1 < len(collected) &&
			(strings.HasSuffix(line, "º") || strings.HasSuffix(line, "ª") || strings.HasSuffix(line, "o")) &&
			strings.HasPrefix(strings.ToUpper(collected[k+1]), "TRIM") {
			merged = append(merged, line+" "+collected[k+1])
			k++
			continue
		}
		merged = append(merged, line)
	}
	return merged
}

// classifyDebitoLines preenche os campos do débito classificando cada linha
// pelo formato do conteúdo, não pela posição: primeira linha com cara de
// período vira período, a primeira data seguinte vira vencimento, valores
// monetários preenchem os cinco campos na ordem semântica fixa e o primeiro
// texto livre restante vira situação.
func (svc *service) classifyDebitoLines(collected []string, debito *domain.Debito) {
	for _, line := range collected {
		if periodoShapeRegex.MatchString(line) && debito.PeriodoApuracao == "" {
			debito.PeriodoApuracao = svc.formatPeriodo(line)
			continue
		}
		if vencimentoShapeRegex.MatchString(line) && debito.Vencimento == "" {
			debito.Vencimento = svc.formatDate(line)
			continue
		}
		if currencyLineRegex.MatchString(line) && (strings.Contains(line, ",") || strings.Contains(line, ".")) {
			valor := svc.parseBRCurrency(line)
			if valor <= 0 {
				continue
			}
			switch {
			case debito.ValorOriginal == 0.0:
				debito.ValorOriginal = valor
			case debito.SaldoDevedor == 0.0:
				debito.SaldoDevedor = valor
			case debito.Multa == 0.0:
				debito.Multa = valor
			case debito.Juros == 0.0:
				debito.Juros = valor
			case debito.SaldoDevedorConsolidado == 0.0:
				debito.SaldoDevedorConsolidado = valor
			default:
				svc.logger.Warn("Valor monetário extra ignorado", zap.String("linha", line))
			}
			continue
		}
		if debito.Situacao == "" && line != "" &&
			!strings.Contains(strings.ToLower(line), "notificação de lançamento") &&
			!receitaCodeRegex.MatchString(line) && !mesAnoShapeRegex.MatchString(line) {
			debito.Situacao = line
		}
	}
}

// extractPendenciasDebito extrai os registros da seção "Pendência - Débito
// (SIEF)". O layout varia entre colunas inline e campos espalhados em
// linhas seguintes, então a montagem é dirigida pelo conteúdo coletado.
func (svc *service) extractPendenciasDebito(sec domain.Section, sourceFile string) []domain.Debito {
	var result []domain.Debito
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
		if isDebitoHeaderLine(line) {
			i++
			continue
		}

		receitaMatch := receitaRegex.FindStringSubmatch(line)
		simplesMatch := simplesRegex.MatchString(line)

		// Fallback tabular: itens do Simples Nacional sem código de receita,
		// com todos os campos na mesma linha.
		if receitaMatch == nil && !simplesMatch && currentCnpj != "" {
			if m := tabularRowRegex.FindStringSubmatch(line); m != nil {
				result = append(result, domain.Debito{
					Cnpj:                    currentCnpj,
					Receita:                 "SIMPLES NAC.",
					PeriodoApuracao:         svc.formatPeriodo(m[1]),
					Vencimento:              svc.formatDate(m[2]),
					ValorOriginal:           svc.parseBRCurrency(m[3]),
					SaldoDevedor:            svc.parseBRCurrency(m[4]),
					Multa:                   svc.parseBRCurrency(m[5]),
					Juros:                   svc.parseBRCurrency(m[6]),
					SaldoDevedorConsolidado: svc.parseBRCurrency(m[7]),
					Situacao:                m[8],
					SourceFile:              sourceFile,
				})
				i++
				continue
			}
		}

		if (receitaMatch == nil && !simplesMatch) || currentCnpj == "" {
			i++
			continue
		}

		debito := domain.Debito{Cnpj: currentCnpj, SourceFile: sourceFile}
		if receitaMatch != nil {
			debito.Receita = strings.TrimSpace(receitaMatch[1])
		} else {
			debito.Receita = "SIMPLES NAC."
			svc.fillSimplesInline(line, &debito)
		}

		// Coleta as linhas seguintes até o próximo registro, novo CNPJ,
		// cabeçalho ou fim da seção.
		j := i + 1
		var collected []string
		for j < len(lines) {
			next := strings.TrimSpace(lines[j])
			if receitaRegex.MatchString(next) || simplesOnlyRegex.MatchString(next) {
				break
			}
			if _, ok := matchContribuinte(next); ok {
				break
			}
			if strings.Contains(next, "Receita") && strings.Contains(next, "PA/Exerc") {
				break
			}
			if next != "" {
				collected = append(collected, next)
			}
			j++
		}
		collected = mergeTrimestreLines(collected)

		if debito.PeriodoApuracao == "" || debito.Vencimento == "" {
			svc.classifyDebitoLines(collected, &debito)
		}

		if debito.Receita == "SIMPLES NAC." {
			// SIMPLES NAC. sempre entra: os consumidores esperam todo
			// registro detectado, mesmo sem período/vencimento parseáveis.
			if debito.PeriodoApuracao == "" {
				debito.PeriodoApuracao = "SIMPLES NAC."
			}
			if debito.Vencimento == "" {
				debito.Vencimento = "A DEFINIR"
			}
			if debito.Situacao == "" {
				debito.Situacao = "DEVEDOR"
			}
			result = append(result, debito)
			i = j
			continue
		}

		if debito.PeriodoApuracao != "" && debito.Vencimento != "" {
			result = append(result, debito)
			i = j
			continue
		}

		// Última chance: dentro da seção, com CNPJ e receita presentes,
		// aceita com valores padrão em vez de perder o registro.
		if debito.Receita != "" {
			if debito.PeriodoApuracao == "" {
				debito.PeriodoApuracao = "N/A"
			}
			if debito.Vencimento == "" {
				debito.Vencimento = "N/A"
			}
			if debito.Situacao == "" {
				debito.Situacao = "PENDENTE"
			}
			result = append(result, debito)
			i = j
			continue
		}

		svc.logger.Info("Registro de débito rejeitado por falta de dados", zap.String("linha", line))
		i++
	}

	return result
}

// fillSimplesInline cobre o formato em que o SIMPLES NAC. traz todos os
// campos na própria linha, separados por espaços.
func (svc *service) fillSimplesInline(line string, debito *domain.Debito) {
	parts := strings.Fields(line)
	if len(parts) < 8 {
		return
	}

	periodoIdx, vencimentoIdx := -1, -1
	for idx, part := range parts {
		if vencimentoShapeRegex.MatchString(part) && vencimentoIdx == -1 {
			vencimentoIdx = idx
			continue
		}
		if mesAnoShapeRegex.MatchString(part) && periodoIdx == -1 {
			periodoIdx = idx
		}
	}
	if periodoIdx == -1 || vencimentoIdx == -1 {
		return
	}
	valoresStart := vencimentoIdx + 1
	if len(parts) < valoresStart+5 {
		return
	}

	debito.PeriodoApuracao = svc.formatPeriodo(parts[periodoIdx])
	debito.Vencimento = svc.formatDate(parts[vencimentoIdx])
	debito.ValorOriginal = svc.parseBRCurrency(parts[valoresStart])
	debito.SaldoDevedor = svc.parseBRCurrency(parts[valoresStart+1])
	debito.Multa = svc.parseBRCurrency(parts[valoresStart+2])
	debito.Juros = svc.parseBRCurrency(parts[valoresStart+3])
	debito.SaldoDevedorConsolidado = svc.parseBRCurrency(parts[valoresStart+4])
	if len(parts) > valoresStart+5 {
		debito.Situacao = parts[valoresStart+5]
	} else {
		debito.Situacao = "DEVEDOR"
	}
}

// extractDebitosExigSuspensa extrai a seção "Débito com Exigibilidade
// Suspensa (SIEF)", de layout fixo: receita seguida de oito campos, um por
// linha. O CNO, quando presente, vale para o débito seguinte.
func (svc *service) extractDebitosExigSuspensa(sec domain.Section, sourceFile string) []domain.Debito {
	var result []domain.Debito
	lines := sec.Lines
	currentCnpj := ""
	currentCno := ""

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
		if m := cnoRegex.FindStringSubmatch(line); m != nil {
			currentCno = m[1]
			i++
			continue
		}
		if isDebitoHeaderLine(line) {
			i++
			continue
		}

		receitaMatch := receitaRegex.FindStringSubmatch(line)
		if receitaMatch == nil || currentCnpj == "" {
			i++
			continue
		}

		const expectedFields = 8
		var dataLines []string
		for k := i + 1; k < len(lines) && len(dataLines) < expectedFields; k++ {
			dataLines = append(dataLines, strings.TrimSpace(lines[k]))
		}
		if len(dataLines) < 5 {
			svc.logger.Warn("Linhas insuficientes para débito com exigibilidade suspensa",
				zap.String("receita", receitaMatch[1]), zap.Int("linhas", len(dataLines)))
			i++
			continue
		}

		debito := domain.Debito{
			Cnpj:            currentCnpj,
			Cno:             currentCno,
			Receita:         strings.TrimSpace(receitaMatch[1]),
			PeriodoApuracao: svc.formatPeriodo(dataLines[0]),
			Vencimento:      svc.formatDate(dataLines[1]),
			ValorOriginal:   svc.parseBRCurrency(dataLines[2]),
			SaldoDevedor:    svc.parseBRCurrency(dataLines[3]),
			SourceFile:      sourceFile,
		}
		switch {
		case len(dataLines) >= 8:
			debito.Multa = svc.parseBRCurrency(dataLines[4])
			debito.Juros = svc.parseBRCurrency(dataLines[5])
			debito.SaldoDevedorConsolidado = svc.parseBRCurrency(dataLines[6])
			debito.Situacao = dataLines[7]
		case len(dataLines) == 7:
			debito.Multa = svc.parseBRCurrency(dataLines[4])
			debito.Juros = svc.parseBRCurrency(dataLines[5])
			debito.SaldoDevedorConsolidado = svc.parseBRCurrency(dataLines[5])
			debito.Situacao = dataLines[6]
		case len(dataLines) == 6:
			debito.Multa = svc.parseBRCurrency(dataLines[4])
			debito.SaldoDevedorConsolidado = debito.SaldoDevedor
			debito.Situacao = dataLines[5]
		default:
			debito.SaldoDevedorConsolidado = debito.SaldoDevedor
			debito.Situacao = dataLines[4]
		}

		if debito.PeriodoApuracao == "" || debito.Vencimento == "" {
			svc.logger.Info("Débito com exigibilidade suspensa rejeitado na validação",
				zap.String("receita", debito.Receita))
			i++
			continue
		}

		result = append(result, debito)
		currentCno = ""
		i += 1 + len(dataLines)
	}

	return result
}
