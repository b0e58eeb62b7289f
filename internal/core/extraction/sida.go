// internal/core/extraction/sida.go
package extraction

import (
	"regexp"
	"strings"

	"fiscal-service/internal/domain"

	"go.uber.org/zap"
)

var (
	inscricaoRegex     = regexp.MustCompile(`^(\d{2}\.\d{1}\.\d{2}\.\d{6}-\d{2})`)
	sidaReceitaRegex   = regexp.MustCompile(`\s+(\d{4}-\S+)`)
	sidaDataRegex      = regexp.MustCompile(`\s+(\d{2}/\d{2}/\d{4})`)
	sidaAjuizadoRegex  = regexp.MustCompile(`\s+(\d{2}/\d{2}/\d{4}|-)\s*`)
	tipoDevedorRegex   = regexp.MustCompile(`(?i)\s*(DEVEDOR\s+PRINCIPAL|CORRESPONSÁVEL)\s*`)
	processoLinhaRegex = regexp.MustCompile(`^([0-9][0-9./-]+)$`)
	situacaoLinhaRegex = regexp.MustCompile(`(?i)^Situação:\s*(.*)`)
	devedorLinhaRegex  = regexp.MustCompile(`(?i)^Devedor Principal:\s*(.*)`)
	receitaPrefixRegex = regexp.MustCompile(`^\d{4}-`)
)

var sidaHeaderTitles = map[string]bool{
	"Inscrição":       true,
	"Receita":         true,
	"Inscrito em":     true,
	"Ajuizado em":     true,
	"Processo":        true,
	"Tipo de Devedor": true,
}

// extractInscricoesSida extrai a seção "Inscrição com Exigibilidade Suspensa
// (SIDA)". A linha da inscrição concentra receita, datas e tipo de devedor;
// processo, situação e devedor principal podem vir nas linhas seguintes.
func (svc *service) extractInscricoesSida(sec domain.Section, sourceFile string) []domain.InscricaoSida {
	var result []domain.InscricaoSida
	lines := sec.Lines
	currentCnpj := ""
	var current *domain.InscricaoSida

	flush := func() {
		if current == nil {
			return
		}
		if current.Receita != "" && current.InscritoEm != "" {
			result = append(result, *current)
		} else {
			svc.logger.Info("Inscrição SIDA incompleta descartada",
				zap.String("inscricao", current.Inscricao))
		}
		current = nil
	}

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
		if sidaHeaderTitles[line] {
			i++
			continue
		}

		if m := inscricaoRegex.FindStringSubmatch(line); m != nil {
			flush()
			current = &domain.InscricaoSida{
				Cnpj:       currentCnpj,
				Inscricao:  m[1],
				SourceFile: sourceFile,
			}

			// Os demais campos vêm na mesma linha, em sequência.
			remaining := line[len(m[1]):]
			if rm := sidaReceitaRegex.FindStringSubmatchIndex(remaining); rm != nil {
				current.Receita = strings.TrimSpace(remaining[rm[2]:rm[3]])
				remaining = remaining[rm[1]:]
			}
			if dm := sidaDataRegex.FindStringSubmatchIndex(remaining); dm != nil {
				current.InscritoEm = svc.formatDate(remaining[dm[2]:dm[3]])
				remaining = remaining[dm[1]:]
			}
			if am := sidaAjuizadoRegex.FindStringSubmatchIndex(remaining); am != nil {
				if v := remaining[am[2]:am[3]]; v != "-" {
					current.AjuizadoEm = svc.formatDate(v)
				}
				remaining = remaining[am[1]:]
			}

			upper := strings.ToUpper(line)
			switch {
			case strings.Contains(upper, "DEVEDOR PRINCIPAL"):
				current.TipoDevedor = "DEVEDOR PRINCIPAL"
				current.DevedorPrincipal = "DEVEDOR PRINCIPAL"
			case strings.Contains(upper, "CORRESPONSÁVEL"):
				current.TipoDevedor = "CORRESPONSÁVEL"
			case strings.Contains(upper, "PRINCIPAL"):
				current.TipoDevedor = "DEVEDOR PRINCIPAL"
				current.DevedorPrincipal = "DEVEDOR PRINCIPAL"
			default:
				if tm := tipoDevedorRegex.FindStringSubmatch(remaining); tm != nil {
					current.TipoDevedor = strings.ToUpper(strings.TrimSpace(tm[1]))
					if strings.Contains(current.TipoDevedor, "PRINCIPAL") {
						current.DevedorPrincipal = "DEVEDOR PRINCIPAL"
					}
				}
			}

			// O número do processo costuma vir sozinho numa das linhas
			// logo abaixo da inscrição.
			for j := i + 1; j < len(lines) && j <= i+5; j++ {
				next := strings.TrimSpace(lines[j])
				if next == "" || sidaHeaderTitles[next] ||
					situacaoLinhaRegex.MatchString(next) || devedorLinhaRegex.MatchString(next) {
					continue
				}
				if inscricaoRegex.MatchString(next) {
					break
				}
				if receitaCodeRegex.MatchString(next) {
					continue
				}
				if pm := processoLinhaRegex.FindStringSubmatch(next); pm != nil {
					if !vencimentoShapeRegex.MatchString(pm[1]) {
						current.Processo = pm[1]
						break
					}
				}
			}

			i++
			continue
		}

		if current != nil {
			if sm := situacaoLinhaRegex.FindStringSubmatch(line); sm != nil {
				current.Situacao = strings.TrimSpace(sm[1])
				i++
				continue
			}
			if dm := devedorLinhaRegex.FindStringSubmatch(line); dm != nil {
				current.DevedorPrincipal = strings.TrimSpace(dm[1])
				// Devedor Principal listado à parte implica corresponsável.
				if current.TipoDevedor == "" {
					current.TipoDevedor = "CORRESPONSÁVEL"
				}
				i++
				continue
			}
			if current.Receita == "" && receitaPrefixRegex.MatchString(line) {
				current.Receita = line
				i++
				continue
			}
			if current.InscritoEm == "" && vencimentoShapeRegex.MatchString(line) {
				current.InscritoEm = svc.formatDate(line)
				i++
				continue
			}
			if strings.Contains(strings.ToUpper(line), "DEVEDOR PRINCIPAL") {
				current.TipoDevedor = "DEVEDOR PRINCIPAL"
				current.DevedorPrincipal = "DEVEDOR PRINCIPAL"
				i++
				continue
			}
		}

		i++
	}
	flush()

	return result
}
