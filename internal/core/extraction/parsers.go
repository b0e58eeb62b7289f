// internal/core/extraction/parsers.go
package extraction

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

var (
	currencyCleanRegex = regexp.MustCompile(`[R$\s.]`)
	currencyShapeRegex = regexp.MustCompile(`^-?[\d.]+$`)
	dateRegex          = regexp.MustCompile(`^(\d{2})/(\d{2})/(\d{4})`)
	periodoDiaRegex    = regexp.MustCompile(`^(\d{2}/\d{2}/\d{4})`)
	periodoMesRegex    = regexp.MustCompile(`^(\d{2})/(\d{4})`)
	periodoTrimRegex   = regexp.MustCompile(`(?i)^(\d{1,2})(?:º|o|ª|\s)?\s*TRIM/(\d{4})`)
)

// parseBRCurrency converte moeda brasileira ("1.234,56", com ou sem "R$")
// para float64. Entrada inválida vira 0.0 com aviso no log, nunca erro.
func (svc *service) parseBRCurrency(valueStr string) float64 {
	cleaned := currencyCleanRegex.ReplaceAllString(valueStr, "")
	cleaned = strings.ReplaceAll(cleaned, ",", ".")
	if cleaned == "" || !currencyShapeRegex.MatchString(cleaned) {
		svc.logger.Warn("Valor monetário inválido ou vazio, retornando 0.0", zap.String("valor", valueStr))
		return 0.0
	}
	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		svc.logger.Warn("Falha ao converter valor monetário, retornando 0.0", zap.String("valor", valueStr))
		return 0.0
	}
	return f
}

// formatDate converte DD/MM/YYYY para YYYY-MM-DD; vazio quando não casa.
func (svc *service) formatDate(dateStr string) string {
	m := dateRegex.FindStringSubmatch(strings.TrimSpace(dateStr))
	if m == nil {
		if strings.TrimSpace(dateStr) != "" {
			svc.logger.Warn("Formato de data inválido, retornando vazio", zap.String("data", dateStr))
		}
		return ""
	}
	return fmt.Sprintf("%s-%s-%s", m[3], m[2], m[1])
}

// formatPeriodo normaliza período de apuração: DD/MM/YYYY, MM/YYYY ou
// N TRIM/YYYY (tolerante a º/ª/o). Vazio quando nenhum formato casa.
func (svc *service) formatPeriodo(periodoStr string) string {
	periodoStr = strings.TrimSpace(periodoStr)
	if m := periodoDiaRegex.FindStringSubmatch(periodoStr); m != nil {
		return m[1]
	}
	if m := periodoMesRegex.FindStringSubmatch(periodoStr); m != nil {
		return fmt.Sprintf("%s/%s", m[1], m[2])
	}
	if m := periodoTrimRegex.FindStringSubmatch(periodoStr); m != nil {
		return fmt.Sprintf("%s TRIM/%s", m[1], m[2])
	}
	if periodoStr != "" {
		svc.logger.Warn("Formato de período inválido, retornando vazio", zap.String("periodo", periodoStr))
	}
	return ""
}
