// internal/core/reconciliation/key.go
package reconciliation

import (
	"regexp"
	"strings"
	"unicode"

	"fiscal-service/internal/domain"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	whitespaceRegex  = regexp.MustCompile(`\s+`)
	leadingCodeRegex = regexp.MustCompile(`^(\d{4})(?:-\d{2})?\b`)
)

// normalizeComponent remove acentos, sobe para maiúsculas e elimina
// espaços. Componente ausente vira o literal "N/A": dois registros sem o
// mesmo componente ainda casam nele, tolerância documentada e proposital.
func normalizeComponent(str string) string {
	str = strings.TrimSpace(str)
	if str == "" {
		return "N/A"
	}
	t := transform.Chain(norm.NFD, transform.RemoveFunc(func(r rune) bool {
		return unicode.Is(unicode.Mn, r)
	}))
	result, _, _ := transform.String(t, str)
	result = strings.ToUpper(result)
	return whitespaceRegex.ReplaceAllString(result, "")
}

// normalizeTaxCode reduz código ou descrição de tributo à forma comparável.
// Relatórios trazem "8109-02 - PIS ..." enquanto o DARF traz só "8109";
// quando há um código numérico no início, ele decide a comparação.
func normalizeTaxCode(str string) string {
	trimmed := strings.TrimSpace(str)
	if m := leadingCodeRegex.FindStringSubmatch(trimmed); m != nil {
		return m[1]
	}
	return normalizeComponent(trimmed)
}

// ObligationKey deriva a chave de ligação de uma obrigação declarada.
func ObligationKey(item domain.OrderItem) string {
	return normalizeComponent(item.Cnpj) + "|" +
		normalizeTaxCode(item.Code) + "|" +
		normalizeComponent(item.StartPeriod)
}

// PaymentKey deriva a chave de ligação de um pagamento DARF. Usa o código
// quando existe e cai para a denominação quando não.
func PaymentKey(item domain.DarfItem) string {
	code := item.Codigo
	if code == "" {
		code = item.Denominacao
	}
	return normalizeComponent(item.Cnpj) + "|" +
		normalizeTaxCode(code) + "|" +
		normalizeComponent(item.PeriodoApuracao)
}
