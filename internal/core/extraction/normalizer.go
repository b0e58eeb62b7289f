// internal/core/extraction/normalizer.go
package extraction

import "strings"

// Trechos de cabeçalho/rodapé institucional que se repetem a cada página
// do relatório e nunca carregam dados.
var skipPatterns = []string{
	"MINISTÉRIO DA FAZENDA",
	"Por meio do e-CAC",
	"SECRETARIA ESPECIAL",
	"PROCURADORIA-GERAL",
	"Página:",
	"INFORMAÇÕES DE APOIO",
}

// preprocessText remove linhas de papel timbrado/paginação e colapsa
// sequências de linhas vazias em uma só. A ordem das demais linhas é
// preservada.
func (svc *service) preprocessText(text string) []string {
	lines := strings.Split(text, "\n")
	cleaned := make([]string, 0, len(lines))

	for _, line := range lines {
		skip := false
		for _, pattern := range skipPatterns {
			if strings.Contains(line, pattern) {
				skip = true
				break
			}
		}
		if !skip {
			cleaned = append(cleaned, line)
		}
	}

	result := make([]string, 0, len(cleaned))
	prevEmpty := false
	for _, line := range cleaned {
		if strings.TrimSpace(line) == "" {
			if !prevEmpty {
				result = append(result, line)
			}
			prevEmpty = true
		} else {
			result = append(result, line)
			prevEmpty = false
		}
	}
	return result
}
