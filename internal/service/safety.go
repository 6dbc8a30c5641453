package service

import "strings"

// SafetyResult es el veredicto del filtro sobre un texto.
type SafetyResult struct {
	IsSafe bool   `json:"is_safe"`
	Reason string `json:"reason,omitempty"`
}

// SafetyFilter marca texto inseguro por categoria usando lexicons fijos.
// Se aplica igual al texto entrante del usuario y al texto generado.
type SafetyFilter struct{}

// DefaultSafetyFilter permite uso directo sin instanciar.
var DefaultSafetyFilter = SafetyFilter{}

// Classify evalua las categorias en orden fijo y corta en la primera que
// matchea, de modo que la razon de la categoria declarada antes gana.
// Matching por substring case-insensitive; sin efectos secundarios.
func (SafetyFilter) Classify(text string) SafetyResult {
	lower := strings.ToLower(text)
	for _, category := range safetyCategories {
		for _, keyword := range category.Keywords {
			if strings.Contains(lower, strings.ToLower(keyword)) {
				return SafetyResult{IsSafe: false, Reason: category.Reason}
			}
		}
	}
	return SafetyResult{IsSafe: true}
}
