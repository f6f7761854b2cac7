package ga4domain

import "strings"

// ErrorResponse representa a estrutura de erro da API de dados do GA4
type ErrorResponse struct {
	Error ErrorDetails `json:"error"`
}

// ErrorDetails contém os detalhes de erro da API de dados do GA4
type ErrorDetails struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

// IsQuotaExhausted verifica se o erro 429 é de cota esgotada (tokens
// diários/horários da propriedade) em vez de limite momentâneo de
// requisições. Cota esgotada não se resolve com retentativa.
func (e *ErrorResponse) IsQuotaExhausted() bool {
	return e.Error.Status == "RESOURCE_EXHAUSTED" &&
		strings.Contains(strings.ToLower(e.Error.Message), "quota")
}
