package apiErrors

import (
	"encoding/json"
	"net/http"
)

// Códigos de erro da API
const (
	// Erros de autenticação (1000-1999)
	ErrInvalidToken = "AUTH_001" // Token inválido
	ErrExpiredToken = "AUTH_002" // Token expirado

	// Erros de validação (2000-2999)
	ErrInvalidRequest      = "VAL_001" // Requisição inválida
	ErrMissingRequiredData = "VAL_002" // Dados obrigatórios ausentes
	ErrInvalidFormat       = "VAL_003" // Formato de dados inválido
	ErrInvalidDateRange    = "VAL_004" // Janela de datas inválida
	ErrUnknownReport       = "VAL_005" // Chave de relatório desconhecida

	// Erros de extração (3000-3999)
	ErrUpstreamAuth        = "EXT_001" // Falha de autenticação no upstream
	ErrUpstreamRateLimit   = "EXT_002" // Limite de requisições do upstream
	ErrUpstreamQuota       = "EXT_003" // Cota do upstream esgotada
	ErrUpstreamUnavailable = "EXT_004" // Upstream indisponível

	// Erros do warehouse (4000-4999)
	ErrSchemaMismatch     = "WH_001" // Schema divergente na tabela de destino
	ErrWarehouseWrite     = "WH_002" // Falha de escrita no warehouse
	ErrWarehouseOperation = "WH_003" // Erro de operação no warehouse

	// Erros do servidor (5000-5999)
	ErrInternalServer  = "SRV_001" // Erro interno do servidor
	ErrExternalService = "SRV_002" // Erro em serviço externo
	ErrExtractionRun   = "SRV_003" // Falha na execução de extração
)

// Mapeamento de códigos de erro para status HTTP
var httpStatusMap = map[string]int{
	ErrInvalidToken:        http.StatusUnauthorized,
	ErrExpiredToken:        http.StatusUnauthorized,
	ErrInvalidRequest:      http.StatusBadRequest,
	ErrMissingRequiredData: http.StatusBadRequest,
	ErrInvalidFormat:       http.StatusBadRequest,
	ErrInvalidDateRange:    http.StatusBadRequest,
	ErrUnknownReport:       http.StatusNotFound,
	ErrUpstreamAuth:        http.StatusBadGateway,
	ErrUpstreamRateLimit:   http.StatusBadGateway,
	ErrUpstreamQuota:       http.StatusBadGateway,
	ErrUpstreamUnavailable: http.StatusBadGateway,
	ErrSchemaMismatch:      http.StatusConflict,
	ErrWarehouseWrite:      http.StatusInternalServerError,
	ErrWarehouseOperation:  http.StatusInternalServerError,
	ErrInternalServer:      http.StatusInternalServerError,
	ErrExternalService:     http.StatusBadGateway,
	ErrExtractionRun:       http.StatusInternalServerError,
}

// APIError representa um erro de API padronizado
type APIError struct {
	Code    string `json:"code"`              // Código de erro para o cliente
	Message string `json:"message,omitempty"` // Mensagem descritiva (opcional)
	Details any    `json:"details,omitempty"` // Detalhes adicionais (opcional)
}

// WriteError escreve o erro padronizado para a resposta HTTP
func WriteError(w http.ResponseWriter, code string, message string, details any) {
	status, exists := httpStatusMap[code]
	if !exists {
		status = http.StatusInternalServerError
	}

	apiErr := APIError{
		Code:    code,
		Message: message,
		Details: details,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(apiErr)
}

// FromError cria um erro de API a partir de um erro Go
// Útil para quando você quer envolver um erro existente em um erro de API
func FromError(err error, code string) APIError {
	if err == nil {
		return APIError{
			Code:    ErrInternalServer,
			Message: "Erro desconhecido",
		}
	}

	return APIError{
		Code:    code,
		Message: err.Error(),
	}
}
