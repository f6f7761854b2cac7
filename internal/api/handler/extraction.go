package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/cadastra/analytics-extractor-api/internal/catalog"
	"github.com/cadastra/analytics-extractor-api/internal/usecases/extracting"
	"github.com/cadastra/analytics-extractor-api/pkg/apiErrors"
	"github.com/cadastra/analytics-extractor-api/pkg/utils"
)

// RunExtractionRequest é o corpo de POST /v1/extract
type RunExtractionRequest struct {
	Accounts   []string `json:"accounts"`
	ReportKeys []string `json:"report_keys"`
	StartDate  string   `json:"start_date"`
	EndDate    string   `json:"end_date"`
}

// RunSingleExtractionRequest é o corpo de POST /v1/extract/:report_key
type RunSingleExtractionRequest struct {
	AccountID string `json:"account_id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// RunExtraction dispara uma execução síncrona de extração para o conjunto
// de contas e relatórios pedidos e responde com o sumário agregado
func RunExtraction(reportCatalog *catalog.Catalog, orchestrator extracting.Orchestrator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - RunExtraction")

		var request RunExtractionRequest
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Corpo da requisição inválido", nil)
			return
		}

		if len(request.Accounts) == 0 {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Nenhuma conta informada", nil)
			return
		}

		startDate, err := utils.ParseDate(request.StartDate)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "start_date inválida, formato esperado: YYYY-MM-DD", nil)
			return
		}

		endDate, err := utils.ParseDate(request.EndDate)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "end_date inválida, formato esperado: YYYY-MM-DD", nil)
			return
		}

		summary, err := orchestrator.Run(r.Context(), request.Accounts, request.ReportKeys, *startDate, *endDate)
		if err != nil {
			writeRunError(w, reportCatalog, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(summary)
	}
}

// RunSingleExtraction executa uma única tarefa (conta x relatório) e
// responde com o resultado bruto da extração e o relatório de commit
func RunSingleExtraction(reportCatalog *catalog.Catalog, orchestrator extracting.Orchestrator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - RunSingleExtraction")

		reportKey := httprouter.ParamsFromContext(r.Context()).ByName("report_key")
		if reportKey == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Chave de relatório não especificada", nil)
			return
		}

		var request RunSingleExtractionRequest
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Corpo da requisição inválido", nil)
			return
		}

		if request.AccountID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "account_id é obrigatório", nil)
			return
		}

		startDate, err := utils.ParseDate(request.StartDate)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "start_date inválida, formato esperado: YYYY-MM-DD", nil)
			return
		}

		endDate, err := utils.ParseDate(request.EndDate)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "end_date inválida, formato esperado: YYYY-MM-DD", nil)
			return
		}

		result, err := orchestrator.RunOne(r.Context(), request.AccountID, reportKey, *startDate, *endDate)
		if err != nil {
			writeRunError(w, reportCatalog, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(result)
	}
}

// writeRunError traduz os erros do orquestrador para os códigos da API.
// Chave desconhecida responde 404 com as chaves disponíveis nos detalhes.
func writeRunError(w http.ResponseWriter, reportCatalog *catalog.Catalog, err error) {
	var unknownErr *catalog.UnknownReportError
	if errors.As(err, &unknownErr) {
		apiErrors.WriteError(w, apiErrors.ErrUnknownReport, err.Error(), map[string]any{
			"available_keys": reportCatalog.AllKeys(),
		})
		return
	}

	var rangeErr *extracting.InvalidRangeError
	if errors.As(err, &rangeErr) {
		apiErrors.WriteError(w, apiErrors.ErrInvalidDateRange, err.Error(), nil)
		return
	}

	var authErr *extracting.AuthenticationError
	if errors.As(err, &authErr) {
		apiErrors.WriteError(w, apiErrors.ErrUpstreamAuth, err.Error(), nil)
		return
	}

	var quotaErr *extracting.QuotaExceededError
	if errors.As(err, &quotaErr) {
		apiErrors.WriteError(w, apiErrors.ErrUpstreamQuota, err.Error(), nil)
		return
	}

	var mismatchErr *extracting.SchemaMismatchError
	if errors.As(err, &mismatchErr) {
		apiErrors.WriteError(w, apiErrors.ErrSchemaMismatch, err.Error(), nil)
		return
	}

	var writeErr *extracting.WriteError
	if errors.As(err, &writeErr) {
		apiErrors.WriteError(w, apiErrors.ErrWarehouseWrite, err.Error(), nil)
		return
	}

	apiErrors.WriteError(w, apiErrors.ErrExtractionRun, err.Error(), nil)
}
