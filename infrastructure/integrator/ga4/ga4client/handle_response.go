package ga4client

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/sirupsen/logrus"

	ga4domain "github.com/cadastra/analytics-extractor-api/infrastructure/integrator/ga4/domain"
	"github.com/cadastra/analytics-extractor-api/internal/usecases/extracting"
)

// HandleResponse lê o corpo da resposta e classifica falhas HTTP nas
// categorias de erro da extração: autenticação (terminal), cota esgotada
// (terminal), limite de requisições e indisponibilidade (retentáveis)
func (c *GA4Client) HandleResponse(propertyID string, resp *http.Response) ([]byte, error) {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler o corpo da resposta: %w", err)
	}

	if resp.StatusCode == http.StatusOK {
		return body, nil
	}

	var errorResponse ga4domain.ErrorResponse
	if err := json.Unmarshal(body, &errorResponse); err != nil {
		errorResponse.Error.Message = string(body)
	}

	logrus.WithFields(logrus.Fields{
		"property_id": propertyID,
		"status_code": resp.StatusCode,
		"status":      errorResponse.Error.Status,
		"message":     errorResponse.Error.Message,
	}).Warn("Resposta de erro do upstream")

	upstreamErr := errors.New(errorResponse.Error.Message)

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, &extracting.AuthenticationError{AccountID: propertyID, Err: upstreamErr}

	case resp.StatusCode == http.StatusTooManyRequests && errorResponse.IsQuotaExhausted():
		return nil, &extracting.QuotaExceededError{Err: upstreamErr}

	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, &extracting.RateLimitError{Err: upstreamErr}

	case resp.StatusCode >= http.StatusInternalServerError:
		return nil, &extracting.UpstreamUnavailableError{Err: upstreamErr}
	}

	return nil, fmt.Errorf(
		"erro na resposta do upstream para a propriedade %s: status %d: %s",
		propertyID, resp.StatusCode, errorResponse.Error.Message,
	)
}
