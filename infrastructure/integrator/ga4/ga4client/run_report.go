package ga4client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"

	ga4domain "github.com/cadastra/analytics-extractor-api/infrastructure/integrator/ga4/domain"
	"github.com/cadastra/analytics-extractor-api/pkg/utils"
)

// propertyPath normaliza o identificador da conta para o caminho de recurso
// esperado pela API ("properties/<id>")
func propertyPath(propertyID string) string {
	return "properties/" + strings.TrimPrefix(propertyID, "properties/")
}

func (c *GA4Client) RunReport(
	ctx context.Context,
	propertyID string,
	request *ga4domain.RunReportRequest,
) (*ga4domain.RunReportResponse, error) {
	// Respeitar o limite local de requisições antes de chamar o upstream
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("erro ao aguardar o limitador de requisições: %w", err)
	}

	url := fmt.Sprintf("%s/%s:runReport", c.Cfg.GA4.URL, propertyPath(propertyID))

	payload, err := json.Marshal(request)
	if err != nil {
		logrus.WithError(err).Error("Erro ao codificar o corpo da requisição")
		return nil, err
	}

	if logrus.IsLevelEnabled(logrus.DebugLevel) {
		logrus.WithFields(logrus.Fields{
			"property_id": propertyID,
			"payload":     utils.PrettyJson(payload),
		}).Debug("Corpo da requisição runReport")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		logrus.WithError(err).Error("Erro ao criar a requisição")
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.Cfg.GA4.AccessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logrus.WithError(err).Error("Erro ao fazer a requisição")
		return nil, err
	}
	defer resp.Body.Close()

	body, err := c.HandleResponse(propertyID, resp)
	if err != nil {
		return nil, err
	}

	var response ga4domain.RunReportResponse
	if err := json.Unmarshal(body, &response); err != nil {
		logrus.WithError(err).Error("Erro ao decodificar JSON")
		return nil, err
	}

	return &response, nil
}
