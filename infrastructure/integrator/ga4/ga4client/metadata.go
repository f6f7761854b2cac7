package ga4client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"

	ga4domain "github.com/cadastra/analytics-extractor-api/infrastructure/integrator/ga4/domain"
)

// GetMetadata consulta o catálogo de dimensões e métricas aceitas pela
// propriedade, incluindo campos customizados
func (c *GA4Client) GetMetadata(ctx context.Context, propertyID string) (*ga4domain.Metadata, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("erro ao aguardar o limitador de requisições: %w", err)
	}

	url := fmt.Sprintf("%s/%s/metadata", c.Cfg.GA4.URL, propertyPath(propertyID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		logrus.WithError(err).Error("Erro ao criar a requisição")
		return nil, err
	}
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

	var metadata ga4domain.Metadata
	if err := json.Unmarshal(body, &metadata); err != nil {
		logrus.WithError(err).Error("Erro ao decodificar JSON")
		return nil, err
	}

	return &metadata, nil
}
