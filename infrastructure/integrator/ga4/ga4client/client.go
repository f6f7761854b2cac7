package ga4client

import (
	"context"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	ga4domain "github.com/cadastra/analytics-extractor-api/infrastructure/integrator/ga4/domain"
	"github.com/cadastra/analytics-extractor-api/internal/config"
)

type Client interface {
	RunReport(ctx context.Context, propertyID string, request *ga4domain.RunReportRequest) (*ga4domain.RunReportResponse, error)
	GetMetadata(ctx context.Context, propertyID string) (*ga4domain.Metadata, error)
	HandleResponse(propertyID string, resp *http.Response) ([]byte, error)
}

type GA4Client struct {
	Cfg        *config.Config
	httpClient *http.Client
	limiter    *rate.Limiter
}

func NewClient(cfg *config.Config) Client {
	requestsPerSecond := cfg.GA4.RequestsPerSecond
	if requestsPerSecond <= 0 {
		requestsPerSecond = 5
	}

	client := &GA4Client{
		Cfg:        cfg,
		httpClient: &http.Client{Timeout: 60 * time.Second},
		limiter:    rate.NewLimiter(rate.Limit(requestsPerSecond), 1),
	}
	return client
}
