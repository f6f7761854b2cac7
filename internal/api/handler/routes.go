package handler

import (
	"net/http"

	"github.com/cadastra/analytics-extractor-api/internal/api/handler/router"
	"github.com/cadastra/analytics-extractor-api/internal/catalog"
	"github.com/cadastra/analytics-extractor-api/internal/usecases/extracting"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Reports(reportCatalog *catalog.Catalog) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/reports",
			Method:  http.MethodGet,
			Handler: ListReports(reportCatalog),
		},
	}
}

func Extractions(reportCatalog *catalog.Catalog, orchestrator extracting.Orchestrator) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/extract",
			Method:  http.MethodPost,
			Handler: RunExtraction(reportCatalog, orchestrator),
		},
		{
			Path:    "/v1/extract/:report_key",
			Method:  http.MethodPost,
			Handler: RunSingleExtraction(reportCatalog, orchestrator),
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/cron/daily/run",
			Method:  http.MethodPost,
			Handler: RunDailyCronJob(services),
		},
		{
			Path:    "/v1/cron/status",
			Method:  http.MethodGet,
			Handler: GetCronStatus(services),
		},
	}
}
