package handler

import (
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/cadastra/analytics-extractor-api/internal/catalog"
	"github.com/cadastra/analytics-extractor-api/internal/domain"
	"github.com/cadastra/analytics-extractor-api/pkg/apiErrors"
)

// ListReports retorna as definições do catálogo de relatórios. Aceita o
// filtro opcional ?category=DIMENSION|METRIC.
func ListReports(reportCatalog *catalog.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - ListReports")

		defs := reportCatalog.All()

		if category := r.URL.Query().Get("category"); category != "" {
			switch domain.ReportCategory(strings.ToUpper(category)) {
			case domain.CategoryDimension:
				defs = reportCatalog.ListByCategory(domain.CategoryDimension)
			case domain.CategoryMetric:
				defs = reportCatalog.ListByCategory(domain.CategoryMetric)
			default:
				apiErrors.WriteError(w, apiErrors.ErrInvalidRequest,
					"Categoria inválida. Valores aceitos: DIMENSION, METRIC", nil)
				return
			}
		}

		response := map[string]any{
			"total":   len(defs),
			"reports": defs,
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(response)
	}
}
