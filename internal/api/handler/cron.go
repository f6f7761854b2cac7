package handler

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/cadastra/analytics-extractor-api/internal/scheduler"
	"github.com/cadastra/analytics-extractor-api/pkg/apiErrors"
)

// CronJobServices contém os serviços de cron necessários para executar manualmente
type CronJobServices struct {
	DailyExtractionSyncService *scheduler.DailyExtractionSyncService
}

// RunDailyCronJob dispara manualmente a carga diária de relatórios
func RunDailyCronJob(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - RunDailyCronJob")

		if services.DailyExtractionSyncService == nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço de carga diária não disponível", nil)
			return
		}

		services.DailyExtractionSyncService.TriggerManualSync()

		response := map[string]any{
			"message": "Carga diária iniciada com sucesso",
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(response)
	}
}

// GetCronStatus retorna o status das cron jobs
func GetCronStatus(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - GetCronStatus")

		if services.DailyExtractionSyncService == nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço de carga diária não disponível", nil)
			return
		}

		status := map[string]any{
			"daily": services.DailyExtractionSyncService.GetStatus(),
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(status)
	}
}
