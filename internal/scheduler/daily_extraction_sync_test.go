package scheduler_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/cadastra/analytics-extractor-api/internal/config"
	"github.com/cadastra/analytics-extractor-api/internal/domain"
	"github.com/cadastra/analytics-extractor-api/internal/scheduler"
	"github.com/cadastra/analytics-extractor-api/internal/usecases/extracting"
	"github.com/cadastra/analytics-extractor-api/internal/usecases/extracting/mocks"
)

func testSyncConfig() *config.Config {
	return &config.Config{
		GA4: config.GA4{
			PropertyIDs: []string{"properties/111"},
		},
		DailySync: config.DailySync{
			CronSchedule: "0 5 * * *",
			LookbackDays: 1,
			Enabled:      true,
		},
	}
}

func TestDailyExtractionSync_StatusReflectsLastRun(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	summary := &domain.RunSummary{
		RunID:              "abc123",
		TotalReports:       12,
		Successful:         12,
		TotalRowsProcessed: 240,
		Success:            true,
	}

	mockOrchestrator := mocks.NewMockOrchestrator(ctrl)
	mockOrchestrator.EXPECT().
		Run(gomock.Any(), []string{"properties/111"}, []string{extracting.ReportKeyAll}, gomock.Any(), gomock.Any()).
		Return(summary, nil)

	service := scheduler.NewDailyExtractionSyncService(mockOrchestrator, testSyncConfig())

	service.TriggerManualSync()

	require.Eventually(t, func() bool {
		status := service.GetStatus()
		_, hasRun := status["last_run_id"]
		return status["sync_running"] == false && hasRun
	}, 2*time.Second, 5*time.Millisecond)

	status := service.GetStatus()
	assert.Equal(t, "abc123", status["last_run_id"])
	assert.Equal(t, 12, status["last_run_successful"])
	assert.Equal(t, 0, status["last_run_failed"])
	assert.Equal(t, 240, status["last_run_total_rows"])
	assert.Equal(t, 1, status["configured_properties"])
}

// GetStatus pode ser chamado enquanto uma carga está em andamento:
// o snapshot inteiro é lido sob o mutex do serviço
func TestDailyExtractionSync_StatusIsSafeDuringSync(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	block := make(chan struct{})

	mockOrchestrator := mocks.NewMockOrchestrator(ctrl)
	mockOrchestrator.EXPECT().
		Run(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ []string, _ []string, _, _ time.Time) (*domain.RunSummary, error) {
			<-block
			return &domain.RunSummary{RunID: "xyz789", Success: true}, nil
		}).
		Times(1)

	service := scheduler.NewDailyExtractionSyncService(mockOrchestrator, testSyncConfig())

	service.TriggerManualSync()

	require.Eventually(t, func() bool {
		return service.GetStatus()["sync_running"] == true
	}, 2*time.Second, 5*time.Millisecond)

	// Um segundo disparo durante a carga é ignorado (Run tem Times(1))
	service.TriggerManualSync()

	// Leituras concorrentes à escrita do sumário não podem corromper o
	// snapshot nem disparar o detector de corrida
	for i := 0; i < 50; i++ {
		_ = service.GetStatus()
	}

	close(block)

	require.Eventually(t, func() bool {
		status := service.GetStatus()
		return status["sync_running"] == false && status["last_run_id"] == "xyz789"
	}, 2*time.Second, 5*time.Millisecond)
}
