package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"

	"github.com/cadastra/analytics-extractor-api/internal/config"
	"github.com/cadastra/analytics-extractor-api/internal/domain"
	"github.com/cadastra/analytics-extractor-api/internal/usecases/extracting"
)

// DailyExtractionSyncConfig representa a configuração do agendador da carga diária
type DailyExtractionSyncConfig struct {
	CronSchedule string
	LookbackDays int
	SyncEnabled  bool
}

// DailyExtractionSyncService gerencia o agendamento e execução da carga
// diária de relatórios (janela D-1 com lookback configurável)
type DailyExtractionSyncService struct {
	scheduler           *gocron.Scheduler
	config              DailyExtractionSyncConfig
	appConfig           *config.Config
	orchestrator        extracting.Orchestrator
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastRunSummary      *domain.RunSummary
}

// NewDailyExtractionSyncService cria uma nova instância do serviço de carga diária
func NewDailyExtractionSyncService(
	orchestrator extracting.Orchestrator,
	appConfig *config.Config,
) *DailyExtractionSyncService {
	// Criar a configuração com base na config global
	syncConfig := DailyExtractionSyncConfig{
		CronSchedule: appConfig.DailySync.CronSchedule,
		LookbackDays: appConfig.DailySync.LookbackDays,
		SyncEnabled:  appConfig.DailySync.Enabled,
	}

	// Criar o agendador
	scheduler := gocron.NewScheduler(time.Local)

	logrus.WithFields(logrus.Fields{
		"cron_schedule": syncConfig.CronSchedule,
		"lookback_days": syncConfig.LookbackDays,
		"sync_enabled":  syncConfig.SyncEnabled,
		"properties":    len(appConfig.GA4.PropertyIDs),
	}).Info("Configuração do agendador da carga diária carregada")

	return &DailyExtractionSyncService{
		scheduler:    scheduler,
		config:       syncConfig,
		appConfig:    appConfig,
		orchestrator: orchestrator,
		syncRunning:  false,
	}
}

// Start inicia o agendador
func (s *DailyExtractionSyncService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Carga diária de relatórios desabilitada por configuração")
		return nil
	}

	// Garantir o layout completo de tabelas antes da primeira carga
	if err := s.orchestrator.EnsureAllTables(ctx); err != nil {
		return fmt.Errorf("erro ao garantir tabelas do catálogo na inicialização: %w", err)
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador da carga diária de relatórios")

	// Agendar a carga diária
	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.syncAllReports()
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar carga diária de relatórios: %w", err)
	}

	// Executar o agendador em uma goroutine separada
	s.scheduler.StartAsync()

	// Configurar o cancelamento do agendador quando o contexto for cancelado
	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador da carga diária de relatórios")
		s.scheduler.Stop()
	}()

	return nil
}

// syncAllReports executa a carga de todos os relatórios do catálogo para
// todas as propriedades configuradas
func (s *DailyExtractionSyncService) syncAllReports() {
	startTime := time.Now()

	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Carga diária de relatórios já em andamento, ignorando")
		return
	}
	s.syncRunning = true
	s.lastSyncStartedAt = startTime
	s.syncMutex.Unlock()

	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.syncMutex.Unlock()
	}()

	accounts := s.appConfig.GA4.PropertyIDs
	if len(accounts) == 0 {
		logrus.Info("Nenhuma propriedade configurada para a carga diária de relatórios")
		return
	}

	startDate, endDate := s.getWindowToProcess()

	logrus.WithFields(logrus.Fields{
		"accounts":   len(accounts),
		"start_date": startDate.Format(time.DateOnly),
		"end_date":   endDate.Format(time.DateOnly),
	}).Info("Iniciando carga diária de relatórios para todas as propriedades")

	summary, err := s.orchestrator.Run(
		context.Background(),
		accounts,
		[]string{extracting.ReportKeyAll},
		startDate,
		endDate,
	)
	if err != nil {
		logrus.WithError(err).Error("Erro ao executar a carga diária de relatórios")
		return
	}

	s.syncMutex.Lock()
	s.lastRunSummary = summary
	s.lastSyncCompletedAt = time.Now()
	s.syncMutex.Unlock()

	logrus.WithFields(logrus.Fields{
		"run_id":     summary.RunID,
		"total":      summary.TotalReports,
		"successful": summary.Successful,
		"failed":     summary.Failed,
		"total_rows": summary.TotalRowsProcessed,
		"duration":   time.Since(startTime).String(),
	}).Info("Carga diária de relatórios concluída")
}

// getWindowToProcess retorna a janela de datas da carga: de D-lookback até
// ontem (a carga padrão com lookback 1 processa apenas D-1)
func (s *DailyExtractionSyncService) getWindowToProcess() (time.Time, time.Time) {
	lookback := s.config.LookbackDays
	if lookback <= 0 {
		lookback = 1
	}

	now := time.Now()
	yesterday := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1)
	start := yesterday.AddDate(0, 0, -(lookback - 1))

	return start, yesterday
}

// TriggerManualSync inicia manualmente uma carga de relatórios
func (s *DailyExtractionSyncService) TriggerManualSync() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Carga diária de relatórios já em andamento, ignorando solicitação manual")
		return
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando carga manual de relatórios")
	go s.syncAllReports()
}

// GetStatus retorna o status atual do agendador. O snapshot inteiro é
// lido sob o mutex, pois syncAllReports escreve os campos concorrentemente.
func (s *DailyExtractionSyncService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	status := map[string]any{
		"sync_enabled":           s.config.SyncEnabled,
		"sync_cron":              s.config.CronSchedule,
		"sync_lookback_days":     s.config.LookbackDays,
		"sync_running":           s.syncRunning,
		"configured_properties":  len(s.appConfig.GA4.PropertyIDs),
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
	}

	if s.lastRunSummary != nil {
		status["last_run_id"] = s.lastRunSummary.RunID
		status["last_run_successful"] = s.lastRunSummary.Successful
		status["last_run_failed"] = s.lastRunSummary.Failed
		status["last_run_total_rows"] = s.lastRunSummary.TotalRowsProcessed
	}

	return status
}
