package extracting

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sirupsen/logrus"

	"github.com/cadastra/analytics-extractor-api/internal/catalog"
	"github.com/cadastra/analytics-extractor-api/internal/domain"
	"github.com/cadastra/analytics-extractor-api/pkg/utils"
)

// ReportKeyAll resolve para todas as chaves do catálogo no momento da chamada
const ReportKeyAll = "ALL"

// OrchestratorConfig controla concorrência, retentativas e limites de uma
// execução do orquestrador
type OrchestratorConfig struct {
	MaxConcurrentTasks   int
	FetchMaxAttempts     int
	FetchInitialInterval time.Duration
	RunTimeout           time.Duration
	RowLimit             int
}

type orchestrator struct {
	catalog *catalog.Catalog
	source  SourceClient
	tables  TableManager
	loader  Loader
	config  OrchestratorConfig
}

// NewOrchestrator cria o orquestrador de extração com as dependências
// injetadas. O catálogo nunca é mutado após a construção.
func NewOrchestrator(
	reportCatalog *catalog.Catalog,
	source SourceClient,
	tables TableManager,
	loader Loader,
	config OrchestratorConfig,
) Orchestrator {
	if config.MaxConcurrentTasks <= 0 {
		config.MaxConcurrentTasks = 3
	}
	if config.FetchMaxAttempts <= 0 {
		config.FetchMaxAttempts = 3
	}
	if config.FetchInitialInterval <= 0 {
		config.FetchInitialInterval = time.Second
	}
	if config.RowLimit <= 0 {
		config.RowLimit = 100000
	}

	return &orchestrator{
		catalog: reportCatalog,
		source:  source,
		tables:  tables,
		loader:  loader,
		config:  config,
	}
}

// Run expande contas x relatórios em tarefas independentes, executa-as em um
// pool limitado de workers e agrega os desfechos por conta. Erros de
// configuração (chave desconhecida, intervalo inválido, nenhuma conta) são
// rejeitados antes de qualquer chamada de rede; falhas de tarefas
// individuais nunca abortam as tarefas irmãs e são reportadas no sumário.
func (o *orchestrator) Run(
	ctx context.Context,
	accounts []string,
	reportKeys []string,
	startDate, endDate time.Time,
) (*domain.RunSummary, error) {
	startDate, endDate, err := o.resolveWindow(startDate, endDate)
	if err != nil {
		return nil, err
	}

	if len(accounts) == 0 {
		return nil, errors.New("nenhuma conta informada para extração")
	}

	defs, err := o.resolveReports(reportKeys)
	if err != nil {
		return nil, err
	}

	runID, err := utils.GenerateID()
	if err != nil {
		return nil, fmt.Errorf("erro ao gerar identificador da execução: %w", err)
	}

	if o.config.RunTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.config.RunTimeout)
		defer cancel()
	}

	summary := &domain.RunSummary{
		RunID:     runID,
		StartDate: startDate,
		EndDate:   endDate,
		StartedAt: time.Now(),
	}

	logrus.WithFields(logrus.Fields{
		"run_id":     runID,
		"accounts":   len(accounts),
		"reports":    len(defs),
		"start_date": startDate.Format(time.DateOnly),
		"end_date":   endDate.Format(time.DateOnly),
	}).Info("Iniciando execução de extração")

	// Cada tarefa escreve apenas no seu próprio slot da matriz de desfechos,
	// preservando a ordem de enumeração do catálogo na agregação
	outcomes := make([][]*domain.ReportOutcome, len(accounts))
	for i := range outcomes {
		outcomes[i] = make([]*domain.ReportOutcome, len(defs))
	}

	semaphore := make(chan struct{}, o.config.MaxConcurrentTasks)
	var wg sync.WaitGroup

	for accountIdx, accountID := range accounts {
		for defIdx, def := range defs {
			wg.Add(1)

			go func(accountIdx, defIdx int, accountID string, def domain.ReportDefinition) {
				defer wg.Done()

				select {
				case semaphore <- struct{}{}:
					defer func() { <-semaphore }()
				case <-ctx.Done():
					// Timeout da execução antes da tarefa iniciar: marca como
					// falha de timeout em vez de deixá-la pendente
					outcomes[accountIdx][defIdx] = timedOutOutcome(accountID, def, ctx.Err())
					return
				}

				outcomes[accountIdx][defIdx] = o.executeTask(ctx, accountID, def, startDate, endDate)
			}(accountIdx, defIdx, accountID, def)
		}
	}

	wg.Wait()

	for accountIdx, accountID := range accounts {
		summary.Accounts = append(summary.Accounts, buildAccountSummary(accountID, outcomes[accountIdx]))
	}
	aggregateTotals(summary)

	summary.FinishedAt = time.Now()

	logrus.WithFields(logrus.Fields{
		"run_id":     runID,
		"total":      summary.TotalReports,
		"successful": summary.Successful,
		"failed":     summary.Failed,
		"total_rows": summary.TotalRowsProcessed,
		"duration":   summary.FinishedAt.Sub(summary.StartedAt).String(),
	}).Info("Execução de extração concluída")

	return summary, nil
}

// RunOne executa uma única tarefa (conta x relatório) e retorna o resultado
// bruto da extração junto com o relatório de commit. Chave desconhecida
// falha antes de qualquer chamada de rede ou warehouse.
func (o *orchestrator) RunOne(
	ctx context.Context,
	accountID, reportKey string,
	startDate, endDate time.Time,
) (*SingleRunResult, error) {
	def, err := o.catalog.Get(reportKey)
	if err != nil {
		return nil, err
	}

	startDate, endDate, err = o.resolveWindow(startDate, endDate)
	if err != nil {
		return nil, err
	}

	if o.config.RunTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.config.RunTimeout)
		defer cancel()
	}

	result, commit, outcome, taskErr := o.runTask(ctx, accountID, def, startDate, endDate)
	if taskErr != nil {
		// O erro tipado da tarefa é preservado para os chamadores
		// classificarem (autenticação, cota, schema divergente, escrita)
		return &SingleRunResult{Result: result, Commit: commit, Outcome: outcome}, taskErr
	}

	return &SingleRunResult{Result: result, Commit: commit, Outcome: outcome}, nil
}

// EnsureAllTables garante a existência de todas as tabelas do catálogo.
// Usado na inicialização do agendador para criar o layout completo antes
// da primeira carga.
func (o *orchestrator) EnsureAllTables(ctx context.Context) error {
	for _, def := range o.catalog.All() {
		outcome, err := o.tables.Ensure(ctx, def)
		if err != nil {
			return fmt.Errorf("erro ao garantir tabela do relatório %s: %w", def.Key, err)
		}

		logrus.WithFields(logrus.Fields{
			"report_key": def.Key,
			"table":      def.TableName,
			"outcome":    string(outcome),
		}).Debug("Tabela do catálogo verificada")
	}

	return nil
}

// resolveWindow aplica a janela padrão D-1 quando as datas são omitidas e
// valida a invariante start_date <= end_date
func (o *orchestrator) resolveWindow(startDate, endDate time.Time) (time.Time, time.Time, error) {
	if startDate.IsZero() && endDate.IsZero() {
		y := time.Now().AddDate(0, 0, -1)
		yesterday := time.Date(y.Year(), y.Month(), y.Day(), 0, 0, 0, 0, time.UTC)
		return yesterday, yesterday, nil
	}

	if startDate.IsZero() {
		startDate = endDate
	}
	if endDate.IsZero() {
		endDate = startDate
	}

	if startDate.After(endDate) {
		return time.Time{}, time.Time{}, &InvalidRangeError{StartDate: startDate, EndDate: endDate}
	}

	return startDate, endDate, nil
}

// resolveReports valida as chaves pedidas e as devolve na ordem de
// enumeração do catálogo. "ALL" (ou lista vazia) resolve para todas as
// chaves no momento da chamada.
func (o *orchestrator) resolveReports(reportKeys []string) ([]domain.ReportDefinition, error) {
	if len(reportKeys) == 0 || (len(reportKeys) == 1 && reportKeys[0] == ReportKeyAll) {
		return o.catalog.All(), nil
	}

	requested := make(map[string]bool, len(reportKeys))
	for _, key := range reportKeys {
		if _, err := o.catalog.Get(key); err != nil {
			return nil, err
		}
		requested[key] = true
	}

	defs := make([]domain.ReportDefinition, 0, len(requested))
	for _, def := range o.catalog.All() {
		if requested[def.Key] {
			defs = append(defs, def)
		}
	}

	return defs, nil
}

// executeTask roda uma tarefa completa e devolve apenas o desfecho,
// descartando o resultado bruto
func (o *orchestrator) executeTask(
	ctx context.Context,
	accountID string,
	def domain.ReportDefinition,
	startDate, endDate time.Time,
) *domain.ReportOutcome {
	_, _, outcome, _ := o.runTask(ctx, accountID, def, startDate, endDate)
	return outcome
}

// runTask executa a máquina de estados de uma tarefa:
// PENDING -> RUNNING -> {SUCCEEDED, FAILED}. Garante a tabela, consulta o
// upstream com retentativas para erros transitórios e comita as linhas.
func (o *orchestrator) runTask(
	ctx context.Context,
	accountID string,
	def domain.ReportDefinition,
	startDate, endDate time.Time,
) (*domain.ExtractionResult, domain.CommitReport, *domain.ReportOutcome, error) {
	outcome := &domain.ReportOutcome{
		ReportKey: def.Key,
		AccountID: accountID,
		TableName: def.TableName,
		State:     domain.TaskPending,
	}

	taskStart := time.Now()
	outcome.State = domain.TaskRunning

	fail := func(err error) (*domain.ExtractionResult, domain.CommitReport, *domain.ReportOutcome, error) {
		outcome.State = domain.TaskFailed
		outcome.Error = err.Error()
		outcome.Duration = time.Since(taskStart)

		logrus.WithFields(logrus.Fields{
			"account_id": accountID,
			"report_key": def.Key,
			"attempts":   outcome.Attempts,
			"error":      err.Error(),
		}).Error("Tarefa de extração falhou")

		return nil, domain.CommitReport{}, outcome, err
	}

	if _, err := o.tables.Ensure(ctx, def); err != nil {
		return fail(err)
	}

	result, err := o.fetchWithRetry(ctx, accountID, def, startDate, endDate, outcome)
	if err != nil {
		return fail(err)
	}

	// Commit por dia da janela: cada partição (conta, data) é substituída
	// de forma independente e idempotente
	var commit domain.CommitReport
	for day := startDate; !day.After(endDate); day = day.AddDate(0, 0, 1) {
		dayResult := filterResultByDate(result, day, startDate)

		dayCommit, err := o.loader.Commit(ctx, def, dayResult, accountID, day)
		if err != nil {
			return fail(err)
		}

		commit.RowsWritten += dayCommit.RowsWritten
		commit.RowsSkipped += dayCommit.RowsSkipped
	}

	outcome.State = domain.TaskSucceeded
	outcome.RowCount = result.RowCount
	outcome.RowsWritten = commit.RowsWritten
	outcome.Duration = time.Since(taskStart)

	logrus.WithFields(logrus.Fields{
		"account_id":   accountID,
		"report_key":   def.Key,
		"rows":         result.RowCount,
		"rows_written": commit.RowsWritten,
		"duration":     outcome.Duration.String(),
	}).Info("Tarefa de extração concluída")

	return result, commit, outcome, nil
}

// fetchWithRetry consulta o upstream com backoff exponencial para erros
// retentáveis (rate limit, indisponibilidade). Erros terminais
// (autenticação, cota) interrompem imediatamente.
func (o *orchestrator) fetchWithRetry(
	ctx context.Context,
	accountID string,
	def domain.ReportDefinition,
	startDate, endDate time.Time,
	outcome *domain.ReportOutcome,
) (*domain.ExtractionResult, error) {
	expBackoff := backoff.NewExponentialBackOff()
	expBackoff.InitialInterval = o.config.FetchInitialInterval

	policy := backoff.WithContext(
		backoff.WithMaxRetries(expBackoff, uint64(o.config.FetchMaxAttempts-1)),
		ctx,
	)

	var result *domain.ExtractionResult
	operation := func() error {
		outcome.Attempts++

		fetched, err := o.source.Fetch(ctx, accountID, def.Fields(), startDate, endDate, o.config.RowLimit)
		if err != nil {
			if !IsRetryable(err) || ctx.Err() != nil {
				return backoff.Permanent(err)
			}

			logrus.WithFields(logrus.Fields{
				"account_id": accountID,
				"report_key": def.Key,
				"attempt":    outcome.Attempts,
				"error":      err.Error(),
			}).Warn("Erro transitório no upstream, retentando com backoff")
			return err
		}

		result = fetched
		return nil
	}

	if err := backoff.Retry(operation, policy); err != nil {
		return nil, err
	}

	return result, nil
}

// filterResultByDate restringe um resultado às linhas de um dia específico.
// Linhas sem dimensão 'date' são atribuídas ao primeiro dia da janela, uma
// única vez: em janelas multi-dia, a linha não pode ser replicada em cada
// partição.
func filterResultByDate(result *domain.ExtractionResult, day, datelessDay time.Time) *domain.ExtractionResult {
	rows := make([]domain.Row, 0, len(result.Rows))
	for _, row := range result.Rows {
		if extractRowDate(row, datelessDay).Equal(day) {
			rows = append(rows, row)
		}
	}

	return &domain.ExtractionResult{
		ReportKey: result.ReportKey,
		AccountID: result.AccountID,
		Rows:      rows,
		RowCount:  len(rows),
		Status:    result.Status,
	}
}

// extractRowDate usa a dimensão 'date' da linha quando presente (formato
// GA4 YYYYMMDD ou YYYY-MM-DD); caso contrário, a data informada
func extractRowDate(row domain.Row, fallback time.Time) time.Time {
	raw, ok := row[domain.ColumnDate]
	if !ok {
		return fallback
	}

	str, ok := raw.(string)
	if !ok {
		return fallback
	}

	if parsed, err := time.Parse("20060102", str); err == nil {
		return parsed
	}
	if parsed, err := time.Parse(time.DateOnly, str); err == nil {
		return parsed
	}

	return fallback
}

func timedOutOutcome(accountID string, def domain.ReportDefinition, cause error) *domain.ReportOutcome {
	return &domain.ReportOutcome{
		ReportKey: def.Key,
		AccountID: accountID,
		TableName: def.TableName,
		State:     domain.TaskFailed,
		Error:     fmt.Sprintf("execução expirada antes do início da tarefa: %v", cause),
	}
}

func buildAccountSummary(accountID string, outcomes []*domain.ReportOutcome) *domain.AccountSummary {
	summary := &domain.AccountSummary{
		AccountID:    accountID,
		Outcomes:     outcomes,
		TotalReports: len(outcomes),
	}

	for _, outcome := range outcomes {
		if outcome == nil {
			continue
		}
		if outcome.State == domain.TaskSucceeded {
			summary.Successful++
			summary.TotalRowsProcessed += outcome.RowsWritten
		} else {
			summary.Failed++
		}
	}

	summary.Success = summary.Failed == 0 && summary.Successful == summary.TotalReports
	return summary
}

func aggregateTotals(summary *domain.RunSummary) {
	for _, account := range summary.Accounts {
		summary.TotalReports += account.TotalReports
		summary.Successful += account.Successful
		summary.Failed += account.Failed
		summary.TotalRowsProcessed += account.TotalRowsProcessed
	}
	summary.Success = summary.Failed == 0
}
