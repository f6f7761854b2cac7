package extracting

import (
	"context"
	"time"

	"github.com/cadastra/analytics-extractor-api/internal/domain"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

// SourceClient executa uma consulta delimitada contra o upstream e retorna
// as linhas na ordem devolvida pela fonte, sem reordenação
type SourceClient interface {
	Fetch(
		ctx context.Context,
		accountID string,
		fields []string,
		startDate time.Time,
		endDate time.Time,
		limit int,
	) (*domain.ExtractionResult, error)
}

// Warehouse é a fronteira com o armazenamento analítico. ReplacePartition
// é o composto transacional de DeletePartition + InsertRows: ou a troca da
// partição inteira é aplicada, ou o estado anterior é preservado.
type Warehouse interface {
	TableExists(ctx context.Context, name string) (bool, error)
	CreateTable(ctx context.Context, name string, schema domain.TableSchema) error
	GetSchema(ctx context.Context, name string) (domain.TableSchema, error)
	DeletePartition(ctx context.Context, name string, partition domain.Partition) (int64, error)
	InsertRows(ctx context.Context, name string, rows []domain.WarehouseRow) error
	ReplacePartition(ctx context.Context, name string, partition domain.Partition, rows []domain.WarehouseRow) (int64, error)
}

// EnsureOutcome é o desfecho de uma chamada a TableManager.Ensure
type EnsureOutcome string

const (
	OutcomeCreated  EnsureOutcome = "CREATED"
	OutcomeReused   EnsureOutcome = "REUSED"
	OutcomeMismatch EnsureOutcome = "MISMATCH"
)

// TableManager garante a existência da tabela de destino de um relatório
// com o schema esperado, de forma idempotente e segura sob concorrência
type TableManager interface {
	Ensure(ctx context.Context, def domain.ReportDefinition) (EnsureOutcome, error)
}

// Loader converte o resultado de uma extração em linhas do warehouse e as
// grava com semântica replace-partition
type Loader interface {
	Commit(
		ctx context.Context,
		def domain.ReportDefinition,
		result *domain.ExtractionResult,
		accountID string,
		date time.Time,
	) (domain.CommitReport, error)
}

// SingleRunResult é o retorno de RunOne: o resultado bruto da extração,
// o relatório de commit e o desfecho consolidado da tarefa
type SingleRunResult struct {
	Result  *domain.ExtractionResult `json:"extraction"`
	Commit  domain.CommitReport      `json:"commit"`
	Outcome *domain.ReportOutcome    `json:"outcome"`
}

// Orchestrator resolve e executa tarefas de extração e agrega os desfechos
type Orchestrator interface {
	Run(ctx context.Context, accounts []string, reportKeys []string, startDate, endDate time.Time) (*domain.RunSummary, error)
	RunOne(ctx context.Context, accountID, reportKey string, startDate, endDate time.Time) (*SingleRunResult, error)
	EnsureAllTables(ctx context.Context) error
}
