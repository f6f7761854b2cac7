package domain

import (
	"fmt"
	"strings"
	"time"
)

// Row é uma linha retornada pelo upstream: nome do campo -> valor escalar
type Row map[string]any

// WarehouseRow é uma linha pronta para inserção no warehouse:
// nome da coluna -> valor
type WarehouseRow map[string]any

// Nomes das colunas base presentes em todas as tabelas de relatório
const (
	ColumnPK         = "pk"
	ColumnSessionKey = "ga4_session_key"
	ColumnPropertyID = "property_id"
	ColumnDate       = "date"
	ColumnLastUpdate = "last_update"
)

// SessionKey deriva a chave de junção entre tabelas de relatórios
// independentes: "<property_id>_<YYYY-MM-DD>". É determinística por
// (conta, data), o que permite relacionar linhas sem identidade upstream.
func SessionKey(accountID string, date time.Time) string {
	cleanID := strings.TrimPrefix(accountID, "properties/")
	return fmt.Sprintf("%s_%s", cleanID, date.Format(time.DateOnly))
}

// Partition identifica a fatia de uma tabela correspondente a uma conta
// em um dia
type Partition struct {
	AccountID string
	Date      time.Time
}

// ExtractionRequest representa uma requisição de extração para uma conta,
// um relatório e uma janela de datas
type ExtractionRequest struct {
	AccountID string
	ReportKey string
	StartDate time.Time
	EndDate   time.Time
}

// ExtractionStatus indica o resultado de uma extração no upstream
type ExtractionStatus string

const (
	ExtractionSuccess ExtractionStatus = "SUCCESS"
	ExtractionFailed  ExtractionStatus = "FAILED"
)

// ExtractionResult é o resultado transitório de uma consulta ao upstream,
// consumido pelo Loader e descartado em seguida
type ExtractionResult struct {
	ReportKey string
	AccountID string
	Rows      []Row
	RowCount  int
	Status    ExtractionStatus
	Error     string
}

// CommitReport resume o resultado de um commit no warehouse
type CommitReport struct {
	RowsWritten int `json:"rows_written"`
	RowsSkipped int `json:"rows_skipped"`
}

// TaskState representa o estado de uma tarefa de extração
type TaskState string

const (
	TaskPending   TaskState = "PENDING"
	TaskRunning   TaskState = "RUNNING"
	TaskSucceeded TaskState = "SUCCEEDED"
	TaskFailed    TaskState = "FAILED"
)

// ReportOutcome é o desfecho de uma tarefa (conta x relatório)
type ReportOutcome struct {
	ReportKey   string        `json:"report_key"`
	AccountID   string        `json:"account_id"`
	TableName   string        `json:"table"`
	State       TaskState     `json:"state"`
	RowCount    int           `json:"row_count"`
	RowsWritten int           `json:"rows_written"`
	Attempts    int           `json:"attempts"`
	Duration    time.Duration `json:"duration_ns"`
	Error       string        `json:"error,omitempty"`
}

// AccountSummary agrega os desfechos de todos os relatórios de uma conta.
// Os desfechos são reportados na ordem de enumeração do catálogo,
// independente da ordem de conclusão das tarefas.
type AccountSummary struct {
	AccountID          string           `json:"account_id"`
	Outcomes           []*ReportOutcome `json:"reports"`
	TotalReports       int              `json:"total_reports"`
	Successful         int              `json:"successful"`
	Failed             int              `json:"failed"`
	TotalRowsProcessed int              `json:"total_rows_processed"`
	Success            bool             `json:"success"`
}

// RunSummary agrega o resultado de uma execução completa do orquestrador
type RunSummary struct {
	RunID              string            `json:"run_id"`
	StartDate          time.Time         `json:"start_date"`
	EndDate            time.Time         `json:"end_date"`
	Accounts           []*AccountSummary `json:"accounts"`
	TotalReports       int               `json:"total_reports"`
	Successful         int               `json:"successful"`
	Failed             int               `json:"failed"`
	TotalRowsProcessed int               `json:"total_rows_processed"`
	StartedAt          time.Time         `json:"started_at"`
	FinishedAt         time.Time         `json:"finished_at"`
	Success            bool              `json:"success"`
}
