package extracting

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/cadastra/analytics-extractor-api/internal/domain"
)

// LoaderConfig controla o orçamento de retentativas de escrita do Loader
type LoaderConfig struct {
	WriteMaxAttempts     int
	WriteInitialInterval time.Duration
}

type loader struct {
	warehouse Warehouse
	config    LoaderConfig
	now       func() time.Time
}

// NewLoader cria um Loader com semântica replace-partition sobre o warehouse
func NewLoader(warehouse Warehouse, config LoaderConfig) Loader {
	if config.WriteMaxAttempts <= 0 {
		config.WriteMaxAttempts = 3
	}
	if config.WriteInitialInterval <= 0 {
		config.WriteInitialInterval = 500 * time.Millisecond
	}

	return &loader{
		warehouse: warehouse,
		config:    config,
		now:       time.Now,
	}
}

// Commit converte as linhas extraídas em linhas do warehouse e substitui a
// partição (conta, data) da tabela de forma atômica. Reexecuções do mesmo
// commit convergem para uma única cópia das linhas. Falhas de escrita são
// retentadas com backoff exponencial; esgotado o orçamento, retorna
// WriteError com o estado anterior da partição preservado.
func (l *loader) Commit(
	ctx context.Context,
	def domain.ReportDefinition,
	result *domain.ExtractionResult,
	accountID string,
	date time.Time,
) (domain.CommitReport, error) {
	rows, skipped := l.buildRows(def, result, accountID, date)

	partition := domain.Partition{AccountID: accountID, Date: date}

	expBackoff := backoff.NewExponentialBackOff()
	expBackoff.InitialInterval = l.config.WriteInitialInterval

	policy := backoff.WithContext(
		backoff.WithMaxRetries(expBackoff, uint64(l.config.WriteMaxAttempts-1)),
		ctx,
	)

	var written int64
	operation := func() error {
		n, err := l.warehouse.ReplacePartition(ctx, def.TableName, partition, rows)
		if err != nil {
			if ctx.Err() != nil {
				return backoff.Permanent(err)
			}
			logrus.WithFields(logrus.Fields{
				"table":      def.TableName,
				"account_id": accountID,
				"date":       date.Format(time.DateOnly),
				"error":      err.Error(),
			}).Warn("Falha transitória ao substituir partição, retentando")
			return err
		}
		written = n
		return nil
	}

	if err := backoff.Retry(operation, policy); err != nil {
		return domain.CommitReport{}, &WriteError{TableName: def.TableName, Err: err}
	}

	logrus.WithFields(logrus.Fields{
		"table":        def.TableName,
		"account_id":   accountID,
		"date":         date.Format(time.DateOnly),
		"rows_written": written,
		"rows_skipped": skipped,
	}).Info("Partição substituída no warehouse")

	return domain.CommitReport{
		RowsWritten: int(written),
		RowsSkipped: skipped,
	}, nil
}

// buildRows transforma cada linha extraída em uma WarehouseRow: chave
// primária UUID livre de colisão por commit, chave de sessão derivada de
// (conta, data), timestamp de ingestão do momento do commit e valores
// tipados conforme o schema do relatório. As colunas de data e de chave de
// sessão vêm sempre da partição do commit: toda linha escrita pertence à
// partição que o ReplacePartition substitui, senão reexecuções acumulariam
// cópias fora dela.
func (l *loader) buildRows(
	def domain.ReportDefinition,
	result *domain.ExtractionResult,
	accountID string,
	date time.Time,
) ([]domain.WarehouseRow, int) {
	ingestionTime := l.now().UTC()
	cleanAccountID := cleanPropertyID(accountID)

	rows := make([]domain.WarehouseRow, 0, len(result.Rows))
	skipped := 0

	for _, sourceRow := range result.Rows {
		if sourceRow == nil {
			skipped++
			continue
		}

		row := domain.WarehouseRow{
			domain.ColumnPK:         uuid.NewString(),
			domain.ColumnSessionKey: domain.SessionKey(accountID, date),
			domain.ColumnPropertyID: cleanAccountID,
			domain.ColumnDate:       date.Format(time.DateOnly),
			domain.ColumnLastUpdate: ingestionTime,
		}

		for _, field := range def.Fields() {
			col, ok := def.Schema.Column(field)
			if !ok {
				continue
			}
			row[field] = convertValue(sourceRow[field], col.Type)
		}

		rows = append(rows, row)
	}

	return rows, skipped
}

// convertValue converte um valor escalar do upstream para o tipo da coluna.
// Valores não conversíveis são mantidos como vieram, como faz o upstream
// com métricas desconhecidas.
func convertValue(value any, columnType domain.ColumnType) any {
	if value == nil {
		return nil
	}

	switch columnType {
	case domain.ColumnTypeInteger:
		switch v := value.(type) {
		case int, int32, int64:
			return v
		case float64:
			return int64(v)
		case string:
			if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
				return parsed
			}
			// Métricas inteiras podem vir com casas decimais do upstream
			if parsed, err := strconv.ParseFloat(v, 64); err == nil {
				return int64(parsed)
			}
		}
		return value

	case domain.ColumnTypeFloat:
		switch v := value.(type) {
		case float32, float64:
			return v
		case int:
			return float64(v)
		case int64:
			return float64(v)
		case string:
			if parsed, err := strconv.ParseFloat(v, 64); err == nil {
				return parsed
			}
		}
		return value

	case domain.ColumnTypeString:
		if s, ok := value.(string); ok {
			return s
		}
		return fmt.Sprintf("%v", value)

	default:
		return value
	}
}

func cleanPropertyID(accountID string) string {
	return strings.TrimPrefix(accountID, "properties/")
}
