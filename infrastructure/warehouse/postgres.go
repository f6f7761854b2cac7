// Package warehouse implementa a fronteira de armazenamento analítico sobre
// PostgreSQL. Cada relatório do catálogo tem uma tabela própria com uma
// coluna de particionamento por data; a troca de partição é feita com
// DELETE + INSERT dentro de uma única transação.
package warehouse

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"github.com/cadastra/analytics-extractor-api/infrastructure/database/postgres"
	"github.com/cadastra/analytics-extractor-api/internal/domain"
	"github.com/cadastra/analytics-extractor-api/internal/usecases/extracting"
)

// Código SQLSTATE do PostgreSQL para tabela duplicada (duplicate_table)
const pgDuplicateTableCode = "42P07"

// Tamanho máximo de lote de um INSERT multi-values
const insertBatchSize = 500

type PostgresWarehouse struct {
	conn *postgres.Connection
}

func NewPostgresWarehouse(conn *postgres.Connection) extracting.Warehouse {
	return &PostgresWarehouse{conn: conn}
}

// physicalName normaliza o nome lógico da tabela do catálogo para o nome
// físico no PostgreSQL (identificadores sem aspas são minúsculos)
func physicalName(name string) string {
	return strings.ToLower(name)
}

func (w *PostgresWarehouse) TableExists(ctx context.Context, name string) (bool, error) {
	query, args, err := squirrel.
		Select("COUNT(1)").
		From("information_schema.tables").
		Where(squirrel.Eq{
			"table_schema": "public",
			"table_name":   physicalName(name),
		}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var count int
	if err := w.conn.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return false, fmt.Errorf("erro ao consultar existência da tabela %s: %w", name, err)
	}

	return count > 0, nil
}

func (w *PostgresWarehouse) CreateTable(ctx context.Context, name string, schema domain.TableSchema) error {
	columnDefs := make([]string, 0, len(schema.Columns))
	for _, col := range schema.Columns {
		def := fmt.Sprintf("%s %s", physicalName(col.Name), sqlType(col.Type))
		if col.Required {
			def += " NOT NULL"
		}
		columnDefs = append(columnDefs, def)
	}

	table := physicalName(name)
	ddl := fmt.Sprintf("CREATE TABLE %s (%s)", table, strings.Join(columnDefs, ", "))

	if _, err := w.conn.Exec(ctx, ddl); err != nil {
		if pqErr, ok := err.(*pq.Error); ok && string(pqErr.Code) == pgDuplicateTableCode {
			return extracting.ErrTableAlreadyExists
		}
		return fmt.Errorf("erro ao criar tabela %s: %w", name, err)
	}

	// Índice da partição (conta, data) para a troca de partição e as
	// junções via chave de sessão
	indexDDL := fmt.Sprintf(
		"CREATE INDEX IF NOT EXISTS idx_%s_partition ON %s (%s, %s)",
		table, table, physicalName(domain.ColumnPropertyID), physicalName(schema.PartitionColumn),
	)
	if _, err := w.conn.Exec(ctx, indexDDL); err != nil {
		return fmt.Errorf("erro ao criar índice de partição da tabela %s: %w", name, err)
	}

	return nil
}

func (w *PostgresWarehouse) GetSchema(ctx context.Context, name string) (domain.TableSchema, error) {
	query, args, err := squirrel.
		Select("column_name", "data_type", "is_nullable").
		From("information_schema.columns").
		Where(squirrel.Eq{
			"table_schema": "public",
			"table_name":   physicalName(name),
		}).
		OrderBy("ordinal_position").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return domain.TableSchema{}, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := w.conn.Query(ctx, query, args...)
	if err != nil {
		return domain.TableSchema{}, fmt.Errorf("erro ao consultar schema da tabela %s: %w", name, err)
	}
	defer rows.Close()

	schema := domain.TableSchema{PartitionColumn: domain.ColumnDate}

	for rows.Next() {
		var columnName, dataType, isNullable string
		if err := rows.Scan(&columnName, &dataType, &isNullable); err != nil {
			return domain.TableSchema{}, fmt.Errorf("erro ao escanear coluna da tabela %s: %w", name, err)
		}

		schema.Columns = append(schema.Columns, domain.Column{
			Name:     columnName,
			Type:     columnType(dataType),
			Required: isNullable == "NO",
		})
	}

	if err := rows.Err(); err != nil {
		return domain.TableSchema{}, fmt.Errorf("erro durante a iteração de colunas: %w", err)
	}

	return schema, nil
}

func (w *PostgresWarehouse) DeletePartition(ctx context.Context, name string, partition domain.Partition) (int64, error) {
	query, args, err := deletePartitionSQL(name, partition)
	if err != nil {
		return 0, err
	}

	result, err := w.conn.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("erro ao deletar partição de %s: %w", name, err)
	}

	return result.RowsAffected()
}

func (w *PostgresWarehouse) InsertRows(ctx context.Context, name string, rows []domain.WarehouseRow) error {
	if len(rows) == 0 {
		return nil
	}

	statements, err := insertStatements(name, rows)
	if err != nil {
		return err
	}

	for _, stmt := range statements {
		if _, err := w.conn.Exec(ctx, stmt.query, stmt.args...); err != nil {
			return wrapPGError(name, err)
		}
	}

	return nil
}

// ReplacePartition substitui a partição (conta, data) de uma tabela de
// forma atômica: o DELETE e os INSERTs executam na mesma transação, então
// ou a partição inteira é trocada ou o estado anterior permanece intacto.
// Commits concorrentes para a mesma partição serializam pelos locks de
// linha do PostgreSQL; a última transação a comitar prevalece.
func (w *PostgresWarehouse) ReplacePartition(
	ctx context.Context,
	name string,
	partition domain.Partition,
	rows []domain.WarehouseRow,
) (int64, error) {
	deleteQuery, deleteArgs, err := deletePartitionSQL(name, partition)
	if err != nil {
		return 0, err
	}

	statements, err := insertStatements(name, rows)
	if err != nil {
		return 0, err
	}

	var deleted int64
	err = w.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, deleteQuery, deleteArgs...)
		if err != nil {
			return wrapPGError(name, err)
		}
		deleted, _ = result.RowsAffected()

		for _, stmt := range statements {
			if _, err := tx.ExecContext(ctx, stmt.query, stmt.args...); err != nil {
				return wrapPGError(name, err)
			}
		}

		return nil
	})
	if err != nil {
		return 0, err
	}

	logrus.WithFields(logrus.Fields{
		"table":        name,
		"account_id":   partition.AccountID,
		"date":         partition.Date.Format(time.DateOnly),
		"rows_deleted": deleted,
		"rows_written": len(rows),
	}).Debug("Partição substituída")

	return int64(len(rows)), nil
}

type statement struct {
	query string
	args  []interface{}
}

func deletePartitionSQL(name string, partition domain.Partition) (string, []interface{}, error) {
	accountID := strings.TrimPrefix(partition.AccountID, "properties/")

	query, args, err := squirrel.
		Delete(physicalName(name)).
		Where(squirrel.Eq{
			physicalName(domain.ColumnPropertyID): accountID,
			physicalName(domain.ColumnDate):       partition.Date.Format(time.DateOnly),
		}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	return query, args, nil
}

// insertStatements monta INSERTs multi-values em lotes. As colunas são
// derivadas da primeira linha em ordem estável; todas as linhas de um
// commit têm o mesmo conjunto de colunas.
func insertStatements(name string, rows []domain.WarehouseRow) ([]statement, error) {
	if len(rows) == 0 {
		return nil, nil
	}

	columns := make([]string, 0, len(rows[0]))
	for column := range rows[0] {
		columns = append(columns, column)
	}
	sort.Strings(columns)

	physicalColumns := make([]string, len(columns))
	for i, column := range columns {
		physicalColumns[i] = physicalName(column)
	}

	statements := make([]statement, 0, (len(rows)+insertBatchSize-1)/insertBatchSize)

	for start := 0; start < len(rows); start += insertBatchSize {
		end := start + insertBatchSize
		if end > len(rows) {
			end = len(rows)
		}

		builder := squirrel.
			Insert(physicalName(name)).
			Columns(physicalColumns...).
			PlaceholderFormat(squirrel.Dollar)

		for _, row := range rows[start:end] {
			values := make([]interface{}, len(columns))
			for i, column := range columns {
				values[i] = row[column]
			}
			builder = builder.Values(values...)
		}

		query, args, err := builder.ToSql()
		if err != nil {
			return nil, fmt.Errorf("erro ao construir a query: %w", err)
		}

		statements = append(statements, statement{query: query, args: args})
	}

	return statements, nil
}

func wrapPGError(table string, err error) error {
	if pqErr, ok := err.(*pq.Error); ok {
		return fmt.Errorf("erro no banco de dados na tabela %s: %w (código: %s)", table, pqErr, pqErr.Code)
	}
	return fmt.Errorf("erro ao executar a query na tabela %s: %w", table, err)
}

func sqlType(columnType domain.ColumnType) string {
	switch columnType {
	case domain.ColumnTypeString:
		return "TEXT"
	case domain.ColumnTypeInteger:
		return "BIGINT"
	case domain.ColumnTypeFloat:
		return "DOUBLE PRECISION"
	case domain.ColumnTypeDate:
		return "DATE"
	case domain.ColumnTypeTimestamp:
		return "TIMESTAMPTZ"
	default:
		return "TEXT"
	}
}

func columnType(dataType string) domain.ColumnType {
	switch dataType {
	case "text", "character varying", "character":
		return domain.ColumnTypeString
	case "bigint", "integer", "smallint":
		return domain.ColumnTypeInteger
	case "double precision", "real", "numeric":
		return domain.ColumnTypeFloat
	case "date":
		return domain.ColumnTypeDate
	case "timestamp with time zone", "timestamp without time zone":
		return domain.ColumnTypeTimestamp
	default:
		return domain.ColumnTypeString
	}
}
