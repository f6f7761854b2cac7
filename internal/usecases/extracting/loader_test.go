package extracting_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/cadastra/analytics-extractor-api/internal/domain"
	"github.com/cadastra/analytics-extractor-api/internal/usecases/extracting"
	"github.com/cadastra/analytics-extractor-api/internal/usecases/extracting/mocks"
)

func testLoaderConfig() extracting.LoaderConfig {
	return extracting.LoaderConfig{
		WriteMaxAttempts:     3,
		WriteInitialInterval: time.Millisecond,
	}
}

func TestLoader_Commit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	def := testReportDef()
	day := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)
	accountID := "properties/123456"

	result := &domain.ExtractionResult{
		AccountID: accountID,
		Rows: []domain.Row{
			{"date": "20240510", "activeUsers": "42", "bounceRate": "0.37"},
			{"date": "20240510", "activeUsers": "7", "bounceRate": "0.52"},
		},
		RowCount: 2,
		Status:   domain.ExtractionSuccess,
	}

	var captured []domain.WarehouseRow

	mockWarehouse := mocks.NewMockWarehouse(ctrl)
	mockWarehouse.EXPECT().
		ReplacePartition(gomock.Any(), def.TableName, domain.Partition{AccountID: accountID, Date: day}, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, _ domain.Partition, rows []domain.WarehouseRow) (int64, error) {
			captured = rows
			return int64(len(rows)), nil
		})

	loader := extracting.NewLoader(mockWarehouse, testLoaderConfig())

	report, err := loader.Commit(context.Background(), def, result, accountID, day)
	require.NoError(t, err)

	assert.Equal(t, 2, report.RowsWritten)
	assert.Equal(t, 0, report.RowsSkipped)
	require.Len(t, captured, 2)

	first := captured[0]
	assert.NotEmpty(t, first[domain.ColumnPK])
	assert.Equal(t, "123456_2024-05-10", first[domain.ColumnSessionKey])
	assert.Equal(t, "123456", first[domain.ColumnPropertyID])
	assert.Equal(t, "2024-05-10", first[domain.ColumnDate])
	assert.NotNil(t, first[domain.ColumnLastUpdate])

	// Valores convertidos conforme o tipo da coluna do schema
	assert.Equal(t, int64(42), first["activeUsers"])
	assert.Equal(t, 0.37, first["bounceRate"])

	// Chaves primárias livres de colisão dentro do mesmo commit
	assert.NotEqual(t, captured[0][domain.ColumnPK], captured[1][domain.ColumnPK])
}

func TestLoader_CommitReexecutionIsIdempotent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	def := testReportDef()
	day := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)
	accountID := "properties/123456"

	result := &domain.ExtractionResult{
		AccountID: accountID,
		Rows: []domain.Row{
			{"activeUsers": "10", "bounceRate": "0.2"},
		},
		RowCount: 1,
		Status:   domain.ExtractionSuccess,
	}

	// Cada commit substitui a partição inteira: a reexecução converge para
	// uma única cópia das linhas
	mockWarehouse := mocks.NewMockWarehouse(ctrl)
	mockWarehouse.EXPECT().
		ReplacePartition(gomock.Any(), def.TableName, domain.Partition{AccountID: accountID, Date: day}, gomock.Any()).
		Return(int64(1), nil).
		Times(2)

	loader := extracting.NewLoader(mockWarehouse, testLoaderConfig())

	for i := 0; i < 2; i++ {
		report, err := loader.Commit(context.Background(), def, result, accountID, day)
		require.NoError(t, err)
		assert.Equal(t, 1, report.RowsWritten)
	}
}

func TestLoader_CommitSkipsNilRows(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	def := testReportDef()
	day := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)

	result := &domain.ExtractionResult{
		Rows: []domain.Row{
			nil,
			{"activeUsers": "3", "bounceRate": "0.9"},
		},
		RowCount: 2,
	}

	mockWarehouse := mocks.NewMockWarehouse(ctrl)
	mockWarehouse.EXPECT().
		ReplacePartition(gomock.Any(), def.TableName, gomock.Any(), gomock.Len(1)).
		Return(int64(1), nil)

	loader := extracting.NewLoader(mockWarehouse, testLoaderConfig())

	report, err := loader.Commit(context.Background(), def, result, "123456", day)
	require.NoError(t, err)

	assert.Equal(t, 1, report.RowsWritten)
	assert.Equal(t, 1, report.RowsSkipped)
}

func TestLoader_CommitRetriesAndReturnsWriteError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	def := testReportDef()
	day := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)

	result := &domain.ExtractionResult{
		Rows:     []domain.Row{{"activeUsers": "1"}},
		RowCount: 1,
	}

	// Todas as tentativas do orçamento falham: o estado anterior da
	// partição é preservado e o erro vira WriteError
	mockWarehouse := mocks.NewMockWarehouse(ctrl)
	mockWarehouse.EXPECT().
		ReplacePartition(gomock.Any(), def.TableName, gomock.Any(), gomock.Any()).
		Return(int64(0), errors.New("deadlock detected")).
		Times(3)

	loader := extracting.NewLoader(mockWarehouse, testLoaderConfig())

	report, err := loader.Commit(context.Background(), def, result, "123456", day)

	var writeErr *extracting.WriteError
	assert.ErrorAs(t, err, &writeErr)
	assert.Equal(t, def.TableName, writeErr.TableName)
	assert.Equal(t, 0, report.RowsWritten)
}

func TestLoader_EveryRowLandsInCommitPartition(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	def := testReportDef()
	day := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)

	result := &domain.ExtractionResult{
		Rows: []domain.Row{
			// Dimensão 'date' divergente da partição (formato YYYYMMDD do
			// upstream): a coluna de data vem sempre da partição do commit,
			// senão a linha cairia fora do intervalo que o ReplacePartition
			// apaga e reexecuções acumulariam cópias
			{"date": "20240509", "activeUsers": "5"},
		},
		RowCount: 1,
	}

	var captured []domain.WarehouseRow

	mockWarehouse := mocks.NewMockWarehouse(ctrl)
	mockWarehouse.EXPECT().
		ReplacePartition(gomock.Any(), def.TableName, domain.Partition{AccountID: "properties/123456", Date: day}, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, _ domain.Partition, rows []domain.WarehouseRow) (int64, error) {
			captured = rows
			return int64(len(rows)), nil
		})

	loader := extracting.NewLoader(mockWarehouse, testLoaderConfig())

	_, err := loader.Commit(context.Background(), def, result, "properties/123456", day)
	require.NoError(t, err)
	require.Len(t, captured, 1)

	assert.Equal(t, "2024-05-10", captured[0][domain.ColumnDate])
	assert.Equal(t, "123456_2024-05-10", captured[0][domain.ColumnSessionKey])
}

// Reexecuções de um commit com dimensão 'date' divergente da partição
// convergem para uma única cópia em um warehouse com a semântica real de
// deleção por data da partição
func TestLoader_CommitWithForeignRowDateConverges(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	def := testReportDef()
	day := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)

	result := &domain.ExtractionResult{
		Rows:     []domain.Row{{"date": "20240509", "activeUsers": "5"}},
		RowCount: 1,
	}

	// Tabela simulada indexada pela coluna de data, como o DELETE do
	// warehouse real enxerga as linhas
	table := make(map[string][]domain.WarehouseRow)

	mockWarehouse := mocks.NewMockWarehouse(ctrl)
	mockWarehouse.EXPECT().
		ReplacePartition(gomock.Any(), def.TableName, gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, partition domain.Partition, rows []domain.WarehouseRow) (int64, error) {
			delete(table, partition.Date.Format(time.DateOnly))
			for _, row := range rows {
				rowDate := row[domain.ColumnDate].(string)
				table[rowDate] = append(table[rowDate], row)
			}
			return int64(len(rows)), nil
		}).
		Times(2)

	loader := extracting.NewLoader(mockWarehouse, testLoaderConfig())

	for i := 0; i < 2; i++ {
		_, err := loader.Commit(context.Background(), def, result, "properties/123456", day)
		require.NoError(t, err)
	}

	total := 0
	for _, rows := range table {
		total += len(rows)
	}
	assert.Equal(t, 1, total, "reexecução idêntica deve convergir para uma única cópia")
	assert.Len(t, table["2024-05-10"], 1)
}
