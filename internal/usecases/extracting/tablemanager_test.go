package extracting_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/cadastra/analytics-extractor-api/internal/domain"
	"github.com/cadastra/analytics-extractor-api/internal/usecases/extracting"
	"github.com/cadastra/analytics-extractor-api/internal/usecases/extracting/mocks"
)

func testReportDef() domain.ReportDefinition {
	return domain.ReportDefinition{
		Key:       "USUARIOS",
		Category:  domain.CategoryMetric,
		TableName: "TB_008_GA4_MET_USUARIOS",
		Metrics:   []string{"activeUsers", "bounceRate"},
		Schema: domain.TableSchema{
			PartitionColumn: domain.ColumnDate,
			Columns: []domain.Column{
				{Name: domain.ColumnPK, Type: domain.ColumnTypeString, Required: true},
				{Name: domain.ColumnSessionKey, Type: domain.ColumnTypeString, Required: true},
				{Name: domain.ColumnPropertyID, Type: domain.ColumnTypeString, Required: true},
				{Name: domain.ColumnDate, Type: domain.ColumnTypeDate, Required: true},
				{Name: domain.ColumnLastUpdate, Type: domain.ColumnTypeTimestamp, Required: true},
				{Name: "activeUsers", Type: domain.ColumnTypeInteger},
				{Name: "bounceRate", Type: domain.ColumnTypeFloat},
			},
		},
	}
}

// shuffledSchema retorna o mesmo schema com as colunas em outra ordem
func shuffledSchema(schema domain.TableSchema) domain.TableSchema {
	columns := make([]domain.Column, 0, len(schema.Columns))
	for i := len(schema.Columns) - 1; i >= 0; i-- {
		columns = append(columns, schema.Columns[i])
	}
	return domain.TableSchema{
		PartitionColumn: schema.PartitionColumn,
		Columns:         columns,
	}
}

func TestTableManager_Ensure(t *testing.T) {
	def := testReportDef()

	tests := []struct {
		name     string
		setup    func(warehouse *mocks.MockWarehouse)
		validate func(t *testing.T, outcome extracting.EnsureOutcome, err error)
	}{
		{
			name: "Tabela ausente é criada com o schema do catálogo",
			setup: func(warehouse *mocks.MockWarehouse) {
				warehouse.EXPECT().
					TableExists(gomock.Any(), def.TableName).
					Return(false, nil)
				warehouse.EXPECT().
					CreateTable(gomock.Any(), def.TableName, def.Schema).
					Return(nil)
			},
			validate: func(t *testing.T, outcome extracting.EnsureOutcome, err error) {
				assert.NoError(t, err)
				assert.Equal(t, extracting.OutcomeCreated, outcome)
			},
		},
		{
			name: "Tabela existente com schema igual é no-op",
			setup: func(warehouse *mocks.MockWarehouse) {
				warehouse.EXPECT().
					TableExists(gomock.Any(), def.TableName).
					Return(true, nil)
				warehouse.EXPECT().
					GetSchema(gomock.Any(), def.TableName).
					Return(def.Schema, nil)
			},
			validate: func(t *testing.T, outcome extracting.EnsureOutcome, err error) {
				assert.NoError(t, err)
				assert.Equal(t, extracting.OutcomeReused, outcome)
			},
		},
		{
			name: "Ordem das colunas não é divergência",
			setup: func(warehouse *mocks.MockWarehouse) {
				warehouse.EXPECT().
					TableExists(gomock.Any(), def.TableName).
					Return(true, nil)
				warehouse.EXPECT().
					GetSchema(gomock.Any(), def.TableName).
					Return(shuffledSchema(def.Schema), nil)
			},
			validate: func(t *testing.T, outcome extracting.EnsureOutcome, err error) {
				assert.NoError(t, err)
				assert.Equal(t, extracting.OutcomeReused, outcome)
			},
		},
		{
			name: "Nomes de colunas minúsculos do banco não são divergência",
			setup: func(warehouse *mocks.MockWarehouse) {
				lowered := shuffledSchema(def.Schema)
				for i := range lowered.Columns {
					lowered.Columns[i].Name = strings.ToLower(lowered.Columns[i].Name)
				}

				warehouse.EXPECT().
					TableExists(gomock.Any(), def.TableName).
					Return(true, nil)
				warehouse.EXPECT().
					GetSchema(gomock.Any(), def.TableName).
					Return(lowered, nil)
			},
			validate: func(t *testing.T, outcome extracting.EnsureOutcome, err error) {
				assert.NoError(t, err)
				assert.Equal(t, extracting.OutcomeReused, outcome)
			},
		},
		{
			name: "Schema divergente retorna erro sem alterar a tabela",
			setup: func(warehouse *mocks.MockWarehouse) {
				divergent := def.Schema
				divergent.Columns = append([]domain.Column{}, def.Schema.Columns...)
				divergent.Columns[5] = domain.Column{Name: "activeUsers", Type: domain.ColumnTypeString}

				warehouse.EXPECT().
					TableExists(gomock.Any(), def.TableName).
					Return(true, nil)
				warehouse.EXPECT().
					GetSchema(gomock.Any(), def.TableName).
					Return(divergent, nil)
			},
			validate: func(t *testing.T, outcome extracting.EnsureOutcome, err error) {
				assert.Equal(t, extracting.OutcomeMismatch, outcome)

				var mismatchErr *extracting.SchemaMismatchError
				assert.ErrorAs(t, err, &mismatchErr)
				assert.Equal(t, def.TableName, mismatchErr.TableName)
			},
		},
		{
			name: "Coluna extra na tabela existente é divergência",
			setup: func(warehouse *mocks.MockWarehouse) {
				extra := def.Schema
				extra.Columns = append([]domain.Column{}, def.Schema.Columns...)
				extra.Columns = append(extra.Columns, domain.Column{Name: "legacy_col", Type: domain.ColumnTypeString})

				warehouse.EXPECT().
					TableExists(gomock.Any(), def.TableName).
					Return(true, nil)
				warehouse.EXPECT().
					GetSchema(gomock.Any(), def.TableName).
					Return(extra, nil)
			},
			validate: func(t *testing.T, outcome extracting.EnsureOutcome, err error) {
				assert.Equal(t, extracting.OutcomeMismatch, outcome)

				var mismatchErr *extracting.SchemaMismatchError
				assert.ErrorAs(t, err, &mismatchErr)
			},
		},
		{
			name: "Corrida de criação re-verifica o schema da vencedora",
			setup: func(warehouse *mocks.MockWarehouse) {
				warehouse.EXPECT().
					TableExists(gomock.Any(), def.TableName).
					Return(false, nil)
				warehouse.EXPECT().
					CreateTable(gomock.Any(), def.TableName, def.Schema).
					Return(extracting.ErrTableAlreadyExists)
				warehouse.EXPECT().
					GetSchema(gomock.Any(), def.TableName).
					Return(def.Schema, nil)
			},
			validate: func(t *testing.T, outcome extracting.EnsureOutcome, err error) {
				assert.NoError(t, err)
				assert.Equal(t, extracting.OutcomeReused, outcome)
			},
		},
		{
			name: "Erro do warehouse na verificação de existência é propagado",
			setup: func(warehouse *mocks.MockWarehouse) {
				warehouse.EXPECT().
					TableExists(gomock.Any(), def.TableName).
					Return(false, errors.New("conexão recusada"))
			},
			validate: func(t *testing.T, outcome extracting.EnsureOutcome, err error) {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), def.TableName)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockWarehouse := mocks.NewMockWarehouse(ctrl)
			tt.setup(mockWarehouse)

			manager := extracting.NewTableManager(mockWarehouse)

			outcome, err := manager.Ensure(context.Background(), def)
			tt.validate(t, outcome, err)
		})
	}
}

func TestTableManager_EnsureTwiceIsNoOp(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	def := testReportDef()
	mockWarehouse := mocks.NewMockWarehouse(ctrl)

	// Primeira chamada cria a tabela
	mockWarehouse.EXPECT().
		TableExists(gomock.Any(), def.TableName).
		Return(false, nil)
	mockWarehouse.EXPECT().
		CreateTable(gomock.Any(), def.TableName, def.Schema).
		Return(nil)

	// Segunda chamada apenas verifica o schema existente
	mockWarehouse.EXPECT().
		TableExists(gomock.Any(), def.TableName).
		Return(true, nil)
	mockWarehouse.EXPECT().
		GetSchema(gomock.Any(), def.TableName).
		Return(def.Schema, nil)

	manager := extracting.NewTableManager(mockWarehouse)

	outcome, err := manager.Ensure(context.Background(), def)
	assert.NoError(t, err)
	assert.Equal(t, extracting.OutcomeCreated, outcome)

	outcome, err = manager.Ensure(context.Background(), def)
	assert.NoError(t, err)
	assert.Equal(t, extracting.OutcomeReused, outcome)
}
