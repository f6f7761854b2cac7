package extracting

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/cadastra/analytics-extractor-api/internal/domain"
)

// tableManager garante a existência das tabelas de destino. Cada tabela tem
// seu próprio mutex: chamadas concorrentes para a mesma tabela serializam,
// chamadas para tabelas distintas não se bloqueiam.
type tableManager struct {
	warehouse Warehouse

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewTableManager cria um TableManager sobre a fronteira do warehouse
func NewTableManager(warehouse Warehouse) TableManager {
	return &tableManager{
		warehouse: warehouse,
		locks:     make(map[string]*sync.Mutex),
	}
}

func (m *tableManager) tableLock(name string) *sync.Mutex {
	m.mu.Lock()
	defer m.mu.Unlock()

	lock, ok := m.locks[name]
	if !ok {
		lock = &sync.Mutex{}
		m.locks[name] = lock
	}
	return lock
}

// Ensure cria a tabela do relatório se ausente, particionada pela coluna de
// data do schema. Se a tabela já existe, compara o schema existente com o
// esperado: igual é no-op (REUSED), divergente é SchemaMismatchError
// (MISMATCH) sem nenhuma alteração na tabela.
func (m *tableManager) Ensure(ctx context.Context, def domain.ReportDefinition) (EnsureOutcome, error) {
	lock := m.tableLock(def.TableName)
	lock.Lock()
	defer lock.Unlock()

	exists, err := m.warehouse.TableExists(ctx, def.TableName)
	if err != nil {
		return OutcomeMismatch, fmt.Errorf("erro ao verificar existência da tabela %s: %w", def.TableName, err)
	}

	if exists {
		return m.verifySchema(ctx, def)
	}

	if err := m.warehouse.CreateTable(ctx, def.TableName, def.Schema); err != nil {
		// Outra instância pode ter criado a tabela entre a verificação e o
		// CREATE; nesse caso a segunda chamada apenas valida o schema
		if errors.Is(err, ErrTableAlreadyExists) {
			return m.verifySchema(ctx, def)
		}
		return OutcomeMismatch, fmt.Errorf("erro ao criar a tabela %s: %w", def.TableName, err)
	}

	logrus.WithFields(logrus.Fields{
		"table":            def.TableName,
		"report_key":       def.Key,
		"partition_column": def.Schema.PartitionColumn,
	}).Info("Tabela criada no warehouse")

	return OutcomeCreated, nil
}

func (m *tableManager) verifySchema(ctx context.Context, def domain.ReportDefinition) (EnsureOutcome, error) {
	existing, err := m.warehouse.GetSchema(ctx, def.TableName)
	if err != nil {
		return OutcomeMismatch, fmt.Errorf("erro ao obter schema da tabela %s: %w", def.TableName, err)
	}

	if detail := compareSchemas(existing, def.Schema); detail != "" {
		return OutcomeMismatch, &SchemaMismatchError{
			TableName: def.TableName,
			Detail:    detail,
		}
	}

	return OutcomeReused, nil
}

// compareSchemas compara dois schemas ignorando a ordem das colunas. Os
// nomes são comparados sem distinção de caixa, já que o PostgreSQL
// normaliza identificadores sem aspas para minúsculas. Retorna a descrição
// da primeira divergência encontrada, ou vazio se os schemas são
// equivalentes.
func compareSchemas(existing, expected domain.TableSchema) string {
	existingByName := make(map[string]domain.Column, len(existing.Columns))
	for _, col := range existing.Columns {
		existingByName[strings.ToLower(col.Name)] = col
	}

	for _, want := range expected.Columns {
		got, ok := existingByName[strings.ToLower(want.Name)]
		if !ok {
			return fmt.Sprintf("coluna %s ausente na tabela existente", want.Name)
		}
		if got.Type != want.Type {
			return fmt.Sprintf("coluna %s com tipo %s, esperado %s", want.Name, got.Type, want.Type)
		}
		if got.Required != want.Required {
			return fmt.Sprintf("coluna %s com obrigatoriedade %t, esperado %t", want.Name, got.Required, want.Required)
		}
		delete(existingByName, strings.ToLower(want.Name))
	}

	for name := range existingByName {
		return fmt.Sprintf("coluna %s presente na tabela mas ausente no catálogo", name)
	}

	return ""
}
