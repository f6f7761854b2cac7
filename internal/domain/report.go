package domain

// ReportCategory indica a categoria de um relatório do catálogo
type ReportCategory string

const (
	CategoryDimension ReportCategory = "DIMENSION"
	CategoryMetric    ReportCategory = "METRIC"
)

// ColumnType representa o tipo de uma coluna no warehouse
type ColumnType string

const (
	ColumnTypeString    ColumnType = "STRING"
	ColumnTypeInteger   ColumnType = "INTEGER"
	ColumnTypeFloat     ColumnType = "FLOAT"
	ColumnTypeDate      ColumnType = "DATE"
	ColumnTypeTimestamp ColumnType = "TIMESTAMP"
)

// Column descreve uma coluna de uma tabela do warehouse
type Column struct {
	Name     string     `json:"name"`
	Type     ColumnType `json:"type"`
	Required bool       `json:"required"`
}

// TableSchema descreve o schema completo de uma tabela de destino.
// PartitionColumn é sempre uma coluna do tipo DATE presente em Columns.
type TableSchema struct {
	PartitionColumn string   `json:"partition_column"`
	Columns         []Column `json:"columns"`
}

// Column retorna a coluna com o nome informado, se existir
func (s TableSchema) Column(name string) (Column, bool) {
	for _, c := range s.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

// ReportDefinition é a definição imutável de um relatório do catálogo.
// As dimensões e métricas estão na ordem em que são enviadas ao GA4 e
// na ordem das colunas correspondentes do schema.
type ReportDefinition struct {
	Key         string         `json:"key"`
	Category    ReportCategory `json:"category"`
	Description string         `json:"description"`
	Dimensions  []string       `json:"dimensions"`
	Metrics     []string       `json:"metrics"`
	TableName   string         `json:"table_name"`
	Schema      TableSchema    `json:"schema"`
}

// Fields retorna o conjunto ordenado de campos (dimensões seguidas de métricas)
// requisitados ao upstream para este relatório
func (d ReportDefinition) Fields() []string {
	fields := make([]string, 0, len(d.Dimensions)+len(d.Metrics))
	fields = append(fields, d.Dimensions...)
	fields = append(fields, d.Metrics...)
	return fields
}
