package ga4domain

// DateRange delimita a janela de datas de uma consulta runReport
type DateRange struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// Dimension é uma dimensão solicitada na consulta
type Dimension struct {
	Name string `json:"name"`
}

// Metric é uma métrica solicitada na consulta
type Metric struct {
	Name string `json:"name"`
}

// RunReportRequest é o corpo da chamada POST properties/{id}:runReport
type RunReportRequest struct {
	DateRanges []DateRange `json:"dateRanges"`
	Dimensions []Dimension `json:"dimensions,omitempty"`
	Metrics    []Metric    `json:"metrics,omitempty"`
	Limit      int64       `json:"limit,omitempty"`
}

// DimensionHeader descreve uma coluna de dimensão da resposta
type DimensionHeader struct {
	Name string `json:"name"`
}

// MetricHeader descreve uma coluna de métrica da resposta
type MetricHeader struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// Value é um valor escalar retornado pela API (sempre como string)
type Value struct {
	Value string `json:"value"`
}

// ReportRow é uma linha da resposta: os valores seguem a ordem dos headers
type ReportRow struct {
	DimensionValues []Value `json:"dimensionValues"`
	MetricValues    []Value `json:"metricValues"`
}

// RunReportResponse é a resposta de properties/{id}:runReport
type RunReportResponse struct {
	DimensionHeaders []DimensionHeader `json:"dimensionHeaders"`
	MetricHeaders    []MetricHeader    `json:"metricHeaders"`
	Rows             []ReportRow       `json:"rows"`
	RowCount         int               `json:"rowCount"`
}

// MetadataField descreve um campo disponível na propriedade
type MetadataField struct {
	APIName     string `json:"apiName"`
	UIName      string `json:"uiName"`
	Description string `json:"description"`
}

// Metadata é a resposta de properties/{id}/metadata: o catálogo de
// dimensões e métricas aceitas pela propriedade
type Metadata struct {
	Dimensions []MetadataField `json:"dimensions"`
	Metrics    []MetadataField `json:"metrics"`
}
