package catalog

import (
	"strings"

	"github.com/cadastra/analytics-extractor-api/internal/domain"
)

// Chaves dos relatórios de dimensão
const (
	ReportDimUsuario     = "USUARIO"
	ReportDimGeografica  = "GEOGRAFICA"
	ReportDimDispositivo = "DISPOSITIVO"
	ReportDimAquisicao   = "AQUISICAO"
	ReportDimPagina      = "PAGINA"
	ReportDimEvento      = "EVENTO"
	ReportDimPublico     = "PUBLICO"
)

// Chaves dos relatórios de métrica
const (
	ReportMetUsuarios     = "USUARIOS"
	ReportMetSessao       = "SESSAO"
	ReportMetEventos      = "EVENTOS"
	ReportMetVisualizacao = "VISUALIZACAO"
	ReportMetEcommerce    = "ECOMMERCE"
)

// baseColumns retorna as colunas presentes em todas as tabelas de relatório.
// A coluna 'date' é a coluna de particionamento; 'ga4_session_key' relaciona
// linhas de relatórios independentes da mesma conta/dia.
func baseColumns() []domain.Column {
	return []domain.Column{
		{Name: domain.ColumnPK, Type: domain.ColumnTypeString, Required: true},
		{Name: domain.ColumnSessionKey, Type: domain.ColumnTypeString, Required: true},
		{Name: domain.ColumnPropertyID, Type: domain.ColumnTypeString, Required: true},
		{Name: domain.ColumnDate, Type: domain.ColumnTypeDate, Required: true},
		{Name: domain.ColumnLastUpdate, Type: domain.ColumnTypeTimestamp, Required: true},
	}
}

// metricColumnType infere o tipo de coluna de uma métrica do GA4: taxas,
// médias e durações são FLOAT, valores monetários são FLOAT, contagens
// são INTEGER
func metricColumnType(metric string) domain.ColumnType {
	lower := strings.ToLower(metric)

	for _, keyword := range []string{"rate", "per", "average", "duration"} {
		if strings.Contains(lower, keyword) {
			return domain.ColumnTypeFloat
		}
	}

	for _, keyword := range []string{"revenue", "amount", "value"} {
		if strings.Contains(lower, keyword) {
			return domain.ColumnTypeFloat
		}
	}

	return domain.ColumnTypeInteger
}

// buildSchema monta o schema de uma tabela de relatório: colunas base,
// seguidas das dimensões (STRING opcionais) e das métricas tipadas
func buildSchema(dimensions, metrics []string) domain.TableSchema {
	columns := baseColumns()

	for _, dim := range dimensions {
		columns = append(columns, domain.Column{
			Name: dim,
			Type: domain.ColumnTypeString,
		})
	}

	for _, met := range metrics {
		columns = append(columns, domain.Column{
			Name: met,
			Type: metricColumnType(met),
		})
	}

	return domain.TableSchema{
		PartitionColumn: domain.ColumnDate,
		Columns:         columns,
	}
}

func newReport(
	key string,
	category domain.ReportCategory,
	description string,
	tableName string,
	dimensions []string,
	metrics []string,
) domain.ReportDefinition {
	return domain.ReportDefinition{
		Key:         key,
		Category:    category,
		Description: description,
		Dimensions:  dimensions,
		Metrics:     metrics,
		TableName:   tableName,
		Schema:      buildSchema(dimensions, metrics),
	}
}

// defaultReports retorna as definições de todos os relatórios GA4 do catálogo
// padrão, na ordem de enumeração: dimensões primeiro, métricas em seguida
func defaultReports() []domain.ReportDefinition {
	return []domain.ReportDefinition{
		newReport(
			ReportDimUsuario,
			domain.CategoryDimension,
			"Dimensões de usuário",
			"TB_001_GA4_DIM_USUARIO",
			[]string{"newVsReturning", "userAgeBracket", "userGender"},
			[]string{"activeUsers", "newUsers", "totalUsers", "sessions"},
		),
		newReport(
			ReportDimGeografica,
			domain.CategoryDimension,
			"Dimensões geográficas",
			"TB_002_GA4_DIM_GEOGRAFICA",
			[]string{"city", "cityId", "country", "countryId", "region", "continent", "continentId"},
			[]string{"activeUsers", "sessions", "screenPageViews", "newUsers"},
		),
		newReport(
			ReportDimDispositivo,
			domain.CategoryDimension,
			"Dimensões de dispositivo/tecnologia",
			"TB_003_GA4_DIM_DISPOSITIVO",
			[]string{"browser", "deviceCategory", "operatingSystem", "operatingSystemVersion", "platform", "screenResolution"},
			[]string{"activeUsers", "sessions", "screenPageViews", "bounceRate"},
		),
		newReport(
			ReportDimAquisicao,
			domain.CategoryDimension,
			"Dimensões de aquisição/campanha",
			"TB_004_GA4_DIM_AQUISICAO",
			[]string{"source", "medium", "sourceMedium", "campaignId", "campaignName", "defaultChannelGroup"},
			[]string{"activeUsers", "sessions", "newUsers", "conversions", "totalRevenue"},
		),
		newReport(
			ReportDimPagina,
			domain.CategoryDimension,
			"Dimensões de página/conteúdo",
			"TB_005_GA4_DIM_PAGINA",
			[]string{"pagePath", "pageTitle", "landingPage", "hostName"},
			[]string{"activeUsers", "sessions", "screenPageViews", "averageSessionDuration", "bounceRate"},
		),
		newReport(
			ReportDimEvento,
			domain.CategoryDimension,
			"Dimensões de evento",
			"TB_006_GA4_DIM_EVENTO",
			[]string{"eventName", "isConversionEvent"},
			[]string{"eventCount", "eventCountPerUser", "conversions", "eventValue", "activeUsers"},
		),
		newReport(
			ReportDimPublico,
			domain.CategoryDimension,
			"Dimensões de público-alvo",
			"TB_007_GA4_DIM_PUBLICO",
			[]string{"audienceId", "audienceName"},
			[]string{"activeUsers", "totalUsers", "newUsers", "sessions"},
		),
		newReport(
			ReportMetUsuarios,
			domain.CategoryMetric,
			"Métricas de usuários",
			"TB_008_GA4_MET_USUARIOS",
			nil,
			[]string{"activeUsers", "newUsers", "totalUsers", "active1DayUsers", "active7DayUsers", "active28DayUsers", "dauPerMau", "dauPerWau", "wauPerMau"},
		),
		newReport(
			ReportMetSessao,
			domain.CategoryMetric,
			"Métricas de sessão",
			"TB_009_GA4_MET_SESSAO",
			nil,
			[]string{"sessions", "sessionsPerUser", "averageSessionDuration", "bounceRate", "engagedSessions", "engagementRate", "userEngagementDuration"},
		),
		newReport(
			ReportMetEventos,
			domain.CategoryMetric,
			"Métricas de eventos",
			"TB_010_GA4_MET_EVENTOS",
			nil,
			[]string{"eventCount", "eventCountPerUser", "eventsPerSession", "conversions", "eventValue"},
		),
		newReport(
			ReportMetVisualizacao,
			domain.CategoryMetric,
			"Métricas de visualização",
			"TB_011_GA4_MET_VISUALIZACAO",
			nil,
			[]string{"screenPageViews", "screenPageViewsPerSession", "screenPageViewsPerUser"},
		),
		newReport(
			ReportMetEcommerce,
			domain.CategoryMetric,
			"Métricas de e-commerce",
			"TB_012_GA4_MET_ECOMMERCE",
			nil,
			[]string{"totalRevenue", "purchaseRevenue", "transactions", "ecommercePurchases", "averagePurchaseRevenue", "averageRevenuePerUser", "addToCarts", "checkouts", "cartToViewRate", "purchaseToViewRate"},
		),
	}
}
