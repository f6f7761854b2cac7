package ga4_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/cadastra/analytics-extractor-api/infrastructure/integrator/ga4"
	ga4domain "github.com/cadastra/analytics-extractor-api/infrastructure/integrator/ga4/domain"
	"github.com/cadastra/analytics-extractor-api/infrastructure/integrator/ga4/mocks"
	"github.com/cadastra/analytics-extractor-api/internal/config"
	"github.com/cadastra/analytics-extractor-api/internal/domain"
	"github.com/cadastra/analytics-extractor-api/internal/usecases/extracting"
)

func testMetadata() *ga4domain.Metadata {
	return &ga4domain.Metadata{
		Dimensions: []ga4domain.MetadataField{
			{APIName: "date"},
			{APIName: "city"},
			{APIName: "country"},
		},
		Metrics: []ga4domain.MetadataField{
			{APIName: "activeUsers"},
			{APIName: "sessions"},
		},
	}
}

func TestGA4Integrator_Fetch(t *testing.T) {
	accountID := "properties/123456"
	start := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		fields   []string
		setup    func(client *mocks.MockClient)
		validate func(t *testing.T, result *domain.ExtractionResult, err error)
	}{
		{
			name:   "Campos classificados em dimensões e métricas com 'date' sempre presente",
			fields: []string{"city", "activeUsers", "sessions"},
			setup: func(client *mocks.MockClient) {
				client.EXPECT().
					GetMetadata(gomock.Any(), accountID).
					Return(testMetadata(), nil)

				expectedRequest := &ga4domain.RunReportRequest{
					DateRanges: []ga4domain.DateRange{{StartDate: "2024-05-01", EndDate: "2024-05-02"}},
					Dimensions: []ga4domain.Dimension{{Name: "date"}, {Name: "city"}},
					Metrics:    []ga4domain.Metric{{Name: "activeUsers"}, {Name: "sessions"}},
					Limit:      1000,
				}

				client.EXPECT().
					RunReport(gomock.Any(), accountID, expectedRequest).
					Return(&ga4domain.RunReportResponse{
						DimensionHeaders: []ga4domain.DimensionHeader{{Name: "date"}, {Name: "city"}},
						MetricHeaders: []ga4domain.MetricHeader{
							{Name: "activeUsers", Type: "TYPE_INTEGER"},
							{Name: "sessions", Type: "TYPE_INTEGER"},
						},
						Rows: []ga4domain.ReportRow{
							{
								DimensionValues: []ga4domain.Value{{Value: "20240501"}, {Value: "Sao Paulo"}},
								MetricValues:    []ga4domain.Value{{Value: "42"}, {Value: "58"}},
							},
							{
								DimensionValues: []ga4domain.Value{{Value: "20240502"}, {Value: "Curitiba"}},
								MetricValues:    []ga4domain.Value{{Value: "7"}, {Value: "11"}},
							},
						},
						RowCount: 2,
					}, nil)
			},
			validate: func(t *testing.T, result *domain.ExtractionResult, err error) {
				require.NoError(t, err)
				assert.Equal(t, domain.ExtractionSuccess, result.Status)
				assert.Equal(t, 2, result.RowCount)
				require.Len(t, result.Rows, 2)

				// Linhas na ordem devolvida pela fonte, chaveadas pelo nome do campo
				assert.Equal(t, "20240501", result.Rows[0]["date"])
				assert.Equal(t, "Sao Paulo", result.Rows[0]["city"])
				assert.Equal(t, "42", result.Rows[0]["activeUsers"])
				assert.Equal(t, "Curitiba", result.Rows[1]["city"])
			},
		},
		{
			name:   "Campo customizado é ignorado sem erro",
			fields: []string{"city", "customEvent:meu_parametro", "activeUsers"},
			setup: func(client *mocks.MockClient) {
				client.EXPECT().
					GetMetadata(gomock.Any(), accountID).
					Return(testMetadata(), nil)

				expectedRequest := &ga4domain.RunReportRequest{
					DateRanges: []ga4domain.DateRange{{StartDate: "2024-05-01", EndDate: "2024-05-02"}},
					Dimensions: []ga4domain.Dimension{{Name: "date"}, {Name: "city"}},
					Metrics:    []ga4domain.Metric{{Name: "activeUsers"}},
					Limit:      1000,
				}

				client.EXPECT().
					RunReport(gomock.Any(), accountID, expectedRequest).
					Return(&ga4domain.RunReportResponse{RowCount: 0}, nil)
			},
			validate: func(t *testing.T, result *domain.ExtractionResult, err error) {
				require.NoError(t, err)
				assert.Empty(t, result.Rows)
			},
		},
		{
			name:   "Campo desconhecido é rejeitado antes da consulta",
			fields: []string{"campoInvalido"},
			setup: func(client *mocks.MockClient) {
				client.EXPECT().
					GetMetadata(gomock.Any(), accountID).
					Return(testMetadata(), nil)
				// RunReport nunca é chamado
			},
			validate: func(t *testing.T, result *domain.ExtractionResult, err error) {
				assert.Error(t, err)
				assert.Nil(t, result)
				assert.Contains(t, err.Error(), "campoInvalido")
			},
		},
		{
			name:   "Lista de campos vazia é rejeitada sem chamadas de rede",
			fields: nil,
			setup:  func(client *mocks.MockClient) {},
			validate: func(t *testing.T, result *domain.ExtractionResult, err error) {
				assert.Error(t, err)
				assert.Nil(t, result)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockClient := mocks.NewMockClient(ctrl)
			tt.setup(mockClient)

			integrator := ga4.New(&config.Config{}, mockClient)

			result, err := integrator.Fetch(context.Background(), accountID, tt.fields, start, end, 1000)
			tt.validate(t, result, err)
		})
	}
}

func TestGA4Integrator_FetchRejectsInvalidRange(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// Nenhuma chamada ao cliente é esperada
	mockClient := mocks.NewMockClient(ctrl)
	integrator := ga4.New(&config.Config{}, mockClient)

	start := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	_, err := integrator.Fetch(context.Background(), "properties/123456", []string{"city"}, start, end, 1000)

	var rangeErr *extracting.InvalidRangeError
	assert.ErrorAs(t, err, &rangeErr)
}

func TestGA4Integrator_FieldCatalogIsCachedPerProperty(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	accountID := "properties/123456"
	day := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	mockClient := mocks.NewMockClient(ctrl)

	// O catálogo de campos é carregado uma única vez por propriedade
	mockClient.EXPECT().
		GetMetadata(gomock.Any(), accountID).
		Return(testMetadata(), nil).
		Times(1)

	mockClient.EXPECT().
		RunReport(gomock.Any(), accountID, gomock.Any()).
		Return(&ga4domain.RunReportResponse{}, nil).
		Times(2)

	integrator := ga4.New(&config.Config{}, mockClient)

	for i := 0; i < 2; i++ {
		_, err := integrator.Fetch(context.Background(), accountID, []string{"sessions"}, day, day, 100)
		require.NoError(t, err)
	}
}
