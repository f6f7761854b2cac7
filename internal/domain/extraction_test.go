package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSessionKey(t *testing.T) {
	date := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		accountID string
		expected  string
	}{
		{
			name:      "Identificador com prefixo de recurso é normalizado",
			accountID: "properties/123456",
			expected:  "123456_2024-05-10",
		},
		{
			name:      "Identificador sem prefixo é usado como está",
			accountID: "123456",
			expected:  "123456_2024-05-10",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SessionKey(tt.accountID, date))
		})
	}
}

func TestSessionKeyIsDeterministic(t *testing.T) {
	date := time.Date(2024, 5, 10, 15, 30, 0, 0, time.UTC)

	// A chave depende apenas de (conta, dia), nunca do horário
	assert.Equal(t,
		SessionKey("properties/987", date),
		SessionKey("987", date.Truncate(24*time.Hour)),
	)
}

func TestReportDefinitionFields(t *testing.T) {
	def := ReportDefinition{
		Dimensions: []string{"city", "country"},
		Metrics:    []string{"activeUsers"},
	}

	// Dimensões primeiro, métricas em seguida, na ordem declarada
	assert.Equal(t, []string{"city", "country", "activeUsers"}, def.Fields())
}
