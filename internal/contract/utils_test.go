package contract

import (
	"testing"

	"github.com/miradorhq/mirador/schema"
	"github.com/stretchr/testify/assert"
)

func TestStatusColorLabelContainsText(t *testing.T) {
	for _, status := range []schema.Status{
		schema.StatusHealthy, schema.StatusWarning, schema.StatusCritical,
		schema.StatusOnTrack, schema.StatusAtRisk, schema.StatusOffTrack,
		schema.StatusNoData, schema.StatusNoOKRs,
	} {
		assert.Contains(t, StatusColorLabel(status), string(status))
	}
}

func TestRiskColorLabelContainsText(t *testing.T) {
	for _, level := range []schema.RiskLevel{schema.RiskLow, schema.RiskMedium, schema.RiskHigh} {
		assert.Contains(t, RiskColorLabel(level), string(level))
	}
}

func TestTruncateText(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		maxWidth int
		want     string
	}{
		{"short text untouched", "hola", 10, "hola"},
		{"long text truncated", "Aumentar Ingresos por Proyectos", 20, "Aumentar Ingresos..."},
		{"width too small to truncate", "abcdef", 3, "abcdef"},
		{"accented runes counted once", "satisfacción del cliente", 15, "satisfacción..."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TruncateText(tt.text, tt.maxWidth))
		})
	}
}

func TestParseBoolString(t *testing.T) {
	for _, s := range []string{"yes", "TRUE", "1"} {
		v, err := ParseBoolString(s)
		assert.NoError(t, err)
		assert.True(t, v)
	}
	for _, s := range []string{"no", "False", "0"} {
		v, err := ParseBoolString(s)
		assert.NoError(t, err)
		assert.False(t, v)
	}
	_, err := ParseBoolString("quizas")
	assert.Error(t, err)
}
