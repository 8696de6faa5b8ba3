package contract

import (
	"testing"

	"github.com/miradorhq/mirador/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInput() *ConfigRawInput {
	return &ConfigRawInput{
		Projects:        "OLAP_Proyectos.csv",
		Quality:         "OLAP_Calidad.csv",
		Output:          "text",
		Precision:       1,
		Color:           "yes",
		SnapshotBackend: "none",
	}
}

func TestProcessAndValidateDefaults(t *testing.T) {
	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, validInput()))

	assert.Equal(t, "OLAP_Proyectos.csv", cfg.ProjectsFile)
	assert.Equal(t, schema.TextOut, cfg.Output)
	assert.Equal(t, DefaultQuarter, cfg.Quarter)
	assert.InDelta(t, DefaultConfidence, cfg.Confidence, 1e-9)
	assert.Equal(t, DefaultPeriods, cfg.TrendPeriods)
	assert.True(t, cfg.UseColors)
	assert.Equal(t, schema.NoneBackend, cfg.SnapshotBackend)
}

func TestProcessAndValidateErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ConfigRawInput)
		substr string
	}{
		{"empty projects path", func(in *ConfigRawInput) { in.Projects = "" }, "projects file"},
		{"empty quality path", func(in *ConfigRawInput) { in.Quality = "" }, "quality file"},
		{"bad precision", func(in *ConfigRawInput) { in.Precision = 5 }, "precision"},
		{"bad output", func(in *ConfigRawInput) { in.Output = "xml" }, "output format"},
		{"bad color", func(in *ConfigRawInput) { in.Color = "maybe" }, "--color"},
		{"bad backend", func(in *ConfigRawInput) { in.SnapshotBackend = "oracle" }, "snapshot backend"},
		{"confidence out of range", func(in *ConfigRawInput) { in.Confidence = 0.3 }, "confidence"},
		{"negative periods", func(in *ConfigRawInput) { in.TrendPeriods = -1 }, "--periods"},
		{"record without backend", func(in *ConfigRawInput) { in.Record = true }, "--record"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(in)
			err := ProcessAndValidate(&Config{}, in)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.substr)
		})
	}
}

func TestProcessAndValidateRecordWithSQLite(t *testing.T) {
	in := validInput()
	in.SnapshotBackend = "sqlite"
	in.Record = true
	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, in))
	assert.True(t, cfg.Record)
	assert.Equal(t, schema.SQLiteBackend, cfg.SnapshotBackend)
}

func TestProcessAndValidateQuarterOverride(t *testing.T) {
	in := validInput()
	in.Quarter = "  Q3 2026  "
	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, in))
	assert.Equal(t, "Q3 2026", cfg.Quarter)
}

func TestValidateDatabaseConnectionString(t *testing.T) {
	tests := []struct {
		name    string
		backend schema.DatabaseBackend
		conn    string
		wantErr bool
	}{
		{"sqlite needs nothing", schema.SQLiteBackend, "", false},
		{"none needs nothing", schema.NoneBackend, "", false},
		{"mysql valid", schema.MySQLBackend, "user:pass@tcp(localhost:3306)/mirador", false},
		{"mysql missing tcp", schema.MySQLBackend, "user:pass@localhost/mirador", true},
		{"mysql empty", schema.MySQLBackend, "", true},
		{"postgres valid", schema.PostgreSQLBackend, "host=localhost dbname=mirador user=pg", false},
		{"postgres missing host", schema.PostgreSQLBackend, "dbname=mirador", true},
		{"postgres missing dbname", schema.PostgreSQLBackend, "host=localhost", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDatabaseConnectionString(tt.backend, tt.conn)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
