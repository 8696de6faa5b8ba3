// Package dataset loads the project and quality CSV exports that feed the
// analytics engines. Files keep the column names of the upstream data
// warehouse, so headers are matched by name rather than position.
package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/miradorhq/mirador/core/olap"
	"github.com/miradorhq/mirador/schema"
)

// Default file names of the warehouse exports.
const (
	DefaultProjectsFile = "OLAP_Proyectos.csv"
	DefaultQualityFile  = "OLAP_Calidad.csv"
)

// Column names of the projects export.
const (
	colProjectName = "nombre_proyecto"
	colClientName  = "nombre_cliente"
	colNetProfit   = "ganancia_neta"
	colTotalCost   = "costo_total_real"
	colCountryName = "nombre_pais"
)

// Column names of the quality export.
const (
	colSeverity    = "severidad"
	colDefectCount = "cantidad_defectos_encontrados"
)

// Snapshot holds both collections loaded together so the engines see a
// consistent view of the data.
type Snapshot struct {
	Projects []schema.ProjectRecord
	Quality  []schema.QualityRecord
}

// Load reads both exports from their file paths.
func Load(projectsPath, qualityPath string) (*Snapshot, error) {
	projects, err := LoadProjects(projectsPath)
	if err != nil {
		return nil, err
	}
	quality, err := LoadQuality(qualityPath)
	if err != nil {
		return nil, err
	}
	return &Snapshot{Projects: projects, Quality: quality}, nil
}

// LoadProjects reads the projects export from a file path.
func LoadProjects(path string) ([]schema.ProjectRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open projects file: %w", err)
	}
	defer func() { _ = f.Close() }()

	records, err := ReadProjects(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return records, nil
}

// LoadQuality reads the quality export from a file path.
func LoadQuality(path string) ([]schema.QualityRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open quality file: %w", err)
	}
	defer func() { _ = f.Close() }()

	records, err := ReadQuality(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return records, nil
}

// ReadProjects parses the projects CSV from a reader.
func ReadProjects(r io.Reader) ([]schema.ProjectRecord, error) {
	rows, idx, err := readCSV(r, colProjectName, colClientName, colNetProfit, colTotalCost, colCountryName)
	if err != nil {
		return nil, err
	}

	out := make([]schema.ProjectRecord, 0, len(rows))
	for i, row := range rows {
		profit, err := parseFloat(row[idx[colNetProfit]])
		if err != nil {
			return nil, fmt.Errorf("row %d: column %s: %w", i+2, colNetProfit, err)
		}
		cost, err := parseFloat(row[idx[colTotalCost]])
		if err != nil {
			return nil, fmt.Errorf("row %d: column %s: %w", i+2, colTotalCost, err)
		}
		out = append(out, schema.ProjectRecord{
			Name:      strings.TrimSpace(row[idx[colProjectName]]),
			Client:    strings.TrimSpace(row[idx[colClientName]]),
			NetProfit: profit,
			TotalCost: cost,
			Country:   strings.TrimSpace(row[idx[colCountryName]]),
		})
	}
	return out, nil
}

// ReadQuality parses the quality CSV from a reader.
func ReadQuality(r io.Reader) ([]schema.QualityRecord, error) {
	rows, idx, err := readCSV(r, colProjectName, colSeverity, colDefectCount)
	if err != nil {
		return nil, err
	}

	out := make([]schema.QualityRecord, 0, len(rows))
	for i, row := range rows {
		count, err := parseInt(row[idx[colDefectCount]])
		if err != nil {
			return nil, fmt.Errorf("row %d: column %s: %w", i+2, colDefectCount, err)
		}
		out = append(out, schema.QualityRecord{
			Project:     strings.TrimSpace(row[idx[colProjectName]]),
			Severity:    schema.Severity(strings.ToLower(strings.TrimSpace(row[idx[colSeverity]]))),
			DefectCount: count,
		})
	}
	return out, nil
}

// ProjectsTable converts the projects collection into a cube for slicing.
func (s *Snapshot) ProjectsTable() olap.Table {
	rows := make([]olap.Row, 0, len(s.Projects))
	for _, p := range s.Projects {
		rows = append(rows, olap.Row{
			colProjectName: p.Name,
			colClientName:  p.Client,
			colNetProfit:   p.NetProfit,
			colTotalCost:   p.TotalCost,
			colCountryName: p.Country,
		})
	}
	return olap.NewTable([]string{colProjectName, colClientName, colNetProfit, colTotalCost, colCountryName}, rows)
}

// QualityTable converts the quality collection into a cube for slicing.
func (s *Snapshot) QualityTable() olap.Table {
	rows := make([]olap.Row, 0, len(s.Quality))
	for _, q := range s.Quality {
		rows = append(rows, olap.Row{
			colProjectName: q.Project,
			colSeverity:    string(q.Severity),
			colDefectCount: q.DefectCount,
		})
	}
	return olap.NewTable([]string{colProjectName, colSeverity, colDefectCount}, rows)
}

// LoadTable reads an arbitrary CSV export into a cube. Numeric cells become
// float64 values so measure columns aggregate without further conversion.
func LoadTable(path string) (olap.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return olap.Table{}, fmt.Errorf("open source file: %w", err)
	}
	defer func() { _ = f.Close() }()

	t, err := ReadTable(f)
	if err != nil {
		return olap.Table{}, fmt.Errorf("read %s: %w", path, err)
	}
	return t, nil
}

// ReadTable parses a generic CSV from a reader.
func ReadTable(r io.Reader) (olap.Table, error) {
	rows, idx, err := readCSV(r)
	if err != nil {
		return olap.Table{}, err
	}

	columns := make([]string, len(idx))
	for name, i := range idx {
		columns[i] = name
	}

	out := make([]olap.Row, 0, len(rows))
	for _, row := range rows {
		cells := olap.Row{}
		for i, name := range columns {
			if i >= len(row) {
				continue
			}
			cell := strings.TrimSpace(row[i])
			if v, err := strconv.ParseFloat(cell, 64); err == nil && cell != "" {
				cells[name] = v
			} else {
				cells[name] = cell
			}
		}
		out = append(out, cells)
	}
	return olap.NewTable(columns, out), nil
}

// readCSV reads the full CSV, verifies the required headers are present and
// returns the data rows plus a header index.
func readCSV(r io.Reader, required ...string) ([][]string, map[string]int, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil, fmt.Errorf("empty CSV file")
	}
	if err != nil {
		return nil, nil, err
	}

	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.TrimSpace(strings.ToLower(name))] = i
	}
	for _, name := range required {
		if _, ok := idx[name]; !ok {
			return nil, nil, fmt.Errorf("missing required column %q", name)
		}
	}

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	return rows, idx, nil
}

func parseFloat(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}

func parseInt(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	return strconv.Atoi(s)
}
