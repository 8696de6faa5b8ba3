// Package schema has configs, models and shared constants for all parts of mirador.
package schema

// ProjectRecord is a single row of the projects collection.
// Completion and activity are derived predicates, not stored flags:
// a project counts as completed when it turned a profit, and as active
// when it has either profit or recorded cost.
type ProjectRecord struct {
	Name      string  // Project name; unique-ish identifier, not enforced unique
	Client    string  // Client name
	NetProfit float64 // Signed net profit
	TotalCost float64 // Total real cost, non-negative
	Country   string  // Country where the project runs
}

// Completed reports whether the project is considered completed/successful.
func (p ProjectRecord) Completed() bool {
	return p.NetProfit > 0
}

// Active reports whether any work happened on the project.
func (p ProjectRecord) Active() bool {
	return p.NetProfit > 0 || p.TotalCost > 0
}

// QualityRecord is a single row of the quality/defects collection.
// Typically one row per severity bucket per project; Project references a
// ProjectRecord by name without any enforcement.
type QualityRecord struct {
	Project     string   // Referenced project name
	Severity    Severity // Defect severity bucket
	DefectCount int      // Non-negative defect count for the bucket
}

// KPIResult holds one computed KPI: its value, display unit, health status
// and a metadata mapping with the supporting figures behind the number.
type KPIResult struct {
	Kind   KPIKind        `json:"kind"`
	Value  float64        `json:"value"`
	Unit   string         `json:"unit"`
	Status Status         `json:"status"`
	Meta   map[string]any `json:"metadata"`
}

// KPIDisplay is a KPIResult prepared for dashboard rendering.
type KPIDisplay struct {
	Name         string         `json:"name"`
	Value        float64        `json:"value"`
	Unit         string         `json:"unit"`
	Color        string         `json:"color"`
	Status       Status         `json:"status"`
	Meta         map[string]any `json:"metadata"`
	DisplayValue string         `json:"display_value"`
}

// CountDistinctProjects returns the number of distinct project names.
func CountDistinctProjects(projects []ProjectRecord) int {
	seen := make(map[string]struct{}, len(projects))
	for _, p := range projects {
		seen[p.Name] = struct{}{}
	}
	return len(seen)
}

// CountDistinctClients returns the number of distinct client names.
func CountDistinctClients(projects []ProjectRecord) int {
	seen := make(map[string]struct{}, len(projects))
	for _, p := range projects {
		seen[p.Client] = struct{}{}
	}
	return len(seen)
}

// TotalDefects sums defect counts across all quality records.
func TotalDefects(quality []QualityRecord) int {
	total := 0
	for _, q := range quality {
		total += q.DefectCount
	}
	return total
}
