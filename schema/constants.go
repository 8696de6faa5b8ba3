package schema

// Custom string types for type safety.
type (
	// Status represents the health status of a KPI or OKR entity.
	Status string

	// Severity represents a defect severity bucket. Values follow the
	// quality data source, which records severities in Spanish.
	Severity string

	// KPIKind identifies one of the six operational KPIs.
	KPIKind string

	// Perspective is one of the four Balanced Scorecard lenses.
	Perspective string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for snapshot storage.
	DatabaseBackend string

	// ExperienceLevel is the team experience tier used by the defect model.
	ExperienceLevel string

	// ComplexityLevel is the technology complexity tier used by the defect
	// model. Values follow the data source (Spanish labels).
	ComplexityLevel string

	// RiskLevel is the QA-staffing risk tier (Spanish labels, as rendered
	// by the dashboard).
	RiskLevel string
)

// KPI health statuses. Empty inputs degrade to StatusNoData instead of failing.
const (
	StatusHealthy  Status = "healthy"
	StatusWarning  Status = "warning"
	StatusCritical Status = "critical"
	StatusNoData   Status = "No data"
)

// OKR progress statuses, shared by key results, objectives and perspectives.
const (
	StatusOnTrack  Status = "On Track"
	StatusAtRisk   Status = "At Risk"
	StatusOffTrack Status = "Off Track"
	StatusNoOKRs   Status = "No OKRs"
)

// Defect severities as stored in the quality collection.
const (
	SeverityCritical Severity = "crítica"
	SeverityHigh     Severity = "alta"
	SeverityMedium   Severity = "media"
	SeverityLow      Severity = "baja"
	SeverityNone     Severity = "nula"
)

// All KPI kinds supported.
const (
	KPICompletionRate     KPIKind = "completion_rate"
	KPIBudgetEfficiency   KPIKind = "budget_efficiency"
	KPITeamUtilization    KPIKind = "team_utilization"
	KPIDefectDensity      KPIKind = "defect_density"
	KPIAvgResolutionTime  KPIKind = "avg_resolution_time"
	KPIClientSatisfaction KPIKind = "client_satisfaction"
)

// The four Balanced Scorecard perspectives.
const (
	PerspectiveFinancial Perspective = "Financial"
	PerspectiveCustomer  Perspective = "Customer"
	PerspectiveInternal  Perspective = "Internal Processes"
	PerspectiveLearning  Perspective = "Learning & Growth"
)

// All output modes supported.
const (
	TextOut OutputMode = "text" // default
	JSONOut OutputMode = "json"
	CSVOut  OutputMode = "csv"
)

// All snapshot backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// Team experience tiers.
const (
	ExperienceJunior ExperienceLevel = "Junior"
	ExperienceMid    ExperienceLevel = "Mid"
	ExperienceSenior ExperienceLevel = "Senior"
)

// Technology complexity tiers.
const (
	ComplexityLow      ComplexityLevel = "Baja"
	ComplexityMedium   ComplexityLevel = "Media"
	ComplexityHigh     ComplexityLevel = "Alta"
	ComplexityVeryHigh ComplexityLevel = "Muy Alta"
)

// QA-staffing risk tiers and their display colors.
const (
	RiskLow    RiskLevel = "Bajo"
	RiskMedium RiskLevel = "Medio"
	RiskHigh   RiskLevel = "Alto"
)

// AllKPIKinds lists the six KPIs in dashboard order.
var AllKPIKinds = []KPIKind{
	KPICompletionRate,
	KPIBudgetEfficiency,
	KPITeamUtilization,
	KPIDefectDensity,
	KPIAvgResolutionTime,
	KPIClientSatisfaction,
}

// AllPerspectives lists the perspectives in scorecard order.
var AllPerspectives = []Perspective{
	PerspectiveFinancial,
	PerspectiveCustomer,
	PerspectiveInternal,
	PerspectiveLearning,
}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut: {},
	JSONOut: {},
	CSVOut:  {},
}

// ValidSnapshotBackends lists all valid snapshot backends.
var ValidSnapshotBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// KPIThreshold defines the green/yellow boundaries for one KPI.
// Inverse KPIs (defect density, resolution time) treat lower values as better.
type KPIThreshold struct {
	Green   float64
	Yellow  float64
	Inverse bool
}

// GetKPIThresholds returns the per-KPI status thresholds.
func GetKPIThresholds() map[KPIKind]KPIThreshold {
	return map[KPIKind]KPIThreshold{
		KPICompletionRate:     {Green: 80, Yellow: 50},
		KPIBudgetEfficiency:   {Green: 30, Yellow: 15},
		KPITeamUtilization:    {Green: 70, Yellow: 50},
		KPIDefectDensity:      {Green: 10, Yellow: 25, Inverse: true},
		KPIAvgResolutionTime:  {Green: 3, Yellow: 5, Inverse: true},
		KPIClientSatisfaction: {Green: 70, Yellow: 50},
	}
}

// SeverityResolutionDays maps each severity to its estimated resolution
// time in days, used as a proxy when computing average resolution time.
var SeverityResolutionDays = map[Severity]float64{
	SeverityCritical: 7,
	SeverityHigh:     4,
	SeverityMedium:   2,
	SeverityLow:      1,
	SeverityNone:     0.5,
}

// DefaultResolutionDays is used for severities missing from the mapping.
const DefaultResolutionDays = 2.0
