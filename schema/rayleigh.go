package schema

// Calibration maps project size tiers to Rayleigh scale parameters (days),
// derived from assumed typical durations with the peak at 40% of duration.
// This is a heuristic calibration, not a statistical fit.
type Calibration struct {
	Default float64 `json:"default"`
	Small   float64 `json:"small"`
	Medium  float64 `json:"medium"`
	Large   float64 `json:"large"`
	XLarge  float64 `json:"xlarge"`

	// Historical defect totals per project, present only when the quality
	// collection has data.
	AvgHistoricalDefects float64 `json:"avg_historical_defects,omitempty"`
	StdHistoricalDefects float64 `json:"std_historical_defects,omitempty"`

	Confidence float64 `json:"confidence"`
	HasHistory bool    `json:"has_history"`
}

// PredictionParams echoes the inputs a prediction was computed from.
type PredictionParams struct {
	Size           int             `json:"size"`
	DurationMonths int             `json:"duration_months"`
	TeamSize       int             `json:"team_size"`
	Experience     ExperienceLevel `json:"experience"`
	Complexity     ComplexityLevel `json:"complexity"`
}

// Prediction is the outcome of the Rayleigh defect model for one
// hypothetical project. Ephemeral: computed per request, never persisted.
type Prediction struct {
	TotalDefects      float64 `json:"total_defects"`
	PeakDay           float64 `json:"peak_day"`
	PeakDefectsPerDay float64 `json:"peak_defects_per_day"`
	Sigma             float64 `json:"sigma"`
	DurationDays      int     `json:"duration_days"`

	// SeverityDistribution splits the total by display severity label.
	SeverityDistribution map[string]float64 `json:"severity_distribution"`

	Params PredictionParams `json:"project_params"`
}

// CurvePoint is one day of the defect discovery curve.
type CurvePoint struct {
	Day           int     `json:"day"`
	DefectsPerDay float64 `json:"defects_per_day"`
	Cumulative    float64 `json:"cumulative_defects"`
	UpperBound    float64 `json:"upper_bound"`
	LowerBound    float64 `json:"lower_bound"`
}

// Curve is the dense Rayleigh discovery curve with confidence bands.
// PeakValue is the maximum of the discretized per-day curve; PeakDay is
// the scale parameter. The two are computed independently of
// Prediction.PeakDefectsPerDay and may diverge.
type Curve struct {
	Points          []CurvePoint `json:"points"`
	ConfidenceLevel float64      `json:"confidence_level"`
	Sigma           float64      `json:"sigma"`
	PeakDay         float64      `json:"peak_day"`
	PeakValue       float64      `json:"peak_value"`
}

// Recommendation is the QA staffing advice derived from a prediction.
type Recommendation struct {
	QAEngineers     int       `json:"qa_engineers"`
	QAHoursTotal    float64   `json:"qa_hours_total"`
	QAHoursPerMonth float64   `json:"qa_hours_per_month"`
	RiskLevel       RiskLevel `json:"risk_level"`
	RiskColor       string    `json:"risk_color"`
	Recommendation  string    `json:"recommendation"`
}

// Confidence describes how much historical data backs the model.
type Confidence struct {
	Score             float64 `json:"score"`
	Label             string  `json:"label"`
	NumProjects       int     `json:"num_projects"`
	NumQualityRecords int     `json:"num_quality_records"`
	Message           string  `json:"message"`
}
