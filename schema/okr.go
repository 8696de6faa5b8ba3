package schema

// KeyResult is a measurable result attached to an Objective. It is
// immutable once constructed from a data snapshot and recomputed on
// every session.
type KeyResult struct {
	KR      string  `json:"kr"`      // Key result description
	Target  float64 `json:"target"`  // Target value to achieve
	Current float64 `json:"current"` // Current value from the data snapshot
	Unit    string  `json:"unit"`    // Unit of measurement
}

// Progress returns completion as a percentage, capped at 100.
// A zero target counts as done for any non-negative current value.
func (kr KeyResult) Progress() float64 {
	if kr.Target == 0 {
		if kr.Current >= 0 {
			return 100.0
		}
		return 0.0
	}
	progress := (kr.Current / kr.Target) * 100
	if progress > 100 {
		return 100.0
	}
	return progress
}

// Status classifies the key result by its progress.
func (kr KeyResult) Status() Status {
	return progressStatus(kr.Progress())
}

// Objective is a strategic objective with its key results, tagged with a
// Balanced Scorecard perspective.
type Objective struct {
	Objective   string      `json:"objective"`
	KeyResults  []KeyResult `json:"key_results"`
	Owner       string      `json:"owner"`
	Quarter     string      `json:"quarter"`
	Perspective Perspective `json:"perspective"`
}

// OverallProgress is the arithmetic mean of key result progress, or 0
// when the objective has no key results.
func (o Objective) OverallProgress() float64 {
	if len(o.KeyResults) == 0 {
		return 0.0
	}
	var total float64
	for _, kr := range o.KeyResults {
		total += kr.Progress()
	}
	return total / float64(len(o.KeyResults))
}

// Status classifies the objective by its overall progress.
func (o Objective) Status() Status {
	return progressStatus(o.OverallProgress())
}

// progressStatus applies the shared 90/70 thresholds.
func progressStatus(progress float64) Status {
	switch {
	case progress >= 90:
		return StatusOnTrack
	case progress >= 70:
		return StatusAtRisk
	default:
		return StatusOffTrack
	}
}

// PerspectiveSummary aggregates all objectives of one perspective.
type PerspectiveSummary struct {
	Perspective Perspective `json:"perspective"`
	Score       float64     `json:"score"`
	OKRCount    int         `json:"okr_count"`
	KRCount     int         `json:"kr_count"`
	Status      Status      `json:"status"`
	Objectives  []string    `json:"objectives"`
}

// HierarchyNode is one node of the 3-level scorecard tree
// (root -> perspectives -> objectives -> key results).
type HierarchyNode struct {
	Name     string          `json:"name"`
	Value    float64         `json:"value,omitempty"`
	Children []HierarchyNode `json:"children,omitempty"`
}

// OKRRow is one key result flattened for table display.
type OKRRow struct {
	Perspective Perspective `json:"perspective"`
	Objective   string      `json:"objective"`
	KeyResult   string      `json:"key_result"`
	Target      float64     `json:"target"`
	Current     float64     `json:"current"`
	Unit        string      `json:"unit"`
	Progress    string      `json:"progress"`
	Status      Status      `json:"status"`
	Owner       string      `json:"owner"`
}
