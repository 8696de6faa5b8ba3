package scorecard

// Seed values for key results that have no source in the OLAP data yet.
// They stand in for survey and HR inputs until those feeds exist.
const (
	seedOnBudgetRate     = 85.0 // projects delivered without cost overrun, %
	seedNewMarkets       = 1.0  // countries entered this quarter
	seedNPS              = 68.0 // latest net promoter score
	seedTestCoverage     = 78.0 // automated test coverage, %
	seedDeliveryMonths   = 5.2  // average delivery time, months
	seedCloudCertified   = 45.0 // team members with cloud certification, %
	seedAIProjects       = 2.0  // projects applying AI/ML
	seedEmployeeSat      = 72.0 // employee satisfaction index, %
	seedProposals        = 12.0 // internal improvement proposals filed
)

// DefaultQuarter is the reporting period used when none is given.
const DefaultQuarter = "Q1 2025"
