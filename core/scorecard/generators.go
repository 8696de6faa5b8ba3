// Package scorecard builds a Balanced Scorecard from project and quality
// data. Objectives and key results are generated per perspective, scored,
// and arranged into a hierarchy suitable for drill-down display.
package scorecard

import (
	"strings"

	"github.com/miradorhq/mirador/schema"
)

// FinancialOKRs derives the Financial perspective objectives from project
// revenue and cost totals.
func FinancialOKRs(projects []schema.ProjectRecord, quarter string) []schema.Objective {
	var totalRevenue, totalCost float64
	highValue := 0
	for _, p := range projects {
		totalRevenue += p.NetProfit
		totalCost += p.TotalCost
		if p.NetProfit > 500_000 {
			highValue++
		}
	}
	profitMargin := 0.0
	if totalCost > 0 {
		profitMargin = totalRevenue / totalCost * 100
	}

	var costSum float64
	costCount := 0
	for _, p := range projects {
		if p.TotalCost > 0 {
			costSum += p.TotalCost
			costCount++
		}
	}
	avgCost := 0.0
	if costCount > 0 {
		avgCost = costSum / float64(costCount)
	}

	return []schema.Objective{
		{
			Objective: "Aumentar Ingresos por Proyectos de Software",
			KeyResults: []schema.KeyResult{
				{KR: "Generar $50M en ganancia neta", Target: 50_000_000, Current: totalRevenue, Unit: "$"},
				{KR: "Cerrar 10 proyectos de alto valor (>$500K ganancia)", Target: 10, Current: float64(highValue), Unit: " proyectos"},
				{KR: "Mantener margen de beneficio >35%", Target: 35, Current: profitMargin, Unit: "%"},
			},
			Owner:       "CFO",
			Quarter:     quarter,
			Perspective: schema.PerspectiveFinancial,
		},
		{
			Objective: "Optimizar Costos Operativos",
			KeyResults: []schema.KeyResult{
				{KR: "Reducir costo promedio por proyecto a $400K", Target: 400_000, Current: avgCost, Unit: "$"},
				{KR: "Mantener proyectos sin sobrecosto en 90%", Target: 90, Current: seedOnBudgetRate, Unit: "%"},
			},
			Owner:       "CFO",
			Quarter:     quarter,
			Perspective: schema.PerspectiveFinancial,
		},
	}
}

// CustomerOKRs derives the Customer perspective objectives from the client
// portfolio.
func CustomerOKRs(projects []schema.ProjectRecord, quarter string) []schema.Objective {
	clientProjects := make(map[string]int)
	for _, p := range projects {
		clientProjects[p.Client]++
	}
	uniqueClients := len(clientProjects)
	repeatClients := 0
	for _, n := range clientProjects {
		if n > 1 {
			repeatClients++
		}
	}
	repeatRate := 0.0
	if uniqueClients > 0 {
		repeatRate = float64(repeatClients) / float64(uniqueClients) * 100
	}

	var profitSum float64
	profitable := 0
	for _, p := range projects {
		if p.NetProfit > 0 {
			profitSum += p.NetProfit
			profitable++
		}
	}
	avgProjectValue := 0.0
	if profitable > 0 {
		avgProjectValue = profitSum / float64(profitable)
	}

	return []schema.Objective{
		{
			Objective: "Expandir Base de Clientes y Fidelización",
			KeyResults: []schema.KeyResult{
				{KR: "Alcanzar 50 clientes activos", Target: 50, Current: float64(uniqueClients), Unit: " clientes"},
				{KR: "Lograr 70% de tasa de clientes recurrentes", Target: 70, Current: repeatRate, Unit: "%"},
				{KR: "Penetrar 3 nuevos países/mercados", Target: 3, Current: seedNewMarkets, Unit: " países"},
			},
			Owner:       "CCO",
			Quarter:     quarter,
			Perspective: schema.PerspectiveCustomer,
		},
		{
			Objective: "Mejorar Satisfacción y Valor para el Cliente",
			KeyResults: []schema.KeyResult{
				{KR: "Alcanzar NPS de 75+", Target: 75, Current: seedNPS, Unit: " puntos"},
				{KR: "Aumentar valor promedio de proyecto a $250K", Target: 250_000, Current: avgProjectValue, Unit: "$"},
			},
			Owner:       "CCO",
			Quarter:     quarter,
			Perspective: schema.PerspectiveCustomer,
		},
	}
}

// InternalOKRs derives the Internal Processes perspective from delivery and
// quality figures.
func InternalOKRs(projects []schema.ProjectRecord, quality []schema.QualityRecord, quarter string) []schema.Objective {
	totalDefects := schema.TotalDefects(quality)
	totalProjects := schema.CountDistinctProjects(projects)
	defectDensity := 0.0
	if totalProjects > 0 {
		defectDensity = float64(totalDefects) / float64(totalProjects)
	}

	criticalDefects := 0
	for _, q := range quality {
		if q.Severity == schema.SeverityCritical {
			criticalDefects += q.DefectCount
		}
	}
	criticalPct := 0.0
	if totalDefects > 0 {
		criticalPct = float64(criticalDefects) / float64(totalDefects) * 100
	}

	completionRate := 0.0
	if len(projects) > 0 {
		completed := 0
		for _, p := range projects {
			if p.Completed() {
				completed++
			}
		}
		completionRate = float64(completed) / float64(len(projects)) * 100
	}

	return []schema.Objective{
		{
			Objective: "Alcanzar Excelencia en Calidad de Software",
			KeyResults: []schema.KeyResult{
				{KR: "Reducir densidad de defectos a <8 por proyecto", Target: 8, Current: defectDensity, Unit: " def/proy"},
				{KR: "Mantener defectos críticos <5% del total", Target: 5, Current: criticalPct, Unit: "%"},
				{KR: "Alcanzar 95% de cobertura de pruebas automatizadas", Target: 95, Current: seedTestCoverage, Unit: "%"},
			},
			Owner:       "CTO",
			Quarter:     quarter,
			Perspective: schema.PerspectiveInternal,
		},
		{
			Objective: "Optimizar Eficiencia de Entrega",
			KeyResults: []schema.KeyResult{
				{KR: "Lograr 90% de proyectos completados exitosamente", Target: 90, Current: completionRate, Unit: "%"},
				{KR: "Reducir tiempo promedio de entrega a 4 meses", Target: 4, Current: seedDeliveryMonths, Unit: " meses"},
			},
			Owner:       "CTO",
			Quarter:     quarter,
			Perspective: schema.PerspectiveInternal,
		},
	}
}

// LearningOKRs derives the Learning & Growth perspective. Technology
// diversity is inferred from the middle token of hyphenated project names.
func LearningOKRs(projects []schema.ProjectRecord, quarter string) []schema.Objective {
	seen := make(map[string]struct{})
	techs := make(map[string]struct{})
	for _, p := range projects {
		if _, ok := seen[p.Name]; ok {
			continue
		}
		seen[p.Name] = struct{}{}
		if parts := strings.Split(p.Name, "-"); len(parts) > 1 {
			techs[parts[1]] = struct{}{}
		}
	}

	return []schema.Objective{
		{
			Objective: "Desarrollar Capacidades Técnicas Avanzadas",
			KeyResults: []schema.KeyResult{
				{KR: "Certificar 80% del equipo en tecnologías cloud", Target: 80, Current: seedCloudCertified, Unit: "%"},
				{KR: "Dominar 10 stacks tecnológicos diferentes", Target: 10, Current: float64(len(techs)), Unit: " tecnologías"},
				{KR: "Implementar IA/ML en 5 proyectos", Target: 5, Current: seedAIProjects, Unit: " proyectos"},
			},
			Owner:       "CTO",
			Quarter:     quarter,
			Perspective: schema.PerspectiveLearning,
		},
		{
			Objective: "Fortalecer Cultura de Innovación",
			KeyResults: []schema.KeyResult{
				{KR: "Alcanzar 85% en índice de satisfacción empleados", Target: 85, Current: seedEmployeeSat, Unit: "%"},
				{KR: "Generar 20 propuestas de mejora interna", Target: 20, Current: seedProposals, Unit: " propuestas"},
			},
			Owner:       "CHRO",
			Quarter:     quarter,
			Perspective: schema.PerspectiveLearning,
		},
	}
}

// GenerateAll produces the complete OKR set across the four perspectives.
func GenerateAll(projects []schema.ProjectRecord, quality []schema.QualityRecord, quarter string) []schema.Objective {
	if quarter == "" {
		quarter = DefaultQuarter
	}
	var all []schema.Objective
	all = append(all, FinancialOKRs(projects, quarter)...)
	all = append(all, CustomerOKRs(projects, quarter)...)
	all = append(all, InternalOKRs(projects, quality, quarter)...)
	all = append(all, LearningOKRs(projects, quarter)...)
	return all
}
