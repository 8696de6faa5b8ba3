package scorecard

import (
	"math"

	"github.com/miradorhq/mirador/schema"
)

// PerspectiveScore aggregates the OKRs belonging to one perspective into a
// single progress score with summary metadata.
func PerspectiveScore(okrs []schema.Objective, perspective schema.Perspective) schema.PerspectiveSummary {
	var matched []schema.Objective
	for _, okr := range okrs {
		if okr.Perspective == perspective {
			matched = append(matched, okr)
		}
	}
	if len(matched) == 0 {
		return schema.PerspectiveSummary{
			Perspective: perspective,
			Status:      schema.StatusNoOKRs,
		}
	}

	total := 0.0
	krCount := 0
	objectives := make([]string, 0, len(matched))
	for _, okr := range matched {
		total += okr.OverallProgress()
		krCount += len(okr.KeyResults)
		objectives = append(objectives, okr.Objective)
	}
	avg := total / float64(len(matched))

	return schema.PerspectiveSummary{
		Perspective: perspective,
		Score:       round1(avg),
		OKRCount:    len(matched),
		KRCount:     krCount,
		Status:      progressStatus(avg),
		Objectives:  objectives,
	}
}

// Summaries scores every perspective in canonical order.
func Summaries(okrs []schema.Objective) []schema.PerspectiveSummary {
	out := make([]schema.PerspectiveSummary, 0, len(schema.AllPerspectives))
	for _, p := range schema.AllPerspectives {
		out = append(out, PerspectiveScore(okrs, p))
	}
	return out
}

func progressStatus(progress float64) schema.Status {
	switch {
	case progress >= 90:
		return schema.StatusOnTrack
	case progress >= 70:
		return schema.StatusAtRisk
	default:
		return schema.StatusOffTrack
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
