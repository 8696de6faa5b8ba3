package scorecard

import "github.com/miradorhq/mirador/schema"

const (
	rootNodeName    = "Strategic OKRs"
	objectiveMaxLen = 40
	keyResultMaxLen = 30
)

// BuildHierarchy arranges OKRs into a three-level tree rooted at the
// strategy, grouped by perspective in first-seen order. Long labels are
// truncated for display.
func BuildHierarchy(okrs []schema.Objective) schema.HierarchyNode {
	root := schema.HierarchyNode{Name: rootNodeName}

	var order []schema.Perspective
	grouped := make(map[schema.Perspective][]schema.Objective)
	for _, okr := range okrs {
		if _, ok := grouped[okr.Perspective]; !ok {
			order = append(order, okr.Perspective)
		}
		grouped[okr.Perspective] = append(grouped[okr.Perspective], okr)
	}

	for _, perspective := range order {
		node := schema.HierarchyNode{Name: string(perspective)}
		var progressSum float64
		for _, okr := range grouped[perspective] {
			okrNode := schema.HierarchyNode{
				Name:  truncate(okr.Objective, objectiveMaxLen),
				Value: okr.OverallProgress(),
			}
			for _, kr := range okr.KeyResults {
				okrNode.Children = append(okrNode.Children, schema.HierarchyNode{
					Name:  truncate(kr.KR, keyResultMaxLen),
					Value: kr.Progress(),
				})
			}
			progressSum += okrNode.Value
			node.Children = append(node.Children, okrNode)
		}
		node.Value = progressSum / float64(len(grouped[perspective]))
		root.Children = append(root.Children, node)
	}
	return root
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
