package spreadsheet

import "sort"

// DependencyMap maps a cell identifier to the set of identifiers it
// reads, directly or through ranges
type DependencyMap map[string]map[string]struct{}

// ExtractDependencies walks every formula cell's AST and builds the
// grid's dependency map. a formula that fails to parse gets an empty
// dependency set; its parse error surfaces during evaluation, not
// here. referenced cells that are not themselves formulas appear as
// keys with empty sets so the scheduler treats them as roots.
func ExtractDependencies(g *Grid) DependencyMap {
	deps := DependencyMap{}
	for row := 0; row < g.Rows(); row++ {
		for col := 0; col < g.Cols(); col++ {
			cell, err := g.Get(row, col)
			if err != nil || cell.Kind != CellFormula {
				continue
			}

			refs := map[string]struct{}{}
			if node, err := ParseFormula(cell.Formula); err == nil {
				collectRefs(node, refs)
			}
			deps[CellID(row, col)] = refs
		}
	}

	var leaves []string
	for _, refs := range deps {
		for ref := range refs {
			if _, ok := deps[ref]; !ok {
				leaves = append(leaves, ref)
			}
		}
	}
	for _, leaf := range leaves {
		deps[leaf] = map[string]struct{}{}
	}

	return deps
}

// collectRefs collects every referenced identifier from an AST,
// expanding ranges into their member cells
func collectRefs(n Node, refs map[string]struct{}) {
	switch node := n.(type) {
	case *CellRefNode:
		refs[node.ID] = struct{}{}
	case *RangeRefNode:
		coords, err := ExpandRange(node.Start, node.End)
		if err != nil {
			return
		}
		for _, coord := range coords {
			refs[CellID(coord.Row, coord.Col)] = struct{}{}
		}
	case *BinaryNode:
		collectRefs(node.Left, refs)
		collectRefs(node.Right, refs)
	case *UnaryNode:
		collectRefs(node.Operand, refs)
	case *GroupNode:
		collectRefs(node.Inner, refs)
	case *CallNode:
		for _, arg := range node.Args {
			collectRefs(arg, refs)
		}
	}
}

// TopologicalOrder sorts the dependency map with Kahn's algorithm so
// every cell appears after everything it depends on. ok is false when
// a cycle leaves unordered residue; the partial order is still
// returned for inspection.
func TopologicalOrder(deps DependencyMap) (order []string, ok bool) {
	inDegree := make(map[string]int, len(deps))
	dependents := make(map[string][]string, len(deps))
	for id, refs := range deps {
		inDegree[id] = len(refs)
		for ref := range refs {
			dependents[ref] = append(dependents[ref], id)
		}
	}
	for _, ids := range dependents {
		sort.Strings(ids)
	}

	var queue []string
	for id, degree := range inDegree {
		if degree == 0 {
			queue = append(queue, id)
		}
	}
	sort.Strings(queue)

	order = make([]string, 0, len(deps))
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		order = append(order, id)

		for _, dependent := range dependents[id] {
			inDegree[dependent]--
			if inDegree[dependent] == 0 {
				queue = append(queue, dependent)
			}
		}
	}

	return order, len(order) == len(deps)
}
