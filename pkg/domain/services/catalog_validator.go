package services

import (
	"fmt"

	"github.com/waynegramlich/bom-manager-sub001/pkg/domain/entities"
)

// CatalogValidator checks the structural integrity of a registered part
// catalog before an order is processed.
type CatalogValidator struct{}

// NewCatalogValidator creates a new catalog validator.
func NewCatalogValidator() *CatalogValidator {
	return &CatalogValidator{}
}

// ValidationResult contains the results of catalog validation.
type ValidationResult struct {
	HasCycles       bool
	CyclePaths      [][]entities.PartName
	DanglingTargets []entities.PartName
	BadFractionals  []entities.PartName
	Errors          []string
}

// Valid reports whether no structural problems were found.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// Validate performs referential and cycle checks over every registered
// schematic part:
//   - every alias target and fractional choice reference must be registered
//   - a fractional part's choice reference must resolve to a choice part
//   - the alias substitution graph must be acyclic
//   - fractional parts slicing the same choice part must share a denominator
func (v *CatalogValidator) Validate(parts []entities.SchematicPart) *ValidationResult {
	result := &ValidationResult{}

	byName := make(map[entities.PartName]entities.SchematicPart, len(parts))
	for _, part := range parts {
		byName[part.PartName()] = part
	}

	denominators := make(map[entities.PartName]int)
	adjacency := make(map[entities.PartName][]entities.PartName)

	for _, part := range parts {
		switch p := part.(type) {
		case *entities.ChoicePart:
			// Leaves of the part graph; nothing to chase.
		case *entities.AliasPart:
			for _, target := range p.Targets {
				if _, ok := byName[target.Target]; !ok {
					result.DanglingTargets = append(result.DanglingTargets, target.Target)
					result.Errors = append(result.Errors, fmt.Sprintf(
						"alias %q targets unregistered part %q", p.Name, target.Target))
					continue
				}
				adjacency[p.Name] = append(adjacency[p.Name], target.Target)
			}
		case *entities.FractionalPart:
			whole, ok := byName[p.Choice]
			if !ok {
				result.DanglingTargets = append(result.DanglingTargets, p.Choice)
				result.Errors = append(result.Errors, fmt.Sprintf(
					"fractional part %q references unregistered part %q", p.Name, p.Choice))
				continue
			}
			if _, ok := whole.(*entities.ChoicePart); !ok {
				result.BadFractionals = append(result.BadFractionals, p.Name)
				result.Errors = append(result.Errors, fmt.Sprintf(
					"fractional part %q must reference a choice part, %q is not one", p.Name, p.Choice))
				continue
			}
			if previous, ok := denominators[p.Choice]; ok && previous != p.Denominator {
				result.BadFractionals = append(result.BadFractionals, p.Name)
				result.Errors = append(result.Errors, fmt.Sprintf(
					"fractional parts of %q disagree on denominator: %d vs %d",
					p.Choice, previous, p.Denominator))
				continue
			}
			denominators[p.Choice] = p.Denominator
		}
	}

	cycles := v.detectCycles(adjacency)
	result.HasCycles = len(cycles) > 0
	result.CyclePaths = cycles
	for _, cycle := range cycles {
		result.Errors = append(result.Errors, fmt.Sprintf("alias cycle detected: %v", cycle))
	}

	return result
}

// detectCycles uses DFS over the alias substitution graph.
func (v *CatalogValidator) detectCycles(adjacency map[entities.PartName][]entities.PartName) [][]entities.PartName {
	visited := make(map[entities.PartName]bool)
	onStack := make(map[entities.PartName]bool)
	var cycles [][]entities.PartName

	for name := range adjacency {
		if !visited[name] {
			v.dfsDetectCycle(name, adjacency, visited, onStack, nil, &cycles)
		}
	}

	return cycles
}

func (v *CatalogValidator) dfsDetectCycle(
	current entities.PartName,
	adjacency map[entities.PartName][]entities.PartName,
	visited map[entities.PartName]bool,
	onStack map[entities.PartName]bool,
	path []entities.PartName,
	cycles *[][]entities.PartName,
) {
	visited[current] = true
	onStack[current] = true
	path = append(path, current)

	for _, next := range adjacency[current] {
		if !visited[next] {
			v.dfsDetectCycle(next, adjacency, visited, onStack, path, cycles)
		} else if onStack[next] {
			start := -1
			for i, name := range path {
				if name == next {
					start = i
					break
				}
			}
			if start != -1 {
				cycle := append([]entities.PartName{}, path[start:]...)
				cycle = append(cycle, next)
				*cycles = append(*cycles, cycle)
			}
		}
	}

	onStack[current] = false
}
