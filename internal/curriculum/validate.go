package curriculum

import (
	"fmt"
	"sort"
	"strings"
)

// ValidateGraph checks the built-in question bank and decision graph.
func ValidateGraph() error {
	return validateGraph(questionBank, decisionGraph, startID)
}

// validateGraph performs all structural checks on a bank and its edges.
// Returns a combined error describing every problem found.
func validateGraph(bank []Question, edges map[string]Branch, start string) error {
	var errs []string

	ids := make(map[string]bool, len(bank))
	for _, q := range bank {
		if ids[q.ID] {
			errs = append(errs, fmt.Sprintf("duplicate question ID: %q", q.ID))
		}
		ids[q.ID] = true
		if !q.Level.Valid() {
			errs = append(errs, fmt.Sprintf("question %q has invalid level %q", q.ID, q.Level))
		}
		if q.IsOpenEnded() && len(q.AcceptablePatterns) == 0 {
			errs = append(errs, fmt.Sprintf("open-ended question %q has no patterns", q.ID))
		}
	}

	if !ids[start] {
		errs = append(errs, fmt.Sprintf("start question %q is not in the bank", start))
	}

	from := make([]string, 0, len(edges))
	for id := range edges {
		from = append(from, id)
	}
	sort.Strings(from)

	for _, id := range from {
		if !ids[id] {
			errs = append(errs, fmt.Sprintf("branch for unknown question %q", id))
		}
		for _, to := range successors(edges[id]) {
			if to != End && !ids[to] {
				errs = append(errs, fmt.Sprintf("question %q branches to nonexistent %q", id, to))
			}
		}
	}

	// Depth-first search for cycles; grey nodes are on the current path.
	const (
		white = iota
		grey
		black
	)
	color := make(map[string]int, len(edges))
	var cyclic []string
	var visit func(id string)
	visit = func(id string) {
		color[id] = grey
		for _, to := range successors(edges[id]) {
			if to == End {
				continue
			}
			switch color[to] {
			case grey:
				cyclic = append(cyclic, id+"->"+to)
			case white:
				visit(to)
			}
		}
		color[id] = black
	}
	for _, id := range from {
		if color[id] == white {
			visit(id)
		}
	}
	if len(cyclic) > 0 {
		errs = append(errs, fmt.Sprintf("cycle detected on edges: %s", strings.Join(cyclic, ", ")))
	}

	if len(errs) > 0 {
		return fmt.Errorf("decision graph validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}

func successors(b Branch) []string {
	if b.Unconditional() {
		return []string{b.Next}
	}
	return []string{b.target(true), b.target(false)}
}
