package engine

import "github.com/phishguard/pattern-engine/internal/domain"

// resolveSuppression partitions the baseline warning list into kept and
// suppressed, preserving original relative order within each partition.
// The suppressed set is the union of every matched pattern's suppression-map
// entry; with no matches the union is empty and the partition degenerates
// to (all, none) naturally. Patterns without a map entry and warning types
// outside the map simply contribute and match nothing.
func resolveSuppression(baseline []domain.Warning, matched []domain.PatternMatch, suppression map[domain.PatternID][]string) (kept, suppressed []domain.Warning) {
	suppressedTypes := make(map[string]bool)
	for _, pattern := range matched {
		for _, warningType := range suppression[pattern.ID] {
			suppressedTypes[warningType] = true
		}
	}

	kept = make([]domain.Warning, 0, len(baseline))
	suppressed = make([]domain.Warning, 0)
	for _, warning := range baseline {
		if suppressedTypes[warning.Type] {
			suppressed = append(suppressed, warning)
		} else {
			kept = append(kept, warning)
		}
	}
	return kept, suppressed
}
