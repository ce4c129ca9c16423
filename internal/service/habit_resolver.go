package service

import (
	"strings"

	"habit-tracker/internal/model"
)

// ResolveHabit fuzzy-matches search against candidates. Stages are tried in
// order (exact, containment, word overlap) and within a stage the first
// candidate in input order wins. It returns false when search is empty or
// nothing matches.
func ResolveHabit(candidates []model.HabitWithStatus, search string) (model.HabitWithStatus, bool) {
	needle := strings.ToLower(strings.TrimSpace(search))
	if needle == "" {
		return model.HabitWithStatus{}, false
	}

	for _, h := range candidates {
		if strings.ToLower(h.Name) == needle {
			return h, true
		}
	}

	for _, h := range candidates {
		name := strings.ToLower(h.Name)
		if strings.Contains(name, needle) || strings.Contains(needle, name) {
			return h, true
		}
	}

	searchWords := strings.Fields(needle)
	for _, h := range candidates {
		for _, hw := range strings.Fields(strings.ToLower(h.Name)) {
			for _, sw := range searchWords {
				if strings.Contains(hw, sw) || strings.Contains(sw, hw) {
					return h, true
				}
			}
		}
	}

	return model.HabitWithStatus{}, false
}
