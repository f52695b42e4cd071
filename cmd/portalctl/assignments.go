package main

import (
	"fmt"
	"strings"
)

// parseAssignments reads repeated id=value flags. Values for the same id are
// kept in order; ids are returned in first-seen order.
func parseAssignments(raw []string) (map[string][]string, []string, error) {
	values := make(map[string][]string, len(raw))
	var order []string
	for _, assignment := range raw {
		id, value, ok := strings.Cut(assignment, "=")
		id = strings.TrimSpace(id)
		if !ok || id == "" {
			return nil, nil, fmt.Errorf("invalid assignment %q, expected id=value", assignment)
		}
		if _, seen := values[id]; !seen {
			order = append(order, id)
		}
		values[id] = append(values[id], value)
	}
	return values, order, nil
}
