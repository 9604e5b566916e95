package order

import "strings"

var transitions = map[Status][]Status{
	StatusPending: {StatusCompleted, StatusCancelled},
}

// CanTransition reports whether an order may move from one status to another.
// Completed and cancelled are terminal.
func CanTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ParseStatus accepts a status in any letter case.
func ParseStatus(s string) (Status, bool) {
	status := Status(strings.ToLower(strings.TrimSpace(s)))
	return status, status.Valid()
}
