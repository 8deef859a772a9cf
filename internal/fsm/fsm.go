package fsm

import "haulcentral/internal/models"

var transitions = map[string]map[string]struct{}{
	models.LoadStatusAvailable: {models.LoadStatusBooked: {}},
	models.LoadStatusBooked: {
		models.LoadStatusInTransit: {},
		models.LoadStatusAvailable: {},
	},
	models.LoadStatusInTransit: {models.LoadStatusDelivered: {}},
	models.LoadStatusDelivered: {},
}

// ValidStatus reports whether s is a known load status.
func ValidStatus(s string) bool {
	_, ok := transitions[s]
	return ok
}

// CanTransition returns whether a load can move from the current status to the target status.
func CanTransition(from, to string) bool {
	if !ValidStatus(to) {
		return false
	}
	if from == to {
		return true
	}
	allowed, ok := transitions[from]
	if !ok {
		return false
	}
	_, ok = allowed[to]
	return ok
}
