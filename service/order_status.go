package service

import "Storefront/models"

var statusGraph = map[string][]string{
	models.OrderStatusNew:       {models.OrderStatusConfirmed, models.OrderStatusCancelled},
	models.OrderStatusConfirmed: {models.OrderStatusShipped, models.OrderStatusCancelled},
	models.OrderStatusShipped:   {models.OrderStatusDelivered},
	models.OrderStatusDelivered: {},
	models.OrderStatusCancelled: {},
}

func IsKnownStatus(status string) bool {
	_, ok := statusGraph[status]
	return ok
}

// AllowedTransitions 返回 from 可以流转到的状态，终态返回空切片
func AllowedTransitions(from string) []string {
	next := statusGraph[from]
	out := make([]string, len(next))
	copy(out, next)
	return out
}

// CheckTransition 同状态视为幂等，返回 nil
func CheckTransition(from, to string) error {
	if from == to {
		return nil
	}
	for _, s := range statusGraph[from] {
		if s == to {
			return nil
		}
	}
	return &InvalidTransitionError{From: from, To: to, Allowed: AllowedTransitions(from)}
}
