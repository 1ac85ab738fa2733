package stripe

import "strings"

// NormalizeStatus folds Stripe subscription statuses into the handful of
// values the subscription guard cares about.
func NormalizeStatus(s string) string {
	switch strings.TrimSpace(s) {
	case "":
		return "none"
	case "active":
		return "active"
	case "trialing":
		return "trialing"
	case "past_due", "unpaid":
		return "past_due"
	case "canceled", "incomplete_expired":
		return "canceled"
	default:
		return strings.TrimSpace(s)
	}
}

// IsEntitled reports whether a (normalized or raw) status still grants
// access to subscriber-only features.
func IsEntitled(s string) bool {
	switch NormalizeStatus(s) {
	case "active", "trialing":
		return true
	default:
		return false
	}
}
