package badge

import (
	"slices"

	"github.com/Veraticus/shopimpact/internal/model"
)

// Candidate runs one evaluation pass over history and returns whatever is left
// in the candidate slot. The result may name a badge that is already unlocked
// when a rule with IgnoreUnlocked fired last.
func Candidate(history []model.Purchase, unlocked []string) (string, bool) {
	if len(history) == 0 {
		return "", false
	}

	stats := NewStats(history)

	var candidate string
	for _, rule := range rules {
		if !rule.IgnoreUnlocked && slices.Contains(unlocked, rule.Badge) {
			continue
		}
		if rule.Match(stats) {
			candidate = rule.Badge
		}
	}

	return candidate, candidate != ""
}

// Evaluate returns the single badge newly unlocked by the latest purchase in
// history. At most one badge is unlocked per call even when several rules
// qualify, and a badge already in unlocked is never returned.
func Evaluate(history []model.Purchase, unlocked []string) (string, bool) {
	candidate, ok := Candidate(history, unlocked)
	if !ok || slices.Contains(unlocked, candidate) {
		return "", false
	}
	return candidate, true
}
