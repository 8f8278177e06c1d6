package tui

import (
	"github.com/Veraticus/shopimpact/internal/model"
	"github.com/Veraticus/shopimpact/internal/tracker"
)

// Data loading messages.
type dataLoadedMsg struct {
	history  []model.Purchase
	unlocked []string
	summary  tracker.Summary
}

// purchaseRecordedMsg reports a RecordPurchase call. Outcome is set whenever
// the purchase was accepted, even if persisting it failed.
type purchaseRecordedMsg struct {
	outcome *tracker.Outcome
	err     error
}

// bannerExpiredMsg hides the unlock banner with the matching sequence number.
type bannerExpiredMsg struct {
	seq int
}
