package components

// PurchaseSubmittedMsg carries a validated entry from the purchase form.
type PurchaseSubmittedMsg struct {
	Category string
	Brand    string
	Price    float64
}

// FormCancelledMsg is sent when the purchase form is dismissed.
type FormCancelledMsg struct{}
