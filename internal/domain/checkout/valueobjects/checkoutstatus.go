package valueobjects

type CheckoutStatus string

const (
	CheckoutStatusPending   CheckoutStatus = "pending"
	CheckoutStatusCompleted CheckoutStatus = "completed"
	// CheckoutStatusRejected marks a paid checkout that was not granted because
	// the user became ineligible before settlement.
	CheckoutStatusRejected CheckoutStatus = "rejected"
	CheckoutStatusExpired  CheckoutStatus = "expired"
)

func (s CheckoutStatus) IsValid() bool {
	switch s {
	case CheckoutStatusPending, CheckoutStatusCompleted, CheckoutStatusRejected, CheckoutStatusExpired:
		return true
	default:
		return false
	}
}

func (s CheckoutStatus) IsPending() bool {
	return s == CheckoutStatusPending
}

func (s CheckoutStatus) IsFinal() bool {
	return s == CheckoutStatusCompleted || s == CheckoutStatusRejected || s == CheckoutStatusExpired
}

func (s CheckoutStatus) String() string {
	return string(s)
}
