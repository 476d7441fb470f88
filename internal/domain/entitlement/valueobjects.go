// Package entitlement models completed purchases and the rules that decide
// what a user may buy next and what they may watch now.
package entitlement

// EntitlementStatus is the lifecycle state of a stored entitlement. Only
// completed purchases are ever persisted.
type EntitlementStatus string

const (
	EntitlementStatusCompleted EntitlementStatus = "completed"
)

// IsValid checks if the status is valid
func (s EntitlementStatus) IsValid() bool {
	return s == EntitlementStatusCompleted
}

func (s EntitlementStatus) String() string {
	return string(s)
}

// NotificationKind names one of the rental expiration emails.
type NotificationKind string

const (
	NotificationWarning48h NotificationKind = "48h-warning"
	NotificationWarning24h NotificationKind = "24h-warning"
	NotificationExpired    NotificationKind = "expired"
)

// NotificationKinds lists every kind in the order a rental passes through them.
func NotificationKinds() []NotificationKind {
	return []NotificationKind{NotificationWarning48h, NotificationWarning24h, NotificationExpired}
}

// IsValid checks if the notification kind is valid
func (k NotificationKind) IsValid() bool {
	switch k {
	case NotificationWarning48h, NotificationWarning24h, NotificationExpired:
		return true
	default:
		return false
	}
}

func (k NotificationKind) String() string {
	return string(k)
}

// NotificationMarks records which expiration emails were delivered. Each flag
// is set once, after the corresponding send succeeded.
type NotificationMarks struct {
	Warning48hSent bool
	Warning24hSent bool
	ExpiredSent    bool
}

// IsSent reports the flag for kind. Unknown kinds report true so callers never
// send a notification they cannot record.
func (m NotificationMarks) IsSent(kind NotificationKind) bool {
	switch kind {
	case NotificationWarning48h:
		return m.Warning48hSent
	case NotificationWarning24h:
		return m.Warning24hSent
	case NotificationExpired:
		return m.ExpiredSent
	default:
		return true
	}
}

// With returns a copy of m with kind marked as sent.
func (m NotificationMarks) With(kind NotificationKind) NotificationMarks {
	switch kind {
	case NotificationWarning48h:
		m.Warning48hSent = true
	case NotificationWarning24h:
		m.Warning24hSent = true
	case NotificationExpired:
		m.ExpiredSent = true
	}
	return m
}
