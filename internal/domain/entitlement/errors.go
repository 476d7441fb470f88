package entitlement

import (
	"errors"
)

var (
	// ErrEntitlementNotFound is returned when an entitlement is not found
	ErrEntitlementNotFound = errors.New("entitlement not found")

	// ErrUserIDRequired is returned when user ID is missing
	ErrUserIDRequired = errors.New("user ID is required")

	// ErrExternalSessionIDRequired is returned when the payment session reference is missing
	ErrExternalSessionIDRequired = errors.New("external session ID is required")

	// ErrInvalidStatus is returned when an invalid entitlement status is provided
	ErrInvalidStatus = errors.New("invalid entitlement status")

	// ErrInvalidNotificationKind is returned for an unknown notification kind
	ErrInvalidNotificationKind = errors.New("invalid notification kind")

	// ErrExpiryMismatch is returned when a stored expiry contradicts the tier catalog
	ErrExpiryMismatch = errors.New("expiry does not match tier")

	// ErrDuplicateSession is returned when an entitlement for the same payment session already exists
	ErrDuplicateSession = errors.New("entitlement already recorded for session")
)
