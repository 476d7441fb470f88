package constants

const (
	// HTTP Headers
	HeaderContentType     = "Content-Type"
	HeaderAuthorization   = "Authorization"
	HeaderXRequestID      = "X-Request-ID"
	HeaderStripeSignature = "Stripe-Signature"
	HeaderRateLimitLimit  = "X-RateLimit-Limit"
	HeaderRateLimitLeft   = "X-RateLimit-Remaining"

	// Context keys
	ContextKeyUserID    = "user_id"
	ContextKeyUserEmail = "user_email"
	ContextKeyUserName  = "user_name"
	ContextKeyUserRole  = "user_role"
	ContextKeyRequestID = "request_id"

	// Roles carried in identity-provider claims
	RoleUser  = "user"
	RoleAdmin = "admin"

	// Database table names
	TableEntitlements     = "entitlements"
	TableCheckoutSessions = "checkout_sessions"
	TableUserProfiles     = "user_profiles"

	// Webhook bodies larger than this are rejected before signature verification.
	MaxWebhookBodyBytes = 65536

	// Error messages
	ErrMsgInternalServerError = "Internal server error occurred"
	ErrMsgUnauthorized        = "Unauthorized access"
	ErrMsgForbidden           = "Access forbidden"
)
