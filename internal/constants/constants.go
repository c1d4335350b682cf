package constants

// Context and session keys
const (
	ContextKeyIdentity  = "identity"
	ContextKeyRequestID = "request_id"

	SessionKeyUserID = "user_id"
	SessionKeyEmail  = "email"
	SessionKeyRole   = "role"

	SessionCookieName = "erms_session"
	HeaderRequestID   = "X-Request-ID"
)

// Pagination limits
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// MaxProgress caps project progress
const MaxProgress = 100

// Capacity ceilings seeded from employment type
const (
	FullTimeCapacity = 100
	PartTimeCapacity = 50
)
