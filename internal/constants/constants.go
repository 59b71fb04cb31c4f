package constants

const (
	// ContextKeyUserID is the session and gin context key holding the logged-in user ID.
	ContextKeyUserID = "user_id"
	// ContextKeyPrincipal is the gin context key holding the resolved identity.Principal.
	ContextKeyPrincipal = "principal"

	SessionCookieName = "puppy_session"

	MinPasswordLength = 8

	// DefaultTokenExpiration is the lifetime of confirmation, reset and email change tokens.
	DefaultTokenExpiration = 3600

	// API tokens may ask for a lifetime within these bounds, in seconds.
	MinAuthTokenExpiration = 60
	MaxAuthTokenExpiration = 7 * 24 * 3600

	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100

	// CategoryLineageSeparator joins category names from root to leaf.
	CategoryLineageSeparator = " > "
)
