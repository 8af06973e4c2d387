package constants

import "time"

// Session / context keys
const (
	ContextKeyUserID        = "user_id"
	ContextKeyActiveOrgID   = "active_organization_id"
	ContextKeySessionCookie = "form_review_session"
)

// Validation limits
const (
	MinPasswordLength = 8
	MaxNameLength     = 255
)

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// InvitationTTL is how long a pending invitation stays valid.
const InvitationTTL = 7 * 24 * time.Hour

// SessionMaxAge is the cookie session lifetime in seconds.
const SessionMaxAge = 86400 * 7
