package models

import "time"

// Session keys. token and accessToken hold the same credential under the two names the
// front-end historically used.
const (
	SessionKeyToken       = "token"
	SessionKeyAccessToken = "accessToken"
	SessionKeyExpiration  = "expiration"
	SessionKeyPermission  = "permission"

	SessionKeyFlash         = "flash"
	SessionKeyScheduleBoard = "view:schedules"
)

// CredentialKeys are cleared together on logout.
var CredentialKeys = []string{
	SessionKeyToken,
	SessionKeyAccessToken,
	SessionKeyExpiration,
	SessionKeyPermission,
}

// LoginRequest is the login form: the operator pastes the access token issued by the booking API.
type LoginRequest struct {
	Token string `json:"token" form:"token" validate:"required"`
}

// Credentials is what SetSession persists.
type Credentials struct {
	Token      string
	Expiration *time.Time
	Permission string
}

// SessionStatus describes the current session for the layout and /api/session.
type SessionStatus struct {
	Authenticated bool       `json:"authenticated"`
	Expiration    *time.Time `json:"expiration,omitempty"`
	Permission    string     `json:"permission,omitempty"`
}
