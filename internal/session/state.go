package session

import (
	"strings"
	"time"
)

const (
	AccessCookie  = "console_session"
	RefreshCookie = "console_refresh"
)

// Keys written by older console builds. They are never read as proof of
// authentication and are removed whenever a session is initialized.
var LegacyKeys = []string{"isAuthenticated", "isLoggedIn", "companyId"}

// State is the authenticated view of a request. The zero value is anonymous.
type State struct {
	Authenticated bool
	CompanyID     string
	Email         string
	ExpiresAt     time.Time
}

func Anonymous() State {
	return State{}
}

// DeriveCompanyID returns the local part of an email address, trimmed.
// Case is preserved.
func DeriveCompanyID(email string) string {
	email = strings.TrimSpace(email)
	at := strings.Index(email, "@")
	if at < 0 {
		return email
	}
	return strings.TrimSpace(email[:at])
}
