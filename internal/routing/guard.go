package routing

import "github.com/you/hmsauth/domain"

// Decision is the outcome of a guard check: either the navigation is
// allowed or the client is redirected.
type Decision struct {
	Allowed  bool
	Redirect string
}

// Allow is the positive guard decision.
var Allow = Decision{Allowed: true}

// RedirectTo builds a redirecting decision.
func RedirectTo(target string) Decision {
	return Decision{Redirect: target}
}

// Authorize gates access to a view requiring one of requiredRoles. It is a
// pure function of its inputs and must be re-evaluated on every
// navigation: no session means login, a session with a role outside the
// required set means the unauthorized page.
func Authorize(session *domain.Session, requiredRoles []domain.Role) Decision {
	if session == nil {
		return RedirectTo(LoginPath)
	}
	for _, role := range requiredRoles {
		if session.User.Role == role {
			return Allow
		}
	}
	return RedirectTo(UnauthorizedPath)
}
