package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/you/hmsauth/domain"
	"github.com/you/hmsauth/internal/metrics"
	"github.com/you/hmsauth/internal/routing"
)

// SessionKey is the gin context key the loaded session is stored under.
const SessionKey = "session"

// SessionMW loads the client scope's session for downstream handlers.
type SessionMW struct {
	auth domain.AuthService
}

// NewSessionMW creates new session middleware.
func NewSessionMW(auth domain.AuthService) *SessionMW {
	return &SessionMW{auth: auth}
}

// WithSession resolves the scope's session, if any, into the context.
// Signed-out requests pass through with no session set; the guard decides
// what that means per route.
func (mw *SessionMW) WithSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		session, err := mw.auth.CurrentSession(c.Request.Context(), Scope(c))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load session"})
			c.Abort()
			return
		}
		if session != nil {
			c.Set(SessionKey, session)
		}
		c.Next()
	}
}

// SessionFrom returns the session loaded by WithSession, or nil.
func SessionFrom(c *gin.Context) *domain.Session {
	v, ok := c.Get(SessionKey)
	if !ok {
		return nil
	}
	session, _ := v.(*domain.Session)
	return session
}

// GuardFor gates a role-prefixed view. Redirect targets translate to
// statuses: login means unauthenticated, the unauthorized page means the
// role is wrong.
func GuardFor(roles []domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		decision := routing.Authorize(SessionFrom(c), roles)
		if decision.Allowed {
			c.Next()
			return
		}
		metrics.GuardDenials.WithLabelValues(decision.Redirect).Inc()
		status := http.StatusForbidden
		if decision.Redirect == routing.LoginPath {
			status = http.StatusUnauthorized
		}
		c.JSON(status, gin.H{"error": "Access denied", "redirect": decision.Redirect})
		c.Abort()
	}
}
