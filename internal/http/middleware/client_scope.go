package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Client scope plumbing. Each browser client carries a stable identifier
// so its session, challenge and trial state never collide with another
// client's.
const (
	// ScopeHeader overrides the cookie, for API clients.
	ScopeHeader = "X-Client-Id"
	// ScopeCookie is set on first contact and identifies the client from
	// then on.
	ScopeCookie = "hms_client"
	// ScopeKey is the gin context key the resolved scope is stored under.
	ScopeKey = "client_scope"
)

const scopeCookieMaxAge = int(365 * 24 * time.Hour / time.Second)

// ClientScope resolves the client scope of the request, minting a new one
// when the client arrives without any.
func ClientScope() gin.HandlerFunc {
	return func(c *gin.Context) {
		scope := c.GetHeader(ScopeHeader)
		if scope == "" {
			if v, err := c.Cookie(ScopeCookie); err == nil {
				scope = v
			}
		}
		if scope == "" {
			scope = uuid.NewString()
			c.SetCookie(ScopeCookie, scope, scopeCookieMaxAge, "/", "", false, true)
		}
		c.Set(ScopeKey, scope)
		c.Next()
	}
}

// Scope returns the client scope resolved by ClientScope.
func Scope(c *gin.Context) string {
	v, ok := c.Get(ScopeKey)
	if !ok {
		return ""
	}
	scope, _ := v.(string)
	return scope
}
