package middleware

import (
	"fmt"
	"net/http"

	"github.com/casbin/casbin/v2"
	"github.com/gin-gonic/gin"

	"github.com/you/hmsauth/internal/routing"
)

// CasbinMW wraps the casbin enforcer for middleware
type CasbinMW struct {
	enforcer *casbin.Enforcer
}

// NewCasbinMW creates new casbin middleware wrapper
func NewCasbinMW(enforcer *casbin.Enforcer) *CasbinMW {
	return &CasbinMW{enforcer: enforcer}
}

// NewEnforcer builds an in-memory enforcer whose policies are derived
// from the route table. There is no policy adapter: regenerating from the
// table on every start keeps the policy and the guard in lockstep.
func NewEnforcer(modelPath string) (*casbin.Enforcer, error) {
	enforcer, err := casbin.NewEnforcer(modelPath)
	if err != nil {
		return nil, fmt.Errorf("failed to build enforcer: %w", err)
	}
	for _, route := range routing.Table() {
		for _, role := range route.Roles {
			if _, err := enforcer.AddPolicy("role_"+string(role), route.Path, http.MethodGet); err != nil {
				return nil, fmt.Errorf("failed to seed policy for %s: %w", route.Path, err)
			}
		}
	}
	return enforcer, nil
}

// Enforce returns the casbin authorization middleware. It runs behind the
// guard, so a missing session here is a wiring error, not a user state.
func (mw *CasbinMW) Enforce() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := SessionFrom(c)
		if session == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Not signed in", "redirect": routing.LoginPath})
			c.Abort()
			return
		}

		casbinRole := "role_" + string(session.User.Role)
		allowed, err := mw.enforcer.Enforce(casbinRole, c.FullPath(), c.Request.Method)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Authorization check failed"})
			c.Abort()
			return
		}
		if !allowed {
			c.JSON(http.StatusForbidden, gin.H{"error": "Access denied", "redirect": routing.UnauthorizedPath})
			c.Abort()
			return
		}
		c.Next()
	}
}
