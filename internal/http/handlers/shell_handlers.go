package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/you/hmsauth/domain"
	"github.com/you/hmsauth/internal/http/middleware"
	"github.com/you/hmsauth/internal/routing"
)

// ShellHandlers serves the UI shell's navigation affordances: the
// role-scoped menu and the per-path guard probe.
type ShellHandlers struct{}

// NewShellHandlers creates new shell handlers
func NewShellHandlers() *ShellHandlers {
	return &ShellHandlers{}
}

// Menu returns the navigation links and landing route for the current
// session's role. Signed-out clients get an empty menu pointing at login.
func (h *ShellHandlers) Menu(c *gin.Context) {
	var role domain.Role
	if session := middleware.SessionFrom(c); session != nil {
		role = session.User.Role
	}

	links := routing.NavigableRoutesFor(role)
	if links == nil {
		links = []routing.NavLink{}
	}
	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"links":         links,
			"default_route": routing.DefaultRouteFor(role),
		},
	})
}

// RouteProbe evaluates the guard for a concrete navigation path. Unknown
// paths redirect to the role's landing route, or to login when signed
// out, mirroring the portal's catch-all route.
func (h *ShellHandlers) RouteProbe(c *gin.Context) {
	path := c.Param("path")
	session := middleware.SessionFrom(c)

	route, ok := routing.Match(path)
	if !ok {
		target := routing.LoginPath
		if session != nil {
			target = routing.DefaultRouteFor(session.User.Role)
		}
		c.JSON(http.StatusOK, gin.H{
			"data": gin.H{"allowed": false, "redirect": target},
		})
		return
	}

	decision := routing.Authorize(session, route.Roles)
	if decision.Allowed {
		c.JSON(http.StatusOK, gin.H{
			"data": gin.H{"allowed": true, "path": route.Path, "label": route.Label},
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{"allowed": false, "redirect": decision.Redirect},
	})
}
