package httpx

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/you/hmsauth/internal/http/handlers"
	"github.com/you/hmsauth/internal/http/middleware"
	"github.com/you/hmsauth/internal/routing"
)

// BuildRouter wires the HTTP surface. Every /auth, /shell and /trial
// route runs under the client-scope and session middleware; the
// role-prefixed view paths additionally pass the guard and the casbin
// policy.
func BuildRouter(ah *handlers.AuthHandlers, sh *handlers.ShellHandlers, th *handlers.TrialHandlers, smw *middleware.SessionMW, cb *middleware.CasbinMW) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	scoped := r.Group("/", middleware.ClientScope(), smw.WithSession())

	auth := scoped.Group("/auth")
	auth.POST("/login", ah.Login)
	auth.POST("/otp/send", ah.SendOTP)
	auth.POST("/otp/verify", ah.VerifyOTP)
	auth.POST("/register", ah.Register)
	auth.POST("/logout", ah.Logout)
	auth.POST("/switch", ah.Switch)
	auth.PUT("/profile", ah.UpdateProfile)
	auth.GET("/me", ah.Me)

	shell := scoped.Group("/shell")
	shell.GET("/menu", sh.Menu)
	shell.GET("/route/*path", sh.RouteProbe)

	trial := scoped.Group("/trial")
	trial.GET("/status", th.Status)
	trial.POST("/ack", th.Acknowledge)

	// The portal's role-prefixed pages, served as view descriptors so the
	// guard and the policy front real endpoints.
	for _, route := range routing.Table() {
		scoped.GET(route.Path, middleware.GuardFor(route.Roles), cb.Enforce(), viewHandler(route))
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found", "redirect": routing.LoginPath})
	})

	return r
}

func viewHandler(route routing.Route) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"data": gin.H{"path": route.Path, "label": route.Label},
		})
	}
}
