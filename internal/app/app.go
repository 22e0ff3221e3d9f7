package app

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/you/hmsauth/internal/config"
	httpx "github.com/you/hmsauth/internal/http"
	"github.com/you/hmsauth/internal/http/handlers"
	"github.com/you/hmsauth/internal/http/middleware"
)

// Run wires the container into the HTTP surface and serves it.
func Run(cfg *config.Config) error {
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	container, err := NewContainer(cfg)
	if err != nil {
		return err
	}
	defer container.Close()

	authH := handlers.NewAuthHandlers(container.AuthSvc)
	shellH := handlers.NewShellHandlers()
	trialH := handlers.NewTrialHandlers(container.TrialSvc)

	sessionMW := middleware.NewSessionMW(container.AuthSvc)
	casbinMW := middleware.NewCasbinMW(container.Enforcer)

	r := httpx.BuildRouter(authH, shellH, trialH, sessionMW, casbinMW)

	addr := ":" + cfg.Port
	log.Info().Str("addr", addr).Bool("demo_mode", cfg.DemoMode).Msg("listening")
	return http.ListenAndServe(addr, r)
}
