package app

import (
	"context"
	"fmt"

	"github.com/casbin/casbin/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/you/hmsauth/domain"
	"github.com/you/hmsauth/internal/config"
	"github.com/you/hmsauth/internal/infrastructure/auth"
	"github.com/you/hmsauth/internal/infrastructure/database"
	"github.com/you/hmsauth/internal/infrastructure/notifications"
	"github.com/you/hmsauth/internal/infrastructure/repositories"
	"github.com/you/hmsauth/internal/http/middleware"
	"github.com/you/hmsauth/internal/logger"
	"github.com/you/hmsauth/internal/services"
)

// Container is the composition root. All implementation selection —
// plaintext vs bcrypt credentials, fixed vs random OTP codes, the
// session-switch gate — happens here, driven by config.
type Container struct {
	Config *config.Config

	DB          *gorm.DB
	RedisClient *redis.Client
	Enforcer    *casbin.Enforcer

	Directory  domain.UserDirectory
	Sessions   domain.SessionStore
	Challenges domain.ChallengeStore
	Flags      domain.FlagStore

	Verifier        domain.CredentialVerifier
	TokenSvc        domain.TokenService
	Codes           domain.CodeSource
	NotificationSvc domain.NotificationService
	Notifier        domain.Notifier
	AuthSvc         domain.AuthService
	TrialSvc        domain.TrialService
}

// NewContainer creates and initializes all dependencies
func NewContainer(cfg *config.Config) (*Container, error) {
	container := &Container{Config: cfg}

	if err := container.initDatabase(); err != nil {
		return nil, err
	}
	if err := container.initRedis(); err != nil {
		return nil, err
	}
	if err := container.initEnforcer(); err != nil {
		return nil, err
	}
	container.initRepositories()
	container.initServices()

	if cfg.DemoMode {
		if err := repositories.SeedDemoAccounts(context.Background(), container.DB, container.Verifier); err != nil {
			return nil, fmt.Errorf("failed to seed demo accounts: %w", err)
		}
	}
	return container, nil
}

func (c *Container) initDatabase() error {
	db, err := database.Open(c.Config.DBDriver, c.Config.DSN)
	if err != nil {
		return err
	}
	if err := database.AutoMigrate(db); err != nil {
		return err
	}
	c.DB = db
	return nil
}

func (c *Container) initRedis() error {
	rdb := database.NewRedis(c.Config.RedisAddr, c.Config.RedisPassword, c.Config.RedisDB)
	if err := rdb.Ping(context.Background()); err != nil {
		return fmt.Errorf("redis unreachable: %w", err)
	}
	c.RedisClient = rdb.Client
	return nil
}

func (c *Container) initEnforcer() error {
	enforcer, err := middleware.NewEnforcer(c.Config.ModelPath)
	if err != nil {
		return err
	}
	c.Enforcer = enforcer
	return nil
}

func (c *Container) initRepositories() {
	// The verifier is needed by the directory, so select it first.
	if c.Config.DemoMode {
		c.Verifier = auth.NewPlaintextVerifier()
	} else {
		c.Verifier = auth.NewBcryptVerifier()
	}

	c.Directory = repositories.NewUserDirectory(c.DB, c.Verifier)
	c.Sessions = repositories.NewSessionStore(c.RedisClient, c.Config.SessionTTL)
	c.Challenges = repositories.NewChallengeStore(c.RedisClient, c.Config.OTPTTL)
	c.Flags = repositories.NewFlagStore(c.RedisClient)
}

func (c *Container) initServices() {
	c.TokenSvc = auth.NewJWTService(c.Config.JWTSecret, c.Config.JWTIssuer, c.Config.JWTTTL)
	c.NotificationSvc = notifications.NewTwilioService(c.Config.TwilioSID, c.Config.TwilioToken, c.Config.TwilioFrom)
	c.Notifier = notifications.NewLogNotifier(logger.Get())

	if c.Config.OTPMode == "random" {
		c.Codes = auth.NewRandomCodeSource(c.Config.OTPLength)
	} else {
		c.Codes = auth.NewFixedCodeSource()
	}

	c.AuthSvc = services.NewAuthService(
		c.Directory,
		c.Sessions,
		c.Challenges,
		c.Verifier,
		c.TokenSvc,
		c.Codes,
		c.NotificationSvc,
		c.Notifier,
		c.Config.DemoMode,
	)
	c.TrialSvc = services.NewTrialService(c.Flags, services.TrialConfig{
		Deadline:      c.Config.TrialDeadline,
		WarningWindow: c.Config.TrialWarning,
	})
}

// Close closes all connections
func (c *Container) Close() error {
	if c.RedisClient != nil {
		c.RedisClient.Close()
	}
	if c.DB != nil {
		sqlDB, err := c.DB.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}
	return nil
}
