package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type AppConfig struct {
	Port     int    `yaml:"port"`
	GinMode  string `yaml:"gin_mode"`
	DemoMode bool   `yaml:"demo_mode"`
}

type DatabaseConfig struct {
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type SessionConfig struct {
	TTL string `yaml:"ttl"`
}

type JWTConfig struct {
	Secret string `yaml:"secret"`
	Issuer string `yaml:"issuer"`
	TTL    string `yaml:"ttl"`
}

type OTPConfig struct {
	Mode   string `yaml:"mode"` // fixed | random
	Length int    `yaml:"length"`
	TTL    string `yaml:"ttl"`
}

type TwilioConfig struct {
	AccountSID string `yaml:"account_sid"`
	AuthToken  string `yaml:"auth_token"`
	FromNumber string `yaml:"from_number"`
}

type CasbinConfig struct {
	ModelPath string `yaml:"model_path"`
}

type TrialConfig struct {
	Deadline      string `yaml:"deadline"`
	WarningWindow string `yaml:"warning_window"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type ConfigFile struct {
	App      AppConfig      `yaml:"app"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Session  SessionConfig  `yaml:"session"`
	JWT      JWTConfig      `yaml:"jwt"`
	OTP      OTPConfig      `yaml:"otp"`
	Twilio   TwilioConfig   `yaml:"twilio"`
	Casbin   CasbinConfig   `yaml:"casbin"`
	Trial    TrialConfig    `yaml:"trial"`
	Log      LogConfig      `yaml:"log"`
}

// Config is the resolved runtime configuration. DemoMode selects the
// plaintext verifier, the fixed OTP code, the demo account seed and the
// session-switch capability in one knob.
type Config struct {
	Port          string
	GinMode       string
	DemoMode      bool
	DBDriver      string
	DSN           string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	SessionTTL    time.Duration
	JWTSecret     string
	JWTIssuer     string
	JWTTTL        time.Duration
	OTPMode       string
	OTPLength     int
	OTPTTL        time.Duration
	TwilioSID     string
	TwilioToken   string
	TwilioFrom    string
	ModelPath     string
	TrialDeadline time.Time
	TrialWarning  time.Duration
	LogLevel      string
	LogFormat     string
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// Load reads config/config.yml (path overridable via HMSAUTH_CONFIG) and
// resolves it into a Config. Secrets may be overridden by environment
// variables so the yaml file can stay checked in.
func Load() (*Config, error) {
	configFile, err := loadConfigFile(env("HMSAUTH_CONFIG", "config/config.yml"))
	if err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	sessionTTL, err := parseDuration(configFile.Session.TTL, 0)
	if err != nil {
		return nil, fmt.Errorf("invalid session TTL: %w", err)
	}
	jwtTTL, err := parseDuration(configFile.JWT.TTL, 24*time.Hour)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT TTL: %w", err)
	}
	otpTTL, err := parseDuration(configFile.OTP.TTL, 5*time.Minute)
	if err != nil {
		return nil, fmt.Errorf("invalid OTP TTL: %w", err)
	}
	warning, err := parseDuration(configFile.Trial.WarningWindow, 48*time.Hour)
	if err != nil {
		return nil, fmt.Errorf("invalid trial warning window: %w", err)
	}

	var deadline time.Time
	if configFile.Trial.Deadline != "" {
		deadline, err = time.Parse(time.RFC3339, configFile.Trial.Deadline)
		if err != nil {
			return nil, fmt.Errorf("invalid trial deadline: %w", err)
		}
	} else {
		// A fresh demo install gets a week.
		deadline = time.Now().Add(7 * 24 * time.Hour)
	}

	return &Config{
		Port:          fmt.Sprintf("%d", configFile.App.Port),
		GinMode:       configFile.App.GinMode,
		DemoMode:      configFile.App.DemoMode || env("HMSAUTH_DEMO_MODE", "") == "true",
		DBDriver:      configFile.Database.Driver,
		DSN:           env("DATABASE_DSN", configFile.Database.DSN),
		RedisAddr:     env("REDIS_ADDR", configFile.Redis.Addr),
		RedisPassword: env("REDIS_PASSWORD", configFile.Redis.Password),
		RedisDB:       configFile.Redis.DB,
		SessionTTL:    sessionTTL,
		JWTSecret:     env("JWT_SECRET", configFile.JWT.Secret),
		JWTIssuer:     configFile.JWT.Issuer,
		JWTTTL:        jwtTTL,
		OTPMode:       configFile.OTP.Mode,
		OTPLength:     configFile.OTP.Length,
		OTPTTL:        otpTTL,
		TwilioSID:     env("TWILIO_ACCOUNT_SID", configFile.Twilio.AccountSID),
		TwilioToken:   env("TWILIO_AUTH_TOKEN", configFile.Twilio.AuthToken),
		TwilioFrom:    env("TWILIO_FROM_NUMBER", configFile.Twilio.FromNumber),
		ModelPath:     configFile.Casbin.ModelPath,
		TrialDeadline: deadline,
		TrialWarning:  warning,
		LogLevel:      configFile.Log.Level,
		LogFormat:     configFile.Log.Format,
	}, nil
}

func loadConfigFile(path string) (*ConfigFile, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read config file at %s: %w", path, err)
	}

	var config ConfigFile
	if err := yaml.Unmarshal(bytes, &config); err != nil {
		return nil, fmt.Errorf("could not parse config yaml: %w", err)
	}
	return &config, nil
}

func parseDuration(s string, def time.Duration) (time.Duration, error) {
	if s == "" {
		return def, nil
	}
	return time.ParseDuration(s)
}
