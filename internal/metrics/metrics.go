package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Auth counters, labeled by outcome where it matters.
var (
	LoginAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hmsauth_login_attempts_total",
		Help: "Password logins by result.",
	}, []string{"result"})

	OTPSends = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hmsauth_otp_sends_total",
		Help: "One-time codes issued.",
	})

	OTPVerifies = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hmsauth_otp_verifies_total",
		Help: "One-time code verifications by result.",
	}, []string{"result"})

	Registrations = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hmsauth_registrations_total",
		Help: "Self-registrations completed.",
	})

	SessionSwitches = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hmsauth_session_switches_total",
		Help: "Demo-mode quick session switches.",
	})

	GuardDenials = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hmsauth_guard_denials_total",
		Help: "Route guard denials by redirect target.",
	}, []string{"target"})
)
