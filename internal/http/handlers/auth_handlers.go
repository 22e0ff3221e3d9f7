package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/you/hmsauth/domain"
	"github.com/you/hmsauth/internal/http/middleware"
	"github.com/you/hmsauth/internal/routing"
)

// AuthHandlers handles authentication HTTP requests
type AuthHandlers struct {
	authSvc domain.AuthService
}

// NewAuthHandlers creates new auth handlers
func NewAuthHandlers(authSvc domain.AuthService) *AuthHandlers {
	return &AuthHandlers{authSvc: authSvc}
}

// LoginRequest represents a password login request
type LoginRequest struct {
	Identifier string `json:"identifier" binding:"required"`
	Password   string `json:"password" binding:"required"`
	RememberMe bool   `json:"remember_me"`
}

// SendOTPRequest represents an OTP send request
type SendOTPRequest struct {
	Phone string `json:"phone" binding:"required"`
}

// VerifyOTPRequest represents an OTP verification request
type VerifyOTPRequest struct {
	Phone string `json:"phone" binding:"required"`
	Code  string `json:"code" binding:"required"`
}

// RegisterRequest represents a registration request
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone" binding:"required"`
	Password string `json:"password" binding:"required,min=4"`
}

// SwitchRequest represents a demo session-switch request
type SwitchRequest struct {
	Identifier string `json:"identifier" binding:"required"`
}

// sessionPayload is the response body shared by every operation that
// yields a session. The default route tells the client where to land.
func sessionPayload(session *domain.Session) gin.H {
	return gin.H{
		"session":       session,
		"token":         session.Token,
		"default_route": routing.DefaultRouteFor(session.User.Role),
	}
}

// respondAuthError maps domain sentinels to HTTP statuses.
func respondAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
	case errors.Is(err, domain.ErrInvalidPhone):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid phone number"})
	case errors.Is(err, domain.ErrNoActiveChallenge):
		c.JSON(http.StatusNotFound, gin.H{"error": "No verification code was requested"})
	case errors.Is(err, domain.ErrInvalidCode):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid OTP code"})
	case errors.Is(err, domain.ErrIncompleteProfile):
		c.JSON(http.StatusBadRequest, gin.H{"error": "All registration fields are required"})
	case errors.Is(err, domain.ErrUnknownUser):
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
	case errors.Is(err, domain.ErrNoActiveSession):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not signed in"})
	case errors.Is(err, domain.ErrSwitchDisabled):
		c.JSON(http.StatusForbidden, gin.H{"error": "Session switching is disabled"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Request failed"})
	}
}

// Login handles password login
func (h *AuthHandlers) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := h.authSvc.Login(c.Request.Context(), middleware.Scope(c), req.Identifier, req.Password, req.RememberMe)
	if err != nil {
		respondAuthError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": sessionPayload(session)})
}

// SendOTP opens an OTP challenge for a phone number
func (h *AuthHandlers) SendOTP(c *gin.Context) {
	var req SendOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	challenge, err := h.authSvc.SendOTP(c.Request.Context(), middleware.Scope(c), req.Phone)
	if err != nil {
		respondAuthError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"message":     "OTP sent successfully",
			"phone":       challenge.Phone,
			"user_exists": challenge.UserExists,
		},
	})
}

// VerifyOTP resolves the open challenge and signs the user in
func (h *AuthHandlers) VerifyOTP(c *gin.Context) {
	var req VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := h.authSvc.VerifyOTP(c.Request.Context(), middleware.Scope(c), req.Phone, req.Code)
	if err != nil {
		respondAuthError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": sessionPayload(session)})
}

// Register creates a patient account and signs it in
func (h *AuthHandlers) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := h.authSvc.Register(c.Request.Context(), middleware.Scope(c), domain.RegistrationProfile{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
	})
	if err != nil {
		respondAuthError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": sessionPayload(session)})
}

// Logout clears the scope's session
func (h *AuthHandlers) Logout(c *gin.Context) {
	if err := h.authSvc.Logout(c.Request.Context(), middleware.Scope(c)); err != nil {
		respondAuthError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{"message": "Logged out successfully", "redirect": routing.LoginPath},
	})
}

// Switch replaces the session with another account's (demo mode only)
func (h *AuthHandlers) Switch(c *gin.Context) {
	var req SwitchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := h.authSvc.SwitchSession(c.Request.Context(), middleware.Scope(c), req.Identifier)
	if err != nil {
		respondAuthError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": sessionPayload(session)})
}

// UpdateProfile merges partial fields into the signed-in account
func (h *AuthHandlers) UpdateProfile(c *gin.Context) {
	var req domain.ProfileUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := h.authSvc.UpdateProfile(c.Request.Context(), middleware.Scope(c), req)
	if err != nil {
		respondAuthError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": sessionPayload(session)})
}

// Me returns the scope's session, or null when signed out
func (h *AuthHandlers) Me(c *gin.Context) {
	session := middleware.SessionFrom(c)
	if session == nil {
		c.JSON(http.StatusOK, gin.H{"data": gin.H{"session": nil}})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": sessionPayload(session)})
}
