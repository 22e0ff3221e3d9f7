package services

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"

	"github.com/you/hmsauth/domain"
	"github.com/you/hmsauth/internal/metrics"
)

var phonePattern = regexp.MustCompile(`^\+?[0-9]{7,15}$`)

// AuthServiceImpl implements domain.AuthService. One instance serves every
// client scope; per-scope session state lives entirely in the stores, so
// there is no ambient "current user" anywhere in the process.
//
// Competing mutations for the same scope (double-submit login) are
// resolved by last-write-wins on the session store. There is no per-scope
// mutex.
type AuthServiceImpl struct {
	directory   domain.UserDirectory
	sessions    domain.SessionStore
	challenges  domain.ChallengeStore
	verifier    domain.CredentialVerifier
	tokenSvc    domain.TokenService
	codes       domain.CodeSource
	sms         domain.NotificationService
	notifier    domain.Notifier
	allowSwitch bool
}

// NewAuthService creates a new auth service. allowSwitch enables the
// demo-only SwitchSession capability; production configurations leave it
// off and the operation fails unconditionally.
func NewAuthService(
	directory domain.UserDirectory,
	sessions domain.SessionStore,
	challenges domain.ChallengeStore,
	verifier domain.CredentialVerifier,
	tokenSvc domain.TokenService,
	codes domain.CodeSource,
	sms domain.NotificationService,
	notifier domain.Notifier,
	allowSwitch bool,
) domain.AuthService {
	return &AuthServiceImpl{
		directory:   directory,
		sessions:    sessions,
		challenges:  challenges,
		verifier:    verifier,
		tokenSvc:    tokenSvc,
		codes:       codes,
		sms:         sms,
		notifier:    notifier,
		allowSwitch: allowSwitch,
	}
}

// Login implements domain.AuthService. On credential mismatch the prior
// session of the scope, if any, is left untouched.
func (s *AuthServiceImpl) Login(ctx context.Context, scope, identifier, password string, rememberMe bool) (*domain.Session, error) {
	user, err := s.directory.FindByCredential(ctx, identifier, password)
	if err != nil {
		return nil, fmt.Errorf("credential lookup failed: %w", err)
	}
	if user == nil {
		metrics.LoginAttempts.WithLabelValues("failure").Inc()
		s.notifier.Publish(domain.NewEvent(domain.EventError, "Login Failed", "Invalid credentials"))
		return nil, domain.ErrInvalidCredentials
	}

	session, err := s.createSession(ctx, scope, user, rememberMe)
	if err != nil {
		return nil, err
	}

	metrics.LoginAttempts.WithLabelValues("success").Inc()
	s.notifier.Publish(domain.NewEvent(domain.EventSuccess, "Login Successful!", "Welcome back, "+user.Name))
	return session, nil
}

// SendOTP implements domain.AuthService. A new challenge supersedes any
// previous one for the scope, whatever phone it was bound to.
func (s *AuthServiceImpl) SendOTP(ctx context.Context, scope, phone string) (*domain.OTPChallenge, error) {
	if !phonePattern.MatchString(phone) {
		return nil, domain.ErrInvalidPhone
	}

	user, err := s.directory.FindByPhone(ctx, phone)
	if err != nil {
		return nil, fmt.Errorf("phone lookup failed: %w", err)
	}

	code, err := s.codes.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate code: %w", err)
	}

	challenge := &domain.OTPChallenge{
		Phone:      phone,
		Code:       code,
		UserExists: user != nil,
		SentAt:     time.Now(),
	}
	if err := s.challenges.Put(ctx, scope, challenge); err != nil {
		return nil, fmt.Errorf("failed to store challenge: %w", err)
	}

	if err := s.sms.SendSMS(phone, "Your MediCare verification code is: "+code); err != nil {
		return nil, fmt.Errorf("failed to send OTP SMS: %w", err)
	}

	metrics.OTPSends.Inc()
	s.notifier.Publish(domain.NewEvent(domain.EventInfo, "OTP Sent", "A verification code was sent to "+phone))
	return challenge, nil
}

// VerifyOTP implements domain.AuthService. When no directory entry exists
// for the phone, a patient-role record is synthesized and registered for
// the remainder of the runtime.
func (s *AuthServiceImpl) VerifyOTP(ctx context.Context, scope, phone, code string) (*domain.Session, error) {
	challenge, err := s.challenges.Get(ctx, scope)
	if err != nil {
		return nil, fmt.Errorf("challenge lookup failed: %w", err)
	}
	if challenge == nil || challenge.Phone != phone {
		metrics.OTPVerifies.WithLabelValues("failure").Inc()
		return nil, domain.ErrNoActiveChallenge
	}
	if challenge.Code != code {
		metrics.OTPVerifies.WithLabelValues("failure").Inc()
		s.notifier.Publish(domain.NewEvent(domain.EventError, "Verification Failed", "Invalid OTP"))
		return nil, domain.ErrInvalidCode
	}

	user, err := s.directory.FindByPhone(ctx, phone)
	if err != nil {
		return nil, fmt.Errorf("phone lookup failed: %w", err)
	}
	if user == nil {
		user = s.synthesizePatient(phone)
		if err := s.directory.Create(ctx, user); err != nil {
			return nil, fmt.Errorf("failed to register patient: %w", err)
		}
	}

	session, err := s.createSession(ctx, scope, user, false)
	if err != nil {
		return nil, err
	}
	if err := s.challenges.Consume(ctx, scope); err != nil {
		return nil, fmt.Errorf("failed to consume challenge: %w", err)
	}

	metrics.OTPVerifies.WithLabelValues("success").Inc()
	s.notifier.Publish(domain.NewEvent(domain.EventSuccess, "Login Successful!", "Welcome "+user.Name))
	return session, nil
}

// Register implements domain.AuthService.
func (s *AuthServiceImpl) Register(ctx context.Context, scope string, profile domain.RegistrationProfile) (*domain.Session, error) {
	if !profile.Complete() {
		return nil, domain.ErrIncompleteProfile
	}

	stored, err := s.verifier.Hash(profile.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to store credential: %w", err)
	}

	user := &domain.UserRecord{
		ID:         newUserID(),
		Name:       profile.Name,
		Email:      profile.Email,
		Phone:      profile.Phone,
		Credential: stored,
		Role:       domain.RolePatient,
	}
	if err := s.directory.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	session, err := s.createSession(ctx, scope, user, false)
	if err != nil {
		return nil, err
	}

	metrics.Registrations.Inc()
	s.notifier.Publish(domain.NewEvent(domain.EventSuccess, "Registration Successful!", "Welcome "+user.Name))
	return session, nil
}

// Logout implements domain.AuthService. Idempotent: clearing an absent
// session is a no-op.
func (s *AuthServiceImpl) Logout(ctx context.Context, scope string) error {
	if err := s.sessions.Clear(ctx, scope); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	s.notifier.Publish(domain.NewEvent(domain.EventInfo, "Logged out successfully", ""))
	return nil
}

// SwitchSession implements domain.AuthService. Demo-only: replaces the
// active session with a looked-up account, no credential check. Gated at
// construction so production builds cannot reach it.
func (s *AuthServiceImpl) SwitchSession(ctx context.Context, scope, identifier string) (*domain.Session, error) {
	if !s.allowSwitch {
		return nil, domain.ErrSwitchDisabled
	}

	user, err := s.lookupAny(ctx, identifier)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnknownUser
	}

	session, err := s.createSession(ctx, scope, user, false)
	if err != nil {
		return nil, err
	}

	metrics.SessionSwitches.Inc()
	s.notifier.Publish(domain.NewEvent(domain.EventInfo, "Switched User", "Now logged in as "+user.Name))
	return session, nil
}

// UpdateProfile implements domain.AuthService. The merge lands in the
// session copy and is written through to the directory entry.
//
// The persisted snapshot never carries the credential, so the directory
// merge must start from the stored record; writing the session copy back
// would blank the password column.
func (s *AuthServiceImpl) UpdateProfile(ctx context.Context, scope string, fields domain.ProfileUpdate) (*domain.Session, error) {
	session, err := s.sessions.Load(ctx, scope)
	if err != nil {
		return nil, fmt.Errorf("session lookup failed: %w", err)
	}
	if session == nil {
		return nil, domain.ErrNoActiveSession
	}

	record, err := s.directory.FindByID(ctx, session.User.ID)
	if err != nil {
		return nil, fmt.Errorf("directory lookup failed: %w", err)
	}
	if record != nil {
		fields.ApplyTo(record)
		if err := s.directory.Update(ctx, record); err != nil {
			return nil, fmt.Errorf("failed to update directory entry: %w", err)
		}
		session.User = *record
	} else {
		fields.ApplyTo(&session.User)
	}
	if err := s.sessions.Save(ctx, scope, session); err != nil {
		return nil, fmt.Errorf("failed to persist session: %w", err)
	}

	s.notifier.Publish(domain.NewEvent(domain.EventSuccess, "Profile Updated", ""))
	return session, nil
}

// CurrentSession implements domain.AuthService.
func (s *AuthServiceImpl) CurrentSession(ctx context.Context, scope string) (*domain.Session, error) {
	return s.sessions.Load(ctx, scope)
}

// createSession builds, tokenizes and persists a session snapshot. The
// session carries a value copy of the user record.
func (s *AuthServiceImpl) createSession(ctx context.Context, scope string, user *domain.UserRecord, rememberMe bool) (*domain.Session, error) {
	session := &domain.Session{
		ID:         "sess_" + uuid.NewString(),
		User:       *user,
		RememberMe: rememberMe,
		CreatedAt:  time.Now(),
	}

	token, err := s.tokenSvc.Mint(user.ID, user.Role, session.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to mint session token: %w", err)
	}
	session.Token = token

	if err := s.sessions.Save(ctx, scope, session); err != nil {
		return nil, fmt.Errorf("failed to persist session: %w", err)
	}
	return session, nil
}

// lookupAny resolves an identifier against id, email and phone in turn.
func (s *AuthServiceImpl) lookupAny(ctx context.Context, identifier string) (*domain.UserRecord, error) {
	for _, find := range []func(context.Context, string) (*domain.UserRecord, error){
		s.directory.FindByID,
		s.directory.FindByEmail,
		s.directory.FindByPhone,
	} {
		user, err := find(ctx, identifier)
		if err != nil {
			return nil, fmt.Errorf("directory lookup failed: %w", err)
		}
		if user != nil {
			return user, nil
		}
	}
	return nil, nil
}

// synthesizePatient builds the placeholder record registered when an OTP
// login arrives for an unknown phone. The id derives from the current
// time.
func (s *AuthServiceImpl) synthesizePatient(phone string) *domain.UserRecord {
	return &domain.UserRecord{
		ID:    newUserID(),
		Name:  "New Patient",
		Phone: phone,
		Role:  domain.RolePatient,
	}
}

func newUserID() string {
	return fmt.Sprintf("usr-%d", time.Now().UnixNano())
}
