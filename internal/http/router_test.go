package httpx

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/you/hmsauth/domain"
	"github.com/you/hmsauth/internal/http/handlers"
	"github.com/you/hmsauth/internal/http/middleware"
	"github.com/you/hmsauth/internal/mocks"
)

const testModelPath = "../../config/casbin_model.conf"

func setupTestRouter(t *testing.T, authSvc *mocks.MockAuthService) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	enforcer, err := middleware.NewEnforcer(testModelPath)
	if err != nil {
		t.Fatalf("failed to build enforcer: %v", err)
	}
	return BuildRouter(
		handlers.NewAuthHandlers(authSvc),
		handlers.NewShellHandlers(),
		handlers.NewTrialHandlers(mocks.NewMockTrialService()),
		middleware.NewSessionMW(authSvc),
		middleware.NewCasbinMW(enforcer),
	)
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Client-Id", "test-client")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func sessionFor(role domain.Role) *domain.Session {
	return &domain.Session{
		ID: "sess_test",
		User: domain.UserRecord{
			ID:   "usr-1002",
			Name: "Dr. Suman Dixit",
			Role: role,
		},
		Token: "test-token",
	}
}

func TestRouter_Login(t *testing.T) {
	tests := []struct {
		name           string
		body           any
		loginErr       error
		expectedStatus int
	}{
		{
			name:           "successful login",
			body:           map[string]any{"identifier": "suman@medicare.demo", "password": "demo"},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "invalid credentials",
			body:           map[string]any{"identifier": "suman@medicare.demo", "password": "wrong"},
			loginErr:       domain.ErrInvalidCredentials,
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "missing fields",
			body:           map[string]any{"identifier": "suman@medicare.demo"},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authSvc := mocks.NewMockAuthService()
			authSvc.LoginFunc = func(ctx context.Context, scope, identifier, password string, rememberMe bool) (*domain.Session, error) {
				if scope != "test-client" {
					t.Errorf("scope = %q, want test-client", scope)
				}
				if tt.loginErr != nil {
					return nil, tt.loginErr
				}
				return sessionFor(domain.RoleDoctor), nil
			}
			r := setupTestRouter(t, authSvc)

			w := doJSON(t, r, http.MethodPost, "/auth/login", tt.body)
			if w.Code != tt.expectedStatus {
				t.Fatalf("status = %d, want %d: %s", w.Code, tt.expectedStatus, w.Body.String())
			}
			if tt.expectedStatus == http.StatusOK {
				if !strings.Contains(w.Body.String(), "/doctor/dashboard") {
					t.Errorf("response missing default route: %s", w.Body.String())
				}
			}
		})
	}
}

func TestRouter_OTPErrorMapping(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
	}{
		{"no challenge", domain.ErrNoActiveChallenge, http.StatusNotFound},
		{"wrong code", domain.ErrInvalidCode, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authSvc := mocks.NewMockAuthService()
			authSvc.VerifyOTPFunc = func(ctx context.Context, scope, phone, code string) (*domain.Session, error) {
				return nil, tt.err
			}
			r := setupTestRouter(t, authSvc)

			w := doJSON(t, r, http.MethodPost, "/auth/otp/verify", map[string]any{"phone": "+911234567890", "code": "000000"})
			if w.Code != tt.expectedStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.expectedStatus)
			}
		})
	}
}

func TestRouter_SendOTPInvalidPhone(t *testing.T) {
	authSvc := mocks.NewMockAuthService()
	authSvc.SendOTPFunc = func(ctx context.Context, scope, phone string) (*domain.OTPChallenge, error) {
		return nil, domain.ErrInvalidPhone
	}
	r := setupTestRouter(t, authSvc)

	w := doJSON(t, r, http.MethodPost, "/auth/otp/send", map[string]any{"phone": "abc"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestRouter_Register(t *testing.T) {
	authSvc := mocks.NewMockAuthService()
	authSvc.RegisterFunc = func(ctx context.Context, scope string, profile domain.RegistrationProfile) (*domain.Session, error) {
		s := sessionFor(domain.RolePatient)
		s.User.Name = profile.Name
		return s, nil
	}
	r := setupTestRouter(t, authSvc)

	w := doJSON(t, r, http.MethodPost, "/auth/register", map[string]any{
		"name": "Anita Rao", "email": "anita@example.com", "phone": "+918888888888", "password": "secret",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "/patient/dashboard") {
		t.Errorf("response missing patient landing route: %s", w.Body.String())
	}

	// Binding catches a bad email before the service runs.
	w = doJSON(t, r, http.MethodPost, "/auth/register", map[string]any{
		"name": "Anita Rao", "email": "not-an-email", "phone": "+918888888888", "password": "secret",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestRouter_SwitchDisabled(t *testing.T) {
	r := setupTestRouter(t, mocks.NewMockAuthService())

	w := doJSON(t, r, http.MethodPost, "/auth/switch", map[string]any{"identifier": "usr-1002"})
	if w.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", w.Code)
	}
}

func TestRouter_ProfileRequiresSession(t *testing.T) {
	r := setupTestRouter(t, mocks.NewMockAuthService())

	w := doJSON(t, r, http.MethodPut, "/auth/profile", map[string]any{"name": "X"})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestRouter_MeSignedOut(t *testing.T) {
	r := setupTestRouter(t, mocks.NewMockAuthService())

	w := doJSON(t, r, http.MethodGet, "/auth/me", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"session":null`) {
		t.Errorf("expected null session, got %s", w.Body.String())
	}
}

func TestRouter_ShellMenu(t *testing.T) {
	tests := []struct {
		name        string
		session     *domain.Session
		wantRoute   string
		wantLink    string
		forbidsLink string
	}{
		{
			name:      "signed out",
			wantRoute: "/login",
		},
		{
			name:        "doctor menu",
			session:     sessionFor(domain.RoleDoctor),
			wantRoute:   "/doctor/dashboard",
			wantLink:    "/doctor/patients",
			forbidsLink: "/admin/users",
		},
		{
			name:        "admin menu",
			session:     sessionFor(domain.RoleAdmin),
			wantRoute:   "/admin/dashboard",
			wantLink:    "/admin/billing",
			forbidsLink: "/doctor/patients",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authSvc := mocks.NewMockAuthService()
			authSvc.CurrentSessionFunc = func(ctx context.Context, scope string) (*domain.Session, error) {
				return tt.session, nil
			}
			r := setupTestRouter(t, authSvc)

			w := doJSON(t, r, http.MethodGet, "/shell/menu", nil)
			if w.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200", w.Code)
			}
			body := w.Body.String()
			if !strings.Contains(body, tt.wantRoute) {
				t.Errorf("menu missing default route %s: %s", tt.wantRoute, body)
			}
			if tt.wantLink != "" && !strings.Contains(body, tt.wantLink) {
				t.Errorf("menu missing link %s: %s", tt.wantLink, body)
			}
			if tt.forbidsLink != "" && strings.Contains(body, tt.forbidsLink) {
				t.Errorf("menu leaks link %s: %s", tt.forbidsLink, body)
			}
		})
	}
}

func TestRouter_RouteProbe(t *testing.T) {
	tests := []struct {
		name        string
		session     *domain.Session
		path        string
		wantAllowed bool
		wantTarget  string
	}{
		{
			name:       "signed out redirects to login",
			path:       "/doctor/dashboard",
			wantTarget: "/login",
		},
		{
			name:        "right role allowed",
			session:     sessionFor(domain.RoleDoctor),
			path:        "/doctor/dashboard",
			wantAllowed: true,
		},
		{
			name:        "param route allowed",
			session:     sessionFor(domain.RoleDoctor),
			path:        "/doctor/emr/usr-1001",
			wantAllowed: true,
		},
		{
			name:       "wrong role redirects to unauthorized",
			session:    sessionFor(domain.RolePatient),
			path:       "/doctor/dashboard",
			wantTarget: "/unauthorized",
		},
		{
			name:       "unknown path falls back to landing route",
			session:    sessionFor(domain.RoleDoctor),
			path:       "/no/such/view",
			wantTarget: "/doctor/dashboard",
		},
		{
			name:       "unknown path signed out",
			path:       "/no/such/view",
			wantTarget: "/login",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authSvc := mocks.NewMockAuthService()
			authSvc.CurrentSessionFunc = func(ctx context.Context, scope string) (*domain.Session, error) {
				return tt.session, nil
			}
			r := setupTestRouter(t, authSvc)

			w := doJSON(t, r, http.MethodGet, "/shell/route"+tt.path, nil)
			if w.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200", w.Code)
			}

			var resp struct {
				Data struct {
					Allowed  bool   `json:"allowed"`
					Redirect string `json:"redirect"`
				} `json:"data"`
			}
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if resp.Data.Allowed != tt.wantAllowed {
				t.Errorf("allowed = %v, want %v", resp.Data.Allowed, tt.wantAllowed)
			}
			if !tt.wantAllowed && resp.Data.Redirect != tt.wantTarget {
				t.Errorf("redirect = %s, want %s", resp.Data.Redirect, tt.wantTarget)
			}
		})
	}
}

func TestRouter_ViewEnforcement(t *testing.T) {
	tests := []struct {
		name           string
		session        *domain.Session
		path           string
		expectedStatus int
	}{
		{"no session", nil, "/doctor/dashboard", http.StatusUnauthorized},
		{"wrong role", sessionFor(domain.RolePatient), "/doctor/dashboard", http.StatusForbidden},
		{"right role", sessionFor(domain.RoleDoctor), "/doctor/dashboard", http.StatusOK},
		{"param view right role", sessionFor(domain.RoleDoctor), "/doctor/emr/usr-1001", http.StatusOK},
		{"param view wrong role", sessionFor(domain.RoleStaff), "/doctor/emr/usr-1001", http.StatusForbidden},
		{"staff view", sessionFor(domain.RoleStaff), "/staff/register-patient", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authSvc := mocks.NewMockAuthService()
			authSvc.CurrentSessionFunc = func(ctx context.Context, scope string) (*domain.Session, error) {
				return tt.session, nil
			}
			r := setupTestRouter(t, authSvc)

			w := doJSON(t, r, http.MethodGet, tt.path, nil)
			if w.Code != tt.expectedStatus {
				t.Errorf("status = %d, want %d: %s", w.Code, tt.expectedStatus, w.Body.String())
			}
		})
	}
}

func TestRouter_ScopeCookieMinted(t *testing.T) {
	r := setupTestRouter(t, mocks.NewMockAuthService())

	// No header, no cookie: the middleware mints a scope cookie.
	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	found := false
	for _, c := range w.Result().Cookies() {
		if c.Name == middleware.ScopeCookie && c.Value != "" {
			found = true
		}
	}
	if !found {
		t.Error("expected a minted hms_client cookie")
	}
}

func TestRouter_TrialEndpoints(t *testing.T) {
	r := setupTestRouter(t, mocks.NewMockAuthService())

	w := doJSON(t, r, http.MethodGet, "/trial/status", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status: %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "active") {
		t.Errorf("expected active trial, got %s", w.Body.String())
	}

	w = doJSON(t, r, http.MethodPost, "/trial/ack", map[string]any{"notice": "notice-seen"})
	if w.Code != http.StatusOK {
		t.Errorf("ack status = %d, want 200", w.Code)
	}

	w = doJSON(t, r, http.MethodPost, "/trial/ack", map[string]any{"notice": "bogus"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("bogus ack status = %d, want 400", w.Code)
	}
}

func TestRouter_Health(t *testing.T) {
	r := setupTestRouter(t, mocks.NewMockAuthService())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
}
