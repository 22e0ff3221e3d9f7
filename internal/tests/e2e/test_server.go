package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	httpx "github.com/you/hmsauth/internal/http"
	"github.com/you/hmsauth/internal/http/handlers"
	"github.com/you/hmsauth/internal/http/middleware"
	"github.com/you/hmsauth/internal/infrastructure/auth"
	"github.com/you/hmsauth/internal/infrastructure/notifications"
	"github.com/you/hmsauth/internal/infrastructure/repositories"
	"github.com/you/hmsauth/internal/services"
)

const casbinModelPath = "../../../config/casbin_model.conf"

// testServer runs the full stack over real stores: miniredis for session
// state, in-memory sqlite for the directory. Rebuilding the router over
// the same stores simulates a process restart.
type testServer struct {
	t      *testing.T
	db     *gorm.DB
	client *redis.Client
	router *gin.Engine
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mr, err := miniredis.Run()
	require.NoError(t, err, "failed to start miniredis")
	t.Cleanup(mr.Close)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	dsn := fmt.Sprintf("file:e2e%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err, "failed to open sqlite")
	require.NoError(t, db.AutoMigrate(&repositories.DBUser{}), "failed to migrate")
	require.NoError(t, repositories.SeedDemoAccounts(context.Background(), db, auth.NewPlaintextVerifier()), "failed to seed")

	ts := &testServer{t: t, db: db, client: client}
	ts.router = ts.buildRouter()
	return ts
}

// buildRouter assembles a fresh service stack over the existing stores,
// demo mode on.
func (ts *testServer) buildRouter() *gin.Engine {
	ts.t.Helper()

	verifier := auth.NewPlaintextVerifier()
	directory := repositories.NewUserDirectory(ts.db, verifier)
	sessions := repositories.NewSessionStore(ts.client, 0)
	challenges := repositories.NewChallengeStore(ts.client, 0)
	flags := repositories.NewFlagStore(ts.client)

	tokenSvc := auth.NewJWTService("e2e-secret", "hmsauth", time.Hour)
	sms := notifications.NewTwilioService("", "", "")
	notifier := notifications.NewLogNotifier(zerolog.Nop())

	authSvc := services.NewAuthService(
		directory, sessions, challenges,
		verifier, tokenSvc, auth.NewFixedCodeSource(),
		sms, notifier, true,
	)
	trialSvc := services.NewTrialService(flags, services.TrialConfig{
		Deadline:      time.Now().Add(7 * 24 * time.Hour),
		WarningWindow: 48 * time.Hour,
	})

	enforcer, err := middleware.NewEnforcer(casbinModelPath)
	require.NoError(ts.t, err, "failed to build enforcer")

	return httpx.BuildRouter(
		handlers.NewAuthHandlers(authSvc),
		handlers.NewShellHandlers(),
		handlers.NewTrialHandlers(trialSvc),
		middleware.NewSessionMW(authSvc),
		middleware.NewCasbinMW(enforcer),
	)
}

// restart swaps in a fresh router over the same stores.
func (ts *testServer) restart() {
	ts.router = ts.buildRouter()
}

// do issues a request as the given client.
func (ts *testServer) do(method, path, clientID string, body any) *httptest.ResponseRecorder {
	ts.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			ts.t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Client-Id", clientID)
	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	return w
}

// decode unmarshals the data envelope of a response.
func decode(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode envelope: %v (%s)", err, w.Body.String())
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		t.Fatalf("decode data: %v (%s)", err, envelope.Data)
	}
}

type sessionData struct {
	Session *struct {
		ID   string `json:"id"`
		User struct {
			ID   string `json:"id"`
			Name string `json:"name"`
			Role string `json:"role"`
		} `json:"user"`
	} `json:"session"`
	DefaultRoute string `json:"default_route"`
}
