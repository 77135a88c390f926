package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"reportbox/backend/internal/api/handler"
	"reportbox/backend/internal/config"
	"reportbox/backend/internal/livefeed"
)

type testEnv struct {
	reports   *MockReportStore
	chat      *MockChatStore
	otp       *MockOTPSender
	geocoder  *MockGeocoder
	assistant *MockAssistant
	notifier  *MockNotifier
	feed      *livefeed.Hub
	router    *gin.Engine
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	env := &testEnv{
		reports:   new(MockReportStore),
		chat:      new(MockChatStore),
		otp:       new(MockOTPSender),
		geocoder:  new(MockGeocoder),
		assistant: new(MockAssistant),
		notifier:  NewMockNotifier(),
		feed:      livefeed.NewHub(),
	}

	cfg := &config.Config{
		AdminPassword: "admin123",
		JWTSecret:     "test-secret",
	}

	h := handler.NewHandler(env.reports, env.chat, env.otp, env.geocoder,
		env.assistant, env.feed, env.notifier, cfg)

	env.router = gin.New()
	h.RegisterRoutes(env.router)
	return env
}

// doJSON performs a request with a JSON body and returns the recorder.
func (e *testEnv) doJSON(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// decodeEnvelope unpacks the uniform response wrapper.
func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var envelope map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	return envelope
}

func statusOf(envelope map[string]any) int {
	code, _ := envelope["statusCode"].(float64)
	return int(code)
}
