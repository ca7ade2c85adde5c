package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/apiarylabs/beed/internal/chat"
)

type stubChatService struct {
	answer   string
	err      error
	degraded bool
	lastQ    string
}

func (s *stubChatService) Answer(_ context.Context, question string) (string, error) {
	s.lastQ = question
	if s.err != nil {
		return "", s.err
	}
	if strings.TrimSpace(question) == "" {
		return "", chat.ErrEmptyQuestion
	}
	return s.answer, nil
}

func (s *stubChatService) Degraded() bool { return s.degraded }

func setupTestServer(t *testing.T, svc ChatService, status StatusFunc) *Server {
	t.Helper()
	if status == nil {
		status = func() Status {
			return Status{
				GeminiLoaded:        true,
				KnowledgeBaseLoaded: true,
				KnowledgeEntries:    42,
				EnvPresent:          true,
				EnvMasked:           "AIza***1234",
			}
		}
	}
	server, err := NewServer(svc, status, nil, zap.NewNop(), Config{})
	require.NoError(t, err)
	return server
}

func postChat(t *testing.T, server *Server, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/chat", bytes.NewBufferString(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	server.echo.ServeHTTP(rec, req)
	return rec
}

func TestNewServer_Validation(t *testing.T) {
	status := func() Status { return Status{} }

	_, err := NewServer(nil, status, nil, zap.NewNop(), Config{})
	assert.Error(t, err)

	_, err = NewServer(&stubChatService{}, nil, nil, zap.NewNop(), Config{})
	assert.Error(t, err)

	server, err := NewServer(&stubChatService{}, status, nil, nil, Config{})
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0", server.config.Host)
	assert.Equal(t, 8080, server.config.Port)
}

func TestHandleChat_Success(t *testing.T) {
	svc := &stubChatService{answer: "Clover blooms May to September."}
	server := setupTestServer(t, svc, nil)

	rec := postChat(t, server, `{"question":"when does clover bloom"}`)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp ChatResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "when does clover bloom", resp.Question)
	assert.Equal(t, "Clover blooms May to September.", resp.Answer)
	assert.Equal(t, "success", resp.Status)
	assert.Equal(t, "when does clover bloom", svc.lastQ)
}

func TestHandleChat_EmptyQuestion(t *testing.T) {
	server := setupTestServer(t, &stubChatService{}, nil)

	for _, body := range []string{`{"question":""}`, `{"question":"   "}`, `{}`} {
		rec := postChat(t, server, body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "body %s", body)

		var resp ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "No question provided", resp.Error)
	}
}

func TestHandleChat_MalformedBody(t *testing.T) {
	server := setupTestServer(t, &stubChatService{}, nil)

	rec := postChat(t, server, `{"question": [1,2]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleChat_ServiceError(t *testing.T) {
	svc := &stubChatService{err: assert.AnError}
	server := setupTestServer(t, svc, nil)

	rec := postChat(t, server, `{"question":"anything"}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Internal server error", resp.Error)
}

func TestHandleHealth(t *testing.T) {
	server := setupTestServer(t, &stubChatService{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	server.echo.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp.Status)
	assert.True(t, resp.GeminiLoaded)
	assert.True(t, resp.KnowledgeBaseLoaded)
	assert.Equal(t, 42, resp.KnowledgeEntries)
	assert.True(t, resp.EnvPresent)
}

func TestHandleHealth_Degraded(t *testing.T) {
	status := func() Status {
		return Status{KnowledgeBaseLoaded: true, KnowledgeEntries: 3}
	}
	server := setupTestServer(t, &stubChatService{degraded: true}, status)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	server.echo.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp.Status)
	assert.False(t, resp.GeminiLoaded)
	assert.False(t, resp.EnvPresent)
}

func TestHandleDebugEnv(t *testing.T) {
	server := setupTestServer(t, &stubChatService{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/debug-env", nil)
	rec := httptest.NewRecorder()
	server.echo.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp DebugEnvResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.EnvPresent)
	assert.Equal(t, "AIza***1234", resp.EnvMasked)
	assert.True(t, resp.ModelInitialized)
}

func TestMetricsEndpoint(t *testing.T) {
	metrics := NewMetrics()
	metrics.SetKnowledgeEntries(7)
	metrics.ObserveChat("success", 0)

	server, err := NewServer(&stubChatService{answer: "ok"}, func() Status { return Status{} }, metrics, zap.NewNop(), Config{})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	server.echo.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "beed_knowledge_entries 7")
	assert.Contains(t, body, "beed_chat_requests_total")
}

func TestNilMetricsAreSafe(t *testing.T) {
	var m *Metrics
	m.ObserveChat("success", 0)
	m.SetKnowledgeEntries(1)
}

func TestRateLimit(t *testing.T) {
	server, err := NewServer(&stubChatService{answer: "ok"}, func() Status { return Status{} }, nil, zap.NewNop(), Config{
		RateLimit: 1,
		RateBurst: 1,
	})
	require.NoError(t, err)

	// Burst of 1 allows the first request, the second is throttled.
	first := postChat(t, server, `{"question":"q"}`)
	assert.Equal(t, http.StatusOK, first.Code)

	second := postChat(t, server, `{"question":"q"}`)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
}
