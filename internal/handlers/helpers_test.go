package handlers

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ytakahashi/todo-api/internal/auth"
	"github.com/ytakahashi/todo-api/internal/services"
	"github.com/ytakahashi/todo-api/internal/sessions"
)

func newTestServer(t *testing.T) (*echo.Echo, *services.MemoryService) {
	t.Helper()

	mem := services.NewMemoryService()
	sessionStore := sessions.NewMemory(time.Hour)
	tokens := auth.NewTokenIssuer("test-secret", time.Hour)

	h := New(mem, mem, sessionStore, tokens, zap.NewNop())
	e := echo.New()
	h.Routes(e)

	return e, mem
}

func doJSON(e *echo.Echo, method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func decodeList(t *testing.T, rec *httptest.ResponseRecorder) []map[string]interface{} {
	t.Helper()

	var out []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

// registerAndLogin creates an account and returns its id and session token.
func registerAndLogin(t *testing.T, e *echo.Echo, username, email, password string) (id, token string) {
	t.Helper()

	rec := doJSON(e, "POST", "/api/user/register",
		`{"username":"`+username+`","email":"`+email+`","password":"`+password+`"}`, "")
	require.Equal(t, 201, rec.Code, rec.Body.String())
	id = decode(t, rec)["id"].(string)

	rec = doJSON(e, "POST", "/api/user/login",
		`{"email":"`+email+`","password":"`+password+`"}`, "")
	require.Equal(t, 200, rec.Code, rec.Body.String())
	token = decode(t, rec)["sessionId"].(string)

	return id, token
}
