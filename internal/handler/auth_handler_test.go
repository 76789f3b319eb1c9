package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sessionStatus(t *testing.T, app *testApp) map[string]interface{} {
	t.Helper()
	rec := app.get("/api/session")
	require.Equal(t, http.StatusOK, rec.Code)
	var envelope struct {
		Data map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	return envelope.Data
}

func TestLoginPageHasNoChrome(t *testing.T) {
	app := newTestApp(t)

	rec := app.get("/login")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `name="token"`)
	assert.NotContains(t, rec.Body.String(), "Sair")
	assert.Contains(t, app.get("/teacher").Body.String(), "Sair")
}

func TestLoginRejectsEmptyToken(t *testing.T) {
	app := newTestApp(t)

	rec := app.post("/login", url.Values{"token": {""}})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Não foi possível entrar")
	assert.Equal(t, false, sessionStatus(t, app)["authenticated"])
}

func TestLoginRejectsMalformedBody(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader("{"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	app.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Formulário inválido.")
	assert.Contains(t, rec.Body.String(), `name="token"`)
}

func TestLogoutClearsSession(t *testing.T) {
	app := newTestApp(t)
	app.login()
	assert.Equal(t, true, sessionStatus(t, app)["authenticated"])

	rec := app.post("/logout", nil)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
	assert.Equal(t, false, sessionStatus(t, app)["authenticated"])

	app.get("/discipline")
	assert.Empty(t, app.stub.all(), "no token means no upstream call")

	// logging out again is harmless
	assert.Equal(t, http.StatusSeeOther, app.post("/logout", nil).Code)
}
