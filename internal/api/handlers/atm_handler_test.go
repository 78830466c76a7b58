package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rahulvj/atm-inventory-be/internal/api"
	"github.com/rahulvj/atm-inventory-be/internal/atm"
)

func newATMServer(t *testing.T) *httptest.Server {
	t.Helper()
	store := atm.NewAccountStore()
	sessions := atm.NewSessionManager(store)
	// Point the logo at a path that does not exist.
	router := api.NewATMRouter(store, sessions, filepath.Join(t.TempDir(), "atm.jpg"))
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url, token string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	var decoded map[string]interface{}
	_ = json.NewDecoder(resp.Body).Decode(&decoded)
	return resp, decoded
}

func atmLogin(t *testing.T, srv *httptest.Server, pin string) string {
	t.Helper()
	resp, body := doJSON(t, http.MethodPost, srv.URL+"/api/v1/login", "", map[string]string{"pin": pin})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestATMLogin(t *testing.T) {
	srv := newATMServer(t)

	resp, body := doJSON(t, http.MethodPost, srv.URL+"/api/v1/login", "", map[string]string{"pin": "1234"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "menu", body["screen"])
	account := body["account"].(map[string]interface{})
	assert.Equal(t, "Vijis Durai R", account["name"])

	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/api/v1/login", "", map[string]string{"pin": "0000"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestATMRequiresSession(t *testing.T) {
	srv := newATMServer(t)

	resp, _ := doJSON(t, http.MethodGet, srv.URL+"/api/v1/account/balance", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodGet, srv.URL+"/api/v1/account/balance", "garbage-token", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestATMDepositAndWithdrawFlow(t *testing.T) {
	srv := newATMServer(t)
	token := atmLogin(t, srv, "1234")

	resp, body := doJSON(t, http.MethodGet, srv.URL+"/api/v1/account/balance", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1000.0, body["balance"])
	assert.Equal(t, "$1000.00", body["formatted"])

	resp, body = doJSON(t, http.MethodPost, srv.URL+"/api/v1/account/deposit", token, map[string]string{"amount": "250.50"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1250.5, body["balance"])
	assert.Equal(t, "Deposited $250.50", body["message"])

	resp, body = doJSON(t, http.MethodPost, srv.URL+"/api/v1/account/withdraw", token, map[string]string{"amount": "50"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1200.5, body["balance"])
	assert.Equal(t, "Withdrew $50.00", body["message"])

	resp, body = doJSON(t, http.MethodGet, srv.URL+"/api/v1/account/history", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	transactions := body["transactions"].([]interface{})
	require.Len(t, transactions, 2)
	assert.Equal(t, "Deposited $250.50", transactions[0])
	assert.Equal(t, "Withdrew $50.00", transactions[1])
}

func TestATMTransactionErrors(t *testing.T) {
	srv := newATMServer(t)
	token := atmLogin(t, srv, "6200")

	// Not a number: validation failure. NaN and infinity text parse as
	// floats but are not amounts.
	for _, raw := range []string{"abc", "NaN", "Inf", "-Inf"} {
		resp, _ := doJSON(t, http.MethodPost, srv.URL+"/api/v1/account/deposit", token, map[string]string{"amount": raw})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "amount %q", raw)
	}

	// Non-positive deposit: business-rule failure.
	resp, _ := doJSON(t, http.MethodPost, srv.URL+"/api/v1/account/deposit", token, map[string]string{"amount": "-5"})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	// Overdraw: business-rule failure.
	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/api/v1/account/withdraw", token, map[string]string{"amount": "2000"})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	// Balance is untouched after the failures.
	resp, body := doJSON(t, http.MethodGet, srv.URL+"/api/v1/account/balance", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 500.0, body["balance"])
}

func TestATMScreenEndpoints(t *testing.T) {
	srv := newATMServer(t)
	token := atmLogin(t, srv, "1234")

	resp, body := doJSON(t, http.MethodGet, srv.URL+"/api/v1/screen", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "menu", body["screen"])

	resp, body = doJSON(t, http.MethodPost, srv.URL+"/api/v1/screen", token, map[string]string{"screen": "deposit"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "deposit", body["screen"])

	// Overlay to overlay is rejected.
	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/api/v1/screen", token, map[string]string{"screen": "withdraw"})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	// Closing returns to the menu.
	resp, body = doJSON(t, http.MethodPost, srv.URL+"/api/v1/screen", token, map[string]string{"screen": "menu"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "menu", body["screen"])

	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/api/v1/screen", token, map[string]string{"screen": "bogus"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestATMLogout(t *testing.T) {
	srv := newATMServer(t)
	token := atmLogin(t, srv, "1234")

	resp, _ := doJSON(t, http.MethodPost, srv.URL+"/api/v1/logout", token, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodGet, srv.URL+"/api/v1/account/balance", token, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestATMLogoMissingAssetIs404(t *testing.T) {
	srv := newATMServer(t)

	resp, err := http.Get(srv.URL + "/api/v1/logo")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
