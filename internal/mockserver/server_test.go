package mockserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func newTestServer(t *testing.T, opts Options) *httptest.Server {
	t.Helper()
	opts.Logger = zerolog.Nop()
	srv := httptest.NewServer(New(opts).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	data, _ := json.Marshal(body)
	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	return resp
}

func login(t *testing.T, baseURL, email, password string) (access, refresh string) {
	t.Helper()
	resp := postJSON(t, baseURL+"/auth/login", map[string]string{"email": email, "password": password})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login returned %d", resp.StatusCode)
	}
	var body struct {
		AccessToken  string `json:"accessToken"`
		RefreshToken string `json:"refreshToken"`
	}
	json.NewDecoder(resp.Body).Decode(&body)
	return body.AccessToken, body.RefreshToken
}

func TestLogin_ValidAndInvalid(t *testing.T) {
	srv := newTestServer(t, Options{})

	access, refresh := login(t, srv.URL, "doctor@karpos.example", "doctor")
	if access == "" || refresh == "" {
		t.Error("expected both tokens on valid login")
	}

	resp := postJSON(t, srv.URL+"/auth/login", map[string]string{
		"email":    "doctor@karpos.example",
		"password": "wrong",
	})
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401 for bad credentials, got %d", resp.StatusCode)
	}
}

func TestRefresh_RotatesToken(t *testing.T) {
	srv := newTestServer(t, Options{})
	_, refresh := login(t, srv.URL, "patient@karpos.example", "patient")

	resp := postJSON(t, srv.URL+"/auth/refresh", map[string]string{"refreshToken": refresh})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 on first refresh, got %d", resp.StatusCode)
	}

	// The presented token was consumed; replaying it must fail.
	replay := postJSON(t, srv.URL+"/auth/refresh", map[string]string{"refreshToken": refresh})
	replay.Body.Close()
	if replay.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401 on replayed refresh token, got %d", replay.StatusCode)
	}
}

func TestProtectedRoutes_RequireAuth(t *testing.T) {
	srv := newTestServer(t, Options{})

	resp, err := http.Get(srv.URL + "/appointments")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401 without token, got %d", resp.StatusCode)
	}
}

func TestProtectedRoutes_RejectExpiredToken(t *testing.T) {
	srv := newTestServer(t, Options{AccessTTL: -time.Minute})
	access, _ := login(t, srv.URL, "patient@karpos.example", "patient")

	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/appointments", nil)
	req.Header.Set("Authorization", "Bearer "+access)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401 for expired token, got %d", resp.StatusCode)
	}
}

func TestStatusRoutes_PartialContract(t *testing.T) {
	// Only PUT /appointments/:id/status and PATCH /appointments/:id/cancel
	// exist; the client's earlier probe guesses must not be served.
	srv := newTestServer(t, Options{})
	access, _ := login(t, srv.URL, "doctor@karpos.example", "doctor")

	tests := []struct {
		method string
		path   string
		want   int
	}{
		{http.MethodPatch, "/appointments/2/status", http.StatusMethodNotAllowed},
		{http.MethodPut, "/appointments/2/status", http.StatusOK},
		{http.MethodPatch, "/appointments/2/cancel", http.StatusOK},
	}

	for _, tt := range tests {
		body := bytes.NewReader([]byte(`{"status":"completed"}`))
		req, _ := http.NewRequest(tt.method, srv.URL+tt.path, body)
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+access)
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			t.Fatalf("%s %s: %v", tt.method, tt.path, err)
		}
		resp.Body.Close()
		if resp.StatusCode != tt.want {
			t.Errorf("%s %s = %d, want %d", tt.method, tt.path, resp.StatusCode, tt.want)
		}
	}
}

func TestGetAppointment_NestedShape(t *testing.T) {
	srv := newTestServer(t, Options{})
	access, _ := login(t, srv.URL, "doctor@karpos.example", "doctor")

	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/appointments/1", nil)
	req.Header.Set("Authorization", "Bearer "+access)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()

	var body map[string]json.RawMessage
	json.NewDecoder(resp.Body).Decode(&body)
	if _, ok := body["appointment"]; !ok {
		t.Error("expected payload nested under appointment key")
	}
}
