package bootstrap

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"advisor-backend/internal/shared/config"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	return config.Config{
		Env:                   "dev",
		Port:                  "8080",
		CORSAllowOrigin:       []string{"http://localhost:3000"},
		LocalStoreDir:         t.TempDir(),
		MarketRefreshInterval: time.Minute,
		ResetURLBase:          "http://localhost:3000/reset-password",
	}
}

func TestBuildWithMemoryRepos(t *testing.T) {
	app, err := Build(testConfig(t))
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if app.Router == nil {
		t.Fatal("router not wired")
	}
	if app.DB != nil {
		t.Fatal("expected no database without DATABASE_URL")
	}
	if app.Queue == nil {
		t.Fatal("expected memory queue client")
	}
	if app.Mailer == nil {
		t.Fatal("expected mailer")
	}
}

func TestBuiltAppServesQuestionnaire(t *testing.T) {
	app, err := Build(testConfig(t))
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	body, _ := json.Marshal(map[string]string{
		"username": "zhangsan",
		"email":    "zhangsan@example.com",
		"password": "secret123",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("register status = %d, body %s", resp.Code, resp.Body.String())
	}
	var registered struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &registered); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if registered.Token == "" {
		t.Fatalf("expected token in response: %s", resp.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/advisor/questions", nil)
	req.Header.Set("Authorization", "Bearer "+registered.Token)
	resp = httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("questions status = %d, body %s", resp.Code, resp.Body.String())
	}
}
