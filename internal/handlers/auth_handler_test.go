package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/selatcheck/dashboard/internal/config"
	"github.com/selatcheck/dashboard/internal/dto"
	"github.com/selatcheck/dashboard/internal/gateway"
	"github.com/selatcheck/dashboard/internal/handlers"
	"github.com/selatcheck/dashboard/internal/models"
	"github.com/selatcheck/dashboard/internal/provider"
	"github.com/selatcheck/dashboard/internal/routes"
	"github.com/selatcheck/dashboard/internal/session"
)

// newTestApp wires a full route tree against a stubbed backend. The
// stub answers login for one known credential pair and serves empty
// collections for priming.
func newTestApp(t *testing.T) (*fiber.App, *httptest.Server) {
	t.Helper()

	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/login":
			var creds struct {
				Email    string `json:"email"`
				Password string `json:"password"`
			}
			json.NewDecoder(r.Body).Decode(&creds)
			if creds.Email != "amal@selat.example" || creds.Password != "Valid123!" {
				w.WriteHeader(http.StatusUnauthorized)
				json.NewEncoder(w).Encode(map[string]string{"message": "Invalid email or password"})
				return
			}
			json.NewEncoder(w).Encode(gateway.LoginData{
				Token: "backend-token", UserID: 7, UserName: "Amal", Email: creds.Email, RoleID: 1,
			})
		case "/api/auth/logout":
			w.WriteHeader(http.StatusOK)
		case "/api/admin/users":
			// Enough rows to spill onto a second page.
			users := make([]models.User, 15)
			for i := range users {
				users[i] = models.User{
					ID:       int64(i + 1),
					Username: fmt.Sprintf("clerk-%02d", i+1),
					Email:    fmt.Sprintf("clerk-%02d@selat.example", i+1),
					RoleID:   3,
				}
			}
			json.NewEncoder(w).Encode(users)
		default:
			// Priming fetches; empty collections are fine here.
			w.Write([]byte("[]"))
		}
	}))
	t.Cleanup(backend.Close)

	cfg := &config.Config{
		JWTSecret:      "test-secret",
		JWTExpiry:      time.Hour,
		BackendBaseURL: backend.URL,
		CORSOrigins:    "*",
	}

	gw := gateway.New(backend.URL)
	sessions := session.NewManager(session.NewMemoryStore(), session.NewMemoryStore(), cfg.JWTSecret, cfg.JWTExpiry)
	registry := provider.NewRegistry()

	app := fiber.New()
	routes.Setup(app, cfg,
		handlers.NewAuthHandler(gw, sessions, registry),
		handlers.NewAdminHandler(registry),
		handlers.NewFileHandler(registry, sessions),
		handlers.NewOverviewHandler(registry),
		handlers.NewHealthHandler(registry),
	)
	return app, backend
}

func postJSON(t *testing.T, app *fiber.App, path string, body any, token string) *http.Response {
	t.Helper()
	raw, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test %s: %v", path, err)
	}
	return resp
}

func login(t *testing.T, app *fiber.App) dto.LoginResponse {
	t.Helper()
	resp := postJSON(t, app, "/api/auth/login", dto.LoginRequest{
		Email: "amal@selat.example", Password: "Valid123!",
	}, "")
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("login status %d: %s", resp.StatusCode, body)
	}
	var out dto.LoginResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	return out
}

func TestLoginIssuesDashboardToken(t *testing.T) {
	app, _ := newTestApp(t)

	out := login(t, app)
	if out.Token == "" {
		t.Fatal("no token in login response")
	}
	if out.Token == "backend-token" {
		t.Fatal("backend token handed to the browser")
	}
	if out.UserName != "Amal" || out.RoleID != 1 {
		t.Errorf("identity in response: %+v", out)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	app, _ := newTestApp(t)

	resp := postJSON(t, app, "/api/auth/login", dto.LoginRequest{
		Email: "amal@selat.example", Password: "wrong",
	}, "")
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.StatusCode)
	}
	var out dto.ErrorResponse
	json.NewDecoder(resp.Body).Decode(&out)
	if out.Message != "Invalid email or password" {
		t.Errorf("message = %q, want the server's text verbatim", out.Message)
	}
}

func TestLoginValidatesFields(t *testing.T) {
	app, _ := newTestApp(t)

	resp := postJSON(t, app, "/api/auth/login", dto.LoginRequest{Email: "not-an-email"}, "")
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	var out dto.ValidationErrorResponse
	json.NewDecoder(resp.Body).Decode(&out)
	if _, ok := out.Fields["email"]; !ok {
		t.Error("email field error missing")
	}
	if _, ok := out.Fields["password"]; !ok {
		t.Error("password field error missing")
	}
}

func TestProtectedRouteWithoutToken(t *testing.T) {
	app, _ := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/profile", nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.StatusCode)
	}
}

func TestProfileAfterLogin(t *testing.T) {
	app, _ := newTestApp(t)
	out := login(t, app)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/profile", nil)
	req.Header.Set("Authorization", "Bearer "+out.Token)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var profile dto.ProfileResponse
	json.NewDecoder(resp.Body).Decode(&profile)
	if profile.Email != "amal@selat.example" || profile.UserID != 7 {
		t.Errorf("profile: %+v", profile)
	}
}

func TestLogoutInvalidatesSession(t *testing.T) {
	app, _ := newTestApp(t)
	out := login(t, app)

	resp := postJSON(t, app, "/api/auth/logout", nil, out.Token)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("logout status = %d", resp.StatusCode)
	}
	var msg dto.MessageResponse
	json.NewDecoder(resp.Body).Decode(&msg)
	if msg.Message != "Logged out successfully" {
		t.Errorf("logout message = %q", msg.Message)
	}

	// The JWT is still cryptographically valid, but the session behind
	// it is gone; identity-backed routes must refuse it.
	req := httptest.NewRequest(http.MethodGet, "/api/auth/profile", nil)
	req.Header.Set("Authorization", "Bearer "+out.Token)
	after, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if after.StatusCode != http.StatusUnauthorized {
		t.Errorf("profile after logout = %d, want 401", after.StatusCode)
	}
}

func TestAdminAreaRequiresAdminTier(t *testing.T) {
	app, _ := newTestApp(t)
	out := login(t, app) // role 1, Admin tier

	req := httptest.NewRequest(http.MethodGet, "/api/admin/users", nil)
	req.Header.Set("Authorization", "Bearer "+out.Token)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("admin list as admin = %d, want 200", resp.StatusCode)
	}
}
