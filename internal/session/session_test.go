package session

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func testManager() (*Manager, *MemoryStore, *MemoryStore) {
	durable := NewMemoryStore()
	transient := NewMemoryStore()
	return NewManager(durable, transient, "test-secret", time.Hour), durable, transient
}

func TestEstablishTransientByDefault(t *testing.T) {
	m, durable, transient := testManager()
	ident := Identity{Token: "backend-token", Email: "amal@selat.example", Name: "Amal", RoleID: 2, UserID: 7}

	sessionID, signed, err := m.Establish(ident, false)
	if err != nil {
		t.Fatalf("establish: %v", err)
	}
	if signed == "" {
		t.Fatal("no dashboard token issued")
	}

	if _, ok := transient.Load(sessionID); !ok {
		t.Error("session missing from the transient scope")
	}
	if _, ok := durable.Load(sessionID); ok {
		t.Error("session leaked into the durable scope without remember-me")
	}

	got, ok := m.Resolve(sessionID)
	if !ok || got.Email != ident.Email || got.Token != ident.Token {
		t.Errorf("resolved identity = %+v, ok=%v", got, ok)
	}
}

func TestEstablishRememberMeGoesDurable(t *testing.T) {
	m, durable, transient := testManager()
	ident := Identity{Token: "backend-token", Email: "amal@selat.example", UserID: 7}

	sessionID, _, err := m.Establish(ident, true)
	if err != nil {
		t.Fatalf("establish: %v", err)
	}
	if _, ok := durable.Load(sessionID); !ok {
		t.Error("remember-me session missing from the durable scope")
	}
	if _, ok := transient.Load(sessionID); ok {
		t.Error("remember-me session duplicated in the transient scope")
	}
	if _, ok := m.Resolve(sessionID); !ok {
		t.Error("resolve did not fall through to the durable scope")
	}
}

func TestLogoutClearsBothScopes(t *testing.T) {
	m, _, _ := testManager()
	ident := Identity{Token: "backend-token", UserID: 7}

	transientID, _, _ := m.Establish(ident, false)
	durableID, _, _ := m.Establish(ident, true)

	m.Logout(transientID)
	m.Logout(durableID)

	if _, ok := m.Resolve(transientID); ok {
		t.Error("transient session survived logout")
	}
	if _, ok := m.Resolve(durableID); ok {
		t.Error("durable session survived logout")
	}
	// Logging out an unknown id is a no-op, never a failure.
	m.Logout("no-such-session")
}

func TestDashboardTokenClaims(t *testing.T) {
	m, _, _ := testManager()
	ident := Identity{Token: "backend-token", Email: "amal@selat.example", Name: "Amal", RoleID: 1, UserID: 7}

	sessionID, signed, err := m.Establish(ident, false)
	if err != nil {
		t.Fatalf("establish: %v", err)
	}

	parsed, err := jwt.Parse(signed, func(tok *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("issued token did not verify: %v", err)
	}
	claims := parsed.Claims.(jwt.MapClaims)
	if claims["sid"] != sessionID {
		t.Errorf("sid = %v, want %s", claims["sid"], sessionID)
	}
	if claims["sub"] != "7" {
		t.Errorf("sub = %v, want \"7\"", claims["sub"])
	}
	// The backend token must never appear in the browser-facing JWT.
	for name, value := range claims {
		if value == "backend-token" {
			t.Errorf("backend token leaked into claim %q", name)
		}
	}
}

func TestMemoryStoreNeverKeepsRawID(t *testing.T) {
	store := NewMemoryStore()
	store.Save("plain-session-id", Identity{UserID: 1})
	if _, ok := store.items["plain-session-id"]; ok {
		t.Error("raw session id used as a storage key")
	}
	if _, ok := store.Load("plain-session-id"); !ok {
		t.Error("lookup by raw id failed")
	}
}

func TestSessionStateString(t *testing.T) {
	cases := map[State]string{
		LoggedOut: "logged_out",
		LoggingIn: "logging_in",
		LoggedIn:  "logged_in",
	}
	for state, want := range cases {
		if got := state.String(); got != want {
			t.Errorf("State(%d).String() = %q, want %q", state, got, want)
		}
	}
}
