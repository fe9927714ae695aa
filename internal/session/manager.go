package session

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Manager owns both storage scopes and issues the dashboard's own JWT,
// which wraps the session id. The backend token never travels to the
// browser.
type Manager struct {
	durable   Store
	transient Store
	secret    []byte
	expiry    time.Duration
}

func NewManager(durable, transient Store, secret string, expiry time.Duration) *Manager {
	return &Manager{
		durable:   durable,
		transient: transient,
		secret:    []byte(secret),
		expiry:    expiry,
	}
}

// Establish creates a session for a freshly authenticated identity.
// "Remember me" selects the durable scope; otherwise the session lives
// only in memory. Returns the session id and the signed dashboard JWT.
func (m *Manager) Establish(ident Identity, remember bool) (string, string, error) {
	sessionID := uuid.NewString()

	scope := m.transient
	if remember {
		scope = m.durable
	}
	if err := scope.Save(sessionID, ident); err != nil {
		return "", "", fmt.Errorf("failed to persist session: %w", err)
	}

	signed, err := m.sign(sessionID, ident)
	if err != nil {
		scope.Delete(sessionID)
		return "", "", err
	}
	return sessionID, signed, nil
}

// Resolve restores a session from either scope. The transient scope is
// checked first; a durable hit means the session survived a restart.
func (m *Manager) Resolve(sessionID string) (Identity, bool) {
	if ident, ok := m.transient.Load(sessionID); ok {
		return ident, true
	}
	return m.durable.Load(sessionID)
}

// Logout clears the identity from both scopes. It cannot fail: for the
// dashboard the user is logged out no matter what storage did.
func (m *Manager) Logout(sessionID string) {
	m.transient.Delete(sessionID)
	m.durable.Delete(sessionID)
}

func (m *Manager) sign(sessionID string, ident Identity) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sid":     sessionID,
		"sub":     strconv.FormatInt(ident.UserID, 10),
		"email":   ident.Email,
		"name":    ident.Name,
		"role_id": ident.RoleID,
		"iat":     now.Unix(),
		"exp":     now.Add(m.expiry).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}
