package session

import (
	"crypto/sha256"
	"fmt"
	"sync"
	"time"

	"github.com/selatcheck/dashboard/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store is one storage scope for session identity. Keys are session
// ids; implementations must never store the raw id.
type Store interface {
	Save(sessionID string, ident Identity) error
	Load(sessionID string) (Identity, bool)
	Delete(sessionID string)
}

// hashID follows the refresh-token discipline: only a sha256 of the
// session id ever reaches storage.
func hashID(sessionID string) string {
	h := sha256.Sum256([]byte(sessionID))
	return fmt.Sprintf("%x", h)
}

// MemoryStore is the session-lived scope; it empties on restart.
type MemoryStore struct {
	mu    sync.RWMutex
	items map[string]Identity
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: make(map[string]Identity)}
}

func (s *MemoryStore) Save(sessionID string, ident Identity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[hashID(sessionID)] = ident
	return nil
}

func (s *MemoryStore) Load(sessionID string) (Identity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ident, ok := s.items[hashID(sessionID)]
	return ident, ok
}

func (s *MemoryStore) Delete(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, hashID(sessionID))
}

// DurableStore is the "remember me" scope, backed by postgres rows.
type DurableStore struct {
	db  *gorm.DB
	ttl time.Duration
}

func NewDurableStore(db *gorm.DB, ttl time.Duration) *DurableStore {
	return &DurableStore{db: db, ttl: ttl}
}

func (s *DurableStore) Save(sessionID string, ident Identity) error {
	record := models.SessionRecord{
		SecretHash: hashID(sessionID),
		AuthToken:  ident.Token,
		UserEmail:  ident.Email,
		UserName:   ident.Name,
		RoleID:     ident.RoleID,
		UserID:     ident.UserID,
		ExpiresAt:  time.Now().Add(s.ttl),
	}
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "secret_hash"}},
		UpdateAll: true,
	}).Create(&record).Error
}

func (s *DurableStore) Load(sessionID string) (Identity, bool) {
	var record models.SessionRecord
	err := s.db.Where("secret_hash = ?", hashID(sessionID)).First(&record).Error
	if err != nil {
		return Identity{}, false
	}
	if time.Now().After(record.ExpiresAt) {
		s.db.Where("secret_hash = ?", record.SecretHash).Delete(&models.SessionRecord{})
		return Identity{}, false
	}
	return Identity{
		Token:  record.AuthToken,
		Email:  record.UserEmail,
		Name:   record.UserName,
		RoleID: record.RoleID,
		UserID: record.UserID,
	}, true
}

func (s *DurableStore) Delete(sessionID string) {
	s.db.Where("secret_hash = ?", hashID(sessionID)).Delete(&models.SessionRecord{})
}
