package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/Apurer/go-gin-storefront/internal/domains/identity/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/identity/ports"
)

// SessionStore persists issued credentials in PostgreSQL.
type SessionStore struct {
	db *gorm.DB
}

// NewSessionStore wires a PostgreSQL-backed session store. Caller owns DB lifecycle.
func NewSessionStore(db *gorm.DB) *SessionStore {
	return &SessionStore{db: db}
}

type sessionRecord struct {
	ID        string    `gorm:"primaryKey;column:id;type:uuid"`
	UserID    string    `gorm:"column:user_id;type:uuid;index"`
	ExpiresAt time.Time `gorm:"column:expires_at;index"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (sessionRecord) TableName() string { return "user_sessions" }

// Save records a newly issued session.
func (s *SessionStore) Save(ctx context.Context, session domain.Session) error {
	if err := s.ensureDB(); err != nil {
		return err
	}
	if strings.TrimSpace(session.ID) == "" || strings.TrimSpace(session.UserID) == "" {
		return errors.New("session id and user id are required")
	}
	rec := sessionRecord{
		ID:        session.ID,
		UserID:    session.UserID,
		ExpiresAt: session.ExpiresAt,
		CreatedAt: session.CreatedAt,
	}
	return s.db.WithContext(ctx).Create(&rec).Error
}

// Get loads a session by its token id.
func (s *SessionStore) Get(ctx context.Context, id string) (domain.Session, error) {
	if err := s.ensureDB(); err != nil {
		return domain.Session{}, err
	}
	var rec sessionRecord
	if err := s.db.WithContext(ctx).First(&rec, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Session{}, ports.ErrSessionNotFound
		}
		return domain.Session{}, err
	}
	return domain.Session{ID: rec.ID, UserID: rec.UserID, ExpiresAt: rec.ExpiresAt, CreatedAt: rec.CreatedAt}, nil
}

// Delete revokes a session.
func (s *SessionStore) Delete(ctx context.Context, id string) error {
	if err := s.ensureDB(); err != nil {
		return err
	}
	return s.db.WithContext(ctx).Delete(&sessionRecord{}, "id = ?", id).Error
}

// PurgeExpired removes all expired sessions. Use for housekeeping or cron.
func (s *SessionStore) PurgeExpired(ctx context.Context) (int64, error) {
	if err := s.ensureDB(); err != nil {
		return 0, err
	}
	result := s.db.WithContext(ctx).Where("expires_at <= ?", time.Now()).Delete(&sessionRecord{})
	return result.RowsAffected, result.Error
}

func (s *SessionStore) ensureDB() error {
	if s == nil || s.db == nil {
		return errors.New("postgres session store not configured")
	}
	return nil
}

var _ ports.SessionStore = (*SessionStore)(nil)
