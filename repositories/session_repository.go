// File: /repositories/session_repository.go
package repositories

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"loopline-api/apperr"
	"loopline-api/models"
)

type SessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// Create opens a session, optionally already bound to a user. The row id is
// the opaque handle the token will carry.
func (r *SessionRepository) Create(userID *string) (*models.Session, error) {
	session := models.Session{
		ID:     models.NewID(),
		UserID: userID,
	}
	if err := r.db.Create(&session).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

// Get answers apperr.Unauthenticated for unknown handles: a pruned session
// and a missing token look the same to callers.
func (r *SessionRepository) Get(id string) (*models.Session, error) {
	var session models.Session
	err := r.db.Where("id = ?", id).First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Unauthenticated()
		}
		return nil, err
	}
	return &session, nil
}

// Start binds the session to a user. Whether the session was free to bind
// is the caller's check; Start itself overwrites unconditionally.
func (r *SessionRepository) Start(id, userID string) error {
	res := r.db.Model(&models.Session{}).Where("id = ?", id).Updates(map[string]interface{}{
		"user_id":    userID,
		"updated_at": time.Now(),
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.Unauthenticated()
	}
	return nil
}

// End unbinds whatever identity the session carries. Ending an unbound or
// unknown session is a no-op, which is what makes logout idempotent.
func (r *SessionRepository) End(id string) error {
	return r.db.Model(&models.Session{}).Where("id = ?", id).Updates(map[string]interface{}{
		"user_id":    nil,
		"updated_at": time.Now(),
	}).Error
}

// EndAllForUser unbinds every session held by the user, used when the
// account goes away.
func (r *SessionRepository) EndAllForUser(userID string) error {
	return r.db.Model(&models.Session{}).Where("user_id = ?", userID).Updates(map[string]interface{}{
		"user_id":    nil,
		"updated_at": time.Now(),
	}).Error
}

// DeleteStale removes sessions that have sat unbound for longer than
// maxIdle. Bound sessions are never pruned.
func (r *SessionRepository) DeleteStale(maxIdle time.Duration) (int64, error) {
	cutoff := time.Now().Add(-maxIdle)
	res := r.db.Where("user_id IS NULL AND updated_at < ?", cutoff).Delete(&models.Session{})
	return res.RowsAffected, res.Error
}
