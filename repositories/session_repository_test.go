// File: /repositories/session_repository_test.go
package repositories

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loopline-api/apperr"
	"loopline-api/models"
)

func TestSessionLifecycle(t *testing.T) {
	db := testDB(t)
	users := NewUserRepository(db)
	sessions := NewSessionRepository(db)

	user := createUser(t, users, "session-user")

	session, err := sessions.Create(nil)
	require.NoError(t, err)
	require.Nil(t, session.UserID)

	require.NoError(t, sessions.Start(session.ID, user.ID))
	bound, err := sessions.Get(session.ID)
	require.NoError(t, err)
	require.NotNil(t, bound.UserID)
	assert.Equal(t, user.ID, *bound.UserID)

	require.NoError(t, sessions.End(session.ID))
	unbound, err := sessions.Get(session.ID)
	require.NoError(t, err)
	assert.Nil(t, unbound.UserID)

	// Ending an already-ended session changes nothing and fails nothing.
	require.NoError(t, sessions.End(session.ID))
	require.NoError(t, sessions.End(models.NewID()))
}

func TestSessionGetUnknown(t *testing.T) {
	db := testDB(t)
	sessions := NewSessionRepository(db)

	_, err := sessions.Get(models.NewID())
	assert.Equal(t, apperr.KindUnauthenticated, apperr.KindOf(err))
}

func TestSessionStartUnknown(t *testing.T) {
	db := testDB(t)
	users := NewUserRepository(db)
	sessions := NewSessionRepository(db)

	user := createUser(t, users, "start-user")
	err := sessions.Start(models.NewID(), user.ID)
	assert.Equal(t, apperr.KindUnauthenticated, apperr.KindOf(err))
}

func TestSessionEndAllForUser(t *testing.T) {
	db := testDB(t)
	users := NewUserRepository(db)
	sessions := NewSessionRepository(db)

	user := createUser(t, users, "multi-session")
	other := createUser(t, users, "other-session")

	s1, err := sessions.Create(&user.ID)
	require.NoError(t, err)
	s2, err := sessions.Create(&user.ID)
	require.NoError(t, err)
	s3, err := sessions.Create(&other.ID)
	require.NoError(t, err)

	require.NoError(t, sessions.EndAllForUser(user.ID))

	for _, id := range []string{s1.ID, s2.ID} {
		session, err := sessions.Get(id)
		require.NoError(t, err)
		assert.Nil(t, session.UserID)
	}

	kept, err := sessions.Get(s3.ID)
	require.NoError(t, err)
	require.NotNil(t, kept.UserID)
	assert.Equal(t, other.ID, *kept.UserID)
}

func TestSessionDeleteStale(t *testing.T) {
	db := testDB(t)
	users := NewUserRepository(db)
	sessions := NewSessionRepository(db)

	user := createUser(t, users, "stale-user")

	stale, err := sessions.Create(nil)
	require.NoError(t, err)
	fresh, err := sessions.Create(nil)
	require.NoError(t, err)
	boundButOld, err := sessions.Create(&user.ID)
	require.NoError(t, err)

	old := time.Now().Add(-48 * time.Hour)
	for _, id := range []string{stale.ID, boundButOld.ID} {
		require.NoError(t, db.Model(&models.Session{}).Where("id = ?", id).
			Update("updated_at", old).Error)
	}

	removed, err := sessions.DeleteStale(24 * time.Hour)
	require.NoError(t, err)
	assert.EqualValues(t, 1, removed)

	// Only the unbound stale session is gone.
	_, err = sessions.Get(stale.ID)
	assert.Equal(t, apperr.KindUnauthenticated, apperr.KindOf(err))
	_, err = sessions.Get(fresh.ID)
	assert.NoError(t, err)
	_, err = sessions.Get(boundButOld.ID)
	assert.NoError(t, err)
}
