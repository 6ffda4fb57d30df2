// File: /repositories/friend_repository_test.go
package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loopline-api/apperr"
	"loopline-api/models"
)

func TestFriendRequestAccept(t *testing.T) {
	db := testDB(t)
	users := NewUserRepository(db)
	friends := NewFriendRepository(db)

	alice := createUser(t, users, "fr-alice")
	bob := createUser(t, users, "fr-bob")

	_, err := friends.CreateRequest(alice.ID, bob.ID)
	require.NoError(t, err)

	pending, err := friends.HasPendingBetween(bob.ID, alice.ID)
	require.NoError(t, err)
	assert.True(t, pending, "pending must be visible from either side")

	require.NoError(t, friends.ConsumeRequest(alice.ID, bob.ID, models.FriendRequestStatusAccepted))

	// The pending row is gone, the friendship exists, and the outcome is
	// recorded as a terminal history row.
	pending, err = friends.HasPendingBetween(alice.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, pending)

	areFriends, err := friends.AreFriends(bob.ID, alice.ID)
	require.NoError(t, err)
	assert.True(t, areFriends)

	var history models.FriendRequest
	require.NoError(t, db.Where("from_id = ? AND to_id = ?", alice.ID, bob.ID).First(&history).Error)
	assert.Equal(t, models.FriendRequestStatusAccepted, history.Status)

	var friendships int64
	require.NoError(t, db.Model(&models.Friendship{}).Count(&friendships).Error)
	assert.EqualValues(t, 1, friendships)
}

func TestFriendRequestConsumeTwice(t *testing.T) {
	db := testDB(t)
	users := NewUserRepository(db)
	friends := NewFriendRepository(db)

	alice := createUser(t, users, "twice-alice")
	bob := createUser(t, users, "twice-bob")

	_, err := friends.CreateRequest(alice.ID, bob.ID)
	require.NoError(t, err)

	require.NoError(t, friends.ConsumeRequest(alice.ID, bob.ID, models.FriendRequestStatusAccepted))

	err = friends.ConsumeRequest(alice.ID, bob.ID, models.FriendRequestStatusAccepted)
	assert.Equal(t, apperr.KindInvalidState, apperr.KindOf(err))

	var friendships int64
	require.NoError(t, db.Model(&models.Friendship{}).Count(&friendships).Error)
	assert.EqualValues(t, 1, friendships, "the failed second accept must not add a friendship")
}

func TestFriendRequestReject(t *testing.T) {
	db := testDB(t)
	users := NewUserRepository(db)
	friends := NewFriendRepository(db)

	alice := createUser(t, users, "rej-alice")
	bob := createUser(t, users, "rej-bob")

	_, err := friends.CreateRequest(alice.ID, bob.ID)
	require.NoError(t, err)
	require.NoError(t, friends.ConsumeRequest(alice.ID, bob.ID, models.FriendRequestStatusRejected))

	areFriends, err := friends.AreFriends(alice.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, areFriends)

	// Rejection consumed the request; a fresh one may be sent.
	pending, err := friends.HasPendingBetween(alice.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, pending)

	_, err = friends.CreateRequest(alice.ID, bob.ID)
	assert.NoError(t, err)
}

func TestFriendRequestWithdraw(t *testing.T) {
	db := testDB(t)
	users := NewUserRepository(db)
	friends := NewFriendRepository(db)

	alice := createUser(t, users, "wd-alice")
	bob := createUser(t, users, "wd-bob")

	_, err := friends.CreateRequest(alice.ID, bob.ID)
	require.NoError(t, err)
	require.NoError(t, friends.DeleteRequest(alice.ID, bob.ID))

	// Withdrawn means gone entirely, not consumed.
	var count int64
	require.NoError(t, db.Model(&models.FriendRequest{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)

	err = friends.ConsumeRequest(alice.ID, bob.ID, models.FriendRequestStatusAccepted)
	assert.Equal(t, apperr.KindInvalidState, apperr.KindOf(err))

	// Withdrawing only works on the sender's own pending request.
	err = friends.DeleteRequest(alice.ID, bob.ID)
	assert.Equal(t, apperr.KindInvalidState, apperr.KindOf(err))
}

func TestFriendshipRemoveAndList(t *testing.T) {
	db := testDB(t)
	users := NewUserRepository(db)
	friends := NewFriendRepository(db)

	alice := createUser(t, users, "list-alice")
	bob := createUser(t, users, "list-bob")
	cara := createUser(t, users, "list-cara")

	for _, from := range []*models.User{bob, cara} {
		_, err := friends.CreateRequest(from.ID, alice.ID)
		require.NoError(t, err)
		require.NoError(t, friends.ConsumeRequest(from.ID, alice.ID, models.FriendRequestStatusAccepted))
	}

	ids, err := friends.FriendIDs(alice.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{bob.ID, cara.ID}, ids)

	count, err := friends.CountFriends(alice.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	require.NoError(t, friends.RemoveFriendship(bob.ID, alice.ID))

	ids, err = friends.FriendIDs(alice.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{cara.ID}, ids)

	err = friends.RemoveFriendship(alice.ID, bob.ID)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestFriendIncomingAndSent(t *testing.T) {
	db := testDB(t)
	users := NewUserRepository(db)
	friends := NewFriendRepository(db)

	alice := createUser(t, users, "inbox-alice")
	bob := createUser(t, users, "inbox-bob")
	cara := createUser(t, users, "inbox-cara")

	_, err := friends.CreateRequest(bob.ID, alice.ID)
	require.NoError(t, err)
	_, err = friends.CreateRequest(alice.ID, cara.ID)
	require.NoError(t, err)

	incoming, err := friends.ListIncoming(alice.ID)
	require.NoError(t, err)
	require.Len(t, incoming, 1)
	assert.Equal(t, bob.ID, incoming[0].FromID)

	sent, err := friends.ListSent(alice.ID)
	require.NoError(t, err)
	require.Len(t, sent, 1)
	assert.Equal(t, cara.ID, sent[0].ToID)

	// Consumed requests leave the pending listings.
	require.NoError(t, friends.ConsumeRequest(bob.ID, alice.ID, models.FriendRequestStatusAccepted))
	incoming, err = friends.ListIncoming(alice.ID)
	require.NoError(t, err)
	assert.Empty(t, incoming)
}

func TestFriendDeleteAllForUser(t *testing.T) {
	db := testDB(t)
	users := NewUserRepository(db)
	friends := NewFriendRepository(db)

	alice := createUser(t, users, "purge-alice")
	bob := createUser(t, users, "purge-bob")
	cara := createUser(t, users, "purge-cara")

	_, err := friends.CreateRequest(alice.ID, bob.ID)
	require.NoError(t, err)
	require.NoError(t, friends.ConsumeRequest(alice.ID, bob.ID, models.FriendRequestStatusAccepted))
	_, err = friends.CreateRequest(cara.ID, alice.ID)
	require.NoError(t, err)

	require.NoError(t, friends.DeleteAllForUser(alice.ID))

	areFriends, err := friends.AreFriends(alice.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, areFriends)

	var requests int64
	require.NoError(t, db.Model(&models.FriendRequest{}).Count(&requests).Error)
	assert.EqualValues(t, 0, requests)
}
