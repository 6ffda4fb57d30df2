// File: /routes/social_test.go
package routes

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loopline-api/models"
)

func (api *testAPI) friendIDs(token string) []string {
	api.t.Helper()
	w := api.do(http.MethodGet, "/api/v1/friends/", token, nil)
	require.Equal(api.t, http.StatusOK, w.Code, w.Body.String())

	var body struct {
		Friends []models.UserSummary `json:"friends"`
	}
	api.decode(w, &body)

	ids := make([]string, 0, len(body.Friends))
	for _, f := range body.Friends {
		ids = append(ids, f.ID)
	}
	return ids
}

func TestFriendRequestLifecycle(t *testing.T) {
	api := newTestAPI(t)
	aliceID, aliceToken := api.signup("fr.alice")
	bobID, bobToken := api.signup("fr.bob")

	w := api.do(http.MethodPost, "/api/v1/friends/requests/"+bobID, aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// While the request is pending, neither side can open another one.
	w = api.do(http.MethodPost, "/api/v1/friends/requests/"+bobID, aliceToken, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	w = api.do(http.MethodPost, "/api/v1/friends/requests/"+aliceID, bobToken, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	// Bob sees it incoming, alice sees it sent.
	w = api.do(http.MethodGet, "/api/v1/friends/requests", bobToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var incoming struct {
		Requests []models.FriendRequestResponse `json:"requests"`
	}
	api.decode(w, &incoming)
	require.Len(t, incoming.Requests, 1)
	assert.Equal(t, "fr.alice", incoming.Requests[0].User.Username)

	w = api.do(http.MethodGet, "/api/v1/friends/requests/sent", aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var sent struct {
		Requests []models.FriendRequestResponse `json:"requests"`
	}
	api.decode(w, &sent)
	require.Len(t, sent.Requests, 1)
	assert.Equal(t, "fr.bob", sent.Requests[0].User.Username)

	w = api.do(http.MethodPut, "/api/v1/friends/requests/"+aliceID+"/accept", bobToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// The friendship is mutual and the pending request is gone.
	assert.Equal(t, []string{bobID}, api.friendIDs(aliceToken))
	assert.Equal(t, []string{aliceID}, api.friendIDs(bobToken))

	w = api.do(http.MethodGet, "/api/v1/friends/requests", bobToken, nil)
	api.decode(w, &incoming)
	assert.Empty(t, incoming.Requests)

	// The request was consumed; a second accept has nothing to act on.
	w = api.do(http.MethodPut, "/api/v1/friends/requests/"+aliceID+"/accept", bobToken, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	// Friends cannot open a new request either.
	w = api.do(http.MethodPost, "/api/v1/friends/requests/"+bobID, aliceToken, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, errorMessage(t, w), "already friends")

	w = api.do(http.MethodDelete, "/api/v1/friends/"+bobID, aliceToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, api.friendIDs(aliceToken))
	assert.Empty(t, api.friendIDs(bobToken))

	w = api.do(http.MethodDelete, "/api/v1/friends/"+bobID, aliceToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestFriendRequestReject(t *testing.T) {
	api := newTestAPI(t)
	aliceID, aliceToken := api.signup("rj.alice")
	bobID, bobToken := api.signup("rj.bob")

	w := api.do(http.MethodPost, "/api/v1/friends/requests/"+bobID, aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = api.do(http.MethodPut, "/api/v1/friends/requests/"+aliceID+"/reject", bobToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	assert.Empty(t, api.friendIDs(aliceToken))

	// Rejection closes the request but does not block a fresh one.
	w = api.do(http.MethodPost, "/api/v1/friends/requests/"+bobID, aliceToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestFriendRequestWithdraw(t *testing.T) {
	api := newTestAPI(t)
	aliceID, aliceToken := api.signup("wd.alice")
	bobID, bobToken := api.signup("wd.bob")

	w := api.do(http.MethodPost, "/api/v1/friends/requests/"+bobID, aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = api.do(http.MethodDelete, "/api/v1/friends/requests/"+bobID, aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// Nothing left for bob to accept.
	w = api.do(http.MethodPut, "/api/v1/friends/requests/"+aliceID+"/accept", bobToken, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestFriendRequestValidation(t *testing.T) {
	api := newTestAPI(t)
	aliceID, aliceToken := api.signup("fv.alice")

	w := api.do(http.MethodPost, "/api/v1/friends/requests/"+aliceID, aliceToken, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, errorMessage(t, w), "yourself")

	w = api.do(http.MethodPost, "/api/v1/friends/requests/"+models.NewID(), aliceToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestFollowLifecycle(t *testing.T) {
	api := newTestAPI(t)
	aliceID, aliceToken := api.signup("fl.alice")
	bobID, bobToken := api.signup("fl.bob")

	w := api.do(http.MethodPost, "/api/v1/users/"+bobID+"/follow", aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// The edge is directed and unique.
	w = api.do(http.MethodPost, "/api/v1/users/"+bobID+"/follow", aliceToken, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = api.do(http.MethodPost, "/api/v1/users/"+aliceID+"/follow", aliceToken, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = api.do(http.MethodPost, "/api/v1/users/"+models.NewID()+"/follow", aliceToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = api.do(http.MethodGet, "/api/v1/users/following", aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var following struct {
		Following []models.UserSummary `json:"following"`
	}
	api.decode(w, &following)
	require.Len(t, following.Following, 1)
	assert.Equal(t, "fl.bob", following.Following[0].Username)

	w = api.do(http.MethodGet, "/api/v1/users/followers", bobToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var followers struct {
		Followers []models.UserSummary `json:"followers"`
	}
	api.decode(w, &followers)
	require.Len(t, followers.Followers, 1)
	assert.Equal(t, "fl.alice", followers.Followers[0].Username)

	w = api.do(http.MethodDelete, "/api/v1/users/"+bobID+"/follow", aliceToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = api.do(http.MethodDelete, "/api/v1/users/"+bobID+"/follow", aliceToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestFeed(t *testing.T) {
	api := newTestAPI(t)
	aliceID, aliceToken := api.signup("fd.alice")
	_, bobToken := api.signup("fd.bob")
	_, carolToken := api.signup("fd.carol")

	w := api.do(http.MethodPost, "/api/v1/users/"+aliceID+"/follow", bobToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	api.createPost(aliceToken, "alice first")
	time.Sleep(2 * time.Millisecond)
	api.createPost(carolToken, "carol only")
	time.Sleep(2 * time.Millisecond)
	api.createPost(bobToken, "bob own")
	time.Sleep(2 * time.Millisecond)
	api.createPost(aliceToken, "alice second")

	// The feed is followed authors plus the reader, newest first. Carol is
	// not followed, so her post stays out.
	w = api.do(http.MethodGet, "/api/v1/posts/feed", bobToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var feed models.FeedResponse
	api.decode(w, &feed)
	require.Len(t, feed.Posts, 3)
	assert.EqualValues(t, 3, feed.Total)
	assert.Equal(t, "alice second", feed.Posts[0].Text)
	assert.Equal(t, "bob own", feed.Posts[1].Text)
	assert.Equal(t, "alice first", feed.Posts[2].Text)
}

func TestPublicProfileFlags(t *testing.T) {
	api := newTestAPI(t)
	aliceID, aliceToken := api.signup("pf.alice")
	bobID, bobToken := api.signup("pf.bob")

	w := api.do(http.MethodPost, "/api/v1/friends/requests/"+bobID, aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = api.do(http.MethodPost, "/api/v1/users/"+bobID+"/follow", aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var profile models.PublicProfileResponse
	w = api.do(http.MethodGet, "/api/v1/users/"+bobID, aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	api.decode(w, &profile)
	assert.True(t, profile.IsFollowing)
	assert.True(t, profile.RequestSent)
	assert.False(t, profile.RequestReceived)
	assert.False(t, profile.IsFriend)
	assert.EqualValues(t, 1, profile.FollowersCount)

	// The other direction mirrors the pending request.
	w = api.do(http.MethodGet, "/api/v1/users/"+aliceID, bobToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	api.decode(w, &profile)
	assert.False(t, profile.RequestSent)
	assert.True(t, profile.RequestReceived)

	w = api.do(http.MethodPut, "/api/v1/friends/requests/"+aliceID+"/accept", bobToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = api.do(http.MethodGet, "/api/v1/users/"+bobID, aliceToken, nil)
	api.decode(w, &profile)
	assert.True(t, profile.IsFriend)
	assert.False(t, profile.RequestSent)
	assert.EqualValues(t, 1, profile.FriendsCount)

	// Only the owner's own profile carries the email.
	assert.Nil(t, profile.Email)
}

func TestProfileUpdate(t *testing.T) {
	api := newTestAPI(t)
	_, aliceToken := api.signup("pu.alice")
	api.register("pu.taken")

	w := api.do(http.MethodPut, "/api/v1/users/profile", aliceToken, map[string]string{"username": "pu.renamed"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var profile models.ProfileResponse
	w = api.do(http.MethodGet, "/api/v1/users/profile", aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	api.decode(w, &profile)
	assert.Equal(t, "pu.renamed", profile.User.Username)

	w = api.do(http.MethodPut, "/api/v1/users/profile", aliceToken, map[string]string{"username": "pu.taken"})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, errorMessage(t, w), "already taken")

	w = api.do(http.MethodPut, "/api/v1/users/profile", aliceToken, map[string]string{"username": "x"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = api.do(http.MethodPut, "/api/v1/users/profile", aliceToken, map[string]string{"email": "renamed@example.com"})
	require.Equal(t, http.StatusOK, w.Code)
	w = api.do(http.MethodGet, "/api/v1/users/profile", aliceToken, nil)
	api.decode(w, &profile)
	require.NotNil(t, profile.Email)
	assert.Equal(t, "renamed@example.com", *profile.Email)
}

func TestProfileCounts(t *testing.T) {
	api := newTestAPI(t)
	aliceID, aliceToken := api.signup("pc.alice")
	_, bobToken := api.signup("pc.bob")

	api.createPost(aliceToken, "one")
	api.createPost(aliceToken, "two")
	w := api.do(http.MethodPost, "/api/v1/users/"+aliceID+"/follow", bobToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var profile models.ProfileResponse
	w = api.do(http.MethodGet, "/api/v1/users/profile", aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	api.decode(w, &profile)
	assert.EqualValues(t, 2, profile.PostsCount)
	assert.EqualValues(t, 1, profile.FollowersCount)
	assert.EqualValues(t, 0, profile.FollowingCount)
	assert.EqualValues(t, 0, profile.FriendsCount)
}
