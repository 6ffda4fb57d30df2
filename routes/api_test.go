// File: /routes/api_test.go
package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"loopline-api/config"
	"loopline-api/events"
	"loopline-api/models"
	"loopline-api/services"
)

type testAPI struct {
	t      *testing.T
	router *gin.Engine
	bus    *events.Bus
	db     *gorm.DB
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Session{},
		&models.Post{},
		&models.Comment{},
		&models.Reaction{},
		&models.Follow{},
		&models.FriendRequest{},
		&models.Friendship{},
		&models.Score{},
		&models.Notification{},
	))

	cfg := &config.Config{JWTSecret: "test-secret"}

	// No SMTP host, so the mail consumer stays quiet.
	bus := events.NewBus()
	t.Cleanup(bus.Close)

	router := gin.New()
	SetupRoutes(router, db, cfg, bus, services.NewEmailService(cfg))

	return &testAPI{t: t, router: router, bus: bus, db: db}
}

func (api *testAPI) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	api.t.Helper()

	payload := []byte(nil)
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		require.NoError(api.t, err)
	}

	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	api.router.ServeHTTP(w, req)
	return w
}

func (api *testAPI) decode(w *httptest.ResponseRecorder, out interface{}) {
	api.t.Helper()
	require.NoError(api.t, json.Unmarshal(w.Body.Bytes(), out), w.Body.String())
}

// register creates an account and returns the new user's id. Registration
// does not log in.
func (api *testAPI) register(username string) string {
	api.t.Helper()
	w := api.do(http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"username": username,
		"password": "Str0ng-pass1",
	})
	require.Equal(api.t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		User models.User `json:"user"`
	}
	api.decode(w, &resp)
	require.NotEmpty(api.t, resp.User.ID)
	return resp.User.ID
}

// login authenticates and returns the bearer token.
func (api *testAPI) login(username string) string {
	api.t.Helper()
	w := api.do(http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"username": username,
		"password": "Str0ng-pass1",
	})
	require.Equal(api.t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	api.decode(w, &resp)
	require.NotEmpty(api.t, resp.Token)
	return resp.Token
}

// signup registers and logs in, returning the user id and token.
func (api *testAPI) signup(username string) (string, string) {
	api.t.Helper()
	id := api.register(username)
	return id, api.login(username)
}

func (api *testAPI) createPost(token, text string) string {
	api.t.Helper()
	w := api.do(http.MethodPost, "/api/v1/posts/", token, gin.H{"text": text})
	require.Equal(api.t, http.StatusCreated, w.Code, w.Body.String())

	var resp models.PostResponse
	api.decode(w, &resp)
	require.NotEmpty(api.t, resp.ID)
	return resp.ID
}

func errorMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return resp.Error
}

func TestPing(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(http.MethodGet, "/ping", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "pong")
}

func TestRegisterValidation(t *testing.T) {
	api := newTestAPI(t)

	cases := []struct {
		name string
		body gin.H
	}{
		{"missing password", gin.H{"username": "valid.name"}},
		{"short password", gin.H{"username": "valid.name", "password": "Ab1"}},
		{"weak password", gin.H{"username": "valid.name", "password": "alllowercase"}},
		{"short username", gin.H{"username": "ab", "password": "Str0ng-pass1"}},
		{"username with spaces", gin.H{"username": "has spaces", "password": "Str0ng-pass1"}},
		{"bad email", gin.H{"username": "valid.name", "password": "Str0ng-pass1", "email": "not-an-email"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := api.do(http.MethodPost, "/api/v1/auth/register", "", tc.body)
			assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
		})
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	api := newTestAPI(t)
	api.register("taken.name")

	w := api.do(http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"username": "taken.name",
		"password": "Other-pass1",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, errorMessage(t, w), "already taken")
}

func TestRegisterDoesNotLogIn(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"username": "fresh",
		"password": "Str0ng-pass1",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.NotContains(t, w.Body.String(), "token")

	// Nothing protected is reachable until an actual login.
	w = api.do(http.MethodGet, "/api/v1/users/profile", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogin(t *testing.T) {
	api := newTestAPI(t)
	api.register("carol")

	w := api.do(http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"username": "carol",
		"password": "wrong-pass",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "invalid username or password", errorMessage(t, w))

	w = api.do(http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"username": "nobody",
		"password": "Str0ng-pass1",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "invalid username or password", errorMessage(t, w))

	token := api.login("carol")

	w = api.do(http.MethodGet, "/api/v1/users/profile", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "carol")
}

func TestLoginWhileLoggedIn(t *testing.T) {
	api := newTestAPI(t)
	_, token := api.signup("dana")

	w := api.do(http.MethodPost, "/api/v1/auth/login", token, gin.H{
		"username": "dana",
		"password": "Str0ng-pass1",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "already logged in, must log out first", errorMessage(t, w))
}

func TestLogoutInvalidatesToken(t *testing.T) {
	api := newTestAPI(t)
	_, token := api.signup("edgar")

	w := api.do(http.MethodGet, "/api/v1/users/profile", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = api.do(http.MethodPost, "/api/v1/auth/logout", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// The token still parses fine; the session behind it is unbound.
	w = api.do(http.MethodGet, "/api/v1/users/profile", token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "not logged in", errorMessage(t, w))
}

func TestLogoutIdempotent(t *testing.T) {
	api := newTestAPI(t)
	_, token := api.signup("frida")

	for i := 0; i < 2; i++ {
		w := api.do(http.MethodPost, "/api/v1/auth/logout", token, nil)
		assert.Equal(t, http.StatusOK, w.Code)
	}

	// Logout without any token at all is the same no-op.
	w := api.do(http.MethodPost, "/api/v1/auth/logout", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestLoginAgainReusesSession(t *testing.T) {
	api := newTestAPI(t)
	_, token := api.signup("georg")

	w := api.do(http.MethodPost, "/api/v1/auth/logout", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	// Logging in on the logged-out session binds it again.
	w = api.do(http.MethodPost, "/api/v1/auth/login", token, gin.H{
		"username": "georg",
		"password": "Str0ng-pass1",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var sessions int64
	require.NoError(t, api.db.Model(&models.Session{}).Count(&sessions).Error)
	assert.EqualValues(t, 1, sessions, "re-login on a presented session must not open a second one")
}

func TestProtectedRequiresAuth(t *testing.T) {
	api := newTestAPI(t)

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/v1/users/profile"},
		{http.MethodGet, "/api/v1/posts/"},
		{http.MethodGet, "/api/v1/friends/"},
		{http.MethodGet, "/api/v1/notifications/"},
	}

	for _, p := range paths {
		w := api.do(p.method, p.path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, p.path)

		w = api.do(p.method, p.path, "not-a-real-token", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, p.path)
	}
}

func TestDeleteAccount(t *testing.T) {
	api := newTestAPI(t)
	aliceID, aliceToken := api.signup("alice")
	_, bobToken := api.signup("bob")

	w := api.do(http.MethodDelete, "/api/v1/users/profile", aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	// The account's sessions died with it.
	w = api.do(http.MethodGet, "/api/v1/users/profile", aliceToken, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = api.do(http.MethodGet, "/api/v1/users/"+aliceID, bobToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
