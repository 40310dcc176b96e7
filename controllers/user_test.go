package controllers_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestRegisterAndLogin(t *testing.T) {
	env := setupTestEnv(t)

	w := env.do(t, http.MethodPost, "/register", "", map[string]string{
		"email":    "buyer@example.com",
		"password": "secret1",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// Duplicate registration is rejected.
	w = env.do(t, http.MethodPost, "/register", "", map[string]string{
		"email":    "buyer@example.com",
		"password": "secret1",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodPost, "/login", "", map[string]string{
		"email":    "buyer@example.com",
		"password": "secret1",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var login struct {
		Token   string `json:"token"`
		IsAdmin bool   `json:"isAdmin"`
	}
	decodeBody(t, w, &login)
	require.NotEmpty(t, login.Token)
	assert.False(t, login.IsAdmin)

	// The issued token works against authenticated routes.
	w = env.do(t, http.MethodGet, "/profile", login.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var profile struct {
		IsAdmin bool `json:"isAdmin"`
	}
	decodeBody(t, w, &profile)
	assert.False(t, profile.IsAdmin)
}

func TestRegisterValidation(t *testing.T) {
	env := setupTestEnv(t)

	cases := []map[string]string{
		{"email": "not-an-email", "password": "secret1"},
		{"email": "user@example.com", "password": "12345"},
	}
	for i, body := range cases {
		w := env.do(t, http.MethodPost, "/register", "", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, "case %d", i)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	env := setupTestEnv(t)
	env.seedUser(t, "buyer@example.com", false)

	w := env.do(t, http.MethodPost, "/login", "", map[string]string{
		"email":    "buyer@example.com",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.do(t, http.MethodPost, "/login", "", map[string]string{
		"email":    "nobody@example.com",
		"password": "secret1",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestTokenForDeletedUserRejected(t *testing.T) {
	env := setupTestEnv(t)
	user, token := env.seedUser(t, "gone@example.com", false)

	_, err := env.db.Collection("users").DeleteOne(context.Background(), bson.M{"_id": user.ID})
	require.NoError(t, err)

	w := env.do(t, http.MethodGet, "/profile", token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
