package auth

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func setupLoginTest(t *testing.T) *fiber.App {
	hash, err := bcrypt.GenerateFromPassword([]byte("1234"), bcrypt.MinCost)
	require.NoError(t, err)

	h := &Handlers{
		Username:     "demo",
		PasswordHash: hash,
		JWTSecret:    testSecret,
		TokenTTL:     time.Hour,
	}
	app := fiber.New()
	app.Post("/auth/login", h.Login)
	return app
}

func postLogin(t *testing.T, app *fiber.App, username, password string) *http.Response {
	t.Helper()
	body, _ := json.Marshal(map[string]string{"username": username, "password": password})
	req := httptest.NewRequest("POST", "/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestLogin_IssuesVerifiableToken(t *testing.T) {
	app := setupLoginTest(t)
	resp := postLogin(t, app, "demo", "1234")
	assert.Equal(t, 200, resp.StatusCode)

	var body struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "bearer", body.TokenType)

	claims, err := ParseToken(testSecret, body.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "demo", claims.Subject)
}

func TestLogin_WrongPassword(t *testing.T) {
	app := setupLoginTest(t)
	resp := postLogin(t, app, "demo", "wrong")
	assert.Equal(t, 401, resp.StatusCode)
}

func TestLogin_UnknownUser(t *testing.T) {
	app := setupLoginTest(t)
	resp := postLogin(t, app, "admin", "1234")
	assert.Equal(t, 401, resp.StatusCode)
}
