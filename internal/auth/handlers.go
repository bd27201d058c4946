package auth

import (
	"time"

	"github.com/kgrubic/boston-energy/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

// Handlers issues access tokens for the demo credential.
type Handlers struct {
	Username     string
	PasswordHash []byte // bcrypt hash of the configured password
	JWTSecret    string
	TokenTTL     time.Duration
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Login POST /api/auth/login
func (h *Handlers) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	if req.Username != h.Username ||
		bcrypt.CompareHashAndPassword(h.PasswordHash, []byte(req.Password)) != nil {
		return response.Unauthorized(c, ErrInvalidCredentials.Error())
	}

	token, err := GenerateToken(h.JWTSecret, req.Username, h.TokenTTL)
	if err != nil {
		return response.Error(c, "Could not issue token", fiber.StatusInternalServerError, nil)
	}
	return c.JSON(tokenResponse{AccessToken: token, TokenType: "bearer"})
}
