package rest

import (
	"net/http"
	"time"

	"commCoach/pkg/logger"
	"commCoach/pkg/utils"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
)

type AuthHandler struct {
	jwtSecret       string
	operatorKeyHash string
	tokenTTL        time.Duration
	validator       *validator.Validate
}

func NewAuthHandler(jwtSecret, operatorKeyHash string) *AuthHandler {
	return &AuthHandler{
		jwtSecret:       jwtSecret,
		operatorKeyHash: operatorKeyHash,
		tokenTTL:        24 * time.Hour,
		validator:       validator.New(),
	}
}

type TokenRequest struct {
	OperatorKey string `json:"operator_key" validate:"required"`
}

// POST /api/v1/auth/token
// Exchanges the operator key for an admin JWT.
func (h *AuthHandler) Token(c echo.Context) error {
	var req TokenRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validator.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(h.operatorKeyHash), []byte(req.OperatorKey)); err != nil {
		logger.Warn("Rejected operator key", "ip", c.RealIP())
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "invalid operator key"})
	}

	token, err := utils.GenerateJWT(h.jwtSecret, "operator", "ADMIN", h.tokenTTL)
	if err != nil {
		logger.Error("Failed to generate token", "error", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(map[string]any{
		"token":      token,
		"expires_in": int(h.tokenTTL.Seconds()),
	}))
}
