package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/twittoo/twittoo-api/internal/api/metrics"
	"github.com/twittoo/twittoo-api/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func errInvalidPayload() error {
	return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
}

func authResult(err error) string {
	if err != nil {
		return "failure"
	}
	return "success"
}

// Register creates a new account with role user and returns a token for it.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      credentialsRequest  true  "Username and password"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      409   {object}  ErrorResponse
// @Failure      429   {object}  ErrorResponse
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		return errInvalidPayload()
	}

	res, err := h.authService.Register(c.Request().Context(), req.Username, req.Password)
	metrics.AuthAttemptsTotal.WithLabelValues("register", authResult(err)).Inc()
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, toAuthResponse("user registered successfully", res))
}

// Login authenticates a user and returns a JWT token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      credentialsRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      401   {object}  ErrorResponse
// @Failure      429   {object}  ErrorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		return errInvalidPayload()
	}

	res, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	metrics.AuthAttemptsTotal.WithLabelValues("login", authResult(err)).Inc()
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toAuthResponse("login successful", res))
}
