package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sunitahospital/hospital-system/internal/core/domain"
	"github.com/sunitahospital/hospital-system/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// tokenRequest.UserName accepts a username, an email or a contact number.
type tokenRequest struct {
	UserName string `json:"userName"`
	Password string `json:"password"`
}

type tokenResponse struct {
	User     *domain.User `json:"user"`
	JWTToken string       `json:"jwtToken"`
}

// CreateToken authenticates the caller and returns a bearer token.
//
// @Summary      Create a token
// @Description  userName may be a username, an email address or a contact number.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      tokenRequest  true  "Login credentials"
// @Success      200   {object}  tokenResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /authenticate [post]
func (h *AuthHandler) CreateToken(c echo.Context) error {
	var req tokenRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}

	result, err := h.authService.CreateToken(c.Request().Context(), domain.LoginRequest{
		Identifier: req.UserName,
		Password:   req.Password,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, tokenResponse{User: result.User, JWTToken: result.Token})
}
