package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sunitahospital/hospital-system/internal/core/domain"
	"github.com/sunitahospital/hospital-system/internal/core/ports"
)

// UserHandler handles account registration and user reads.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

type registerRequest struct {
	UserName      string `json:"userName" validate:"required,max=64"`
	Password      string `json:"password" validate:"required,min=6"`
	Email         string `json:"email" validate:"omitempty,email"`
	ContactNumber int64  `json:"contactNumber" validate:"omitempty,gt=0"`
	Address       string `json:"address"`
}

// Register creates a new user account with the default role.
//
// @Summary      Register a new user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Account details"
// @Success      201   {object}  domain.User
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /users [post]
func (h *UserHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.service.Register(c.Request().Context(), ports.RegisterUserInput{
		UserName:      req.UserName,
		Password:      req.Password,
		Email:         req.Email,
		ContactNumber: req.ContactNumber,
		Address:       req.Address,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, user)
}

// List returns every user account.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.User
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /users [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	if users == nil {
		users = []*domain.User{}
	}
	return c.JSON(http.StatusOK, users)
}

// Get returns one user. Admins may read any account, others only their own.
//
// @Summary      Get a user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        userName  path      string  true  "Username"
// @Success      200       {object}  domain.User
// @Failure      401       {object}  map[string]string
// @Failure      403       {object}  map[string]string
// @Failure      404       {object}  map[string]string
// @Router       /users/{userName} [get]
func (h *UserHandler) Get(c echo.Context) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}

	userName := c.Param("userName")
	if principal.UserName != userName && !isAdmin(principal) {
		return domain.ErrForbidden
	}

	user, err := h.service.Get(c.Request().Context(), userName)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}
