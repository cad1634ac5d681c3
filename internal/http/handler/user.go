package handler

import (
	"net/http"

	"examplar-api/internal/auth"
	"examplar-api/internal/domain/user"

	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"
)

type UserHandler struct {
	users  UserService
	logger log.FieldLogger
}

func NewUserHandler(users UserService, logger log.FieldLogger) *UserHandler {
	return &UserHandler{users: users, logger: logger}
}

type CreateUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

func (h *UserHandler) ListUsers(c echo.Context) error {
	entry := h.logger.WithField("request_id", c.Response().Header().Get(echo.HeaderXRequestID))
	if principal, err := auth.GetPrincipal(c); err == nil {
		entry = entry.WithField("principal", principal.Name)
	}
	entry.Debug("listing users")

	users, err := h.users.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

func (h *UserHandler) GetUser(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	u, err := h.users.GetByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, u)
}

func (h *UserHandler) CreateUser(c echo.Context) error {
	var req CreateUserRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	u, err := h.users.Create(c.Request().Context(), user.CreateUserInput{
		Username: req.Username,
		Email:    req.Email,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, u)
}
