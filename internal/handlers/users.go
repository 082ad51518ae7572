package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/ytakahashi/todo-api/internal/models"
	"github.com/ytakahashi/todo-api/internal/services"
	"github.com/ytakahashi/todo-api/internal/sessions"
)

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type updateProfileRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) RegisterUser(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "All fields are required."})
	}

	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)
	if req.Username == "" || req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "All fields are required."})
	}

	user := &models.User{
		Username: req.Username,
		Email:    req.Email,
		Status:   models.UserStatusActive,
	}
	if err := user.SetPassword(req.Password); err != nil {
		return h.internalError(c, "failed to hash password", err)
	}

	created, err := h.users.CreateUser(c.Request().Context(), user)
	if err != nil {
		if err == services.ErrEmailTaken {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "Email already in use."})
		}
		return h.internalError(c, "failed to create user", err)
	}

	return c.JSON(http.StatusCreated, created)
}

func (h *Handler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Email and password are required."})
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Email and password are required."})
	}

	user, err := h.users.GetUserByEmail(c.Request().Context(), req.Email)
	if err != nil {
		if err == services.ErrNotFound {
			return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Invalid email or password."})
		}
		return h.internalError(c, "failed to look up user", err)
	}
	if !user.CheckPassword(req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Invalid email or password."})
	}

	token, err := h.tokens.Issue(user.ID)
	if err != nil {
		return h.internalError(c, "failed to issue token", err)
	}
	if err := h.sessions.Put(c.Request().Context(), sessions.Session{UserID: user.ID, Email: user.Email}); err != nil {
		return h.internalError(c, "failed to store session", err)
	}

	return c.JSON(http.StatusOK, echo.Map{"user": user, "sessionId": token})
}

func (h *Handler) Logout(c echo.Context) error {
	if userID := currentUserID(c); userID != "" {
		if err := h.sessions.Delete(c.Request().Context(), userID); err != nil {
			return h.internalError(c, "failed to delete session", err)
		}
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Logged out successfully.", "token": nil})
}

func (h *Handler) CurrentUser(c echo.Context) error {
	user, err := h.users.GetUser(c.Request().Context(), currentUserID(c))
	if err != nil {
		if err == services.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "User not found."})
		}
		return h.internalError(c, "failed to get user", err)
	}

	return c.JSON(http.StatusOK, user)
}

func (h *Handler) UpdateProfile(c echo.Context) error {
	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid request body."})
	}

	ctx := c.Request().Context()
	user, err := h.users.GetUser(ctx, currentUserID(c))
	if err != nil {
		if err == services.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "User not found."})
		}
		return h.internalError(c, "failed to get user", err)
	}

	// Only supplied fields overwrite.
	if v := strings.TrimSpace(req.Username); v != "" {
		user.Username = v
	}
	if v := strings.TrimSpace(req.Email); v != "" {
		user.Email = v
	}
	if req.Password != "" {
		if err := user.SetPassword(req.Password); err != nil {
			return h.internalError(c, "failed to hash password", err)
		}
	}

	updated, err := h.users.UpdateUser(ctx, user)
	if err != nil {
		switch err {
		case services.ErrNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "User not found."})
		case services.ErrEmailTaken:
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "Email already in use."})
		}
		return h.internalError(c, "failed to update user", err)
	}

	return c.JSON(http.StatusOK, updated)
}
