package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

const userIDKey = "userID"

// currentUserID returns the authenticated user id set by the session
// middleware, or "" for an unauthenticated request.
func currentUserID(c echo.Context) string {
	id, _ := c.Get(userIDKey).(string)
	return id
}

// sessionRequired rejects requests without a valid bearer token backed by a
// live session.
func (h *Handler) sessionRequired(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID, err := h.resolveSession(c)
		if err != nil {
			return h.internalError(c, "session lookup failed", err)
		}
		if userID == "" {
			return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Authentication required."})
		}
		c.Set(userIDKey, userID)
		return next(c)
	}
}

// sessionOptional lets anonymous requests through, but a request that does
// present a token must present a valid one.
func (h *Handler) sessionOptional(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if c.Request().Header.Get(echo.HeaderAuthorization) == "" {
			return next(c)
		}

		userID, err := h.resolveSession(c)
		if err != nil {
			return h.internalError(c, "session lookup failed", err)
		}
		if userID == "" {
			return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Authentication required."})
		}
		c.Set(userIDKey, userID)
		return next(c)
	}
}

// resolveSession verifies the bearer token and checks the session store.
// It returns "" for any identity that cannot be established; an error means
// the session backend itself failed.
func (h *Handler) resolveSession(c echo.Context) (string, error) {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	token, found := strings.CutPrefix(header, "Bearer ")
	if !found || token == "" {
		return "", nil
	}

	userID, err := h.tokens.Verify(token)
	if err != nil {
		return "", nil
	}

	_, ok, err := h.sessions.Get(c.Request().Context(), userID)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", nil
	}
	return userID, nil
}
