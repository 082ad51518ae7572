package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/ytakahashi/todo-api/internal/auth"
	"github.com/ytakahashi/todo-api/internal/services"
	"github.com/ytakahashi/todo-api/internal/sessions"
)

type Handler struct {
	todos    services.TodoStore
	users    services.UserStore
	sessions sessions.Store
	tokens   *auth.TokenIssuer
	log      *zap.Logger
}

func New(todos services.TodoStore, users services.UserStore, sessionStore sessions.Store, tokens *auth.TokenIssuer, log *zap.Logger) *Handler {
	return &Handler{
		todos:    todos,
		users:    users,
		sessions: sessionStore,
		tokens:   tokens,
		log:      log,
	}
}

// Routes registers the API surface.
func (h *Handler) Routes(e *echo.Echo) {
	api := e.Group("/api")

	api.GET("/health", h.Health)

	todos := api.Group("/todos", h.sessionOptional)
	todos.POST("", h.CreateTodo)
	todos.GET("", h.ListTodos)
	todos.PATCH("/:id", h.UpdateTodoStatus)
	todos.DELETE("/:id", h.DeleteTodo)

	user := api.Group("/user")
	user.POST("/register", h.RegisterUser)
	user.POST("/login", h.Login)
	user.POST("/logout", h.Logout, h.sessionOptional)
	user.GET("", h.CurrentUser, h.sessionRequired)
	user.PUT("/update", h.UpdateProfile, h.sessionRequired)
}

func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"ok": true})
}

// internalError logs the underlying failure and returns the fixed generic
// body. Driver and store detail never reaches the caller.
func (h *Handler) internalError(c echo.Context, msg string, err error) error {
	h.log.Error(msg, zap.Error(err))
	return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Internal server error."})
}
