package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/ytakahashi/todo-api/internal/models"
	"github.com/ytakahashi/todo-api/internal/services"
)

type createTodoRequest struct {
	Content string `json:"content"`
}

type updateTodoRequest struct {
	// Pointer so that a missing, null, or non-boolean status is rejected
	// instead of defaulting to false.
	Status *bool `json:"status"`
}

func (h *Handler) CreateTodo(c echo.Context) error {
	var req createTodoRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Todo item is required."})
	}

	content := strings.TrimSpace(req.Content)
	if content == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Todo item is required."})
	}

	todo, err := h.todos.CreateTodo(c.Request().Context(), currentUserID(c), content)
	if err != nil {
		return h.internalError(c, "failed to create todo", err)
	}

	return c.JSON(http.StatusCreated, todo)
}

func (h *Handler) ListTodos(c echo.Context) error {
	todos, err := h.todos.ListTodos(c.Request().Context(), currentUserID(c))
	if err != nil {
		return h.internalError(c, "failed to list todos", err)
	}

	if todos == nil {
		todos = []*models.Todo{}
	}
	return c.JSON(http.StatusOK, todos)
}

func (h *Handler) UpdateTodoStatus(c echo.Context) error {
	var req updateTodoRequest
	if err := c.Bind(&req); err != nil || req.Status == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid status value."})
	}

	todo, err := h.todos.UpdateTodoStatus(c.Request().Context(), c.Param("id"), *req.Status, currentUserID(c))
	if err != nil {
		if err == services.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Todo item not found."})
		}
		return h.internalError(c, "failed to update todo", err)
	}

	return c.JSON(http.StatusOK, todo)
}

func (h *Handler) DeleteTodo(c echo.Context) error {
	err := h.todos.DeleteTodo(c.Request().Context(), c.Param("id"), currentUserID(c))
	if err != nil {
		if err == services.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Todo item not found."})
		}
		return h.internalError(c, "failed to delete todo", err)
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Todo item deleted successfully."})
}
