package services

import (
	"context"
	"errors"

	"github.com/ytakahashi/todo-api/internal/models"
)

// Store errors recognized by the HTTP layer. Anything else is treated as an
// internal failure.
var (
	ErrNotFound   = errors.New("not found")
	ErrEmailTaken = errors.New("email already in use")
)

// TodoStore is the document-store adapter for the todos collection.
// An empty userID means the operation is unscoped.
type TodoStore interface {
	CreateTodo(ctx context.Context, userID, content string) (*models.Todo, error)
	ListTodos(ctx context.Context, userID string) ([]*models.Todo, error)
	UpdateTodoStatus(ctx context.Context, id string, status bool, userID string) (*models.Todo, error)
	DeleteTodo(ctx context.Context, id, userID string) error
}

// UserStore is the document-store adapter for the users collection. Email
// uniqueness is enforced by the store, not by callers.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) (*models.User, error)
	GetUser(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateUser(ctx context.Context, user *models.User) (*models.User, error)
}
