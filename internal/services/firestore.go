package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/ytakahashi/todo-api/internal/models"
)

// FirestoreService implements TodoStore and UserStore on Cloud Firestore.
// Collections: "todos", "users", and "emails" (uniqueness index keyed by
// normalized address, written in the same transaction as the user document).
type FirestoreService struct {
	client *firestore.Client
}

func NewFirestoreService(projectID string) (*FirestoreService, error) {
	ctx := context.Background()
	client, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to create Firestore client: %v", err)
	}

	return &FirestoreService{
		client: client,
	}, nil
}

func (fs *FirestoreService) Close() error {
	return fs.client.Close()
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (fs *FirestoreService) CreateTodo(ctx context.Context, userID, content string) (*models.Todo, error) {
	todo := &models.Todo{
		ID:        uuid.New().String(),
		UserID:    userID,
		Content:   content,
		Status:    false,
		CreatedAt: time.Now(),
	}

	_, err := fs.client.Collection("todos").Doc(todo.ID).Set(ctx, todo)
	if err != nil {
		return nil, fmt.Errorf("failed to create todo: %v", err)
	}

	return todo, nil
}

func (fs *FirestoreService) ListTodos(ctx context.Context, userID string) ([]*models.Todo, error) {
	q := fs.client.Collection("todos").Query
	if userID != "" {
		q = q.Where("userId", "==", userID).OrderBy("createdAt", firestore.Desc)
	}

	iter := q.Documents(ctx)
	var todos []*models.Todo
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate todos: %v", err)
		}

		var todo models.Todo
		if err := doc.DataTo(&todo); err != nil {
			return nil, fmt.Errorf("failed to unmarshal todo: %v", err)
		}

		todos = append(todos, &todo)
	}

	return todos, nil
}

// getTodo loads a todo and applies the ownership scope. A scoped lookup that
// hits someone else's todo reports ErrNotFound rather than revealing it exists.
func (fs *FirestoreService) getTodo(ctx context.Context, id, userID string) (*firestore.DocumentSnapshot, *models.Todo, error) {
	doc, err := fs.client.Collection("todos").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil, ErrNotFound
		}
		return nil, nil, fmt.Errorf("failed to get todo: %v", err)
	}

	var todo models.Todo
	if err := doc.DataTo(&todo); err != nil {
		return nil, nil, fmt.Errorf("failed to unmarshal todo: %v", err)
	}
	if userID != "" && todo.UserID != userID {
		return nil, nil, ErrNotFound
	}

	return doc, &todo, nil
}

func (fs *FirestoreService) UpdateTodoStatus(ctx context.Context, id string, statusValue bool, userID string) (*models.Todo, error) {
	doc, todo, err := fs.getTodo(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	_, err = doc.Ref.Update(ctx, []firestore.Update{
		{Path: "status", Value: statusValue},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update todo: %v", err)
	}

	todo.Status = statusValue
	return todo, nil
}

func (fs *FirestoreService) DeleteTodo(ctx context.Context, id, userID string) error {
	doc, _, err := fs.getTodo(ctx, id, userID)
	if err != nil {
		return err
	}

	if _, err := doc.Ref.Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete todo: %v", err)
	}

	return nil
}

func (fs *FirestoreService) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if user.Status == "" {
		user.Status = models.UserStatusActive
	}
	user.CreatedAt = time.Now()

	emailRef := fs.client.Collection("emails").Doc(normalizeEmail(user.Email))
	userRef := fs.client.Collection("users").Doc(user.ID)

	// Claiming the email index document and creating the user in one
	// transaction keeps uniqueness intact for concurrent registrations.
	err := fs.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		_, err := tx.Get(emailRef)
		if err == nil {
			return ErrEmailTaken
		}
		if status.Code(err) != codes.NotFound {
			return err
		}

		if err := tx.Create(emailRef, map[string]interface{}{"userId": user.ID}); err != nil {
			return err
		}
		return tx.Create(userRef, user)
	})
	if err != nil {
		if err == ErrEmailTaken {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create user: %v", err)
	}

	return user, nil
}

func (fs *FirestoreService) GetUser(ctx context.Context, id string) (*models.User, error) {
	doc, err := fs.client.Collection("users").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %v", err)
	}

	var user models.User
	if err := doc.DataTo(&user); err != nil {
		return nil, fmt.Errorf("failed to unmarshal user: %v", err)
	}

	return &user, nil
}

func (fs *FirestoreService) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	doc, err := fs.client.Collection("emails").Doc(normalizeEmail(email)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to look up email: %v", err)
	}

	userID, err := doc.DataAt("userId")
	if err != nil {
		return nil, fmt.Errorf("failed to read email index: %v", err)
	}
	id, ok := userID.(string)
	if !ok {
		return nil, fmt.Errorf("email index holds non-string userId for %s", normalizeEmail(email))
	}

	return fs.GetUser(ctx, id)
}

func (fs *FirestoreService) UpdateUser(ctx context.Context, user *models.User) (*models.User, error) {
	userRef := fs.client.Collection("users").Doc(user.ID)

	err := fs.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(userRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return ErrNotFound
			}
			return err
		}

		var current models.User
		if err := doc.DataTo(&current); err != nil {
			return err
		}

		oldEmail := normalizeEmail(current.Email)
		newEmail := normalizeEmail(user.Email)
		if oldEmail != newEmail {
			newRef := fs.client.Collection("emails").Doc(newEmail)
			if _, err := tx.Get(newRef); err == nil {
				return ErrEmailTaken
			} else if status.Code(err) != codes.NotFound {
				return err
			}
			if err := tx.Create(newRef, map[string]interface{}{"userId": user.ID}); err != nil {
				return err
			}
			if err := tx.Delete(fs.client.Collection("emails").Doc(oldEmail)); err != nil {
				return err
			}
		}

		user.CreatedAt = current.CreatedAt
		return tx.Set(userRef, user)
	})
	if err != nil {
		if err == ErrNotFound || err == ErrEmailTaken {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update user: %v", err)
	}

	return user, nil
}
