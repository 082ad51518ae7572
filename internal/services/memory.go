package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ytakahashi/todo-api/internal/models"
)

// MemoryService is an in-process implementation of TodoStore and UserStore
// with the same semantics as FirestoreService. It backs local development when
// no Firestore project is configured, and the handler tests.
type MemoryService struct {
	mu     sync.RWMutex
	todos  map[string]*models.Todo
	users  map[string]*models.User
	emails map[string]string // normalized email -> user id
}

func NewMemoryService() *MemoryService {
	return &MemoryService{
		todos:  make(map[string]*models.Todo),
		users:  make(map[string]*models.User),
		emails: make(map[string]string),
	}
}

func (m *MemoryService) CreateTodo(ctx context.Context, userID, content string) (*models.Todo, error) {
	todo := &models.Todo{
		ID:        uuid.New().String(),
		UserID:    userID,
		Content:   content,
		Status:    false,
		CreatedAt: time.Now(),
	}

	m.mu.Lock()
	m.todos[todo.ID] = todo
	m.mu.Unlock()

	cp := *todo
	return &cp, nil
}

func (m *MemoryService) ListTodos(ctx context.Context, userID string) ([]*models.Todo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var todos []*models.Todo
	for _, t := range m.todos {
		if userID != "" && t.UserID != userID {
			continue
		}
		cp := *t
		todos = append(todos, &cp)
	}

	if userID != "" {
		sort.Slice(todos, func(i, j int) bool {
			return todos[i].CreatedAt.After(todos[j].CreatedAt)
		})
	}

	return todos, nil
}

func (m *MemoryService) UpdateTodoStatus(ctx context.Context, id string, status bool, userID string) (*models.Todo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	todo, ok := m.todos[id]
	if !ok || (userID != "" && todo.UserID != userID) {
		return nil, ErrNotFound
	}

	todo.Status = status
	cp := *todo
	return &cp, nil
}

func (m *MemoryService) DeleteTodo(ctx context.Context, id, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	todo, ok := m.todos[id]
	if !ok || (userID != "" && todo.UserID != userID) {
		return ErrNotFound
	}

	delete(m.todos, id)
	return nil
}

func (m *MemoryService) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if user.Status == "" {
		user.Status = models.UserStatusActive
	}
	user.CreatedAt = time.Now()

	key := normalizeEmail(user.Email)

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, taken := m.emails[key]; taken {
		return nil, ErrEmailTaken
	}
	m.emails[key] = user.ID

	cp := *user
	m.users[user.ID] = &cp

	return user, nil
}

func (m *MemoryService) GetUser(ctx context.Context, id string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	user, ok := m.users[id]
	if !ok {
		return nil, ErrNotFound
	}

	cp := *user
	return &cp, nil
}

func (m *MemoryService) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.emails[normalizeEmail(email)]
	if !ok {
		return nil, ErrNotFound
	}

	user, ok := m.users[id]
	if !ok {
		return nil, ErrNotFound
	}

	cp := *user
	return &cp, nil
}

func (m *MemoryService) UpdateUser(ctx context.Context, user *models.User) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	current, ok := m.users[user.ID]
	if !ok {
		return nil, ErrNotFound
	}

	oldEmail := normalizeEmail(current.Email)
	newEmail := normalizeEmail(user.Email)
	if oldEmail != newEmail {
		if _, taken := m.emails[newEmail]; taken {
			return nil, ErrEmailTaken
		}
		m.emails[newEmail] = user.ID
		delete(m.emails, oldEmail)
	}

	user.CreatedAt = current.CreatedAt
	cp := *user
	m.users[user.ID] = &cp

	return user, nil
}
