package mock

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/taskdeck/taskdeck/internal/database"
)

var _ database.DB = (*MockDB)(nil)

// MockDB is a mock implementation of database.DB for testing.
type MockDB struct {
	mu sync.RWMutex

	// User storage
	users      map[uint]*database.User
	nextUserID uint

	// Token storage, keyed by user id
	tokens map[uint]*database.Token

	// Task storage
	tasks      map[uint]*database.Task
	nextTaskID uint

	// Error simulation
	CreateUserError        error
	GetUserByIDError       error
	GetUserByUsernameError error
	ListUsersError         error
	UpdateUserError        error
	GetOrCreateTokenError  error
	GetUserByTokenKeyError error
	CreateTaskError        error
	GetTaskByIDError       error
	ListTasksError         error
	UpdateTaskError        error
	DeleteTaskError        error
}

// NewMockDB creates a new MockDB instance.
func NewMockDB() *MockDB {
	return &MockDB{
		users:      make(map[uint]*database.User),
		nextUserID: 1,
		tokens:     make(map[uint]*database.Token),
		tasks:      make(map[uint]*database.Task),
		nextTaskID: 1,
	}
}

// Reset clears all data and errors from the mock database.
func (m *MockDB) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.users = make(map[uint]*database.User)
	m.nextUserID = 1
	m.tokens = make(map[uint]*database.Token)
	m.tasks = make(map[uint]*database.Task)
	m.nextTaskID = 1

	m.CreateUserError = nil
	m.GetUserByIDError = nil
	m.GetUserByUsernameError = nil
	m.ListUsersError = nil
	m.UpdateUserError = nil
	m.GetOrCreateTokenError = nil
	m.GetUserByTokenKeyError = nil
	m.CreateTaskError = nil
	m.GetTaskByIDError = nil
	m.ListTasksError = nil
	m.UpdateTaskError = nil
	m.DeleteTaskError = nil
}

// coerceRole mirrors the BeforeSave hook of the real database: a superuser
// always holds the admin role.
func coerceRole(user *database.User) {
	if user.IsSuperuser {
		user.Role = database.RoleAdmin
	}
}

// User operations

func (m *MockDB) CreateUser(_ context.Context, user *database.User) error {
	if m.CreateUserError != nil {
		return m.CreateUserError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.users {
		if existing.Username == user.Username {
			return database.ErrUsernameTaken
		}
	}
	for _, existing := range m.users {
		if existing.Email == user.Email {
			return database.ErrEmailTaken
		}
	}

	if user.Role == "" {
		user.Role = database.RoleUser
	}
	coerceRole(user)

	user.ID = m.nextUserID
	m.nextUserID++
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt

	stored := *user
	m.users[user.ID] = &stored
	return nil
}

func (m *MockDB) GetUserByID(_ context.Context, id uint) (*database.User, error) {
	if m.GetUserByIDError != nil {
		return nil, m.GetUserByIDError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	user, ok := m.users[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	u := *user
	return &u, nil
}

func (m *MockDB) GetUserByUsername(_ context.Context, username string) (*database.User, error) {
	if m.GetUserByUsernameError != nil {
		return nil, m.GetUserByUsernameError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, user := range m.users {
		if user.Username == username {
			u := *user
			return &u, nil
		}
	}
	return nil, database.ErrNotFound
}

func (m *MockDB) ListUsers(_ context.Context) ([]database.User, error) {
	if m.ListUsersError != nil {
		return nil, m.ListUsersError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	users := make([]database.User, 0, len(m.users))
	for _, user := range m.users {
		users = append(users, *user)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (m *MockDB) UpdateUser(_ context.Context, user *database.User) error {
	if m.UpdateUserError != nil {
		return m.UpdateUserError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.users[user.ID]; !ok {
		return database.ErrNotFound
	}

	coerceRole(user)
	user.UpdatedAt = time.Now()

	stored := *user
	m.users[user.ID] = &stored
	return nil
}

// Token operations

func (m *MockDB) GetOrCreateToken(_ context.Context, userID uint) (*database.Token, error) {
	if m.GetOrCreateTokenError != nil {
		return nil, m.GetOrCreateTokenError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if token, ok := m.tokens[userID]; ok {
		t := *token
		return &t, nil
	}

	token := &database.Token{
		Key:    uuid.New().String(),
		UserID: userID,
	}
	token.ID = uint(len(m.tokens) + 1)
	token.CreatedAt = time.Now()
	m.tokens[userID] = token

	t := *token
	return &t, nil
}

func (m *MockDB) GetUserByTokenKey(_ context.Context, key string) (*database.User, error) {
	if m.GetUserByTokenKeyError != nil {
		return nil, m.GetUserByTokenKeyError
	}

	m.mu.RLock()
	var userID uint
	var found bool
	for _, token := range m.tokens {
		if token.Key == key {
			userID = token.UserID
			found = true
			break
		}
	}
	m.mu.RUnlock()

	if !found {
		return nil, database.ErrNotFound
	}
	return m.GetUserByID(context.Background(), userID)
}

// Task operations

func (m *MockDB) CreateTask(_ context.Context, task *database.Task) error {
	if m.CreateTaskError != nil {
		return m.CreateTaskError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	task.ID = m.nextTaskID
	m.nextTaskID++
	task.CreatedAt = time.Now()
	task.UpdatedAt = task.CreatedAt

	stored := *task
	m.tasks[task.ID] = &stored
	return nil
}

func (m *MockDB) GetTaskByID(_ context.Context, id uint) (*database.Task, error) {
	if m.GetTaskByIDError != nil {
		return nil, m.GetTaskByIDError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	task, ok := m.tasks[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	t := *task
	return &t, nil
}

func (m *MockDB) ListTasks(_ context.Context) ([]database.Task, error) {
	if m.ListTasksError != nil {
		return nil, m.ListTasksError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	tasks := make([]database.Task, 0, len(m.tasks))
	for _, task := range m.tasks {
		tasks = append(tasks, *task)
	}
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].ID < tasks[j].ID })
	return tasks, nil
}

func (m *MockDB) ListTasksByOwner(_ context.Context, userID uint) ([]database.Task, error) {
	if m.ListTasksError != nil {
		return nil, m.ListTasksError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	tasks := make([]database.Task, 0)
	for _, task := range m.tasks {
		if task.CreatedByID == userID {
			tasks = append(tasks, *task)
		}
	}
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].ID < tasks[j].ID })
	return tasks, nil
}

func (m *MockDB) UpdateTask(_ context.Context, task *database.Task) error {
	if m.UpdateTaskError != nil {
		return m.UpdateTaskError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.tasks[task.ID]; !ok {
		return database.ErrNotFound
	}

	task.UpdatedAt = time.Now()
	stored := *task
	m.tasks[task.ID] = &stored
	return nil
}

func (m *MockDB) DeleteTask(_ context.Context, id uint) error {
	if m.DeleteTaskError != nil {
		return m.DeleteTaskError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.tasks[id]; !ok {
		return database.ErrNotFound
	}
	delete(m.tasks, id)
	return nil
}
