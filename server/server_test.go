package server

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/noisersup/files-manager-api/cache"
	"github.com/noisersup/files-manager-api/database"
	"github.com/noisersup/files-manager-api/models"
)

// Mocks shared by the handler tests. They count writes so the tests
// can assert that rejected requests caused no side effects.

type MockCache struct {
	mu      sync.Mutex
	entries map[string]string
}

func NewMockCache() *MockCache {
	return &MockCache{entries: map[string]string{}}
}

func (m *MockCache) Close() error { return nil }

func (m *MockCache) IsAlive() bool { return true }

func (m *MockCache) Get(key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.entries[key]
	if !ok {
		return "", cache.KeyNotFound
	}
	return v, nil
}

func (m *MockCache) Set(key, value string, expiry time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = value
	return nil
}

func (m *MockCache) Del(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
	return nil
}

type MockDB struct {
	mu       sync.Mutex
	users    map[uuid.UUID]*models.User
	files    map[uuid.UUID]*models.File
	order    []uuid.UUID // insertion order, the listing's sort key
	inserted int
}

func NewMockDB() *MockDB {
	return &MockDB{
		users: map[uuid.UUID]*models.User{},
		files: map[uuid.UUID]*models.File{},
	}
}

func (m *MockDB) Close() {}

func (m *MockDB) IsAlive() bool { return true }

func (m *MockDB) NewUser(email, hashedPassword string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			return nil, database.UserExists
		}
	}
	u := models.User{Id: uuid.New(), Email: email, Password: hashedPassword}
	m.users[u.Id] = &u
	return &u, nil
}

func (m *MockDB) GetUser(id uuid.UUID) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, database.UserNotFound
	}
	return u, nil
}

func (m *MockDB) GetUserByEmail(email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, database.UserNotFound
}

func (m *MockDB) CountUsers() (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.users)), nil
}

func (m *MockDB) CountFiles() (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.files)), nil
}

func (m *MockDB) NewFile(f *models.File) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	clone := *f
	m.files[f.Id] = &clone
	m.order = append(m.order, f.Id)
	m.inserted++
	return nil
}

func (m *MockDB) GetFile(id, userId uuid.UUID) (*models.File, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	f, ok := m.files[id]
	if !ok || f.UserId != userId {
		return nil, database.FileNotFound
	}
	clone := *f
	return &clone, nil
}

func (m *MockDB) GetFileById(id uuid.UUID) (*models.File, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	f, ok := m.files[id]
	if !ok {
		return nil, database.FileNotFound
	}
	clone := *f
	return &clone, nil
}

func (m *MockDB) ListFiles(userId, parentId uuid.UUID, offset, limit int) ([]models.File, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	matched := []models.File{}
	for _, id := range m.order {
		f := m.files[id]
		if f.UserId == userId && f.ParentId == parentId {
			matched = append(matched, *f)
		}
	}
	if offset >= len(matched) {
		return []models.File{}, nil
	}
	matched = matched[offset:]
	if len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

func (m *MockDB) SetFilePublic(id, userId uuid.UUID, isPublic bool) (*models.File, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	f, ok := m.files[id]
	if !ok || f.UserId != userId {
		return nil, database.FileNotFound
	}
	f.IsPublic = isPublic
	clone := *f
	return &clone, nil
}

type MockQueue struct {
	mu   sync.Mutex
	jobs []models.Job
	fail bool
}

func (m *MockQueue) Close() error { return nil }

func (m *MockQueue) Enqueue(job models.Job) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return errors.New("queue unreachable")
	}
	m.jobs = append(m.jobs, job)
	return nil
}

func (m *MockQueue) Jobs() []models.Job {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.Job{}, m.jobs...)
}
