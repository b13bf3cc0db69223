package tests

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/aqabadeal-png/canroad/internal/domain"
	"github.com/aqabadeal-png/canroad/internal/redis"
	"github.com/aqabadeal-png/canroad/internal/repository"
)

// ──────────────────────────────────────────────
// MOCK JOB REPOSITORY
// ──────────────────────────────────────────────

// MockJobRepository is a mock implementation of JobRepository.
type MockJobRepository struct {
	mu   sync.RWMutex
	jobs map[string]*domain.Job

	// Counters for verification
	CreateCallCount int32
	UpdateCallCount int32

	// Error injection
	CreateError      error
	UpdateError      error
	CountActiveError error
}

// NewMockJobRepository creates a new mock job repository.
func NewMockJobRepository() *MockJobRepository {
	return &MockJobRepository{
		jobs: make(map[string]*domain.Job),
	}
}

// AddJob adds a job to the mock repository.
func (m *MockJobRepository) AddJob(job *domain.Job) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.jobs[job.ID] = job
}

func (m *MockJobRepository) Create(ctx context.Context, job *domain.Job) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.jobs[job.ID] = job
	return nil
}

func (m *MockJobRepository) GetByID(ctx context.Context, id string) (*domain.Job, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	job, ok := m.jobs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	// Return a copy to avoid mutation issues.
	copy := *job
	return &copy, nil
}

func (m *MockJobRepository) GetAll(ctx context.Context) ([]*domain.Job, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.Job, 0, len(m.jobs))
	for _, j := range m.jobs {
		copy := *j
		result = append(result, &copy)
	}
	return result, nil
}

func (m *MockJobRepository) Update(ctx context.Context, job *domain.Job) error {
	atomic.AddInt32(&m.UpdateCallCount, 1)
	if m.UpdateError != nil {
		return m.UpdateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.jobs[job.ID]; !ok {
		return repository.ErrNotFound
	}
	copy := *job
	m.jobs[job.ID] = &copy
	return nil
}

func (m *MockJobRepository) CountActive(ctx context.Context) (int, error) {
	if m.CountActiveError != nil {
		return 0, m.CountActiveError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	count := 0
	for _, j := range m.jobs {
		if j.Status.Active() {
			count++
		}
	}
	return count, nil
}

func (m *MockJobRepository) GetActiveByCustomer(ctx context.Context, customerID string) (*domain.Job, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, j := range m.jobs {
		if j.CustomerID == customerID && j.Status.Active() {
			copy := *j
			return &copy, nil
		}
	}
	return nil, repository.ErrNotFound
}

// GetJob returns the stored job for test assertions.
func (m *MockJobRepository) GetJob(id string) *domain.Job {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.jobs[id]
}

// ──────────────────────────────────────────────
// MOCK USER REPOSITORY
// ──────────────────────────────────────────────

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mu    sync.RWMutex
	users map[string]*domain.User
}

// NewMockUserRepository creates a new mock user repository.
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users: make(map[string]*domain.User),
	}
}

// AddUser adds a user to the mock repository.
func (m *MockUserRepository) AddUser(user *domain.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[user.ID] = user
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[user.ID] = user
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	user, ok := m.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *user
	return &copy, nil
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if u.Email == email {
			copy := *u
			return &copy, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *MockUserRepository) GetAll(ctx context.Context) ([]*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.User, 0, len(m.users))
	for _, u := range m.users {
		copy := *u
		result = append(result, &copy)
	}
	return result, nil
}

func (m *MockUserRepository) GetByRole(ctx context.Context, role domain.UserRole) ([]*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.User, 0)
	for _, u := range m.users {
		if u.Role == role {
			copy := *u
			result = append(result, &copy)
		}
	}
	return result, nil
}

func (m *MockUserRepository) Update(ctx context.Context, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[user.ID]; !ok {
		return repository.ErrNotFound
	}
	copy := *user
	m.users[user.ID] = &copy
	return nil
}

// ──────────────────────────────────────────────
// MOCK SERVICE REPOSITORY
// ──────────────────────────────────────────────

// MockServiceRepository is a mock implementation of ServiceRepository.
type MockServiceRepository struct {
	mu       sync.RWMutex
	services map[string]*domain.Service
	order    []string

	// Error injection
	GetAllError error
}

// NewMockServiceRepository creates a new mock service repository.
func NewMockServiceRepository() *MockServiceRepository {
	return &MockServiceRepository{
		services: make(map[string]*domain.Service),
	}
}

// AddService adds a service to the mock repository.
func (m *MockServiceRepository) AddService(svc *domain.Service) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.services[svc.ID]; !ok {
		m.order = append(m.order, svc.ID)
	}
	m.services[svc.ID] = svc
}

func (m *MockServiceRepository) Create(ctx context.Context, svc *domain.Service) error {
	m.AddService(svc)
	return nil
}

func (m *MockServiceRepository) GetByID(ctx context.Context, id string) (*domain.Service, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	svc, ok := m.services[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *svc
	return &copy, nil
}

func (m *MockServiceRepository) GetAll(ctx context.Context) ([]*domain.Service, error) {
	if m.GetAllError != nil {
		return nil, m.GetAllError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.Service, 0, len(m.order))
	for _, id := range m.order {
		copy := *m.services[id]
		result = append(result, &copy)
	}
	return result, nil
}

func (m *MockServiceRepository) Update(ctx context.Context, svc *domain.Service) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.services[svc.ID]; !ok {
		return repository.ErrNotFound
	}
	copy := *svc
	m.services[svc.ID] = &copy
	return nil
}

// ──────────────────────────────────────────────
// MOCK LOCATION STORE
// ──────────────────────────────────────────────

// MockLocationStore is a mock implementation of LocationStoreInterface.
type MockLocationStore struct {
	mu        sync.RWMutex
	positions map[string]redis.MechanicPosition

	// Error injection
	AllLocationsError   error
	UpdateLocationError error
}

// NewMockLocationStore creates a new mock location store.
func NewMockLocationStore() *MockLocationStore {
	return &MockLocationStore{
		positions: make(map[string]redis.MechanicPosition),
	}
}

// SetPosition places a mechanic at the given coordinates.
func (m *MockLocationStore) SetPosition(mechanicID string, lat, lng float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.positions[mechanicID] = redis.MechanicPosition{MechanicID: mechanicID, Lat: lat, Lng: lng}
}

func (m *MockLocationStore) UpdateLocation(ctx context.Context, mechanicID string, lat, lng float64) error {
	if m.UpdateLocationError != nil {
		return m.UpdateLocationError
	}
	m.SetPosition(mechanicID, lat, lng)
	return nil
}

func (m *MockLocationStore) AllLocations(ctx context.Context) ([]redis.MechanicPosition, error) {
	if m.AllLocationsError != nil {
		return nil, m.AllLocationsError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]redis.MechanicPosition, 0, len(m.positions))
	for _, p := range m.positions {
		result = append(result, p)
	}
	return result, nil
}

func (m *MockLocationStore) FindNearbyMechanics(ctx context.Context, lat, lng, radiusKm float64) ([]redis.MechanicPosition, error) {
	return m.AllLocations(ctx)
}

func (m *MockLocationStore) RemoveLocation(ctx context.Context, mechanicID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.positions, mechanicID)
	return nil
}

// ──────────────────────────────────────────────
// MOCK LOCK STORE
// ──────────────────────────────────────────────

// MockLockStore is a mock implementation of LockStoreInterface.
type MockLockStore struct {
	mu    sync.Mutex
	locks map[string]bool

	// Counters for verification
	AcquireCallCount int32

	// Error injection
	AcquireError error
}

// NewMockLockStore creates a new mock lock store.
func NewMockLockStore() *MockLockStore {
	return &MockLockStore{
		locks: make(map[string]bool),
	}
}

func (m *MockLockStore) AcquireJobLock(ctx context.Context, jobID string, ttl time.Duration) (bool, error) {
	atomic.AddInt32(&m.AcquireCallCount, 1)
	if m.AcquireError != nil {
		return false, m.AcquireError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.locks[jobID] {
		return false, nil
	}
	m.locks[jobID] = true
	return true, nil
}

func (m *MockLockStore) ReleaseJobLock(ctx context.Context, jobID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.locks, jobID)
	return nil
}

// Hold marks a job lock as already taken.
func (m *MockLockStore) Hold(jobID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.locks[jobID] = true
}

// ──────────────────────────────────────────────
// MOCK SESSION STORE
// ──────────────────────────────────────────────

// MockSessionStore is a mock implementation of SessionStoreInterface.
type MockSessionStore struct {
	mu       sync.RWMutex
	sessions map[string]string

	// Error injection
	SaveError error
}

// NewMockSessionStore creates a new mock session store.
func NewMockSessionStore() *MockSessionStore {
	return &MockSessionStore{
		sessions: make(map[string]string),
	}
}

func (m *MockSessionStore) SaveSession(ctx context.Context, token, userID string, ttl time.Duration) error {
	if m.SaveError != nil {
		return m.SaveError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[token] = userID
	return nil
}

func (m *MockSessionStore) GetSession(ctx context.Context, token string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sessions[token], nil
}

func (m *MockSessionStore) DeleteSession(ctx context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, token)
	return nil
}

// ──────────────────────────────────────────────
// TEST CLOCK AND SCHEDULER
// ──────────────────────────────────────────────

// TestClock is a movable clock for deterministic time-based tests.
type TestClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewTestClock creates a clock fixed at the given instant.
func NewTestClock(now time.Time) *TestClock {
	return &TestClock{now: now}
}

// Now returns the current test time.
func (c *TestClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward.
func (c *TestClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// scheduledFn is one armed timer in the manual scheduler.
type scheduledFn struct {
	fn        func()
	cancelled bool
}

// ManualScheduler records scheduled functions and fires them on demand,
// so deferred-unlock behavior can be tested without sleeping.
type ManualScheduler struct {
	mu      sync.Mutex
	pending []*scheduledFn
}

// NewManualScheduler creates a new manual scheduler.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

// Schedule records fn and returns its cancel function.
func (s *ManualScheduler) Schedule(delay time.Duration, fn func()) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry := &scheduledFn{fn: fn}
	s.pending = append(s.pending, entry)
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		entry.cancelled = true
	}
}

// Fire runs the nth scheduled function regardless of cancellation,
// simulating a timer that won the race against its cancel.
func (s *ManualScheduler) Fire(n int) {
	s.mu.Lock()
	fn := s.pending[n].fn
	s.mu.Unlock()
	fn()
}

// FirePending runs every non-cancelled scheduled function.
func (s *ManualScheduler) FirePending() {
	s.mu.Lock()
	var fns []func()
	for _, entry := range s.pending {
		if !entry.cancelled {
			fns = append(fns, entry.fn)
		}
	}
	s.pending = nil
	s.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

// Len returns how many functions were scheduled.
func (s *ManualScheduler) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}
