package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/aqabadeal-png/canroad/internal/domain"
	"github.com/aqabadeal-png/canroad/internal/repository"
)

// Scheduler runs fn once after the delay and returns a cancel function.
// The default implementation is time.AfterFunc; tests substitute a manual
// one.
type Scheduler func(delay time.Duration, fn func()) (cancel func())

func defaultScheduler(delay time.Duration, fn func()) func() {
	timer := time.AfterFunc(delay, fn)
	return func() { timer.Stop() }
}

// PricingService owns the pricing sessions. Each booking flow gets its own
// session; there is no process-wide inputs/estimate pair.
type PricingService struct {
	cfg       FareConfig
	estimator *EstimateService
	catalog   repository.ServiceRepository
	now       func() time.Time
	schedule  Scheduler

	mu       sync.RWMutex
	sessions map[string]*PricingSession
}

// NewPricingService creates a new PricingService. Nil clock and scheduler
// default to the real ones.
func NewPricingService(
	cfg FareConfig,
	estimator *EstimateService,
	catalog repository.ServiceRepository,
	clock func() time.Time,
	schedule Scheduler,
) *PricingService {
	if clock == nil {
		clock = time.Now
	}
	if schedule == nil {
		schedule = defaultScheduler
	}
	return &PricingService{
		cfg:       cfg,
		estimator: estimator,
		catalog:   catalog,
		now:       clock,
		schedule:  schedule,
		sessions:  make(map[string]*PricingSession),
	}
}

// CreateSession starts a new pricing session with default inputs. No
// estimate exists until a location is set.
func (p *PricingService) CreateSession(ctx context.Context) *PricingSession {
	session := &PricingSession{
		id:      uuid.New().String(),
		service: p,
		inputs: domain.PricingInputs{
			ServiceType: domain.ServiceGeneralMechanics,
			VehicleType: domain.VehicleCar,
		},
	}
	session.recalculate(ctx)

	p.mu.Lock()
	p.sessions[session.id] = session
	p.mu.Unlock()

	return session
}

// GetSession retrieves a session by id.
func (p *PricingService) GetSession(id string) (*PricingSession, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	session, ok := p.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// RemoveSession drops a session (booking completed or abandoned).
func (p *PricingService) RemoveSession(id string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if session, ok := p.sessions[id]; ok {
		session.mu.Lock()
		if session.cancelUnlock != nil {
			session.cancelUnlock()
			session.cancelUnlock = nil
		}
		session.mu.Unlock()
		delete(p.sessions, id)
	}
}

// RefreshAll re-derives every session's estimate, e.g. after a catalog
// change. Locked sessions keep their estimate until the lock expires.
func (p *PricingService) RefreshAll(ctx context.Context) {
	p.mu.RLock()
	sessions := make([]*PricingSession, 0, len(p.sessions))
	for _, s := range p.sessions {
		sessions = append(sessions, s)
	}
	p.mu.RUnlock()

	for _, s := range sessions {
		s.Refresh(ctx)
	}
}

// PricingSession holds one customer's live pricing inputs and the derived
// estimate. Every input mutation re-runs the calculator unless the
// current estimate carries an unexpired price lock; recomputation is
// idempotent and cheap, so no dirty flag is kept.
type PricingSession struct {
	id      string
	service *PricingService

	mu           sync.Mutex
	inputs       domain.PricingInputs
	estimate     *domain.PricingEstimate
	cancelUnlock func()
}

// ID returns the session id.
func (s *PricingSession) ID() string { return s.id }

// Inputs returns a copy of the current inputs.
func (s *PricingSession) Inputs() domain.PricingInputs {
	s.mu.Lock()
	defer s.mu.Unlock()
	inputs := s.inputs
	if inputs.Location != nil {
		loc := *inputs.Location
		inputs.Location = &loc
	}
	return inputs
}

// Estimate returns a copy of the current estimate, or nil when no
// location has been set yet.
func (s *PricingSession) Estimate() *domain.PricingEstimate {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.estimate.Clone()
}

// Snapshot returns copies of the current inputs and estimate taken under
// one lock, so the pair is always mutually consistent.
func (s *PricingSession) Snapshot() (domain.PricingInputs, *domain.PricingEstimate) {
	s.mu.Lock()
	defer s.mu.Unlock()
	inputs := s.inputs
	if inputs.Location != nil {
		loc := *inputs.Location
		inputs.Location = &loc
	}
	return inputs, s.estimate.Clone()
}

// SetLocation updates the customer location.
func (s *PricingSession) SetLocation(ctx context.Context, loc *domain.LocationData) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inputs.Location = loc
	s.recalculateLocked(ctx)
}

// SetServiceType updates the requested service.
func (s *PricingSession) SetServiceType(ctx context.Context, serviceType string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inputs.ServiceType = serviceType
	s.recalculateLocked(ctx)
}

// SetVehicleType updates the vehicle class.
func (s *PricingSession) SetVehicleType(ctx context.Context, vehicleType domain.VehicleType) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inputs.VehicleType = vehicleType
	s.recalculateLocked(ctx)
}

// SetPromoCode updates the promo code.
func (s *PricingSession) SetPromoCode(ctx context.Context, code string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inputs.PromoCode = code
	s.recalculateLocked(ctx)
}

// SetWeatherSurcharge toggles the weather surcharge.
func (s *PricingSession) SetWeatherSurcharge(ctx context.Context, apply bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inputs.ApplyWeatherSurcharge = apply
	s.recalculateLocked(ctx)
}

// Refresh re-derives the estimate without changing inputs.
func (s *PricingSession) Refresh(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recalculateLocked(ctx)
}

func (s *PricingSession) recalculate(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recalculateLocked(ctx)
}

// recalculateLocked re-runs the calculator; callers hold s.mu. A locked
// estimate is retained unchanged until its deadline passes; the first
// unlocked recompute after expiry replaces it (and thereby clears the
// stale lock stamp).
func (s *PricingSession) recalculateLocked(ctx context.Context) {
	if s.estimate.LockedAt(s.service.now()) {
		return
	}

	services, err := s.service.catalog.GetAll(ctx)
	if err != nil {
		logrus.WithError(err).Warn("pricing: failed to read service catalog, keeping previous estimate")
		return
	}

	s.estimate = s.service.estimator.Calculate(ctx, s.inputs, services)
}

// LockPrice freezes the current estimate for the configured duration and
// arms a deferred unlock. A second lock supersedes the first: the old
// timer is cancelled, and even a timer that already fired is ignored
// unless the stored estimate still carries its exact deadline. Returns
// nil when there is no estimate to lock.
func (s *PricingSession) LockPrice(ctx context.Context) *domain.PricingEstimate {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.estimate == nil {
		return nil
	}

	deadline := s.service.now().Add(s.service.cfg.PriceLockDuration)

	locked := s.estimate.Clone()
	locked.LockedUntil = &deadline
	s.estimate = locked

	if s.cancelUnlock != nil {
		s.cancelUnlock()
	}
	s.cancelUnlock = s.service.schedule(s.service.cfg.PriceLockDuration, func() {
		s.unlockIfDeadline(deadline)
	})

	return locked.Clone()
}

// unlockIfDeadline clears the lock stamp iff the stored estimate still
// carries the given deadline, guarding a stale timer against a newer lock.
func (s *PricingSession) unlockIfDeadline(deadline time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.estimate == nil || s.estimate.LockedUntil == nil || !s.estimate.LockedUntil.Equal(deadline) {
		return
	}
	unlocked := s.estimate.Clone()
	unlocked.LockedUntil = nil
	s.estimate = unlocked
}
