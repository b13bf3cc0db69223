package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/aqabadeal-png/canroad/internal/domain"
	"github.com/aqabadeal-png/canroad/internal/redis"
	"github.com/aqabadeal-png/canroad/internal/repository"
)

// jobClaimTTL bounds how long one mechanic's claim attempt can exclude
// another while the status update is in flight.
const jobClaimTTL = 10 * time.Second

// GuestCustomerID is the customer id used for unauthenticated bookings.
const GuestCustomerID = "cust-guest"

// BookingService handles the job lifecycle: creation from a pricing
// session, mechanic claiming, arrival, completion with a final invoice,
// cancellation and evaluation.
type BookingService struct {
	jobRepo             repository.JobRepository
	userRepo            repository.UserRepository
	lockStore           redis.LockStoreInterface
	pricing             *PricingService
	notificationService *NotificationService
	now                 func() time.Time
}

// NewBookingService creates a new BookingService. A nil clock defaults to
// time.Now.
func NewBookingService(
	jobRepo repository.JobRepository,
	userRepo repository.UserRepository,
	lockStore redis.LockStoreInterface,
	pricing *PricingService,
	notificationService *NotificationService,
	clock func() time.Time,
) *BookingService {
	if clock == nil {
		clock = time.Now
	}
	return &BookingService{
		jobRepo:             jobRepo,
		userRepo:            userRepo,
		lockStore:           lockStore,
		pricing:             pricing,
		notificationService: notificationService,
		now:                 clock,
	}
}

// CreateJobRequest contains the parameters for creating a job.
type CreateJobRequest struct {
	SessionID     string
	CustomerID    string // empty means guest
	CustomerName  string
	CustomerPhone string
	VehicleMake   string
	VehicleModel  string
}

// CreateJob books a job from a pricing session's current estimate. The
// estimate's min/max totals are persisted on the job as the quote the
// customer confirmed. A customer may hold only one active job.
func (s *BookingService) CreateJob(ctx context.Context, req CreateJobRequest) (*domain.Job, error) {
	if req.CustomerName == "" {
		return nil, ErrInvalidCustomerName
	}
	if req.CustomerPhone == "" {
		return nil, ErrInvalidCustomerPhone
	}

	session, err := s.pricing.GetSession(req.SessionID)
	if err != nil {
		return nil, err
	}

	inputs, estimate := session.Snapshot()
	if inputs.Location == nil || estimate == nil {
		return nil, ErrNoEstimate
	}

	customerID := req.CustomerID
	if customerID == "" {
		customerID = GuestCustomerID
	}

	if _, err := s.jobRepo.GetActiveByCustomer(ctx, customerID); err == nil {
		return nil, ErrActiveJobExists
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	job := &domain.Job{
		ID:               uuid.New().String(),
		CustomerID:       customerID,
		CustomerName:     req.CustomerName,
		CustomerPhone:    req.CustomerPhone,
		Status:           domain.JobStatusPending,
		CustomerLocation: *inputs.Location,
		CreatedAt:        s.now(),
		InitialEstimate:  *estimate,
		ServiceType:      inputs.ServiceType,
		VehicleType:      inputs.VehicleType,
		VehicleMake:      req.VehicleMake,
		VehicleModel:     req.VehicleModel,
	}

	if err := s.jobRepo.Create(ctx, job); err != nil {
		return nil, err
	}

	if s.notificationService != nil {
		_ = s.notificationService.NotifyJobCreated(ctx, job)
	}

	return job, nil
}

// Accept assigns a pending job to a mechanic. A claim lock prevents two
// mechanics from taking the same job.
func (s *BookingService) Accept(ctx context.Context, jobID, mechanicID string) (*domain.Job, error) {
	mechanic, err := s.mechanic(ctx, mechanicID)
	if err != nil {
		return nil, err
	}

	if s.lockStore != nil {
		acquired, err := s.lockStore.AcquireJobLock(ctx, jobID, jobClaimTTL)
		if err != nil {
			// Lock store unavailable: proceed unguarded rather than
			// blocking all claims.
			logrus.WithError(err).Warn("booking: job claim lock unavailable")
		} else if !acquired {
			return nil, ErrJobAlreadyClaimed
		} else {
			defer func() {
				_ = s.lockStore.ReleaseJobLock(ctx, jobID)
			}()
		}
	}

	job, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job.Status != domain.JobStatusPending {
		return nil, ErrJobNotPending
	}

	job.Status = domain.JobStatusAssigned
	job.MechanicID = mechanic.ID
	if err := s.jobRepo.Update(ctx, job); err != nil {
		return nil, err
	}

	if s.notificationService != nil {
		_ = s.notificationService.NotifyJobAccepted(ctx, job, mechanic)
	}

	return job, nil
}

// MarkArrived records that the assigned mechanic reached the customer.
func (s *BookingService) MarkArrived(ctx context.Context, jobID, mechanicID string) (*domain.Job, error) {
	job, err := s.assignedJob(ctx, jobID, mechanicID)
	if err != nil {
		return nil, err
	}
	if job.Status != domain.JobStatusAssigned {
		return nil, ErrJobNotAssigned
	}

	job.Status = domain.JobStatusArrived
	if err := s.jobRepo.Update(ctx, job); err != nil {
		return nil, err
	}

	if s.notificationService != nil {
		_ = s.notificationService.NotifyMechanicArrived(ctx, job)
	}

	return job, nil
}

// StartWork moves an arrived job into progress.
func (s *BookingService) StartWork(ctx context.Context, jobID, mechanicID string) (*domain.Job, error) {
	job, err := s.assignedJob(ctx, jobID, mechanicID)
	if err != nil {
		return nil, err
	}
	if job.Status != domain.JobStatusArrived {
		return nil, ErrJobNotArrived
	}

	job.Status = domain.JobStatusInProgress
	if err := s.jobRepo.Update(ctx, job); err != nil {
		return nil, err
	}

	if s.notificationService != nil {
		_ = s.notificationService.NotifyJobStarted(ctx, job)
	}

	return job, nil
}

// Complete finishes a job with the mechanic's final invoice.
func (s *BookingService) Complete(ctx context.Context, jobID, mechanicID string, finalInvoice *domain.PricingEstimate) (*domain.Job, error) {
	if finalInvoice == nil {
		return nil, ErrInvalidInvoice
	}

	job, err := s.assignedJob(ctx, jobID, mechanicID)
	if err != nil {
		return nil, err
	}
	if job.Status != domain.JobStatusArrived && job.Status != domain.JobStatusInProgress {
		return nil, ErrJobCannotBeCompleted
	}

	job.Status = domain.JobStatusCompleted
	job.FinalInvoice = finalInvoice.Clone()
	if err := s.jobRepo.Update(ctx, job); err != nil {
		return nil, err
	}

	if s.notificationService != nil {
		_ = s.notificationService.NotifyJobCompleted(ctx, job)
	}

	return job, nil
}

// Cancel abandons a non-terminal job with a reason. Mechanics rejecting a
// claimed job go through the same path.
func (s *BookingService) Cancel(ctx context.Context, jobID, reason string) (*domain.Job, error) {
	job, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	switch job.Status {
	case domain.JobStatusCancelled:
		return nil, ErrJobAlreadyCancelled
	case domain.JobStatusCompleted:
		return nil, ErrJobCannotBeCancelled
	}

	job.Status = domain.JobStatusCancelled
	job.CancellationReason = reason
	if err := s.jobRepo.Update(ctx, job); err != nil {
		return nil, err
	}

	if s.notificationService != nil {
		_ = s.notificationService.NotifyJobCancelled(ctx, job)
	}

	return job, nil
}

// Evaluate records the customer's rating for a completed job, once.
func (s *BookingService) Evaluate(ctx context.Context, jobID string, rating int) (*domain.Job, error) {
	if rating < 1 || rating > 5 {
		return nil, ErrInvalidRating
	}

	job, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job.Status != domain.JobStatusCompleted {
		return nil, ErrJobNotCompleted
	}
	if job.IsEvaluated {
		return nil, ErrJobAlreadyEvaluated
	}

	job.IsEvaluated = true
	job.Rating = rating
	if err := s.jobRepo.Update(ctx, job); err != nil {
		return nil, err
	}

	return job, nil
}

// GetJob retrieves a job by id.
func (s *BookingService) GetJob(ctx context.Context, jobID string) (*domain.Job, error) {
	return s.jobRepo.GetByID(ctx, jobID)
}

// ListJobs retrieves all jobs, newest first.
func (s *BookingService) ListJobs(ctx context.Context) ([]*domain.Job, error) {
	return s.jobRepo.GetAll(ctx)
}

// ActiveJob returns the customer's single non-terminal job, or nil.
func (s *BookingService) ActiveJob(ctx context.Context, customerID string) (*domain.Job, error) {
	if customerID == "" {
		customerID = GuestCustomerID
	}
	job, err := s.jobRepo.GetActiveByCustomer(ctx, customerID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	return job, err
}

// mechanic resolves and validates a mechanic account.
func (s *BookingService) mechanic(ctx context.Context, mechanicID string) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, mechanicID)
	if err != nil || user.Role != domain.RoleMechanic {
		return nil, ErrMechanicNotFound
	}
	if !user.IsActive {
		return nil, ErrMechanicInactive
	}
	return user, nil
}

// assignedJob loads a job and verifies the acting mechanic is assigned.
func (s *BookingService) assignedJob(ctx context.Context, jobID, mechanicID string) (*domain.Job, error) {
	job, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job.MechanicID != mechanicID {
		return nil, ErrMechanicNotAssigned
	}
	return job, nil
}
