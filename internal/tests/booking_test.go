package tests

import (
	"context"
	"errors"
	"testing"

	"github.com/aqabadeal-png/canroad/internal/domain"
	"github.com/aqabadeal-png/canroad/internal/service"
)

type bookingFixture struct {
	booking  *service.BookingService
	pricing  *service.PricingService
	jobRepo  *MockJobRepository
	userRepo *MockUserRepository
	locks    *MockLockStore
}

func newBookingFixture(t *testing.T) *bookingFixture {
	t.Helper()

	pricing, clock, _, _ := newPricingFixture(t)

	jobRepo := NewMockJobRepository()
	userRepo := NewMockUserRepository()
	userRepo.AddUser(&domain.User{ID: "mech-1", Role: domain.RoleMechanic, Name: "Mike R.", IsActive: true})
	userRepo.AddUser(&domain.User{ID: "mech-off", Role: domain.RoleMechanic, Name: "Leo Martin", IsActive: false})
	userRepo.AddUser(&domain.User{ID: "admin-1", Role: domain.RoleAdmin, Name: "Admin", IsActive: true})
	locks := NewMockLockStore()

	booking := service.NewBookingService(jobRepo, userRepo, locks, pricing, nil, clock.Now)
	return &bookingFixture{
		booking:  booking,
		pricing:  pricing,
		jobRepo:  jobRepo,
		userRepo: userRepo,
		locks:    locks,
	}
}

// bookedSession returns a session with a location set, ready to book.
func (f *bookingFixture) bookedSession(ctx context.Context) string {
	session := f.pricing.CreateSession(ctx)
	session.SetLocation(ctx, testLocation())
	return session.ID()
}

// createJob books a job through the normal flow for lifecycle tests.
func (f *bookingFixture) createJob(t *testing.T, ctx context.Context) *domain.Job {
	t.Helper()
	job, err := f.booking.CreateJob(ctx, service.CreateJobRequest{
		SessionID:     f.bookedSession(ctx),
		CustomerName:  "Jane Doe",
		CustomerPhone: "+1-555-000-1111",
	})
	if err != nil {
		t.Fatalf("createJob: %v", err)
	}
	return job
}

func TestCreateJob_Validation(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newBookingFixture(t)
	sessionID := f.bookedSession(ctx)

	testCases := []struct {
		name    string
		req     service.CreateJobRequest
		wantErr error
	}{
		{
			name:    "missing name",
			req:     service.CreateJobRequest{SessionID: sessionID, CustomerPhone: "+1-555-000-1111"},
			wantErr: service.ErrInvalidCustomerName,
		},
		{
			name:    "missing phone",
			req:     service.CreateJobRequest{SessionID: sessionID, CustomerName: "Jane Doe"},
			wantErr: service.ErrInvalidCustomerPhone,
		},
		{
			name:    "unknown session",
			req:     service.CreateJobRequest{SessionID: "nope", CustomerName: "Jane Doe", CustomerPhone: "+1-555-000-1111"},
			wantErr: service.ErrSessionNotFound,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := f.booking.CreateJob(ctx, tc.req)
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("expected %v, got: %v", tc.wantErr, err)
			}
		})
	}
}

func TestCreateJob_RequiresEstimate(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newBookingFixture(t)

	// Session without a location has no estimate yet.
	session := f.pricing.CreateSession(ctx)

	_, err := f.booking.CreateJob(ctx, service.CreateJobRequest{
		SessionID:     session.ID(),
		CustomerName:  "Jane Doe",
		CustomerPhone: "+1-555-000-1111",
	})
	if !errors.Is(err, service.ErrNoEstimate) {
		t.Errorf("expected ErrNoEstimate, got: %v", err)
	}
}

func TestCreateJob_Succeeds(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newBookingFixture(t)

	job, err := f.booking.CreateJob(ctx, service.CreateJobRequest{
		SessionID:     f.bookedSession(ctx),
		CustomerName:  "Jane Doe",
		CustomerPhone: "+1-555-000-1111",
		VehicleMake:   "Honda",
		VehicleModel:  "Civic",
	})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if job.ID == "" {
		t.Error("expected a job id")
	}
	if job.Status != domain.JobStatusPending {
		t.Errorf("expected pending status, got %q", job.Status)
	}
	if job.CustomerID != service.GuestCustomerID {
		t.Errorf("expected the guest customer id, got %q", job.CustomerID)
	}
	// The quote the customer confirmed travels with the job.
	if job.InitialEstimate.TotalMin != 74 || job.InitialEstimate.TotalMax != 86 {
		t.Errorf("expected quoted range 74-86, got %d-%d", job.InitialEstimate.TotalMin, job.InitialEstimate.TotalMax)
	}
	if stored := f.jobRepo.GetJob(job.ID); stored == nil {
		t.Error("expected the job to be persisted")
	}
}

func TestCreateJob_OneActivePerCustomer(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newBookingFixture(t)
	f.createJob(t, ctx)

	_, err := f.booking.CreateJob(ctx, service.CreateJobRequest{
		SessionID:     f.bookedSession(ctx),
		CustomerName:  "Jane Doe",
		CustomerPhone: "+1-555-000-1111",
	})
	if !errors.Is(err, service.ErrActiveJobExists) {
		t.Errorf("expected ErrActiveJobExists, got: %v", err)
	}
}

func TestAccept_MechanicValidation(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newBookingFixture(t)
	job := f.createJob(t, ctx)

	testCases := []struct {
		name       string
		mechanicID string
		wantErr    error
	}{
		{"unknown mechanic", "ghost", service.ErrMechanicNotFound},
		{"non-mechanic role", "admin-1", service.ErrMechanicNotFound},
		{"inactive mechanic", "mech-off", service.ErrMechanicInactive},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.booking.Accept(ctx, job.ID, tc.mechanicID)
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("expected %v, got: %v", tc.wantErr, err)
			}
		})
	}
}

func TestAccept_Succeeds(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newBookingFixture(t)
	job := f.createJob(t, ctx)

	accepted, err := f.booking.Accept(ctx, job.ID, "mech-1")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if accepted.Status != domain.JobStatusAssigned {
		t.Errorf("expected assigned status, got %q", accepted.Status)
	}
	if accepted.MechanicID != "mech-1" {
		t.Errorf("expected mechanic mech-1, got %q", accepted.MechanicID)
	}
}

func TestAccept_ClaimedJob_Rejected(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newBookingFixture(t)
	job := f.createJob(t, ctx)

	f.locks.Hold(job.ID)

	_, err := f.booking.Accept(ctx, job.ID, "mech-1")
	if !errors.Is(err, service.ErrJobAlreadyClaimed) {
		t.Errorf("expected ErrJobAlreadyClaimed, got: %v", err)
	}
}

func TestAccept_LockStoreDown_ProceedsUnguarded(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newBookingFixture(t)
	job := f.createJob(t, ctx)

	f.locks.AcquireError = errors.New("lock store unavailable")

	accepted, err := f.booking.Accept(ctx, job.ID, "mech-1")
	if err != nil {
		t.Fatalf("expected the claim to proceed, got: %v", err)
	}
	if accepted.Status != domain.JobStatusAssigned {
		t.Errorf("expected assigned status, got %q", accepted.Status)
	}
}

func TestAccept_NonPendingJob_Rejected(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newBookingFixture(t)
	job := f.createJob(t, ctx)

	if _, err := f.booking.Accept(ctx, job.ID, "mech-1"); err != nil {
		t.Fatalf("first accept: %v", err)
	}
	_, err := f.booking.Accept(ctx, job.ID, "mech-1")
	if !errors.Is(err, service.ErrJobNotPending) {
		t.Errorf("expected ErrJobNotPending, got: %v", err)
	}
}

func TestJobLifecycle_HappyPath(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newBookingFixture(t)
	job := f.createJob(t, ctx)

	if _, err := f.booking.Accept(ctx, job.ID, "mech-1"); err != nil {
		t.Fatalf("accept: %v", err)
	}
	if _, err := f.booking.MarkArrived(ctx, job.ID, "mech-1"); err != nil {
		t.Fatalf("arrived: %v", err)
	}
	started, err := f.booking.StartWork(ctx, job.ID, "mech-1")
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if started.Status != domain.JobStatusInProgress {
		t.Errorf("expected in_progress, got %q", started.Status)
	}

	invoice := &domain.PricingEstimate{
		TotalMin: 90,
		TotalMax: 90,
		Breakdown: []domain.EstimateLineItem{
			{Label: domain.LiteralLabel("Labour"), Amount: 90},
		},
	}
	completed, err := f.booking.Complete(ctx, job.ID, "mech-1", invoice)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if completed.Status != domain.JobStatusCompleted {
		t.Errorf("expected completed, got %q", completed.Status)
	}
	if completed.FinalInvoice == nil || completed.FinalInvoice.TotalMin != 90 {
		t.Errorf("expected the final invoice persisted, got %+v", completed.FinalInvoice)
	}

	rated, err := f.booking.Evaluate(ctx, job.ID, 5)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if !rated.IsEvaluated || rated.Rating != 5 {
		t.Errorf("expected rating 5, got %+v", rated)
	}
}

func TestJobLifecycle_Guards(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newBookingFixture(t)
	job := f.createJob(t, ctx)
	invoice := &domain.PricingEstimate{TotalMin: 90, TotalMax: 90}

	// Pending job: mechanic actions are out of order.
	if _, err := f.booking.MarkArrived(ctx, job.ID, "mech-1"); !errors.Is(err, service.ErrMechanicNotAssigned) {
		t.Errorf("expected ErrMechanicNotAssigned before assignment, got: %v", err)
	}

	if _, err := f.booking.Accept(ctx, job.ID, "mech-1"); err != nil {
		t.Fatalf("accept: %v", err)
	}

	if _, err := f.booking.MarkArrived(ctx, job.ID, "mech-off"); !errors.Is(err, service.ErrMechanicNotAssigned) {
		t.Errorf("expected ErrMechanicNotAssigned for the wrong mechanic, got: %v", err)
	}
	if _, err := f.booking.StartWork(ctx, job.ID, "mech-1"); !errors.Is(err, service.ErrJobNotArrived) {
		t.Errorf("expected ErrJobNotArrived before arrival, got: %v", err)
	}
	if _, err := f.booking.Complete(ctx, job.ID, "mech-1", invoice); !errors.Is(err, service.ErrJobCannotBeCompleted) {
		t.Errorf("expected ErrJobCannotBeCompleted before arrival, got: %v", err)
	}
	if _, err := f.booking.Complete(ctx, job.ID, "mech-1", nil); !errors.Is(err, service.ErrInvalidInvoice) {
		t.Errorf("expected ErrInvalidInvoice for a nil invoice, got: %v", err)
	}

	// Arrived jobs may complete directly, skipping in_progress.
	if _, err := f.booking.MarkArrived(ctx, job.ID, "mech-1"); err != nil {
		t.Fatalf("arrived: %v", err)
	}
	if _, err := f.booking.Complete(ctx, job.ID, "mech-1", invoice); err != nil {
		t.Errorf("expected completion straight from arrived, got: %v", err)
	}
}

func TestCancel(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newBookingFixture(t)
	job := f.createJob(t, ctx)

	cancelled, err := f.booking.Cancel(ctx, job.ID, "changed my mind")
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if cancelled.Status != domain.JobStatusCancelled {
		t.Errorf("expected cancelled, got %q", cancelled.Status)
	}
	if cancelled.CancellationReason != "changed my mind" {
		t.Errorf("expected the reason recorded, got %q", cancelled.CancellationReason)
	}

	if _, err := f.booking.Cancel(ctx, job.ID, "again"); !errors.Is(err, service.ErrJobAlreadyCancelled) {
		t.Errorf("expected ErrJobAlreadyCancelled, got: %v", err)
	}
}

func TestCancel_CompletedJob_Rejected(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newBookingFixture(t)
	job := f.createJob(t, ctx)

	f.booking.Accept(ctx, job.ID, "mech-1")
	f.booking.MarkArrived(ctx, job.ID, "mech-1")
	if _, err := f.booking.Complete(ctx, job.ID, "mech-1", &domain.PricingEstimate{TotalMin: 80, TotalMax: 80}); err != nil {
		t.Fatalf("complete: %v", err)
	}

	if _, err := f.booking.Cancel(ctx, job.ID, "too late"); !errors.Is(err, service.ErrJobCannotBeCancelled) {
		t.Errorf("expected ErrJobCannotBeCancelled, got: %v", err)
	}
}

func TestEvaluate_Guards(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newBookingFixture(t)
	job := f.createJob(t, ctx)

	if _, err := f.booking.Evaluate(ctx, job.ID, 0); !errors.Is(err, service.ErrInvalidRating) {
		t.Errorf("expected ErrInvalidRating for 0, got: %v", err)
	}
	if _, err := f.booking.Evaluate(ctx, job.ID, 6); !errors.Is(err, service.ErrInvalidRating) {
		t.Errorf("expected ErrInvalidRating for 6, got: %v", err)
	}
	if _, err := f.booking.Evaluate(ctx, job.ID, 4); !errors.Is(err, service.ErrJobNotCompleted) {
		t.Errorf("expected ErrJobNotCompleted, got: %v", err)
	}

	f.booking.Accept(ctx, job.ID, "mech-1")
	f.booking.MarkArrived(ctx, job.ID, "mech-1")
	f.booking.Complete(ctx, job.ID, "mech-1", &domain.PricingEstimate{TotalMin: 80, TotalMax: 80})

	if _, err := f.booking.Evaluate(ctx, job.ID, 4); err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if _, err := f.booking.Evaluate(ctx, job.ID, 5); !errors.Is(err, service.ErrJobAlreadyEvaluated) {
		t.Errorf("expected ErrJobAlreadyEvaluated, got: %v", err)
	}
}

func TestActiveJob(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newBookingFixture(t)

	job, err := f.booking.ActiveJob(ctx, "")
	if err != nil {
		t.Fatalf("expected no error for an empty slate, got: %v", err)
	}
	if job != nil {
		t.Errorf("expected no active job, got %+v", job)
	}

	created := f.createJob(t, ctx)
	job, err = f.booking.ActiveJob(ctx, service.GuestCustomerID)
	if err != nil {
		t.Fatalf("active job: %v", err)
	}
	if job == nil || job.ID != created.ID {
		t.Errorf("expected the created job, got %+v", job)
	}

	f.booking.Cancel(ctx, created.ID, "done")
	job, _ = f.booking.ActiveJob(ctx, service.GuestCustomerID)
	if job != nil {
		t.Errorf("expected no active job after cancel, got %+v", job)
	}
}
