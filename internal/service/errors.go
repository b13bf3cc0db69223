package service

import "errors"

var (
	// ErrSessionNotFound is returned when a pricing session id is unknown.
	ErrSessionNotFound = errors.New("pricing session not found")

	// ErrNoEstimate is returned when booking is attempted before a
	// location is set and an estimate exists.
	ErrNoEstimate = errors.New("no estimate available")

	// ErrInvalidCustomerName is returned when the customer name is empty.
	ErrInvalidCustomerName = errors.New("invalid customer name")

	// ErrInvalidCustomerPhone is returned when the customer phone is empty.
	ErrInvalidCustomerPhone = errors.New("invalid customer phone")

	// ErrActiveJobExists is returned when the customer already has a
	// non-terminal job.
	ErrActiveJobExists = errors.New("customer already has an active job")

	// ErrJobAlreadyClaimed is returned when another mechanic holds the
	// claim lock for a pending job.
	ErrJobAlreadyClaimed = errors.New("job already claimed by another mechanic")

	// ErrJobNotPending is returned when accepting a job that is no longer
	// pending.
	ErrJobNotPending = errors.New("job not pending")

	// ErrJobNotAssigned is returned when arrival is reported for a job
	// that is not assigned.
	ErrJobNotAssigned = errors.New("job not assigned")

	// ErrJobNotArrived is returned when work is started before arrival.
	ErrJobNotArrived = errors.New("mechanic has not arrived at job")

	// ErrJobCannotBeCompleted is returned when completing a job that is
	// not on site or in progress.
	ErrJobCannotBeCompleted = errors.New("job cannot be completed in current state")

	// ErrJobAlreadyCancelled is returned when cancelling twice.
	ErrJobAlreadyCancelled = errors.New("job already cancelled")

	// ErrJobCannotBeCancelled is returned when cancelling a completed job.
	ErrJobCannotBeCancelled = errors.New("job cannot be cancelled in current state")

	// ErrJobNotCompleted is returned when rating a job that is not done.
	ErrJobNotCompleted = errors.New("job not completed")

	// ErrJobAlreadyEvaluated is returned when rating a job twice.
	ErrJobAlreadyEvaluated = errors.New("job already evaluated")

	// ErrInvalidRating is returned when the rating is outside 1..5.
	ErrInvalidRating = errors.New("rating must be between 1 and 5")

	// ErrInvalidInvoice is returned when completing a job without a final
	// invoice.
	ErrInvalidInvoice = errors.New("invalid final invoice")

	// ErrMechanicNotFound is returned when the mechanic id does not
	// resolve to a mechanic account.
	ErrMechanicNotFound = errors.New("mechanic not found")

	// ErrMechanicInactive is returned when the mechanic account is
	// deactivated.
	ErrMechanicInactive = errors.New("mechanic is not active")

	// ErrMechanicNotAssigned is returned when a mechanic acts on a job
	// assigned to someone else.
	ErrMechanicNotAssigned = errors.New("mechanic not assigned to this job")

	// ErrInvalidLocation is returned when coordinates are out of range.
	ErrInvalidLocation = errors.New("invalid location")

	// ErrInvalidCredentials is returned on any failed login.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUnauthorized is returned when a token does not resolve to an
	// active user.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden is returned when the user's role does not allow the
	// operation.
	ErrForbidden = errors.New("forbidden")

	// ErrServiceExists is returned when adding a catalog row with a taken id.
	ErrServiceExists = errors.New("service already exists")

	// ErrInvalidServiceTitle is returned when a catalog title is empty.
	ErrInvalidServiceTitle = errors.New("invalid service title")

	// ErrInvalidBasePrice is returned when a catalog base price is negative.
	ErrInvalidBasePrice = errors.New("base price must be non-negative")
)
