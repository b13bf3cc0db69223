package domain

import "time"

// JobStatus represents the current status of a roadside job.
type JobStatus string

const (
	JobStatusPending    JobStatus = "pending"
	JobStatusAssigned   JobStatus = "assigned"
	JobStatusArrived    JobStatus = "arrived"
	JobStatusInProgress JobStatus = "in_progress"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusCancelled  JobStatus = "cancelled"
)

// Terminal reports whether no further transitions are allowed.
func (s JobStatus) Terminal() bool {
	return s == JobStatusCompleted || s == JobStatusCancelled
}

// Active reports whether the job still occupies the customer's single
// active slot.
func (s JobStatus) Active() bool {
	return !s.Terminal()
}

// Job represents a roadside-assistance request through its whole lifecycle.
// InitialEstimate is the quote the booking was confirmed with;
// FinalInvoice is set when the mechanic completes the work.
type Job struct {
	ID                 string
	CustomerID         string
	CustomerName       string
	CustomerPhone      string
	MechanicID         string
	Status             JobStatus
	CustomerLocation   LocationData
	CreatedAt          time.Time
	InitialEstimate    PricingEstimate
	FinalInvoice       *PricingEstimate
	ServiceType        string
	VehicleType        VehicleType
	VehicleMake        string
	VehicleModel       string
	IsEvaluated        bool
	Rating             int
	CancellationReason string
}

// MechanicLocation is a mechanic's last reported position.
type MechanicLocation struct {
	MechanicID string    `json:"mechanic_id"`
	Lat        float64   `json:"lat"`
	Lng        float64   `json:"lng"`
	Heading    float64   `json:"heading,omitempty"`
	Speed      float64   `json:"speed,omitempty"`
	UpdatedAt  time.Time `json:"updated_at"`
}
