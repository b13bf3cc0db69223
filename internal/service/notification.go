package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/aqabadeal-png/canroad/internal/domain"
)

// NotificationType represents the type of notification.
type NotificationType string

const (
	NotificationJobCreated      NotificationType = "JOB_CREATED"
	NotificationJobAccepted     NotificationType = "JOB_ACCEPTED"
	NotificationMechanicArrived NotificationType = "MECHANIC_ARRIVED"
	NotificationJobStarted      NotificationType = "JOB_STARTED"
	NotificationJobCompleted    NotificationType = "JOB_COMPLETED"
	NotificationJobCancelled    NotificationType = "JOB_CANCELLED"
)

// Notification represents a notification to be sent.
type Notification struct {
	Type        NotificationType
	RecipientID string
	Title       string
	Message     string
	Data        map[string]interface{}
	CreatedAt   time.Time
}

// NotificationService handles notification delivery.
type NotificationService struct {
	// In a real system, this would have:
	// - Push notification client (FCM, APNS)
	// - SMS client (Twilio)
	// - WebSocket connections for real-time dashboards
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService() *NotificationService {
	return &NotificationService{}
}

// NotifyJobCreated notifies the back office about a new pending job.
func (s *NotificationService) NotifyJobCreated(ctx context.Context, job *domain.Job) error {
	return s.send(ctx, Notification{
		Type:        NotificationJobCreated,
		RecipientID: "mechanics",
		Title:       "New Roadside Request",
		Message:     fmt.Sprintf("New %s request at %s", job.ServiceType, job.CustomerLocation.Address),
		Data: map[string]interface{}{
			"job_id":       job.ID,
			"service_type": job.ServiceType,
			"vehicle_type": job.VehicleType,
			"total_min":    job.InitialEstimate.TotalMin,
			"total_max":    job.InitialEstimate.TotalMax,
		},
		CreatedAt: time.Now(),
	})
}

// NotifyJobAccepted notifies the customer that a mechanic is on the way.
func (s *NotificationService) NotifyJobAccepted(ctx context.Context, job *domain.Job, mechanic *domain.User) error {
	return s.send(ctx, Notification{
		Type:        NotificationJobAccepted,
		RecipientID: job.CustomerID,
		Title:       "Mechanic On The Way",
		Message:     fmt.Sprintf("Great news! Your mechanic, %s, has accepted your request and is now on the way.", mechanic.Name),
		Data: map[string]interface{}{
			"job_id":        job.ID,
			"mechanic_id":   mechanic.ID,
			"mechanic_name": mechanic.Name,
		},
		CreatedAt: time.Now(),
	})
}

// NotifyMechanicArrived notifies the customer that the mechanic arrived.
func (s *NotificationService) NotifyMechanicArrived(ctx context.Context, job *domain.Job) error {
	return s.send(ctx, Notification{
		Type:        NotificationMechanicArrived,
		RecipientID: job.CustomerID,
		Title:       "Mechanic Arrived",
		Message:     "Your mechanic has arrived at your location.",
		Data: map[string]interface{}{
			"job_id": job.ID,
		},
		CreatedAt: time.Now(),
	})
}

// NotifyJobStarted notifies the customer that work began.
func (s *NotificationService) NotifyJobStarted(ctx context.Context, job *domain.Job) error {
	return s.send(ctx, Notification{
		Type:        NotificationJobStarted,
		RecipientID: job.CustomerID,
		Title:       "Work Started",
		Message:     "Your mechanic has started working on your vehicle.",
		Data: map[string]interface{}{
			"job_id": job.ID,
		},
		CreatedAt: time.Now(),
	})
}

// NotifyJobCompleted notifies the customer that the job is done and the
// invoice is ready.
func (s *NotificationService) NotifyJobCompleted(ctx context.Context, job *domain.Job) error {
	message := "Your service is complete."
	if job.FinalInvoice != nil {
		message = fmt.Sprintf("Your service is complete. Invoice total: $%d-$%d CAD",
			job.FinalInvoice.TotalMin, job.FinalInvoice.TotalMax)
	}
	return s.send(ctx, Notification{
		Type:        NotificationJobCompleted,
		RecipientID: job.CustomerID,
		Title:       "Job Completed",
		Message:     message,
		Data: map[string]interface{}{
			"job_id": job.ID,
		},
		CreatedAt: time.Now(),
	})
}

// NotifyJobCancelled notifies the customer about a cancellation.
func (s *NotificationService) NotifyJobCancelled(ctx context.Context, job *domain.Job) error {
	return s.send(ctx, Notification{
		Type:        NotificationJobCancelled,
		RecipientID: job.CustomerID,
		Title:       "Job Cancelled",
		Message:     fmt.Sprintf("Your request was cancelled. Reason: %s", job.CancellationReason),
		Data: map[string]interface{}{
			"job_id": job.ID,
			"reason": job.CancellationReason,
		},
		CreatedAt: time.Now(),
	})
}

// send delivers the notification. The current implementation logs it;
// delivery channels plug in here.
func (s *NotificationService) send(ctx context.Context, n Notification) error {
	logrus.WithFields(logrus.Fields{
		"type":      n.Type,
		"recipient": n.RecipientID,
		"title":     n.Title,
	}).Info(n.Message)
	return nil
}
