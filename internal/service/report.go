package service

import (
	"context"
	"time"

	"github.com/aqabadeal-png/canroad/internal/domain"
	"github.com/aqabadeal-png/canroad/internal/repository"
)

// RevenueLine is one completed job in the revenue report. Amount is the
// midpoint of the billed range, final invoice when present, otherwise the
// initial estimate.
type RevenueLine struct {
	JobID        string
	CreatedAt    time.Time
	CustomerName string
	ServiceType  string
	Amount       float64
}

// RevenueReport aggregates completed jobs for the accounting dashboard.
type RevenueReport struct {
	TotalRevenue    float64
	JobsCompleted   int
	AverageJobValue float64
	Lines           []RevenueLine
}

// ReportService builds accounting reports over the job history.
type ReportService struct {
	jobRepo repository.JobRepository
}

// NewReportService creates a new ReportService.
func NewReportService(jobRepo repository.JobRepository) *ReportService {
	return &ReportService{jobRepo: jobRepo}
}

// Revenue summarizes all completed jobs.
func (s *ReportService) Revenue(ctx context.Context) (*RevenueReport, error) {
	jobs, err := s.jobRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	report := &RevenueReport{Lines: []RevenueLine{}}
	for _, job := range jobs {
		if job.Status != domain.JobStatusCompleted {
			continue
		}
		bill := &job.InitialEstimate
		if job.FinalInvoice != nil {
			bill = job.FinalInvoice
		}
		amount := float64(bill.TotalMin+bill.TotalMax) / 2
		report.Lines = append(report.Lines, RevenueLine{
			JobID:        job.ID,
			CreatedAt:    job.CreatedAt,
			CustomerName: job.CustomerName,
			ServiceType:  job.ServiceType,
			Amount:       amount,
		})
		report.TotalRevenue += amount
		report.JobsCompleted++
	}
	if report.JobsCompleted > 0 {
		report.AverageJobValue = report.TotalRevenue / float64(report.JobsCompleted)
	}
	return report, nil
}
