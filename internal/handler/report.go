package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/aqabadeal-png/canroad/internal/service"
)

// ReportHandler handles HTTP requests for accounting reports.
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// RevenueLineResponse is one completed job in the revenue report.
type RevenueLineResponse struct {
	JobID        string    `json:"job_id"`
	CreatedAt    time.Time `json:"created_at"`
	CustomerName string    `json:"customer_name"`
	ServiceType  string    `json:"service_type"`
	Amount       float64   `json:"amount"`
}

// RevenueReportResponse is the HTTP response body for the revenue report.
type RevenueReportResponse struct {
	TotalRevenue    float64               `json:"total_revenue"`
	JobsCompleted   int                   `json:"jobs_completed"`
	AverageJobValue float64               `json:"average_job_value"`
	Lines           []RevenueLineResponse `json:"lines"`
}

// GetRevenue handles GET /v1/reports/revenue.
func (h *ReportHandler) GetRevenue(c *gin.Context) {
	report, err := h.reportService.Revenue(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	lines := make([]RevenueLineResponse, 0, len(report.Lines))
	for _, line := range report.Lines {
		lines = append(lines, RevenueLineResponse{
			JobID:        line.JobID,
			CreatedAt:    line.CreatedAt,
			CustomerName: line.CustomerName,
			ServiceType:  line.ServiceType,
			Amount:       line.Amount,
		})
	}

	respondJSON(c, http.StatusOK, RevenueReportResponse{
		TotalRevenue:    report.TotalRevenue,
		JobsCompleted:   report.JobsCompleted,
		AverageJobValue: report.AverageJobValue,
		Lines:           lines,
	})
}
