package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aqabadeal-png/canroad/internal/domain"
	"github.com/aqabadeal-png/canroad/internal/service"
)

// JobHandler handles HTTP requests for jobs.
type JobHandler struct {
	bookingService *service.BookingService
	invoiceService *service.InvoiceService
}

// NewJobHandler creates a new JobHandler.
func NewJobHandler(bookingService *service.BookingService, invoiceService *service.InvoiceService) *JobHandler {
	return &JobHandler{
		bookingService: bookingService,
		invoiceService: invoiceService,
	}
}

// CreateJobRequest is the HTTP request body for booking a job.
type CreateJobRequest struct {
	SessionID     string `json:"session_id"`
	CustomerID    string `json:"customer_id,omitempty"`
	CustomerName  string `json:"customer_name"`
	CustomerPhone string `json:"customer_phone"`
	VehicleMake   string `json:"vehicle_make,omitempty"`
	VehicleModel  string `json:"vehicle_model,omitempty"`
}

// CancelJobRequest is the HTTP request body for cancelling a job.
type CancelJobRequest struct {
	Reason string `json:"reason,omitempty"`
}

// EvaluateJobRequest is the HTTP request body for rating a completed job.
type EvaluateJobRequest struct {
	Rating int `json:"rating"`
}

// JobResponse is the HTTP representation of a job.
type JobResponse struct {
	ID                 string             `json:"id"`
	CustomerID         string             `json:"customer_id"`
	CustomerName       string             `json:"customer_name"`
	CustomerPhone      string             `json:"customer_phone"`
	MechanicID         string             `json:"mechanic_id,omitempty"`
	Status             string             `json:"status"`
	Location           LocationPayload    `json:"location"`
	ServiceType        string             `json:"service_type"`
	VehicleType        string             `json:"vehicle_type"`
	VehicleMake        string             `json:"vehicle_make,omitempty"`
	VehicleModel       string             `json:"vehicle_model,omitempty"`
	CreatedAt          string             `json:"created_at"`
	QuotedMin          int                `json:"quoted_min"`
	QuotedMax          int                `json:"quoted_max"`
	EtaMin             int                `json:"eta_min"`
	EtaMax             int                `json:"eta_max"`
	Breakdown          []LineItemResponse `json:"breakdown"`
	FinalMin           int                `json:"final_min,omitempty"`
	FinalMax           int                `json:"final_max,omitempty"`
	FinalBreakdown     []LineItemResponse `json:"final_breakdown,omitempty"`
	IsEvaluated        bool               `json:"is_evaluated"`
	Rating             int                `json:"rating,omitempty"`
	CancellationReason string             `json:"cancellation_reason,omitempty"`
}

// CreateJob handles POST /v1/jobs
func (h *JobHandler) CreateJob(c *gin.Context) {
	var req CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	job, err := h.bookingService.CreateJob(c.Request.Context(), service.CreateJobRequest{
		SessionID:     req.SessionID,
		CustomerID:    req.CustomerID,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		VehicleMake:   req.VehicleMake,
		VehicleModel:  req.VehicleModel,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, jobResponse(job))
}

// GetJob handles GET /v1/jobs/:id
func (h *JobHandler) GetJob(c *gin.Context) {
	job, err := h.bookingService.GetJob(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, jobResponse(job))
}

// GetAll handles GET /v1/jobs
func (h *JobHandler) GetAll(c *gin.Context) {
	jobs, err := h.bookingService.ListJobs(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]JobResponse, 0, len(jobs))
	for _, job := range jobs {
		response = append(response, jobResponse(job))
	}

	respondJSON(c, http.StatusOK, response)
}

// GetActive handles GET /v1/jobs/active
func (h *JobHandler) GetActive(c *gin.Context) {
	customerID := c.Query("customer_id")
	if customerID == "" {
		customerID = service.GuestCustomerID
	}

	job, err := h.bookingService.ActiveJob(c.Request.Context(), customerID)
	if err != nil {
		respondError(c, err)
		return
	}
	if job == nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "no active job"})
		return
	}

	respondJSON(c, http.StatusOK, jobResponse(job))
}

// CancelJob handles POST /v1/jobs/:id/cancel
func (h *JobHandler) CancelJob(c *gin.Context) {
	var req CancelJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	job, err := h.bookingService.Cancel(c.Request.Context(), c.Param("id"), req.Reason)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, jobResponse(job))
}

// EvaluateJob handles POST /v1/jobs/:id/evaluate
func (h *JobHandler) EvaluateJob(c *gin.Context) {
	var req EvaluateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	job, err := h.bookingService.Evaluate(c.Request.Context(), c.Param("id"), req.Rating)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, jobResponse(job))
}

// GetInvoice handles GET /v1/jobs/:id/invoice
func (h *JobHandler) GetInvoice(c *gin.Context) {
	job, err := h.bookingService.GetJob(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.String(http.StatusOK, h.invoiceService.FormatInvoice(job))
}

func jobResponse(job *domain.Job) JobResponse {
	resp := JobResponse{
		ID:            job.ID,
		CustomerID:    job.CustomerID,
		CustomerName:  job.CustomerName,
		CustomerPhone: job.CustomerPhone,
		MechanicID:    job.MechanicID,
		Status:        string(job.Status),
		Location: LocationPayload{
			Lat:     job.CustomerLocation.Lat,
			Lng:     job.CustomerLocation.Lng,
			Address: job.CustomerLocation.Address,
		},
		ServiceType:        job.ServiceType,
		VehicleType:        string(job.VehicleType),
		VehicleMake:        job.VehicleMake,
		VehicleModel:       job.VehicleModel,
		CreatedAt:          job.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		QuotedMin:          job.InitialEstimate.TotalMin,
		QuotedMax:          job.InitialEstimate.TotalMax,
		EtaMin:             job.InitialEstimate.EtaMin,
		EtaMax:             job.InitialEstimate.EtaMax,
		Breakdown:          lineItems(&job.InitialEstimate),
		IsEvaluated:        job.IsEvaluated,
		Rating:             job.Rating,
		CancellationReason: job.CancellationReason,
	}

	if job.FinalInvoice != nil {
		resp.FinalMin = job.FinalInvoice.TotalMin
		resp.FinalMax = job.FinalInvoice.TotalMax
		resp.FinalBreakdown = lineItems(job.FinalInvoice)
	}

	return resp
}
