package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aqabadeal-png/canroad/internal/domain"
	"github.com/aqabadeal-png/canroad/internal/service"
)

// MechanicHandler handles HTTP requests for the mechanic side of jobs.
type MechanicHandler struct {
	bookingService  *service.BookingService
	trackingService *service.TrackingService
}

// NewMechanicHandler creates a new MechanicHandler.
func NewMechanicHandler(bookingService *service.BookingService, trackingService *service.TrackingService) *MechanicHandler {
	return &MechanicHandler{
		bookingService:  bookingService,
		trackingService: trackingService,
	}
}

// AcceptJobRequest is the HTTP request body for accepting a job.
type AcceptJobRequest struct {
	JobID string `json:"job_id"`
}

// CompleteJobRequest is the HTTP request body for completing a job with
// its final invoice.
type CompleteJobRequest struct {
	TotalMin  int                `json:"total_min"`
	TotalMax  int                `json:"total_max"`
	Breakdown []CompleteLineItem `json:"breakdown"`
}

// CompleteLineItem is one invoice line in a completion request.
type CompleteLineItem struct {
	Label  string  `json:"label"`
	Amount float64 `json:"amount"`
	Note   string  `json:"note,omitempty"`
}

// UpdateLocationRequest is the HTTP request body for updating mechanic location.
type UpdateLocationRequest struct {
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Heading float64 `json:"heading,omitempty"`
	Speed   float64 `json:"speed,omitempty"`
}

// AcceptJob handles POST /v1/mechanics/:id/accept
func (h *MechanicHandler) AcceptJob(c *gin.Context) {
	var req AcceptJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	job, err := h.bookingService.Accept(c.Request.Context(), req.JobID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, jobResponse(job))
}

// MarkArrived handles POST /v1/mechanics/:id/jobs/:jobID/arrived
func (h *MechanicHandler) MarkArrived(c *gin.Context) {
	job, err := h.bookingService.MarkArrived(c.Request.Context(), c.Param("jobID"), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, jobResponse(job))
}

// StartWork handles POST /v1/mechanics/:id/jobs/:jobID/start
func (h *MechanicHandler) StartWork(c *gin.Context) {
	job, err := h.bookingService.StartWork(c.Request.Context(), c.Param("jobID"), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, jobResponse(job))
}

// CompleteJob handles POST /v1/mechanics/:id/jobs/:jobID/complete
func (h *MechanicHandler) CompleteJob(c *gin.Context) {
	var req CompleteJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	invoice := &domain.PricingEstimate{
		TotalMin: req.TotalMin,
		TotalMax: req.TotalMax,
	}
	for _, item := range req.Breakdown {
		invoice.Breakdown = append(invoice.Breakdown, domain.EstimateLineItem{
			Label:  domain.LiteralLabel(item.Label),
			Amount: item.Amount,
			Note:   item.Note,
		})
	}

	job, err := h.bookingService.Complete(c.Request.Context(), c.Param("jobID"), c.Param("id"), invoice)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, jobResponse(job))
}

// UpdateLocation handles POST /v1/mechanics/:id/location
func (h *MechanicHandler) UpdateLocation(c *gin.Context) {
	var req UpdateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	location, err := h.trackingService.UpdateLocation(c.Request.Context(), c.Param("id"), req.Lat, req.Lng, req.Heading, req.Speed)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, location)
}

// GetLocation handles GET /v1/mechanics/:id/location
func (h *MechanicHandler) GetLocation(c *gin.Context) {
	location, err := h.trackingService.Location(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, location)
}

// GetRoster handles GET /v1/mechanics/locations
func (h *MechanicHandler) GetRoster(c *gin.Context) {
	roster, err := h.trackingService.Roster(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, roster)
}
