package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aqabadeal-png/canroad/internal/domain"
	"github.com/aqabadeal-png/canroad/internal/service"
)

// PricingHandler handles HTTP requests for pricing sessions.
type PricingHandler struct {
	pricingService *service.PricingService
}

// NewPricingHandler creates a new PricingHandler.
func NewPricingHandler(pricingService *service.PricingService) *PricingHandler {
	return &PricingHandler{pricingService: pricingService}
}

// UpdateEstimateRequest is the HTTP request body for updating session
// inputs. Only fields present in the body are applied.
type UpdateEstimateRequest struct {
	Location       *LocationPayload `json:"location,omitempty"`
	ServiceType    *string          `json:"service_type,omitempty"`
	VehicleType    *string          `json:"vehicle_type,omitempty"`
	PromoCode      *string          `json:"promo_code,omitempty"`
	WeatherApplied *bool            `json:"weather_applied,omitempty"`
}

// LocationPayload is a customer-picked position in request bodies.
type LocationPayload struct {
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Address string  `json:"address"`
}

// LineItemResponse is one line of an estimate breakdown.
type LineItemResponse struct {
	LabelKind string  `json:"label_kind"`
	Label     string  `json:"label"`
	Amount    float64 `json:"amount"`
	Note      string  `json:"note,omitempty"`
}

// EstimateResponse is the HTTP representation of a pricing session.
type EstimateResponse struct {
	SessionID      string             `json:"session_id"`
	ServiceType    string             `json:"service_type"`
	VehicleType    string             `json:"vehicle_type"`
	PromoCode      string             `json:"promo_code,omitempty"`
	WeatherApplied bool               `json:"weather_applied"`
	Location       *LocationPayload   `json:"location,omitempty"`
	TotalMin       int                `json:"total_min"`
	TotalMax       int                `json:"total_max"`
	EtaMin         int                `json:"eta_min"`
	EtaMax         int                `json:"eta_max"`
	Breakdown      []LineItemResponse `json:"breakdown"`
	LockedUntil    string             `json:"locked_until,omitempty"`
	HasEstimate    bool               `json:"has_estimate"`
}

// CreateSession handles POST /v1/estimates
func (h *PricingHandler) CreateSession(c *gin.Context) {
	session := h.pricingService.CreateSession(c.Request.Context())
	respondJSON(c, http.StatusCreated, sessionResponse(session))
}

// GetSession handles GET /v1/estimates/:id
func (h *PricingHandler) GetSession(c *gin.Context) {
	session, err := h.pricingService.GetSession(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, sessionResponse(session))
}

// UpdateSession handles PATCH /v1/estimates/:id
func (h *PricingHandler) UpdateSession(c *gin.Context) {
	session, err := h.pricingService.GetSession(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	var req UpdateEstimateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	ctx := c.Request.Context()
	if req.Location != nil {
		session.SetLocation(ctx, &domain.LocationData{
			Lat:     req.Location.Lat,
			Lng:     req.Location.Lng,
			Address: req.Location.Address,
		})
	}
	if req.ServiceType != nil {
		session.SetServiceType(ctx, *req.ServiceType)
	}
	if req.VehicleType != nil {
		session.SetVehicleType(ctx, domain.VehicleType(*req.VehicleType))
	}
	if req.PromoCode != nil {
		session.SetPromoCode(ctx, *req.PromoCode)
	}
	if req.WeatherApplied != nil {
		session.SetWeatherSurcharge(ctx, *req.WeatherApplied)
	}

	respondJSON(c, http.StatusOK, sessionResponse(session))
}

// LockPrice handles POST /v1/estimates/:id/lock
func (h *PricingHandler) LockPrice(c *gin.Context) {
	session, err := h.pricingService.GetSession(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	if locked := session.LockPrice(c.Request.Context()); locked == nil {
		respondError(c, service.ErrNoEstimate)
		return
	}

	respondJSON(c, http.StatusOK, sessionResponse(session))
}

// RemoveSession handles DELETE /v1/estimates/:id
func (h *PricingHandler) RemoveSession(c *gin.Context) {
	h.pricingService.RemoveSession(c.Param("id"))
	c.Status(http.StatusNoContent)
}

func sessionResponse(session *service.PricingSession) EstimateResponse {
	inputs := session.Inputs()

	resp := EstimateResponse{
		SessionID:      session.ID(),
		ServiceType:    inputs.ServiceType,
		VehicleType:    string(inputs.VehicleType),
		PromoCode:      inputs.PromoCode,
		WeatherApplied: inputs.ApplyWeatherSurcharge,
	}
	if inputs.Location != nil {
		resp.Location = &LocationPayload{
			Lat:     inputs.Location.Lat,
			Lng:     inputs.Location.Lng,
			Address: inputs.Location.Address,
		}
	}

	estimate := session.Estimate()
	if estimate == nil {
		return resp
	}

	resp.HasEstimate = true
	resp.TotalMin = estimate.TotalMin
	resp.TotalMax = estimate.TotalMax
	resp.EtaMin = estimate.EtaMin
	resp.EtaMax = estimate.EtaMax
	resp.Breakdown = lineItems(estimate)
	if estimate.LockedUntil != nil {
		resp.LockedUntil = estimate.LockedUntil.Format("2006-01-02T15:04:05Z07:00")
	}

	return resp
}

func lineItems(estimate *domain.PricingEstimate) []LineItemResponse {
	items := make([]LineItemResponse, 0, len(estimate.Breakdown))
	for _, item := range estimate.Breakdown {
		items = append(items, LineItemResponse{
			LabelKind: string(item.Label.Kind),
			Label:     item.Label.Value,
			Amount:    item.Amount,
			Note:      item.Note,
		})
	}
	return items
}
