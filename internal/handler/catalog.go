package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aqabadeal-png/canroad/internal/domain"
	"github.com/aqabadeal-png/canroad/internal/service"
)

// CatalogHandler handles HTTP requests for the service catalog.
type CatalogHandler struct {
	catalogService *service.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(catalogService *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// ServicePayload is the HTTP representation of a catalog service.
type ServicePayload struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	Icon        string  `json:"icon,omitempty"`
	BasePrice   float64 `json:"base_price"`
}

// GetAll handles GET /v1/services
func (h *CatalogHandler) GetAll(c *gin.Context) {
	services, err := h.catalogService.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]ServicePayload, 0, len(services))
	for _, svc := range services {
		response = append(response, servicePayload(svc))
	}

	respondJSON(c, http.StatusOK, response)
}

// Get handles GET /v1/services/:id
func (h *CatalogHandler) Get(c *gin.Context) {
	svc, err := h.catalogService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, servicePayload(svc))
}

// Create handles POST /v1/services
func (h *CatalogHandler) Create(c *gin.Context) {
	var req ServicePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	svc, err := h.catalogService.Add(c.Request.Context(), domain.Service{
		ID:          req.ID,
		Title:       req.Title,
		Description: req.Description,
		Icon:        req.Icon,
		BasePrice:   req.BasePrice,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, servicePayload(svc))
}

// Update handles PUT /v1/services/:id
func (h *CatalogHandler) Update(c *gin.Context) {
	var req ServicePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	svc, err := h.catalogService.Update(c.Request.Context(), domain.Service{
		ID:          c.Param("id"),
		Title:       req.Title,
		Description: req.Description,
		Icon:        req.Icon,
		BasePrice:   req.BasePrice,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, servicePayload(svc))
}

func servicePayload(svc *domain.Service) ServicePayload {
	return ServicePayload{
		ID:          svc.ID,
		Title:       svc.Title,
		Description: svc.Description,
		Icon:        svc.Icon,
		BasePrice:   svc.BasePrice,
	}
}
