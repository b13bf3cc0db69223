package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aqabadeal-png/canroad/internal/domain"
	"github.com/aqabadeal-png/canroad/internal/repository"
)

// UserHandler handles HTTP requests for users.
type UserHandler struct {
	userRepo repository.UserRepository
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userRepo repository.UserRepository) *UserHandler {
	return &UserHandler{userRepo: userRepo}
}

// UpdateUserRequest is the HTTP request body for updating a user.
type UpdateUserRequest struct {
	Name     *string `json:"name,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`
}

// MemberResponse is the HTTP representation of a user in listings.
type MemberResponse struct {
	ID       string `json:"id"`
	Role     string `json:"role"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	IsActive bool   `json:"is_active"`
}

// GetAll handles GET /v1/users
func (h *UserHandler) GetAll(c *gin.Context) {
	var (
		users []*domain.User
		err   error
	)
	if role := c.Query("role"); role != "" {
		users, err = h.userRepo.GetByRole(c.Request.Context(), domain.UserRole(role))
	} else {
		users, err = h.userRepo.GetAll(c.Request.Context())
	}
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]MemberResponse, 0, len(users))
	for _, u := range users {
		response = append(response, memberResponse(u))
	}

	respondJSON(c, http.StatusOK, response)
}

// Get handles GET /v1/users/:id
func (h *UserHandler) Get(c *gin.Context) {
	user, err := h.userRepo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, memberResponse(user))
}

// Update handles PATCH /v1/users/:id
func (h *UserHandler) Update(c *gin.Context) {
	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	ctx := c.Request.Context()
	user, err := h.userRepo.GetByID(ctx, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Phone != nil {
		user.Phone = *req.Phone
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}

	if err := h.userRepo.Update(ctx, user); err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, memberResponse(user))
}

func memberResponse(u *domain.User) MemberResponse {
	return MemberResponse{
		ID:       u.ID,
		Role:     string(u.Role),
		Name:     u.Name,
		Email:    u.Email,
		Phone:    u.Phone,
		IsActive: u.IsActive,
	}
}
