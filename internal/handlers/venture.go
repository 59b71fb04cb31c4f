package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pferate/puppy-website/internal/dto"
	apierrors "github.com/pferate/puppy-website/internal/errors"
	"github.com/pferate/puppy-website/internal/middleware"
	"github.com/pferate/puppy-website/internal/services"
)

// VentureHandler exposes ventures, companies and resources.
type VentureHandler struct {
	ventureService *services.VentureService
}

// NewVentureHandler creates a new VentureHandler.
func NewVentureHandler(ventureService *services.VentureService) *VentureHandler {
	return &VentureHandler{
		ventureService: ventureService,
	}
}

// CreateVenture creates a venture owned by the current user.
func (h *VentureHandler) CreateVenture(c *gin.Context) {
	type CreateVentureRequest struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
		PublicInfo  string `json:"public_info"`
		Student     *bool  `json:"student_venture"`
		Alumni      bool   `json:"alumni_venture"`
		External    bool   `json:"external_venture"`
	}

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	var req CreateVentureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	venture, err := h.ventureService.CreateVenture(services.CreateVentureInput{
		Name:        req.Name,
		Description: req.Description,
		PublicInfo:  req.PublicInfo,
		CreatorID:   userID,
		Student:     req.Student,
		Alumni:      req.Alumni,
		External:    req.External,
	})
	if err != nil {
		respondVentureError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToVentureDTO(*venture))
}

// GetVenture returns a venture with its contributions.
func (h *VentureHandler) GetVenture(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	venture, err := h.ventureService.GetVenture(id)
	if err != nil {
		respondVentureError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToVentureDTO(*venture))
}

// ApproveVenture records the current administrator's approval.
func (h *VentureHandler) ApproveVenture(c *gin.Context) {
	approverID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	venture, err := h.ventureService.ApproveVenture(id, approverID)
	if err != nil {
		respondVentureError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToVentureDTO(*venture))
}

// ContributeSkill records that the current user provides a skill to a venture.
func (h *VentureHandler) ContributeSkill(c *gin.Context) {
	type ContributeSkillRequest struct {
		SkillID uint64 `json:"skill_id" binding:"required"`
	}

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req ContributeSkillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	contribution, err := h.ventureService.ContributeSkill(id, userID, req.SkillID)
	if err != nil {
		respondVentureError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": contribution.ID, "name": contribution.Name()})
}

// ContributeResource records that a company provides a resource to a venture.
func (h *VentureHandler) ContributeResource(c *gin.Context) {
	type ContributeResourceRequest struct {
		CompanyID  uint64 `json:"company_id" binding:"required"`
		ResourceID uint64 `json:"resource_id" binding:"required"`
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req ContributeResourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	contribution, err := h.ventureService.ContributeResource(id, req.CompanyID, req.ResourceID)
	if err != nil {
		respondVentureError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": contribution.ID, "name": contribution.Name()})
}

// CreateCompany creates a company owned by the current user.
func (h *VentureHandler) CreateCompany(c *gin.Context) {
	type CreateCompanyRequest struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
	}

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	var req CreateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	company, err := h.ventureService.CreateCompany(req.Name, req.Description, userID)
	if err != nil {
		respondVentureError(c, err)
		return
	}
	c.JSON(http.StatusCreated, company)
}

// GetCompany returns a company with its resources.
func (h *VentureHandler) GetCompany(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	company, err := h.ventureService.GetCompany(id)
	if err != nil {
		respondVentureError(c, err)
		return
	}
	c.JSON(http.StatusOK, company)
}

// ApproveCompany records the current administrator's approval.
func (h *VentureHandler) ApproveCompany(c *gin.Context) {
	approverID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	company, err := h.ventureService.ApproveCompany(id, approverID)
	if err != nil {
		respondVentureError(c, err)
		return
	}
	c.JSON(http.StatusOK, company)
}

// AddCompanyResource attaches a resource to a company.
func (h *VentureHandler) AddCompanyResource(c *gin.Context) {
	type AddResourceRequest struct {
		ResourceID uint64 `json:"resource_id" binding:"required"`
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req AddResourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.ventureService.AddCompanyResource(id, req.ResourceID); err != nil {
		respondVentureError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Resource added"})
}

// CreateResource creates a resource owned by the current user.
func (h *VentureHandler) CreateResource(c *gin.Context) {
	type CreateResourceRequest struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
	}

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	var req CreateResourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	resource, err := h.ventureService.CreateResource(req.Name, req.Description, userID)
	if err != nil {
		respondVentureError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resource)
}

// ApproveResource records the current administrator's approval.
func (h *VentureHandler) ApproveResource(c *gin.Context) {
	approverID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	resource, err := h.ventureService.ApproveResource(id, approverID)
	if err != nil {
		respondVentureError(c, err)
		return
	}
	c.JSON(http.StatusOK, resource)
}

func respondVentureError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNameRequired):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrVentureNotFound),
		errors.Is(err, services.ErrCompanyNotFound),
		errors.Is(err, services.ErrResourceNotFound),
		errors.Is(err, services.ErrSkillNotFound),
		errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		log.Printf("venture handler error: %v", err)
		apierrors.InternalError(c, "Internal server error")
	}
}
