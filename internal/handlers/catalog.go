package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pferate/puppy-website/internal/dto"
	apierrors "github.com/pferate/puppy-website/internal/errors"
	"github.com/pferate/puppy-website/internal/middleware"
	"github.com/pferate/puppy-website/internal/models"
	"github.com/pferate/puppy-website/internal/services"
)

// CatalogHandler exposes skills and the category tree.
type CatalogHandler struct {
	catalogService *services.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(catalogService *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
	}
}

// ListCategories returns every category with its lineage.
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	categories, err := h.catalogService.ListCategories()
	if err != nil {
		respondCatalogError(c, err)
		return
	}

	categoryDTOs := make([]dto.CategoryDTO, 0, len(categories))
	for _, category := range categories {
		categoryDTO, err := h.categoryDTO(category)
		if err != nil {
			respondCatalogError(c, err)
			return
		}
		categoryDTOs = append(categoryDTOs, categoryDTO)
	}
	c.JSON(http.StatusOK, gin.H{"categories": categoryDTOs})
}

// GetCategory returns a category with its lineage.
func (h *CatalogHandler) GetCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	category, err := h.catalogService.GetCategory(id)
	if err != nil {
		respondCatalogError(c, err)
		return
	}
	categoryDTO, err := h.categoryDTO(*category)
	if err != nil {
		respondCatalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, categoryDTO)
}

// CreateCategory creates a category, optionally under a parent.
func (h *CatalogHandler) CreateCategory(c *gin.Context) {
	type CreateCategoryRequest struct {
		Name        string  `json:"name" binding:"required,max=64"`
		Description string  `json:"description"`
		ParentID    *uint64 `json:"parent_id"`
	}

	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	category, err := h.catalogService.CreateCategory(services.CreateCategoryInput{
		Name:        req.Name,
		Description: req.Description,
		ParentID:    req.ParentID,
	})
	if err != nil {
		respondCatalogError(c, err)
		return
	}
	categoryDTO, err := h.categoryDTO(*category)
	if err != nil {
		respondCatalogError(c, err)
		return
	}
	c.JSON(http.StatusCreated, categoryDTO)
}

// SetParent moves a category. A null parent_id makes it a root.
func (h *CatalogHandler) SetParent(c *gin.Context) {
	type SetParentRequest struct {
		ParentID *uint64 `json:"parent_id"`
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req SetParentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	category, err := h.catalogService.SetParent(id, req.ParentID)
	if err != nil {
		respondCatalogError(c, err)
		return
	}
	categoryDTO, err := h.categoryDTO(*category)
	if err != nil {
		respondCatalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, categoryDTO)
}

// ListSkills returns every skill.
func (h *CatalogHandler) ListSkills(c *gin.Context) {
	skills, err := h.catalogService.ListSkills()
	if err != nil {
		respondCatalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"skills": toSkillDTOs(skills)})
}

// CreateSkill creates a skill filed under the given categories.
func (h *CatalogHandler) CreateSkill(c *gin.Context) {
	type CreateSkillRequest struct {
		Name        string   `json:"name" binding:"required,max=64"`
		Description string   `json:"description"`
		CategoryIDs []uint64 `json:"category_ids"`
	}

	var req CreateSkillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	skill, err := h.catalogService.CreateSkill(services.CreateSkillInput{
		Name:        req.Name,
		Description: req.Description,
		CategoryIDs: req.CategoryIDs,
	})
	if err != nil {
		respondCatalogError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToSkillDTO(*skill))
}

// ListMySkills returns the current user's skills.
func (h *CatalogHandler) ListMySkills(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	skills, err := h.catalogService.UserSkills(userID)
	if err != nil {
		respondCatalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"skills": toSkillDTOs(skills)})
}

// AddMySkill records that the current user holds a skill.
func (h *CatalogHandler) AddMySkill(c *gin.Context) {
	type AddSkillRequest struct {
		SkillID uint64 `json:"skill_id" binding:"required"`
	}

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	var req AddSkillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.catalogService.AddUserSkill(userID, req.SkillID); err != nil {
		respondCatalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Skill added"})
}

func (h *CatalogHandler) categoryDTO(category models.Category) (dto.CategoryDTO, error) {
	lineage, err := h.catalogService.Lineage(category.ID)
	if err != nil {
		return dto.CategoryDTO{}, err
	}
	return dto.ToCategoryDTO(category, lineage), nil
}

func toSkillDTOs(skills []models.Skill) []dto.SkillDTO {
	skillDTOs := make([]dto.SkillDTO, len(skills))
	for i, skill := range skills {
		skillDTOs[i] = dto.ToSkillDTO(skill)
	}
	return skillDTOs
}

func respondCatalogError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidCategoryName),
		errors.Is(err, services.ErrInvalidSkillName):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrCategoryCycle):
		apierrors.InvalidOperation(c, err.Error())
	case errors.Is(err, services.ErrCategoryNotFound),
		errors.Is(err, services.ErrSkillNotFound),
		errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		log.Printf("catalog handler error: %v", err)
		apierrors.InternalError(c, "Internal server error")
	}
}
