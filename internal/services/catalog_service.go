package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pferate/puppy-website/internal/constants"
	"github.com/pferate/puppy-website/internal/models"
	"github.com/pferate/puppy-website/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrCategoryNotFound    = errors.New("category not found")
	ErrCategoryCycle       = errors.New("category parent chain contains a cycle")
	ErrInvalidCategoryName = errors.New("category name cannot be empty")
	ErrSkillNotFound       = errors.New("skill not found")
	ErrInvalidSkillName    = errors.New("skill name cannot be empty")
)

// CatalogService manages skills and the category taxonomy they live in.
type CatalogService struct {
	categoryRepo repository.CategoryRepository
	userRepo     repository.UserRepository
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(categoryRepo repository.CategoryRepository, userRepo repository.UserRepository) *CatalogService {
	return &CatalogService{
		categoryRepo: categoryRepo,
		userRepo:     userRepo,
	}
}

// CreateCategoryInput represents parameters to create a new category.
type CreateCategoryInput struct {
	Name        string
	Description string
	ParentID    *uint64
}

// CreateCategory creates a category under an optional, existing parent.
func (s *CatalogService) CreateCategory(input CreateCategoryInput) (*models.Category, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrInvalidCategoryName
	}
	if input.ParentID != nil {
		if _, err := s.GetCategory(*input.ParentID); err != nil {
			return nil, err
		}
	}

	category := &models.Category{
		Name:        name,
		Description: input.Description,
		ParentID:    input.ParentID,
	}
	if err := s.categoryRepo.CreateCategory(category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return category, nil
}

// GetCategory retrieves a category by ID.
func (s *CatalogService) GetCategory(id uint64) (*models.Category, error) {
	category, err := s.categoryRepo.FindCategoryByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to find category: %w", err)
	}
	return category, nil
}

// ListCategories returns all categories ordered by name.
func (s *CatalogService) ListCategories() ([]models.Category, error) {
	categories, err := s.categoryRepo.ListCategories()
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// SetParent moves a category under parentID, or to the root when parentID is
// nil. Moves that would make the category its own ancestor are rejected.
func (s *CatalogService) SetParent(categoryID uint64, parentID *uint64) (*models.Category, error) {
	category, err := s.GetCategory(categoryID)
	if err != nil {
		return nil, err
	}

	if parentID != nil {
		ancestors, err := s.ancestry(*parentID)
		if err != nil {
			return nil, err
		}
		for _, a := range ancestors {
			if a.ID == categoryID {
				return nil, ErrCategoryCycle
			}
		}
	}

	category.ParentID = parentID
	if err := s.categoryRepo.UpdateCategory(category); err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}
	return category, nil
}

// LineageNames returns category names from the root down to categoryID.
func (s *CatalogService) LineageNames(categoryID uint64) ([]string, error) {
	chain, err := s.ancestry(categoryID)
	if err != nil {
		return nil, err
	}

	names := make([]string, len(chain))
	for i, c := range chain {
		names[len(chain)-1-i] = c.Name
	}
	return names, nil
}

// Lineage renders the root-to-leaf path of a category, e.g. "A > B > C".
func (s *CatalogService) Lineage(categoryID uint64) (string, error) {
	names, err := s.LineageNames(categoryID)
	if err != nil {
		return "", err
	}
	return strings.Join(names, constants.CategoryLineageSeparator), nil
}

// ancestry walks from id up to the root, leaf first.
func (s *CatalogService) ancestry(id uint64) ([]models.Category, error) {
	visited := make(map[uint64]struct{})
	var chain []models.Category

	next := &id
	for next != nil {
		if _, ok := visited[*next]; ok {
			return nil, ErrCategoryCycle
		}
		visited[*next] = struct{}{}

		category, err := s.GetCategory(*next)
		if err != nil {
			return nil, err
		}
		chain = append(chain, *category)
		next = category.ParentID
	}
	return chain, nil
}

// CreateSkillInput represents parameters to create a new skill.
type CreateSkillInput struct {
	Name        string
	Description string
	CategoryIDs []uint64
}

// CreateSkill creates a skill and files it under the given categories.
func (s *CatalogService) CreateSkill(input CreateSkillInput) (*models.Skill, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrInvalidSkillName
	}
	for _, categoryID := range input.CategoryIDs {
		if _, err := s.GetCategory(categoryID); err != nil {
			return nil, err
		}
	}

	skill := &models.Skill{
		Name:        name,
		Description: input.Description,
	}
	if err := s.categoryRepo.CreateSkill(skill); err != nil {
		return nil, fmt.Errorf("failed to create skill: %w", err)
	}

	for _, categoryID := range input.CategoryIDs {
		if err := s.categoryRepo.AddSkillCategory(skill.ID, categoryID); err != nil {
			return nil, fmt.Errorf("failed to add skill to category: %w", err)
		}
	}
	return s.GetSkill(skill.ID)
}

// GetSkill retrieves a skill with its categories and holders.
func (s *CatalogService) GetSkill(id uint64) (*models.Skill, error) {
	skill, err := s.categoryRepo.FindSkillByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSkillNotFound
		}
		return nil, fmt.Errorf("failed to find skill: %w", err)
	}
	return skill, nil
}

// ListSkills returns all skills ordered by name.
func (s *CatalogService) ListSkills() ([]models.Skill, error) {
	skills, err := s.categoryRepo.ListSkills()
	if err != nil {
		return nil, fmt.Errorf("failed to list skills: %w", err)
	}
	return skills, nil
}

// AddSkillToCategory files a skill under a category. Repeating it is a no-op.
func (s *CatalogService) AddSkillToCategory(skillID, categoryID uint64) error {
	if _, err := s.GetSkill(skillID); err != nil {
		return err
	}
	if _, err := s.GetCategory(categoryID); err != nil {
		return err
	}
	if err := s.categoryRepo.AddSkillCategory(skillID, categoryID); err != nil {
		return fmt.Errorf("failed to add skill to category: %w", err)
	}
	return nil
}

// AddUserSkill records that a user holds a skill. Repeating it is a no-op.
func (s *CatalogService) AddUserSkill(userID, skillID uint64) error {
	if _, err := s.userRepo.FindByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to find user: %w", err)
	}
	if _, err := s.GetSkill(skillID); err != nil {
		return err
	}
	if err := s.userRepo.AddSkill(userID, skillID); err != nil {
		return fmt.Errorf("failed to add skill to user: %w", err)
	}
	return nil
}

// UserSkills lists the skills a user holds, ordered by name.
func (s *CatalogService) UserSkills(userID uint64) ([]models.Skill, error) {
	skills, err := s.userRepo.ListSkills(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list user skills: %w", err)
	}
	return skills, nil
}
