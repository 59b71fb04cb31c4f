package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pferate/puppy-website/internal/models"
	"github.com/pferate/puppy-website/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrVentureNotFound  = errors.New("venture not found")
	ErrCompanyNotFound  = errors.New("company not found")
	ErrResourceNotFound = errors.New("resource not found")
	ErrNameRequired     = errors.New("name is required")
)

// VentureService manages ventures and the companies and resources backing them.
type VentureService struct {
	ventureRepo  repository.VentureRepository
	userRepo     repository.UserRepository
	categoryRepo repository.CategoryRepository
	now          func() time.Time
}

// NewVentureService creates a new VentureService.
func NewVentureService(ventureRepo repository.VentureRepository, userRepo repository.UserRepository, categoryRepo repository.CategoryRepository) *VentureService {
	return &VentureService{
		ventureRepo:  ventureRepo,
		userRepo:     userRepo,
		categoryRepo: categoryRepo,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// CreateVentureInput represents input for creating a venture. Student
// defaults to true when nil.
type CreateVentureInput struct {
	Name        string
	Description string
	PublicInfo  string
	CreatorID   uint64
	Student     *bool
	Alumni      bool
	External    bool
}

// CreateVenture creates a new, unapproved venture.
func (s *VentureService) CreateVenture(input CreateVentureInput) (*models.Venture, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrNameRequired
	}

	student := true
	if input.Student != nil {
		student = *input.Student
	}

	creator := input.CreatorID
	venture := &models.Venture{
		Name:            name,
		Description:     input.Description,
		PublicInfo:      input.PublicInfo,
		CreatedOn:       s.now(),
		CreatedBy:       &creator,
		StudentVenture:  student,
		AlumniVenture:   input.Alumni,
		ExternalVenture: input.External,
	}
	if err := s.ventureRepo.CreateVenture(venture); err != nil {
		return nil, fmt.Errorf("failed to create venture: %w", err)
	}
	return venture, nil
}

// GetVenture retrieves a venture with its resource and skill contributions.
func (s *VentureService) GetVenture(id uint64) (*models.Venture, error) {
	venture, err := s.ventureRepo.FindVentureByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVentureNotFound
		}
		return nil, fmt.Errorf("failed to find venture: %w", err)
	}
	return venture, nil
}

// ApproveVenture records approverID's approval.
func (s *VentureService) ApproveVenture(id, approverID uint64) (*models.Venture, error) {
	venture, err := s.GetVenture(id)
	if err != nil {
		return nil, err
	}

	now := s.now()
	venture.ApprovedOn = &now
	venture.ApprovedBy = &approverID
	if err := s.ventureRepo.UpdateVenture(venture); err != nil {
		return nil, fmt.Errorf("failed to approve venture: %w", err)
	}
	return venture, nil
}

// ContributeResource records that companyID provides resourceID to a venture.
func (s *VentureService) ContributeResource(ventureID, companyID, resourceID uint64) (*models.VentureResource, error) {
	if _, err := s.GetVenture(ventureID); err != nil {
		return nil, err
	}
	company, err := s.GetCompany(companyID)
	if err != nil {
		return nil, err
	}
	resource, err := s.GetResource(resourceID)
	if err != nil {
		return nil, err
	}

	contribution := &models.VentureResource{
		VentureID:  ventureID,
		CompanyID:  companyID,
		ResourceID: resourceID,
	}
	if err := s.ventureRepo.AddVentureResource(contribution); err != nil {
		return nil, fmt.Errorf("failed to add venture resource: %w", err)
	}
	contribution.Company = *company
	contribution.Resource = *resource
	return contribution, nil
}

// ContributeSkill records that userID provides skillID to a venture.
func (s *VentureService) ContributeSkill(ventureID, userID, skillID uint64) (*models.VentureSkill, error) {
	if _, err := s.GetVenture(ventureID); err != nil {
		return nil, err
	}
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	skill, err := s.categoryRepo.FindSkillByID(skillID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSkillNotFound
		}
		return nil, fmt.Errorf("failed to find skill: %w", err)
	}

	contribution := &models.VentureSkill{
		VentureID: ventureID,
		UserID:    userID,
		SkillID:   skillID,
	}
	if err := s.ventureRepo.AddVentureSkill(contribution); err != nil {
		return nil, fmt.Errorf("failed to add venture skill: %w", err)
	}
	contribution.User = *user
	contribution.Skill = *skill
	return contribution, nil
}

// CreateCompany creates a new, unapproved company.
func (s *VentureService) CreateCompany(name, description string, creatorID uint64) (*models.Company, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}

	company := &models.Company{
		Name:        name,
		Description: description,
		CreatedOn:   s.now(),
		CreatedBy:   &creatorID,
	}
	if err := s.ventureRepo.CreateCompany(company); err != nil {
		return nil, fmt.Errorf("failed to create company: %w", err)
	}
	return company, nil
}

// GetCompany retrieves a company with its resources.
func (s *VentureService) GetCompany(id uint64) (*models.Company, error) {
	company, err := s.ventureRepo.FindCompanyByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCompanyNotFound
		}
		return nil, fmt.Errorf("failed to find company: %w", err)
	}
	return company, nil
}

// ApproveCompany records approverID's approval.
func (s *VentureService) ApproveCompany(id, approverID uint64) (*models.Company, error) {
	company, err := s.GetCompany(id)
	if err != nil {
		return nil, err
	}

	now := s.now()
	company.ApprovedOn = &now
	company.ApprovedBy = &approverID
	if err := s.ventureRepo.UpdateCompany(company); err != nil {
		return nil, fmt.Errorf("failed to approve company: %w", err)
	}
	return company, nil
}

// AddCompanyResource attaches a resource to a company. Repeating it is a no-op.
func (s *VentureService) AddCompanyResource(companyID, resourceID uint64) error {
	if _, err := s.GetCompany(companyID); err != nil {
		return err
	}
	if _, err := s.GetResource(resourceID); err != nil {
		return err
	}
	if err := s.ventureRepo.AddCompanyResource(companyID, resourceID); err != nil {
		return fmt.Errorf("failed to add company resource: %w", err)
	}
	return nil
}

// CreateResource creates a new, unapproved resource.
func (s *VentureService) CreateResource(name, description string, creatorID uint64) (*models.Resource, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}

	resource := &models.Resource{
		Name:        name,
		Description: description,
		CreatedOn:   s.now(),
		CreatedBy:   &creatorID,
	}
	if err := s.ventureRepo.CreateResource(resource); err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}
	return resource, nil
}

// GetResource retrieves a resource by ID.
func (s *VentureService) GetResource(id uint64) (*models.Resource, error) {
	resource, err := s.ventureRepo.FindResourceByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrResourceNotFound
		}
		return nil, fmt.Errorf("failed to find resource: %w", err)
	}
	return resource, nil
}

// ApproveResource records approverID's approval.
func (s *VentureService) ApproveResource(id, approverID uint64) (*models.Resource, error) {
	resource, err := s.GetResource(id)
	if err != nil {
		return nil, err
	}

	now := s.now()
	resource.ApprovedOn = &now
	resource.ApprovedBy = &approverID
	if err := s.ventureRepo.UpdateResource(resource); err != nil {
		return nil, fmt.Errorf("failed to approve resource: %w", err)
	}
	return resource, nil
}
