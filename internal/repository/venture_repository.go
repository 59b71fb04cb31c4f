package repository

import (
	"github.com/pferate/puppy-website/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormVentureRepository is a GORM implementation of VentureRepository
type GormVentureRepository struct {
	db *gorm.DB
}

// NewVentureRepository creates a new VentureRepository
func NewVentureRepository(db *gorm.DB) VentureRepository {
	return &GormVentureRepository{db: db}
}

// CreateVenture creates a new venture
func (r *GormVentureRepository) CreateVenture(venture *models.Venture) error {
	return r.db.Omit(clause.Associations).Create(venture).Error
}

// FindVentureByID finds a venture with its contributions
func (r *GormVentureRepository) FindVentureByID(id uint64) (*models.Venture, error) {
	var venture models.Venture
	if err := r.db.
		Preload("Resources.Company").
		Preload("Resources.Resource").
		Preload("Skills.User").
		Preload("Skills.Skill").
		First(&venture, id).Error; err != nil {
		return nil, err
	}
	return &venture, nil
}

// UpdateVenture updates a venture
func (r *GormVentureRepository) UpdateVenture(venture *models.Venture) error {
	return r.db.Omit(clause.Associations).Save(venture).Error
}

// AddVentureResource records a company's resource contribution
func (r *GormVentureRepository) AddVentureResource(contribution *models.VentureResource) error {
	return r.db.Omit(clause.Associations).Create(contribution).Error
}

// AddVentureSkill records a user's skill contribution
func (r *GormVentureRepository) AddVentureSkill(contribution *models.VentureSkill) error {
	return r.db.Omit(clause.Associations).Create(contribution).Error
}

// CreateCompany creates a new company
func (r *GormVentureRepository) CreateCompany(company *models.Company) error {
	return r.db.Omit(clause.Associations).Create(company).Error
}

// FindCompanyByID finds a company with its resources
func (r *GormVentureRepository) FindCompanyByID(id uint64) (*models.Company, error) {
	var company models.Company
	if err := r.db.Preload("Resources").First(&company, id).Error; err != nil {
		return nil, err
	}
	return &company, nil
}

// UpdateCompany updates a company
func (r *GormVentureRepository) UpdateCompany(company *models.Company) error {
	return r.db.Omit(clause.Associations).Save(company).Error
}

// AddCompanyResource attaches a resource to a company; an existing pair is left untouched
func (r *GormVentureRepository) AddCompanyResource(companyID, resourceID uint64) error {
	return r.db.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.CompanyResource{CompanyID: companyID, ResourceID: resourceID}).Error
}

// CreateResource creates a new resource
func (r *GormVentureRepository) CreateResource(resource *models.Resource) error {
	return r.db.Omit(clause.Associations).Create(resource).Error
}

// FindResourceByID finds a resource by ID
func (r *GormVentureRepository) FindResourceByID(id uint64) (*models.Resource, error) {
	var resource models.Resource
	if err := r.db.First(&resource, id).Error; err != nil {
		return nil, err
	}
	return &resource, nil
}

// UpdateResource updates a resource
func (r *GormVentureRepository) UpdateResource(resource *models.Resource) error {
	return r.db.Omit(clause.Associations).Save(resource).Error
}
