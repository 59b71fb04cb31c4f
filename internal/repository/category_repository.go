package repository

import (
	"github.com/pferate/puppy-website/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormCategoryRepository is a GORM implementation of CategoryRepository
type GormCategoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new CategoryRepository
func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &GormCategoryRepository{db: db}
}

// CreateCategory creates a new category
func (r *GormCategoryRepository) CreateCategory(category *models.Category) error {
	return r.db.Omit("Skills").Create(category).Error
}

// FindCategoryByID finds a category by ID
func (r *GormCategoryRepository) FindCategoryByID(id uint64) (*models.Category, error) {
	var category models.Category
	if err := r.db.First(&category, id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// ListCategories lists all categories ordered by name
func (r *GormCategoryRepository) ListCategories() ([]models.Category, error) {
	var categories []models.Category
	if err := r.db.Order("name").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// UpdateCategory updates a category
func (r *GormCategoryRepository) UpdateCategory(category *models.Category) error {
	return r.db.Omit("Skills").Save(category).Error
}

// CreateSkill creates a new skill
func (r *GormCategoryRepository) CreateSkill(skill *models.Skill) error {
	return r.db.Omit(clause.Associations).Create(skill).Error
}

// FindSkillByID finds a skill with its categories and users
func (r *GormCategoryRepository) FindSkillByID(id uint64) (*models.Skill, error) {
	var skill models.Skill
	if err := r.db.
		Preload("Categories").
		Preload("Users").
		First(&skill, id).Error; err != nil {
		return nil, err
	}
	return &skill, nil
}

// ListSkills lists all skills ordered by name with their categories
func (r *GormCategoryRepository) ListSkills() ([]models.Skill, error) {
	var skills []models.Skill
	if err := r.db.
		Preload("Categories").
		Preload("Users").
		Order("name").
		Find(&skills).Error; err != nil {
		return nil, err
	}
	return skills, nil
}

// AddSkillCategory places a skill in a category; an existing pair is left untouched
func (r *GormCategoryRepository) AddSkillCategory(skillID, categoryID uint64) error {
	return r.db.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.SkillCategory{SkillID: skillID, CategoryID: categoryID}).Error
}
