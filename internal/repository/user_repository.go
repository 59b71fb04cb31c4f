package repository

import (
	"github.com/pferate/puppy-website/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// Create creates a new user
func (r *GormUserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// Save persists all fields of an existing user
func (r *GormUserRepository) Save(user *models.User) error {
	return r.db.Omit(clause.Associations).Save(user).Error
}

// FindByID finds a user by ID with optional preloading
func (r *GormUserRepository) FindByID(id uint64, preload ...string) (*models.User, error) {
	var user models.User
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail finds a user by email address
func (r *GormUserRepository) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByUsername finds a user by username
func (r *GormUserRepository) FindByUsername(username string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// EmailTaken reports whether a user other than exceptID owns email
func (r *GormUserRepository) EmailTaken(email string, exceptID uint64) (bool, error) {
	var count int64
	err := r.db.Model(&models.User{}).
		Where("email = ? AND id <> ?", email, exceptID).
		Count(&count).Error
	return count > 0, err
}

// List returns every user ordered by ID
func (r *GormUserRepository) List() ([]models.User, error) {
	var users []models.User
	if err := r.db.Order("id").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// ExistingIDs returns the subset of ids that belong to a user
func (r *GormUserRepository) ExistingIDs(ids []uint64) ([]uint64, error) {
	existing := []uint64{}
	if len(ids) == 0 {
		return existing, nil
	}
	if err := r.db.Model(&models.User{}).Where("id IN ?", ids).Pluck("id", &existing).Error; err != nil {
		return nil, err
	}
	return existing, nil
}

// AddSkill attaches a skill to a user; an existing pair is left untouched
func (r *GormUserRepository) AddSkill(userID, skillID uint64) error {
	return r.db.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.UserSkill{UserID: userID, SkillID: skillID}).Error
}

// ListSkills lists the skills held by a user
func (r *GormUserRepository) ListSkills(userID uint64) ([]models.Skill, error) {
	var skills []models.Skill
	err := r.db.
		Preload("Categories").
		Preload("Users").
		Joins("JOIN user_skill ON user_skill.skill_id = skills.id").
		Where("user_skill.user_id = ?", userID).
		Order("skills.name").
		Find(&skills).Error
	return skills, err
}
