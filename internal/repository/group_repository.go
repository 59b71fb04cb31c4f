package repository

import (
	"github.com/pferate/puppy-website/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormGroupRepository is a GORM implementation of GroupRepository
type GormGroupRepository struct {
	db *gorm.DB
}

// NewGroupRepository creates a new GroupRepository
func NewGroupRepository(db *gorm.DB) GroupRepository {
	return &GormGroupRepository{db: db}
}

// Create creates a new group
func (r *GormGroupRepository) Create(group *models.Group) error {
	return r.db.Omit("Users").Create(group).Error
}

// FindByName finds a group by its unique name
func (r *GormGroupRepository) FindByName(name string) (*models.Group, error) {
	var group models.Group
	if err := r.db.Where("name = ?", name).First(&group).Error; err != nil {
		return nil, err
	}
	return &group, nil
}

// FindByNames returns the groups whose name is in names
func (r *GormGroupRepository) FindByNames(names []string) ([]models.Group, error) {
	if len(names) == 0 {
		return []models.Group{}, nil
	}

	var groups []models.Group
	if err := r.db.Where("name IN ?", names).Order("id").Find(&groups).Error; err != nil {
		return nil, err
	}
	return groups, nil
}

// List returns all groups with their members
func (r *GormGroupRepository) List() ([]models.Group, error) {
	var groups []models.Group
	if err := r.db.Preload("Users", func(db *gorm.DB) *gorm.DB {
		return db.Order("users.id")
	}).Order("name").Find(&groups).Error; err != nil {
		return nil, err
	}
	return groups, nil
}

// ListMembers lists the users of a group
func (r *GormGroupRepository) ListMembers(groupID uint64) ([]models.User, error) {
	var users []models.User
	err := r.db.
		Joins("JOIN user_group ON user_group.user_id = users.id").
		Where("user_group.group_id = ?", groupID).
		Order("users.id").
		Find(&users).Error
	return users, err
}

// GroupIDsForUser lists the IDs of the groups a user belongs to
func (r *GormGroupRepository) GroupIDsForUser(userID uint64) ([]uint64, error) {
	var ids []uint64
	err := r.db.Model(&models.UserGroup{}).
		Where("user_id = ?", userID).
		Pluck("group_id", &ids).Error
	return ids, err
}

// AddMember adds a user to a group; an existing membership is left untouched
func (r *GormGroupRepository) AddMember(groupID, userID uint64) error {
	return r.db.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.UserGroup{UserID: userID, GroupID: groupID}).Error
}

// RemoveMember removes a user from a group
func (r *GormGroupRepository) RemoveMember(groupID, userID uint64) error {
	return r.db.Where("group_id = ? AND user_id = ?", groupID, userID).
		Delete(&models.UserGroup{}).Error
}
