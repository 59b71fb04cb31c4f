package repository

import (
	"github.com/pferate/puppy-website/internal/models"
	"github.com/pferate/puppy-website/internal/utils"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// Save persists all fields of an existing user
	Save(user *models.User) error

	// FindByID finds a user by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.User, error)

	// FindByEmail finds a user by email address
	FindByEmail(email string) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(username string) (*models.User, error)

	// EmailTaken reports whether a user other than exceptID owns email
	EmailTaken(email string, exceptID uint64) (bool, error)

	// List returns every user ordered by ID
	List() ([]models.User, error)

	// ExistingIDs returns the subset of ids that belong to a user
	ExistingIDs(ids []uint64) ([]uint64, error)

	// AddSkill attaches a skill to a user; an existing pair is left untouched
	AddSkill(userID, skillID uint64) error

	// ListSkills lists the skills held by a user
	ListSkills(userID uint64) ([]models.Skill, error)
}

// GroupRepository defines the interface for group data access
type GroupRepository interface {
	// Create creates a new group
	Create(group *models.Group) error

	// FindByName finds a group by its unique name
	FindByName(name string) (*models.Group, error)

	// FindByNames returns the groups whose name is in names
	FindByNames(names []string) ([]models.Group, error)

	// List returns all groups with their members
	List() ([]models.Group, error)

	// ListMembers lists the users of a group
	ListMembers(groupID uint64) ([]models.User, error)

	// GroupIDsForUser lists the IDs of the groups a user belongs to
	GroupIDsForUser(userID uint64) ([]uint64, error)

	// AddMember adds a user to a group; an existing membership is left untouched
	AddMember(groupID, userID uint64) error

	// RemoveMember removes a user from a group
	RemoveMember(groupID, userID uint64) error
}

// NotificationRepository defines the interface for notification data access
type NotificationRepository interface {
	// CreateBatch inserts all notifications in a single transaction
	CreateBatch(notifications []models.Notification) error

	// CreateForAllUsers inserts one notification per existing user, built by
	// build, in a single transaction
	CreateForAllUsers(build func(user models.User) models.Notification) (int, error)

	// FindByID finds a notification by ID with its sender and recipient
	FindByID(id uint64) (*models.Notification, error)

	// ListForRecipient lists a user's notifications, newest first
	ListForRecipient(filter NotificationFilter) ([]models.Notification, int64, error)

	// CountUnread counts unread notifications of a user
	CountUnread(recipientID uint64) (int64, error)

	// Update updates a notification
	Update(notification *models.Notification) error
}

// NotificationFilter holds filtering options for listing notifications
type NotificationFilter struct {
	RecipientID uint64
	UnreadOnly  bool
	Pagination  utils.PaginationParams
}

// CategoryRepository defines the interface for skill and category data access
type CategoryRepository interface {
	// CreateCategory creates a new category
	CreateCategory(category *models.Category) error

	// FindCategoryByID finds a category by ID
	FindCategoryByID(id uint64) (*models.Category, error)

	// ListCategories lists all categories ordered by name
	ListCategories() ([]models.Category, error)

	// UpdateCategory updates a category
	UpdateCategory(category *models.Category) error

	// CreateSkill creates a new skill
	CreateSkill(skill *models.Skill) error

	// FindSkillByID finds a skill with its categories and users
	FindSkillByID(id uint64) (*models.Skill, error)

	// ListSkills lists all skills ordered by name with their categories
	ListSkills() ([]models.Skill, error)

	// AddSkillCategory places a skill in a category; an existing pair is left untouched
	AddSkillCategory(skillID, categoryID uint64) error
}

// VentureRepository defines the interface for venture, company and resource data access
type VentureRepository interface {
	// CreateVenture creates a new venture
	CreateVenture(venture *models.Venture) error

	// FindVentureByID finds a venture with its contributions
	FindVentureByID(id uint64) (*models.Venture, error)

	// UpdateVenture updates a venture
	UpdateVenture(venture *models.Venture) error

	// AddVentureResource records a company's resource contribution
	AddVentureResource(contribution *models.VentureResource) error

	// AddVentureSkill records a user's skill contribution
	AddVentureSkill(contribution *models.VentureSkill) error

	// CreateCompany creates a new company
	CreateCompany(company *models.Company) error

	// FindCompanyByID finds a company with its resources
	FindCompanyByID(id uint64) (*models.Company, error)

	// UpdateCompany updates a company
	UpdateCompany(company *models.Company) error

	// AddCompanyResource attaches a resource to a company; an existing pair is left untouched
	AddCompanyResource(companyID, resourceID uint64) error

	// CreateResource creates a new resource
	CreateResource(resource *models.Resource) error

	// FindResourceByID finds a resource by ID
	FindResourceByID(id uint64) (*models.Resource, error)

	// UpdateResource updates a resource
	UpdateResource(resource *models.Resource) error
}
