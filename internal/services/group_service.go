package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pferate/puppy-website/internal/identity"
	"github.com/pferate/puppy-website/internal/models"
	"github.com/pferate/puppy-website/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrGroupNotFound    = errors.New("group not found")
	ErrInvalidGroupName = errors.New("group name cannot be empty")
	ErrGroupExists      = errors.New("group already exists")
)

// GroupService answers group membership and authorization questions.
type GroupService struct {
	groupRepo repository.GroupRepository
	userRepo  repository.UserRepository
}

// NewGroupService creates a new GroupService.
func NewGroupService(groupRepo repository.GroupRepository, userRepo repository.UserRepository) *GroupService {
	return &GroupService{
		groupRepo: groupRepo,
		userRepo:  userRepo,
	}
}

// GroupsFromList returns the groups whose name appears in names. Unknown
// names are ignored.
func (s *GroupService) GroupsFromList(names []string) ([]models.Group, error) {
	groups, err := s.groupRepo.FindByNames(names)
	if err != nil {
		return nil, fmt.Errorf("failed to find groups: %w", err)
	}
	return groups, nil
}

// GetAdminUsers returns every member of an administrative group once, in the
// order first encountered.
func (s *GroupService) GetAdminUsers() ([]models.User, error) {
	groups, err := s.GroupsFromList(models.AdministrativeGroups)
	if err != nil {
		return nil, err
	}

	seen := make(map[uint64]struct{})
	admins := []models.User{}
	for _, group := range groups {
		members, err := s.groupRepo.ListMembers(group.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to list members of %s: %w", group.Name, err)
		}
		for _, member := range members {
			if _, ok := seen[member.ID]; ok {
				continue
			}
			seen[member.ID] = struct{}{}
			admins = append(admins, member)
		}
	}
	return admins, nil
}

// InGroups returns the named groups the principal belongs to. With requireAll
// set it returns nil as soon as one existing named group lacks the principal.
// A nil or empty result means "not a member". Anonymous principals are never
// members.
func (s *GroupService) InGroups(p identity.Principal, names []string, requireAll bool) ([]models.Group, error) {
	user, ok := p.Member()
	if !ok {
		return nil, nil
	}

	groups, err := s.GroupsFromList(names)
	if err != nil {
		return nil, err
	}

	memberOf, err := s.groupRepo.GroupIDsForUser(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load memberships: %w", err)
	}
	member := make(map[uint64]struct{}, len(memberOf))
	for _, id := range memberOf {
		member[id] = struct{}{}
	}

	matched := []models.Group{}
	for _, group := range groups {
		if _, ok := member[group.ID]; ok {
			matched = append(matched, group)
		} else if requireAll {
			return nil, nil
		}
	}
	return matched, nil
}

// IsAdministrator reports whether the principal belongs to an administrative group.
func (s *GroupService) IsAdministrator(p identity.Principal) (bool, error) {
	groups, err := s.InGroups(p, models.AdministrativeGroups, false)
	if err != nil {
		return false, err
	}
	return len(groups) > 0, nil
}

// CreateGroupInput represents parameters to create a new group.
type CreateGroupInput struct {
	Name        string
	Description string
	Default     bool
}

// CreateGroup creates a new group.
func (s *GroupService) CreateGroup(input CreateGroupInput) (*models.Group, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrInvalidGroupName
	}

	if _, err := s.groupRepo.FindByName(name); err == nil {
		return nil, ErrGroupExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check group: %w", err)
	}

	group := &models.Group{
		Name:        name,
		Description: input.Description,
		Default:     input.Default,
	}
	if err := s.groupRepo.Create(group); err != nil {
		return nil, fmt.Errorf("failed to create group: %w", err)
	}
	return group, nil
}

// ListGroups returns all groups with their members.
func (s *GroupService) ListGroups() ([]models.Group, error) {
	groups, err := s.groupRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	return groups, nil
}

// AddMember adds a user to the named group. Adding an existing member is a no-op.
func (s *GroupService) AddMember(groupName string, userID uint64) error {
	group, err := s.findGroup(groupName)
	if err != nil {
		return err
	}
	if err := s.ensureUser(userID); err != nil {
		return err
	}

	if err := s.groupRepo.AddMember(group.ID, userID); err != nil {
		return fmt.Errorf("failed to add member: %w", err)
	}
	return nil
}

// RemoveMember removes a user from the named group.
func (s *GroupService) RemoveMember(groupName string, userID uint64) error {
	group, err := s.findGroup(groupName)
	if err != nil {
		return err
	}

	if err := s.groupRepo.RemoveMember(group.ID, userID); err != nil {
		return fmt.Errorf("failed to remove member: %w", err)
	}
	return nil
}

func (s *GroupService) findGroup(name string) (*models.Group, error) {
	group, err := s.groupRepo.FindByName(name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGroupNotFound
		}
		return nil, fmt.Errorf("failed to find group: %w", err)
	}
	return group, nil
}

func (s *GroupService) ensureUser(userID uint64) error {
	if _, err := s.userRepo.FindByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to find user: %w", err)
	}
	return nil
}
