package dto

import "github.com/pferate/puppy-website/internal/models"

// CategoryDTO represents a category and its root-to-leaf path
type CategoryDTO struct {
	ID          uint64  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	ParentID    *uint64 `json:"parent_id"`
	Lineage     string  `json:"lineage"`
}

// SkillDTO represents a skill, where it is filed and who holds it
type SkillDTO struct {
	ID            uint64    `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Categories    []string  `json:"categories"`
	CategoryCount int       `json:"category_count"`
	Users         []UserDTO `json:"users"`
	UserCount     int       `json:"user_count"`
}

// ToCategoryDTO converts a Category with its rendered lineage
func ToCategoryDTO(category models.Category, lineage string) CategoryDTO {
	return CategoryDTO{
		ID:          category.ID,
		Name:        category.Name,
		Description: category.Description,
		ParentID:    category.ParentID,
		Lineage:     lineage,
	}
}

// ToSkillDTO converts a Skill with categories and users loaded
func ToSkillDTO(skill models.Skill) SkillDTO {
	categories := make([]string, len(skill.Categories))
	for i, c := range skill.Categories {
		categories[i] = c.Name
	}

	return SkillDTO{
		ID:            skill.ID,
		Name:          skill.Name,
		Description:   skill.Description,
		Categories:    categories,
		CategoryCount: len(skill.Categories),
		Users:         ToUserDTOs(skill.Users),
		UserCount:     len(skill.Users),
	}
}
