package dto

import (
	"time"

	"github.com/pferate/puppy-website/internal/models"
)

// VentureDTO represents a venture with its contributions
type VentureDTO struct {
	ID          uint64     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	PublicInfo  string     `json:"public_info"`
	CreatedOn   time.Time  `json:"created_on"`
	ApprovedOn  *time.Time `json:"approved_on"`
	Student     bool       `json:"student_venture"`
	Alumni      bool       `json:"alumni_venture"`
	External    bool       `json:"external_venture"`
	Resources   []string   `json:"resources"`
	Skills      []string   `json:"skills"`
}

// ToVentureDTO converts a Venture with contributions loaded
func ToVentureDTO(venture models.Venture) VentureDTO {
	resources := make([]string, len(venture.Resources))
	for i, r := range venture.Resources {
		resources[i] = r.Name()
	}
	skills := make([]string, len(venture.Skills))
	for i, s := range venture.Skills {
		skills[i] = s.Name()
	}

	return VentureDTO{
		ID:          venture.ID,
		Name:        venture.Name,
		Description: venture.Description,
		PublicInfo:  venture.PublicInfo,
		CreatedOn:   venture.CreatedOn,
		ApprovedOn:  venture.ApprovedOn,
		Student:     venture.StudentVenture,
		Alumni:      venture.AlumniVenture,
		External:    venture.ExternalVenture,
		Resources:   resources,
		Skills:      skills,
	}
}
