package models

import (
	"fmt"
	"time"
)

type Venture struct {
	ID              uint64     `gorm:"primarykey" json:"id"`
	Name            string     `gorm:"type:text" json:"name"`
	Description     string     `gorm:"type:text" json:"description"`
	PublicInfo      string     `gorm:"type:text" json:"public_info"`
	CreatedOn       time.Time  `gorm:"autoCreateTime" json:"created_on"`
	CreatedBy       *uint64    `json:"created_by"`
	ApprovedOn      *time.Time `json:"approved_on"`
	ApprovedBy      *uint64    `json:"approved_by"`
	StudentVenture  bool       `json:"student_venture"`
	AlumniVenture   bool       `json:"alumni_venture"`
	ExternalVenture bool       `json:"external_venture"`

	// Relations
	CreatedByUser  *User             `gorm:"foreignKey:CreatedBy" json:"-"`
	ApprovedByUser *User             `gorm:"foreignKey:ApprovedBy" json:"-"`
	Resources      []VentureResource `gorm:"foreignKey:VentureID" json:"resources,omitempty"`
	Skills         []VentureSkill    `gorm:"foreignKey:VentureID" json:"skills,omitempty"`
}

func (v Venture) String() string {
	return v.Name
}

// VentureResource is a resource contributed to a venture by a company.
type VentureResource struct {
	ID         uint64 `gorm:"primarykey" json:"id"`
	VentureID  uint64 `gorm:"index" json:"venture_id"`
	CompanyID  uint64 `json:"company_id"`
	ResourceID uint64 `json:"resource_id"`

	// Relations
	Company  Company  `gorm:"foreignKey:CompanyID" json:"company"`
	Resource Resource `gorm:"foreignKey:ResourceID" json:"resource"`
}

// Name requires Company and Resource to be loaded.
func (vr VentureResource) Name() string {
	return fmt.Sprintf("%s provided by %s", vr.Resource.Name, vr.Company.Name)
}

// VentureSkill is a skill contributed to a venture by a user.
type VentureSkill struct {
	ID        uint64 `gorm:"primarykey" json:"id"`
	VentureID uint64 `gorm:"index" json:"venture_id"`
	UserID    uint64 `json:"user_id"`
	SkillID   uint64 `json:"skill_id"`

	// Relations
	User  User  `gorm:"foreignKey:UserID" json:"-"`
	Skill Skill `gorm:"foreignKey:SkillID" json:"skill"`
}

func (VentureSkill) TableName() string {
	return "venture_user_skills"
}

// Name requires User and Skill to be loaded.
func (vs VentureSkill) Name() string {
	return fmt.Sprintf("%s provided by %s", vs.Skill.Name, vs.User.DisplayName())
}
