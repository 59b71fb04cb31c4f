package models

import "time"

type Company struct {
	ID          uint64     `gorm:"primarykey" json:"id"`
	Name        string     `gorm:"type:text" json:"name"`
	Description string     `gorm:"type:text" json:"description"`
	CreatedOn   time.Time  `gorm:"autoCreateTime" json:"created_on"`
	CreatedBy   *uint64    `json:"created_by"`
	ApprovedOn  *time.Time `json:"approved_on"`
	ApprovedBy  *uint64    `json:"approved_by"`

	// Relations
	CreatedByUser  *User      `gorm:"foreignKey:CreatedBy" json:"-"`
	ApprovedByUser *User      `gorm:"foreignKey:ApprovedBy" json:"-"`
	Resources      []Resource `gorm:"many2many:company_resource;" json:"resources,omitempty"`
}

func (Company) TableName() string {
	return "company"
}

type Resource struct {
	ID          uint64     `gorm:"primarykey" json:"id"`
	Name        string     `gorm:"type:text" json:"name"`
	Description string     `gorm:"type:text" json:"description"`
	CreatedOn   time.Time  `gorm:"autoCreateTime" json:"created_on"`
	CreatedBy   *uint64    `json:"created_by"`
	ApprovedOn  *time.Time `json:"approved_on"`
	ApprovedBy  *uint64    `json:"approved_by"`

	// Relations
	CreatedByUser  *User `gorm:"foreignKey:CreatedBy" json:"-"`
	ApprovedByUser *User `gorm:"foreignKey:ApprovedBy" json:"-"`
}

func (Resource) TableName() string {
	return "resource"
}
