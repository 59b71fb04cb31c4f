package models

// Rows of the many-to-many association tables. Each pair is the table's
// primary key, so every association behaves as a set.

type UserGroup struct {
	UserID  uint64 `gorm:"primaryKey"`
	GroupID uint64 `gorm:"primaryKey"`
}

func (UserGroup) TableName() string { return "user_group" }

type UserSkill struct {
	UserID  uint64 `gorm:"primaryKey"`
	SkillID uint64 `gorm:"primaryKey"`
}

func (UserSkill) TableName() string { return "user_skill" }

type SkillCategory struct {
	SkillID    uint64 `gorm:"primaryKey"`
	CategoryID uint64 `gorm:"primaryKey"`
}

func (SkillCategory) TableName() string { return "skill_category" }

type CompanyResource struct {
	CompanyID  uint64 `gorm:"primaryKey"`
	ResourceID uint64 `gorm:"primaryKey"`
}

func (CompanyResource) TableName() string { return "company_resource" }
