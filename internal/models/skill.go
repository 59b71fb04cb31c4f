package models

type Skill struct {
	ID          uint64 `gorm:"primarykey" json:"id"`
	Name        string `gorm:"type:varchar(64);uniqueIndex" json:"name"`
	Description string `gorm:"type:varchar(64)" json:"description"`

	// Relations
	Categories []Category `gorm:"many2many:skill_category;" json:"categories,omitempty"`
	Users      []User     `gorm:"many2many:user_skill;" json:"-"`
}

func (s Skill) String() string {
	return s.Name
}

// Category is a node in the skill taxonomy. The parent chain is followed by
// looking up ParentID rather than through a loaded pointer.
type Category struct {
	ID          uint64  `gorm:"primarykey" json:"id"`
	Name        string  `gorm:"type:varchar(64);uniqueIndex" json:"name"`
	Description string  `gorm:"type:varchar(64)" json:"description"`
	ParentID    *uint64 `gorm:"index" json:"parent_id"`

	// Relations
	Skills []Skill `gorm:"many2many:skill_category;" json:"-"`
}
