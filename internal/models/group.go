package models

// AdministrativeGroups lists the group names whose members are administrators.
var AdministrativeGroups = []string{"Administrator"}

type Group struct {
	ID          uint64 `gorm:"primarykey" json:"id"`
	Name        string `gorm:"type:varchar(64);uniqueIndex" json:"name"`
	Description string `gorm:"type:varchar(64)" json:"description"`
	Default     bool   `gorm:"index" json:"default"`

	// Relations
	Users []User `gorm:"many2many:user_group;" json:"users,omitempty"`
}

func (g Group) String() string {
	return g.Name
}
