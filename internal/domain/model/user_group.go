package model

type UserGroup struct {
	ID         int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Name       string `gorm:"size:64" json:"name"`
	Permission string `gorm:"type:text" json:"permission"`
}

func (UserGroup) TableName() string { return "user_group" }
