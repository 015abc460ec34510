package model

import "time"

// User is an administrative account. Password holds only a bcrypt hash and
// never serializes to JSON. Code is the password-reset code; empty means no
// active reset. UserGroup is resolved from user_group at read time.
type User struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Username    string    `gorm:"size:20;uniqueIndex:uk_username" json:"username"`
	UserGroupID int64     `gorm:"column:user_group_id;index" json:"user_group_id"`
	Password    string    `gorm:"size:255" json:"-"`
	Firstname   string    `gorm:"size:32" json:"firstname"`
	Lastname    string    `gorm:"size:32" json:"lastname"`
	Email       string    `gorm:"size:96" json:"email"`
	Image       string    `gorm:"size:255" json:"image"`
	Status      bool      `gorm:"column:status" json:"status"`
	Code        string    `gorm:"size:40" json:"-"`
	DateAdded   time.Time `gorm:"column:date_added" json:"date_added"`
	UserGroup   string    `gorm:"->;-:migration" json:"user_group,omitempty"`
}

func (User) TableName() string { return "user" }
