package model

import "time"

// UserLogin is append-only: one row per successful admin login. Rows are
// never updated or deleted by this service.
type UserLogin struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    int64     `gorm:"column:user_id;index" json:"user_id"`
	IP        string    `gorm:"size:40" json:"ip"`
	UserAgent string    `gorm:"column:user_agent;size:255" json:"user_agent"`
	DateAdded time.Time `gorm:"column:date_added" json:"date_added"`
}

func (UserLogin) TableName() string { return "user_login" }
