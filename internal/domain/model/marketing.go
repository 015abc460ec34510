package model

import "time"

// Marketing is a campaign tracking code. Orders is derived at read time from
// the orders table (completed orders referencing this code); it is never
// stored.
type Marketing struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"size:32" json:"name"`
	Description string    `gorm:"size:255" json:"description"`
	Code        string    `gorm:"size:64;index" json:"code"`
	DateAdded   time.Time `gorm:"column:date_added" json:"date_added"`
	Orders      int64     `gorm:"->;-:migration" json:"orders"`
}

func (Marketing) TableName() string { return "marketing" }
