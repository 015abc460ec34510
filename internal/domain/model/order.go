package model

import "time"

// Order is owned by the storefront; this service only reads it inside the
// marketing attribution subquery and migrates it for development setups.
type Order struct {
	ID            int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	MarketingID   int64     `gorm:"column:marketing_id;index" json:"marketing_id"`
	OrderStatusID int       `gorm:"column:order_status_id;index" json:"order_status_id"`
	Total         float64   `gorm:"column:total" json:"total"`
	DateAdded     time.Time `gorm:"column:date_added" json:"date_added"`
}

func (Order) TableName() string { return "orders" }
