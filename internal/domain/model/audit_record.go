package model

import "time"

// AuditRecord is a persisted admin operation, written by the audit consumer
// from events the HTTP layer publishes to Kafka.
type AuditRecord struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    int64     `gorm:"index:idx_audit_user" json:"user_id"`
	Username  string    `gorm:"size:64" json:"username"`
	Method    string    `gorm:"size:8" json:"method"`
	Path      string    `gorm:"size:255" json:"path"`
	Status    int       `json:"status"`
	IP        string    `gorm:"size:45" json:"ip"`
	Data      string    `gorm:"type:text" json:"data"`
	DateAdded time.Time `gorm:"index:idx_audit_date" json:"date_added"`
}

func (AuditRecord) TableName() string { return "user_audit" }
