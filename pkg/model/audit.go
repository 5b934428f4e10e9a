package model

import "time"

// AuditEntry records an operation against the gateway: a submission accepted,
// a check run triggered, a user registered.
type AuditEntry struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	Actor     string    `gorm:"size:64" json:"actor"`
	Action    string    `gorm:"size:64" json:"action"`
	Target    string    `gorm:"size:128" json:"target"`
	Detail    string    `json:"detail,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
