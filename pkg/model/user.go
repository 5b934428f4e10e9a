package model

import "time"

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"uniqueIndex;size:64" json:"username"`
	PasswordHash string    `json:"-"`
	Role         string    `gorm:"size:32" json:"role"` // user/admin/super_admin
	CreatedAt    time.Time `json:"createdAt"`
}
