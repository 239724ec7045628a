package model

import "time"

// User — серверная модель игрока. Password хранит bcrypt-хеш.
type User struct {
	ID          int64  `gorm:"primaryKey;autoIncrement"`
	Login       string `gorm:"uniqueIndex;not null"`
	Password    string `gorm:"not null"`
	CyberTokens int64  `gorm:"not null;default:0"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
