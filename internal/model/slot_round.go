package model

import "time"

// SlotRound — один сыгранный раунд слота.
type SlotRound struct {
	ID     string `gorm:"primaryKey;type:uuid"`
	UserID int64  `gorm:"not null;index"` // ссылка на users.id

	// Связи
	User *User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`

	BetAmount    int64 `gorm:"not null"`
	BalanceAfter int64 `gorm:"not null"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
