package repo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"CyberCasino/internal/model"
)

// ErrInsufficientFunds — ставка больше баланса.
var ErrInsufficientFunds = errors.New("insufficient funds")

// RoundRepository — раунды слота и списание ставок.
type RoundRepository interface {
	// PlaceBet в одной транзакции списывает ставку и записывает раунд.
	// Если пользователя нет, возвращает gorm.ErrRecordNotFound.
	PlaceBet(ctx context.Context, userID, bet int64) (*model.SlotRound, error)
}

type roundRepo struct {
	db *gorm.DB
}

func NewRoundRepository(db *gorm.DB) RoundRepository {
	return &roundRepo{db: db}
}

func (r *roundRepo) PlaceBet(ctx context.Context, userID, bet int64) (*model.SlotRound, error) {
	var round *model.SlotRound
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.User{}).
			Where("id = ? AND cyber_tokens >= ?", userID, bet).
			UpdateColumn("cyber_tokens", gorm.Expr("cyber_tokens - ?", bet))
		if res.Error != nil {
			return res.Error
		}

		var u model.User
		if err := tx.First(&u, userID).Error; err != nil {
			return err
		}
		if res.RowsAffected == 0 {
			return ErrInsufficientFunds
		}

		round = &model.SlotRound{
			ID:           uuid.NewString(),
			UserID:       userID,
			BetAmount:    bet,
			BalanceAfter: u.CyberTokens,
		}
		return tx.Create(round).Error
	})
	if err != nil {
		return nil, err
	}
	return round, nil
}
