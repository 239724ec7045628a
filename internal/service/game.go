package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"CyberCasino/internal/repo"
)

var (
	ErrInvalidBet        = errors.New("bet amount must be positive")
	ErrInsufficientFunds = errors.New("insufficient cyber tokens")
)

// SlotResult — результат раунда, отдаётся клиенту как есть.
type SlotResult struct {
	RoundID   string    `json:"round_id"`
	BetAmount int64     `json:"bet_amount"`
	Balance   int64     `json:"balance"`
	PlayedAt  time.Time `json:"played_at"`
}

// GameService проводит раунды слота. Выплат нет: раунд только списывает ставку.
type GameService struct {
	rounds repo.RoundRepository
	logger *zap.SugaredLogger
}

func NewGameService(r repo.RoundRepository, logger *zap.SugaredLogger) *GameService {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &GameService{rounds: r, logger: logger}
}

// PlaySlot списывает ставку и возвращает результат раунда.
func (s *GameService) PlaySlot(ctx context.Context, userID, bet int64) (*SlotResult, error) {
	if bet <= 0 {
		return nil, ErrInvalidBet
	}
	round, err := s.rounds.PlaceBet(ctx, userID, bet)
	switch {
	case errors.Is(err, repo.ErrInsufficientFunds):
		return nil, ErrInsufficientFunds
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, ErrUserNotFound
	case err != nil:
		return nil, err
	}
	s.logger.Infow("slot round played", "user_id", userID, "round_id", round.ID, "bet", bet, "balance", round.BalanceAfter)
	return &SlotResult{
		RoundID:   round.ID,
		BetAmount: round.BetAmount,
		Balance:   round.BalanceAfter,
		PlayedAt:  round.CreatedAt,
	}, nil
}
