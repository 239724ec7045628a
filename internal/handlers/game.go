package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"CyberCasino/internal/middleware"
	"CyberCasino/internal/service"
)

// GameHandler обрабатывает игровые эндпоинты.
type GameHandler struct {
	GameService *service.GameService
	Logger      *zap.SugaredLogger
}

func NewGameHandler(gameService *service.GameService, logger *zap.SugaredLogger) *GameHandler {
	return &GameHandler{GameService: gameService, Logger: logger}
}

type playRequest struct {
	BetAmount int64 `json:"bet_amount"`
}

type playResponse struct {
	Result *service.SlotResult `json:"result"`
}

// PlaySlot проводит один раунд слота для текущего пользователя.
func (h *GameHandler) PlaySlot(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req playRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	res, err := h.GameService.PlaySlot(r.Context(), userID, req.BetAmount)
	switch {
	case errors.Is(err, service.ErrInvalidBet):
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	case errors.Is(err, service.ErrInsufficientFunds):
		http.Error(w, err.Error(), http.StatusPaymentRequired)
		return
	case errors.Is(err, service.ErrUserNotFound):
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	case err != nil:
		h.Logger.Errorw("slot round failed", "user_id", userID, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, playResponse{Result: res})
}
