package handlers

import (
	"encoding/json"
	"net/http"

	"crosspost/telegram"
	"crosspost/utils"
)

// SendTelegramMessage sends an arbitrary message through the configured bot.
func (h *Handler) SendTelegramMessage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ChatID  int64  `json:"chat_id"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if !h.tgClient.Ready() {
		utils.RespondWithError(w, http.StatusServiceUnavailable, "Telegram bot is not ready")
		return
	}

	if err := h.tgClient.Notify(req.ChatID, req.Message); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to send message")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Message sent successfully"})
}

// TelegramWebhook receives Bot API updates. When a webhook secret is
// configured, updates without the matching header are rejected. Processing
// happens asynchronously so Telegram gets its 200 immediately.
func (h *Handler) TelegramWebhook(w http.ResponseWriter, r *http.Request) {
	if h.cfg.TelegramWebhookToken != "" &&
		r.Header.Get("X-Telegram-Bot-Api-Secret-Token") != h.cfg.TelegramWebhookToken {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid webhook token")
		return
	}

	var update telegram.Update
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid update payload")
		return
	}

	go h.bot.HandleUpdate(&update)

	w.WriteHeader(http.StatusOK)
}
