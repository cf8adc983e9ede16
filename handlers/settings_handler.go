package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"crosspost/database"
	"crosspost/models"
	"crosspost/utils"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

func (h *Handler) GetBotSettings(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	settings, err := h.db.GetBotSettingsByUserID(userID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			utils.RespondWithJSON(w, http.StatusOK, nil)
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch bot settings")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, settings)
}

func (h *Handler) SaveBotSettings(w http.ResponseWriter, r *http.Request) {
	var settings models.BotSettings
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if settings.UserID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "user_id is required")
		return
	}

	settings.ID = uuid.New().String()
	settings.CreatedAt = time.Now()

	if err := h.db.SaveBotSettings(&settings); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to save bot settings")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, settings)
}
