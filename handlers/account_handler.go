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

func (h *Handler) GetSocialAccounts(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	accounts, err := h.db.GetSocialAccountsByUserID(userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch social accounts")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, accounts)
}

func (h *Handler) CreateSocialAccount(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID       string          `json:"user_id"`
		Platform     models.Platform `json:"platform"`
		AccountName  string          `json:"account_name"`
		AccessToken  string          `json:"access_token"`
		RefreshToken string          `json:"refresh_token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if req.UserID == "" || req.Platform == "" || req.AccountName == "" || req.AccessToken == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "user_id, platform, account_name and access_token are required")
		return
	}

	encrypted, err := h.cipher.Encrypt(req.AccessToken)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to secure access token")
		return
	}

	account := models.SocialAccount{
		ID:           uuid.New().String(),
		UserID:       req.UserID,
		Platform:     req.Platform,
		AccountName:  req.AccountName,
		AccessToken:  encrypted,
		RefreshToken: req.RefreshToken,
		IsActive:     true,
		CreatedAt:    time.Now(),
	}

	if err := h.db.CreateSocialAccount(&account); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create social account")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, account)
}

func (h *Handler) UpdateAccountStatus(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req struct {
		IsActive bool `json:"is_active"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := h.db.UpdateSocialAccountStatus(id, req.IsActive); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, "Social account not found")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update account status")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Status updated successfully"})
}
