package handlers

import (
	"net/http"
	"time"

	"crosspost/middleware"
	"crosspost/models"
	"crosspost/utils"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// InitiateOAuth returns the authorization URL for a platform, bound to the
// requesting admin via a single-use state token.
func (h *Handler) InitiateOAuth(w http.ResponseWriter, r *http.Request) {
	platform := models.Platform(mux.Vars(r)["platform"])
	userID := middleware.UserID(r)

	state := h.oauthState.GenerateState(userID, platform)
	authURL := h.oauthClient.AuthURL(platform, state)
	if authURL == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Platform not supported for OAuth")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"auth_url": authURL})
}

// OAuthCallback completes the flow: validates the state token, exchanges the
// authorization code, resolves the account identity, and stores the linked
// account with its token encrypted at rest.
func (h *Handler) OAuthCallback(w http.ResponseWriter, r *http.Request) {
	platform := models.Platform(mux.Vars(r)["platform"])
	code := r.URL.Query().Get("code")
	state := r.URL.Query().Get("state")

	if code == "" || state == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Missing authorization code or state")
		return
	}

	oauthState, ok := h.oauthState.ValidateState(state)
	if !ok || oauthState.Platform != platform {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid or expired state")
		return
	}

	tokenData, err := h.oauthClient.ExchangeCode(r.Context(), platform, code)
	if err != nil {
		utils.Errorf("OAuth token exchange failed for %s: %v", platform, err)
		http.Redirect(w, r, "/social-accounts?error=oauth_failed", http.StatusFound)
		return
	}

	accountName := "Unknown"
	if profile, err := h.oauthClient.FetchProfile(r.Context(), platform, tokenData.AccessToken); err == nil {
		if profile.Username != "" {
			accountName = profile.Username
		} else if profile.Name != "" {
			accountName = profile.Name
		}
	} else {
		utils.Warnf("OAuth profile fetch failed for %s: %v", platform, err)
	}

	encrypted, err := h.cipher.Encrypt(tokenData.AccessToken)
	if err != nil {
		utils.Errorf("Failed to encrypt OAuth token for %s: %v", platform, err)
		http.Redirect(w, r, "/social-accounts?error=oauth_failed", http.StatusFound)
		return
	}

	account := &models.SocialAccount{
		ID:           uuid.New().String(),
		UserID:       oauthState.UserID,
		Platform:     platform,
		AccountName:  accountName,
		AccessToken:  encrypted,
		RefreshToken: tokenData.RefreshToken,
		IsActive:     true,
		CreatedAt:    time.Now(),
	}

	if err := h.db.CreateSocialAccount(account); err != nil {
		utils.Errorf("Failed to store OAuth account for %s: %v", platform, err)
		http.Redirect(w, r, "/social-accounts?error=oauth_failed", http.StatusFound)
		return
	}

	http.Redirect(w, r, "/social-accounts?success=true&platform="+string(platform), http.StatusFound)
}
