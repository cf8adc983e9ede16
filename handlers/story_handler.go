package handlers

import (
	"net/http"

	"crosspost/utils"
)

// PostStory publishes an ephemeral story to the user's active Instagram and
// Snapchat accounts. Accepts multipart form data with fields "content",
// "user_id" and an optional "image" file validated by its magic numbers.
func (h *Handler) PostStory(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(h.cfg.MaxUploadSize); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid multipart payload")
		return
	}

	content := r.FormValue("content")
	userID := r.FormValue("user_id")
	if content == "" || userID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Content and user_id are required")
		return
	}

	imageURL := ""
	if file, _, err := r.FormFile("image"); err == nil {
		defer file.Close()

		url, err := h.storage.SaveImage(file)
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		imageURL = url
	}

	results, err := h.delivery.DeliverStory(r.Context(), userID, content, imageURL)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to post story")
		return
	}
	if len(results) == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "No active Instagram or Snapchat accounts found")
		return
	}

	platforms := make([]string, len(results))
	for i, result := range results {
		platforms[i] = string(result.Platform)
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"message":   "Story posting completed",
		"results":   results,
		"platforms": platforms,
	})
}
