package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"crosspost/database"
	"crosspost/models"
	"crosspost/utils"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// CreatePost stores a post and either schedules it for later delivery or
// delivers it synchronously before responding.
func (h *Handler) CreatePost(w http.ResponseWriter, r *http.Request) {
	var req models.CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if req.UserID == "" || req.Title == "" || req.Description == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "user_id, title and description are required")
		return
	}
	if len(req.Platforms) == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "At least one platform is required")
		return
	}

	post := &models.Post{
		ID:             uuid.New().String(),
		UserID:         req.UserID,
		Title:          req.Title,
		Description:    req.Description,
		Platforms:      req.Platforms,
		Status:         models.StatusPending,
		TelegramChatID: req.TelegramChatID,
		ScheduledFor:   req.ScheduledFor,
		CreatedAt:      time.Now(),
	}

	if err := h.db.CreatePost(post); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create post")
		return
	}

	if post.ScheduledFor != nil && post.ScheduledFor.After(time.Now()) {
		h.scheduler.Schedule(post.ID, *post.ScheduledFor)
		utils.RespondWithJSON(w, http.StatusCreated, models.PublishResponse{
			Post:    post,
			Message: "Post scheduled successfully",
		})
		return
	}

	results := h.delivery.DeliverPost(r.Context(), post)

	successCount := 0
	for _, result := range results {
		if result.Success {
			successCount++
		}
	}

	newStatus := models.StatusFailed
	if successCount > 0 {
		newStatus = models.StatusPosted
	}
	if err := h.db.UpdatePostStatus(post.ID, newStatus); err != nil {
		utils.Errorf("Error updating status for post %s: %v", post.ID, err)
	}
	post.Status = newStatus

	utils.RespondWithJSON(w, http.StatusCreated, models.PublishResponse{
		Post:    post,
		Results: results,
	})
}

func (h *Handler) GetPosts(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	posts, err := h.db.GetPostsByUserID(userID, limit)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch posts")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, posts)
}

// GetPost returns one post together with its delivery-outcome history.
func (h *Handler) GetPost(w http.ResponseWriter, r *http.Request) {
	postID := mux.Vars(r)["id"]

	post, err := h.db.GetPost(postID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, "Post not found")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch post")
		return
	}

	results, err := h.db.GetPostResults(postID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch post results")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"post":    post,
		"results": results,
	})
}

// TestConnection checks whether a platform token looks usable.
func (h *Handler) TestConnection(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Platform    models.Platform `json:"platform"`
		AccessToken string          `json:"access_token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	valid := h.delivery.TestConnection(req.Platform, req.AccessToken)
	utils.RespondWithJSON(w, http.StatusOK, map[string]bool{"valid": valid})
}
