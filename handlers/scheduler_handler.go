package handlers

import (
	"net/http"

	"crosspost/models"
	"crosspost/utils"

	"github.com/gorilla/mux"
)

// SchedulerStatus reports the live armed entries for operational visibility.
func (h *Handler) SchedulerStatus(w http.ResponseWriter, r *http.Request) {
	utils.RespondWithJSON(w, http.StatusOK, models.SchedulerStatusResponse{
		ScheduledCount: h.scheduler.ScheduledCount(),
		ScheduledPosts: h.scheduler.ScheduledIDs(),
	})
}

// CancelScheduledPost disarms a scheduled post and marks it cancelled.
// Cancelling a post that already fired, was already cancelled, or was never
// scheduled returns 404 and changes nothing.
func (h *Handler) CancelScheduledPost(w http.ResponseWriter, r *http.Request) {
	postID := mux.Vars(r)["postId"]

	if !h.scheduler.Cancel(postID) {
		utils.RespondWithError(w, http.StatusNotFound, "Scheduled post not found")
		return
	}

	if err := h.db.UpdatePostStatus(postID, models.StatusCancelled); err != nil {
		utils.Errorf("Error marking post %s cancelled: %v", postID, err)
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Post cancelled successfully"})
}
