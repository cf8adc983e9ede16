package database

import (
	"database/sql"
	"errors"
	"time"

	"crosspost/models"
	"crosspost/utils"

	"github.com/lib/pq"
)

func (d *Database) CreatePost(post *models.Post) error {
	query := `INSERT INTO posts (id, user_id, title, description, platforms, status, telegram_chat_id, scheduled_for, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	platforms := make([]string, len(post.Platforms))
	for i, p := range post.Platforms {
		platforms[i] = string(p)
	}

	_, err := d.DB.Exec(query, post.ID, post.UserID, post.Title, post.Description,
		pq.Array(platforms), post.Status, post.TelegramChatID, post.ScheduledFor, post.CreatedAt)
	return err
}

func (d *Database) GetPost(id string) (*models.Post, error) {
	post := &models.Post{}
	var platforms []string

	query := `SELECT id, user_id, title, description, platforms, status, telegram_chat_id, scheduled_for, created_at
			  FROM posts WHERE id = $1`

	err := d.DB.QueryRow(query, id).Scan(&post.ID, &post.UserID, &post.Title, &post.Description,
		pq.Array(&platforms), &post.Status, &post.TelegramChatID, &post.ScheduledFor, &post.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	post.Platforms = toPlatforms(platforms)
	return post, nil
}

func (d *Database) GetPostsByUserID(userID string, limit int) ([]*models.Post, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `SELECT id, user_id, title, description, platforms, status, telegram_chat_id, scheduled_for, created_at
			  FROM posts WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2`

	rows, err := d.DB.Query(query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanPosts(rows)
}

// GetPendingScheduled returns every pending post that carries a scheduled
// time, regardless of whether that time has already elapsed. The scheduler
// decides at boot what to do with overdue entries.
func (d *Database) GetPendingScheduled() ([]*models.Post, error) {
	query := `SELECT id, user_id, title, description, platforms, status, telegram_chat_id, scheduled_for, created_at
			  FROM posts WHERE status = $1 AND scheduled_for IS NOT NULL ORDER BY scheduled_for`

	rows, err := d.DB.Query(query, models.StatusPending)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanPosts(rows)
}

// ListOverduePending returns pending posts whose scheduled time has elapsed.
// Used by the recovery sweep.
func (d *Database) ListOverduePending(now time.Time) ([]*models.Post, error) {
	query := `SELECT id, user_id, title, description, platforms, status, telegram_chat_id, scheduled_for, created_at
			  FROM posts WHERE status = $1 AND scheduled_for IS NOT NULL AND scheduled_for <= $2
			  ORDER BY scheduled_for`

	rows, err := d.DB.Query(query, models.StatusPending, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanPosts(rows)
}

// UpdatePostStatus transitions a post out of pending. The WHERE clause keeps
// transitions forward-only: a posted, failed or cancelled post never moves
// again, even if a stale timer or a concurrent sweep tries to.
func (d *Database) UpdatePostStatus(id string, status models.PostStatus) error {
	result, err := d.DB.Exec(`UPDATE posts SET status = $1 WHERE id = $2 AND status = $3`,
		status, id, models.StatusPending)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

func scanPosts(rows *sql.Rows) ([]*models.Post, error) {
	posts := []*models.Post{}
	for rows.Next() {
		post := &models.Post{}
		var platforms []string

		err := rows.Scan(&post.ID, &post.UserID, &post.Title, &post.Description,
			pq.Array(&platforms), &post.Status, &post.TelegramChatID, &post.ScheduledFor, &post.CreatedAt)
		if err != nil {
			utils.Debugf("Skipping unscannable post row: %v", err)
			continue
		}

		post.Platforms = toPlatforms(platforms)
		posts = append(posts, post)
	}

	return posts, rows.Err()
}

func toPlatforms(names []string) []models.Platform {
	platforms := make([]models.Platform, len(names))
	for i, name := range names {
		platforms[i] = models.Platform(name)
	}
	return platforms
}
