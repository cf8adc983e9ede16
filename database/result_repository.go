package database

import (
	"time"

	"crosspost/models"
)

// SavePostResult persists one delivery outcome for a post.
func (d *Database) SavePostResult(postID string, outcome models.DeliveryOutcome) error {
	query := `INSERT INTO post_results (post_id, platform, success, platform_post_id, error_message, posted_at)
			  VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := d.DB.Exec(query, postID, outcome.Platform, outcome.Success,
		outcome.PlatformPostID, outcome.Error, time.Now())
	return err
}

func (d *Database) GetPostResults(postID string) ([]*models.PostResult, error) {
	query := `SELECT id, post_id, platform, success, platform_post_id, error_message, posted_at
			  FROM post_results WHERE post_id = $1 ORDER BY posted_at`

	rows, err := d.DB.Query(query, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := []*models.PostResult{}
	for rows.Next() {
		result := &models.PostResult{}

		err := rows.Scan(&result.ID, &result.PostID, &result.Platform, &result.Success,
			&result.PlatformPostID, &result.ErrorMessage, &result.PostedAt)
		if err != nil {
			continue
		}

		results = append(results, result)
	}

	return results, rows.Err()
}
