package database

import (
	"database/sql"
	"errors"

	"crosspost/models"

	"github.com/lib/pq"
)

// SaveBotSettings inserts or replaces the bot settings for one user.
func (d *Database) SaveBotSettings(settings *models.BotSettings) error {
	query := `INSERT INTO bot_settings (id, user_id, telegram_chat_id, default_platforms, is_active, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  ON CONFLICT (user_id) DO UPDATE SET
			    telegram_chat_id = EXCLUDED.telegram_chat_id,
			    default_platforms = EXCLUDED.default_platforms,
			    is_active = EXCLUDED.is_active`

	platforms := make([]string, len(settings.DefaultPlatforms))
	for i, p := range settings.DefaultPlatforms {
		platforms[i] = string(p)
	}

	_, err := d.DB.Exec(query, settings.ID, settings.UserID, settings.TelegramChatID,
		pq.Array(platforms), settings.IsActive, settings.CreatedAt)
	return err
}

func (d *Database) GetBotSettingsByUserID(userID string) (*models.BotSettings, error) {
	settings := &models.BotSettings{}
	var platforms []string

	query := `SELECT id, user_id, telegram_chat_id, default_platforms, is_active, created_at
			  FROM bot_settings WHERE user_id = $1`

	err := d.DB.QueryRow(query, userID).Scan(&settings.ID, &settings.UserID,
		&settings.TelegramChatID, pq.Array(&platforms), &settings.IsActive, &settings.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	settings.DefaultPlatforms = toPlatforms(platforms)
	return settings, nil
}
