package database

import (
	"database/sql"
	"errors"

	"crosspost/models"
)

func (d *Database) CreateSocialAccount(account *models.SocialAccount) error {
	query := `INSERT INTO social_accounts (id, user_id, platform, account_name, access_token, refresh_token, is_active, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := d.DB.Exec(query, account.ID, account.UserID, account.Platform, account.AccountName,
		account.AccessToken, account.RefreshToken, account.IsActive, account.CreatedAt)
	return err
}

func (d *Database) GetSocialAccountsByUserID(userID string) ([]*models.SocialAccount, error) {
	query := `SELECT id, user_id, platform, account_name, access_token, refresh_token, is_active, created_at
			  FROM social_accounts WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := d.DB.Query(query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	accounts := []*models.SocialAccount{}
	for rows.Next() {
		account := &models.SocialAccount{}
		var refreshToken sql.NullString

		err := rows.Scan(&account.ID, &account.UserID, &account.Platform, &account.AccountName,
			&account.AccessToken, &refreshToken, &account.IsActive, &account.CreatedAt)
		if err != nil {
			continue
		}

		account.RefreshToken = refreshToken.String
		accounts = append(accounts, account)
	}

	return accounts, rows.Err()
}

// GetActiveAccount returns the user's active account for one platform.
func (d *Database) GetActiveAccount(userID string, platform models.Platform) (*models.SocialAccount, error) {
	account := &models.SocialAccount{}
	var refreshToken sql.NullString

	query := `SELECT id, user_id, platform, account_name, access_token, refresh_token, is_active, created_at
			  FROM social_accounts WHERE user_id = $1 AND platform = $2 AND is_active = true
			  ORDER BY created_at DESC LIMIT 1`

	err := d.DB.QueryRow(query, userID, platform).Scan(&account.ID, &account.UserID,
		&account.Platform, &account.AccountName, &account.AccessToken, &refreshToken,
		&account.IsActive, &account.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	account.RefreshToken = refreshToken.String
	return account, nil
}

func (d *Database) UpdateSocialAccountStatus(id string, isActive bool) error {
	result, err := d.DB.Exec(`UPDATE social_accounts SET is_active = $1 WHERE id = $2`, isActive, id)
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
