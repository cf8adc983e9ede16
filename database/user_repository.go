package database

import (
	"database/sql"
	"errors"

	"crosspost/models"
)

func (d *Database) CreateUser(user *models.User) error {
	query := `INSERT INTO users (id, username, password, is_admin, created_at)
			  VALUES ($1, $2, $3, $4, $5)`

	_, err := d.DB.Exec(query, user.ID, user.Username, user.Password, user.IsAdmin, user.CreatedAt)
	return err
}

func (d *Database) GetUser(id string) (*models.User, error) {
	user := &models.User{}

	query := `SELECT id, username, password, is_admin, created_at FROM users WHERE id = $1`

	err := d.DB.QueryRow(query, id).Scan(&user.ID, &user.Username, &user.Password,
		&user.IsAdmin, &user.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return user, nil
}

func (d *Database) GetUserByUsername(username string) (*models.User, error) {
	user := &models.User{}

	query := `SELECT id, username, password, is_admin, created_at FROM users WHERE username = $1`

	err := d.DB.QueryRow(query, username).Scan(&user.ID, &user.Username, &user.Password,
		&user.IsAdmin, &user.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return user, nil
}

// AdminExists reports whether any admin user has been created yet. The setup
// endpoint is open only while this returns false.
func (d *Database) AdminExists() (bool, error) {
	var exists bool
	err := d.DB.QueryRow(`SELECT EXISTS(SELECT 1 FROM users WHERE is_admin = true)`).Scan(&exists)
	return exists, err
}
