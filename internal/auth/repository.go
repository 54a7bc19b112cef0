package auth

import (
	"database/sql"
	"errors"
	"time"
)

var ErrUserNotFound = errors.New("user not found")

type User struct {
	ID           string
	Email        string
	Login        string
	PasswordHash string
	HashToken    string
	CreatedAt    time.Time
}

type Repository interface {
	getUserByLoginOrEmail(loginOrEmail string) (*User, error)
	getUserByID(id string) (*User, error)
	updateHashToken(userID, hashToken string) error
}

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) Repository {
	return &userRepository{
		db: db,
	}
}

func (r *userRepository) getUserByLoginOrEmail(loginOrEmail string) (*User, error) {
	query := `
		SELECT id, email, login, password_hash, hash_token, created_at
		FROM users
		WHERE login = $1 OR email = $1
	`
	var user User
	err := r.db.QueryRow(query, loginOrEmail).Scan(
		&user.ID, &user.Email, &user.Login, &user.PasswordHash, &user.HashToken, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) getUserByID(id string) (*User, error) {
	query := `
		SELECT id, email, login, password_hash, hash_token, created_at
		FROM users
		WHERE id = $1
	`
	var user User
	err := r.db.QueryRow(query, id).Scan(
		&user.ID, &user.Email, &user.Login, &user.PasswordHash, &user.HashToken, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) updateHashToken(userID, hashToken string) error {
	_, err := r.db.Exec(`UPDATE users SET hash_token = $2, updated_at = NOW() WHERE id = $1`, userID, hashToken)
	return err
}
