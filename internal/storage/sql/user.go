package sql

import (
	"database/sql"
	"errors"
	"strings"

	"upaay/backend/internal/domain"
	"upaay/backend/internal/storage"
)

// CreateUser 创建新用户
func (s *Store) CreateUser(user *domain.User) error {
	query := s.rebind(`
		INSERT INTO users (id, email, password_hash, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`)
	_, err := s.db.Exec(query,
		user.ID,
		user.Email,
		user.PasswordHash,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil && isDuplicateKey(err) {
		return storage.ErrEmailExists
	}
	return err
}

// GetUserByEmail 根据邮箱获取用户
func (s *Store) GetUserByEmail(email string) (*domain.User, error) {
	query := s.rebind(`
		SELECT id, email, password_hash, created_at, updated_at
		FROM users
		WHERE email = ?
	`)
	return s.scanUser(s.db.QueryRow(query, email))
}

// GetUserByID 根据 ID 获取用户
func (s *Store) GetUserByID(id string) (*domain.User, error) {
	query := s.rebind(`
		SELECT id, email, password_hash, created_at, updated_at
		FROM users
		WHERE id = ?
	`)
	return s.scanUser(s.db.QueryRow(query, id))
}

func (s *Store) scanUser(row *sql.Row) (*domain.User, error) {
	var user domain.User
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// isDuplicateKey 识别两种驱动的唯一约束冲突错误
func isDuplicateKey(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "Duplicate entry") || // mysql 1062
		strings.Contains(msg, "duplicate key value") // postgres 23505
}
