package storage

import (
	"errors"

	"upaay/backend/internal/domain"
)

var (
	// ErrUserNotFound 用户未找到错误
	ErrUserNotFound = errors.New("user not found")
	// ErrEmailExists 邮箱已注册错误
	ErrEmailExists = errors.New("email already registered")
)

// UserRepository 定义用户数据存取操作。
type UserRepository interface {
	CreateUser(user *domain.User) error
	GetUserByEmail(email string) (*domain.User, error)
	GetUserByID(id string) (*domain.User, error)
}

// Store 聚合仓储接口与生命周期管理。
type Store interface {
	UserRepository
	Close() error
	Health() error
}
