package repository

import (
	"context"

	"elderguard-data/internal/domain"
)

// UsersRepository 用户Repository接口
// 使用强类型领域模型，不使用map[string]any
type UsersRepository interface {
	GetUser(ctx context.Context, userID string) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	CreateUser(ctx context.Context, user *domain.User) (string, error)

	// UpdateProfile 更新个人资料字段（email/role/password 不在此处更新）
	UpdateProfile(ctx context.Context, userID string, user *domain.User) error
}
