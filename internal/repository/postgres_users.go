package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"elderguard-data/internal/domain"
)

// PostgresUsersRepository 用户Repository实现
type PostgresUsersRepository struct {
	db *sql.DB
}

// NewPostgresUsersRepository 创建用户Repository
func NewPostgresUsersRepository(db *sql.DB) *PostgresUsersRepository {
	return &PostgresUsersRepository{db: db}
}

// 确保实现了接口
var _ UsersRepository = (*PostgresUsersRepository)(nil)

const userColumns = `
	user_id::text,
	email,
	password_hash,
	full_name,
	role,
	phone,
	address,
	age,
	blood_type,
	medical_conditions,
	handling_instructions,
	medical_history,
	emergency_contacts
`

func scanUser(row *sql.Row) (*domain.User, error) {
	var user domain.User
	err := row.Scan(
		&user.UserID,
		&user.Email,
		&user.PasswordHash,
		&user.FullName,
		&user.Role,
		&user.Phone,
		&user.Address,
		&user.Age,
		&user.BloodType,
		&user.MedicalConditions,
		&user.HandlingInstructions,
		&user.MedicalHistory,
		&user.EmergencyContacts,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUser 按主键查询用户
func (r *PostgresUsersRepository) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	if userID == "" {
		return nil, fmt.Errorf("user_id is required")
	}

	query := `SELECT ` + userColumns + ` FROM users WHERE user_id = $1`

	user, err := scanUser(r.db.QueryRowContext(ctx, query, userID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("user not found: %s", userID)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// GetUserByEmail 按邮箱查询用户（登录用）
func (r *PostgresUsersRepository) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	if email == "" {
		return nil, fmt.Errorf("email is required")
	}

	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	user, err := scanUser(r.db.QueryRowContext(ctx, query, email))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("user not found: %s", email)
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return user, nil
}

// CreateUser 创建用户，返回新用户 ID
func (r *PostgresUsersRepository) CreateUser(ctx context.Context, user *domain.User) (string, error) {
	if user == nil {
		return "", fmt.Errorf("user is required")
	}
	if user.UserID == "" {
		user.UserID = uuid.New().String()
	}

	query := `
		INSERT INTO users (
			user_id, email, password_hash, full_name, role,
			phone, address, age, blood_type, medical_conditions,
			handling_instructions, medical_history, emergency_contacts
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err := r.db.ExecContext(ctx, query,
		user.UserID,
		user.Email,
		user.PasswordHash,
		user.FullName,
		user.Role,
		user.Phone,
		user.Address,
		user.Age,
		user.BloodType,
		user.MedicalConditions,
		user.HandlingInstructions,
		user.MedicalHistory,
		user.EmergencyContacts,
	)
	if err != nil {
		return "", fmt.Errorf("failed to create user: %w", err)
	}
	return user.UserID, nil
}

// UpdateProfile 更新个人资料字段（email/role/password 保持不变）
func (r *PostgresUsersRepository) UpdateProfile(ctx context.Context, userID string, user *domain.User) error {
	if userID == "" {
		return fmt.Errorf("user_id is required")
	}
	if user == nil {
		return fmt.Errorf("user is required")
	}

	query := `
		UPDATE users SET
			full_name = $2,
			phone = $3,
			address = $4,
			age = $5,
			blood_type = $6,
			medical_conditions = $7,
			handling_instructions = $8,
			medical_history = $9,
			emergency_contacts = $10
		WHERE user_id = $1
	`

	result, err := r.db.ExecContext(ctx, query,
		userID,
		user.FullName,
		user.Phone,
		user.Address,
		user.Age,
		user.BloodType,
		user.MedicalConditions,
		user.HandlingInstructions,
		user.MedicalHistory,
		user.EmergencyContacts,
	)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("user not found: %s", userID)
	}
	return nil
}
