package service

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"elderguard-data/internal/domain"
	"elderguard-data/internal/repository"
)

// ProfileUpdateRequest 个人资料更新请求
// email/role 不可通过此接口修改；nil 字段保持原值
type ProfileUpdateRequest struct {
	FullName             *string `json:"full_name"`
	Phone                *string `json:"phone"`
	Address              *string `json:"address"`
	Age                  *int    `json:"age"`
	BloodType            *string `json:"blood_type"`
	MedicalConditions    *string `json:"medical_conditions"`
	HandlingInstructions *string `json:"handling_instructions"`
	MedicalHistory       *string `json:"medical_history"`
	EmergencyContacts    *string `json:"emergency_contacts"`
}

// ProfileService 个人资料服务
type ProfileService struct {
	usersRepo repository.UsersRepository
	logger    *zap.Logger
}

// NewProfileService 创建个人资料服务
func NewProfileService(usersRepo repository.UsersRepository, logger *zap.Logger) *ProfileService {
	return &ProfileService{usersRepo: usersRepo, logger: logger}
}

// GetProfile 查询用户资料
func (s *ProfileService) GetProfile(ctx context.Context, userID string) (*domain.User, error) {
	return s.usersRepo.GetUser(ctx, userID)
}

// UpdateProfile 更新用户资料并返回更新后的完整记录
func (s *ProfileService) UpdateProfile(ctx context.Context, current *domain.User, req ProfileUpdateRequest) (*domain.User, error) {
	updated := *current

	if req.FullName != nil {
		updated.FullName = *req.FullName
	}
	if req.Phone != nil {
		updated.Phone = nullString(*req.Phone)
	}
	if req.Address != nil {
		updated.Address = nullString(*req.Address)
	}
	if req.Age != nil {
		updated.Age = sql.NullInt64{Int64: int64(*req.Age), Valid: true}
	}
	if req.BloodType != nil {
		updated.BloodType = nullString(*req.BloodType)
	}
	if req.MedicalConditions != nil {
		updated.MedicalConditions = nullString(*req.MedicalConditions)
	}
	if req.HandlingInstructions != nil {
		updated.HandlingInstructions = nullString(*req.HandlingInstructions)
	}
	if req.MedicalHistory != nil {
		updated.MedicalHistory = nullString(*req.MedicalHistory)
	}
	if req.EmergencyContacts != nil {
		// 联系人列表不强制校验格式，报警路径解析失败时软降级
		updated.EmergencyContacts = nullString(*req.EmergencyContacts)
	}

	if err := s.usersRepo.UpdateProfile(ctx, current.UserID, &updated); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	s.logger.Info("Profile updated",
		zap.String("user_id", current.UserID),
	)
	return &updated, nil
}

func nullString(v string) sql.NullString {
	return sql.NullString{String: v, Valid: v != ""}
}
