package repository

import (
	"context"

	"elderguard-data/internal/domain"
)

// MedicationsRepository 用药记录Repository接口
type MedicationsRepository interface {
	CreateMedication(ctx context.Context, med *domain.Medication) (string, error)
	ListMedications(ctx context.Context, userID string) ([]*domain.Medication, error)

	// DeleteMedication 删除用药记录（校验归属，非本人记录按不存在处理）
	DeleteMedication(ctx context.Context, userID, medicationID string) error
}
