package repository

import (
	"context"

	"elderguard-data/internal/domain"
)

// MedicalReportsRepository 医疗报告Repository接口
type MedicalReportsRepository interface {
	CreateReport(ctx context.Context, report *domain.MedicalReport) (string, error)

	// ListReports 查询用户的报告（按上传时间倒序）
	ListReports(ctx context.Context, userID string) ([]*domain.MedicalReport, error)

	// DeleteReport 删除报告（校验归属，非本人报告按不存在处理）
	DeleteReport(ctx context.Context, userID, reportID string) error
}
