package repository

import (
	"context"

	"elderguard-data/internal/domain"
)

// HealthMetricsRepository 健康指标Repository接口
// 指标为追加写入，无更新/删除操作
type HealthMetricsRepository interface {
	CreateMetric(ctx context.Context, metric *domain.HealthMetric) (string, error)

	// CreateMetricsBatch 批量写入（健康数据导入用），返回写入条数
	CreateMetricsBatch(ctx context.Context, metrics []*domain.HealthMetric) (int, error)

	// ListRecentMetrics 查询最近的指标（按时间倒序）
	ListRecentMetrics(ctx context.Context, userID string, limit int) ([]*domain.HealthMetric, error)

	// GetLatestMetric 查询最新一条指标（不活动检测用）
	GetLatestMetric(ctx context.Context, userID string) (*domain.HealthMetric, error)
}
