package repository

import (
	"context"

	"elderguard-data/internal/domain"
)

// BehaviorLogsRepository 行为日志Repository接口
// 日志为追加写入，创建后不再修改
type BehaviorLogsRepository interface {
	CreateLog(ctx context.Context, log *domain.BehaviorLog) (string, error)

	// ListLogs 查询用户的行为日志（按时间倒序，API 展示用）
	ListLogs(ctx context.Context, userID string) ([]*domain.BehaviorLog, error)

	// ListLogsChronological 查询用户的全部行为日志（按时间正序，认知分析用）
	ListLogsChronological(ctx context.Context, userID string) ([]*domain.BehaviorLog, error)
}
