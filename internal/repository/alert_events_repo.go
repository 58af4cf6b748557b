package repository

import (
	"context"
	"encoding/json"

	"elderguard-data/internal/domain"
)

// AlertEventsRepository 报警事件Repository接口
type AlertEventsRepository interface {
	CreateAlertEvent(ctx context.Context, event *domain.AlertEvent) (string, error)

	// UpdateNotifiedContacts 分发完成后回写分发结果
	UpdateNotifiedContacts(ctx context.Context, eventID string, results json.RawMessage) error

	// ListAlertEvents 查询用户的报警历史（按触发时间倒序）
	ListAlertEvents(ctx context.Context, userID string, limit int) ([]*domain.AlertEvent, error)
}
