package domain

import (
	"encoding/json"
	"time"
)

// 消息分发状态
const (
	DispatchSimulated = "simulated"
	DispatchSent      = "sent"
	DispatchError     = "error"
)

// DispatchResult 单条消息分发结果（每个联系人产生一条，不单独持久化）
type DispatchResult struct {
	Status    string `json:"status"`    // simulated / sent / error
	Recipient string `json:"recipient"` // 接收人电话
	Detail    string `json:"detail"`    // 消息内容或错误信息
}

// AlertEvent 报警事件领域模型（对应 alert_events 表）
// 每次跌倒触发写入一条；notified_contacts 在分发完成后回写
type AlertEvent struct {
	// 主键
	EventID string `db:"event_id"` // UUID, PRIMARY KEY

	// 触发用户
	UserID string `db:"user_id"` // UUID, NOT NULL, REFERENCES users(user_id)

	// 位置标签
	Location string `db:"location"` // VARCHAR(200), NOT NULL

	// 触发时间
	TriggeredAt time.Time `db:"triggered_at"` // TIMESTAMPTZ, NOT NULL

	// 分发结果（JSONB, DEFAULT '[]'::JSONB）
	NotifiedContacts json.RawMessage `db:"notified_contacts"`

	// 时间戳
	CreatedAt time.Time `db:"created_at"` // TIMESTAMPTZ, NOT NULL
}
