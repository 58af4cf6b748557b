package domain

import "time"

// 行为严重程度
const (
	SeverityLow    = "Low"
	SeverityMedium = "Medium"
	SeverityHigh   = "High"
)

// BehaviorLog 认知行为日志领域模型（对应 behavior_logs 表）
// 追加写入，创建后不再修改；仅随用户删除级联删除
type BehaviorLog struct {
	// 主键
	LogID string `db:"log_id"` // UUID, PRIMARY KEY

	// 所属用户
	UserID string `db:"user_id"` // UUID, NOT NULL, REFERENCES users(user_id)

	// 行为描述（如 "Forgot name of grandchild"）
	Description string `db:"description"` // TEXT, NOT NULL

	// 严重程度
	Severity string `db:"severity"` // VARCHAR(10), NOT NULL, CHECK IN ('Low', 'Medium', 'High')

	// 记录时间
	Timestamp time.Time `db:"timestamp"` // TIMESTAMPTZ, NOT NULL
}
