package domain

import "time"

// 健康指标数据来源
const (
	MetricSourceManual       = "manual"
	MetricSourceSamsungWatch = "samsung_watch"
	MetricSourceCameraAI     = "camera_ai"
	MetricSourceDevice       = "device"
)

// HealthMetric 健康指标领域模型（对应 health_metrics 表）
// 追加写入，创建后不再修改
type HealthMetric struct {
	// 主键
	MetricID string `db:"metric_id"` // UUID, PRIMARY KEY

	// 所属用户
	UserID string `db:"user_id"` // UUID, NOT NULL, REFERENCES users(user_id)

	// 时间和来源
	Timestamp time.Time `db:"timestamp"` // TIMESTAMPTZ, NOT NULL
	Source    string    `db:"source"`    // VARCHAR(30), NOT NULL, DEFAULT 'manual'

	// 核心生命体征
	HeartRate    *int `db:"heart_rate"`    // INTEGER, nullable
	Steps        *int `db:"steps"`         // INTEGER, nullable
	SleepMinutes *int `db:"sleep_minutes"` // INTEGER, nullable
	SpO2         *int `db:"spo2"`          // INTEGER, nullable

	// 跌倒/安全标记
	FallDetected    bool `db:"fall_detected"`    // BOOLEAN, NOT NULL, DEFAULT FALSE
	InactivityAlert bool `db:"inactivity_alert"` // BOOLEAN, NOT NULL, DEFAULT FALSE
}
