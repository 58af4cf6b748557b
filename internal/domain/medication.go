package domain

import "time"

// Medication 用药记录领域模型（对应 medications 表）
type Medication struct {
	// 主键
	MedicationID string `db:"medication_id"` // UUID, PRIMARY KEY

	// 所属用户
	UserID string `db:"user_id"` // UUID, NOT NULL, REFERENCES users(user_id)

	// 用药信息
	Name         string `db:"name"`         // VARCHAR(100), NOT NULL
	Dosage       string `db:"dosage"`       // VARCHAR(50), NOT NULL
	Timing       string `db:"timing"`       // VARCHAR(100), NOT NULL（如 "08:00, 20:00"）
	Instructions string `db:"instructions"` // TEXT, nullable（如 "Before food"）

	// 用药周期
	StartDate *time.Time `db:"start_date"` // TIMESTAMPTZ, nullable
	EndDate   *time.Time `db:"end_date"`   // TIMESTAMPTZ, nullable
}
