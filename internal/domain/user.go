package domain

import "database/sql"

// 用户角色
const (
	RoleElder     = "elder"
	RoleCaregiver = "caregiver"
	RoleAdmin     = "admin"
)

// User 用户领域模型（对应 users 表）
type User struct {
	// 主键
	UserID string `db:"user_id"` // UUID, PRIMARY KEY

	// 账号信息
	Email        string `db:"email"`         // VARCHAR(255), NOT NULL, UNIQUE
	PasswordHash string `db:"password_hash"` // TEXT, NOT NULL（bcrypt）

	// 基本信息
	FullName string         `db:"full_name"` // VARCHAR(100), NOT NULL
	Role     string         `db:"role"`      // VARCHAR(20), NOT NULL, CHECK IN ('elder', 'caregiver', 'admin')
	Phone    sql.NullString `db:"phone"`     // VARCHAR(25), nullable
	Address  sql.NullString `db:"address"`   // TEXT, nullable

	// 患者详情
	Age                  sql.NullInt64  `db:"age"`                   // INTEGER, nullable
	BloodType            sql.NullString `db:"blood_type"`            // VARCHAR(10), nullable
	MedicalConditions    sql.NullString `db:"medical_conditions"`    // TEXT, nullable（逗号分隔）
	HandlingInstructions sql.NullString `db:"handling_instructions"` // TEXT, nullable（护理注意事项）
	MedicalHistory       sql.NullString `db:"medical_history"`       // TEXT, nullable

	// 紧急联系人（序列化 JSON 数组，按需解析为 []Contact）
	EmergencyContacts sql.NullString `db:"emergency_contacts"` // TEXT, nullable
}
