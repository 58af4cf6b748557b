package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"elderguard-data/internal/domain"
)

// PostgresMedicationsRepository 用药记录Repository实现
type PostgresMedicationsRepository struct {
	db *sql.DB
}

// NewPostgresMedicationsRepository 创建用药记录Repository
func NewPostgresMedicationsRepository(db *sql.DB) *PostgresMedicationsRepository {
	return &PostgresMedicationsRepository{db: db}
}

// 确保实现了接口
var _ MedicationsRepository = (*PostgresMedicationsRepository)(nil)

// CreateMedication 创建用药记录，返回新记录 ID
func (r *PostgresMedicationsRepository) CreateMedication(ctx context.Context, med *domain.Medication) (string, error) {
	if med == nil {
		return "", fmt.Errorf("medication is required")
	}
	if med.UserID == "" {
		return "", fmt.Errorf("user_id is required")
	}
	if med.MedicationID == "" {
		med.MedicationID = uuid.New().String()
	}

	query := `
		INSERT INTO medications (
			medication_id, user_id, name, dosage, timing,
			instructions, start_date, end_date
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.ExecContext(ctx, query,
		med.MedicationID,
		med.UserID,
		med.Name,
		med.Dosage,
		med.Timing,
		med.Instructions,
		med.StartDate,
		med.EndDate,
	)
	if err != nil {
		return "", fmt.Errorf("failed to create medication: %w", err)
	}
	return med.MedicationID, nil
}

// ListMedications 查询用户的用药记录
func (r *PostgresMedicationsRepository) ListMedications(ctx context.Context, userID string) ([]*domain.Medication, error) {
	if userID == "" {
		return nil, fmt.Errorf("user_id is required")
	}

	query := `
		SELECT medication_id::text, user_id::text, name, dosage, timing,
		       COALESCE(instructions, ''), start_date, end_date
		FROM medications
		WHERE user_id = $1
		ORDER BY name ASC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list medications: %w", err)
	}
	defer rows.Close()

	meds := []*domain.Medication{}
	for rows.Next() {
		var m domain.Medication
		if err := rows.Scan(
			&m.MedicationID,
			&m.UserID,
			&m.Name,
			&m.Dosage,
			&m.Timing,
			&m.Instructions,
			&m.StartDate,
			&m.EndDate,
		); err != nil {
			return nil, fmt.Errorf("failed to scan medication: %w", err)
		}
		meds = append(meds, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate medications: %w", err)
	}
	return meds, nil
}

// DeleteMedication 删除用药记录（归属校验，非本人记录按不存在处理）
func (r *PostgresMedicationsRepository) DeleteMedication(ctx context.Context, userID, medicationID string) error {
	if userID == "" || medicationID == "" {
		return fmt.Errorf("user_id and medication_id are required")
	}

	query := `DELETE FROM medications WHERE medication_id = $1 AND user_id = $2`

	result, err := r.db.ExecContext(ctx, query, medicationID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete medication: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("medication not found: %s", medicationID)
	}
	return nil
}
