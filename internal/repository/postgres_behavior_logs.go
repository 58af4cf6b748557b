package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"elderguard-data/internal/domain"
)

// PostgresBehaviorLogsRepository 行为日志Repository实现
type PostgresBehaviorLogsRepository struct {
	db *sql.DB
}

// NewPostgresBehaviorLogsRepository 创建行为日志Repository
func NewPostgresBehaviorLogsRepository(db *sql.DB) *PostgresBehaviorLogsRepository {
	return &PostgresBehaviorLogsRepository{db: db}
}

// 确保实现了接口
var _ BehaviorLogsRepository = (*PostgresBehaviorLogsRepository)(nil)

// CreateLog 写入一条行为日志
func (r *PostgresBehaviorLogsRepository) CreateLog(ctx context.Context, log *domain.BehaviorLog) (string, error) {
	if log == nil {
		return "", fmt.Errorf("log is required")
	}
	if log.UserID == "" {
		return "", fmt.Errorf("user_id is required")
	}
	if log.LogID == "" {
		log.LogID = uuid.New().String()
	}

	query := `
		INSERT INTO behavior_logs (
			log_id, user_id, description, severity, timestamp
		) VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.ExecContext(ctx, query,
		log.LogID,
		log.UserID,
		log.Description,
		log.Severity,
		log.Timestamp,
	)
	if err != nil {
		return "", fmt.Errorf("failed to create behavior log: %w", err)
	}
	return log.LogID, nil
}

// ListLogs 查询用户的行为日志（按时间倒序）
func (r *PostgresBehaviorLogsRepository) ListLogs(ctx context.Context, userID string) ([]*domain.BehaviorLog, error) {
	return r.listLogs(ctx, userID, "DESC")
}

// ListLogsChronological 查询用户的行为日志（按时间正序，认知分析用）
func (r *PostgresBehaviorLogsRepository) ListLogsChronological(ctx context.Context, userID string) ([]*domain.BehaviorLog, error) {
	return r.listLogs(ctx, userID, "ASC")
}

func (r *PostgresBehaviorLogsRepository) listLogs(ctx context.Context, userID, order string) ([]*domain.BehaviorLog, error) {
	if userID == "" {
		return nil, fmt.Errorf("user_id is required")
	}

	query := fmt.Sprintf(`
		SELECT log_id::text, user_id::text, description, severity, timestamp
		FROM behavior_logs
		WHERE user_id = $1
		ORDER BY timestamp %s
	`, order)

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list behavior logs: %w", err)
	}
	defer rows.Close()

	logs := []*domain.BehaviorLog{}
	for rows.Next() {
		var l domain.BehaviorLog
		if err := rows.Scan(
			&l.LogID,
			&l.UserID,
			&l.Description,
			&l.Severity,
			&l.Timestamp,
		); err != nil {
			return nil, fmt.Errorf("failed to scan behavior log: %w", err)
		}
		logs = append(logs, &l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate behavior logs: %w", err)
	}
	return logs, nil
}
