package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"elderguard-data/internal/domain"
)

// PostgresAlertEventsRepository 报警事件Repository实现
type PostgresAlertEventsRepository struct {
	db *sql.DB
}

// NewPostgresAlertEventsRepository 创建报警事件Repository
func NewPostgresAlertEventsRepository(db *sql.DB) *PostgresAlertEventsRepository {
	return &PostgresAlertEventsRepository{db: db}
}

// 确保实现了接口
var _ AlertEventsRepository = (*PostgresAlertEventsRepository)(nil)

// CreateAlertEvent 写入报警事件，返回事件 ID
func (r *PostgresAlertEventsRepository) CreateAlertEvent(ctx context.Context, event *domain.AlertEvent) (string, error) {
	if event == nil {
		return "", fmt.Errorf("event is required")
	}
	if event.UserID == "" {
		return "", fmt.Errorf("user_id is required")
	}
	if event.EventID == "" {
		event.EventID = uuid.New().String()
	}
	if len(event.NotifiedContacts) == 0 {
		event.NotifiedContacts = json.RawMessage("[]")
	}

	query := `
		INSERT INTO alert_events (
			event_id, user_id, location, triggered_at, notified_contacts, created_at
		) VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.ExecContext(ctx, query,
		event.EventID,
		event.UserID,
		event.Location,
		event.TriggeredAt,
		string(event.NotifiedContacts),
		event.CreatedAt,
	)
	if err != nil {
		return "", fmt.Errorf("failed to create alert event: %w", err)
	}
	return event.EventID, nil
}

// UpdateNotifiedContacts 分发完成后回写分发结果
func (r *PostgresAlertEventsRepository) UpdateNotifiedContacts(ctx context.Context, eventID string, results json.RawMessage) error {
	if eventID == "" {
		return fmt.Errorf("event_id is required")
	}
	if len(results) == 0 {
		results = json.RawMessage("[]")
	}

	query := `UPDATE alert_events SET notified_contacts = $2 WHERE event_id = $1`

	result, err := r.db.ExecContext(ctx, query, eventID, string(results))
	if err != nil {
		return fmt.Errorf("failed to update notified contacts: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("alert event not found: %s", eventID)
	}
	return nil
}

// ListAlertEvents 查询用户的报警历史（按触发时间倒序）
func (r *PostgresAlertEventsRepository) ListAlertEvents(ctx context.Context, userID string, limit int) ([]*domain.AlertEvent, error) {
	if userID == "" {
		return nil, fmt.Errorf("user_id is required")
	}
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT event_id::text, user_id::text, location, triggered_at, notified_contacts, created_at
		FROM alert_events
		WHERE user_id = $1
		ORDER BY triggered_at DESC
		LIMIT $2
	`

	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list alert events: %w", err)
	}
	defer rows.Close()

	events := []*domain.AlertEvent{}
	for rows.Next() {
		var e domain.AlertEvent
		var notified string
		if err := rows.Scan(
			&e.EventID,
			&e.UserID,
			&e.Location,
			&e.TriggeredAt,
			&notified,
			&e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan alert event: %w", err)
		}
		e.NotifiedContacts = json.RawMessage(notified)
		events = append(events, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate alert events: %w", err)
	}
	return events, nil
}
