package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"elderguard-data/internal/domain"
	"elderguard-data/internal/repository"
)

const alertMessageTemplate = "SOS ALERT! %s needs help. Location: %s. Please check the ElderGuard App immediately."

// Dispatcher 消息分发接口（WhatsAppClient 实现）
type Dispatcher interface {
	Send(ctx context.Context, to, body string) domain.DispatchResult
}

// dispatchJob 一次报警的分发任务
type dispatchJob struct {
	eventID  string
	userName string
	location string
	contacts []domain.Contact
}

// TriggerFallAlertResponse 跌倒报警响应
type TriggerFallAlertResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// AlertService 紧急报警协调服务
// 触发路径同步完成持久化，消息分发交给后台worker异步执行
type AlertService struct {
	usersRepo   repository.UsersRepository
	metricsRepo repository.HealthMetricsRepository
	alertsRepo  repository.AlertEventsRepository
	dispatcher  Dispatcher

	queue           chan dispatchJob
	defaultLocation string
	logger          *zap.Logger
}

// NewAlertService 创建报警服务
func NewAlertService(
	usersRepo repository.UsersRepository,
	metricsRepo repository.HealthMetricsRepository,
	alertsRepo repository.AlertEventsRepository,
	dispatcher Dispatcher,
	queueSize int,
	defaultLocation string,
	logger *zap.Logger,
) *AlertService {
	if queueSize <= 0 {
		queueSize = 64
	}
	return &AlertService{
		usersRepo:       usersRepo,
		metricsRepo:     metricsRepo,
		alertsRepo:      alertsRepo,
		dispatcher:      dispatcher,
		queue:           make(chan dispatchJob, queueSize),
		defaultLocation: defaultLocation,
		logger:          logger,
	}
}

// TriggerFallAlert 处理一次跌倒事件
// 同步步骤：写入跌倒指标、写入报警事件、入队分发任务
// 分发结果不在响应中等待，由worker完成后回写数据库
func (s *AlertService) TriggerFallAlert(ctx context.Context, userID, location string) (*TriggerFallAlertResponse, error) {
	user, err := s.usersRepo.GetUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if location == "" {
		location = s.defaultLocation
	}
	now := time.Now()

	// 1. 记录跌倒指标
	if _, err := s.metricsRepo.CreateMetric(ctx, &domain.HealthMetric{
		UserID:       userID,
		Timestamp:    now,
		Source:       domain.MetricSourceCameraAI,
		FallDetected: true,
	}); err != nil {
		return nil, fmt.Errorf("failed to record fall metric: %w", err)
	}

	// 2. 写入报警事件
	eventID, err := s.alertsRepo.CreateAlertEvent(ctx, &domain.AlertEvent{
		UserID:      userID,
		Location:    location,
		TriggeredAt: now,
		CreatedAt:   now,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create alert event: %w", err)
	}

	// 3. 解析紧急联系人（解析失败降级为空列表，报警流程不中断）
	contacts, ok := domain.ParseContacts(user.EmergencyContacts.String)
	if !ok {
		s.logger.Warn("Failed to parse emergency contacts, no recipients for alert",
			zap.String("user_id", userID),
			zap.String("event_id", eventID),
		)
	}

	// 4. 入队分发任务（非阻塞：队列满时丢弃并记录，触发路径不等待）
	job := dispatchJob{
		eventID:  eventID,
		userName: user.FullName,
		location: location,
		contacts: contacts,
	}
	select {
	case s.queue <- job:
	default:
		s.logger.Error("Dispatch queue full, dropping alert dispatch",
			zap.String("event_id", eventID),
			zap.String("user_id", userID),
		)
	}

	s.logger.Info("Fall alert triggered",
		zap.String("user_id", userID),
		zap.String("event_id", eventID),
		zap.String("location", location),
		zap.Int("contact_count", len(contacts)),
	)

	return &TriggerFallAlertResponse{
		Status:  "alert_sent",
		Message: "Fall detected! escalating to emergency contacts.",
	}, nil
}

// ListAlerts 查询用户的报警历史
func (s *AlertService) ListAlerts(ctx context.Context, userID string, limit int) ([]*domain.AlertEvent, error) {
	return s.alertsRepo.ListAlertEvents(ctx, userID, limit)
}

// StartDispatchWorker 启动分发worker（阻塞运行直到ctx取消）
func (s *AlertService) StartDispatchWorker(ctx context.Context) error {
	s.logger.Info("Alert dispatch worker started")

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Alert dispatch worker stopped")
			return nil
		case job := <-s.queue:
			s.dispatch(ctx, job)
		}
	}
}

// dispatch 对单次报警做联系人扇出
// 逐个顺序发送，单条失败不影响后续联系人
func (s *AlertService) dispatch(ctx context.Context, job dispatchJob) {
	message := fmt.Sprintf(alertMessageTemplate, job.userName, job.location)

	results := make([]domain.DispatchResult, 0, len(job.contacts))
	for _, contact := range job.contacts {
		if contact.Phone == "" {
			s.logger.Warn("Skipping contact without phone number",
				zap.String("event_id", job.eventID),
				zap.String("contact_name", contact.Name),
			)
			continue
		}
		results = append(results, s.dispatcher.Send(ctx, contact.Phone, message))
	}

	raw, err := json.Marshal(results)
	if err != nil {
		s.logger.Error("Failed to marshal dispatch results",
			zap.String("event_id", job.eventID),
			zap.Error(err),
		)
		return
	}

	if err := s.alertsRepo.UpdateNotifiedContacts(ctx, job.eventID, raw); err != nil {
		s.logger.Error("Failed to record dispatch results",
			zap.String("event_id", job.eventID),
			zap.Error(err),
		)
		return
	}

	s.logger.Info("Alert dispatch completed",
		zap.String("event_id", job.eventID),
		zap.Int("dispatched", len(results)),
	)
}
