package mqtt

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"elderguard-data/internal/service"
)

// FallTrigger 跌倒报警触发接口（AlertService 实现）
type FallTrigger interface {
	TriggerFallAlert(ctx context.Context, userID, location string) (*service.TriggerFallAlertResponse, error)
}

// fallMessage 设备端跌倒消息
type fallMessage struct {
	UserID   string `json:"user_id"`
	Location string `json:"location"`
}

// FallListener 订阅设备端跌倒消息，走与HTTP端点相同的报警路径
type FallListener struct {
	trigger FallTrigger
	topic   string
	logger  *zap.Logger
}

// NewFallListener 创建跌倒消息监听器
func NewFallListener(trigger FallTrigger, topic string, logger *zap.Logger) *FallListener {
	return &FallListener{
		trigger: trigger,
		topic:   topic,
		logger:  logger,
	}
}

// HandleMessage 处理一条跌倒消息
func (l *FallListener) HandleMessage(topic string, payload []byte) error {
	var msg fallMessage
	if err := json.Unmarshal(payload, &msg); err != nil {
		l.logger.Error("Failed to unmarshal fall message",
			zap.String("topic", topic),
			zap.Error(err),
		)
		return fmt.Errorf("failed to unmarshal fall message: %w", err)
	}
	if msg.UserID == "" {
		l.logger.Warn("Fall message missing user_id, dropped",
			zap.String("topic", topic),
		)
		return fmt.Errorf("fall message missing user_id")
	}

	if _, err := l.trigger.TriggerFallAlert(context.Background(), msg.UserID, msg.Location); err != nil {
		l.logger.Error("Failed to trigger fall alert from MQTT",
			zap.String("user_id", msg.UserID),
			zap.Error(err),
		)
		return fmt.Errorf("failed to trigger fall alert: %w", err)
	}

	l.logger.Info("Fall alert triggered via MQTT",
		zap.String("user_id", msg.UserID),
		zap.String("location", msg.Location),
	)
	return nil
}

// Start 订阅跌倒主题
func (l *FallListener) Start(client *Client) error {
	if err := client.Subscribe(l.topic, 1, l.HandleMessage); err != nil {
		return err
	}
	l.logger.Info("Fall listener started",
		zap.String("topic", l.topic),
	)
	return nil
}

// Stop 取消订阅
func (l *FallListener) Stop(client *Client) error {
	if err := client.Unsubscribe(l.topic); err != nil {
		l.logger.Error("Failed to unsubscribe fall topic", zap.Error(err))
		return err
	}
	l.logger.Info("Fall listener stopped")
	return nil
}
